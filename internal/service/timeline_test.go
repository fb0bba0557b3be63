package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mohd-Abdelaleem/darbi-salati/internal"
)

func firstStandaloneIndex(day internal.DayData) int {
	for i, item := range day.Timeline {
		if item.Kind == internal.KindTask {
			return i
		}
	}
	return -1
}

func TestToggleStandaloneTask(t *testing.T) {
	day := testDay()
	idx := firstStandaloneIndex(day)
	require.GreaterOrEqual(t, idx, 0)

	next, err := ToggleItem(day, idx, "", "")
	require.NoError(t, err)
	assert.True(t, next.Timeline[idx].Task.IsDone)
	// The caller's prior value is untouched.
	assert.False(t, day.Timeline[idx].Task.IsDone)
}

func TestToggleTwiceRestoresOriginal(t *testing.T) {
	day := testDay()
	idx, fajr := findCheckpointByTitle(t, day, internal.PrayerNames[0])
	main := fajr.MainTask()

	once, err := ToggleItem(day, idx, main.ID, "")
	require.NoError(t, err)
	twice, err := ToggleItem(once, idx, main.ID, "")
	require.NoError(t, err)
	assert.Equal(t, day, twice)

	// Same round trip for a checklist entry and a standalone task.
	once, err = ToggleItem(day, idx, "", fajr.Checklist[2].ID)
	require.NoError(t, err)
	twice, err = ToggleItem(once, idx, "", fajr.Checklist[2].ID)
	require.NoError(t, err)
	assert.Equal(t, day, twice)

	stIdx := firstStandaloneIndex(day)
	once, err = ToggleItem(day, stIdx, "", "")
	require.NoError(t, err)
	twice, err = ToggleItem(once, stIdx, "", "")
	require.NoError(t, err)
	assert.Equal(t, day, twice)
}

func TestToggleChecklistFlipsOnlyTarget(t *testing.T) {
	day := testDay()
	idx, fajr := findCheckpointByTitle(t, day, internal.PrayerNames[0])

	next, err := ToggleItem(day, idx, "", fajr.Checklist[0].ID)
	require.NoError(t, err)

	cl := next.Timeline[idx].Checkpoint.Checklist
	assert.True(t, cl[0].IsDone)
	assert.False(t, cl[1].IsDone)
	assert.False(t, cl[2].IsDone)
}

func TestToggleNotFoundIsNoOp(t *testing.T) {
	day := testDay()

	_, err := ToggleItem(day, len(day.Timeline), "", "")
	assert.ErrorIs(t, err, internal.ErrNotFound)
	_, err = ToggleItem(day, -1, "", "")
	assert.ErrorIs(t, err, internal.ErrNotFound)

	idx, _ := findCheckpointByTitle(t, day, internal.PrayerNames[0])
	_, err = ToggleItem(day, idx, "no-such-task", "")
	assert.ErrorIs(t, err, internal.ErrNotFound)
	_, err = ToggleItem(day, idx, "", "no-such-item")
	assert.ErrorIs(t, err, internal.ErrNotFound)

	// A checkpoint index with no IDs given matches nothing.
	_, err = ToggleItem(day, idx, "", "")
	assert.ErrorIs(t, err, internal.ErrNotFound)
}

func TestInsertStandaloneTaskAfterCheckpointRun(t *testing.T) {
	day := testDay()
	dhuhrIdx, dhuhr := findCheckpointByTitle(t, day, internal.PrayerNames[1])

	reading := internal.StandaloneTask{ID: "st-r1", Type: internal.RegularTask, TitleAr: "قراءة", ParentCheckpointID: dhuhr.ID, IsUserCreated: true}
	next, err := InsertStandaloneTask(day, dhuhr.ID, reading)
	require.NoError(t, err)

	// Immediately after dhuhr, strictly before asr.
	require.Equal(t, internal.KindTask, next.Timeline[dhuhrIdx+1].Kind)
	assert.Equal(t, "قراءة", next.Timeline[dhuhrIdx+1].Task.TitleAr)
	asrIdx, _ := findCheckpointByTitle(t, next, internal.PrayerNames[2])
	assert.Greater(t, asrIdx, dhuhrIdx+1)

	// A second insert lands after the existing trailing run.
	second := internal.StandaloneTask{ID: "st-r2", Type: internal.RegularTask, TitleAr: "دعاء", ParentCheckpointID: dhuhr.ID, IsUserCreated: true}
	next, err = InsertStandaloneTask(next, dhuhr.ID, second)
	require.NoError(t, err)
	assert.Equal(t, "قراءة", next.Timeline[dhuhrIdx+1].Task.TitleAr)
	assert.Equal(t, "دعاء", next.Timeline[dhuhrIdx+2].Task.TitleAr)
}

func TestInsertStandaloneTaskUnknownCheckpoint(t *testing.T) {
	day := testDay()
	_, err := InsertStandaloneTask(day, "cp-missing", internal.StandaloneTask{ID: "st-x"})
	assert.ErrorIs(t, err, internal.ErrNotFound)
	assert.Equal(t, testDayLen(day), len(day.Timeline))
}

func testDayLen(day internal.DayData) int { return len(day.Timeline) }

func TestInsertCheckpointTimeSorted(t *testing.T) {
	day := testDay()

	cp := internal.Checkpoint{ID: "cp-u1", TitleAr: "ورد", Time: "13:00", Tasks: []internal.Task{}, Checklist: []internal.ChecklistItem{}}
	next := InsertCheckpoint(day, cp)

	dhuhrIdx, _ := findCheckpointByTitle(t, next, internal.PrayerNames[1])
	asrIdx, _ := findCheckpointByTitle(t, next, internal.PrayerNames[2])
	insIdx, _ := findCheckpointByTitle(t, next, "ورد")
	assert.Greater(t, insIdx, dhuhrIdx)
	assert.Less(t, insIdx, asrIdx)
}

func TestInsertCheckpointWithoutTimeAppends(t *testing.T) {
	day := testDay()
	cp := internal.Checkpoint{ID: "cp-u2", TitleAr: "ختام اليوم", Tasks: []internal.Task{}, Checklist: []internal.ChecklistItem{}}
	next := InsertCheckpoint(day, cp)
	last := next.Timeline[len(next.Timeline)-1]
	require.Equal(t, internal.KindCheckpoint, last.Kind)
	assert.Equal(t, "ختام اليوم", last.Checkpoint.TitleAr)
}

func TestInsertCheckpointTimeAfterAllAppends(t *testing.T) {
	day := testDay()
	cp := internal.Checkpoint{ID: "cp-u3", TitleAr: "متأخر", Time: "23:45", Tasks: []internal.Task{}, Checklist: []internal.ChecklistItem{}}
	next := InsertCheckpoint(day, cp)
	last := next.Timeline[len(next.Timeline)-1]
	require.Equal(t, internal.KindCheckpoint, last.Kind)
	assert.Equal(t, "متأخر", last.Checkpoint.TitleAr)
}

func TestRemoveStandaloneTask(t *testing.T) {
	day := testDay()
	idx := firstStandaloneIndex(day)
	id := day.Timeline[idx].Task.ID

	next, err := RemoveStandaloneTask(day, id)
	require.NoError(t, err)
	assert.Len(t, next.Timeline, len(day.Timeline)-1)
	for _, item := range next.Timeline {
		assert.NotEqual(t, id, item.ItemID())
	}

	_, err = RemoveStandaloneTask(day, "st-missing")
	assert.ErrorIs(t, err, internal.ErrNotFound)
}

func TestRemoveCheckpointCascades(t *testing.T) {
	day := testDay()
	_, lastThird := findCheckpointByTitle(t, day, TitleLastThird)

	next, err := RemoveCheckpoint(day, lastThird.ID)
	require.NoError(t, err)

	// Checkpoint and its three linked night acts are gone; 14 - 4 = 10.
	assert.Len(t, next.Timeline, len(day.Timeline)-4)
	for _, item := range next.Timeline {
		assert.NotEqual(t, lastThird.ID, item.ItemID())
		if item.Kind == internal.KindTask {
			assert.NotEqual(t, lastThird.ID, item.Task.ParentCheckpointID)
		}
	}

	// Unlinked standalone tasks survive.
	survivors := 0
	for _, item := range next.Timeline {
		if item.Kind == internal.KindTask {
			survivors++
		}
	}
	assert.Equal(t, 4, survivors)

	_, err = RemoveCheckpoint(day, "cp-missing")
	assert.ErrorIs(t, err, internal.ErrNotFound)
}

func TestMutationsPreserveUntouchedOrder(t *testing.T) {
	day := testDay()
	dhuhrIdx, dhuhr := findCheckpointByTitle(t, day, internal.PrayerNames[1])

	next, err := InsertStandaloneTask(day, dhuhr.ID, internal.StandaloneTask{ID: "st-o1", TitleAr: "قراءة"})
	require.NoError(t, err)

	// Everything before the insertion point keeps its relative order.
	for i := 0; i <= dhuhrIdx; i++ {
		assert.Equal(t, day.Timeline[i].ItemID(), next.Timeline[i].ItemID())
	}
	for i := dhuhrIdx + 1; i < len(day.Timeline); i++ {
		assert.Equal(t, day.Timeline[i].ItemID(), next.Timeline[i+1].ItemID())
	}
}
