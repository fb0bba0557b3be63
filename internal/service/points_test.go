package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mohd-Abdelaleem/darbi-salati/internal"
	"github.com/Mohd-Abdelaleem/darbi-salati/internal/config"
)

func fixedNow() time.Time {
	return time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
}

func TestDayMaxPointsIdentity(t *testing.T) {
	day := testDay()
	w := config.DefaultWeights()

	prayerCps, extraTasks, standalone := 0, 0, 0
	for _, item := range day.Timeline {
		switch item.Kind {
		case internal.KindCheckpoint:
			if isPrayerName(item.Checkpoint.TitleAr) {
				prayerCps++
			}
			for _, task := range item.Checkpoint.Tasks {
				if task.Type != internal.MainTask {
					extraTasks++
				}
			}
		case internal.KindTask:
			standalone++
		}
	}

	assert.Equal(t, 12*prayerCps+5*extraTasks+5*standalone, DayMaxPoints(day, w))
	assert.Equal(t, 125, DayMaxPoints(day, w)) // 5 prayers, 6 sunan, 7 standalone
	assert.Equal(t, 0, DayPoints(day, w))      // nothing done yet
}

func TestDayPointsFajrScenario(t *testing.T) {
	day := testDay()
	w := config.DefaultWeights()

	fajrIdx, fajr := findCheckpointByTitle(t, day, internal.PrayerNames[0])
	main := fajr.MainTask()
	require.NotNil(t, main)

	day, err := ToggleItem(day, fajrIdx, main.ID, "")
	require.NoError(t, err)
	day, err = ToggleItem(day, fajrIdx, "", fajr.Checklist[0].ID) // congregation
	require.NoError(t, err)
	day, err = ToggleItem(day, fajrIdx, "", fajr.Checklist[1].ID) // on time
	require.NoError(t, err)

	assert.Equal(t, 4+3+3, DayPoints(day, w))

	status := PrayerCompletionStatus(day)
	assert.Equal(t, [5]bool{true, false, false, false, false}, status)
}

func TestPrayerCompletionStatusAlwaysFiveEntries(t *testing.T) {
	status := PrayerCompletionStatus(internal.DayData{})
	assert.Equal(t, [5]bool{}, status)

	// A timeline holding only dhuhr still reports all five slots.
	day := testDay()
	var only []internal.TimelineItem
	for _, item := range day.Timeline {
		if item.Kind == internal.KindCheckpoint && item.Checkpoint.TitleAr == internal.PrayerNames[1] {
			only = append(only, item)
		}
	}
	day.Timeline = only

	idx, dhuhr := findCheckpointByTitle(t, day, internal.PrayerNames[1])
	var err error
	day, err = ToggleItem(day, idx, dhuhr.MainTask().ID, "")
	require.NoError(t, err)
	assert.Equal(t, [5]bool{false, true, false, false, false}, PrayerCompletionStatus(day))
}

func TestStandaloneTaskScoresFlatWeight(t *testing.T) {
	day := testDay()
	w := config.DefaultWeights()

	override := 50
	for i, item := range day.Timeline {
		if item.Kind == internal.KindTask {
			day.Timeline[i].Task.IsDone = true
			day.Timeline[i].Task.CustomPoints = &override
			break
		}
	}
	// Custom point overrides are captured but not consulted.
	assert.Equal(t, 5, DayPoints(day, w))
}

func TestNonPrayerCheckpointTasksScoreAsExtras(t *testing.T) {
	w := config.DefaultWeights()
	day := internal.DayData{Timeline: []internal.TimelineItem{
		{Kind: internal.KindCheckpoint, Checkpoint: &internal.Checkpoint{
			ID:      "cp-x",
			TitleAr: "ورد القرآن",
			Tasks: []internal.Task{
				{ID: "t-1", Type: internal.RegularTask, TitleAr: "جزء", IsDone: true},
				{ID: "t-2", Type: internal.RegularTask, TitleAr: "جزء آخر"},
			},
		}},
	}}

	// No 12-point prayer path for an unknown title; only the task fallback.
	assert.Equal(t, 5, DayPoints(day, w))
	assert.Equal(t, 10, DayMaxPoints(day, w))
	assert.Equal(t, [5]bool{}, PrayerCompletionStatus(day))
}

func TestBuildSnapshotCounts(t *testing.T) {
	day := testDay()
	w := config.DefaultWeights()

	fajrIdx, fajr := findCheckpointByTitle(t, day, internal.PrayerNames[0])
	var err error
	day, err = ToggleItem(day, fajrIdx, fajr.MainTask().ID, "")
	require.NoError(t, err)

	// Complete one user-created standalone task.
	user := internal.StandaloneTask{ID: "st-user", Type: internal.RegularTask, TitleAr: "قراءة", IsDone: true, IsUserCreated: true}
	day.Timeline = append(day.Timeline, internal.TimelineItem{Kind: internal.KindTask, Task: &user})

	snap := BuildSnapshot(day, w, fixedNow())
	assert.Equal(t, "2025-03-10", snap.DateGregorian)
	assert.Equal(t, 1, snap.PrayersCount)
	assert.Equal(t, [5]bool{true, false, false, false, false}, snap.PrayersDone)
	assert.Equal(t, DayPoints(day, w), snap.PointsEarned)
	assert.Equal(t, DayMaxPoints(day, w), snap.PointsMax)
	// 7 default standalone + 1 user task + 11 checkpoint tasks.
	assert.Equal(t, 19, snap.TasksTotal)
	assert.Equal(t, 2, snap.TasksDone) // fajr main + user task
	assert.Equal(t, 1, snap.CustomTasksDone)
	assert.NotEmpty(t, snap.CreatedAt)
}
