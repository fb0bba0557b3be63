package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mohd-Abdelaleem/darbi-salati/internal"
)

func snap(date string, prayersCount, points, max int) internal.SnapshotDocument {
	s := internal.SnapshotDocument{
		DateGregorian: date,
		PrayersCount:  prayersCount,
		PointsEarned:  points,
		PointsMax:     max,
	}
	for i := 0; i < prayersCount && i < 5; i++ {
		s.PrayersDone[i] = true
	}
	return s
}

func TestComputeStreakEndingToday(t *testing.T) {
	snaps := []internal.SnapshotDocument{
		snap("2025-03-08", 3, 30, 125),
		snap("2025-03-09", 5, 60, 125),
		snap("2025-03-10", 2, 20, 125),
	}
	got := ComputeStreak(snaps, "2025-03-10")
	assert.Equal(t, StreakInfo{Current: 3, Longest: 3}, got)
}

func TestComputeStreakBrokenToday(t *testing.T) {
	snaps := []internal.SnapshotDocument{
		snap("2025-03-06", 3, 30, 125),
		snap("2025-03-07", 3, 30, 125),
		snap("2025-03-08", 3, 30, 125),
	}
	got := ComputeStreak(snaps, "2025-03-10")
	assert.Equal(t, StreakInfo{Current: 0, Longest: 3}, got)
}

func TestComputeStreakGapResets(t *testing.T) {
	snaps := []internal.SnapshotDocument{
		snap("2025-03-01", 1, 4, 125),
		snap("2025-03-02", 1, 4, 125),
		// gap on the 3rd
		snap("2025-03-04", 1, 4, 125),
		snap("2025-03-05", 1, 4, 125),
		snap("2025-03-06", 1, 4, 125),
		snap("2025-03-10", 1, 4, 125),
	}
	got := ComputeStreak(snaps, "2025-03-10")
	assert.Equal(t, StreakInfo{Current: 1, Longest: 3}, got)
}

func TestComputeStreakIgnoresZeroPrayerDays(t *testing.T) {
	snaps := []internal.SnapshotDocument{
		snap("2025-03-09", 2, 8, 125),
		snap("2025-03-10", 0, 5, 125), // tasks only, no prayers
	}
	got := ComputeStreak(snaps, "2025-03-10")
	assert.Equal(t, StreakInfo{Current: 0, Longest: 1}, got)

	assert.Equal(t, StreakInfo{}, ComputeStreak(nil, "2025-03-10"))
}

func TestComputeStreakSpansMonthBoundary(t *testing.T) {
	snaps := []internal.SnapshotDocument{
		snap("2025-02-27", 5, 60, 125),
		snap("2025-02-28", 5, 60, 125),
		snap("2025-03-01", 5, 60, 125),
	}
	got := ComputeStreak(snaps, "2025-03-01")
	assert.Equal(t, StreakInfo{Current: 3, Longest: 3}, got)
}

func TestConsistencyScore(t *testing.T) {
	assert.Equal(t, 0, ConsistencyScore(nil))

	snaps := []internal.SnapshotDocument{
		snap("2025-03-08", 5, 60, 125),
		snap("2025-03-09", 4, 48, 125),
		snap("2025-03-10", 5, 60, 125),
	}
	assert.Equal(t, 67, ConsistencyScore(snaps)) // 2/3 rounded
}

func TestPerPrayerStats(t *testing.T) {
	snaps := []internal.SnapshotDocument{
		snap("2025-03-09", 5, 60, 125),
		snap("2025-03-10", 2, 20, 125), // fajr + dhuhr
	}
	stats := PerPrayerStats(snaps)
	require.Len(t, stats, 5)

	assert.Equal(t, internal.PrayerNames[0], stats[0].Name)
	assert.Equal(t, 100, stats[0].Rate)
	assert.Equal(t, 2, stats[0].TotalDone)
	assert.Equal(t, 2, stats[0].TotalDays)

	assert.Equal(t, 50, stats[4].Rate) // isha done once of two days
	assert.Equal(t, 1, stats[4].TotalDone)
}

func TestPerPrayerStatsEmpty(t *testing.T) {
	stats := PerPrayerStats(nil)
	require.Len(t, stats, 5)
	for _, st := range stats {
		assert.Zero(t, st.Rate)
		assert.Zero(t, st.TotalDays)
	}
}

func TestBuildRangeZeroFills(t *testing.T) {
	out := BuildRange(nil, 7, "2025-03-10")
	require.Len(t, out, 7)
	assert.Equal(t, "2025-03-04", out[0].Date)
	assert.Equal(t, "2025-03-10", out[6].Date)
	for i, entry := range out {
		assert.Zero(t, entry.Points, "entry %d", i)
		if i > 0 {
			assert.Equal(t, nextDate(out[i-1].Date), entry.Date)
		}
	}
}

func TestBuildRangeMergesSnapshots(t *testing.T) {
	snaps := []internal.SnapshotDocument{
		snap("2025-03-09", 3, 42, 125),
		snap("2025-03-01", 5, 60, 125), // outside the window
	}
	out := BuildRange(snaps, 3, "2025-03-10")
	require.Len(t, out, 3)
	assert.Equal(t, DailyPoints{Date: "2025-03-08"}, out[0])
	assert.Equal(t, DailyPoints{Date: "2025-03-09", Points: 42, Max: 125}, out[1])
	assert.Equal(t, DailyPoints{Date: "2025-03-10"}, out[2])
}

func TestTotalPoints(t *testing.T) {
	snaps := []internal.SnapshotDocument{
		snap("2025-03-09", 3, 42, 125),
		snap("2025-03-10", 5, 60, 125),
	}
	assert.Equal(t, 102, TotalPoints(snaps))
	assert.Zero(t, TotalPoints(nil))
}

func TestAchievementsUnlockAndClamp(t *testing.T) {
	var snaps []internal.SnapshotDocument
	for d := 1; d <= 12; d++ {
		date := shiftDate("2025-03-01", d-1)
		s := snap(date, 5, 60, 125)
		s.CustomTasksDone = 1
		snaps = append(snaps, s)
	}
	streak := ComputeStreak(snaps, "2025-03-12")
	require.Equal(t, StreakInfo{Current: 12, Longest: 12}, streak)

	byID := make(map[string]Achievement)
	for _, a := range Achievements(snaps, streak) {
		byID[a.ID] = a
	}

	assert.True(t, byID["first_prayer"].Unlocked)
	assert.Equal(t, 100, byID["first_prayer"].Progress)
	assert.True(t, byID["streak_3"].Unlocked)
	assert.True(t, byID["streak_7"].Unlocked)
	assert.False(t, byID["streak_30"].Unlocked)
	assert.Equal(t, 40, byID["streak_30"].Progress) // 12/30
	assert.True(t, byID["perfect_day"].Unlocked)
	assert.True(t, byID["perfect_10"].Unlocked)
	assert.True(t, byID["custom_task"].Unlocked)
	assert.True(t, byID["points_500"].Unlocked) // 720 total
	assert.Equal(t, 100, byID["points_500"].Progress)
	assert.True(t, byID["prayers_50"].Unlocked) // 60 prayers
}

func TestAchievementsEmptyHistory(t *testing.T) {
	for _, a := range Achievements(nil, StreakInfo{}) {
		assert.False(t, a.Unlocked, a.ID)
		assert.Zero(t, a.Progress, a.ID)
		assert.Zero(t, a.Current, a.ID)
	}
}
