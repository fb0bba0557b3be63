package service

import (
	"math"
	"sort"
	"time"

	"github.com/Mohd-Abdelaleem/darbi-salati/internal"
)

const dateLayout = "2006-01-02"

type StreakInfo struct {
	Current int `json:"current"`
	Longest int `json:"longest"`
}

type PrayerStats struct {
	Name      string `json:"name"`
	Rate      int    `json:"rate"` // 0-100 %
	TotalDone int    `json:"total_done"`
	TotalDays int    `json:"total_days"`
}

type DailyPoints struct {
	Date   string `json:"date"`
	Points int    `json:"points"`
	Max    int    `json:"max"`
}

// ComputeStreak derives current and longest streaks of calendar-consecutive
// days with at least one prayer done. Current counts back from today
// inclusive and is 0 when today has no qualifying snapshot.
func ComputeStreak(snaps []internal.SnapshotDocument, today string) StreakInfo {
	qualifying := make([]string, 0, len(snaps))
	for _, s := range snaps {
		if s.PrayersCount > 0 {
			qualifying = append(qualifying, s.DateGregorian)
		}
	}
	if len(qualifying) == 0 {
		return StreakInfo{}
	}
	sort.Strings(qualifying)

	longest, run := 0, 0
	for i, date := range qualifying {
		if i > 0 && nextDate(qualifying[i-1]) == date {
			run++
		} else {
			run = 1
		}
		if run > longest {
			longest = run
		}
	}

	dateSet := make(map[string]bool, len(qualifying))
	for _, d := range qualifying {
		dateSet[d] = true
	}
	current := 0
	for cursor := today; dateSet[cursor]; cursor = prevDate(cursor) {
		current++
	}

	return StreakInfo{Current: current, Longest: longest}
}

// ConsistencyScore is the percentage of tracked days with all five prayers
// done, rounded to the nearest integer. 0 when nothing is tracked.
func ConsistencyScore(snaps []internal.SnapshotDocument) int {
	if len(snaps) == 0 {
		return 0
	}
	perfect := 0
	for _, s := range snaps {
		if s.PrayersCount == 5 {
			perfect++
		}
	}
	return int(math.Round(100 * float64(perfect) / float64(len(snaps))))
}

// PerPrayerStats reports, for each of the five fixed prayer slots, how often
// that slot's completion boolean is set across the snapshot batch.
func PerPrayerStats(snaps []internal.SnapshotDocument) []PrayerStats {
	stats := make([]PrayerStats, len(internal.PrayerNames))
	for i, name := range internal.PrayerNames {
		done := 0
		for _, s := range snaps {
			if s.PrayersDone[i] {
				done++
			}
		}
		rate := 0
		if len(snaps) > 0 {
			rate = int(math.Round(100 * float64(done) / float64(len(snaps))))
		}
		stats[i] = PrayerStats{Name: name, Rate: rate, TotalDone: done, TotalDays: len(snaps)}
	}
	return stats
}

// BuildRange returns exactly n daily point entries for the trailing n days
// ending today, ascending. Dates without a snapshot read as zero.
func BuildRange(snaps []internal.SnapshotDocument, n int, today string) []DailyPoints {
	byDate := make(map[string]internal.SnapshotDocument, len(snaps))
	for _, s := range snaps {
		byDate[s.DateGregorian] = s
	}

	out := make([]DailyPoints, n)
	cursor := today
	for i := n - 1; i >= 0; i-- {
		entry := DailyPoints{Date: cursor}
		if s, ok := byDate[cursor]; ok {
			entry.Points = s.PointsEarned
			entry.Max = s.PointsMax
		}
		out[i] = entry
		cursor = prevDate(cursor)
	}
	return out
}

// TotalPoints sums earned points across all snapshots.
func TotalPoints(snaps []internal.SnapshotDocument) int {
	total := 0
	for _, s := range snaps {
		total += s.PointsEarned
	}
	return total
}

func nextDate(date string) string {
	return shiftDate(date, 1)
}

func prevDate(date string) string {
	return shiftDate(date, -1)
}

func shiftDate(date string, days int) string {
	t, err := time.Parse(dateLayout, date)
	if err != nil {
		return ""
	}
	return t.AddDate(0, 0, days).Format(dateLayout)
}
