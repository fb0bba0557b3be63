package service

import (
	"time"

	"github.com/Mohd-Abdelaleem/darbi-salati/internal"
	"github.com/Mohd-Abdelaleem/darbi-salati/internal/config"
)

// BuildSnapshot derives the per-date analytics summary from a day's
// timeline. Task counts cover both standalone tasks and tasks nested in
// checkpoints; custom tasks are completed user-created standalone tasks.
func BuildSnapshot(day internal.DayData, w config.Weights, now time.Time) internal.SnapshotDocument {
	prayers := PrayerCompletionStatus(day)
	prayersCount := 0
	for _, p := range prayers {
		if p {
			prayersCount++
		}
	}

	tasksTotal, tasksDone, customDone := 0, 0, 0
	for _, item := range day.Timeline {
		switch item.Kind {
		case internal.KindTask:
			tasksTotal++
			if item.Task.IsDone {
				tasksDone++
				if item.Task.IsUserCreated {
					customDone++
				}
			}
		case internal.KindCheckpoint:
			for _, t := range item.Checkpoint.Tasks {
				tasksTotal++
				if t.IsDone {
					tasksDone++
				}
			}
		}
	}

	return internal.SnapshotDocument{
		DateGregorian:   day.DateGregorian,
		DateHijri:       day.DateHijri,
		PointsEarned:    DayPoints(day, w),
		PointsMax:       DayMaxPoints(day, w),
		PrayersDone:     prayers,
		PrayersCount:    prayersCount,
		TasksTotal:      tasksTotal,
		TasksDone:       tasksDone,
		CustomTasksDone: customDone,
		CreatedAt:       now.UTC().Format(time.RFC3339),
	}
}
