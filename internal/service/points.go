package service

import (
	"github.com/Mohd-Abdelaleem/darbi-salati/internal"
	"github.com/Mohd-Abdelaleem/darbi-salati/internal/config"
)

func isPrayerName(title string) bool {
	for _, name := range internal.PrayerNames {
		if title == name {
			return true
		}
	}
	return false
}

// PrayerCompletionStatus reports, per fixed prayer slot, whether that
// prayer's checkpoint exists and its main task is done. Always five entries;
// a missing checkpoint reads as false.
func PrayerCompletionStatus(day internal.DayData) [5]bool {
	var done [5]bool
	for i, name := range internal.PrayerNames {
		for _, item := range day.Timeline {
			if item.Kind != internal.KindCheckpoint || item.Checkpoint.TitleAr != name {
				continue
			}
			done[i] = item.Checkpoint.IsDone()
			break
		}
	}
	return done
}

// DayPoints sums earned points over a day snapshot. Prayer checkpoints score
// their main task, the three checklist qualities, and any completed extra
// task; non-prayer checkpoints score only their contained tasks. Standalone
// tasks score the flat extra-task weight; custom point overrides are
// deliberately not consulted here.
func DayPoints(day internal.DayData, w config.Weights) int {
	points := 0
	for _, item := range day.Timeline {
		switch item.Kind {
		case internal.KindCheckpoint:
			cp := item.Checkpoint
			if isPrayerName(cp.TitleAr) {
				if mt := cp.MainTask(); mt != nil && mt.IsDone {
					points += w.MainPrayer
				}
				for _, cl := range cp.Checklist {
					if !cl.IsDone {
						continue
					}
					switch cl.TitleAr {
					case ChecklistCongregation:
						points += w.Congregation
					case ChecklistOnTime:
						points += w.OnTime
					case ChecklistRemembrance:
						points += w.Remembrance
					}
				}
			}
			for _, t := range cp.Tasks {
				if t.Type != internal.MainTask && t.IsDone {
					points += w.ExtraTask
				}
			}
		case internal.KindTask:
			if item.Task.IsDone {
				points += w.ExtraTask
			}
		}
	}
	return points
}

// DayMaxPoints walks the same structure as DayPoints but sums the maximum
// attainable per item regardless of completion state.
func DayMaxPoints(day internal.DayData, w config.Weights) int {
	max := 0
	for _, item := range day.Timeline {
		switch item.Kind {
		case internal.KindCheckpoint:
			cp := item.Checkpoint
			if isPrayerName(cp.TitleAr) {
				max += w.PrayerMax()
			}
			for _, t := range cp.Tasks {
				if t.Type != internal.MainTask {
					max += w.ExtraTask
				}
			}
		case internal.KindTask:
			max += w.ExtraTask
		}
	}
	return max
}
