package service

import (
	"github.com/Mohd-Abdelaleem/darbi-salati/internal"
)

// Timeline mutations are pure value transformations: each operation deep
// copies the day and edits the copy, so callers holding the old DayData
// never observe the change. A referenced ID that does not exist yields the
// unchanged day plus internal.ErrNotFound; callers treat that as a no-op.

func cloneDay(day internal.DayData) internal.DayData {
	out := day
	out.Timeline = make([]internal.TimelineItem, len(day.Timeline))
	for i, item := range day.Timeline {
		out.Timeline[i] = cloneItem(item)
	}
	return out
}

func cloneItem(item internal.TimelineItem) internal.TimelineItem {
	switch item.Kind {
	case internal.KindCheckpoint:
		cp := *item.Checkpoint
		cp.Tasks = append([]internal.Task(nil), item.Checkpoint.Tasks...)
		cp.Checklist = append([]internal.ChecklistItem(nil), item.Checkpoint.Checklist...)
		return internal.TimelineItem{Kind: internal.KindCheckpoint, Checkpoint: &cp}
	case internal.KindTask:
		st := *item.Task
		return internal.TimelineItem{Kind: internal.KindTask, Task: &st}
	}
	return item
}

func findCheckpoint(day internal.DayData, checkpointID string) int {
	for i, item := range day.Timeline {
		if item.Kind == internal.KindCheckpoint && item.Checkpoint.ID == checkpointID {
			return i
		}
	}
	return -1
}

// ToggleItem flips a completion flag. With no IDs given it targets the
// standalone task at itemIndex; on a checkpoint, checklistItemID selects a
// checklist entry and taskID selects a nested task.
func ToggleItem(day internal.DayData, itemIndex int, taskID, checklistItemID string) (internal.DayData, error) {
	if itemIndex < 0 || itemIndex >= len(day.Timeline) {
		return day, internal.ErrNotFound
	}

	next := cloneDay(day)
	item := next.Timeline[itemIndex]

	switch {
	case item.Kind == internal.KindTask && taskID == "" && checklistItemID == "":
		item.Task.IsDone = !item.Task.IsDone
		return next, nil

	case item.Kind == internal.KindCheckpoint && checklistItemID != "":
		for i := range item.Checkpoint.Checklist {
			if item.Checkpoint.Checklist[i].ID == checklistItemID {
				item.Checkpoint.Checklist[i].IsDone = !item.Checkpoint.Checklist[i].IsDone
				return next, nil
			}
		}
		return day, internal.ErrNotFound

	case item.Kind == internal.KindCheckpoint && taskID != "":
		for i := range item.Checkpoint.Tasks {
			if item.Checkpoint.Tasks[i].ID == taskID {
				item.Checkpoint.Tasks[i].IsDone = !item.Checkpoint.Tasks[i].IsDone
				return next, nil
			}
		}
		return day, internal.ErrNotFound
	}

	return day, internal.ErrNotFound
}

// InsertStandaloneTask places task immediately after the named checkpoint
// and its existing run of trailing standalone tasks, before the next
// checkpoint.
func InsertStandaloneTask(day internal.DayData, checkpointID string, task internal.StandaloneTask) (internal.DayData, error) {
	cpIdx := findCheckpoint(day, checkpointID)
	if cpIdx < 0 {
		return day, internal.ErrNotFound
	}

	next := cloneDay(day)
	at := cpIdx + 1
	for at < len(next.Timeline) && next.Timeline[at].Kind == internal.KindTask {
		at++
	}

	item := internal.TimelineItem{Kind: internal.KindTask, Task: &task}
	next.Timeline = append(next.Timeline, internal.TimelineItem{})
	copy(next.Timeline[at+1:], next.Timeline[at:])
	next.Timeline[at] = item
	return next, nil
}

// InsertCheckpoint adds a checkpoint in time-sorted position: before the
// first time-anchored item whose time strictly exceeds the new one, at the
// end when none does or when the checkpoint carries no time.
func InsertCheckpoint(day internal.DayData, cp internal.Checkpoint) internal.DayData {
	next := cloneDay(day)
	item := internal.TimelineItem{Kind: internal.KindCheckpoint, Checkpoint: &cp}

	at := len(next.Timeline)
	if cp.Time != "" {
		for i, existing := range next.Timeline {
			if t := existing.ItemTime(); t != "" && t > cp.Time {
				at = i
				break
			}
		}
	}

	next.Timeline = append(next.Timeline, internal.TimelineItem{})
	copy(next.Timeline[at+1:], next.Timeline[at:])
	next.Timeline[at] = item
	return next
}

// RemoveStandaloneTask drops the matching top-level task.
func RemoveStandaloneTask(day internal.DayData, taskID string) (internal.DayData, error) {
	idx := -1
	for i, item := range day.Timeline {
		if item.Kind == internal.KindTask && item.Task.ID == taskID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return day, internal.ErrNotFound
	}

	next := cloneDay(day)
	next.Timeline = append(next.Timeline[:idx], next.Timeline[idx+1:]...)
	return next, nil
}

// RemoveCheckpoint drops the checkpoint and cascades to every standalone
// task whose parent reference names it. The parent reference is resolved by
// lookup only; it is never followed as an ownership edge elsewhere.
func RemoveCheckpoint(day internal.DayData, checkpointID string) (internal.DayData, error) {
	if findCheckpoint(day, checkpointID) < 0 {
		return day, internal.ErrNotFound
	}

	next := cloneDay(day)
	kept := next.Timeline[:0]
	for _, item := range next.Timeline {
		if item.Kind == internal.KindCheckpoint && item.Checkpoint.ID == checkpointID {
			continue
		}
		if item.Kind == internal.KindTask && item.Task.ParentCheckpointID == checkpointID {
			continue
		}
		kept = append(kept, item)
	}
	next.Timeline = kept
	return next, nil
}
