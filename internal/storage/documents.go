package storage

import (
	"fmt"
	"time"

	"github.com/Mohd-Abdelaleem/darbi-salati/internal"
)

// Persisted layout: four keyed collections (days, checkpoints, tasks,
// snapshots), at most one document per key. A day document stores ordered
// timeline references; checkpoint and task documents carry a date
// back-reference so a date's children can be replaced wholesale.

type TimelineRef struct {
	Kind internal.TimelineKind `json:"kind"`
	ID   string                `json:"id"`
}

type DayDocument struct {
	DateGregorian string               `json:"date_gregorian"`
	DateHijri     internal.HijriDate   `json:"date_hijri"`
	PrayerTimes   internal.PrayerTimes `json:"prayer_times"`
	TimelineIDs   []TimelineRef        `json:"timeline_ids"`
	UpdatedAt     string               `json:"updated_at"`
}

type CheckpointDocument struct {
	ID            string                   `json:"id"`
	Date          string                   `json:"date"`
	TitleAr       string                   `json:"title_ar"`
	Time          string                   `json:"time,omitempty"`
	IsLocked      bool                     `json:"is_locked"`
	Icon          string                   `json:"icon,omitempty"`
	Color         string                   `json:"color,omitempty"`
	IsUserCreated bool                     `json:"is_user_created"`
	Tasks         []internal.Task          `json:"tasks"`
	Checklist     []internal.ChecklistItem `json:"checklist"`
	UpdatedAt     string                   `json:"updated_at"`
}

type TaskDocument struct {
	ID                 string            `json:"id"`
	Date               string            `json:"date"`
	Type               internal.TaskType `json:"type"`
	TitleAr            string            `json:"title_ar"`
	IsDone             bool              `json:"is_done"`
	Time               string            `json:"time,omitempty"`
	CustomPoints       *int              `json:"custom_points,omitempty"`
	Icon               string            `json:"icon,omitempty"`
	Color              string            `json:"color,omitempty"`
	ParentCheckpointID string            `json:"parent_checkpoint_id,omitempty"`
	IsUserCreated      bool              `json:"is_user_created"`
	UpdatedAt          string            `json:"updated_at"`
}

// ExplodeDay decomposes a DayData into its document representation.
func ExplodeDay(day internal.DayData, now time.Time) (DayDocument, []CheckpointDocument, []TaskDocument) {
	ts := now.UTC().Format(time.RFC3339)
	refs := make([]TimelineRef, 0, len(day.Timeline))
	var cps []CheckpointDocument
	var tasks []TaskDocument

	for _, item := range day.Timeline {
		switch item.Kind {
		case internal.KindCheckpoint:
			cp := item.Checkpoint
			refs = append(refs, TimelineRef{Kind: internal.KindCheckpoint, ID: cp.ID})
			cps = append(cps, CheckpointDocument{
				ID:            cp.ID,
				Date:          day.DateGregorian,
				TitleAr:       cp.TitleAr,
				Time:          cp.Time,
				IsLocked:      cp.IsLocked,
				Icon:          cp.Icon,
				Color:         cp.Color,
				IsUserCreated: !cp.IsLocked,
				Tasks:         append([]internal.Task(nil), cp.Tasks...),
				Checklist:     append([]internal.ChecklistItem(nil), cp.Checklist...),
				UpdatedAt:     ts,
			})
		case internal.KindTask:
			t := item.Task
			refs = append(refs, TimelineRef{Kind: internal.KindTask, ID: t.ID})
			tasks = append(tasks, TaskDocument{
				ID:                 t.ID,
				Date:               day.DateGregorian,
				Type:               t.Type,
				TitleAr:            t.TitleAr,
				IsDone:             t.IsDone,
				Time:               t.Time,
				CustomPoints:       t.CustomPoints,
				Icon:               t.Icon,
				Color:              t.Color,
				ParentCheckpointID: t.ParentCheckpointID,
				IsUserCreated:      t.IsUserCreated,
				UpdatedAt:          ts,
			})
		}
	}

	return DayDocument{
		DateGregorian: day.DateGregorian,
		DateHijri:     day.DateHijri,
		PrayerTimes:   day.PrayerTimes,
		TimelineIDs:   refs,
		UpdatedAt:     ts,
	}, cps, tasks
}

// AssembleDay rebuilds a DayData from its documents, following the day
// document's ordered timeline references.
func AssembleDay(doc DayDocument, cps map[string]CheckpointDocument, tasks map[string]TaskDocument) (internal.DayData, error) {
	timeline := make([]internal.TimelineItem, 0, len(doc.TimelineIDs))
	for _, ref := range doc.TimelineIDs {
		switch ref.Kind {
		case internal.KindCheckpoint:
			cd, ok := cps[ref.ID]
			if !ok {
				return internal.DayData{}, fmt.Errorf("storage: day %s references missing checkpoint %s", doc.DateGregorian, ref.ID)
			}
			timeline = append(timeline, internal.TimelineItem{Kind: internal.KindCheckpoint, Checkpoint: &internal.Checkpoint{
				ID:        cd.ID,
				TitleAr:   cd.TitleAr,
				Time:      cd.Time,
				IsLocked:  cd.IsLocked,
				Icon:      cd.Icon,
				Color:     cd.Color,
				Tasks:     append([]internal.Task(nil), cd.Tasks...),
				Checklist: append([]internal.ChecklistItem(nil), cd.Checklist...),
			}})
		case internal.KindTask:
			td, ok := tasks[ref.ID]
			if !ok {
				return internal.DayData{}, fmt.Errorf("storage: day %s references missing task %s", doc.DateGregorian, ref.ID)
			}
			timeline = append(timeline, internal.TimelineItem{Kind: internal.KindTask, Task: &internal.StandaloneTask{
				ID:                 td.ID,
				Type:               td.Type,
				TitleAr:            td.TitleAr,
				IsDone:             td.IsDone,
				Time:               td.Time,
				CustomPoints:       td.CustomPoints,
				Icon:               td.Icon,
				Color:              td.Color,
				ParentCheckpointID: td.ParentCheckpointID,
				IsUserCreated:      td.IsUserCreated,
			}})
		default:
			return internal.DayData{}, fmt.Errorf("storage: day %s has timeline ref of unknown kind %q", doc.DateGregorian, ref.Kind)
		}
	}

	return internal.DayData{
		DateGregorian: doc.DateGregorian,
		DateHijri:     doc.DateHijri,
		PrayerTimes:   doc.PrayerTimes,
		Timeline:      timeline,
	}, nil
}
