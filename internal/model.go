package internal

// TaskType distinguishes scoring weight and display priority of a task.
type TaskType string

const (
	MainTask      TaskType = "main_task"
	SecondaryTask TaskType = "secondary_task"
	RegularTask   TaskType = "regular_task"
)

// TimelineKind discriminates the TimelineItem union.
type TimelineKind string

const (
	KindCheckpoint TimelineKind = "checkpoint"
	KindTask       TimelineKind = "task"
)

// ChecklistItem is a sub-quality of a main prayer (congregation, on time,
// post-prayer remembrance). Owned exclusively by its parent Checkpoint.
type ChecklistItem struct {
	ID      string `json:"id"`
	TitleAr string `json:"title_ar"`
	IsDone  bool   `json:"is_done"`
}

// Task is a sub-item nested inside a Checkpoint. At most one Task with
// type MainTask exists per Checkpoint.
type Task struct {
	ID      string   `json:"id"`
	Type    TaskType `json:"type"`
	TitleAr string   `json:"title_ar"`
	IsDone  bool     `json:"is_done"`
}

// Checkpoint is a named point in the day: a prayer, the sunrise boundary,
// the last third of the night, or a user-created milestone. IsLocked marks
// system-generated prayer checkpoints whose title and structure are fixed.
type Checkpoint struct {
	ID        string          `json:"id"`
	TitleAr   string          `json:"title_ar"`
	Time      string          `json:"time,omitempty"` // HH:MM wall clock
	IsLocked  bool            `json:"is_locked"`
	Tasks     []Task          `json:"tasks"`
	Checklist []ChecklistItem `json:"checklist"`
	Icon      string          `json:"icon,omitempty"`
	Color     string          `json:"color,omitempty"`
}

// MainTask returns the checkpoint's main task, or nil if absent.
func (cp *Checkpoint) MainTask() *Task {
	for i := range cp.Tasks {
		if cp.Tasks[i].Type == MainTask {
			return &cp.Tasks[i]
		}
	}
	return nil
}

// IsDone reports the checkpoint's done state: its main task's IsDone,
// false when no main task exists.
func (cp *Checkpoint) IsDone() bool {
	if mt := cp.MainTask(); mt != nil {
		return mt.IsDone
	}
	return false
}

// StandaloneTask is a top-level timeline entry not nested in a checkpoint.
// ParentCheckpointID is a lookup-only grouping reference, never a structural
// ownership edge.
type StandaloneTask struct {
	ID                 string   `json:"id"`
	Type               TaskType `json:"type"`
	TitleAr            string   `json:"title_ar"`
	IsDone             bool     `json:"is_done"`
	Time               string   `json:"time,omitempty"`
	CustomPoints       *int     `json:"custom_points,omitempty"`
	Icon               string   `json:"icon,omitempty"`
	Color              string   `json:"color,omitempty"`
	ParentCheckpointID string   `json:"parent_checkpoint_id,omitempty"`
	IsUserCreated      bool     `json:"is_user_created,omitempty"`
}

// TimelineItem is the tagged union over checkpoints and standalone tasks.
// Exactly one of Checkpoint / Task is non-nil, matching Kind.
type TimelineItem struct {
	Kind       TimelineKind    `json:"kind"`
	Checkpoint *Checkpoint     `json:"checkpoint,omitempty"`
	Task       *StandaloneTask `json:"task,omitempty"`
}

// ItemID returns the ID of whichever variant the item carries.
func (it TimelineItem) ItemID() string {
	switch it.Kind {
	case KindCheckpoint:
		if it.Checkpoint != nil {
			return it.Checkpoint.ID
		}
	case KindTask:
		if it.Task != nil {
			return it.Task.ID
		}
	}
	return ""
}

// ItemTime returns the wall-clock anchor of the item, "" if unanchored.
func (it TimelineItem) ItemTime() string {
	switch it.Kind {
	case KindCheckpoint:
		if it.Checkpoint != nil {
			return it.Checkpoint.Time
		}
	case KindTask:
		if it.Task != nil {
			return it.Task.Time
		}
	}
	return ""
}

// PrayerTimes holds the six formatted wall-clock times for a date. The core
// treats them as opaque, ordering-comparable HH:MM strings.
type PrayerTimes struct {
	Fajr    string `json:"fajr"`
	Sunrise string `json:"sunrise"`
	Dhuhr   string `json:"dhuhr"`
	Asr     string `json:"asr"`
	Maghrib string `json:"maghrib"`
	Isha    string `json:"isha"`
}

// HijriDate is a date in the Hijri calendar (month 1-12).
type HijriDate struct {
	Year  int `json:"year"`
	Month int `json:"month"`
	Day   int `json:"day"`
}

// MonthName returns the Arabic name of the month, "" when out of range.
func (h HijriDate) MonthName() string {
	if h.Month < 1 || h.Month > 12 {
		return ""
	}
	return HijriMonths[h.Month-1]
}

// DayData is the full state of one calendar day. The timeline order is the
// single source of truth for chronological sequencing.
type DayData struct {
	DateGregorian string         `json:"date_gregorian"` // YYYY-MM-DD
	DateHijri     HijriDate      `json:"date_hijri"`
	PrayerTimes   PrayerTimes    `json:"prayer_times"`
	Timeline      []TimelineItem `json:"timeline"`
}

// SnapshotDocument is the immutable-per-date analytics summary derived from
// a day's timeline. Overwritten (keyed by date) on every mutation.
type SnapshotDocument struct {
	DateGregorian   string    `json:"date_gregorian"`
	DateHijri       HijriDate `json:"date_hijri"`
	PointsEarned    int       `json:"points_earned"`
	PointsMax       int       `json:"points_max"`
	PrayersDone     [5]bool   `json:"prayers_done"` // fajr, dhuhr, asr, maghrib, isha
	PrayersCount    int       `json:"prayers_count"`
	TasksTotal      int       `json:"tasks_total"`
	TasksDone       int       `json:"tasks_done"`
	CustomTasksDone int       `json:"custom_tasks_done"`
	CreatedAt       string    `json:"created_at"` // RFC 3339
}

// PrayerNames lists the five daily prayers in fixed order. Index positions
// match SnapshotDocument.PrayersDone.
var PrayerNames = [5]string{"الفجر", "الظهر", "العصر", "المغرب", "العشاء"}

// HijriMonths maps month numbers 1-12 to their Arabic names.
var HijriMonths = [12]string{
	"محرّم", "صفر", "ربيع الأول", "ربيع الآخر",
	"جمادى الأولى", "جمادى الآخرة", "رجب", "شعبان",
	"رمضان", "شوال", "ذو القعدة", "ذو الحجة",
}
