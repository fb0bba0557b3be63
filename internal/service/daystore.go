package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/Mohd-Abdelaleem/darbi-salati/internal"
	"github.com/Mohd-Abdelaleem/darbi-salati/internal/config"
	"github.com/Mohd-Abdelaleem/darbi-salati/internal/ident"
	"github.com/Mohd-Abdelaleem/darbi-salati/internal/prayer"
	"github.com/Mohd-Abdelaleem/darbi-salati/internal/storage"
)

// DayStore owns the in-memory day state and drives the generate -> mutate ->
// score -> persist flow. Reads of in-memory state are immediately
// consistent; durable writes are debounced and eventually consistent.
type DayStore struct {
	dayRepo  storage.DayRepository
	snapRepo storage.SnapshotRepository
	provider prayer.Provider
	ids      *ident.Generator
	logger   internal.Logger
	lat, lon float64
	now      func() time.Time

	mu    sync.RWMutex
	days  map[string]internal.DayData
	sched *persistScheduler
}

type DayStoreOptions struct {
	DayRepo      storage.DayRepository
	SnapRepo     storage.SnapshotRepository
	Provider     prayer.Provider
	Weights      config.Weights
	Logger       internal.Logger
	Latitude     float64
	Longitude    float64
	PersistDelay time.Duration
	Now          func() time.Time // defaults to time.Now
}

func NewDayStore(opts DayStoreOptions) *DayStore {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &DayStore{
		dayRepo:  opts.DayRepo,
		snapRepo: opts.SnapRepo,
		provider: opts.Provider,
		ids:      ident.New(),
		logger:   opts.Logger,
		lat:      opts.Latitude,
		lon:      opts.Longitude,
		now:      now,
		days:     make(map[string]internal.DayData),
		sched:    newPersistScheduler(opts.DayRepo, opts.SnapRepo, opts.Weights, opts.Logger, opts.PersistDelay),
	}
}

// Today returns the current calendar date key.
func (ds *DayStore) Today() string {
	return ds.now().Format(dateLayout)
}

// GetOrCreate returns the day for a date, generating and scheduling the
// default timeline on first access. A failing storage read degrades to a
// freshly generated in-memory day rather than an error.
func (ds *DayStore) GetOrCreate(ctx context.Context, date string) (internal.DayData, error) {
	parsed, err := time.Parse(dateLayout, date)
	if err != nil {
		return internal.DayData{}, fmt.Errorf("invalid date %q (want YYYY-MM-DD): %w", date, err)
	}

	ds.mu.RLock()
	day, ok := ds.days[date]
	ds.mu.RUnlock()
	if ok {
		return day, nil
	}

	day, err = ds.dayRepo.GetDay(ctx, date)
	if err != nil {
		if !errors.Is(err, storage.ErrDayNotFound) {
			ds.logger.Errorf("daystore: read for %s failed, generating ephemeral day: %v", date, err)
		}
		day, err = ds.generate(parsed, date)
		if err != nil {
			return internal.DayData{}, err
		}
		ds.put(day)
		ds.sched.Schedule(day)
		return day, nil
	}

	ds.put(day)
	return day, nil
}

func (ds *DayStore) generate(parsed time.Time, date string) (internal.DayData, error) {
	times, err := ds.provider.TimesFor(parsed, ds.lat, ds.lon)
	if err != nil {
		return internal.DayData{}, fmt.Errorf("daystore: prayer times for %s: %w", date, err)
	}
	if err := prayer.ValidateTimes(times); err != nil {
		return internal.DayData{}, err
	}
	lastThird, err := prayer.LastThirdOfNight(times.Maghrib, times.Fajr)
	if err != nil {
		return internal.DayData{}, err
	}
	hijri := prayer.ToHijri(parsed)
	ds.logger.Infof("daystore: generated default day for %s (%d %s %d)", date, hijri.Day, hijri.MonthName(), hijri.Year)
	return GenerateDefaultDay(ds.ids, date, hijri, times, lastThird), nil
}

func (ds *DayStore) put(day internal.DayData) {
	ds.mu.Lock()
	ds.days[day.DateGregorian] = day
	ds.mu.Unlock()
}

// apply runs a pure timeline mutation over the date's current state. A
// mutation that reports ErrNotFound leaves state untouched and returns
// noop=false results to the caller.
func (ds *DayStore) apply(ctx context.Context, date string, mutate func(internal.DayData) (internal.DayData, error)) (internal.DayData, bool, error) {
	day, err := ds.GetOrCreate(ctx, date)
	if err != nil {
		return internal.DayData{}, false, err
	}

	next, err := mutate(day)
	if err != nil {
		if errors.Is(err, internal.ErrNotFound) {
			ds.logger.Warnf("daystore: mutation on %s targeted a missing item, no-op", date)
			return day, false, nil
		}
		return internal.DayData{}, false, err
	}

	ds.put(next)
	ds.sched.Schedule(next)
	return next, true, nil
}

// Toggle flips a completion flag on the date's timeline.
func (ds *DayStore) Toggle(ctx context.Context, date string, itemIndex int, taskID, checklistItemID string) (internal.DayData, bool, error) {
	return ds.apply(ctx, date, func(day internal.DayData) (internal.DayData, error) {
		return ToggleItem(day, itemIndex, taskID, checklistItemID)
	})
}

// TaskParams describes a user-created standalone task.
type TaskParams struct {
	TitleAr      string
	Time         string
	CustomPoints *int
	Icon         string
	Color        string
}

// AddStandaloneTask inserts a user task into the named checkpoint's section.
func (ds *DayStore) AddStandaloneTask(ctx context.Context, date, checkpointID string, params TaskParams) (internal.DayData, bool, error) {
	task := internal.StandaloneTask{
		ID:                 ds.ids.Next(ident.PrefixStandalone),
		Type:               internal.RegularTask,
		TitleAr:            params.TitleAr,
		Time:               params.Time,
		CustomPoints:       params.CustomPoints,
		Icon:               params.Icon,
		Color:              params.Color,
		ParentCheckpointID: checkpointID,
		IsUserCreated:      true,
	}
	return ds.apply(ctx, date, func(day internal.DayData) (internal.DayData, error) {
		return InsertStandaloneTask(day, checkpointID, task)
	})
}

// CheckpointParams describes a user-created checkpoint.
type CheckpointParams struct {
	TitleAr string
	Time    string
	Icon    string
	Color   string
}

// AddCheckpoint inserts an unlocked user checkpoint in time-sorted position.
func (ds *DayStore) AddCheckpoint(ctx context.Context, date string, params CheckpointParams) (internal.DayData, bool, error) {
	cp := internal.Checkpoint{
		ID:        ds.ids.Next(ident.PrefixCheckpoint),
		TitleAr:   params.TitleAr,
		Time:      params.Time,
		Icon:      params.Icon,
		Color:     params.Color,
		Tasks:     []internal.Task{},
		Checklist: []internal.ChecklistItem{},
	}
	return ds.apply(ctx, date, func(day internal.DayData) (internal.DayData, error) {
		return InsertCheckpoint(day, cp), nil
	})
}

// RemoveTask drops a standalone task from the date's timeline.
func (ds *DayStore) RemoveTask(ctx context.Context, date, taskID string) (internal.DayData, bool, error) {
	return ds.apply(ctx, date, func(day internal.DayData) (internal.DayData, error) {
		return RemoveStandaloneTask(day, taskID)
	})
}

// RemoveCheckpoint drops a checkpoint and its linked standalone children.
func (ds *DayStore) RemoveCheckpoint(ctx context.Context, date, checkpointID string) (internal.DayData, bool, error) {
	return ds.apply(ctx, date, func(day internal.DayData) (internal.DayData, error) {
		return RemoveCheckpoint(day, checkpointID)
	})
}

// AnalyticsData is the aggregate dashboard payload.
type AnalyticsData struct {
	Streak           StreakInfo                  `json:"streak"`
	ConsistencyScore int                         `json:"consistency_score"`
	TotalPoints      int                         `json:"total_points"`
	Last7Days        []DailyPoints               `json:"last_7_days"`
	Last30Days       []DailyPoints               `json:"last_30_days"`
	PrayerStats      []PrayerStats               `json:"prayer_stats"`
	Achievements     []Achievement               `json:"achievements"`
	Snapshots        []internal.SnapshotDocument `json:"snapshots"`
}

// Analytics aggregates the full snapshot history into the dashboard payload.
func (ds *DayStore) Analytics(ctx context.Context) (AnalyticsData, error) {
	snaps, err := ds.snapRepo.GetAllSnapshots(ctx)
	if err != nil {
		return AnalyticsData{}, err
	}
	today := ds.Today()
	streak := ComputeStreak(snaps, today)
	return AnalyticsData{
		Streak:           streak,
		ConsistencyScore: ConsistencyScore(snaps),
		TotalPoints:      TotalPoints(snaps),
		Last7Days:        BuildRange(snaps, 7, today),
		Last30Days:       BuildRange(snaps, 30, today),
		PrayerStats:      PerPrayerStats(snaps),
		Achievements:     Achievements(snaps, streak),
		Snapshots:        snaps,
	}, nil
}

// Range returns the trailing-n daily point series ending today.
func (ds *DayStore) Range(ctx context.Context, n int) ([]DailyPoints, error) {
	today := ds.Today()
	from := shiftDate(today, -(n - 1))
	snaps, err := ds.snapRepo.GetSnapshotRange(ctx, from, today)
	if err != nil {
		return nil, err
	}
	return BuildRange(snaps, n, today), nil
}

// Flush synchronously persists pending writes. Used on shutdown.
func (ds *DayStore) Flush() error {
	return ds.sched.Close()
}
