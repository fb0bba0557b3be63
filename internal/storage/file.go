package storage

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/Mohd-Abdelaleem/darbi-salati/internal"
)

// FileStorage keeps the four collections in memory and mirrors each to a
// JSON file under the data directory with atomic tmp+rename writes. Writes
// are synchronous per call; mutation coalescing happens upstream in the
// persist scheduler.
type FileStorage struct {
	days        map[string]DayDocument        // date -> day
	checkpoints map[string]CheckpointDocument // id -> checkpoint
	tasks       map[string]TaskDocument       // id -> task
	snapshots   map[string]internal.SnapshotDocument

	mu     sync.RWMutex
	dir    string
	logger internal.Logger
}

func NewFileStorage(dir string, logger internal.Logger) (*FileStorage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	s := &FileStorage{
		days:        make(map[string]DayDocument),
		checkpoints: make(map[string]CheckpointDocument),
		tasks:       make(map[string]TaskDocument),
		snapshots:   make(map[string]internal.SnapshotDocument),
		dir:         dir,
		logger:      logger,
	}

	if err := loadCollection(s.daysFile(), s.days, func(d DayDocument) string { return d.DateGregorian }); err != nil {
		logger.Errorf("storage: failed to load days: %v", err)
		return nil, err
	}
	if err := loadCollection(s.checkpointsFile(), s.checkpoints, func(d CheckpointDocument) string { return d.ID }); err != nil {
		logger.Errorf("storage: failed to load checkpoints: %v", err)
		return nil, err
	}
	if err := loadCollection(s.tasksFile(), s.tasks, func(d TaskDocument) string { return d.ID }); err != nil {
		logger.Errorf("storage: failed to load tasks: %v", err)
		return nil, err
	}
	if err := loadCollection(s.snapshotsFile(), s.snapshots, func(d internal.SnapshotDocument) string { return d.DateGregorian }); err != nil {
		logger.Errorf("storage: failed to load snapshots: %v", err)
		return nil, err
	}

	return s, nil
}

func (s *FileStorage) daysFile() string        { return filepath.Join(s.dir, "days.json") }
func (s *FileStorage) checkpointsFile() string { return filepath.Join(s.dir, "checkpoints.json") }
func (s *FileStorage) tasksFile() string       { return filepath.Join(s.dir, "tasks.json") }
func (s *FileStorage) snapshotsFile() string   { return filepath.Join(s.dir, "snapshots.json") }

func loadCollection[T any](path string, into map[string]T, key func(T) string) error {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	defer file.Close()

	var docs []T
	if err := json.NewDecoder(file).Decode(&docs); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return err
	}
	for _, d := range docs {
		into[key(d)] = d
	}
	return nil
}

func atomicWriteFileJSON(filePath string, data interface{}) error {
	tempFile := filePath + ".tmp"
	f, err := os.Create(tempFile)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(data); err != nil {
		f.Close()
		os.Remove(tempFile)
		return err
	}

	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(tempFile)
		return err
	}

	if err := f.Close(); err != nil {
		os.Remove(tempFile)
		return err
	}

	return os.Rename(tempFile, filePath)
}

func writeCollection[T any](path string, m map[string]T) error {
	docs := make([]T, 0, len(m))
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		docs = append(docs, m[k])
	}
	return atomicWriteFileJSON(path, docs)
}

// SaveDay replaces the date's day document and all of its child documents.
// Children of the date that no longer appear in the timeline are dropped.
func (s *FileStorage) SaveDay(ctx context.Context, day internal.DayData) error {
	dayDoc, cps, tasks := ExplodeDay(day, time.Now())

	s.mu.Lock()
	s.days[dayDoc.DateGregorian] = dayDoc
	for id, cp := range s.checkpoints {
		if cp.Date == dayDoc.DateGregorian {
			delete(s.checkpoints, id)
		}
	}
	for id, t := range s.tasks {
		if t.Date == dayDoc.DateGregorian {
			delete(s.tasks, id)
		}
	}
	for _, cp := range cps {
		s.checkpoints[cp.ID] = cp
	}
	for _, t := range tasks {
		s.tasks[t.ID] = t
	}
	s.mu.Unlock()

	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := writeCollection(s.daysFile(), s.days); err != nil {
		return err
	}
	if err := writeCollection(s.checkpointsFile(), s.checkpoints); err != nil {
		return err
	}
	return writeCollection(s.tasksFile(), s.tasks)
}

func (s *FileStorage) GetDay(ctx context.Context, date string) (internal.DayData, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, ok := s.days[date]
	if !ok {
		return internal.DayData{}, ErrDayNotFound
	}
	cps := make(map[string]CheckpointDocument)
	tasks := make(map[string]TaskDocument)
	for id, cp := range s.checkpoints {
		if cp.Date == date {
			cps[id] = cp
		}
	}
	for id, t := range s.tasks {
		if t.Date == date {
			tasks[id] = t
		}
	}
	return AssembleDay(doc, cps, tasks)
}

func (s *FileStorage) SaveSnapshot(ctx context.Context, snap internal.SnapshotDocument) error {
	s.mu.Lock()
	s.snapshots[snap.DateGregorian] = snap
	s.mu.Unlock()

	s.mu.RLock()
	defer s.mu.RUnlock()
	return writeCollection(s.snapshotsFile(), s.snapshots)
}

func (s *FileStorage) GetAllSnapshots(ctx context.Context) ([]internal.SnapshotDocument, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snaps := make([]internal.SnapshotDocument, 0, len(s.snapshots))
	for _, snap := range s.snapshots {
		snaps = append(snaps, snap)
	}
	sort.Slice(snaps, func(i, j int) bool {
		return snaps[i].DateGregorian < snaps[j].DateGregorian
	})
	return snaps, nil
}

func (s *FileStorage) GetSnapshotRange(ctx context.Context, from, to string) ([]internal.SnapshotDocument, error) {
	all, err := s.GetAllSnapshots(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]internal.SnapshotDocument, 0, len(all))
	for _, snap := range all {
		if snap.DateGregorian >= from && snap.DateGregorian <= to {
			out = append(out, snap)
		}
	}
	return out, nil
}

var _ DayRepository = (*FileStorage)(nil)
var _ SnapshotRepository = (*FileStorage)(nil)
