package service

import (
	"context"
	"sync"
	"time"

	"github.com/Mohd-Abdelaleem/darbi-salati/internal"
	"github.com/Mohd-Abdelaleem/darbi-salati/internal/config"
	"github.com/Mohd-Abdelaleem/darbi-salati/internal/storage"
)

// persistScheduler batches day writes behind a quiescence window so rapid
// mutations to the same date coalesce into one downstream persistDay +
// saveSnapshot pair carrying the latest state. Failed dates stay dirty and
// retry on the next flush; failures never surface to the mutation path.
type persistScheduler struct {
	dayRepo  storage.DayRepository
	snapRepo storage.SnapshotRepository
	weights  config.Weights
	logger   internal.Logger
	delay    time.Duration

	mu    sync.Mutex
	dirty map[string]internal.DayData // date -> latest state

	kick     chan struct{}
	shutdown chan struct{}
	done     chan struct{}
}

const defaultPersistDelay = 800 * time.Millisecond

func newPersistScheduler(dayRepo storage.DayRepository, snapRepo storage.SnapshotRepository, weights config.Weights, logger internal.Logger, delay time.Duration) *persistScheduler {
	if delay <= 0 {
		delay = defaultPersistDelay
	}
	s := &persistScheduler{
		dayRepo:  dayRepo,
		snapRepo: snapRepo,
		weights:  weights,
		logger:   logger,
		delay:    delay,
		dirty:    make(map[string]internal.DayData),
		kick:     make(chan struct{}, 1),
		shutdown: make(chan struct{}),
		done:     make(chan struct{}),
	}
	go s.worker()
	return s
}

// Schedule records the latest state for a date and restarts the quiescence
// window. Never blocks.
func (s *persistScheduler) Schedule(day internal.DayData) {
	s.mu.Lock()
	s.dirty[day.DateGregorian] = day
	s.mu.Unlock()

	select {
	case s.kick <- struct{}{}:
	default:
	}
}

func (s *persistScheduler) worker() {
	defer close(s.done)
	timer := time.NewTimer(s.delay)
	defer timer.Stop()

	for {
		select {
		case <-s.kick:
			if !timer.Stop() {
				select {
				case <-timer.C:
				default:
				}
			}
			timer.Reset(s.delay)
		case <-timer.C:
			s.flush()
		case <-s.shutdown:
			return
		}
	}
}

func (s *persistScheduler) flush() {
	s.mu.Lock()
	batch := s.dirty
	s.dirty = make(map[string]internal.DayData)
	s.mu.Unlock()

	ctx := context.Background()
	for date, day := range batch {
		if err := s.persist(ctx, day); err != nil {
			s.logger.Errorf("persist: write for %s failed, will retry on next flush: %v", date, err)
			s.mu.Lock()
			if _, superseded := s.dirty[date]; !superseded {
				s.dirty[date] = day
			}
			s.mu.Unlock()
		}
	}
}

func (s *persistScheduler) persist(ctx context.Context, day internal.DayData) error {
	if err := s.dayRepo.SaveDay(ctx, day); err != nil {
		return err
	}
	return s.snapRepo.SaveSnapshot(ctx, BuildSnapshot(day, s.weights, time.Now()))
}

// Close stops the worker and writes out anything still pending.
func (s *persistScheduler) Close() error {
	close(s.shutdown)
	<-s.done
	s.flush()
	return nil
}
