package storage

import (
	"context"
	"errors"

	"github.com/Mohd-Abdelaleem/darbi-salati/internal"
)

// ErrDayNotFound reports that no day document exists for the requested date.
var ErrDayNotFound = errors.New("storage: day not found")

type DayRepository interface {
	SaveDay(ctx context.Context, day internal.DayData) error
	GetDay(ctx context.Context, date string) (internal.DayData, error)
}

type SnapshotRepository interface {
	SaveSnapshot(ctx context.Context, snap internal.SnapshotDocument) error
	GetAllSnapshots(ctx context.Context) ([]internal.SnapshotDocument, error)
	GetSnapshotRange(ctx context.Context, from, to string) ([]internal.SnapshotDocument, error)
}
