package storage

import "github.com/Mohd-Abdelaleem/darbi-salati/internal"

func NewFileRepositories(dataDir string, logger internal.Logger) (DayRepository, SnapshotRepository, error) {
	storage, err := NewFileStorage(dataDir, logger)
	if err != nil {
		return nil, nil, err
	}
	return storage, storage, nil
}

func NewPostgresRepositories(dsn string, logger internal.Logger) (DayRepository, SnapshotRepository, error) {
	storage, err := NewPostgresStorage(dsn, logger)
	if err != nil {
		return nil, nil, err
	}
	return storage, storage, nil
}
