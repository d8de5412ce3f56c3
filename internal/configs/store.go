package config

import (
	"io"

	repository "task-store.com/task-store/internal/repositories"
)

// NewTaskRepository builds the store selected by cfg.StoreDriver. The closer
// releases the backing database, if any.
func NewTaskRepository(cfg Config) (repository.TaskRepository, io.Closer, error) {
	if cfg.StoreDriver != StoreDriverSQLite {
		return repository.NewMemoryTaskRepository(), nopCloser{}, nil
	}

	db, err := NewDatabaseClient(cfg.DatabaseDSN)
	if err != nil {
		return nil, nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, nil, err
	}

	return repository.NewGormTaskRepository(db), sqlDB, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
