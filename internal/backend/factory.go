package backend

import (
	"context"
	"fmt"

	applog "budget/internal/log"
	"budget/internal/storage/bolt"
	"budget/internal/storage/file"
	"budget/internal/storage/memory"
	"budget/internal/storage/sqlite"
)

// DefaultFactory implements the Factory interface
type DefaultFactory struct {
	logger *applog.Logger
}

// NewFactory creates a new backend factory
func NewFactory(logger *applog.Logger) Factory {
	if logger == nil {
		logger = applog.ForComponent(applog.ComponentBackend)
	}
	return &DefaultFactory{
		logger: logger,
	}
}

// CreateBackend implements Factory.CreateBackend
func (f *DefaultFactory) CreateBackend(ctx context.Context, config Config) (*BackendResult, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	switch config.Type {
	case FileBackend:
		return f.createFileBackend(ctx, config)
	case SQLiteBackend:
		return f.createSQLiteBackend(ctx, config)
	case BoltBackend:
		return f.createBoltBackend(ctx, config)
	case MemoryBackend:
		return f.createMemoryBackend(ctx, config)
	default:
		return nil, fmt.Errorf("unsupported backend type: %s", config.Type)
	}
}

func (f *DefaultFactory) createFileBackend(ctx context.Context, config Config) (*BackendResult, error) {
	store := file.New(config.BudgetFile)

	f.logger.InfoContext(ctx, "Initialized file backend", applog.FieldStorePath, store.Path())

	return &BackendResult{
		Store:   store,
		Cleanup: store.Close,
	}, nil
}

func (f *DefaultFactory) createSQLiteBackend(ctx context.Context, config Config) (*BackendResult, error) {
	repo, err := sqlite.NewRepository(config.SQLiteDBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize SQLite repository: %w", err)
	}

	f.logger.InfoContext(ctx, "Initialized SQLite backend", applog.FieldStorePath, config.SQLiteDBPath)

	return &BackendResult{
		Store:   repo,
		Cleanup: repo.Close,
	}, nil
}

func (f *DefaultFactory) createBoltBackend(ctx context.Context, config Config) (*BackendResult, error) {
	store, err := bolt.New(config.BoltDBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt database: %w", err)
	}

	f.logger.InfoContext(ctx, "Initialized bolt backend", applog.FieldStorePath, config.BoltDBPath)

	return &BackendResult{
		Store:   store,
		Cleanup: store.Close,
	}, nil
}

func (f *DefaultFactory) createMemoryBackend(ctx context.Context, config Config) (*BackendResult, error) {
	var store *memory.Store
	if config.BudgetFile != "" {
		store = memory.NewFromFile(config.BudgetFile)
	} else {
		store = memory.New()
	}

	f.logger.InfoContext(ctx, "Initialized memory backend", "seed_file", config.BudgetFile)

	return &BackendResult{
		Store:   store,
		Cleanup: store.Close,
	}, nil
}
