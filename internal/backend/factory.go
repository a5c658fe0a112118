package backend

import (
	"context"
	"fmt"
	"log/slog"

	"dailyfuel/internal/kvstore"
)

// DefaultFactory implements the Factory interface.
type DefaultFactory struct {
	logger *slog.Logger
}

// NewFactory creates a new store factory.
func NewFactory(logger *slog.Logger) Factory {
	if logger == nil {
		logger = slog.Default()
	}
	return &DefaultFactory{logger: logger}
}

// CreateStore implements Factory.CreateStore.
func (f *DefaultFactory) CreateStore(_ context.Context, config Config) (*Result, error) {
	if !config.Type.IsValid() {
		return nil, fmt.Errorf("invalid backend type: %s", config.Type)
	}

	switch config.Type {
	case SQLiteBackend:
		store, err := kvstore.NewSQLiteStore(config.SQLiteDBPath)
		if err != nil {
			return nil, fmt.Errorf("initialize sqlite store: %w", err)
		}
		f.logger.Info("Initialized SQLite backend",
			"component", "backend", "db_path", config.SQLiteDBPath)
		return &Result{Store: store, Cleanup: store.Close}, nil

	case FileBackend:
		store, err := kvstore.NewFileStore(config.DataFilePath)
		if err != nil {
			return nil, fmt.Errorf("initialize file store: %w", err)
		}
		f.logger.Info("Initialized file backend",
			"component", "backend", "path", config.DataFilePath)
		return &Result{Store: store, Cleanup: store.Close}, nil

	case MemoryBackend:
		f.logger.Info("Initialized memory backend", "component", "backend")
		return &Result{Store: kvstore.NewMemoryStore(), Cleanup: nil}, nil

	default:
		return nil, fmt.Errorf("unsupported backend type: %s", config.Type)
	}
}
