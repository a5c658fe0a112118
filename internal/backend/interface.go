// Package backend selects and constructs the persistent store
// implementation the rest of the tracker runs on.
package backend

import (
	"context"

	"dailyfuel/internal/kvstore"
)

// CleanupFunc releases backend resources at shutdown.
type CleanupFunc func() error

// Result contains the constructed store and its cleanup function.
type Result struct {
	Store   kvstore.Store
	Cleanup CleanupFunc
}

// Factory creates stores based on configuration.
type Factory interface {
	CreateStore(ctx context.Context, config Config) (*Result, error)
}

// Config holds configuration for store creation.
type Config struct {
	Type Type

	// SQLite specific
	SQLiteDBPath string

	// File specific
	DataFilePath string
}

// Type represents the kind of persistent store backing the tracker.
type Type string

const (
	SQLiteBackend Type = "sqlite"
	FileBackend   Type = "file"
	MemoryBackend Type = "memory"
)

// String implements fmt.Stringer
func (t Type) String() string {
	return string(t)
}

// IsValid returns true if the backend type is valid.
func (t Type) IsValid() bool {
	switch t {
	case SQLiteBackend, FileBackend, MemoryBackend:
		return true
	default:
		return false
	}
}
