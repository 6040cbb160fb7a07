package storage

import (
	"context"

	"budget/internal/core"
)

// Store is the durable home of a ledger's full state. Every Save replaces the
// previous contents entirely.
type Store interface {
	// Load returns the persisted snapshot. A store that does not exist yet
	// yields an empty snapshot and no error.
	Load(ctx context.Context) (core.Snapshot, error)

	// Save overwrites the store with s.
	Save(ctx context.Context, s core.Snapshot) error

	Close() error
}
