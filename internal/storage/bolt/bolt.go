// Package bolt stores a ledger snapshot in a bbolt database.
package bolt

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"

	"budget/internal/core"
)

// Bucket and key names.
const (
	BucketLedger = "ledger"
	KeySnapshot  = "snapshot"
)

// Store keeps the whole ledger document under a single key.
type Store struct {
	db *bolt.DB
}

// New opens (or creates) the database and initializes the bucket.
func New(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := bolt.Open(dbPath, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists([]byte(BucketLedger)); err != nil {
			return fmt.Errorf("failed to create bucket %s: %w", BucketLedger, err)
		}
		return nil
	})
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Load implements storage.Store
func (s *Store) Load(ctx context.Context) (core.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return core.Snapshot{}, err
	}
	var snap core.Snapshot
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(BucketLedger))
		if b == nil {
			return fmt.Errorf("bucket %s not found", BucketLedger)
		}
		data := b.Get([]byte(KeySnapshot))
		if data == nil {
			return nil
		}
		return json.Unmarshal(data, &snap)
	})
	if err != nil {
		return core.Snapshot{}, fmt.Errorf("load snapshot: %w", err)
	}
	return snap.Normalize(), nil
}

// Save implements storage.Store
func (s *Store) Save(ctx context.Context, snap core.Snapshot) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := json.Marshal(snap.Normalize())
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(BucketLedger))
		if b == nil {
			return fmt.Errorf("bucket %s not found", BucketLedger)
		}
		return b.Put([]byte(KeySnapshot), data)
	})
}
