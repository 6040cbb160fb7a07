package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"budget/internal/core"
)

func newTestRepository(t *testing.T) (*Repository, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data", "budget.db")
	repo, err := NewRepository(path)
	if err != nil {
		t.Fatalf("new repository: %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	return repo, path
}

func TestEmptyDatabaseLoadsEmpty(t *testing.T) {
	repo, _ := newTestRepository(t)
	snap, err := repo.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(snap.Income) != 0 || len(snap.Expenses) != 0 {
		t.Fatalf("expected empty, got %+v", snap)
	}
}

func TestSaveReplacesAllRows(t *testing.T) {
	repo, path := newTestRepository(t)
	ctx := context.Background()

	first := core.Snapshot{
		Income:   []core.Record{{Description: "a", Amount: "1", Category: "Salary", Date: "2025-01-01"}},
		Expenses: []core.Record{{Description: "b", Amount: "2", Category: "Food", Date: "2025-01-01"}},
	}
	if err := repo.Save(ctx, first); err != nil {
		t.Fatalf("save: %v", err)
	}

	second := core.Snapshot{
		Expenses: []core.Record{
			{Description: "c", Amount: "0.10", Category: "Food", Date: "2025-01-02"},
			{Description: "d", Amount: "0.20", Category: "Other", Date: "2025-01-03"},
		},
	}
	if err := repo.Save(ctx, second); err != nil {
		t.Fatalf("save: %v", err)
	}
	repo.Close()

	reopened, err := NewRepository(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()

	got, err := reopened.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got.Income) != 0 || len(got.Expenses) != 2 {
		t.Fatalf("unexpected snapshot: %+v", got)
	}
	if got.Expenses[0].Description != "c" || got.Expenses[1].Description != "d" {
		t.Fatalf("order not preserved: %+v", got.Expenses)
	}
	if got.Expenses[0].Amount != "0.10" {
		t.Fatalf("amount text changed: %q", got.Expenses[0].Amount)
	}
}
