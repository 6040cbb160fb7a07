package bolt

import (
	"context"
	"path/filepath"
	"testing"

	"budget/internal/core"
)

func TestStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "budget.bolt")
	ctx := context.Background()

	s, err := New(path)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	snap, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("load empty: %v", err)
	}
	if len(snap.Income) != 0 || len(snap.Expenses) != 0 {
		t.Fatalf("expected empty snapshot")
	}

	in := core.Snapshot{
		Income: []core.Record{{Description: "Bonus", Amount: "250.25", Category: "Business", Date: "2025-02-01"}},
	}
	if err := s.Save(ctx, in); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	s, err = New(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s.Close()
	out, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(out.Income) != 1 || out.Income[0] != in.Income[0] {
		t.Fatalf("unexpected income: %+v", out.Income)
	}
	if out.Expenses == nil {
		t.Fatalf("expenses should be an empty list")
	}
}
