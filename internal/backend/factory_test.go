package backend

import (
	"context"
	"path/filepath"
	"testing"

	"budget/internal/config"
	"budget/internal/core"
)

func TestFromAppConfig(t *testing.T) {
	if _, err := FromAppConfig(nil); err == nil {
		t.Error("expected error for nil config")
	}
	if _, err := FromAppConfig(&config.Config{DataBackend: "sheets"}); err == nil {
		t.Error("expected error for unknown backend")
	}

	cfg, err := FromAppConfig(&config.Config{DataBackend: "bolt", BoltDBPath: "x.bolt"})
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Type != BoltBackend || cfg.BoltDBPath != "x.bolt" {
		t.Errorf("unexpected backend config %+v", cfg)
	}
}

func TestCreateBackend(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()
	factory := NewFactory(nil)

	tests := []struct {
		name   string
		config Config
	}{
		{"file", Config{Type: FileBackend, BudgetFile: filepath.Join(dir, "budget.json")}},
		{"sqlite", Config{Type: SQLiteBackend, SQLiteDBPath: filepath.Join(dir, "budget.db")}},
		{"bolt", Config{Type: BoltBackend, BoltDBPath: filepath.Join(dir, "budget.bolt")}},
		{"memory", Config{Type: MemoryBackend}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := factory.CreateBackend(ctx, tt.config)
			if err != nil {
				t.Fatalf("CreateBackend() error = %v", err)
			}
			defer res.Cleanup()

			snap := core.Snapshot{
				Expenses: []core.Record{{Description: "Bus", Amount: "2.10", Category: "Transportation", Date: "2025-03-14"}},
			}.Normalize()
			if err := res.Store.Save(ctx, snap); err != nil {
				t.Fatalf("Save() error = %v", err)
			}
			got, err := res.Store.Load(ctx)
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			if len(got.Expenses) != 1 || got.Expenses[0].Description != "Bus" {
				t.Errorf("unexpected snapshot %+v", got)
			}
		})
	}
}

func TestCreateBackendRejectsMissingPath(t *testing.T) {
	_, err := NewFactory(nil).CreateBackend(context.Background(), Config{Type: SQLiteBackend})
	if err == nil {
		t.Fatal("expected error")
	}
}
