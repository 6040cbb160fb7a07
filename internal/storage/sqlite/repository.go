// Package sqlite stores a ledger snapshot in a SQLite database.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"budget/internal/core"

	_ "modernc.org/sqlite"
)

const (
	deleteAllSQL = `DELETE FROM transactions`
	insertSQL    = `INSERT INTO transactions (kind, position, description, amount, category, date) VALUES (?, ?, ?, ?, ?, ?)`
	selectAllSQL = `SELECT kind, description, amount, category, date FROM transactions ORDER BY kind, position`
)

type Repository struct {
	db *sql.DB
}

func NewRepository(dbPath string) (*Repository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Repository{db: db}, nil
}

func (r *Repository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Load implements storage.Store. Amounts are kept as TEXT so the exact
// decimal survives the round trip.
func (r *Repository) Load(ctx context.Context) (core.Snapshot, error) {
	rows, err := r.db.QueryContext(ctx, selectAllSQL)
	if err != nil {
		return core.Snapshot{}, fmt.Errorf("query transactions: %w", err)
	}
	defer rows.Close()

	snap := core.Snapshot{}.Normalize()
	for rows.Next() {
		var (
			kind   string
			amount string
			rec    core.Record
		)
		if err := rows.Scan(&kind, &rec.Description, &amount, &rec.Category, &rec.Date); err != nil {
			return core.Snapshot{}, fmt.Errorf("scan transaction: %w", err)
		}
		rec.Amount = json.Number(amount)

		switch core.Kind(kind) {
		case core.KindIncome:
			snap.Income = append(snap.Income, rec)
		case core.KindExpense:
			snap.Expenses = append(snap.Expenses, rec)
		default:
			return core.Snapshot{}, fmt.Errorf("unknown transaction kind %q", kind)
		}
	}
	if err := rows.Err(); err != nil {
		return core.Snapshot{}, fmt.Errorf("iterate transactions: %w", err)
	}
	return snap, nil
}

// Save implements storage.Store by replacing every row inside one
// transaction.
func (r *Repository) Save(ctx context.Context, snap core.Snapshot) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, deleteAllSQL); err != nil {
		return fmt.Errorf("clear transactions: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, insertSQL)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	insert := func(kind core.Kind, records []core.Record) error {
		for i, rec := range records {
			if _, err := stmt.ExecContext(ctx, string(kind), i, rec.Description, rec.Amount.String(), rec.Category, rec.Date); err != nil {
				return fmt.Errorf("insert %s[%d]: %w", kind, i, err)
			}
		}
		return nil
	}
	if err := insert(core.KindIncome, snap.Income); err != nil {
		return err
	}
	if err := insert(core.KindExpense, snap.Expenses); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	slog.DebugContext(ctx, "Ledger saved to SQLite",
		"income", len(snap.Income),
		"expenses", len(snap.Expenses))
	return nil
}
