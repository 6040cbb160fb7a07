// Package ledger owns the income and expense records, computes the derived
// views and keeps the backing store in sync after every addition.
package ledger

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"budget/internal/core"
	applog "budget/internal/log"
	"budget/internal/storage"
)

// MonthLayout is the year-month prefix used to select records for the
// monthly summary.
const MonthLayout = "2006-01"

// Notifier is told about every transaction once it has been persisted.
type Notifier interface {
	TransactionRecorded(ctx context.Context, t core.Transaction) error
}

// Option configures a Ledger.
type Option func(*Ledger)

// WithClock replaces time.Now as the source of creation dates and of the
// current month.
func WithClock(now func() time.Time) Option {
	return func(l *Ledger) { l.now = now }
}

// WithNotifier registers a notifier for recorded transactions.
func WithNotifier(n Notifier) Option {
	return func(l *Ledger) { l.notifier = n }
}

// WithLogger overrides the ledger's logger.
func WithLogger(logger *applog.Logger) Option {
	return func(l *Ledger) { l.logger = logger }
}

// Ledger holds two ordered sequences, one per kind. After a successful
// AddIncome or AddExpense the store contains exactly these sequences.
//
// The mutex serializes callers inside one process. Two Ledgers sharing a
// store are not coordinated: each rewrites the whole store, so the last
// writer wins.
type Ledger struct {
	mu       sync.Mutex
	store    storage.Store
	income   []core.Transaction
	expenses []core.Transaction

	now      func() time.Time
	notifier Notifier
	logger   *applog.Logger
}

// New loads prior state from store. An absent store starts an empty ledger;
// an unreadable or malformed one is an error.
func New(ctx context.Context, store storage.Store, opts ...Option) (*Ledger, error) {
	l := &Ledger{
		store:  store,
		now:    time.Now,
		logger: applog.ForComponent(applog.ComponentLedger),
	}
	for _, opt := range opts {
		opt(l)
	}

	snap, err := store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: load ledger: %w", core.ErrStorageUnavailable, err)
	}
	if l.income, err = core.Transactions(core.KindIncome, snap.Income); err != nil {
		return nil, fmt.Errorf("%w: load ledger: %w", core.ErrStorageUnavailable, err)
	}
	if l.expenses, err = core.Transactions(core.KindExpense, snap.Expenses); err != nil {
		return nil, fmt.Errorf("%w: load ledger: %w", core.ErrStorageUnavailable, err)
	}

	l.logger.DebugContext(ctx, "Ledger loaded",
		"income", len(l.income),
		"expenses", len(l.expenses))
	return l, nil
}

// AddIncome records an income. An empty category means "Salary".
func (l *Ledger) AddIncome(ctx context.Context, description, amount, category string) (core.Transaction, error) {
	return l.add(ctx, core.KindIncome, description, amount, category)
}

// AddExpense records an expense. An empty category means "Other".
func (l *Ledger) AddExpense(ctx context.Context, description, amount, category string) (core.Transaction, error) {
	return l.add(ctx, core.KindExpense, description, amount, category)
}

// add validates, appends and rewrites the store. If the write fails the
// record stays in memory, so memory is ahead of storage until the next
// successful write.
func (l *Ledger) add(ctx context.Context, kind core.Kind, description, amount, category string) (core.Transaction, error) {
	t, err := core.NewTransaction(kind, description, amount, category, l.now())
	if err != nil {
		return core.Transaction{}, err
	}

	l.mu.Lock()
	if kind == core.KindIncome {
		l.income = append(l.income, t)
	} else {
		l.expenses = append(l.expenses, t)
	}
	err = l.store.Save(ctx, l.snapshotLocked())
	l.mu.Unlock()

	if err != nil {
		l.logger.ErrorContext(ctx, "Failed to persist ledger",
			applog.FieldError, err,
			applog.FieldOperation, applog.OpSave,
			applog.FieldKind, kind.String())
		return core.Transaction{}, fmt.Errorf("%w: save ledger: %w", core.ErrStorageUnavailable, err)
	}

	if l.notifier != nil {
		if err := l.notifier.TransactionRecorded(ctx, t); err != nil {
			// The record is already persisted
			l.logger.WarnContext(ctx, "Failed to publish transaction event",
				applog.FieldError, err,
				applog.FieldKind, kind.String())
		}
	}
	return t, nil
}

// TotalIncome sums every income amount; zero when there is none.
func (l *Ledger) TotalIncome() decimal.Decimal {
	l.mu.Lock()
	defer l.mu.Unlock()
	return total(l.income)
}

// TotalExpenses sums every expense amount; zero when there is none.
func (l *Ledger) TotalExpenses() decimal.Decimal {
	l.mu.Lock()
	defer l.mu.Unlock()
	return total(l.expenses)
}

// Balance is TotalIncome minus TotalExpenses.
func (l *Ledger) Balance() decimal.Decimal {
	l.mu.Lock()
	defer l.mu.Unlock()
	return total(l.income).Sub(total(l.expenses))
}

// ExpensesByCategory maps every fixed expense category to the sum of the
// expenses tagged with it. Expenses whose category is outside the fixed set
// are left out.
func (l *Ledger) ExpensesByCategory() map[string]decimal.Decimal {
	l.mu.Lock()
	defer l.mu.Unlock()

	totals := make(map[string]decimal.Decimal)
	for _, c := range core.KindExpense.Categories() {
		totals[c] = decimal.Zero
	}
	for _, e := range l.expenses {
		if sum, ok := totals[e.Category]; ok {
			totals[e.Category] = sum.Add(e.Amount)
		}
	}
	return totals
}

// ExpenseBreakdown is ExpensesByCategory in the fixed category order.
func (l *Ledger) ExpenseBreakdown() []core.CategoryAmount {
	totals := l.ExpensesByCategory()
	cats := core.KindExpense.Categories()
	out := make([]core.CategoryAmount, 0, len(cats))
	for _, c := range cats {
		out = append(out, core.CategoryAmount{Name: c, Amount: totals[c]})
	}
	return out
}

// MonthlySummary aggregates the records dated in the current calendar month.
func (l *Ledger) MonthlySummary() core.MonthSummary {
	month := l.now().Format(MonthLayout)

	l.mu.Lock()
	defer l.mu.Unlock()

	income := decimal.Zero
	for _, t := range l.income {
		if t.InMonth(month) {
			income = income.Add(t.Amount)
		}
	}
	expenses := decimal.Zero
	for _, t := range l.expenses {
		if t.InMonth(month) {
			expenses = expenses.Add(t.Amount)
		}
	}
	return core.MonthSummary{
		Month:    month,
		Income:   income,
		Expenses: expenses,
		Balance:  income.Sub(expenses),
	}
}

// Summary returns totals and both record lists in one consistent read.
func (l *Ledger) Summary() core.Summary {
	l.mu.Lock()
	defer l.mu.Unlock()

	in, out := total(l.income), total(l.expenses)
	return core.Summary{
		TotalIncome:   in,
		TotalExpenses: out,
		Balance:       in.Sub(out),
		Income:        append([]core.Transaction(nil), l.income...),
		Expenses:      append([]core.Transaction(nil), l.expenses...),
	}
}

// Income returns the income records in insertion order.
func (l *Ledger) Income() []core.Transaction {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]core.Transaction(nil), l.income...)
}

// Expenses returns the expense records in insertion order.
func (l *Ledger) Expenses() []core.Transaction {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]core.Transaction(nil), l.expenses...)
}

// IncomeCategories returns the fixed income category set.
func (l *Ledger) IncomeCategories() []string {
	return core.KindIncome.Categories()
}

// ExpenseCategories returns the fixed expense category set.
func (l *Ledger) ExpenseCategories() []string {
	return core.KindExpense.Categories()
}

// Snapshot returns the ledger in its stored form.
func (l *Ledger) Snapshot() core.Snapshot {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.snapshotLocked()
}

func (l *Ledger) snapshotLocked() core.Snapshot {
	return core.Snapshot{
		Income:   core.Records(l.income),
		Expenses: core.Records(l.expenses),
	}
}

func total(ts []core.Transaction) decimal.Decimal {
	amounts := make([]decimal.Decimal, len(ts))
	for i, t := range ts {
		amounts[i] = t.Amount
	}
	return core.Sum(amounts...)
}
