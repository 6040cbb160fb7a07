package cmd

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"budget/internal/ledger"
	"budget/internal/storage/memory"
)

func TestSummaryOutput(t *testing.T) {
	ctx := context.Background()
	clock := func() time.Time { return time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC) }
	l, err := ledger.New(ctx, memory.New(), ledger.WithClock(clock))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := l.AddIncome(ctx, "Paycheck", "1000.00", ""); err != nil {
		t.Fatal(err)
	}
	if _, err := l.AddExpense(ctx, "Groceries", "150.50", "Food"); err != nil {
		t.Fatal(err)
	}

	out := buildSummary(l)
	if out.Balance.String() != "849.5" || out.Month != "2025-03" {
		t.Errorf("unexpected summary %+v", out)
	}
	if out.ExpensesByCategory["Food"] != "150.5" || out.ExpensesByCategory["Housing"] != "0" {
		t.Errorf("unexpected categories %v", out.ExpensesByCategory)
	}

	var buf bytes.Buffer
	printSummary(&buf, l)
	for _, want := range []string{"849.50", "=== 2025-03 ===", "Food:", "150.50"} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("output missing %q:\n%s", want, buf.String())
		}
	}
}
