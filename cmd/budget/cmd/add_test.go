package cmd

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"budget/internal/config"
	"budget/internal/core"
	applog "budget/internal/log"
)

// runRoot executes the CLI against an ephemeral memory backend.
func runRoot(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("DATA_BACKEND", config.BackendMemory)
	t.Setenv("BUDGET_FILE", filepath.Join(t.TempDir(), "absent.json"))
	t.Setenv("PORT", "8080")
	t.Setenv("AMQP_URL", "")
	t.Setenv("LOG_LEVEL", "error")
	t.Cleanup(func() {
		logLevel, incomeCategory, expenseCategory = "", "", ""
		rootCmd.SetArgs(nil)
		rootCmd.SetOut(nil)
	})

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestExpenseCommand(t *testing.T) {
	out, err := runRoot(t, "expense", "--category", "Food", "Groceries", "150.50")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "Recorded expense 150.50 Groceries (Food)") {
		t.Errorf("unexpected output %q", out)
	}
}

func TestNegativeAmountReachesLedger(t *testing.T) {
	tests := [][]string{
		{"expense", "rent", "-5"},
		{"income", "--category", "Business", "refund", "-5"},
	}
	for _, args := range tests {
		t.Run(strings.Join(args, " "), func(t *testing.T) {
			_, err := runRoot(t, args...)
			if !errors.Is(err, core.ErrInvalidAmount) {
				t.Fatalf("expected ErrInvalidAmount, got %v", err)
			}
		})
	}
}

func TestLogLevelFlagIsValidated(t *testing.T) {
	if _, err := runRoot(t, "--log-level", "verbose", "summary"); err == nil {
		t.Fatal("expected an invalid --log-level to be reported")
	}
}

func TestLogTransactionEvent(t *testing.T) {
	var buf bytes.Buffer
	logger := applog.New(applog.Config{
		Component: applog.ComponentAMQP,
		Handler:   slog.NewTextHandler(&buf, nil),
	})
	tx := core.Transaction{
		Kind:        core.KindIncome,
		Description: "Paycheck",
		Amount:      decimal.RequireFromString("1000"),
		Category:    "Salary",
		Date:        "2025-03-14",
	}

	if err := logTransactionEvent(logger)(context.Background(), tx, time.Now()); err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"Transaction recorded", "kind=income", "amount=1000.00", "category=Salary"} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("log missing %q: %s", want, buf.String())
		}
	}
}
