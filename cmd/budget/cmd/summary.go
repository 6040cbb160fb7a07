package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"budget/internal/cli"
	"budget/internal/core"
	"budget/internal/ledger"
	applog "budget/internal/log"
)

var summaryJSON bool

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Print totals, balance, this month and spending per category",
	Args:  cobra.NoArgs,
	RunE:  runSummary,
}

func init() {
	summaryCmd.Flags().BoolVar(&summaryJSON, "json", false, "print the summary as JSON")
}

type summaryOutput struct {
	TotalIncome        json.Number            `json:"total_income"`
	TotalExpenses      json.Number            `json:"total_expenses"`
	Balance            json.Number            `json:"balance"`
	Month              string                 `json:"month"`
	MonthIncome        json.Number            `json:"month_income"`
	MonthExpenses      json.Number            `json:"month_expenses"`
	MonthBalance       json.Number            `json:"month_balance"`
	ExpensesByCategory map[string]json.Number `json:"expenses_by_category"`
}

func runSummary(cmd *cobra.Command, args []string) error {
	cfg, logger, err := setup()
	if err != nil {
		return err
	}

	app, err := cli.OpenLedger(cmd.Context(), cfg, logger)
	if err != nil {
		logger.Error("Failed to open ledger", applog.FieldError, err)
		return err
	}
	defer app.Close()

	if summaryJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(buildSummary(app.Ledger))
	}
	printSummary(cmd.OutOrStdout(), app.Ledger)
	return nil
}

func buildSummary(l *ledger.Ledger) summaryOutput {
	sum := l.Summary()
	month := l.MonthlySummary()
	out := summaryOutput{
		TotalIncome:        json.Number(sum.TotalIncome.String()),
		TotalExpenses:      json.Number(sum.TotalExpenses.String()),
		Balance:            json.Number(sum.Balance.String()),
		Month:              month.Month,
		MonthIncome:        json.Number(month.Income.String()),
		MonthExpenses:      json.Number(month.Expenses.String()),
		MonthBalance:       json.Number(month.Balance.String()),
		ExpensesByCategory: make(map[string]json.Number),
	}
	for name, amount := range l.ExpensesByCategory() {
		out.ExpensesByCategory[name] = json.Number(amount.String())
	}
	return out
}

func printSummary(w io.Writer, l *ledger.Ledger) {
	sum := l.Summary()
	month := l.MonthlySummary()

	fmt.Fprintln(w, "\n=== Budget ===")
	fmt.Fprintf(w, "Total income:   %12s\n", core.FormatAmount(sum.TotalIncome))
	fmt.Fprintf(w, "Total expenses: %12s\n", core.FormatAmount(sum.TotalExpenses))
	fmt.Fprintf(w, "Balance:        %12s\n", core.FormatAmount(sum.Balance))

	fmt.Fprintf(w, "\n=== %s ===\n", month.Month)
	fmt.Fprintf(w, "Income:         %12s\n", core.FormatAmount(month.Income))
	fmt.Fprintf(w, "Expenses:       %12s\n", core.FormatAmount(month.Expenses))
	fmt.Fprintf(w, "Balance:        %12s\n", core.FormatAmount(month.Balance))

	fmt.Fprintln(w, "\n=== Expenses by category ===")
	for _, c := range l.ExpenseBreakdown() {
		fmt.Fprintf(w, "%-15s %12s\n", c.Name+":", core.FormatAmount(c.Amount))
	}
	fmt.Fprintln(w)
}
