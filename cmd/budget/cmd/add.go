package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"budget/internal/cli"
	"budget/internal/core"
	applog "budget/internal/log"
)

var incomeCategory, expenseCategory string

var incomeCmd = &cobra.Command{
	Use:   "income <description> <amount>",
	Short: "Record an income entry dated today",
	Long: `Record an income entry dated today. Flags go before the description;
everything after it is taken literally, so "-5" reaches the ledger as an
amount and is rejected there.`,
	Example: `  budget income "Paycheck" 1000.00
  budget income --category Investment "Dividends" 42.10`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAdd(cmd, core.KindIncome, args[0], args[1], incomeCategory)
	},
}

var expenseCmd = &cobra.Command{
	Use:   "expense <description> <amount>",
	Short: "Record an expense entry dated today",
	Long: `Record an expense entry dated today. Flags go before the description;
everything after it is taken literally.`,
	Example: `  budget expense --category Food "Groceries" 150.50`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAdd(cmd, core.KindExpense, args[0], args[1], expenseCategory)
	},
}

func init() {
	incomeCmd.Flags().StringVarP(&incomeCategory, "category", "c", "", "income category (default Salary)")
	expenseCmd.Flags().StringVarP(&expenseCategory, "category", "c", "", "expense category (default Other)")

	incomeCmd.Flags().SetInterspersed(false)
	expenseCmd.Flags().SetInterspersed(false)
}

func runAdd(cmd *cobra.Command, kind core.Kind, description, amount, category string) error {
	cfg, logger, err := setup()
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	app, err := cli.OpenLedger(ctx, cfg, logger)
	if err != nil {
		logger.Error("Failed to open ledger", applog.FieldError, err)
		return err
	}
	defer app.Close()

	var t core.Transaction
	if kind == core.KindIncome {
		t, err = app.Ledger.AddIncome(ctx, description, amount, category)
	} else {
		t, err = app.Ledger.AddExpense(ctx, description, amount, category)
	}
	if err != nil {
		return fmt.Errorf("add %s: %w", kind, err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Recorded %s %s %s (%s) on %s\n",
		kind, core.FormatAmount(t.Amount), t.Description, t.Category, t.Date)
	fmt.Fprintf(cmd.OutOrStdout(), "Balance: %s\n", core.FormatAmount(app.Ledger.Balance()))
	return nil
}
