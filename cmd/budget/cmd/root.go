// Package cmd provides the CLI commands for budget.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"budget/internal/cli"
	"budget/internal/config"
	applog "budget/internal/log"
)

var logLevel string

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "budget",
	Short: "Track personal income and expenses",
	Long: `budget records income and expenses in a single ledger and reports
totals, the balance, this month's figures and spending per category.

Configuration is read from the environment (and a .env file if present):
  PORT, DATA_BACKEND, BUDGET_FILE, SQLITE_DB_PATH, BOLT_DB_PATH,
  AMQP_URL, AMQP_EXCHANGE, AMQP_QUEUE, RATE_LIMIT_RPM, LOG_LEVEL

Example:
  budget serve
  budget income "Paycheck" 1000.00
  budget expense --category Food "Groceries" 150.50
  budget summary --json`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		cli.LoadEnvFile()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "override LOG_LEVEL (debug, info, warn, error)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(incomeCmd)
	rootCmd.AddCommand(expenseCmd)
	rootCmd.AddCommand(summaryCmd)
	rootCmd.AddCommand(eventsCmd)
}

// setup loads and validates configuration and installs the process logger.
func setup() (*config.Config, *applog.Logger, error) {
	cfg, err := cli.LoadAndValidateConfig(func(c *config.Config) {
		if logLevel != "" {
			c.LogLevel = logLevel
		}
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return nil, nil, err
	}
	return cfg, cli.SetupLogger(cfg.LogLevel), nil
}
