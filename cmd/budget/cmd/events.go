package cmd

import (
	"context"
	"errors"
	"time"

	"github.com/spf13/cobra"

	"budget/internal/amqp"
	"budget/internal/cli"
	"budget/internal/core"
	applog "budget/internal/log"
)

var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "Log transaction-recorded events from the broker",
	Long: `Consume the transaction-recorded queue and log every event until
interrupted. Requires AMQP_URL.`,
	Args: cobra.NoArgs,
	RunE: runEvents,
}

func runEvents(cmd *cobra.Command, args []string) error {
	cfg, logger, err := setup()
	if err != nil {
		return err
	}
	logger = logger.WithComponent(applog.ComponentAMQP)

	client, err := cli.OpenEvents(cfg)
	if err != nil {
		logger.Error("Failed to initialize AMQP client", applog.FieldError, err)
		return err
	}
	defer client.Close()

	ctx, stop := cli.SignalContext(cmd.Context())
	defer stop()

	logger.Info("Consuming transaction events", "exchange", cfg.AMQPExchange, "queue", cfg.AMQPQueue)
	err = client.ConsumeTransactionRecorded(ctx, logTransactionEvent(logger))
	if err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("Message consumption failed", applog.FieldError, err)
		return err
	}
	logger.Info("Consumer stopped")
	return nil
}

func logTransactionEvent(logger *applog.Logger) amqp.TransactionHandler {
	return func(ctx context.Context, t core.Transaction, recordedAt time.Time) error {
		logger.InfoContext(ctx, "Transaction recorded",
			applog.FieldKind, t.Kind.String(),
			applog.FieldDescription, t.Description,
			applog.FieldAmount, core.FormatAmount(t.Amount),
			applog.FieldCategory, t.Category,
			applog.FieldDate, t.Date,
			"recorded_at", recordedAt)
		return nil
	}
}
