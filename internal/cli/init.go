// Package cli provides the initialization shared by the budget commands:
// logging, environment, configuration and opening the ledger.
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"budget/internal/amqp"
	"budget/internal/backend"
	"budget/internal/config"
	"budget/internal/ledger"
	applog "budget/internal/log"
)

// SetupLogger installs a text logger at the given level as the process
// default and returns it scoped to the app component.
func SetupLogger(level string) *applog.Logger {
	logger := applog.New(applog.Config{
		Component: applog.ComponentApp,
		Handler: slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
			Level: applog.ParseLevel(level),
		}),
	})
	applog.SetDefault(logger)
	return logger
}

// LoadEnvFile loads the .env file for local development.
// Errors are ignored silently as this is optional in production.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// LoadAndValidateConfig loads configuration from the environment, applies
// overrides such as command-line flags, then validates the result.
func LoadAndValidateConfig(overrides ...func(*config.Config)) (*config.Config, error) {
	cfg := config.Load()
	for _, override := range overrides {
		override(cfg)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// App bundles the ledger with the resources that must be released on exit.
type App struct {
	Config *config.Config
	Ledger *ledger.Ledger
	Events *amqp.Client

	cleanups []func() error
}

// Close releases resources in reverse order of acquisition.
func (a *App) Close() error {
	var first error
	for i := len(a.cleanups) - 1; i >= 0; i-- {
		if err := a.cleanups[i](); err != nil && first == nil {
			first = err
		}
	}
	a.cleanups = nil
	return first
}

// OpenLedger creates the configured store and loads the ledger from it.
// When AMQP is configured a client is attached as the ledger notifier; a
// broker that cannot be reached only disables events.
func OpenLedger(ctx context.Context, cfg *config.Config, logger *applog.Logger) (*App, error) {
	app := &App{Config: cfg}

	bcfg, err := backend.FromAppConfig(cfg)
	if err != nil {
		return nil, err
	}
	res, err := backend.NewFactory(logger.WithComponent(applog.ComponentBackend)).CreateBackend(ctx, bcfg)
	if err != nil {
		return nil, err
	}
	if res.Cleanup != nil {
		app.cleanups = append(app.cleanups, res.Cleanup)
	}

	opts := []ledger.Option{ledger.WithLogger(logger.WithComponent(applog.ComponentLedger))}
	if cfg.EventsEnabled() {
		client, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.WarnContext(ctx, "Failed to initialize AMQP client, continuing without events", applog.FieldError, err)
		} else {
			logger.InfoContext(ctx, "Initialized AMQP client",
				"exchange", cfg.AMQPExchange,
				"queue", cfg.AMQPQueue)
			app.Events = client
			app.cleanups = append(app.cleanups, client.Close)
			opts = append(opts, ledger.WithNotifier(client))
		}
	}

	l, err := ledger.New(ctx, res.Store, opts...)
	if err != nil {
		app.Close()
		return nil, err
	}
	app.Ledger = l

	logger.InfoContext(ctx, "Ledger ready",
		applog.FieldBackend, cfg.DataBackend,
		applog.FieldStorePath, cfg.StorePath(),
		"events_enabled", app.Events != nil)
	return app, nil
}

// OpenEvents connects to the broker for consumers that do not need the
// ledger.
func OpenEvents(cfg *config.Config) (*amqp.Client, error) {
	if !cfg.EventsEnabled() {
		return nil, fmt.Errorf("AMQP_URL is not set")
	}
	return amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
}

// SignalContext returns a context cancelled on SIGINT or SIGTERM.
func SignalContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
}
