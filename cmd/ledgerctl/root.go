package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/MrJamesThe3rd/layby/internal/config"
	"github.com/MrJamesThe3rd/layby/internal/database"
	"github.com/MrJamesThe3rd/layby/internal/events"
	"github.com/MrJamesThe3rd/layby/internal/ledger"
	ledgerStore "github.com/MrJamesThe3rd/layby/internal/ledger/store"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "ledgerctl",
	Short: "Administrative commands for the layby ledger",
	Long: `ledgerctl runs maintenance tasks against the ledger database.

Configuration is read from the environment (and a .env file when present),
the same way the API server reads it.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		_ = godotenv.Load()

		loaded, err := config.Load()
		if err != nil {
			return err
		}

		cfg = loaded

		return nil
	},
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		slog.Error("command failed", "error", err)
		os.Exit(1)
	}
}

func openDB() (*sql.DB, error) {
	db, err := database.New(cfg.ConnectionString(), database.Options{MaxOpenConns: 2})
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	return db, nil
}

// withLedger opens the database and hands a ledger service to fn.
func withLedger(ctx context.Context, fn func(ctx context.Context, svc *ledger.Service) error) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	svc := ledger.NewService(ledgerStore.New(db),
		ledger.WithMaxAttempts(cfg.Ledger.MaxAttempts),
		ledger.WithPublisher(events.NewLogPublisher(slog.Default())),
	)

	return fn(ctx, svc)
}
