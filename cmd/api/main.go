package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/layby/internal/auth"
	"github.com/MrJamesThe3rd/layby/internal/config"
	"github.com/MrJamesThe3rd/layby/internal/database"
	"github.com/MrJamesThe3rd/layby/internal/events"
	laybyHttp "github.com/MrJamesThe3rd/layby/internal/http"
	importHandler "github.com/MrJamesThe3rd/layby/internal/http/importcsv"
	paymentHandler "github.com/MrJamesThe3rd/layby/internal/http/payment"
	purchaseHandler "github.com/MrJamesThe3rd/layby/internal/http/purchase"
	walletHandler "github.com/MrJamesThe3rd/layby/internal/http/wallet"
	"github.com/MrJamesThe3rd/layby/internal/importer"
	"github.com/MrJamesThe3rd/layby/internal/ledger"
	ledgerStore "github.com/MrJamesThe3rd/layby/internal/ledger/store"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	if cfg.Auth.Secret == "" {
		slog.Error("JWT_SECRET must be set")
		os.Exit(1)
	}

	db, err := database.New(cfg.ConnectionString(), database.Options{MaxOpenConns: cfg.DB.MaxConns})
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	logger := slog.Default().With("app", cfg.App.Name)

	publishers := events.Multi{events.NewLogPublisher(logger)}
	if cfg.Events.WebhookURL != "" {
		publishers = append(publishers, events.NewWebhookPublisher(cfg.Events.WebhookURL, cfg.Events.WebhookToken, cfg.Events.Timeout))
	}

	var (
		ledgerService = ledger.NewService(ledgerStore.New(db),
			ledger.WithPublisher(publishers),
			ledger.WithLogger(logger),
			ledger.WithMaxAttempts(cfg.Ledger.MaxAttempts),
		)
		importService = importer.NewService(ledgerService)
		tokens        = auth.NewTokens(cfg.Auth.Secret, cfg.Auth.Issuer, cfg.Auth.TokenTTL)
	)

	var (
		purchaseH = purchaseHandler.NewHandler(ledgerService)
		paymentH  = paymentHandler.NewHandler(ledgerService)
		walletH   = walletHandler.NewHandler(ledgerService)
		importH   = importHandler.NewHandler(importService)
	)

	router := laybyHttp.New(tokens, laybyHttp.Options{AllowedOrigins: cfg.CORS.AllowedOrigins},
		purchaseH, paymentH, walletH, importH)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.Server.Timeout,
		WriteTimeout:      cfg.Server.Timeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.Timeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("shutdown failed", "error", err)
		}
	}()

	slog.Info("starting server", "port", srv.Addr)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
