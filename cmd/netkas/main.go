package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"netkas/internal/ai"
	"netkas/internal/amqp"
	"netkas/internal/auth"
	"netkas/internal/config"
	apphttp "netkas/internal/http"
	"netkas/internal/pdf"
	"netkas/internal/services"
	"netkas/internal/storage"
)

func main() {
	// Setup structured logging
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// A missing .env file is fine; the environment wins either way.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		logger.Warn("Failed to load .env file", "error", err)
	}

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}

	kv, err := storage.Open(storage.Config{
		Backend:      cfg.DataBackend,
		SQLiteDBPath: cfg.SQLiteDBPath,
	})
	if err != nil {
		logger.Error("Failed to open storage backend", "error", err, "backend", cfg.DataBackend)
		os.Exit(1)
	}
	logger.Info("Initialized storage backend", "backend", cfg.DataBackend)

	// The audit stream is optional; without a broker URL mutations are
	// simply not published.
	var audit *amqp.Client
	if cfg.AMQPURL != "" {
		audit, err = amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Warn("Failed to connect to AMQP broker, audit events disabled", "error", err)
			audit = nil
		} else {
			logger.Info("Connected to AMQP broker", "exchange", cfg.AMQPExchange, "queue", cfg.AMQPQueue)
		}
	}

	accounts := auth.NewStore(kv)
	if err := accounts.Bootstrap(context.Background()); err != nil {
		logger.Error("Failed to bootstrap accounts", "error", err)
		os.Exit(1)
	}

	tokens := auth.NewTokenManager(cfg.SessionSecret, "netkas", cfg.SessionTTL)
	ledger := services.NewLedger(kv, audit)
	summarizer := ai.NewSummarizer(cfg.OpenAIAPIKey, cfg.OpenAIModel)
	if !summarizer.Enabled() {
		logger.Info("AI summary disabled, no API key configured")
	}

	srv := apphttp.NewServer(":"+cfg.Port, accounts, tokens, ledger, summarizer, apphttp.ReportConfig{
		Letterhead: pdf.Letterhead{
			OrgName:   cfg.OrgName,
			Address:   cfg.OrgAddress,
			City:      cfg.OrgCity,
			Signatory: cfg.OrgSignatory,
		},
		Partners: cfg.Partners,
	})

	// Configure server timeouts and limits
	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = 30 * time.Second
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16 // 64KB

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("Starting netkas server", "port", cfg.Port, "backend", cfg.DataBackend)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutdown signal received")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown error", "error", err)
		}
		if err := ledger.Close(); err != nil {
			logger.Error("Failed to close ledger", "error", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Error("Server error", "error", err)
		os.Exit(1)
	}
	logger.Info("Server stopped gracefully")
}
