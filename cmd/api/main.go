package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/riskibarqy/match-stats/internal/app"
	"github.com/riskibarqy/match-stats/internal/config"
	"github.com/riskibarqy/match-stats/internal/observability"
	"github.com/riskibarqy/match-stats/internal/platform/logging"
	"github.com/sourcegraph/conc"
)

func main() {
	_ = godotenv.Load(".env")

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger := logging.NewJSON(cfg.LogLevel).With(
		"service", cfg.ServiceName,
		"version", cfg.ServiceVersion,
		"env", cfg.AppEnv,
	)
	logging.SetDefault(logger)
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	telemetry, err := observability.Start(ctx, cfg, logger)
	if err != nil {
		logger.Error("start observability", "error", err)
		os.Exit(1)
	}

	application, err := buildApp(ctx, cfg, logger, telemetry)
	if err != nil {
		logger.Error("build app", "error", err)
		_ = logger.Sync()
		os.Exit(1)
	}

	var workers conc.WaitGroup
	workers.Go(func() {
		logger.Info("http server starting", "addr", cfg.HTTPAddr, "store", application.StoreMode)
		if err := application.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server failed", "error", err)
			stop()
		}
	})
	if application.Poller != nil {
		workers.Go(func() {
			logger.Info("live poller starting", "interval", cfg.IngestionPollInterval.String(), "targets", len(cfg.IngestionTargets))
			application.Poller.Run(ctx)
		})
	}

	<-ctx.Done()
	logger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	exitCode := 0
	if err := application.Server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", "error", err)
		exitCode = 1
	}
	if recovered := workers.WaitAndRecover(); recovered != nil {
		logger.Error("background worker panicked", "panic", recovered.Value, "stack", string(recovered.Stack))
		exitCode = 1
	}

	if err := application.Close(); err != nil {
		logger.Error("close store", "error", err)
	}
	if err := telemetry.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown observability", "error", err)
	}

	logger.Info("http server stopped")
	if exitCode != 0 {
		os.Exit(exitCode)
	}
}

type telemetryShutdowner interface {
	Shutdown(ctx context.Context) error
}

// buildApp wires the application. When wiring fails, telemetry is shut down before
// returning so the caller can exit without leaking the debug listener or unflushed spans.
func buildApp(ctx context.Context, cfg config.Config, logger *logging.Logger, telemetry telemetryShutdowner) (*app.App, error) {
	application, err := app.New(ctx, cfg, logger)
	if err == nil {
		return application, nil
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if shutdownErr := telemetry.Shutdown(shutdownCtx); shutdownErr != nil {
		logger.Error("shutdown observability", "error", shutdownErr)
	}
	return nil, err
}
