package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/adityaverma/cricsync/internal/app"
	"github.com/adityaverma/cricsync/internal/config"
	"github.com/adityaverma/cricsync/internal/observability"
	"github.com/adityaverma/cricsync/internal/platform/logging"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger := logging.NewJSON(cfg.LogLevel)
	logging.SetDefault(logger)
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownUptrace, err := observability.InitUptrace(cfg, logger)
	if err != nil {
		logger.Error("init uptrace", "error", err)
		return 1
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := shutdownUptrace(shutdownCtx); err != nil {
			logger.Warn("uptrace shutdown failed", "error", err)
		}
	}()

	stopPyroscope, err := observability.InitPyroscope(cfg, logger)
	if err != nil {
		logger.Error("init pyroscope", "error", err)
		return 1
	}
	defer func() {
		if err := stopPyroscope(); err != nil {
			logger.Warn("pyroscope stop failed", "error", err)
		}
	}()

	etl, err := app.NewETL(ctx, cfg, logger)
	if err != nil {
		logger.Error("build etl", "error", err)
		return 1
	}
	defer func() {
		if err := etl.Close(); err != nil {
			logger.Warn("close database pool failed", "error", err)
		}
	}()

	report, err := etl.Ingest.Run(ctx)
	if err != nil {
		logger.ErrorContext(ctx, "ingestion run failed", "error", err)
		return 1
	}
	if report.Failed > 0 {
		logger.WarnContext(ctx, "ingestion finished with failed entries", "failed", report.Failed)
	}

	if etl.TopStats != nil {
		if _, err := etl.TopStats.Run(ctx); err != nil {
			logger.ErrorContext(ctx, "leaderboard refresh failed", "error", err)
			return 1
		}
	}

	return 0
}
