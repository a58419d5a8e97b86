package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/couchcryptid/gsod-archive-etl/internal/adapter/csvfile"
	"github.com/couchcryptid/gsod-archive-etl/internal/adapter/parquetfile"
	s3adapter "github.com/couchcryptid/gsod-archive-etl/internal/adapter/s3"
	"github.com/couchcryptid/gsod-archive-etl/internal/config"
	"github.com/couchcryptid/gsod-archive-etl/internal/observability"
	"github.com/couchcryptid/gsod-archive-etl/internal/pipeline"
)

func main() {
	// Optional .env for local runs; real environment variables win.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger, closeLog := observability.NewLogger(cfg)
	defer func() { _ = closeLog() }()

	metrics := observability.NewMetrics()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	publisher, err := s3adapter.NewPublisher(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to build s3 client", "error", err)
		os.Exit(1)
	}

	runner := pipeline.New(
		csvfile.NewSource(cfg.RawDir),
		parquetfile.NewWriter(cfg.ProcessedDir),
		publisher,
		cfg.S3KeyPrefix,
		cfg.FileLimit,
		logger,
		metrics,
	)

	summary, err := runner.Run(ctx)
	if err != nil {
		logger.Error("batch aborted", "error", err)
		os.Exit(1)
	}

	if cfg.PushgatewayURL != "" {
		if err := metrics.Push(cfg.PushgatewayURL); err != nil {
			logger.Warn("metrics push failed", "error", err)
		}
	}

	if failed := summary.Failed(); failed > 0 {
		logger.Warn("batch completed with failures", "failed", failed)
	}
}
