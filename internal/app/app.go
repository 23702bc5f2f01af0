package app

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/adityaverma/cricsync/external/cricbuzz"
	"github.com/adityaverma/cricsync/internal/config"
	"github.com/adityaverma/cricsync/internal/infrastructure/repository/postgres"
	"github.com/adityaverma/cricsync/internal/platform/logging"
	"github.com/adityaverma/cricsync/internal/platform/resilience"
	"github.com/adityaverma/cricsync/internal/usecase"
)

// ETL bundles everything one run needs. Close releases the database pool.
type ETL struct {
	Ingest   *usecase.IngestService
	TopStats *usecase.TopStatsService

	db *sqlx.DB
}

// NewETL wires the provider client, the repositories, and the services for
// one run.
func NewETL(ctx context.Context, cfg config.Config, logger *logging.Logger) (*ETL, error) {
	if logger == nil {
		logger = logging.Default()
	}

	dsn := normalizeDBURL(cfg.DBURL, cfg.DBDisablePreparedBinary)
	db, err := postgres.Connect(ctx, dsn, postgres.ConnectOptions{
		DBName:         dbNameFromURL(cfg.DBURL),
		QueryFormatter: formatDBQueryForTrace,
	})
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	client := cricbuzz.NewClient(cricbuzz.ClientConfig{
		BaseURL:    cfg.CricbuzzBaseURL,
		Host:       cfg.CricbuzzHost,
		APIKey:     cfg.RapidAPIKey,
		Timeout:    cfg.CricbuzzTimeout,
		MaxRetries: cfg.CricbuzzMaxRetries,
		Logger:     logger,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.CricbuzzCircuitEnabled,
			FailureThreshold: cfg.CricbuzzCircuitFailures,
			OpenTimeout:      cfg.CricbuzzCircuitOpenFor,
			HalfOpenMaxReq:   cfg.CricbuzzCircuitHalfOpen,
		},
	})

	store := postgres.NewIngestStore(db)
	analytics := postgres.NewAnalyticsRepository(db)
	ingest := usecase.NewIngestService(client, store, analytics, logger)

	var topStats *usecase.TopStatsService
	if cfg.TopStatsEnabled {
		statsRepo := postgres.NewPlayerStatsRepository(db)
		topStats = usecase.NewTopStatsService(client, statsRepo, cfg.TopStatsFormats, cfg.TopStatsWorkers, logger)
	}

	return &ETL{
		Ingest:   ingest,
		TopStats: topStats,
		db:       db,
	}, nil
}

func (e *ETL) Close() error {
	return e.db.Close()
}
