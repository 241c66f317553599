package bootstrap

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jonesrussell/playlist-pulse/internal/clock"
	"github.com/jonesrussell/playlist-pulse/internal/logger"
	"github.com/jonesrussell/playlist-pulse/internal/metrics"
	"github.com/jonesrussell/playlist-pulse/internal/pipeline"
	"github.com/jonesrussell/playlist-pulse/internal/status"
	"github.com/jonesrussell/playlist-pulse/internal/storage"
	"github.com/jonesrussell/playlist-pulse/internal/youtube"
)

// RunCollector executes one daily collection run to completion. A pipeline
// failure is recorded in the run status document and is not returned as an
// error; only initialization problems (config, logger, database) surface here,
// since there is no status record to write before the pipeline exists.
func RunCollector(ctx context.Context) error {
	cfg, configErr := LoadConfig()
	if configErr != nil {
		return fmt.Errorf("config: %w", configErr)
	}

	log, logErr := CreateLogger(cfg, "collector")
	if logErr != nil {
		return fmt.Errorf("logger: %w", logErr)
	}
	defer func() { _ = log.Sync() }()

	log = log.With(logger.String("run_id", uuid.NewString()))
	log.Info("Starting collector", logger.String("version", cfg.Service.Version))

	clk, clockErr := clock.NewCivil(cfg.Timezone)
	if clockErr != nil {
		return fmt.Errorf("timezone: %w", clockErr)
	}

	db, store, dbErr := SetupDatabase(cfg, log)
	if dbErr != nil {
		return fmt.Errorf("database: %w", dbErr)
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			log.Error("Failed to close database", logger.Error(closeErr))
		}
	}()

	repo := storage.NewRepository(store)
	reporter := status.NewReporter(repo, clk, log)
	source := youtube.NewClient(youtube.Config{
		APIKey:   cfg.YouTube.APIKey,
		BaseURL:  cfg.YouTube.BaseURL,
		PageSize: cfg.YouTube.PageSize,
		Timeout:  cfg.YouTube.Timeout,
	}, log)

	svc := pipeline.NewService(source, repo, reporter, clk, cfg.YouTube.PlaylistID, log)

	result := svc.Run(ctx)
	metrics.RecordRunOutcome(string(result.Outcome))

	// Derived views and change reports are only refreshed after a fresh
	// ingest; an already-ingested day leaves them as they are.
	if result.Outcome == pipeline.OutcomeIngested {
		if refreshErr := svc.RefreshAnalytics(ctx); refreshErr != nil {
			log.Error("Analytics refresh failed", logger.Error(refreshErr))
		}
	}

	log.Info("Collector finished",
		logger.String("outcome", string(result.Outcome)),
		logger.String("message", result.Message),
	)
	return nil
}
