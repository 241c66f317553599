// Package bootstrap handles initialization and lifecycle for both binaries:
// the stats API server and the one-shot collector.
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jonesrussell/playlist-pulse/internal/logger"
)

// shutdownTimeout bounds the graceful server shutdown.
const shutdownTimeout = 10 * time.Second

// StartServer initializes and runs the stats API server until interrupted.
func StartServer() error {
	cfg, configErr := LoadConfig()
	if configErr != nil {
		return fmt.Errorf("config: %w", configErr)
	}

	log, logErr := CreateLogger(cfg, "server")
	if logErr != nil {
		return fmt.Errorf("logger: %w", logErr)
	}
	defer func() { _ = log.Sync() }()

	log.Info("Starting stats API server",
		logger.String("version", cfg.Service.Version),
		logger.Int("port", cfg.Server.Port),
	)

	db, store, dbErr := SetupDatabase(cfg, log)
	if dbErr != nil {
		return fmt.Errorf("database: %w", dbErr)
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			log.Error("Failed to close database", logger.Error(closeErr))
		}
	}()

	server := SetupHTTPServer(cfg, store, log)

	errCh := make(chan error, 1)
	go func() {
		if serveErr := server.ListenAndServe(); serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
			errCh <- serveErr
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case serveErr := <-errCh:
		log.Error("Server error", logger.Error(serveErr))
		return fmt.Errorf("server: %w", serveErr)
	case sig := <-quit:
		log.Info("Shutting down", logger.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if shutdownErr := server.Shutdown(ctx); shutdownErr != nil {
		return fmt.Errorf("shutdown: %w", shutdownErr)
	}

	log.Info("Stats API server stopped")
	return nil
}
