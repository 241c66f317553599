package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jonesrussell/playlist-pulse/internal/config"
	"github.com/jonesrussell/playlist-pulse/internal/logger"
	"github.com/jonesrussell/playlist-pulse/internal/storage"
)

// pingTimeout bounds the initial connectivity check.
const pingTimeout = 5 * time.Second

// SetupDatabase opens the PostgreSQL connection and prepares the document
// store. The caller owns closing the returned handle.
func SetupDatabase(cfg *config.Config, log logger.Logger) (*sql.DB, *storage.DocumentStore, error) {
	db, openErr := sql.Open("postgres", cfg.Database.DSN())
	if openErr != nil {
		return nil, nil, fmt.Errorf("open database: %w", openErr)
	}

	db.SetMaxOpenConns(cfg.Database.MaxConnections)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	if pingErr := db.PingContext(ctx); pingErr != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("ping database: %w", pingErr)
	}

	store := storage.NewDocumentStore(db)
	if schemaErr := store.EnsureSchema(ctx); schemaErr != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("prepare schema: %w", schemaErr)
	}

	log.Info("Database connection established",
		logger.String("host", cfg.Database.Host),
		logger.Int("port", cfg.Database.Port),
		logger.String("dbname", cfg.Database.Database),
	)

	return db, store, nil
}
