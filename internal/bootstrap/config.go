package bootstrap

import (
	"fmt"

	"github.com/jonesrussell/playlist-pulse/internal/config"
	"github.com/jonesrussell/playlist-pulse/internal/logger"
)

// LoadConfig loads and validates the service configuration.
func LoadConfig() (*config.Config, error) {
	configPath := config.GetConfigPath("config.yml")

	cfg, loadErr := config.Load(configPath)
	if loadErr != nil {
		return nil, fmt.Errorf("load config: %w", loadErr)
	}

	return cfg, nil
}

// CreateLogger creates the structured logger for one of the binaries.
func CreateLogger(cfg *config.Config, component string) (logger.Logger, error) {
	log, logErr := logger.New(logger.Config{
		Level:       cfg.Logging.Level,
		Development: cfg.Service.Debug,
	})
	if logErr != nil {
		return nil, fmt.Errorf("create logger: %w", logErr)
	}

	return log.With(
		logger.String("service", cfg.Service.Name),
		logger.String("component", component),
	), nil
}
