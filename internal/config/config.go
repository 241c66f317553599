package config

import (
	"fmt"
	"time"
)

// Default service configuration values.
const (
	defaultServiceName    = "playlist-pulse"
	defaultServiceVersion = "1.0.0"
	defaultServerPort     = 8090
	defaultLogLevel       = "info"
)

// Default YouTube API configuration values.
const (
	defaultYouTubeBaseURL = "https://www.googleapis.com/youtube/v3"
	defaultPageSize       = 50
	defaultHTTPTimeout    = 30 * time.Second
)

// Default database configuration values.
const (
	defaultDBHost         = "localhost"
	defaultDBPort         = 5432
	defaultDBUser         = "postgres"
	defaultDBName         = "playlist_pulse"
	defaultDBSSLMode      = "disable"
	defaultDBMaxConns     = 10
	defaultDBMaxIdleConns = 2
	defaultDBConnLifetime = time.Hour
)

// defaultTimezone is the civil timezone used for day keys and status timestamps.
const defaultTimezone = "America/Sao_Paulo"

// Config holds the application configuration for both binaries.
type Config struct {
	Service  ServiceConfig  `yaml:"service"`
	Server   ServerConfig   `yaml:"server"`
	YouTube  YouTubeConfig  `yaml:"youtube"`
	Database DatabaseConfig `yaml:"database"`
	Logging  LoggingConfig  `yaml:"logging"`
	Timezone string         `env:"TIMEZONE" yaml:"timezone"`
}

// ServiceConfig holds service identity and runtime settings.
type ServiceConfig struct {
	Name    string `yaml:"name"`
	Version string `yaml:"version"`
	Debug   bool   `env:"APP_DEBUG" yaml:"debug"`
}

// ServerConfig holds stats API server settings.
type ServerConfig struct {
	Port        int      `env:"SERVER_PORT"  yaml:"port"`
	CORSOrigins []string `env:"CORS_ORIGINS" yaml:"cors_origins"`
}

// YouTubeConfig holds YouTube Data API settings. The API key and playlist ID
// are secrets and only come from the environment; the HTTP timeout is
// env-tunable because YAML has no duration syntax.
type YouTubeConfig struct {
	APIKey     string        `env:"YOUTUBE_API_KEY" yaml:"-"`
	PlaylistID string        `env:"PLAYLIST_ID"     yaml:"-"`
	BaseURL    string        `yaml:"base_url"`
	PageSize   int           `yaml:"page_size"`
	Timeout    time.Duration `env:"YOUTUBE_TIMEOUT" yaml:"-"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	Host            string        `env:"POSTGRES_HOST"     yaml:"host"`
	Port            int           `env:"POSTGRES_PORT"     yaml:"port"`
	User            string        `env:"POSTGRES_USER"     yaml:"user"`
	Password        string        `env:"POSTGRES_PASSWORD" yaml:"password"`
	Database        string        `env:"POSTGRES_DB"       yaml:"database"`
	SSLMode         string        `yaml:"sslmode"`
	MaxConnections  int           `yaml:"max_connections"`
	MaxIdleConns    int           `yaml:"max_idle_connections"`
	ConnMaxLifetime time.Duration `env:"POSTGRES_CONN_MAX_LIFETIME" yaml:"-"`
}

// DSN returns the PostgreSQL connection string.
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Database, c.SSLMode,
	)
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `env:"LOG_LEVEL" yaml:"level"`
}

// Load loads configuration from a YAML file, applies defaults, then env
// overrides (env always wins), then validates.
func Load(path string) (*Config, error) {
	var cfg Config
	if loadErr := load(path, &cfg); loadErr != nil {
		return nil, loadErr
	}

	cfg.setDefaults()
	applyEnvOverrides(&cfg)

	if validateErr := cfg.Validate(); validateErr != nil {
		return nil, fmt.Errorf("validate config: %w", validateErr)
	}

	return &cfg, nil
}

// Validate checks that the configuration is complete enough to run either binary.
func (c *Config) Validate() error {
	if err := validatePort("server.port", c.Server.Port); err != nil {
		return err
	}

	if c.Database.Host == "" {
		return &ValidationError{Field: "database.host", Message: "is required"}
	}

	if c.Database.Database == "" {
		return &ValidationError{Field: "database.database", Message: "is required"}
	}

	if c.YouTube.PageSize < 1 || c.YouTube.PageSize > 50 {
		return &ValidationError{Field: "youtube.page_size", Message: "must be between 1 and 50"}
	}

	if _, err := time.LoadLocation(c.Timezone); err != nil {
		return &ValidationError{Field: "timezone", Message: "unknown timezone " + c.Timezone}
	}

	return nil
}

func (c *Config) setDefaults() {
	if c.Service.Name == "" {
		c.Service.Name = defaultServiceName
	}
	if c.Service.Version == "" {
		c.Service.Version = defaultServiceVersion
	}
	if c.Server.Port == 0 {
		c.Server.Port = defaultServerPort
	}
	if c.YouTube.BaseURL == "" {
		c.YouTube.BaseURL = defaultYouTubeBaseURL
	}
	if c.YouTube.PageSize == 0 {
		c.YouTube.PageSize = defaultPageSize
	}
	if c.YouTube.Timeout == 0 {
		c.YouTube.Timeout = defaultHTTPTimeout
	}
	if c.Timezone == "" {
		c.Timezone = defaultTimezone
	}
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}

	setDatabaseDefaults(&c.Database)
}

func setDatabaseDefaults(d *DatabaseConfig) {
	if d.Host == "" {
		d.Host = defaultDBHost
	}
	if d.Port == 0 {
		d.Port = defaultDBPort
	}
	if d.User == "" {
		d.User = defaultDBUser
	}
	if d.Database == "" {
		d.Database = defaultDBName
	}
	if d.SSLMode == "" {
		d.SSLMode = defaultDBSSLMode
	}
	if d.MaxConnections == 0 {
		d.MaxConnections = defaultDBMaxConns
	}
	if d.MaxIdleConns == 0 {
		d.MaxIdleConns = defaultDBMaxIdleConns
	}
	if d.ConnMaxLifetime == 0 {
		d.ConnMaxLifetime = defaultDBConnLifetime
	}
}
