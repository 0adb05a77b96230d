// Package config loads and validates application configuration from environment variables.
package config

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
)

// Config holds all configuration values for the API server and the CLI.
// Values are populated by Load from environment variables.
type Config struct {
	// Port is the TCP port the HTTP server listens on.
	Port string `env:"PORT" envDefault:"8080"`

	// StorageDriver selects the trip store: postgres, sqlite or memory.
	StorageDriver string `env:"STORAGE_DRIVER" envDefault:"postgres"`

	// DatabaseURL is the Postgres connection string. Required when
	// StorageDriver is postgres.
	DatabaseURL string `env:"DATABASE_URL"`

	// SQLitePath is the database file used when StorageDriver is sqlite.
	SQLitePath string `env:"SQLITE_PATH" envDefault:"trip-planner.db"`

	// AutoMigrate applies pending migrations at server start.
	AutoMigrate bool `env:"AUTO_MIGRATE" envDefault:"false"`

	// LogLevel controls the minimum log level: debug, info, warn or error.
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// LogFile, when set, receives a rotated copy of every log line.
	LogFile string `env:"LOG_FILE"`

	// CORSOrigins is the list of allowed cross-origin request origins.
	// Defaults to the Vite dev server.
	CORSOrigins []string `env:"CORS_ORIGINS" envDefault:"http://localhost:5173" envSeparator:","`

	// MaxBodyBytes caps request body size.
	MaxBodyBytes int64 `env:"MAX_BODY_BYTES" envDefault:"1048576"`

	// DragPolicy selects how drag gestures reassign activities: move or reorder.
	DragPolicy string `env:"ITINERARY_DRAG_POLICY" envDefault:"move"`

	// OTelEndpoint is the OTLP/HTTP collector URL. Empty disables tracing.
	OTelEndpoint string `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`

	// ServiceName is reported as the OpenTelemetry service.name.
	ServiceName string `env:"OTEL_SERVICE_NAME" envDefault:"trip-planner"`
}

// Load reads configuration from environment variables and returns a Config.
// Returns an error listing any required variables that are not set.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("config.Load: %w", err)
	}
	cfg.CORSOrigins = trimAll(cfg.CORSOrigins)

	var missing []string
	if cfg.StorageDriver == "postgres" && cfg.DatabaseURL == "" {
		missing = append(missing, "DATABASE_URL")
	}
	if cfg.StorageDriver == "sqlite" && cfg.SQLitePath == "" {
		missing = append(missing, "SQLITE_PATH")
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("required environment variables not set: %s", strings.Join(missing, ", "))
	}

	return cfg, nil
}

// trimAll trims each entry and drops the empty ones.
func trimAll(in []string) []string {
	var out []string
	for _, part := range in {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// DSN returns the connection target for the configured storage driver:
// the Postgres URL, the SQLite file path, or "" for memory.
func (c Config) DSN() string {
	switch c.StorageDriver {
	case "postgres":
		return c.DatabaseURL
	case "sqlite":
		return c.SQLitePath
	}
	return ""
}
