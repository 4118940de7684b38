// Package config loads and validates application configuration from environment variables.
package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all configuration values for the API server.
type Config struct {
	// Port is the TCP port the HTTP server listens on.
	Port string `envconfig:"PORT" default:"8080"`

	// LogLevel is the minimum level written by the JSON logger.
	// Accepts debug, info, warn, error (and slog offsets such as "warn+2").
	LogLevel slog.Level `envconfig:"LOG_LEVEL" default:"info"`

	// DatabaseURL selects the Postgres store when set. When empty the
	// server keeps everything in memory for the life of the process.
	DatabaseURL string `envconfig:"DATABASE_URL"`

	// CORSOrigins is the list of allowed cross-origin request origins,
	// comma-separated in the environment. The default is the Vite dev server.
	CORSOrigins []string `envconfig:"CORS_ORIGINS" default:"http://localhost:5173"`

	// SeedData loads the sample board into empty stores on startup.
	SeedData bool `envconfig:"SEED_DATA" default:"true"`

	// MaxBodyBytes caps request bodies; larger requests get 413.
	MaxBodyBytes int64 `envconfig:"MAX_BODY_BYTES" default:"1048576"`

	// ShutdownTimeout bounds how long in-flight requests may run after SIGTERM.
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"15s"`
}

// Load reads configuration from environment variables and returns a Config.
func Load() (Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, fmt.Errorf("config.Load: %w", err)
	}

	cfg.CORSOrigins = trimAll(cfg.CORSOrigins)
	if cfg.MaxBodyBytes <= 0 {
		return Config{}, fmt.Errorf("config.Load: MAX_BODY_BYTES must be positive, got %d", cfg.MaxBodyBytes)
	}
	if cfg.ShutdownTimeout <= 0 {
		return Config{}, fmt.Errorf("config.Load: SHUTDOWN_TIMEOUT must be positive, got %s", cfg.ShutdownTimeout)
	}
	return cfg, nil
}

// UsesPostgres reports whether the Postgres store is configured.
func (c Config) UsesPostgres() bool {
	return c.DatabaseURL != ""
}

// trimAll trims each entry and drops empty ones.
func trimAll(in []string) []string {
	var out []string
	for _, s := range in {
		if t := strings.TrimSpace(s); t != "" {
			out = append(out, t)
		}
	}
	return out
}
