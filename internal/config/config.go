// Package config loads the application's runtime configuration from the
// environment.
//
// WHY A CONFIG PACKAGE?
// Scattering os.Getenv calls through the codebase hides which knobs exist.
// One struct with `env` tags is the complete, greppable list — and the
// caarlos0/env library handles type conversion and defaults, so main() never
// parses strings by hand.
package config

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds every externally tunable setting.
type Config struct {
	// Port is the TCP port the local API listens on. The server binds
	// loopback only; this is the port the UI shell connects to.
	Port int `env:"PORT" envDefault:"8080"`

	// DBPath is the SQLite database file. The parent directory is created
	// on startup if it doesn't exist.
	DBPath string `env:"DB_PATH" envDefault:"data/vocabloury.db"`

	// JWTSecret signs the short-lived API session tokens. Generate with:
	//   openssl rand -hex 32
	JWTSecret string `env:"JWT_SECRET,required,notEmpty"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
}

// Load reads .env (if present) and then the process environment.
//
// A missing .env file is not an error — in production the environment is set
// by the service manager and no file exists. A malformed one is.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("config: reading .env: %w", err)
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("config: parsing environment: %w", err)
	}
	return &cfg, nil
}

// SlogLevel maps the LogLevel string onto the slog constant, defaulting to
// Info for anything unrecognized.
func (c *Config) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
