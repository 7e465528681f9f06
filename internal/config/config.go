// Package config loads runtime settings from environment variables with
// defaults and validates them on startup.
package config

import "time"

// Config holds all application configuration.
type Config struct {
	Database DatabaseConfig
	Apply    ApplyConfig
	Logging  LoggingConfig
}

// DatabaseConfig selects and locates the target database.
type DatabaseConfig struct {
	// Driver is one of sqlite, postgres, mysql (default: sqlite)
	Driver string `env:"ROWDSL_DRIVER" default:"sqlite"`

	// URL is the connection string; a file path or DSN for sqlite, a
	// postgres:// URL, or a go-sql-driver DSN for mysql.
	URL string `env:"DATABASE_URL" envAlt:"DB_URL" required:"true"`

	// MaxConns bounds the postgres pool (default: 4)
	MaxConns int `env:"DB_MAX_CONNS" default:"4"`
}

// ApplyConfig controls changeset application.
type ApplyConfig struct {
	// Timeout bounds a whole apply run (default: 5m)
	Timeout time.Duration `env:"ROWDSL_APPLY_TIMEOUT" default:"5m"`

	// MaxLargeObjectBytes limits each blob/clob read at bind time (default: 64MiB)
	MaxLargeObjectBytes int64 `env:"ROWDSL_MAX_LOB_BYTES" default:"67108864"`

	// DryRun prints SQL instead of executing it
	DryRun bool `env:"ROWDSL_DRY_RUN" default:"false"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error (default: info)
	Level string `env:"LOG_LEVEL" default:"info"`

	// Format is the log format: text or json (default: text)
	Format string `env:"LOG_FORMAT" default:"text"`
}
