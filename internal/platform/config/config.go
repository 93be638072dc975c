// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package config handles application-wide settings and environment parsing.

It leverages 'caarlos0/env' to map OS environment variables into a strongly-typed
Go struct, providing early validation and default values.

Usage:

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}

Architecture:

  - Immutability: Once loaded, configuration is read-only.
  - DI-Friendly: Passed to core components (DB, Redis, tracing) via constructors.
  - Zero Hidden State: No global variables are used to store config.

This ensures the application is Twelve-Factor compliant by storing config in the env.
*/
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// # Configuration Schema

// Supported values of DB_DRIVER.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Supported values of TRACING_EXPORTER.
const (
	ExporterStdout = "stdout"
	ExporterOTLP   = "otlp"
)

// Config holds all runtime configuration for the locallibrary services.
type Config struct {

	// Server settings
	ServerPort  string `env:"SERVER_PORT"  envDefault:"8080"`
	Environment string `env:"ENVIRONMENT"  envDefault:"development"`
	Debug       bool   `env:"DEBUG"        envDefault:"false"`

	// DBDriver selects the catalog store: "postgres" or "sqlite".
	DBDriver string `env:"DB_DRIVER" envDefault:"postgres"`

	// Relational Database (PostgreSQL), required when DBDriver is postgres.
	DatabaseURL string `env:"DATABASE_URL"`

	// SQLitePath is the database file used when DBDriver is sqlite.
	SQLitePath string `env:"SQLITE_PATH" envDefault:"./data/locallibrary.db"`

	// Key-Value Store (Redis). Optional: the lending feed is disabled when empty.
	RedisURL string `env:"REDIS_URL"`

	// FeedStream is the Redis stream receiving instance status transitions.
	FeedStream string `env:"FEED_STREAM" envDefault:"locallibrary:instance:transitions"`

	// FeedMaxLen caps the stream length (approximate trimming).
	FeedMaxLen int64 `env:"FEED_MAX_LEN" envDefault:"10000"`

	// Distributed tracing (OpenTelemetry)
	TracingEnabled    bool    `env:"TRACING_ENABLED"     envDefault:"false"`
	TracingExporter   string  `env:"TRACING_EXPORTER"    envDefault:"stdout"`
	OTLPEndpoint      string  `env:"OTLP_ENDPOINT"       envDefault:"localhost:4317"`
	TracingSampleRate float64 `env:"TRACING_SAMPLE_RATE" envDefault:"1.0"`

	// Cross-Origin Resource Sharing, comma separated. Ignored in development.
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:","`
}

// # Configuration Loading

// Load parses environment variables into a [Config] struct.
func Load() (*Config, error) {
	return parse(env.Options{})
}

// LoadFrom parses the given variables instead of the process environment.
func LoadFrom(environment map[string]string) (*Config, error) {
	return parse(env.Options{Environment: environment})
}

func parse(options env.Options) (*Config, error) {

	// Initialize an empty config struct
	cfg := &Config{}

	// Use the 'env' package to map environment variables to struct fields.
	if err := env.ParseWithOptions(cfg, options); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// validate checks cross-field rules the struct tags cannot express.
func (c *Config) validate() error {
	switch c.DBDriver {
	case DriverPostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("config: DATABASE_URL is required when DB_DRIVER=%s", DriverPostgres)
		}
	case DriverSQLite:
		if c.SQLitePath == "" {
			return fmt.Errorf("config: SQLITE_PATH is required when DB_DRIVER=%s", DriverSQLite)
		}
	default:
		return fmt.Errorf("config: unsupported DB_DRIVER %q", c.DBDriver)
	}

	if c.TracingEnabled && c.TracingExporter != ExporterStdout && c.TracingExporter != ExporterOTLP {
		return fmt.Errorf("config: unsupported TRACING_EXPORTER %q", c.TracingExporter)
	}

	if c.TracingSampleRate < 0 || c.TracingSampleRate > 1 {
		return fmt.Errorf("config: TRACING_SAMPLE_RATE must be within [0, 1], got %v", c.TracingSampleRate)
	}

	return nil
}

// IsDevelopment reports whether the server is running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction reports whether the server is running in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// FeedEnabled reports whether a Redis lending feed is configured.
func (c *Config) FeedEnabled() bool {
	return c.RedisURL != ""
}
