// Copyright (c) 2026 Showcast. All rights reserved.
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
  - Optional Backends: Redis and PostgreSQL are enabled only when their URL is set.
  - Zero Hidden State: No global variables are used to store config.
*/
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/taibuivan/showcast/internal/platform/constants"
)

// # Configuration Schema

// Config holds all runtime configuration for the Showcast API server.
type Config struct {

	// Server settings
	ServerPort  string `env:"SERVER_PORT"  envDefault:"8080"`
	Environment string `env:"ENVIRONMENT"  envDefault:"development"`
	Debug       bool   `env:"DEBUG"        envDefault:"false"`

	// Catalog source (TVMaze)
	TVMazeBaseURL   string        `env:"TVMAZE_BASE_URL"   envDefault:"https://api.tvmaze.com"`
	TVMazeUserAgent string        `env:"TVMAZE_USER_AGENT" envDefault:"Showcast/1.0"`
	TVMazeTimeout   time.Duration `env:"TVMAZE_TIMEOUT"    envDefault:"15s"`
	TVMazeRPS       float64       `env:"TVMAZE_RPS"        envDefault:"2"`
	TVMazeBurst     int           `env:"TVMAZE_BURST"      envDefault:"20"`

	// Aggregation
	Cooldown    time.Duration `env:"COOLDOWN"    envDefault:"10s"`
	MaxRetries  int           `env:"MAX_RETRIES" envDefault:"0"`
	Concurrency int           `env:"CONCURRENCY" envDefault:"1"`

	// Key-Value Cache (Redis). Empty disables the source cache.
	RedisURL string        `env:"REDIS_URL"`
	CacheTTL time.Duration `env:"CACHE_TTL" envDefault:"1h"`

	// Relational Database (PostgreSQL). Empty disables the archive.
	DatabaseURL string `env:"DATABASE_URL"`

	// MigrationPath is the filesystem path to the SQL migrations directory.
	MigrationPath string `env:"MIGRATION_PATH" envDefault:"./data/migrations"`

	// Archive synchronisation
	SyncOnStart  bool `env:"SYNC_ON_START"  envDefault:"false"`
	SyncMaxPages int  `env:"SYNC_MAX_PAGES" envDefault:"0"`

	// Cross-Origin Resource Sharing (comma separated)
	AllowedOrigins string `env:"ALLOWED_ORIGINS"`
}

// # Configuration Loading

// Load parses environment variables into a [Config] struct.
func Load() (*Config, error) {

	// Initialize an empty config struct
	cfg := &Config{}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.Cooldown <= 0 {
		return fmt.Errorf("COOLDOWN must be positive, got %s", c.Cooldown)
	}
	if c.MaxRetries < 0 {
		return fmt.Errorf("MAX_RETRIES must not be negative, got %d", c.MaxRetries)
	}
	if c.Concurrency < 1 {
		return fmt.Errorf("CONCURRENCY must be at least 1, got %d", c.Concurrency)
	}
	if c.SyncMaxPages < 0 {
		return fmt.Errorf("SYNC_MAX_PAGES must not be negative, got %d", c.SyncMaxPages)
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

// CacheEnabled reports whether the Redis source cache is configured.
func (c *Config) CacheEnabled() bool {
	return c.RedisURL != ""
}

// ArchiveEnabled reports whether the PostgreSQL archive is configured.
func (c *Config) ArchiveEnabled() bool {
	return c.DatabaseURL != ""
}

/*
AggregateTimeout is the deadline of one catalog aggregation request.

Description: A page needs one outbound call for the listing plus one per show.
The deadline covers [constants.AggregateConcurrentPages] such pages at the
TVMaze allowance, since they share one limiter, plus
[constants.AggregateCooldownHeadroom] cooldown windows. It never drops below
[constants.AggregateRequestTimeout].
*/
func (c *Config) AggregateTimeout() time.Duration {
	budget := time.Duration(constants.AggregateCooldownHeadroom) * c.Cooldown

	if c.TVMazeRPS > 0 {
		calls := float64((constants.CatalogPageSize + 1) * constants.AggregateConcurrentPages)
		budget += time.Duration(calls / c.TVMazeRPS * float64(time.Second))
	}

	return max(budget, constants.AggregateRequestTimeout)
}

// WriteTimeout is the HTTP server write timeout. It always outlasts [Config.AggregateTimeout].
func (c *Config) WriteTimeout() time.Duration {
	return max(constants.DefaultWriteTimeout, c.AggregateTimeout()+constants.WriteTimeoutMargin)
}

// Origins splits [Config.AllowedOrigins] into trimmed, non-empty entries.
func (c *Config) Origins() []string {
	var origins []string
	for _, origin := range strings.Split(c.AllowedOrigins, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			origins = append(origins, origin)
		}
	}
	return origins
}
