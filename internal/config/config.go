// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package config handles application configuration loading from environment
// variables. It provides a centralized Config struct used across the application.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds all application configuration values loaded from the environment.
type Config struct {
	// Server settings
	Host     string `env:"APP_HOST" envDefault:"0.0.0.0"`
	Port     string `env:"APP_PORT" envDefault:"8080"`
	Env      string `env:"APP_ENV" envDefault:"development"` // "development", "production", "testing"
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// PostgreSQL connection
	DBHost     string `env:"POSTGRES_HOST" envDefault:"localhost"`
	DBPort     string `env:"POSTGRES_PORT" envDefault:"5432"`
	DBUser     string `env:"POSTGRES_USER" envDefault:"physiocms"`
	DBPassword string `env:"POSTGRES_PASSWORD" envDefault:"changeme"`
	DBName     string `env:"POSTGRES_DB" envDefault:"physiocms"`
	DBSSLMode  string `env:"POSTGRES_SSLMODE" envDefault:"disable"`

	// Valkey (Redis-compatible cache, sessions and rate limits)
	ValkeyHost     string `env:"VALKEY_HOST" envDefault:"localhost"`
	ValkeyPort     string `env:"VALKEY_PORT" envDefault:"6379"`
	ValkeyPassword string `env:"VALKEY_PASSWORD"`

	// S3-compatible object storage for the media library. Uploads are
	// disabled when endpoint or credentials are empty.
	S3Endpoint  string `env:"S3_ENDPOINT"`
	S3Region    string `env:"S3_REGION" envDefault:"fsn1"`
	S3AccessKey string `env:"S3_ACCESS_KEY"`
	S3SecretKey string `env:"S3_SECRET_KEY"`
	S3Bucket    string `env:"S3_BUCKET" envDefault:"physiocms-media"`
	S3PublicURL string `env:"S3_PUBLIC_URL"`

	// Contact form: accepted submissions per email+brand per window.
	ContactRateLimit  int           `env:"CONTACT_RATE_LIMIT" envDefault:"3"`
	ContactRateWindow time.Duration `env:"CONTACT_RATE_WINDOW" envDefault:"1h"`

	// Login attempts per client IP per window.
	LoginRateLimit  int           `env:"LOGIN_RATE_LIMIT" envDefault:"5"`
	LoginRateWindow time.Duration `env:"LOGIN_RATE_WINDOW" envDefault:"15m"`

	// RateLimitStore picks where limiter counters live: "valkey" shares
	// them across instances, "memory" keeps them in this process.
	RateLimitStore string `env:"RATE_LIMIT_STORE" envDefault:"valkey"`

	// PageCacheTTL controls how long rendered public pages stay in Valkey.
	PageCacheTTL time.Duration `env:"PAGE_CACHE_TTL" envDefault:"5m"`
}

// Load reads configuration from the process environment.
func Load() (*Config, error) {
	return load(env.Options{})
}

// LoadFrom reads configuration from the given variables instead of the
// process environment. Used by tests.
func LoadFrom(vars map[string]string) (*Config, error) {
	return load(env.Options{Environment: vars})
}

func load(opts env.Options) (*Config, error) {
	cfg := &Config{}
	if err := env.ParseWithOptions(cfg, opts); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// validate rejects combinations that would make the server unsafe or unusable.
func (c *Config) validate() error {
	switch c.Env {
	case "development", "production", "testing":
	default:
		return fmt.Errorf("APP_ENV must be development, production or testing, got %q", c.Env)
	}

	if c.Env == "production" && c.DBPassword == "changeme" {
		return errors.New("POSTGRES_PASSWORD must be set in production")
	}

	if c.ContactRateLimit < 1 {
		return errors.New("CONTACT_RATE_LIMIT must be at least 1")
	}
	if c.ContactRateWindow <= 0 || c.LoginRateWindow <= 0 {
		return errors.New("rate limit windows must be positive")
	}
	if c.LoginRateLimit < 1 {
		return errors.New("LOGIN_RATE_LIMIT must be at least 1")
	}
	if c.RateLimitStore != "valkey" && c.RateLimitStore != "memory" {
		return fmt.Errorf("RATE_LIMIT_STORE must be valkey or memory, got %q", c.RateLimitStore)
	}
	return nil
}

// DSN returns the PostgreSQL connection string.
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName, c.DBSSLMode,
	)
}

// Addr returns the server listen address (host:port).
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

// IsDev returns true if the application is running in development mode.
func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// IsProduction returns true if the application is running in production.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// SecureCookies reports whether cookies must carry the Secure flag.
func (c *Config) SecureCookies() bool {
	return c.IsProduction()
}

// StorageEnabled reports whether S3 settings are complete enough to
// connect the media library.
func (c *Config) StorageEnabled() bool {
	return c.S3Endpoint != "" && c.S3AccessKey != "" && c.S3SecretKey != ""
}
