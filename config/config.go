// Package config provides configuration for the ledger service.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config holds the service configuration.
type Config struct {
	// Server settings
	HTTPPort int `env:"HTTP_PORT" envDefault:"8080"`

	// Database
	DatabaseURL string `env:"DATABASE_URL" envDefault:"file:arkledger.db?cache=shared&mode=rwc"`

	// Auth
	JWTSecret string `env:"JWT_SECRET" envDefault:"dev-secret-change-me"`

	// ResetMaxBatch caps how many records one weekly reset may archive.
	// 0 disables the cap.
	ResetMaxBatch int `env:"RESET_MAX_BATCH" envDefault:"500"`

	// Logging
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
}

// Load parses configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}
	return cfg, nil
}
