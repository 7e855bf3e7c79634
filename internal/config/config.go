// Package config loads server configuration from the environment.
package config

import (
	"fmt"
	"time"

	"github.com/joeshaw/envdecode"
	"github.com/joho/godotenv"
)

// Config holds the server's environment-backed settings.
type Config struct {
	// Port is the HTTP listen port.
	Port int `env:"PORT,default=8080"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `env:"LOG_LEVEL,default=info"`

	// FetchTimeout bounds each log file fetch. It is a deployment
	// constant; requests cannot override it.
	FetchTimeout time.Duration `env:"FETCH_TIMEOUT,default=5s"`
}

// Load reads a .env file if one exists, then decodes the environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envdecode.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	return &cfg, nil
}
