// Package config provides environment-based configuration for the audit
// service.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds runtime configuration read from the environment.
type Config struct {
	Port         int
	DatabaseURL  string
	FetchTimeout time.Duration
	Verbose      bool
}

// FromEnv builds a Config from environment variables.
// PORT (default 8080), DATABASE_URL (required by the server, not the CLI),
// FETCH_TIMEOUT_SECONDS (default 30), AUDIT_VERBOSE (default false).
func FromEnv() (*Config, error) {
	cfg := &Config{
		Port:         8080,
		DatabaseURL:  os.Getenv("DATABASE_URL"),
		FetchTimeout: 30 * time.Second,
		Verbose:      boolEnv("AUDIT_VERBOSE"),
	}

	if portStr := os.Getenv("PORT"); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return nil, fmt.Errorf("invalid PORT: %v", err)
		}
		cfg.Port = port
	}

	if timeoutStr := os.Getenv("FETCH_TIMEOUT_SECONDS"); timeoutStr != "" {
		seconds, err := strconv.Atoi(timeoutStr)
		if err != nil {
			return nil, fmt.Errorf("invalid FETCH_TIMEOUT_SECONDS: %v", err)
		}
		cfg.FetchTimeout = time.Duration(seconds) * time.Second
	}

	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// normalize validates the configuration.
func (c *Config) normalize() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("PORT must be between 1 and 65535, got: %d", c.Port)
	}
	if c.FetchTimeout < time.Second {
		return fmt.Errorf("FETCH_TIMEOUT_SECONDS must be at least 1 second, got: %s", c.FetchTimeout)
	}
	return nil
}

func boolEnv(key string) bool {
	switch os.Getenv(key) {
	case "1", "true", "TRUE", "yes":
		return true
	}
	return false
}
