// Package config reads runtime configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// ErrInvalid marks a configuration value that cannot be used.
var ErrInvalid = errors.New("invalid configuration")

const (
	envLogLevel = "FOCUSTIMER_LOG_LEVEL"
	envSettings = "FOCUSTIMER_SETTINGS"
	envTick     = "FOCUSTIMER_TICK"
	envMuted    = "FOCUSTIMER_MUTED"
)

// Config holds all application configuration.
type Config struct {
	LogLevel     slog.Level
	SettingsPath string
	TickInterval time.Duration
	Muted        bool
	MutedSet     bool
}

// LoadDotEnv loads variables from .env files when present. A missing file
// is not an error.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	var present []string
	for _, file := range files {
		if _, err := os.Stat(file); err == nil {
			present = append(present, file)
		}
	}
	if len(present) == 0 {
		return nil
	}
	if err := godotenv.Load(present...); err != nil {
		return fmt.Errorf("load env files: %w", err)
	}
	return nil
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		LogLevel:     slog.LevelInfo,
		SettingsPath: getEnv(envSettings, ""),
		TickInterval: time.Second,
	}

	if value, ok := os.LookupEnv(envLogLevel); ok {
		if err := cfg.LogLevel.UnmarshalText([]byte(strings.TrimSpace(value))); err != nil {
			return nil, fmt.Errorf("%w: %s=%q", ErrInvalid, envLogLevel, value)
		}
	}

	if value, ok := os.LookupEnv(envTick); ok {
		interval, err := time.ParseDuration(strings.TrimSpace(value))
		if err != nil {
			return nil, fmt.Errorf("%w: %s=%q: %v", ErrInvalid, envTick, value, err)
		}
		cfg.TickInterval = interval
	}

	if value, ok := os.LookupEnv(envMuted); ok {
		muted, ok := parseBool(value)
		if !ok {
			return nil, fmt.Errorf("%w: %s=%q", ErrInvalid, envMuted, value)
		}
		cfg.Muted = muted
		cfg.MutedSet = true
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that all fields are usable.
func (c *Config) Validate() error {
	if c.TickInterval <= 0 {
		return fmt.Errorf("%w: %s must be > 0", ErrInvalid, envTick)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func parseBool(value string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "true", "yes", "on":
		return true, true
	case "0", "false", "no", "off":
		return false, true
	}
	return false, false
}
