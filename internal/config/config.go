// Package config loads the patrol CLI configuration from YAML with
// environment overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Environment variables consulted by applyEnvOverrides.
const (
	EnvWorkers   = "PATROL_WORKERS"
	EnvLogLevel  = "PATROL_LOG_LEVEL"
	EnvLogFormat = "PATROL_LOG_FORMAT"
	EnvTracing   = "PATROL_TRACING"
)

var (
	// ErrInvalidWorkers indicates a negative worker count.
	ErrInvalidWorkers = errors.New("config: workers must be >= 0")
	// ErrInvalidLogLevel indicates an unknown log level.
	ErrInvalidLogLevel = errors.New("config: unknown log level")
	// ErrInvalidLogFormat indicates an unknown log format.
	ErrInvalidLogFormat = errors.New("config: unknown log format")
	// ErrInvalidTimeout indicates a search timeout that is not a positive duration.
	ErrInvalidTimeout = errors.New("config: timeout must be a positive duration")
)

// Config holds all patrol CLI configuration.
type Config struct {
	// Search settings
	Search SearchConfig `yaml:"search"`

	// Logging
	Logging LoggingConfig `yaml:"logging"`

	// Tracing
	Tracing TracingConfig `yaml:"tracing"`
}

// SearchConfig tunes the parallel obstruction search.
type SearchConfig struct {
	// Workers caps concurrent cycle checks; 0 means GOMAXPROCS.
	Workers int `yaml:"workers"`
	// Timeout bounds the whole search, e.g. "30s". Empty disables it.
	Timeout string `yaml:"timeout"`
}

// LoggingConfig configures the zap logger.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json, console
}

// TracingConfig enables OpenTelemetry span export to stderr.
type TracingConfig struct {
	Enabled bool `yaml:"enabled"`
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *Config {
	return &Config{
		Search: SearchConfig{
			Workers: runtime.GOMAXPROCS(0),
			Timeout: "",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Load loads configuration from a YAML file. A missing file yields the
// defaults; environment overrides apply in both cases.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
			// defaults
		case err != nil:
			return nil, fmt.Errorf("failed to read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config: %w", err)
			}
		}
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() error {
	if v := os.Getenv(EnvWorkers); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config: %s=%q: %w", EnvWorkers, v, err)
		}
		c.Search.Workers = n
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Logging.Level = strings.ToLower(v)
	}
	if v := os.Getenv(EnvLogFormat); v != "" {
		c.Logging.Format = strings.ToLower(v)
	}
	if v := os.Getenv(EnvTracing); v != "" {
		on, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("config: %s=%q: %w", EnvTracing, v, err)
		}
		c.Tracing.Enabled = on
	}

	return nil
}

// Validate checks field ranges and enumerations.
func (c *Config) Validate() error {
	if c.Search.Workers < 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidWorkers, c.Search.Workers)
	}
	if c.Search.Timeout != "" {
		if d, err := time.ParseDuration(c.Search.Timeout); err != nil || d <= 0 {
			return fmt.Errorf("%w: %q", ErrInvalidTimeout, c.Search.Timeout)
		}
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: %q", ErrInvalidLogLevel, c.Logging.Level)
	}
	switch c.Logging.Format {
	case "json", "console":
	default:
		return fmt.Errorf("%w: %q", ErrInvalidLogFormat, c.Logging.Format)
	}

	return nil
}

// SearchTimeout returns the parsed search timeout, or 0 when none is set.
// Call Validate first; an unparsable value also yields 0.
func (c *Config) SearchTimeout() time.Duration {
	d, err := time.ParseDuration(c.Search.Timeout)
	if err != nil {
		return 0
	}
	return d
}
