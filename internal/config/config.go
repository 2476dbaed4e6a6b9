// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults.
// - Load layers a YAML file and environment variables over those defaults.
// - Errors returned by this package wrap ErrInvalidConfig or ErrLoadConfig.
package config

import (
	"fmt"
	"strings"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the log handler: text or json.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":9080".
	Addr string `koanf:"addr"`

	// ModelPath locates the language model. The mock assistant only reports
	// whether it is set.
	ModelPath string `koanf:"model_path"`

	// BatchConcurrency caps goroutines per scoring or drafting batch. Zero is unlimited.
	BatchConcurrency int `koanf:"batch_concurrency"`

	// MaxRecipients caps the recipients accepted by POST /process.
	MaxRecipients int `koanf:"max_recipients"`

	// MaxBodyBytes caps request body size.
	MaxBodyBytes int64 `koanf:"max_body_bytes"`

	// RandomSeed makes match scores reproducible. Zero seeds from the clock.
	RandomSeed int64 `koanf:"random_seed"`
}

// New creates a Config holding the defaults.
func New() *Config {
	return &Config{
		LogLevel:         "info",
		LogFormat:        "text",
		Addr:             ":9080",
		ModelPath:        "",
		BatchConcurrency: 0,
		MaxRecipients:    1000,
		MaxBodyBytes:     1 << 20,
		RandomSeed:       0,
	}
}

// Validate reports the first invalid field.
func (c *Config) Validate() error {
	switch {
	case strings.TrimSpace(c.Addr) == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case c.MaxRecipients <= 0:
		return fmt.Errorf("%w: max_recipients must be positive, got %d", ErrInvalidConfig, c.MaxRecipients)
	case c.MaxBodyBytes <= 0:
		return fmt.Errorf("%w: max_body_bytes must be positive, got %d", ErrInvalidConfig, c.MaxBodyBytes)
	case c.BatchConcurrency < 0:
		return fmt.Errorf("%w: batch_concurrency must not be negative, got %d", ErrInvalidConfig, c.BatchConcurrency)
	}
	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		return fmt.Errorf("%w: unknown log_format %q", ErrInvalidConfig, c.LogFormat)
	}
	return nil
}
