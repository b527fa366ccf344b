// Package config loads folio settings from a YAML file with environment
// variable overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/jonandersen/folio/internal/logging"
	"github.com/jonandersen/folio/internal/market"
	"github.com/jonandersen/folio/pkg/eodhd"
)

const (
	AppName               = "folio"
	DefaultRateLimit      = eodhd.DefaultRateLimit
	DefaultTimeoutSeconds = 30
	DefaultLookbackDays   = 365
)

// Config holds the CLI configuration.
type Config struct {
	Provider         string `yaml:"provider" env:"FOLIO_PROVIDER"`
	DefaultBenchmark string `yaml:"default_benchmark" env:"FOLIO_BENCHMARK"`
	EODHDBaseURL     string `yaml:"eodhd_base_url" env:"FOLIO_EODHD_BASE_URL"`
	RateLimit        int    `yaml:"rate_limit" env:"FOLIO_RATE_LIMIT"`
	TimeoutSeconds   int    `yaml:"timeout_seconds" env:"FOLIO_TIMEOUT_SECONDS"`
	LookbackDays     int    `yaml:"lookback_days" env:"FOLIO_LOOKBACK_DAYS"`
	LogLevel         string `yaml:"log_level" env:"FOLIO_LOG_LEVEL"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Provider:         market.ProviderYahoo,
		DefaultBenchmark: market.DefaultBenchmark,
		EODHDBaseURL:     eodhd.DefaultBaseURL,
		RateLimit:        DefaultRateLimit,
		TimeoutSeconds:   DefaultTimeoutSeconds,
		LookbackDays:     DefaultLookbackDays,
		LogLevel:         logging.DefaultLevel,
	}
}

// Timeout returns the per-computation timeout.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// Validate checks that the configuration can be used.
func (c *Config) Validate() error {
	var errs []error
	if !market.ValidProvider(c.Provider) {
		errs = append(errs, fmt.Errorf("%w: %q", market.ErrUnknownProvider, c.Provider))
	}
	if _, err := market.LookupBenchmark(c.DefaultBenchmark); err != nil {
		errs = append(errs, err)
	}
	if c.TimeoutSeconds <= 0 {
		errs = append(errs, fmt.Errorf("timeout_seconds must be positive, got %d", c.TimeoutSeconds))
	}
	if c.LookbackDays <= 0 {
		errs = append(errs, fmt.Errorf("lookback_days must be positive, got %d", c.LookbackDays))
	}
	if c.RateLimit < 0 {
		errs = append(errs, fmt.Errorf("rate_limit must not be negative, got %d", c.RateLimit))
	}
	return errors.Join(errs...)
}

// Load reads the config file at path, filling missing keys with defaults,
// then applies FOLIO_* environment overrides. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}
	return cfg, nil
}

// LoadFile reads the config file at path without environment overrides, for
// callers that write the config back.
func LoadFile(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	case os.IsNotExist(err):
	default:
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	return cfg, nil
}

// LoadDotEnv loads variables from a .env file in the working directory
// without overriding the ones already set.
func LoadDotEnv() {
	_ = godotenv.Load(".env")
}

// Save writes cfg to path, creating parent directories.
func Save(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// ConfigDir returns $XDG_CONFIG_HOME/folio or ~/.config/folio.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "."+AppName)
	}
	return filepath.Join(home, ".config", AppName)
}

// ConfigPath returns the default config file path.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}

// LogPath returns the file TUI sessions log to.
func LogPath() string {
	return filepath.Join(ConfigDir(), AppName+".log")
}
