package cmd

import (
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"

	"github.com/jonandersen/folio/internal/config"
	"github.com/jonandersen/folio/internal/keyring"
	"github.com/jonandersen/folio/internal/logging"
	"github.com/jonandersen/folio/internal/market"
)

// loadConfig reads and validates the config file.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(config.ConfigPath())
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", config.ConfigPath(), err)
	}
	return cfg, nil
}

// newLogger logs to w at the --log-level flag, falling back to the config.
func newLogger(cfg *config.Config, w io.Writer) zerolog.Logger {
	level := cfg.LogLevel
	if logLevel != "" {
		level = logLevel
	}
	return logging.New(level, w)
}

// newFetcher builds the configured provider, reading the EODHD API key from
// the store when needed.
func newFetcher(cfg *config.Config, store keyring.Store, logger zerolog.Logger) (market.Fetcher, error) {
	var apiKey string
	if cfg.Provider == market.ProviderEODHD {
		key, err := keyring.APIKey(store)
		if err != nil {
			return nil, err
		}
		apiKey = key
	}
	return market.NewFetcher(market.Options{
		Provider:     cfg.Provider,
		EODHDBaseURL: cfg.EODHDBaseURL,
		EODHDAPIKey:  apiKey,
		RateLimit:    cfg.RateLimit,
		Timeout:      cfg.Timeout(),
		Logger:       logger,
	})
}

// dateRange resolves --start and --end. A blank end is today and a blank
// start is lookbackDays before end.
func dateRange(start, end string, lookbackDays int, now time.Time) (time.Time, time.Time, error) {
	to := market.Day(now)
	if end != "" {
		d, err := market.ParseDate(end)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid --end %q, use %s", end, market.DateLayout)
		}
		to = d
	}

	from := to.AddDate(0, 0, -lookbackDays)
	if start != "" {
		d, err := market.ParseDate(start)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid --start %q, use %s", start, market.DateLayout)
		}
		from = d
	}

	if err := market.CheckRange(from, to); err != nil {
		return time.Time{}, time.Time{}, err
	}
	return from, to, nil
}
