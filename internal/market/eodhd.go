package market

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/jonandersen/folio/internal/logging"
	"github.com/jonandersen/folio/pkg/eodhd"
)

// EODHDFetcher reads adjusted closes from the EODHD end-of-day endpoint.
type EODHDFetcher struct {
	client *eodhd.Client
	logger zerolog.Logger
}

// NewEODHDFetcher creates a fetcher backed by an eodhd.Client.
func NewEODHDFetcher(baseURL, apiKey string, rateLimit int, timeout time.Duration, logger zerolog.Logger) *EODHDFetcher {
	opts := []eodhd.Option{eodhd.WithRateLimit(rateLimit)}
	if timeout > 0 {
		opts = append(opts, eodhd.WithTimeout(timeout))
	}
	return &EODHDFetcher{
		client: eodhd.NewClient(baseURL, apiKey, opts...),
		logger: logger,
	}
}

// FetchAdjustedClose implements Fetcher.
func (f *EODHDFetcher) FetchAdjustedClose(ctx context.Context, symbol string, start, end time.Time) (Series, error) {
	if err := CheckRange(start, end); err != nil {
		return Series{}, err
	}
	log := logging.For(ctx, f.logger)

	bars, err := f.client.GetEOD(ctx, eodhd.EODRequest{
		Ticker: symbol,
		From:   Day(start),
		To:     Day(end),
	})
	if err != nil {
		var apiErr *eodhd.APIError
		if errors.As(err, &apiErr) {
			switch {
			case apiErr.IsNotFound():
				log.Debug().Str("symbol", symbol).Msg("eodhd: symbol not found")
				return Series{}, &NoDataError{Symbol: symbol}
			case apiErr.IsRateLimited():
				log.Warn().Int("status", apiErr.StatusCode).Str("symbol", symbol).Msg("eodhd: quota exceeded")
				return Series{}, fmt.Errorf("fetch %s: %w, retry later or lower rate_limit: %w", symbol, ErrQuotaExceeded, err)
			}
		}
		return Series{}, fmt.Errorf("fetch %s: %w", symbol, err)
	}

	points := make([]Point, 0, len(bars))
	for _, bar := range bars {
		date, err := bar.Time()
		if err != nil {
			log.Warn().Str("symbol", symbol).Str("date", bar.Date).Msg("eodhd: skipping bar with bad date")
			continue
		}
		points = append(points, Point{Date: date, Price: bar.AdjustedClose})
	}

	series := Normalize(symbol, points).Between(start, end)
	log.Debug().
		Str("provider", ProviderEODHD).
		Str("symbol", symbol).
		Str("start", start.Format(DateLayout)).
		Str("end", end.Format(DateLayout)).
		Int("points", series.Len()).
		Msg("fetched adjusted close series")

	if series.Empty() {
		return Series{}, &NoDataError{Symbol: symbol}
	}
	return series, nil
}
