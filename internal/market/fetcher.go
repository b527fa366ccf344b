package market

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

// Fetcher retrieves daily adjusted-close prices for one symbol over the
// inclusive range [start, end].
//
// When the provider has nothing for the symbol and range it returns a
// *NoDataError; callers check with errors.Is(err, ErrNoData).
type Fetcher interface {
	FetchAdjustedClose(ctx context.Context, symbol string, start, end time.Time) (Series, error)
}

// FetcherFunc adapts a function to the Fetcher interface.
type FetcherFunc func(ctx context.Context, symbol string, start, end time.Time) (Series, error)

// FetchAdjustedClose calls f.
func (f FetcherFunc) FetchAdjustedClose(ctx context.Context, symbol string, start, end time.Time) (Series, error) {
	return f(ctx, symbol, start, end)
}

// Options configures the fetcher built by NewFetcher.
type Options struct {
	Provider     string
	EODHDBaseURL string
	EODHDAPIKey  string
	RateLimit    int
	Timeout      time.Duration
	Logger       zerolog.Logger
}

// NewFetcher builds the fetcher for the configured provider.
func NewFetcher(opts Options) (Fetcher, error) {
	switch opts.Provider {
	case ProviderYahoo, "":
		return NewYahooFetcher(opts.Logger), nil
	case ProviderEODHD:
		if opts.EODHDAPIKey == "" {
			return nil, fmt.Errorf("EODHD API key is not configured (run 'folio configure' or set %s)", "FOLIO_EODHD_API_KEY")
		}
		return NewEODHDFetcher(opts.EODHDBaseURL, opts.EODHDAPIKey, opts.RateLimit, opts.Timeout, opts.Logger), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownProvider, opts.Provider)
	}
}

// CheckRange validates a request range.
func CheckRange(start, end time.Time) error {
	if Day(start).After(Day(end)) {
		return fmt.Errorf("%w (%s > %s)", ErrInvalidRange, start.Format(DateLayout), end.Format(DateLayout))
	}
	return nil
}
