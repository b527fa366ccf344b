// Package dashboard drives one portfolio-versus-benchmark comparison: parse
// input, value the portfolio, fetch the index, align the two by date and
// compute their performance.
package dashboard

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/jonandersen/folio/internal/logging"
	"github.com/jonandersen/folio/internal/market"
	"github.com/jonandersen/folio/internal/performance"
	"github.com/jonandersen/folio/internal/portfolio"
)

var (
	// ErrNoInput means tickers or quantities were left blank; nothing is
	// computed.
	ErrNoInput = errors.New("enter tickers and quantities to compare")

	// ErrNoOverlap means the portfolio and the index share no trading day.
	ErrNoOverlap = errors.New("portfolio and index have no dates in common")
)

// Request is the user input for one comparison.
type Request struct {
	Tickers    string    `json:"tickers"`
	Quantities string    `json:"quantities"`
	Benchmark  string    `json:"benchmark"`
	Start      time.Time `json:"start"`
	End        time.Time `json:"end"`
}

// Blank reports whether tickers or quantities are missing.
func (r Request) Blank() bool {
	return strings.TrimSpace(r.Tickers) == "" || strings.TrimSpace(r.Quantities) == ""
}

// Combined is the portfolio value and index price on the dates both have.
type Combined struct {
	Dates     []time.Time `json:"dates"`
	Portfolio []float64   `json:"portfolio"`
	Index     []float64   `json:"index"`
}

// Len returns the number of aligned dates.
func (c Combined) Len() int {
	return len(c.Dates)
}

// Align keeps the dates present in both series.
func Align(portfolioValue, index market.Series) Combined {
	aligned := market.Intersect(portfolioValue, index)
	return Combined{
		Dates:     aligned[0].Dates(),
		Portfolio: aligned[0].Values(),
		Index:     aligned[1].Values(),
	}
}

// Metrics are the performance figures of one aligned series.
type Metrics struct {
	CumulativeReturn []float64 `json:"cumulativeReturn"`
	TotalReturn      float64   `json:"totalReturn"`
	Volatility       float64   `json:"annualizedVolatility"`
	StartValue       float64   `json:"startValue"`
	EndValue         float64   `json:"endValue"`
}

// Measure computes Metrics for a series of values.
func Measure(values []float64) Metrics {
	m := Metrics{
		CumulativeReturn: performance.CumulativeReturn(values),
		TotalReturn:      performance.TotalReturn(values),
		Volatility:       performance.AnnualizedVolatility(values),
	}
	if len(values) > 0 {
		m.StartValue = values[0]
		m.EndValue = values[len(values)-1]
	}
	return m
}

// Result is everything the presentation layer needs for one comparison.
type Result struct {
	Holdings    []portfolio.Holding `json:"holdings"`
	Benchmark   market.Benchmark    `json:"benchmark"`
	IndexSymbol string              `json:"indexSymbol"`
	Provider    string              `json:"provider"`
	// Currency of the portfolio value, empty when unknown or mixed.
	Currency  string    `json:"currency,omitempty"`
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`
	Combined  Combined  `json:"combined"`
	Portfolio Metrics   `json:"portfolio"`
	Index     Metrics   `json:"index"`
}

// Service runs comparisons against one data provider.
type Service struct {
	fetcher  market.Fetcher
	provider string
	logger   zerolog.Logger
}

// New creates a Service. provider selects which benchmark symbol is used.
func New(fetcher market.Fetcher, provider string, logger zerolog.Logger) *Service {
	if provider == "" {
		provider = market.ProviderYahoo
	}
	return &Service{fetcher: fetcher, provider: provider, logger: logger}
}

// Compare runs one comparison. Blank input returns ErrNoInput without
// touching the provider. Any failure aborts the whole request; a Result is
// only returned on success.
func (s *Service) Compare(ctx context.Context, req Request) (*Result, error) {
	if req.Blank() {
		return nil, ErrNoInput
	}

	ctx = logging.WithRequestID(ctx)
	log := logging.For(ctx, s.logger)

	holdings, err := portfolio.Parse(req.Tickers, req.Quantities)
	if err != nil {
		log.Info().Err(err).Msg("rejected portfolio input")
		return nil, err
	}

	benchmark, err := market.LookupBenchmark(req.Benchmark)
	if err != nil {
		return nil, err
	}
	indexSymbol, err := benchmark.Symbol(s.provider)
	if err != nil {
		return nil, err
	}

	start, end := market.Day(req.Start), market.Day(req.End)
	if err := market.CheckRange(start, end); err != nil {
		return nil, err
	}

	log.Debug().
		Strs("tickers", portfolio.Tickers(holdings)).
		Str("benchmark", benchmark.Key).
		Str("start", start.Format(market.DateLayout)).
		Str("end", end.Format(market.DateLayout)).
		Msg("comparison started")

	value, err := portfolio.Aggregate(ctx, s.fetcher, holdings, start, end)
	if err != nil {
		log.Warn().Err(err).Msg("portfolio valuation failed")
		return nil, err
	}

	index, err := s.fetcher.FetchAdjustedClose(ctx, indexSymbol, start, end)
	if err != nil {
		log.Warn().Err(err).Str("symbol", indexSymbol).Msg("benchmark fetch failed")
		return nil, fmt.Errorf("could not retrieve data for index %s (%s): %w", benchmark.Name, indexSymbol, err)
	}

	combined := Align(value, index)
	if combined.Len() == 0 {
		return nil, ErrNoOverlap
	}

	result := &Result{
		Holdings:    holdings,
		Benchmark:   benchmark,
		IndexSymbol: indexSymbol,
		Provider:    s.provider,
		Currency:    value.Currency,
		Start:       start,
		End:         end,
		Combined:    combined,
		Portfolio:   Measure(combined.Portfolio),
		Index:       Measure(combined.Index),
	}

	log.Info().
		Int("days", combined.Len()).
		Float64("portfolioReturn", result.Portfolio.TotalReturn).
		Float64("indexReturn", result.Index.TotalReturn).
		Msg("comparison complete")

	return result, nil
}
