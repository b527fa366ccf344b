package market

import (
	"context"
	"time"

	finance "github.com/piquette/finance-go"
	"github.com/piquette/finance-go/chart"
	"github.com/piquette/finance-go/datetime"
	"github.com/rs/zerolog"

	"github.com/jonandersen/folio/internal/logging"
)

// barIterator is the subset of *chart.Iter the Yahoo fetcher reads.
type barIterator interface {
	Next() bool
	Bar() *finance.ChartBar
	Err() error
	Meta() finance.ChartMeta
}

// YahooFetcher reads adjusted closes from the Yahoo Finance chart API.
type YahooFetcher struct {
	logger zerolog.Logger
	chart  func(*chart.Params) barIterator
}

// NewYahooFetcher creates a fetcher backed by finance-go.
func NewYahooFetcher(logger zerolog.Logger) *YahooFetcher {
	return &YahooFetcher{
		logger: logger,
		chart: func(p *chart.Params) barIterator {
			return chart.Get(p)
		},
	}
}

// FetchAdjustedClose implements Fetcher. Provider errors are reported as
// missing data for the symbol, with the provider error attached.
func (f *YahooFetcher) FetchAdjustedClose(ctx context.Context, symbol string, start, end time.Time) (Series, error) {
	if err := CheckRange(start, end); err != nil {
		return Series{}, err
	}
	log := logging.For(ctx, f.logger)

	// Sessions east of UTC open on the previous UTC day, so the window starts
	// a day early and is clipped once bars are mapped to trading days.
	from := Day(start).AddDate(0, 0, -1)
	// Yahoo's period end is exclusive.
	to := Day(end).AddDate(0, 0, 1)

	params := &chart.Params{
		Symbol:   symbol,
		Start:    datetime.New(&from),
		End:      datetime.New(&to),
		Interval: datetime.OneDay,
	}
	params.Context = &ctx

	iter := f.chart(params)
	var bars []*finance.ChartBar
	for iter.Next() {
		bars = append(bars, iter.Bar())
	}
	if err := iter.Err(); err != nil {
		log.Debug().Err(err).Str("symbol", symbol).Msg("yahoo: chart request failed")
		return Series{}, &NoDataError{Symbol: symbol, Cause: err}
	}

	var meta finance.ChartMeta
	if len(bars) > 0 {
		meta = iter.Meta()
	}
	series := barsToSeries(symbol, bars, meta.Gmtoffset).Between(start, end)
	series.Currency = meta.Currency
	log.Debug().
		Str("provider", ProviderYahoo).
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

// barsToSeries converts chart bars to a normalized series of adjusted closes.
// Bars are stamped at the session open in UTC, so the exchange's offset in
// seconds is added before reducing a timestamp to its trading day.
func barsToSeries(symbol string, bars []*finance.ChartBar, gmtoffset int) Series {
	points := make([]Point, 0, len(bars))
	for _, bar := range bars {
		if bar == nil {
			continue
		}
		price, _ := bar.AdjClose.Float64()
		points = append(points, Point{
			Date:  time.Unix(int64(bar.Timestamp+gmtoffset), 0).UTC(),
			Price: price,
		})
	}
	return Normalize(symbol, points)
}
