package portfolio

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jonandersen/folio/internal/market"
)

// SeriesName is the symbol given to aggregated portfolio series.
const SeriesName = "PORTFOLIO"

// Weight multiplies every price of s by quantity.
func Weight(s market.Series, quantity float64) market.Series {
	return s.Scale(quantity)
}

// Aggregate values the holdings over [start, end]. Each ticker is fetched in
// input order and weighted by its quantity; the weighted series are summed on
// the dates where every holding has a price.
//
// One ticker without data invalidates the whole portfolio: the error names
// the ticker and no partial series is returned.
func Aggregate(ctx context.Context, fetcher market.Fetcher, holdings []Holding, start, end time.Time) (market.Series, error) {
	if len(holdings) == 0 {
		return market.Series{}, ErrEmptyPortfolio
	}

	weighted := make([]market.Series, 0, len(holdings))
	for _, h := range holdings {
		s, err := fetcher.FetchAdjustedClose(ctx, h.Ticker, start, end)
		if err != nil {
			return market.Series{}, fmt.Errorf("could not retrieve data for ticker %s: %w", h.Ticker, err)
		}
		if s.Empty() {
			return market.Series{}, fmt.Errorf("could not retrieve data for ticker %s: %w", h.Ticker, &market.NoDataError{Symbol: h.Ticker})
		}
		weighted = append(weighted, Weight(s, h.Shares()))
	}

	return Sum(weighted...)
}

// Sum adds series together on their common dates. The total carries the
// currency shared by every input, or none when they differ.
func Sum(series ...market.Series) (market.Series, error) {
	aligned := market.Intersect(series...)
	if len(aligned) == 0 || aligned[0].Empty() {
		names := make([]string, len(series))
		for i, s := range series {
			names[i] = s.Symbol
		}
		return market.Series{}, fmt.Errorf("%w: no trading day common to %s", market.ErrNoData, strings.Join(names, ", "))
	}

	total := market.Series{
		Symbol:   SeriesName,
		Currency: commonCurrency(series),
		Points:   make([]market.Point, aligned[0].Len()),
	}
	for i, p := range aligned[0].Points {
		total.Points[i] = market.Point{Date: p.Date}
	}
	for _, s := range aligned {
		for i, p := range s.Points {
			total.Points[i].Price += p.Price
		}
	}
	return total, nil
}

func commonCurrency(series []market.Series) string {
	currency := series[0].Currency
	for _, s := range series[1:] {
		if s.Currency != currency {
			return ""
		}
	}
	return currency
}
