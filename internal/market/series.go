// Package market retrieves daily adjusted-close price series from external
// data providers and provides the date-series helpers the rest of folio
// builds on.
package market

import (
	"math"
	"sort"
	"time"
)

// DateLayout is the calendar date format used on the command line and in
// provider requests.
const DateLayout = "2006-01-02"

// Point is a single daily observation.
type Point struct {
	Date  time.Time `json:"date"`
	Price float64   `json:"price"`
}

// Series is an ordered sequence of daily points for one symbol.
// Dates are strictly increasing calendar days at UTC midnight.
type Series struct {
	Symbol string `json:"symbol"`
	// Currency is the ISO 4217 code of the prices, empty when the provider
	// does not report one.
	Currency string  `json:"currency,omitempty"`
	Points   []Point `json:"points"`
}

// Day truncates t to its calendar day at UTC midnight.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a YYYY-MM-DD date.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}

// Len returns the number of points.
func (s Series) Len() int {
	return len(s.Points)
}

// Empty reports whether the series has no points.
func (s Series) Empty() bool {
	return len(s.Points) == 0
}

// Dates returns the dates of the series in order.
func (s Series) Dates() []time.Time {
	dates := make([]time.Time, len(s.Points))
	for i, p := range s.Points {
		dates[i] = p.Date
	}
	return dates
}

// Values returns the prices of the series in order.
func (s Series) Values() []float64 {
	values := make([]float64, len(s.Points))
	for i, p := range s.Points {
		values[i] = p.Price
	}
	return values
}

// Scale returns a copy of s with every price multiplied by factor.
func (s Series) Scale(factor float64) Series {
	out := Series{Symbol: s.Symbol, Currency: s.Currency, Points: make([]Point, len(s.Points))}
	for i, p := range s.Points {
		out.Points[i] = Point{Date: p.Date, Price: p.Price * factor}
	}
	return out
}

// Between returns the points whose date falls in [start, end].
func (s Series) Between(start, end time.Time) Series {
	start, end = Day(start), Day(end)
	out := Series{Symbol: s.Symbol, Currency: s.Currency}
	for _, p := range s.Points {
		if p.Date.Before(start) || p.Date.After(end) {
			continue
		}
		out.Points = append(out.Points, p)
	}
	return out
}

// Normalize returns the points sorted by date with dates truncated to the
// calendar day. Non-positive and non-finite prices are dropped; for duplicate
// dates the last observation wins.
func Normalize(symbol string, points []Point) Series {
	byDay := make(map[time.Time]float64, len(points))
	for _, p := range points {
		if p.Price <= 0 || math.IsNaN(p.Price) || math.IsInf(p.Price, 0) {
			continue
		}
		byDay[Day(p.Date)] = p.Price
	}

	out := Series{Symbol: symbol, Points: make([]Point, 0, len(byDay))}
	for d, v := range byDay {
		out.Points = append(out.Points, Point{Date: d, Price: v})
	}
	sort.Slice(out.Points, func(i, j int) bool {
		return out.Points[i].Date.Before(out.Points[j].Date)
	})
	return out
}

// Intersect restricts every series to the dates present in all of them.
// The returned slice has the same order as the input.
func Intersect(series ...Series) []Series {
	if len(series) == 0 {
		return nil
	}

	counts := make(map[time.Time]int)
	for _, s := range series {
		for _, p := range s.Points {
			counts[p.Date]++
		}
	}

	out := make([]Series, len(series))
	for i, s := range series {
		out[i] = Series{Symbol: s.Symbol, Currency: s.Currency, Points: make([]Point, 0, len(s.Points))}
		for _, p := range s.Points {
			if counts[p.Date] == len(series) {
				out[i].Points = append(out[i].Points, p)
			}
		}
	}
	return out
}
