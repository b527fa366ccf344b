// Package portfolio parses share holdings and values them over time.
package portfolio

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	// ErrCountMismatch is returned when the ticker and quantity lists differ
	// in length.
	ErrCountMismatch = errors.New("number of tickers and quantities must match")

	// ErrInvalidQuantity matches every QuantityError.
	ErrInvalidQuantity = errors.New("invalid quantity")

	// ErrEmptyTicker is returned when a ticker entry is blank.
	ErrEmptyTicker = errors.New("empty ticker")

	// ErrDuplicateTicker is returned when a ticker appears twice.
	ErrDuplicateTicker = errors.New("duplicate ticker")

	// ErrEmptyPortfolio is returned when no holdings are given.
	ErrEmptyPortfolio = errors.New("portfolio has no holdings")
)

// Holding is a number of shares of one ticker.
type Holding struct {
	Ticker   string          `json:"ticker"`
	Quantity decimal.Decimal `json:"quantity"`
}

// Shares returns the quantity as a float for series arithmetic.
func (h Holding) Shares() float64 {
	return h.Quantity.InexactFloat64()
}

// QuantityError reports a quantity that is not a positive number.
type QuantityError struct {
	Ticker string
	Value  string
}

// Error implements the error interface.
func (e *QuantityError) Error() string {
	return fmt.Sprintf("invalid quantity %q for %s: must be a positive number", e.Value, e.Ticker)
}

// Is makes errors.Is(err, ErrInvalidQuantity) true.
func (e *QuantityError) Is(target error) bool {
	return target == ErrInvalidQuantity
}

// splitList splits a comma-separated list, trimming whitespace and dropping a
// trailing empty item so "A, B," reads as two entries.
func splitList(s string) []string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	for len(parts) > 0 && parts[len(parts)-1] == "" {
		parts = parts[:len(parts)-1]
	}
	return parts
}

// Parse reads comma-separated tickers and quantities into holdings.
// Tickers are upper-cased and must be unique.
func Parse(tickers, quantities string) ([]Holding, error) {
	tks := splitList(tickers)
	qts := splitList(quantities)

	if len(tks) != len(qts) {
		return nil, fmt.Errorf("%w: got %d tickers and %d quantities", ErrCountMismatch, len(tks), len(qts))
	}
	if len(tks) == 0 {
		return nil, ErrEmptyPortfolio
	}

	seen := make(map[string]bool, len(tks))
	holdings := make([]Holding, 0, len(tks))
	for i, raw := range tks {
		ticker := strings.ToUpper(raw)
		if ticker == "" {
			return nil, fmt.Errorf("%w at position %d", ErrEmptyTicker, i+1)
		}
		if seen[ticker] {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateTicker, ticker)
		}
		seen[ticker] = true

		qty, err := decimal.NewFromString(qts[i])
		if err != nil || !qty.IsPositive() {
			return nil, &QuantityError{Ticker: ticker, Value: qts[i]}
		}
		holdings = append(holdings, Holding{Ticker: ticker, Quantity: qty})
	}
	return holdings, nil
}

// Tickers returns the tickers of holdings in order.
func Tickers(holdings []Holding) []string {
	out := make([]string, len(holdings))
	for i, h := range holdings {
		out[i] = h.Ticker
	}
	return out
}
