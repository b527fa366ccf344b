package market

import (
	"errors"
	"fmt"
)

var (
	// ErrNoData matches any NoDataError.
	ErrNoData = errors.New("no data")

	// ErrInvalidRange is returned when the start date is after the end date.
	ErrInvalidRange = errors.New("start date is after end date")

	// ErrUnknownBenchmark is returned for benchmark keys outside the fixed set.
	ErrUnknownBenchmark = errors.New("unknown benchmark")

	// ErrUnknownProvider is returned for provider names folio cannot build.
	ErrUnknownProvider = errors.New("unknown data provider")

	// ErrQuotaExceeded is returned when the provider refuses requests because
	// the account's request quota is used up.
	ErrQuotaExceeded = errors.New("provider request quota exceeded")
)

// NoDataError reports that a provider returned nothing for a symbol over the
// requested range.
type NoDataError struct {
	Symbol string
	Cause  error
}

// Error implements the error interface.
func (e *NoDataError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("no data for %s: %v", e.Symbol, e.Cause)
	}
	return fmt.Sprintf("no data for %s", e.Symbol)
}

// Is makes errors.Is(err, ErrNoData) true for every NoDataError.
func (e *NoDataError) Is(target error) bool {
	return target == ErrNoData
}

// Unwrap returns the provider error, if any.
func (e *NoDataError) Unwrap() error {
	return e.Cause
}
