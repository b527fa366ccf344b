// Package performance computes return and risk figures from a daily price
// series. All functions are pure.
package performance

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// TradingDaysPerYear scales daily volatility to a yearly horizon.
const TradingDaysPerYear = 252

// CumulativeReturn returns prices[t]/prices[0] - 1 for every t.
// The first element is always 0.
func CumulativeReturn(prices []float64) []float64 {
	out := make([]float64, len(prices))
	if len(prices) == 0 {
		return out
	}
	base := prices[0]
	for i, p := range prices {
		if i == 0 {
			out[i] = 0
			continue
		}
		out[i] = p/base - 1
	}
	return out
}

// TotalReturn is the cumulative return at the last date, or 0 for fewer
// than two prices.
func TotalReturn(prices []float64) float64 {
	if len(prices) < 2 {
		return 0
	}
	return prices[len(prices)-1]/prices[0] - 1
}

// DailyReturns returns the day-over-day percentage change, one element
// shorter than prices.
func DailyReturns(prices []float64) []float64 {
	if len(prices) < 2 {
		return nil
	}
	out := make([]float64, len(prices)-1)
	for i := 1; i < len(prices); i++ {
		out[i-1] = prices[i]/prices[i-1] - 1
	}
	return out
}

// StdDev is the sample standard deviation (n-1 denominator).
// It returns 0 for fewer than two values.
func StdDev(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	return stat.StdDev(values, nil)
}

// AnnualizedVolatility is the standard deviation of daily returns scaled by
// the square root of TradingDaysPerYear.
func AnnualizedVolatility(prices []float64) float64 {
	return StdDev(DailyReturns(prices)) * math.Sqrt(TradingDaysPerYear)
}
