package output

import (
	"fmt"
	"math"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// FormatMoney formats amount in currency, e.g. "$1,234.56". An empty or
// unknown currency code gives a plain number with two decimals.
func FormatMoney(amount float64, currency string) string {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return "-"
	}
	cur := money.GetCurrency(currency)
	if currency == "" || cur == nil {
		return fmt.Sprintf("%.2f", amount)
	}
	minor := decimal.NewFromFloat(amount).Shift(int32(cur.Fraction)).Round(0).IntPart()
	return cur.Formatter().Format(minor)
}

// FormatPercent formats a fraction as a percentage with two decimals.
func FormatPercent(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "-"
	}
	return fmt.Sprintf("%.2f%%", v*100)
}

// FormatSignedPercent is FormatPercent with an explicit plus sign.
func FormatSignedPercent(v float64) string {
	if v > 0 {
		return "+" + FormatPercent(v)
	}
	return FormatPercent(v)
}
