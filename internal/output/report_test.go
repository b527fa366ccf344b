package output

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonandersen/folio/internal/dashboard"
	"github.com/jonandersen/folio/internal/market"
	"github.com/jonandersen/folio/internal/portfolio"
)

func sampleResult() *dashboard.Result {
	bench, _ := market.LookupBenchmark("nasdaq")
	dates := []time.Time{
		time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC),
	}
	p, idx := []float64{1000, 1100}, []float64{200, 210}
	return &dashboard.Result{
		Holdings: []portfolio.Holding{
			{Ticker: "AAPL", Quantity: decimal.NewFromInt(5)},
			{Ticker: "MSFT", Quantity: decimal.RequireFromString("2.5")},
		},
		Benchmark:   bench,
		IndexSymbol: "^IXIC",
		Provider:    market.ProviderYahoo,
		Currency:    "USD",
		Start:       dates[0],
		End:         dates[1],
		Combined:    dashboard.Combined{Dates: dates, Portfolio: p, Index: idx},
		Portfolio:   dashboard.Measure(p),
		Index:       dashboard.Measure(idx),
	}
}

func TestSummaryRows(t *testing.T) {
	rows := SummaryRows(sampleResult())

	require.Len(t, rows, 2)
	assert.Equal(t, []string{"Portfolio", "AAPL,MSFT", "$1,000.00", "$1,100.00", "+10.00%", "0.00%"}, rows[0])
	assert.Equal(t, []string{"NASDAQ Composite", "^IXIC", "200.00", "210.00", "+5.00%", "0.00%"}, rows[1])
}

func TestSummaryRows_UnknownCurrencyIsPlain(t *testing.T) {
	res := sampleResult()
	res.Currency = ""

	rows := SummaryRows(res)
	assert.Equal(t, "1000.00", rows[0][2])
	assert.Equal(t, "1100.00", rows[0][3])
}

func TestFormatter_Comparison_Text(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, New(&buf, false).Comparison(sampleResult()))

	out := buf.String()
	assert.Contains(t, out, "2024-03-01 to 2024-03-04, 2 trading days (yahoo)")
	assert.Contains(t, out, "VOLATILITY")
	assert.Contains(t, out, "$1,100.00")
}

func TestFormatter_Comparison_JSON(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, New(&buf, true).Comparison(sampleResult()))

	var decoded struct {
		IndexSymbol string `json:"indexSymbol"`
		Combined    struct {
			Portfolio []float64 `json:"portfolio"`
		} `json:"combined"`
		Portfolio struct {
			TotalReturn float64 `json:"totalReturn"`
		} `json:"portfolio"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "^IXIC", decoded.IndexSymbol)
	assert.Equal(t, []float64{1000, 1100}, decoded.Combined.Portfolio)
	assert.InDelta(t, 0.1, decoded.Portfolio.TotalReturn, 1e-9)
}

func TestComparisonReport(t *testing.T) {
	md := ComparisonReport(sampleResult())

	assert.Contains(t, md, "# Portfolio vs NASDAQ Composite")
	assert.Contains(t, md, "| MSFT | 2.5 |")
	assert.Contains(t, md, "outperformed the index by 5.00%")
}

func TestComparisonReport_Underperformed(t *testing.T) {
	res := sampleResult()
	res.Index = dashboard.Measure([]float64{200, 260})

	assert.Contains(t, ComparisonReport(res), "underperformed the index by 20.00%")
}
