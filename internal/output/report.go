package output

import (
	"fmt"
	"math"
	"strings"

	"github.com/jonandersen/folio/internal/dashboard"
	"github.com/jonandersen/folio/internal/market"
	"github.com/jonandersen/folio/internal/portfolio"
)

// SummaryHeaders are the columns of SummaryRows.
var SummaryHeaders = []string{"SERIES", "SYMBOL", "START", "END", "RETURN", "VOLATILITY"}

// SummaryRows returns one row for the portfolio and one for the index.
func SummaryRows(res *dashboard.Result) [][]string {
	return [][]string{
		{
			"Portfolio",
			strings.Join(portfolio.Tickers(res.Holdings), ","),
			FormatMoney(res.Portfolio.StartValue, res.Currency),
			FormatMoney(res.Portfolio.EndValue, res.Currency),
			FormatSignedPercent(res.Portfolio.TotalReturn),
			FormatPercent(res.Portfolio.Volatility),
		},
		{
			res.Benchmark.Name,
			res.IndexSymbol,
			fmt.Sprintf("%.2f", res.Index.StartValue),
			fmt.Sprintf("%.2f", res.Index.EndValue),
			FormatSignedPercent(res.Index.TotalReturn),
			FormatPercent(res.Index.Volatility),
		},
	}
}

// Comparison writes a comparison result. JSON mode emits the full result
// including the combined series.
func (f *Formatter) Comparison(res *dashboard.Result) error {
	if f.JSONMode {
		return f.Print(res)
	}
	if _, err := fmt.Fprintf(f.Writer, "%s to %s, %d trading days (%s)\n\n",
		res.Start.Format(market.DateLayout), res.End.Format(market.DateLayout),
		res.Combined.Len(), res.Provider); err != nil {
		return err
	}
	return f.Table(SummaryHeaders, SummaryRows(res))
}

// ComparisonReport builds a markdown report for a comparison.
func ComparisonReport(res *dashboard.Result) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Portfolio vs %s\n\n", res.Benchmark.Name)
	fmt.Fprintf(&b, "%s to %s, %d trading days, data from %s.\n\n",
		res.Start.Format(market.DateLayout), res.End.Format(market.DateLayout),
		res.Combined.Len(), res.Provider)

	b.WriteString("## Performance\n\n")
	b.WriteString("| Series | Start | End | Cumulative return | Annualized volatility |\n")
	b.WriteString("|---|---:|---:|---:|---:|\n")
	for _, row := range SummaryRows(res) {
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s |\n", row[0], row[2], row[3], row[4], row[5])
	}

	b.WriteString("\n## Holdings\n\n")
	b.WriteString("| Ticker | Quantity |\n|---|---:|\n")
	for _, h := range res.Holdings {
		fmt.Fprintf(&b, "| %s | %s |\n", h.Ticker, h.Quantity.String())
	}

	diff := res.Portfolio.TotalReturn - res.Index.TotalReturn
	verdict := "outperformed"
	if diff < 0 {
		verdict = "underperformed"
	}
	fmt.Fprintf(&b, "\nThe portfolio %s the index by %s.\n", verdict, FormatPercent(math.Abs(diff)))

	return b.String()
}
