package tui

import (
	"math"

	"github.com/guptarohit/asciigraph"
)

// Chart colours in the 256-colour palette the lipgloss styles use.
const (
	PortfolioLineColor = asciigraph.AnsiColor(39)  // ColorPrimary
	IndexLineColor     = asciigraph.AnsiColor(208) // orange
	chartMutedColor    = asciigraph.AnsiColor(241) // ColorMuted
)

// ChartLine is one series drawn by renderLineChart. Values are fractions and
// are plotted as percentages.
type ChartLine struct {
	Name   string
	Values []float64
	Color  asciigraph.AnsiColor
}

// axisWidth is the room left of the plot for the percent labels.
const axisWidth = 9

// renderLineChart plots lines in a width x height block: the plot, a caption
// and a legend. Every line needs two finite points or nothing is drawn.
func renderLineChart(width, height int, lines ...ChartLine) string {
	plotWidth := width - axisWidth
	if plotWidth < 2 || height < 4 || len(lines) == 0 {
		return ""
	}

	lo, hi := math.Inf(1), math.Inf(-1)
	data := make([][]float64, 0, len(lines))
	names := make([]string, 0, len(lines))
	colors := make([]asciigraph.AnsiColor, 0, len(lines))
	for _, l := range lines {
		if len(l.Values) < 2 {
			return ""
		}
		pct := make([]float64, len(l.Values))
		for i, v := range l.Values {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return ""
			}
			pct[i] = v * 100
			lo, hi = math.Min(lo, pct[i]), math.Max(hi, pct[i])
		}
		data = append(data, pct)
		names = append(names, l.Name)
		colors = append(colors, l.Color)
	}

	// caption and legend take the last rows
	opts := []asciigraph.Option{
		asciigraph.Width(plotWidth),
		asciigraph.Height(height - 3),
		asciigraph.Precision(1),
		asciigraph.Caption("cumulative return (%)"),
		asciigraph.SeriesColors(colors...),
		asciigraph.SeriesLegends(names...),
		asciigraph.AxisColor(chartMutedColor),
		asciigraph.LabelColor(chartMutedColor),
	}
	if hi-lo < 1e-9 {
		opts = append(opts, asciigraph.LowerBound(lo-1), asciigraph.UpperBound(hi+1))
	}
	return asciigraph.PlotMany(data, opts...)
}
