// Package chart renders the portfolio versus index comparison as a PNG.
package chart

import (
	"bytes"
	"fmt"
	"math"
	"os"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/jonandersen/folio/internal/dashboard"
)

const (
	Width  = 900
	Height = 400
)

// RenderComparison draws the cumulative return of the portfolio and the index
// on one chart and returns PNG bytes.
func RenderComparison(res *dashboard.Result) ([]byte, error) {
	if res == nil {
		return nil, fmt.Errorf("nothing to chart")
	}
	n := res.Combined.Len()
	if n < 2 {
		return nil, fmt.Errorf("need at least 2 data points, got %d", n)
	}

	portfolioSeries := chart.TimeSeries{
		Name: "Portfolio",
		Style: chart.Style{
			StrokeColor: drawing.ColorFromHex("2563eb"),
			StrokeWidth: 2.5,
		},
		XValues: res.Combined.Dates,
		YValues: res.Portfolio.CumulativeReturn,
	}

	indexSeries := chart.TimeSeries{
		Name: res.Benchmark.Name,
		Style: chart.Style{
			StrokeColor:     drawing.ColorFromHex("f97316"),
			StrokeWidth:     1.5,
			StrokeDashArray: []float64{5.0, 3.0},
		},
		XValues: res.Combined.Dates,
		YValues: res.Index.CumulativeReturn,
	}

	graph := chart.Chart{
		Title:  fmt.Sprintf("Portfolio vs %s", res.Benchmark.Name),
		Width:  Width,
		Height: Height,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 10, Right: 20, Bottom: 10},
		},
		XAxis: chart.XAxis{
			TickPosition: chart.TickPositionBetweenTicks,
			ValueFormatter: func(v interface{}) string {
				if t, ok := v.(float64); ok {
					return chart.TimeFromFloat64(t).Format("Jan 06")
				}
				return ""
			},
		},
		YAxis: chart.YAxis{
			Range: yRange(res.Portfolio.CumulativeReturn, res.Index.CumulativeReturn),
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return fmt.Sprintf("%.0f%%", f*100)
				}
				return ""
			},
		},
		Series: []chart.Series{portfolioSeries, indexSeries},
	}
	graph.Elements = []chart.Renderable{chart.LegendLeft(&graph)}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("chart render failed: %w", err)
	}
	return buf.Bytes(), nil
}

// WriteFile renders the comparison to path.
func WriteFile(path string, res *dashboard.Result) error {
	png, err := RenderComparison(res)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, png, 0644); err != nil {
		return fmt.Errorf("failed to write chart: %w", err)
	}
	return nil
}

// yRange pads a flat range; go-chart refuses a zero-height axis.
func yRange(series ...[]float64) chart.Range {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, s := range series {
		for _, v := range s {
			lo = math.Min(lo, v)
			hi = math.Max(hi, v)
		}
	}
	if hi-lo > 1e-9 {
		return nil
	}
	return &chart.ContinuousRange{Min: lo - 0.01, Max: hi + 0.01}
}
