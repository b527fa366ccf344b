package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jonandersen/folio/internal/dashboard"
	"github.com/jonandersen/folio/internal/market"
	"github.com/jonandersen/folio/internal/output"
)

// ResultsState is the state of the results pane.
type ResultsState int

const (
	ResultsStateIdle ResultsState = iota
	ResultsStateLoading
	ResultsStateLoaded
	ResultsStateError
)

// ResultsModel holds the outcome of the last comparison.
type ResultsModel struct {
	State       ResultsState
	Result      *dashboard.Result
	Err         error
	LastUpdated time.Time
	Table       table.Model

	chartWidth  int
	chartHeight int
}

// NewResultsModel creates an idle results pane.
func NewResultsModel() *ResultsModel {
	cols := []table.Column{
		{Title: "Series", Width: 28},
		{Title: "Start", Width: 14},
		{Title: "End", Width: 14},
		{Title: "Return", Width: 10},
		{Title: "Volatility", Width: 10},
	}

	t := table.New(
		table.WithColumns(cols),
		table.WithHeight(3),
	)
	t.SetStyles(TableStyles())

	return &ResultsModel{
		State:       ResultsStateIdle,
		Table:       t,
		chartWidth:  72,
		chartHeight: 12,
	}
}

// SetSize fits the chart into the content area.
func (m *ResultsModel) SetSize(width, height int) {
	m.chartWidth = width
	m.chartHeight = height
	if m.chartWidth < 20 {
		m.chartWidth = 20
	}
	if m.chartHeight < 4 {
		m.chartHeight = 4
	}
}

// Update handles comparison messages.
func (m *ResultsModel) Update(msg tea.Msg) (*ResultsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case ComparisonLoadedMsg:
		m.State = ResultsStateLoaded
		m.Result = msg.Result
		m.Err = nil
		m.LastUpdated = time.Now()
		m.updateTable()

	case ComparisonErrorMsg:
		if errors.Is(msg.Err, dashboard.ErrNoInput) {
			m.State = ResultsStateIdle
			m.Result = nil
			m.Err = nil
			return m, nil
		}
		m.State = ResultsStateError
		m.Err = msg.Err
	}
	return m, nil
}

func (m *ResultsModel) updateTable() {
	rows := make([]table.Row, 0, 2)
	for _, r := range output.SummaryRows(m.Result) {
		rows = append(rows, table.Row{r[0], r[2], r[3], r[4], r[5]})
	}
	m.Table.SetRows(rows)
}

// View renders the results pane.
func (m *ResultsModel) View() string {
	var b strings.Builder

	switch m.State {
	case ResultsStateIdle:
		b.WriteString(LabelStyle.Render("Enter tickers and quantities, then press enter to compare."))
		return b.String()

	case ResultsStateLoading:
		b.WriteString("Fetching prices...")
		return b.String()

	case ResultsStateError:
		b.WriteString(ErrorStyle.Render(fmt.Sprintf("Error: %v", m.Err)))
		b.WriteString("\n\nPress 'e' to edit the inputs or 'r' to retry")
		return b.String()
	}

	res := m.Result
	b.WriteString(SummaryStyle.Render("Portfolio vs " + res.Benchmark.Name))
	b.WriteString(LabelStyle.Render(fmt.Sprintf("  %s to %s, %d trading days",
		res.Start.Format(market.DateLayout), res.End.Format(market.DateLayout), res.Combined.Len())))
	b.WriteString("\n\n")

	b.WriteString(metricLine("Portfolio", res.Portfolio))
	b.WriteString("\n")
	b.WriteString(metricLine(res.Benchmark.Name, res.Index))
	b.WriteString("\n\n")

	b.WriteString(renderLineChart(m.chartWidth, m.chartHeight,
		ChartLine{Name: "Portfolio", Values: res.Portfolio.CumulativeReturn, Color: PortfolioLineColor},
		ChartLine{Name: res.Benchmark.Name, Values: res.Index.CumulativeReturn, Color: IndexLineColor},
	))
	b.WriteString("\n\n")
	b.WriteString(m.Table.View())

	b.WriteString("\n")
	b.WriteString(LabelStyle.Render(fmt.Sprintf("Updated: %s", m.LastUpdated.Format("3:04:05 PM"))))
	return b.String()
}

func metricLine(name string, metrics dashboard.Metrics) string {
	return LabelStyle.Render(fmt.Sprintf("%-28s", name)) +
		LabelStyle.Render("Return: ") +
		signedStyle(metrics.TotalReturn).Render(fmt.Sprintf("%-10s", output.FormatSignedPercent(metrics.TotalReturn))) +
		LabelStyle.Render("Volatility: ") +
		ValueStyle.Render(output.FormatPercent(metrics.Volatility))
}

// Comparer runs a comparison. *dashboard.Service implements it.
type Comparer interface {
	Compare(ctx context.Context, req dashboard.Request) (*dashboard.Result, error)
}

// RunComparison returns a command that runs one comparison bounded by
// timeout.
func RunComparison(c Comparer, req dashboard.Request, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		res, err := c.Compare(ctx, req)
		if err != nil {
			return ComparisonErrorMsg{Err: err}
		}
		return ComparisonLoadedMsg{Result: res}
	}
}
