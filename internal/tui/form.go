package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jonandersen/folio/internal/dashboard"
	"github.com/jonandersen/folio/internal/market"
)

// FormField identifies a focusable form element.
type FormField int

const (
	FieldTickers FormField = iota
	FieldQuantities
	FieldStart
	FieldEnd
	FieldBenchmark
	fieldCount
)

// FormDefaults seeds a new form.
type FormDefaults struct {
	Tickers    string
	Quantities string
	Benchmark  string
	Start      time.Time
	End        time.Time
}

// FormModel holds the comparison input form.
type FormModel struct {
	Inputs     [FieldBenchmark]textinput.Model
	Focus      FormField
	Benchmarks []market.Benchmark
	Selected   int
	Err        error

	defaultStart time.Time
	defaultEnd   time.Time
}

// NewFormModel creates a form focused on the tickers field.
func NewFormModel(d FormDefaults) *FormModel {
	m := &FormModel{
		Benchmarks:   market.Benchmarks(),
		defaultStart: market.Day(d.Start),
		defaultEnd:   market.Day(d.End),
	}

	placeholders := [FieldBenchmark]string{
		FieldTickers:    "AAPL,MSFT,GOOG",
		FieldQuantities: "10,5,2.5",
		FieldStart:      market.DateLayout,
		FieldEnd:        market.DateLayout,
	}
	values := [FieldBenchmark]string{
		FieldTickers:    d.Tickers,
		FieldQuantities: d.Quantities,
	}
	if !d.Start.IsZero() {
		values[FieldStart] = d.Start.Format(market.DateLayout)
	}
	if !d.End.IsZero() {
		values[FieldEnd] = d.End.Format(market.DateLayout)
	}

	for i := range m.Inputs {
		ti := textinput.New()
		ti.Placeholder = placeholders[i]
		ti.Width = 40
		ti.CharLimit = 200
		if FormField(i) == FieldStart || FormField(i) == FieldEnd {
			ti.Width = 12
			ti.CharLimit = len(market.DateLayout)
		}
		ti.SetValue(values[i])
		m.Inputs[i] = ti
	}
	m.Inputs[FieldTickers].Focus()

	if b, err := market.LookupBenchmark(d.Benchmark); err == nil {
		for i, candidate := range m.Benchmarks {
			if candidate.Key == b.Key {
				m.Selected = i
			}
		}
	}
	return m
}

// Benchmark returns the selected benchmark.
func (m *FormModel) Benchmark() market.Benchmark {
	return m.Benchmarks[m.Selected]
}

// Request builds a comparison request from the form. Blank dates fall back to
// the defaults the form was created with.
func (m *FormModel) Request() (dashboard.Request, error) {
	start, err := m.date(FieldStart, m.defaultStart)
	if err != nil {
		return dashboard.Request{}, err
	}
	end, err := m.date(FieldEnd, m.defaultEnd)
	if err != nil {
		return dashboard.Request{}, err
	}
	return dashboard.Request{
		Tickers:    m.Inputs[FieldTickers].Value(),
		Quantities: m.Inputs[FieldQuantities].Value(),
		Benchmark:  m.Benchmark().Key,
		Start:      start,
		End:        end,
	}, nil
}

func (m *FormModel) date(field FormField, fallback time.Time) (time.Time, error) {
	v := strings.TrimSpace(m.Inputs[field].Value())
	if v == "" {
		return fallback, nil
	}
	d, err := market.ParseDate(v)
	if err != nil {
		name := "start"
		if field == FieldEnd {
			name = "end"
		}
		return time.Time{}, fmt.Errorf("invalid %s date %q, use %s", name, v, market.DateLayout)
	}
	return d, nil
}

// SetFocus moves focus to field.
func (m *FormModel) SetFocus(field FormField) tea.Cmd {
	m.Focus = (field + fieldCount) % fieldCount
	var cmd tea.Cmd
	for i := range m.Inputs {
		if FormField(i) == m.Focus {
			cmd = m.Inputs[i].Focus()
		} else {
			m.Inputs[i].Blur()
		}
	}
	return cmd
}

// Update handles a key press. submitted is true when the user asked to run
// the comparison.
func (m *FormModel) Update(msg tea.KeyMsg) (form *FormModel, cmd tea.Cmd, submitted bool) {
	switch msg.String() {
	case "enter":
		m.Err = nil
		return m, nil, true
	case "tab", "down":
		return m, m.SetFocus(m.Focus + 1), false
	case "shift+tab", "up":
		return m, m.SetFocus(m.Focus - 1), false
	}

	if m.Focus == FieldBenchmark {
		n := len(m.Benchmarks)
		switch msg.String() {
		case "left", "h":
			m.Selected = (m.Selected - 1 + n) % n
		case "right", "l", " ":
			m.Selected = (m.Selected + 1) % n
		}
		return m, nil, false
	}

	m.Inputs[m.Focus], cmd = m.Inputs[m.Focus].Update(msg)
	return m, cmd, false
}

// View renders the form.
func (m *FormModel) View() string {
	var b strings.Builder

	b.WriteString(SummaryStyle.Render("Compare a portfolio against an index"))
	b.WriteString("\n\n")

	labels := [FieldBenchmark]string{
		FieldTickers:    "Tickers",
		FieldQuantities: "Quantities",
		FieldStart:      "Start",
		FieldEnd:        "End",
	}
	for i, in := range m.Inputs {
		b.WriteString(m.label(FormField(i), labels[i]))
		b.WriteString(in.View())
		b.WriteString("\n")
	}

	b.WriteString(m.label(FieldBenchmark, "Benchmark"))
	bench := m.Benchmark()
	choice := fmt.Sprintf("‹ %s (%s) ›", bench.Name, bench.Key)
	if m.Focus == FieldBenchmark {
		b.WriteString(FocusedLabelStyle.Render(choice))
	} else {
		b.WriteString(ValueStyle.Render(choice))
	}
	b.WriteString("\n")

	if m.Err != nil {
		b.WriteString("\n")
		b.WriteString(ErrorStyle.Render("Error: " + m.Err.Error()))
		b.WriteString("\n")
	}
	return b.String()
}

func (m *FormModel) label(field FormField, text string) string {
	s := fmt.Sprintf("%-12s", text)
	if m.Focus == field {
		return FocusedLabelStyle.Render("> " + s)
	}
	return LabelStyle.Render("  " + s)
}
