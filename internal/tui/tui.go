// Package tui is the interactive dashboard: an input form and a results pane
// with metrics and a terminal chart.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// View is the active pane.
type View int

const (
	ViewForm View = iota
	ViewResults
)

// DefaultTimeout bounds one comparison when Options.Timeout is unset.
const DefaultTimeout = 30 * time.Second

// Options configures the TUI.
type Options struct {
	Comparer Comparer
	Defaults FormDefaults
	Timeout  time.Duration
	// UIConfigPath is where the last submitted inputs are saved; empty
	// disables saving.
	UIConfigPath string
	// AutoRun submits the form on start when tickers and quantities are
	// prefilled.
	AutoRun bool
}

// Model is the root bubbletea model.
type Model struct {
	currentView View
	width       int
	height      int
	ready       bool

	comparer     Comparer
	timeout      time.Duration
	uiConfigPath string
	autoRun      bool

	form    *FormModel
	results *ResultsModel
}

// New creates the TUI model.
func New(opts Options) Model {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	return Model{
		currentView:  ViewForm,
		comparer:     opts.Comparer,
		timeout:      opts.Timeout,
		uiConfigPath: opts.UIConfigPath,
		autoRun:      opts.AutoRun,
		form:         NewFormModel(opts.Defaults),
		results:      NewResultsModel(),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	if m.autoRun {
		return func() tea.Msg { return tea.KeyMsg{Type: tea.KeyEnter} }
	}
	return textinput.Blink
}

// submit starts a comparison unless one is already running.
func (m *Model) submit() tea.Cmd {
	if m.results.State == ResultsStateLoading {
		return nil
	}
	req, err := m.form.Request()
	if err != nil {
		m.form.Err = err
		return nil
	}
	m.results.State = ResultsStateLoading
	m.currentView = ViewResults
	return tea.Batch(
		RunComparison(m.comparer, req, m.timeout),
		saveConfigCmd(m.uiConfigPath, UIConfig{
			Tickers:    req.Tickers,
			Quantities: req.Quantities,
			Benchmark:  req.Benchmark,
		}),
	)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

		if m.currentView == ViewForm {
			if msg.String() == "esc" {
				if m.results.State != ResultsStateIdle {
					m.currentView = ViewResults
				}
				return m, nil
			}
			var submitted bool
			m.form, cmd, submitted = m.form.Update(msg)
			if submitted {
				return m, m.submit()
			}
			return m, cmd
		}

		switch msg.String() {
		case "q":
			return m, tea.Quit
		case "e", "esc":
			m.currentView = ViewForm
			return m, m.form.SetFocus(m.form.Focus)
		case "r":
			return m, m.submit()
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		// header, footer, padding, title, metrics and table
		m.results.SetSize(m.width-4, m.height-18)

	case ComparisonLoadedMsg:
		m.results, cmd = m.results.Update(msg)
		return m, cmd

	case ComparisonErrorMsg:
		m.results, cmd = m.results.Update(msg)
		if m.results.State == ResultsStateIdle {
			m.currentView = ViewForm
		}
		return m, cmd

	case UIConfigSavedMsg:
		return m, nil
	}

	// cursor blink and other input messages
	if m.currentView == ViewForm && m.form.Focus < FieldBenchmark {
		f := m.form.Focus
		m.form.Inputs[f], cmd = m.form.Inputs[f].Update(msg)
	}
	return m, cmd
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	header := m.renderHeader()
	footer := m.renderFooter()
	content := m.renderContent()

	contentHeight := m.height - lipgloss.Height(header) - lipgloss.Height(footer)
	lines := strings.Split(content, "\n")
	for len(lines) < contentHeight {
		lines = append(lines, "")
	}
	if contentHeight > 0 && len(lines) > contentHeight {
		lines = lines[:contentHeight]
	}

	return header + "\n" + strings.Join(lines, "\n") + "\n" + footer
}

func (m Model) renderHeader() string {
	title := HeaderStyle.Render("folio")

	tabs := []struct {
		name   string
		active bool
	}{
		{"Inputs", m.currentView == ViewForm},
		{"Results", m.currentView == ViewResults},
	}
	var parts []string
	for _, tab := range tabs {
		style := lipgloss.NewStyle().Padding(0, 1)
		if tab.active {
			style = style.Bold(true).Foreground(ColorPrimary)
		} else {
			style = style.Foreground(ColorMuted)
		}
		parts = append(parts, style.Render(fmt.Sprintf("[%s]", tab.name)))
	}

	return padLine(title+"  "+strings.Join(parts, " "), m.width)
}

func (m Model) renderContent() string {
	if m.currentView == ViewForm {
		return ContentStyle.Render(m.form.View())
	}
	return ContentStyle.Render(m.results.View())
}

type keyHint struct{ key, desc string }

func (m Model) renderFooter() string {
	var keys []keyHint
	if m.currentView == ViewForm {
		keys = []keyHint{
			{"tab/↑↓", "move"},
			{"←/→", "benchmark"},
			{"enter", "compare"},
		}
		if m.results.State != ResultsStateIdle {
			keys = append(keys, keyHint{"esc", "results"})
		}
		keys = append(keys, keyHint{"ctrl+c", "quit"})
	} else {
		keys = []keyHint{
			{"e", "edit"},
			{"r", "rerun"},
			{"q", "quit"},
		}
	}

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, KeyStyle.Render(k.key)+" "+DescStyle.Render(k.desc))
	}
	return padLine(strings.Join(parts, "  •  "), m.width)
}

func padLine(s string, width int) string {
	if pad := width - lipgloss.Width(s); pad > 0 {
		s += strings.Repeat(" ", pad)
	}
	return lipgloss.NewStyle().
		Background(ColorBackground).
		Width(width).
		Render(s)
}
