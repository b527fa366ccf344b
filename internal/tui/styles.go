package tui

import (
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
)

const (
	ColorPrimary    = lipgloss.Color("39")  // cyan
	ColorMuted      = lipgloss.Color("241") // gray
	ColorBackground = lipgloss.Color("236") // dark gray
	ColorSelected   = lipgloss.Color("57")  // purple
	ColorSelectedFg = lipgloss.Color("229") // light yellow
	ColorGreen      = lipgloss.Color("82")
	ColorRed        = lipgloss.Color("196")
)

var (
	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary).
			Background(ColorBackground).
			Padding(0, 1)

	ContentStyle = lipgloss.NewStyle().Padding(1, 2)

	KeyStyle  = lipgloss.NewStyle().Foreground(ColorPrimary).Bold(true)
	DescStyle = lipgloss.NewStyle().Foreground(ColorMuted)

	SummaryStyle = lipgloss.NewStyle().Bold(true)
	LabelStyle   = lipgloss.NewStyle().Foreground(ColorMuted)
	ValueStyle   = lipgloss.NewStyle().Bold(true)
	GreenStyle   = lipgloss.NewStyle().Foreground(ColorGreen)
	RedStyle     = lipgloss.NewStyle().Foreground(ColorRed)
	ErrorStyle   = lipgloss.NewStyle().Foreground(ColorRed)

	FocusedLabelStyle = lipgloss.NewStyle().Foreground(ColorPrimary).Bold(true)
)

// TableStyles returns the styles shared by result tables.
func TableStyles() table.Styles {
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(ColorSelectedFg).
		Background(ColorSelected).
		Bold(true)
	return s
}

// signedStyle colors gains green and losses red.
func signedStyle(v float64) lipgloss.Style {
	if v < 0 {
		return RedStyle
	}
	return GreenStyle
}
