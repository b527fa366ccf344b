package tui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormModel_Defaults(t *testing.T) {
	f := NewFormModel(FormDefaults{
		Tickers:    "AAPL",
		Quantities: "3",
		Benchmark:  "CAC40",
		Start:      time.Date(2023, 5, 1, 15, 0, 0, 0, time.UTC),
		End:        time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC),
	})

	assert.Equal(t, "AAPL", f.Inputs[FieldTickers].Value())
	assert.Equal(t, "3", f.Inputs[FieldQuantities].Value())
	assert.Equal(t, "2023-05-01", f.Inputs[FieldStart].Value())
	assert.Equal(t, "cac40", f.Benchmark().Key)
	assert.True(t, f.Inputs[FieldTickers].Focused())
}

func TestFormModel_UnknownBenchmarkFallsBackToFirst(t *testing.T) {
	f := NewFormModel(FormDefaults{Benchmark: "nikkei"})
	assert.Equal(t, f.Benchmarks[0].Key, f.Benchmark().Key)
}

func TestFormModel_FocusCycles(t *testing.T) {
	f := NewFormModel(FormDefaults{})

	for want := FieldQuantities; want <= FieldBenchmark; want++ {
		f, _, _ = f.Update(tea.KeyMsg{Type: tea.KeyTab})
		assert.Equal(t, want, f.Focus)
	}
	f, _, _ = f.Update(tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, FieldTickers, f.Focus)

	f, _, _ = f.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	assert.Equal(t, FieldBenchmark, f.Focus)
	assert.False(t, f.Inputs[FieldTickers].Focused())
}

func TestFormModel_BenchmarkSelection(t *testing.T) {
	f := NewFormModel(FormDefaults{})
	f.SetFocus(FieldBenchmark)
	n := len(f.Benchmarks)

	f, _, _ = f.Update(tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, 1, f.Selected)

	f, _, _ = f.Update(tea.KeyMsg{Type: tea.KeyLeft})
	f, _, _ = f.Update(tea.KeyMsg{Type: tea.KeyLeft})
	assert.Equal(t, n-1, f.Selected)
}

func TestFormModel_TypingGoesToFocusedInput(t *testing.T) {
	f := NewFormModel(FormDefaults{})
	f.SetFocus(FieldQuantities)

	f, _, submitted := f.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("1,2")})

	assert.False(t, submitted)
	assert.Equal(t, "1,2", f.Inputs[FieldQuantities].Value())
	assert.Empty(t, f.Inputs[FieldTickers].Value())
}

func TestFormModel_Request(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	f := NewFormModel(FormDefaults{Tickers: "A,B", Quantities: "1,2", Benchmark: "ftse100", Start: start, End: end})

	req, err := f.Request()
	require.NoError(t, err)
	assert.Equal(t, "A,B", req.Tickers)
	assert.Equal(t, "1,2", req.Quantities)
	assert.Equal(t, "ftse100", req.Benchmark)
	assert.Equal(t, start, req.Start)
	assert.Equal(t, end, req.End)

	// blank dates use the defaults
	f.Inputs[FieldStart].SetValue("")
	f.Inputs[FieldEnd].SetValue(" ")
	req, err = f.Request()
	require.NoError(t, err)
	assert.Equal(t, start, req.Start)
	assert.Equal(t, end, req.End)

	f.Inputs[FieldEnd].SetValue("03/01/2024")
	_, err = f.Request()
	assert.ErrorContains(t, err, "invalid end date")
}

func TestFormModel_EnterSubmits(t *testing.T) {
	f := NewFormModel(FormDefaults{})
	f.Err = assert.AnError

	f, _, submitted := f.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.True(t, submitted)
	assert.NoError(t, f.Err)
}
