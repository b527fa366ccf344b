package cmd

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonandersen/folio/internal/market"
)

func newTestHistoryOptions(t *testing.T, jsonMode bool) *historyOptions {
	server := newEODHDServer(t, testBars())
	return &historyOptions{
		fetcher:      newTestFetcher(server),
		lookbackDays: 30,
		jsonMode:     jsonMode,
		now:          testNow,
	}
}

func TestHistoryCmd_Success(t *testing.T) {
	cmd := newHistoryCmd(newTestHistoryOptions(t, false))

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"aapl"})

	err := cmd.Execute()
	require.NoError(t, err)

	output := out.String()
	assert.Contains(t, output, "DATE")
	assert.Contains(t, output, "2024-01-02")
	assert.Contains(t, output, "12.00")
	assert.Contains(t, output, "+10.00%")
}

func TestHistoryCmd_JSON(t *testing.T) {
	cmd := newHistoryCmd(newTestHistoryOptions(t, true))

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"AAPL", "--limit", "2"})

	err := cmd.Execute()
	require.NoError(t, err)

	var resp struct {
		Symbol string         `json:"symbol"`
		Prices []historyPoint `json:"prices"`
	}
	require.NoError(t, json.Unmarshal(out.Bytes(), &resp))
	assert.Equal(t, "AAPL", resp.Symbol)
	require.Len(t, resp.Prices, 2)
	assert.Equal(t, "2024-01-03", resp.Prices[0].Date)
	assert.Equal(t, 12.0, resp.Prices[1].AdjustedClose)
}

func TestHistoryCmd_UnknownSymbol(t *testing.T) {
	cmd := newHistoryCmd(newTestHistoryOptions(t, false))
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"NOPE"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.ErrorIs(t, err, market.ErrNoData)
	assert.Contains(t, err.Error(), "failed to fetch history")
}

func TestHistoryCmd_NegativeLimit(t *testing.T) {
	cmd := newHistoryCmd(newTestHistoryOptions(t, false))
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"AAPL", "--limit", "-1"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--limit")
}

func TestHistoryCmd_InvalidRange(t *testing.T) {
	cmd := newHistoryCmd(newTestHistoryOptions(t, false))
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"AAPL", "--start", "2024-02-01", "--end", "2024-01-01"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.ErrorIs(t, err, market.ErrInvalidRange)
}

func TestHistoryCmd_RequiresSymbol(t *testing.T) {
	cmd := newHistoryCmd(newTestHistoryOptions(t, false))
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{})

	err := cmd.Execute()
	assert.Error(t, err)
}
