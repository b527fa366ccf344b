package cmd

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonandersen/folio/internal/market"
)

func TestBenchmarksCmd_Table(t *testing.T) {
	cmd := newBenchmarksCmd(&benchmarksOptions{})

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{})

	err := cmd.Execute()
	require.NoError(t, err)

	output := out.String()
	assert.Contains(t, output, "KEY")
	for _, b := range market.Benchmarks() {
		assert.Contains(t, output, b.Key)
		assert.Contains(t, output, b.Symbols[market.ProviderYahoo])
	}
	assert.Contains(t, output, "GSPC.INDX")
}

func TestBenchmarksCmd_JSON(t *testing.T) {
	cmd := newBenchmarksCmd(&benchmarksOptions{jsonMode: true})

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{})

	err := cmd.Execute()
	require.NoError(t, err)

	var rows []map[string]string
	require.NoError(t, json.Unmarshal(out.Bytes(), &rows))
	assert.Len(t, rows, len(market.Benchmarks()))
}
