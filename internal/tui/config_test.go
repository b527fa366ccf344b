package tui

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUIConfig_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "ui.yaml")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, UIConfig{}, *cfg)

	want := UIConfig{Tickers: "AAPL", Quantities: "2", Benchmark: "nasdaq"}
	require.NoError(t, SaveConfig(path, &want))

	got, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, want, *got)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestUIConfig_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ui.yaml")
	require.NoError(t, os.WriteFile(path, []byte("tickers: [broken"), 0600))

	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestConfigPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/custom/config")
	assert.Equal(t, "/custom/config/folio/ui.yaml", ConfigPath())
}

func TestSaveConfigCmd_DisabledWithoutPath(t *testing.T) {
	assert.Nil(t, saveConfigCmd("", UIConfig{}))
}
