package tui

import (
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"gopkg.in/yaml.v3"

	"github.com/jonandersen/folio/internal/config"
)

// UIConfig remembers the last submitted form so the next session starts from
// it. It is kept apart from the CLI config.
type UIConfig struct {
	Tickers    string `yaml:"tickers,omitempty"`
	Quantities string `yaml:"quantities,omitempty"`
	Benchmark  string `yaml:"benchmark,omitempty"`
}

// ConfigPath returns the path to the TUI config file.
func ConfigPath() string {
	return filepath.Join(config.ConfigDir(), "ui.yaml")
}

// LoadConfig reads the TUI config. A missing file yields an empty config.
func LoadConfig(path string) (*UIConfig, error) {
	cfg := &UIConfig{}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// SaveConfig writes the TUI config.
func SaveConfig(path string, cfg *UIConfig) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}

// saveConfigCmd persists cfg off the render loop. An empty path disables
// saving.
func saveConfigCmd(path string, cfg UIConfig) tea.Cmd {
	if path == "" {
		return nil
	}
	return func() tea.Msg {
		return UIConfigSavedMsg{Err: SaveConfig(path, &cfg)}
	}
}
