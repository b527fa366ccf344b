package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/jonandersen/folio/internal/config"
	"github.com/jonandersen/folio/internal/dashboard"
	"github.com/jonandersen/folio/internal/keyring"
	"github.com/jonandersen/folio/internal/logging"
	"github.com/jonandersen/folio/internal/market"
	"github.com/jonandersen/folio/internal/tui"
)

// uiOptions holds dependencies for the ui command.
type uiOptions struct {
	comparer         tui.Comparer
	defaultBenchmark string
	lookbackDays     int
	timeout          time.Duration
	uiConfigPath     string
	now              func() time.Time
	// run starts the program; replaced in tests.
	run func(tea.Model) error
}

type uiFlags struct {
	tickers    string
	quantities string
	benchmark  string
	start      string
	end        string
}

func newUICmd(opts *uiOptions) *cobra.Command {
	var flags uiFlags

	cmd := &cobra.Command{
		Use:   "ui",
		Short: "Interactive terminal dashboard",
		Long: `Launch the interactive dashboard.

Enter tickers and quantities, pick a benchmark and press enter to see the
cumulative return and volatility of the portfolio next to the index, with a
chart of both. The last inputs are remembered between sessions.

Keyboard shortcuts:
  tab/↑/↓   Move between fields
  ←/→       Change benchmark
  enter     Compare
  e         Edit inputs (results view)
  r         Rerun (results view)
  q         Quit (results view), ctrl+c anywhere`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			model, err := newUIModel(opts, flags)
			if err != nil {
				return err
			}
			run := opts.run
			if run == nil {
				run = func(m tea.Model) error {
					_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
					return err
				}
			}
			return run(model)
		},
	}

	cmd.Flags().StringVarP(&flags.tickers, "tickers", "t", "", "Prefill tickers")
	cmd.Flags().StringVarP(&flags.quantities, "quantities", "q", "", "Prefill quantities")
	cmd.Flags().StringVarP(&flags.benchmark, "benchmark", "b", "", "Prefill benchmark key")
	cmd.Flags().StringVar(&flags.start, "start", "", "Prefill start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&flags.end, "end", "", "Prefill end date (YYYY-MM-DD)")
	cmd.SilenceUsage = true

	return cmd
}

// newUIModel resolves the form defaults: flags first, then the last saved
// inputs, then the configured defaults. The comparison starts immediately
// when both tickers and quantities come from flags.
func newUIModel(opts *uiOptions, flags uiFlags) (tui.Model, error) {
	now := time.Now
	if opts.now != nil {
		now = opts.now
	}
	start, end, err := dateRange(flags.start, flags.end, opts.lookbackDays, now())
	if err != nil {
		return tui.Model{}, err
	}

	saved := &tui.UIConfig{}
	if opts.uiConfigPath != "" {
		if saved, err = tui.LoadConfig(opts.uiConfigPath); err != nil {
			return tui.Model{}, fmt.Errorf("failed to load %s: %w", opts.uiConfigPath, err)
		}
	}

	defaults := tui.FormDefaults{
		Tickers:    firstNonEmpty(flags.tickers, saved.Tickers),
		Quantities: firstNonEmpty(flags.quantities, saved.Quantities),
		Benchmark:  firstNonEmpty(flags.benchmark, saved.Benchmark, opts.defaultBenchmark, market.DefaultBenchmark),
		Start:      start,
		End:        end,
	}

	return tui.New(tui.Options{
		Comparer:     opts.comparer,
		Defaults:     defaults,
		Timeout:      opts.timeout,
		UIConfigPath: opts.uiConfigPath,
		AutoRun:      flags.tickers != "" && flags.quantities != "",
	}), nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// openLogFile opens the TUI log file in the config directory.
func openLogFile() (*os.File, error) {
	path := config.LogPath()
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, err
	}
	return os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
}

func init() {
	opts := &uiOptions{}
	uiCmd := newUICmd(opts)

	var logFile io.Closer
	uiCmd.PreRunE = func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		// the alt screen owns the terminal, so logs only go to a file
		logger := logging.Silent()
		if logLevel != "" {
			f, err := openLogFile()
			if err != nil {
				return fmt.Errorf("failed to open log file: %w", err)
			}
			logFile = f
			logger = logging.NewJSON(logLevel, f)
		}

		fetcher, err := newFetcher(cfg, keyring.Default(), logger)
		if err != nil {
			return err
		}

		opts.comparer = dashboard.New(fetcher, cfg.Provider, logger)
		opts.defaultBenchmark = cfg.DefaultBenchmark
		opts.lookbackDays = cfg.LookbackDays
		opts.timeout = cfg.Timeout()
		opts.uiConfigPath = tui.ConfigPath()
		return nil
	}
	uiCmd.PostRun = func(cmd *cobra.Command, args []string) {
		if logFile != nil {
			_ = logFile.Close()
		}
	}

	rootCmd.AddCommand(uiCmd)
}
