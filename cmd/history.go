package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/jonandersen/folio/internal/keyring"
	"github.com/jonandersen/folio/internal/logging"
	"github.com/jonandersen/folio/internal/market"
	"github.com/jonandersen/folio/internal/output"
)

// historyOptions holds dependencies for the history command.
type historyOptions struct {
	fetcher      market.Fetcher
	lookbackDays int
	timeout      time.Duration
	jsonMode     bool
	now          func() time.Time
}

// historyPoint is one row of JSON history output.
type historyPoint struct {
	Date          string  `json:"date"`
	AdjustedClose float64 `json:"adjustedClose"`
}

func newHistoryCmd(opts *historyOptions) *cobra.Command {
	var (
		flagStart string
		flagEnd   string
		flagLimit int
	)

	cmd := &cobra.Command{
		Use:   "history SYMBOL",
		Short: "Show daily adjusted closes for a symbol",
		Long: `Show the daily adjusted closing prices the comparison is built from.

Examples:
  folio history AAPL                         # last lookback_days days
  folio history ^GSPC --start 2024-01-01     # an index, from a date
  folio history MSFT --limit 10              # the 10 most recent days`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(cmd, opts, args[0], flagStart, flagEnd, flagLimit)
		},
	}

	cmd.Flags().StringVar(&flagStart, "start", "", "Start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&flagEnd, "end", "", "End date (YYYY-MM-DD), defaults to today")
	cmd.Flags().IntVarP(&flagLimit, "limit", "l", 0, "Only show the most recent N days")
	cmd.SilenceUsage = true

	return cmd
}

func runHistory(cmd *cobra.Command, opts *historyOptions, symbol, start, end string, limit int) error {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if symbol == "" {
		return fmt.Errorf("symbol is required")
	}
	if limit < 0 {
		return fmt.Errorf("--limit must not be negative")
	}

	now := time.Now
	if opts.now != nil {
		now = opts.now
	}
	from, to, err := dateRange(start, end, opts.lookbackDays, now())
	if err != nil {
		return err
	}

	timeout := opts.timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	ctx, cancel := context.WithTimeout(logging.WithRequestID(context.Background()), timeout)
	defer cancel()

	series, err := opts.fetcher.FetchAdjustedClose(ctx, symbol, from, to)
	if err != nil {
		return fmt.Errorf("failed to fetch history: %w", err)
	}

	points := series.Points
	if limit > 0 && len(points) > limit {
		points = points[len(points)-limit:]
	}

	formatter := output.New(cmd.OutOrStdout(), opts.jsonMode)
	if opts.jsonMode {
		rows := make([]historyPoint, 0, len(points))
		for _, p := range points {
			rows = append(rows, historyPoint{Date: p.Date.Format(market.DateLayout), AdjustedClose: p.Price})
		}
		return formatter.Print(map[string]any{
			"symbol": symbol,
			"prices": rows,
		})
	}

	headers := []string{"DATE", "ADJ CLOSE", "CHANGE"}
	rows := make([][]string, 0, len(points))
	for i, p := range points {
		change := "-"
		if i > 0 {
			change = output.FormatSignedPercent(p.Price/points[i-1].Price - 1)
		}
		rows = append(rows, []string{
			p.Date.Format(market.DateLayout),
			fmt.Sprintf("%.2f", p.Price),
			change,
		})
	}
	return formatter.Table(headers, rows)
}

func init() {
	opts := &historyOptions{}
	historyCmd := newHistoryCmd(opts)

	historyCmd.PreRunE = func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		fetcher, err := newFetcher(cfg, keyring.Default(), newLogger(cfg, cmd.ErrOrStderr()))
		if err != nil {
			return err
		}

		opts.fetcher = fetcher
		opts.lookbackDays = cfg.LookbackDays
		opts.timeout = cfg.Timeout()
		opts.jsonMode = GetJSONMode()
		return nil
	}

	rootCmd.AddCommand(historyCmd)
}
