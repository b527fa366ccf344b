package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/jonandersen/folio/internal/chart"
	"github.com/jonandersen/folio/internal/dashboard"
	"github.com/jonandersen/folio/internal/export"
	"github.com/jonandersen/folio/internal/keyring"
	"github.com/jonandersen/folio/internal/logging"
	"github.com/jonandersen/folio/internal/market"
	"github.com/jonandersen/folio/internal/output"
)

// compareOptions holds dependencies for the compare command.
type compareOptions struct {
	fetcher          market.Fetcher
	provider         string
	defaultBenchmark string
	lookbackDays     int
	timeout          time.Duration
	jsonMode         bool
	logger           zerolog.Logger
	now              func() time.Time
}

type compareFlags struct {
	tickers    string
	quantities string
	benchmark  string
	start      string
	end        string
	chartPath  string
	xlsxPath   string
	markdown   bool
}

func newCompareCmd(opts *compareOptions) *cobra.Command {
	var flags compareFlags

	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Compare a portfolio against a benchmark index",
		Long: `Value a portfolio from daily adjusted closes and compare its cumulative
return and annualized volatility with a benchmark index over the same days.

Tickers and quantities are comma-separated and matched by position.

Examples:
  folio compare --tickers AAPL,MSFT --quantities 10,2.5
  folio compare -t AAPL -q 5 --benchmark nasdaq --start 2024-01-01
  folio compare -t AAPL,GOOG -q 1,1 --chart out.png --xlsx out.xlsx
  folio compare -t AAPL -q 1 --markdown`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompare(cmd, opts, flags)
		},
	}

	cmd.Flags().StringVarP(&flags.tickers, "tickers", "t", "", "Comma-separated tickers, e.g. AAPL,MSFT")
	cmd.Flags().StringVarP(&flags.quantities, "quantities", "q", "", "Comma-separated share quantities, e.g. 10,2.5")
	cmd.Flags().StringVarP(&flags.benchmark, "benchmark", "b", "", "Benchmark index key (see 'folio benchmarks')")
	cmd.Flags().StringVar(&flags.start, "start", "", "Start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&flags.end, "end", "", "End date (YYYY-MM-DD), defaults to today")
	cmd.Flags().StringVar(&flags.chartPath, "chart", "", "Write a PNG chart of cumulative returns to this path")
	cmd.Flags().StringVar(&flags.xlsxPath, "xlsx", "", "Write an Excel workbook to this path")
	cmd.Flags().BoolVar(&flags.markdown, "markdown", false, "Render a markdown report")
	cmd.SilenceUsage = true

	return cmd
}

func runCompare(cmd *cobra.Command, opts *compareOptions, flags compareFlags) error {
	now := time.Now
	if opts.now != nil {
		now = opts.now
	}
	start, end, err := dateRange(flags.start, flags.end, opts.lookbackDays, now())
	if err != nil {
		return err
	}

	benchmark := flags.benchmark
	if benchmark == "" {
		benchmark = opts.defaultBenchmark
	}

	timeout := opts.timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	ctx, cancel := context.WithTimeout(logging.WithRequestID(context.Background()), timeout)
	defer cancel()

	svc := dashboard.New(opts.fetcher, opts.provider, opts.logger)
	res, err := svc.Compare(ctx, dashboard.Request{
		Tickers:    flags.tickers,
		Quantities: flags.quantities,
		Benchmark:  benchmark,
		Start:      start,
		End:        end,
	})
	if err != nil {
		return err
	}

	if flags.chartPath != "" {
		if err := chart.WriteFile(flags.chartPath, res); err != nil {
			return err
		}
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Chart written to %s\n", flags.chartPath)
	}
	if flags.xlsxPath != "" {
		if err := export.WriteXLSX(ctx, flags.xlsxPath, res, opts.logger); err != nil {
			return err
		}
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Workbook written to %s\n", flags.xlsxPath)
	}

	formatter := output.New(cmd.OutOrStdout(), opts.jsonMode)
	if flags.markdown && !opts.jsonMode {
		return formatter.Markdown(output.ComparisonReport(res))
	}
	return formatter.Comparison(res)
}

func init() {
	opts := &compareOptions{}
	compareCmd := newCompareCmd(opts)

	compareCmd.PreRunE = func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		logger := newLogger(cfg, cmd.ErrOrStderr())

		fetcher, err := newFetcher(cfg, keyring.Default(), logger)
		if err != nil {
			return err
		}

		opts.fetcher = fetcher
		opts.provider = cfg.Provider
		opts.defaultBenchmark = cfg.DefaultBenchmark
		opts.lookbackDays = cfg.LookbackDays
		opts.timeout = cfg.Timeout()
		opts.jsonMode = GetJSONMode()
		opts.logger = logger
		return nil
	}

	rootCmd.AddCommand(compareCmd)
}
