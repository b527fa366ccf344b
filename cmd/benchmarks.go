package cmd

import (
	"github.com/spf13/cobra"

	"github.com/jonandersen/folio/internal/market"
	"github.com/jonandersen/folio/internal/output"
)

type benchmarksOptions struct {
	jsonMode bool
}

func newBenchmarksCmd(opts *benchmarksOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "benchmarks",
		Short: "List the benchmark indices available for comparison",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			headers := []string{"KEY", "NAME", "YAHOO", "EODHD"}
			var rows [][]string
			for _, b := range market.Benchmarks() {
				rows = append(rows, []string{
					b.Key,
					b.Name,
					b.Symbols[market.ProviderYahoo],
					b.Symbols[market.ProviderEODHD],
				})
			}
			return output.New(cmd.OutOrStdout(), opts.jsonMode).Table(headers, rows)
		},
	}
	cmd.SilenceUsage = true
	return cmd
}

func init() {
	opts := &benchmarksOptions{}
	benchmarksCmd := newBenchmarksCmd(opts)
	benchmarksCmd.PreRun = func(cmd *cobra.Command, args []string) {
		opts.jsonMode = GetJSONMode()
	}
	rootCmd.AddCommand(benchmarksCmd)
}
