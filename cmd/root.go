package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/jonandersen/folio/internal/config"
)

var Version = "dev"

var (
	// jsonOutput controls whether output is formatted as JSON
	jsonOutput bool
	// logLevel overrides the configured log level when set
	logLevel string
)

var rootCmd = &cobra.Command{
	Use:   "folio",
	Short: "Compare a stock portfolio against a market index",
	Long: `folio values a portfolio of tickers and share quantities from daily
adjusted closing prices and compares its cumulative return and annualized
volatility with a benchmark index.`,
	Version: Version,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		config.LoadDotEnv()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&jsonOutput, "json", "j", false, "Output in JSON format")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error)")
}

// SetVersion sets the version reported by --version.
func SetVersion(v string) {
	Version = v
	rootCmd.Version = v
}

// GetJSONMode returns whether JSON output mode is enabled.
func GetJSONMode() bool {
	return jsonOutput
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
