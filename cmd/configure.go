package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/jonandersen/folio/internal/config"
	"github.com/jonandersen/folio/internal/keyring"
	"github.com/jonandersen/folio/internal/market"
	"github.com/jonandersen/folio/pkg/eodhd"
)

// passwordReader abstracts hidden terminal input for testing.
type passwordReader interface {
	ReadPassword() (string, error)
	IsTerminal() bool
}

// terminalReader reads hidden input using golang.org/x/term.
type terminalReader struct {
	fd int
}

func newTerminalReader(fd int) *terminalReader {
	return &terminalReader{fd: fd}
}

func (r *terminalReader) ReadPassword() (string, error) {
	b, err := term.ReadPassword(r.fd)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (r *terminalReader) IsTerminal() bool {
	return term.IsTerminal(r.fd)
}

// keyCheckSymbol is fetched to verify a new EODHD API key.
const keyCheckSymbol = "AAPL.US"

// configureOptions holds dependencies for the configure command.
type configureOptions struct {
	configPath     string
	store          keyring.Store
	passwordReader passwordReader
	now            func() time.Time
}

type configureFlags struct {
	provider  string
	benchmark string
	resetKey  bool
	removeKey bool
}

func newConfigureCmd(opts configureOptions) *cobra.Command {
	var flags configureFlags

	cmd := &cobra.Command{
		Use:   "configure",
		Short: "Configure the data provider and defaults",
		Long: `Configure where prices come from and which benchmark is used by default.

Yahoo Finance needs no credentials. EODHD needs an API key, which you will be
prompted for and which is stored in the system keyring. FOLIO_EODHD_API_KEY
overrides the keyring for headless use.

Examples:
  folio configure                          # show the current configuration
  folio configure --benchmark nasdaq
  folio configure --provider eodhd         # prompts for the API key
  folio configure --reset-key              # replace the stored API key
  folio configure --remove-key             # forget the key after leaving EODHD`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigure(cmd, opts, flags)
		},
	}

	cmd.Flags().StringVar(&flags.provider, "provider", "", "Price provider (yahoo or eodhd)")
	cmd.Flags().StringVar(&flags.benchmark, "benchmark", "", "Default benchmark key")
	cmd.Flags().BoolVar(&flags.resetKey, "reset-key", false, "Prompt for a new EODHD API key")
	cmd.Flags().BoolVar(&flags.removeKey, "remove-key", false, "Remove the stored EODHD API key")
	cmd.MarkFlagsMutuallyExclusive("reset-key", "remove-key")
	cmd.SilenceUsage = true

	return cmd
}

func runConfigure(cmd *cobra.Command, opts configureOptions, flags configureFlags) error {
	// the file is written back, so environment overrides stay out of it
	cfg, err := config.LoadFile(opts.configPath)
	if err != nil {
		return err
	}

	changed := false
	if flags.provider != "" {
		cfg.Provider = strings.ToLower(strings.TrimSpace(flags.provider))
		changed = true
	}
	if flags.benchmark != "" {
		b, err := market.LookupBenchmark(flags.benchmark)
		if err != nil {
			return err
		}
		cfg.DefaultBenchmark = b.Key
		changed = true
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	if cfg.Provider == market.ProviderEODHD {
		if flags.removeKey {
			return fmt.Errorf("--remove-key cannot be used while the provider is %s", market.ProviderEODHD)
		}
		key, err := keyring.APIKey(opts.store)
		if err != nil {
			return err
		}
		if key == "" || flags.resetKey {
			if err := promptAPIKey(cmd, opts, cfg); err != nil {
				return err
			}
		}
	} else if flags.resetKey {
		return fmt.Errorf("--reset-key only applies to the %s provider", market.ProviderEODHD)
	}

	if changed {
		if err := config.Save(opts.configPath, cfg); err != nil {
			return fmt.Errorf("failed to save configuration: %w", err)
		}
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Configuration saved to %s\n", opts.configPath)
	}

	if flags.removeKey {
		if err := keyring.DeleteAPIKey(opts.store); err != nil {
			return err
		}
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), "API key removed from keyring.")
	}

	return printConfiguration(cmd.OutOrStdout(), opts, cfg)
}

// promptAPIKey reads, verifies and stores an EODHD API key.
func promptAPIKey(cmd *cobra.Command, opts configureOptions, cfg *config.Config) error {
	if !opts.passwordReader.IsTerminal() {
		return fmt.Errorf("an EODHD API key is required\nRun 'folio configure' in a terminal or set %s", keyring.EnvEODHDAPIKey)
	}

	_, _ = fmt.Fprint(cmd.OutOrStdout(), "Enter your EODHD API key: ")
	key, err := opts.passwordReader.ReadPassword()
	if err != nil {
		return fmt.Errorf("failed to read API key: %w", err)
	}
	_, _ = fmt.Fprintln(cmd.OutOrStdout())

	key = strings.TrimSpace(key)
	if key == "" {
		return fmt.Errorf("API key cannot be empty")
	}

	if err := verifyAPIKey(cfg, key, opts.now); err != nil {
		return err
	}

	if err := keyring.SetAPIKey(opts.store, key); err != nil {
		return err
	}
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), "API key stored in keyring.")
	return nil
}

// verifyAPIKey rejects keys the provider refuses. Other failures are left to
// the first real request.
func verifyAPIKey(cfg *config.Config, key string, now func() time.Time) error {
	if now == nil {
		now = time.Now
	}
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout())
	defer cancel()

	client := eodhd.NewClient(cfg.EODHDBaseURL, key, eodhd.WithTimeout(cfg.Timeout()))
	to := market.Day(now())
	_, err := client.GetEOD(ctx, eodhd.EODRequest{Ticker: keyCheckSymbol, From: to.AddDate(0, 0, -7), To: to})
	var apiErr *eodhd.APIError
	if errors.As(err, &apiErr) && apiErr.IsUnauthorized() {
		return fmt.Errorf("failed to validate API key: %w", err)
	}
	return nil
}

func printConfiguration(w io.Writer, opts configureOptions, cfg *config.Config) error {
	keyStatus := "Not configured"
	if key, err := keyring.APIKey(opts.store); err == nil && key != "" {
		keyStatus = "Configured"
	}
	bench, _ := market.LookupBenchmark(cfg.DefaultBenchmark)

	_, _ = fmt.Fprintln(w)
	_, _ = fmt.Fprintln(w, "Current Configuration:")
	_, _ = fmt.Fprintln(w, "----------------------")
	_, _ = fmt.Fprintf(w, "Provider: %s\n", cfg.Provider)
	_, _ = fmt.Fprintf(w, "Default benchmark: %s (%s)\n", bench.Name, bench.Key)
	_, _ = fmt.Fprintf(w, "EODHD API key: %s\n", keyStatus)
	_, _ = fmt.Fprintf(w, "EODHD base URL: %s\n", cfg.EODHDBaseURL)
	_, _ = fmt.Fprintf(w, "Lookback: %d days\n", cfg.LookbackDays)
	_, _ = fmt.Fprintf(w, "Timeout: %d seconds\n", cfg.TimeoutSeconds)
	return nil
}

func init() {
	configureCmd := newConfigureCmd(configureOptions{
		configPath:     config.ConfigPath(),
		store:          keyring.Default(),
		passwordReader: newTerminalReader(int(os.Stdin.Fd())),
	})
	rootCmd.AddCommand(configureCmd)
}
