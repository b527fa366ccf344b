package market

import (
	"fmt"
	"strings"
)

// Provider names.
const (
	ProviderYahoo = "yahoo"
	ProviderEODHD = "eodhd"
)

// Providers lists the supported provider names.
var Providers = []string{ProviderYahoo, ProviderEODHD}

// Benchmark is a market index the portfolio can be compared against.
type Benchmark struct {
	Key     string            `json:"key"`
	Name    string            `json:"name"`
	Symbols map[string]string `json:"symbols"`
}

// Symbol returns the index symbol for the given provider.
func (b Benchmark) Symbol(provider string) (string, error) {
	sym, ok := b.Symbols[provider]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownProvider, provider)
	}
	return sym, nil
}

// DefaultBenchmark is the key used when none is configured.
const DefaultBenchmark = "sp500"

var benchmarks = []Benchmark{
	{Key: "sp500", Name: "S&P 500", Symbols: map[string]string{ProviderYahoo: "^GSPC", ProviderEODHD: "GSPC.INDX"}},
	{Key: "nasdaq", Name: "NASDAQ Composite", Symbols: map[string]string{ProviderYahoo: "^IXIC", ProviderEODHD: "IXIC.INDX"}},
	{Key: "dow", Name: "Dow Jones Industrial Average", Symbols: map[string]string{ProviderYahoo: "^DJI", ProviderEODHD: "DJI.INDX"}},
	{Key: "cac40", Name: "CAC 40", Symbols: map[string]string{ProviderYahoo: "^FCHI", ProviderEODHD: "FCHI.INDX"}},
	{Key: "eurostoxx50", Name: "Euro Stoxx 50", Symbols: map[string]string{ProviderYahoo: "^STOXX50E", ProviderEODHD: "STOXX50E.INDX"}},
	{Key: "ftse100", Name: "FTSE 100", Symbols: map[string]string{ProviderYahoo: "^FTSE", ProviderEODHD: "FTSE.INDX"}},
}

// Benchmarks returns the fixed set of benchmarks in display order.
func Benchmarks() []Benchmark {
	out := make([]Benchmark, len(benchmarks))
	copy(out, benchmarks)
	return out
}

// BenchmarkKeys returns the keys of all benchmarks in display order.
func BenchmarkKeys() []string {
	keys := make([]string, len(benchmarks))
	for i, b := range benchmarks {
		keys[i] = b.Key
	}
	return keys
}

// LookupBenchmark finds a benchmark by key, ignoring case and surrounding
// whitespace.
func LookupBenchmark(key string) (Benchmark, error) {
	k := strings.ToLower(strings.TrimSpace(key))
	for _, b := range benchmarks {
		if b.Key == k {
			return b, nil
		}
	}
	return Benchmark{}, fmt.Errorf("%w %q (choose one of: %s)", ErrUnknownBenchmark, key, strings.Join(BenchmarkKeys(), ", "))
}

// ValidProvider reports whether name is a supported provider.
func ValidProvider(name string) bool {
	for _, p := range Providers {
		if p == name {
			return true
		}
	}
	return false
}
