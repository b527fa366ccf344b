package market

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookupBenchmark(t *testing.T) {
	b, err := LookupBenchmark(" SP500 ")
	require.NoError(t, err)
	assert.Equal(t, "sp500", b.Key)
	assert.Equal(t, "S&P 500", b.Name)

	sym, err := b.Symbol(ProviderYahoo)
	require.NoError(t, err)
	assert.Equal(t, "^GSPC", sym)

	sym, err = b.Symbol(ProviderEODHD)
	require.NoError(t, err)
	assert.Equal(t, "GSPC.INDX", sym)
}

func TestLookupBenchmark_Unknown(t *testing.T) {
	_, err := LookupBenchmark("nikkei")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownBenchmark)
	assert.Contains(t, err.Error(), "sp500")
}

func TestBenchmark_SymbolUnknownProvider(t *testing.T) {
	b, err := LookupBenchmark(DefaultBenchmark)
	require.NoError(t, err)

	_, err = b.Symbol("bloomberg")
	assert.ErrorIs(t, err, ErrUnknownProvider)
}

func TestBenchmarks_EveryProviderHasASymbol(t *testing.T) {
	for _, b := range Benchmarks() {
		for _, p := range Providers {
			sym, err := b.Symbol(p)
			assert.NoError(t, err, "%s/%s", b.Key, p)
			assert.NotEmpty(t, sym, "%s/%s", b.Key, p)
		}
	}
}

func TestBenchmarks_ReturnsCopy(t *testing.T) {
	list := Benchmarks()
	list[0].Key = "changed"

	assert.Equal(t, "sp500", Benchmarks()[0].Key)
}

func TestBenchmarkKeys(t *testing.T) {
	keys := BenchmarkKeys()
	assert.Contains(t, keys, "sp500")
	assert.Contains(t, keys, "cac40")
	assert.Len(t, keys, len(Benchmarks()))
}

func TestValidProvider(t *testing.T) {
	assert.True(t, ValidProvider("yahoo"))
	assert.True(t, ValidProvider("eodhd"))
	assert.False(t, ValidProvider("Yahoo"))
	assert.False(t, ValidProvider(""))
}
