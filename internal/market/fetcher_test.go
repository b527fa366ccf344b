package market

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFetcher(t *testing.T) {
	f, err := NewFetcher(Options{Provider: ProviderYahoo})
	require.NoError(t, err)
	assert.IsType(t, &YahooFetcher{}, f)

	f, err = NewFetcher(Options{})
	require.NoError(t, err)
	assert.IsType(t, &YahooFetcher{}, f)

	f, err = NewFetcher(Options{Provider: ProviderEODHD, EODHDAPIKey: "key"})
	require.NoError(t, err)
	assert.IsType(t, &EODHDFetcher{}, f)
}

func TestNewFetcher_EODHDRequiresKey(t *testing.T) {
	_, err := NewFetcher(Options{Provider: ProviderEODHD})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "API key")
}

func TestNewFetcher_UnknownProvider(t *testing.T) {
	_, err := NewFetcher(Options{Provider: "stooq"})
	assert.ErrorIs(t, err, ErrUnknownProvider)
}

func TestFetcherFunc(t *testing.T) {
	called := false
	var f Fetcher = FetcherFunc(func(ctx context.Context, symbol string, start, end time.Time) (Series, error) {
		called = true
		return Series{Symbol: symbol}, nil
	})

	s, err := f.FetchAdjustedClose(context.Background(), "A", day("2024-01-01"), day("2024-01-02"))
	require.NoError(t, err)
	assert.True(t, called)
	assert.Equal(t, "A", s.Symbol)
}

func TestEODHDFetcher_FetchAdjustedClose(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/eod/AAPL.US", r.URL.Path)
		assert.Equal(t, "2024-01-02", r.URL.Query().Get("from"))
		assert.Equal(t, "2024-01-04", r.URL.Query().Get("to"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"date":"2024-01-04","close":181.91,"adjusted_close":180.5},
			{"date":"2024-01-02","close":185.64,"adjusted_close":184.2},
			{"date":"2024-01-03","close":184.25,"adjusted_close":182.8},
			{"date":"2024-01-05","close":181.18,"adjusted_close":179.9}
		]`))
	}))
	defer server.Close()

	f := NewEODHDFetcher(server.URL, "key", 0, time.Second, zerolog.Nop())
	s, err := f.FetchAdjustedClose(context.Background(), "AAPL.US", day("2024-01-02"), day("2024-01-04"))
	require.NoError(t, err)

	assert.Equal(t, "AAPL.US", s.Symbol)
	assert.Equal(t, []time.Time{day("2024-01-02"), day("2024-01-03"), day("2024-01-04")}, s.Dates())
	assert.Equal(t, []float64{184.2, 182.8, 180.5}, s.Values())
}

func TestEODHDFetcher_NotFoundIsNoData(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte("Ticker Not Found."))
	}))
	defer server.Close()

	f := NewEODHDFetcher(server.URL, "key", 0, 0, zerolog.Nop())
	_, err := f.FetchAdjustedClose(context.Background(), "NOPE.US", day("2024-01-02"), day("2024-01-04"))

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNoData)
	assert.Contains(t, err.Error(), "NOPE.US")
}

func TestEODHDFetcher_EmptyIsNoData(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	}))
	defer server.Close()

	f := NewEODHDFetcher(server.URL, "key", 0, 0, zerolog.Nop())
	_, err := f.FetchAdjustedClose(context.Background(), "AAPL.US", day("2024-01-06"), day("2024-01-07"))

	assert.ErrorIs(t, err, ErrNoData)
}

func TestEODHDFetcher_ServerErrorIsNotNoData(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	f := NewEODHDFetcher(server.URL, "key", 0, 0, zerolog.Nop())
	_, err := f.FetchAdjustedClose(context.Background(), "AAPL.US", day("2024-01-02"), day("2024-01-04"))

	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNoData)
	assert.Contains(t, err.Error(), "500")
}

func TestEODHDFetcher_QuotaExceeded(t *testing.T) {
	for _, status := range []int{http.StatusTooManyRequests, http.StatusPaymentRequired} {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
		}))

		f := NewEODHDFetcher(server.URL, "key", 0, 0, zerolog.Nop())
		_, err := f.FetchAdjustedClose(context.Background(), "AAPL.US", day("2024-01-02"), day("2024-01-04"))
		server.Close()

		require.Error(t, err, status)
		assert.ErrorIs(t, err, ErrQuotaExceeded, status)
		assert.NotErrorIs(t, err, ErrNoData, status)
		assert.Contains(t, err.Error(), "AAPL.US")
	}
}

func TestEODHDFetcher_InvalidRange(t *testing.T) {
	f := NewEODHDFetcher("http://127.0.0.1:1", "key", 0, 0, zerolog.Nop())
	_, err := f.FetchAdjustedClose(context.Background(), "AAPL.US", day("2024-02-01"), day("2024-01-01"))

	assert.ErrorIs(t, err, ErrInvalidRange)
}
