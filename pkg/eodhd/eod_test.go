package eodhd

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_GetEOD(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/eod/MSFT.US", r.URL.Path)
		assert.Equal(t, "2024-01-02", r.URL.Query().Get("from"))
		assert.Equal(t, "2024-01-04", r.URL.Query().Get("to"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"date":"2024-01-02","open":373.86,"high":375.9,"low":366.77,"close":370.87,"adjusted_close":367.94,"volume":25258600},
			{"date":"2024-01-03","open":369.01,"high":373.26,"low":368.51,"close":370.6,"adjusted_close":367.68,"volume":23083500},
			{"date":"2024-01-04","open":370.67,"high":373.1,"low":367.17,"close":367.94,"adjusted_close":365.04,"volume":20901500}
		]`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "key")
	bars, err := client.GetEOD(context.Background(), EODRequest{
		Ticker: "MSFT.US",
		From:   time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
		To:     time.Date(2024, 1, 4, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	require.Len(t, bars, 3)

	assert.Equal(t, "2024-01-02", bars[0].Date)
	assert.InDelta(t, 367.94, bars[0].AdjustedClose, 1e-9)
	assert.InDelta(t, 370.87, bars[0].Close, 1e-9)
	assert.Equal(t, int64(20901500), bars[2].Volume)

	date, err := bars[2].Time()
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 1, 4, 0, 0, 0, 0, time.UTC), date)
}

func TestClient_GetEOD_RequiresTicker(t *testing.T) {
	client := NewClient("http://localhost", "key")

	_, err := client.GetEOD(context.Background(), EODRequest{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ticker is required")
}

func TestClient_GetEOD_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte("Ticker Not Found."))
	}))
	defer server.Close()

	client := NewClient(server.URL, "key")
	_, err := client.GetEOD(context.Background(), EODRequest{Ticker: "NOPE.US"})
	require.Error(t, err)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.True(t, apiErr.IsNotFound())
	assert.Equal(t, "Ticker Not Found.", apiErr.Message)
	assert.Equal(t, "/eod/NOPE.US", apiErr.Endpoint)
}

func TestClient_GetEOD_Unauthorized(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"Invalid API token"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "bad")
	_, err := client.GetEOD(context.Background(), EODRequest{Ticker: "AAPL.US"})

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.True(t, apiErr.IsUnauthorized())
	assert.Equal(t, "Invalid API token", apiErr.Message)
}

func TestClient_GetEOD_InvalidJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{not json`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "key")
	_, err := client.GetEOD(context.Background(), EODRequest{Ticker: "AAPL.US"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to decode response")
}
