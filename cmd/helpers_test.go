package cmd

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/jonandersen/folio/internal/logging"
	"github.com/jonandersen/folio/internal/market"
)

// testBar is the subset of an EODHD bar the fetcher reads.
type testBar struct {
	Date          string  `json:"date"`
	AdjustedClose float64 `json:"adjusted_close"`
}

// newEODHDServer serves /eod/{SYMBOL} from bars. Unknown symbols get a 404.
func newEODHDServer(t *testing.T, bars map[string][]testBar) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		symbol := strings.TrimPrefix(r.URL.Path, "/eod/")
		data, ok := bars[symbol]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`Ticker Not Found.`))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(data)
	}))
	t.Cleanup(server.Close)
	return server
}

func newTestFetcher(server *httptest.Server) market.Fetcher {
	return market.NewEODHDFetcher(server.URL, "test-key", 0, time.Second, logging.Silent())
}

func testNow() time.Time {
	return time.Date(2024, 1, 10, 15, 0, 0, 0, time.UTC)
}

func testBars() map[string][]testBar {
	return map[string][]testBar{
		"AAPL": {
			{Date: "2024-01-02", AdjustedClose: 10},
			{Date: "2024-01-03", AdjustedClose: 11},
			{Date: "2024-01-04", AdjustedClose: 12},
		},
		"GSPC.INDX": {
			{Date: "2024-01-02", AdjustedClose: 100},
			{Date: "2024-01-03", AdjustedClose: 110},
			{Date: "2024-01-04", AdjustedClose: 121},
		},
	}
}
