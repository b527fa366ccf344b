package eodhd

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"time"
)

// DateLayout is the date format EODHD uses for request parameters and bars.
const DateLayout = "2006-01-02"

// Bar is one end-of-day record.
type Bar struct {
	Date          string  `json:"date"`
	Open          float64 `json:"open"`
	High          float64 `json:"high"`
	Low           float64 `json:"low"`
	Close         float64 `json:"close"`
	AdjustedClose float64 `json:"adjusted_close"`
	Volume        int64   `json:"volume"`
}

// Time parses the bar date.
func (b Bar) Time() (time.Time, error) {
	return time.Parse(DateLayout, b.Date)
}

// EODRequest selects the bars to return. Zero dates are omitted.
type EODRequest struct {
	Ticker string
	From   time.Time
	To     time.Time
}

// GetEOD retrieves daily bars for a ticker in ascending date order.
// Both bounds are inclusive.
func (c *Client) GetEOD(ctx context.Context, req EODRequest) ([]Bar, error) {
	if req.Ticker == "" {
		return nil, fmt.Errorf("ticker is required")
	}

	params := map[string]string{
		"period": "d",
		"order":  "a",
	}
	if !req.From.IsZero() {
		params["from"] = req.From.Format(DateLayout)
	}
	if !req.To.IsZero() {
		params["to"] = req.To.Format(DateLayout)
	}

	path := "/eod/" + url.PathEscape(req.Ticker)
	resp, err := c.get(ctx, path, params)
	if err != nil {
		return nil, err
	}
	if err := CheckResponse(resp, path); err != nil {
		return nil, err
	}

	var bars []Bar
	if err := json.Unmarshal(resp.Body(), &bars); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return bars, nil
}
