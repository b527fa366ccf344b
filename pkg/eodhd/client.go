// Package eodhd provides a small Go client for the EOD Historical Data API.
//
// Only the end-of-day price endpoint is covered. Requests are rate limited on
// the client side and authenticated with the account's API token.
package eodhd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"golang.org/x/time/rate"
)

const (
	DefaultBaseURL   = "https://eodhd.com/api"
	DefaultTimeout   = 30 * time.Second
	DefaultRateLimit = 10 // requests per second
)

// Client handles HTTP requests to the EODHD API.
type Client struct {
	BaseURL string

	apiKey  string
	timeout time.Duration
	http    *resty.Client
	limiter *rate.Limiter
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout sets the per-request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.timeout = timeout
	}
}

// WithRateLimit sets the number of requests allowed per second.
// Values below one disable limiting.
func WithRateLimit(requestsPerSecond int) Option {
	return func(c *Client) {
		if requestsPerSecond < 1 {
			c.limiter = rate.NewLimiter(rate.Inf, 0)
			return
		}
		c.limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), requestsPerSecond)
	}
}

// NewClient creates a client for the given base URL and API key.
// An empty base URL selects DefaultBaseURL.
func NewClient(baseURL, apiKey string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	baseURL = strings.TrimSuffix(baseURL, "/")

	c := &Client{
		BaseURL: baseURL,
		apiKey:  apiKey,
		timeout: DefaultTimeout,
		limiter: rate.NewLimiter(rate.Limit(DefaultRateLimit), DefaultRateLimit),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.http = resty.New().
		SetBaseURL(baseURL).
		SetTimeout(c.timeout)
	return c
}

// get performs a rate-limited GET request and returns the raw response.
// The API token and JSON format parameters are always added.
func (c *Client) get(ctx context.Context, path string, params map[string]string) (*resty.Response, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Accept", "application/json").
		SetQueryParams(params).
		SetQueryParam("api_token", c.apiKey).
		SetQueryParam("fmt", "json").
		Get(path)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	return resp, nil
}
