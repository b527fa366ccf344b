package eodhd

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-resty/resty/v2"
)

// APIError represents an error response from the EODHD API.
type APIError struct {
	StatusCode int
	Endpoint   string
	Message    string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = http.StatusText(e.StatusCode)
	}
	return fmt.Sprintf("EODHD API error (%d) on %s: %s", e.StatusCode, e.Endpoint, msg)
}

// IsNotFound returns true if the error is a 404 Not Found.
// EODHD answers 404 for tickers it does not know.
func (e *APIError) IsNotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

// IsUnauthorized returns true for 401 and 403, which EODHD uses for missing
// or invalid API tokens.
func (e *APIError) IsUnauthorized() bool {
	return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
}

// IsRateLimited returns true if the API rejected the call for exceeding the
// account's quota.
func (e *APIError) IsRateLimited() bool {
	return e.StatusCode == http.StatusTooManyRequests || e.StatusCode == http.StatusPaymentRequired
}

// errorResponse represents the JSON structure of API error responses.
type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// CheckResponse returns an APIError for non-2xx responses and nil otherwise.
// JSON error bodies are decoded; plain text bodies are used as the message.
func CheckResponse(resp *resty.Response, endpoint string) error {
	if resp.StatusCode() >= 200 && resp.StatusCode() < 300 {
		return nil
	}

	apiErr := &APIError{
		StatusCode: resp.StatusCode(),
		Endpoint:   endpoint,
	}

	body := resp.Body()
	if len(body) == 0 {
		return apiErr
	}

	var errResp errorResponse
	if err := json.Unmarshal(body, &errResp); err != nil {
		apiErr.Message = string(body)
		return apiErr
	}
	if errResp.Error != "" {
		apiErr.Message = errResp.Error
	} else {
		apiErr.Message = errResp.Message
	}
	return apiErr
}
