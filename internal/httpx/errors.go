package httpx

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// APIError is the base error type for all HTTP errors.
type APIError struct {
	StatusCode int            `json:"status_code,omitempty"`
	Code       string         `json:"code,omitempty"`
	Message    string         `json:"message,omitempty"`
	Details    map[string]any `json:"details,omitempty"`
	RequestID  string         `json:"request_id,omitempty"`
	RawBody    []byte         `json:"-"`
	Err        error          `json:"-"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Message != "" {
		if e.Code != "" {
			return fmt.Sprintf("[%d] %s: %s", e.StatusCode, e.Code, e.Message)
		}
		return fmt.Sprintf("[%d] %s", e.StatusCode, e.Message)
	}
	if e.Code != "" {
		return fmt.Sprintf("[%d] %s", e.StatusCode, e.Code)
	}
	return fmt.Sprintf("[%d] unknown error", e.StatusCode)
}

// Unwrap returns the underlying error.
func (e *APIError) Unwrap() error {
	return e.Err
}

// IsUnauthorized reports whether the server rejected the bearer token.
func (e *APIError) IsUnauthorized() bool {
	return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
}

// IsRateLimited reports whether the server throttled the request.
func (e *APIError) IsRateLimited() bool {
	return e.StatusCode == http.StatusTooManyRequests
}

// NotFoundError represents a 404 error.
type NotFoundError struct{ *APIError }

// Unwrap returns the underlying API error.
func (e *NotFoundError) Unwrap() error { return e.APIError }

// NetworkError represents a network-level error.
type NetworkError struct{ *APIError }

// Unwrap returns the underlying API error.
func (e *NetworkError) Unwrap() error { return e.APIError }

// TimeoutError represents a request that exceeded its deadline.
type TimeoutError struct {
	*APIError
	TimeoutSeconds float64
}

// Unwrap returns the underlying API error.
func (e *TimeoutError) Unwrap() error { return e.APIError }

// ParseErrorFromResponse parses an error from a non-2xx HTTP response.
//
// Coda error bodies look like {"statusCode":404,"statusMessage":"Not Found","message":"..."}.
func ParseErrorFromResponse(statusCode int, body []byte, headers http.Header) error {
	baseErr := &APIError{
		StatusCode: statusCode,
		RequestID:  headers.Get(RequestIDHeader),
		RawBody:    body,
	}

	if len(body) > 0 {
		var apiErr struct {
			StatusMessage string         `json:"statusMessage"`
			Message       string         `json:"message"`
			Code          string         `json:"code"`
			Details       map[string]any `json:"codaDetail"`
			Error         string         `json:"error"`
		}
		if json.Unmarshal(body, &apiErr) == nil {
			baseErr.Code = apiErr.Code
			if baseErr.Code == "" {
				baseErr.Code = apiErr.StatusMessage
			}
			baseErr.Message = apiErr.Message
			baseErr.Details = apiErr.Details
			if baseErr.Message == "" && apiErr.Error != "" {
				baseErr.Message = apiErr.Error
			}
		} else {
			baseErr.Message = string(body)
		}
	}
	if baseErr.Code == "" {
		baseErr.Code = http.StatusText(statusCode)
	}

	if statusCode == http.StatusNotFound {
		return &NotFoundError{APIError: baseErr}
	}
	return baseErr
}

// NewNetworkError creates a new network error.
func NewNetworkError(err error) *NetworkError {
	return &NetworkError{
		APIError: &APIError{
			Code:    "network_error",
			Message: err.Error(),
			Err:     err,
		},
	}
}

// NewTimeoutError creates a new timeout error.
func NewTimeoutError(timeout time.Duration, err error) *TimeoutError {
	return &TimeoutError{
		APIError: &APIError{
			Code:    "timeout",
			Message: fmt.Sprintf("request timed out after %v", timeout),
			Err:     err,
		},
		TimeoutSeconds: timeout.Seconds(),
	}
}

// IsNotFoundError returns true if the error is a 404 error.
func IsNotFoundError(err error) bool {
	var notFoundErr *NotFoundError
	return errors.As(err, &notFoundErr)
}

// AsAPIError extracts the underlying API error.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}
