// Package httpx provides HTTP transport utilities for the Coda SDK.
package httpx

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/blasterai/codaio-go/internal/version"
)

// RequestIDHeader carries the per-request correlation id.
const RequestIDHeader = "X-Request-Id"

// Transport wraps an http.Client with bearer auth, JSON encoding and typed
// error mapping. It never retries: every failure is returned to the caller.
type Transport struct {
	client    *http.Client
	baseURL   string
	apiKey    string
	userAgent string
	headers   map[string]string
	limiter   *rate.Limiter
	logger    Logger
}

// Logger is an interface for debug logging.
type Logger interface {
	Debug(msg string, keysAndValues ...any)
}

// Config holds configuration for the transport.
type Config struct {
	BaseURL    string
	APIKey     string
	UserAgent  string
	Headers    map[string]string
	Timeout    time.Duration
	HTTPClient *http.Client
	RateLimit  RateLimitConfig
	Logger     Logger
}

// RateLimitConfig throttles outgoing requests on the client side.
// A zero RequestsPerSecond disables throttling.
type RateLimitConfig struct {
	RequestsPerSecond float64
	Burst             int
}

// NewTransport creates a new Transport with the given configuration.
func NewTransport(cfg Config) *Transport {
	if cfg.UserAgent == "" {
		cfg.UserAgent = version.UserAgent()
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout: cfg.Timeout,
		}
	}

	t := &Transport{
		client:    httpClient,
		baseURL:   strings.TrimSuffix(cfg.BaseURL, "/"),
		apiKey:    cfg.APIKey,
		userAgent: cfg.UserAgent,
		headers:   cfg.Headers,
		logger:    cfg.Logger,
	}

	if cfg.RateLimit.RequestsPerSecond > 0 {
		burst := cfg.RateLimit.Burst
		if burst <= 0 {
			burst = 1
		}
		t.limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit.RequestsPerSecond), burst)
	}

	return t
}

// BaseURL returns the versioned API root all relative paths are joined to.
func (t *Transport) BaseURL() string {
	return t.baseURL
}

// Request represents an HTTP request to be made.
type Request struct {
	Method string
	Path   string
	// URL, when set, is used verbatim instead of BaseURL+Path+Query.
	// Continuation links returned by list endpoints are fully qualified.
	URL     string
	Body    any
	Query   url.Values
	Headers map[string]string
}

// Response represents an HTTP response.
type Response struct {
	StatusCode int
	Body       []byte
	Headers    http.Header
	RequestID  string
}

// Object decodes the body as a JSON object. An empty body maps to
// {"status": StatusCode}.
func (r *Response) Object() (map[string]any, error) {
	if len(bytes.TrimSpace(r.Body)) == 0 {
		return map[string]any{"status": r.StatusCode}, nil
	}
	var result map[string]any
	if err := json.Unmarshal(r.Body, &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}
	return result, nil
}

// Do executes a single HTTP request. Non-2xx statuses are returned as
// *NotFoundError (404) or *APIError.
func (t *Transport) Do(ctx context.Context, req *Request) (*Response, error) {
	if t.limiter != nil {
		if err := t.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	fullURL := req.URL
	if fullURL == "" {
		fullURL = t.baseURL + req.Path
		if len(req.Query) > 0 {
			fullURL += "?" + req.Query.Encode()
		}
	}

	var bodyReader io.Reader
	if req.Body != nil {
		bodyBytes, err := json.Marshal(req.Body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(bodyBytes)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, fullURL, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	requestID := uuid.NewString()
	httpReq.Header.Set("User-Agent", t.userAgent)
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set(RequestIDHeader, requestID)
	if req.Body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	if t.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+t.apiKey)
	}
	for k, v := range t.headers {
		httpReq.Header.Set(k, v)
	}
	for k, v := range req.Headers {
		httpReq.Header.Set(k, v)
	}

	t.log("executing request", "method", req.Method, "url", fullURL, "request_id", requestID)
	httpResp, err := t.client.Do(httpReq)
	if err != nil {
		if errors.Is(ctx.Err(), context.Canceled) {
			return nil, NewNetworkError(ctx.Err())
		}
		if ctx.Err() != nil || errors.Is(err, context.DeadlineExceeded) {
			return nil, NewTimeoutError(t.client.Timeout, err)
		}
		return nil, NewNetworkError(err)
	}
	defer httpResp.Body.Close()

	body, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, NewNetworkError(fmt.Errorf("failed to read response body: %w", err))
	}

	resp := &Response{
		StatusCode: httpResp.StatusCode,
		Body:       body,
		Headers:    httpResp.Header,
		RequestID:  httpResp.Header.Get(RequestIDHeader),
	}
	if resp.RequestID == "" {
		resp.RequestID = requestID
	}

	t.log("received response", "status", resp.StatusCode, "request_id", resp.RequestID)

	if httpResp.StatusCode < 200 || httpResp.StatusCode > 299 {
		return nil, ParseErrorFromResponse(httpResp.StatusCode, body, httpResp.Header)
	}

	return resp, nil
}

// Request issues one call and decodes the JSON object it returns.
func (t *Transport) Request(ctx context.Context, method, path string, query url.Values, body any) (map[string]any, error) {
	resp, err := t.Do(ctx, &Request{
		Method: method,
		Path:   path,
		Query:  query,
		Body:   body,
	})
	if err != nil {
		return nil, err
	}
	return resp.Object()
}

// log logs a debug message.
func (t *Transport) log(msg string, keysAndValues ...any) {
	if t.logger != nil {
		t.logger.Debug(msg, keysAndValues...)
	}
}

// CloseIdleConnections closes idle keep-alive connections of the client.
func (t *Transport) CloseIdleConnections() {
	t.client.CloseIdleConnections()
}
