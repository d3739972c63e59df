// Package testutil provides testing utilities for the Coda SDK.
package testutil

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// MockResponse represents a mock HTTP response.
type MockResponse struct {
	StatusCode int
	Body       any
	Headers    map[string]string
}

// MockServer is a test HTTP server for mocking API responses.
type MockServer struct {
	*httptest.Server
	mu       sync.Mutex
	handlers map[string]map[string]http.HandlerFunc
	requests []RecordedRequest
}

// RecordedRequest represents a recorded HTTP request.
type RecordedRequest struct {
	Method   string
	Path     string
	RawQuery string
	Headers  http.Header
	Body     []byte
}

// NewMockServer creates a new mock server. Unregistered routes answer 404
// with a Coda-shaped error body.
func NewMockServer(t *testing.T) *MockServer {
	t.Helper()

	ms := &MockServer{
		handlers: make(map[string]map[string]http.HandlerFunc),
		requests: make([]RecordedRequest, 0),
	}

	ms.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		r.Body.Close()

		ms.mu.Lock()
		ms.requests = append(ms.requests, RecordedRequest{
			Method:   r.Method,
			Path:     r.URL.Path,
			RawQuery: r.URL.RawQuery,
			Headers:  r.Header.Clone(),
			Body:     body,
		})
		var handler http.HandlerFunc
		if methodHandlers, ok := ms.handlers[r.URL.Path]; ok {
			handler = methodHandlers[r.Method]
		}
		ms.mu.Unlock()

		if handler != nil {
			r.Body = io.NopCloser(strings.NewReader(string(body)))
			handler(w, r)
			return
		}

		writeJSON(w, http.StatusNotFound, nil, map[string]any{
			"statusCode":    http.StatusNotFound,
			"statusMessage": "Not Found",
			"message":       "Not Found",
		})
	}))

	t.Cleanup(func() {
		ms.Close()
	})

	return ms
}

// Handle registers a handler for a specific method and path.
func (ms *MockServer) Handle(method, path string, handler http.HandlerFunc) {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	if ms.handlers[path] == nil {
		ms.handlers[path] = make(map[string]http.HandlerFunc)
	}
	ms.handlers[path][method] = handler
}

// HandleJSON registers a handler that returns a JSON response.
func (ms *MockServer) HandleJSON(method, path string, statusCode int, response any) {
	ms.Handle(method, path, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, statusCode, nil, response)
	})
}

// HandleSequence registers responses served in order, one per call. The
// last response repeats once the sequence is exhausted.
func (ms *MockServer) HandleSequence(method, path string, responses ...MockResponse) {
	var mu sync.Mutex
	next := 0
	ms.Handle(method, path, func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		resp := responses[next]
		if next < len(responses)-1 {
			next++
		}
		mu.Unlock()
		status := resp.StatusCode
		if status == 0 {
			status = http.StatusOK
		}
		writeJSON(w, status, resp.Headers, resp.Body)
	})
}

// HandleError registers a handler that returns a Coda error response.
func (ms *MockServer) HandleError(method, path string, statusCode int, message string) {
	ms.HandleJSON(method, path, statusCode, map[string]any{
		"statusCode":    statusCode,
		"statusMessage": http.StatusText(statusCode),
		"message":       message,
	})
}

func writeJSON(w http.ResponseWriter, statusCode int, headers map[string]string, body any) {
	for k, v := range headers {
		w.Header().Set(k, v)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if body != nil {
		json.NewEncoder(w).Encode(body)
	}
}

// GetRequests returns all recorded requests.
func (ms *MockServer) GetRequests() []RecordedRequest {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	return append([]RecordedRequest{}, ms.requests...)
}

// CountRequests returns how many requests hit method+path.
func (ms *MockServer) CountRequests(method, path string) int {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	n := 0
	for _, r := range ms.requests {
		if r.Method == method && r.Path == path {
			n++
		}
	}
	return n
}

// LastRequest returns the last recorded request.
func (ms *MockServer) LastRequest() *RecordedRequest {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	if len(ms.requests) == 0 {
		return nil
	}
	return &ms.requests[len(ms.requests)-1]
}

// LastRequestTo returns the last recorded request for method+path.
func (ms *MockServer) LastRequestTo(method, path string) *RecordedRequest {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	for i := len(ms.requests) - 1; i >= 0; i-- {
		if ms.requests[i].Method == method && ms.requests[i].Path == path {
			return &ms.requests[i]
		}
	}
	return nil
}

// ClearRequests clears all recorded requests.
func (ms *MockServer) ClearRequests() {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	ms.requests = make([]RecordedRequest, 0)
}

// AssertRequestCount asserts that a specific number of requests were made.
func (ms *MockServer) AssertRequestCount(t *testing.T, expected int) {
	t.Helper()
	assert.Len(t, ms.GetRequests(), expected)
}

// AssertLastRequestHeader asserts a header of the last request.
func (ms *MockServer) AssertLastRequestHeader(t *testing.T, key, expected string) {
	t.Helper()
	req := ms.LastRequest()
	require.NotNil(t, req, "no requests recorded")
	assert.Equal(t, expected, req.Headers.Get(key))
}

// DecodeBody parses a recorded request body as JSON.
func (r *RecordedRequest) DecodeBody(t *testing.T, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(r.Body, v), "failed to parse request body")
}
