package httpx

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testAPIKey = "test-api-key"

func TestTransport_Do_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"id": "doc_1"})
	}))
	defer server.Close()

	transport := NewTransport(Config{BaseURL: server.URL, APIKey: testAPIKey})

	resp, err := transport.Do(context.Background(), &Request{
		Method: http.MethodGet,
		Path:   "/docs/doc_1",
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.RequestID)

	obj, err := resp.Object()
	require.NoError(t, err)
	assert.Equal(t, "doc_1", obj["id"])
}

func TestTransport_Do_EmptyBodyMapsToStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusAccepted)
	}))
	defer server.Close()

	transport := NewTransport(Config{BaseURL: server.URL, APIKey: testAPIKey})

	obj, err := transport.Request(context.Background(), http.MethodDelete, "/docs/d/tables/t/rows/r", nil, nil)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"status": http.StatusAccepted}, obj)
}

func TestTransport_Do_WithBodyAndQuery(t *testing.T) {
	var receivedBody map[string]any
	var receivedQuery url.Values
	var contentType string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		json.Unmarshal(body, &receivedBody)
		receivedQuery = r.URL.Query()
		contentType = r.Header.Get("Content-Type")
		w.WriteHeader(http.StatusAccepted)
		w.Write([]byte(`{"requestId":"abc"}`))
	}))
	defer server.Close()

	transport := NewTransport(Config{BaseURL: server.URL, APIKey: testAPIKey})

	obj, err := transport.Request(context.Background(), http.MethodPost, "/docs/d/tables/t/rows",
		url.Values{"disableParsing": []string{"true"}},
		map[string]any{"rows": []any{}},
	)
	require.NoError(t, err)
	assert.Equal(t, "abc", obj["requestId"])
	assert.Contains(t, receivedBody, "rows")
	assert.Equal(t, "true", receivedQuery.Get("disableParsing"))
	assert.Equal(t, "application/json", contentType)
}

func TestTransport_Do_Headers(t *testing.T) {
	var receivedHeaders http.Header
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		receivedHeaders = r.Header.Clone()
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	transport := NewTransport(Config{
		BaseURL:   server.URL,
		APIKey:    testAPIKey,
		UserAgent: "custom-agent/1.0",
		Headers:   map[string]string{"X-Custom-Header": "custom-value"},
	})

	_, err := transport.Do(context.Background(), &Request{
		Method:  http.MethodGet,
		Path:    "/whoami",
		Headers: map[string]string{"X-Request-Header": "request-value"},
	})
	require.NoError(t, err)

	assert.Equal(t, "Bearer "+testAPIKey, receivedHeaders.Get("Authorization"))
	assert.Equal(t, "custom-agent/1.0", receivedHeaders.Get("User-Agent"))
	assert.Equal(t, "custom-value", receivedHeaders.Get("X-Custom-Header"))
	assert.Equal(t, "request-value", receivedHeaders.Get("X-Request-Header"))
	assert.NotEmpty(t, receivedHeaders.Get(RequestIDHeader))
}

func TestTransport_Do_AbsoluteURL(t *testing.T) {
	var gotPath, gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	transport := NewTransport(Config{BaseURL: server.URL + "/apis/v1", APIKey: testAPIKey})

	_, err := transport.Do(context.Background(), &Request{
		Method: http.MethodGet,
		URL:    server.URL + "/apis/v1/docs/d/tables?pageToken=xyz",
		Query:  url.Values{"ignored": []string{"1"}},
	})
	require.NoError(t, err)
	assert.Equal(t, "/apis/v1/docs/d/tables", gotPath)
	assert.Equal(t, "pageToken=xyz", gotQuery)
}

func TestTransport_Do_ErrorStatuses(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		notFound bool
	}{
		{"not found", http.StatusNotFound, true},
		{"unauthorized", http.StatusUnauthorized, false},
		{"bad request", http.StatusBadRequest, false},
		{"server error", http.StatusInternalServerError, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls int32
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				atomic.AddInt32(&calls, 1)
				w.WriteHeader(tt.status)
				fmt.Fprintf(w, `{"statusCode":%d,"statusMessage":%q,"message":"nope"}`, tt.status, http.StatusText(tt.status))
			}))
			defer server.Close()

			transport := NewTransport(Config{BaseURL: server.URL, APIKey: testAPIKey})
			_, err := transport.Do(context.Background(), &Request{Method: http.MethodGet, Path: "/x"})
			require.Error(t, err)

			assert.Equal(t, tt.notFound, IsNotFoundError(err))
			apiErr, ok := AsAPIError(err)
			require.True(t, ok)
			assert.Equal(t, tt.status, apiErr.StatusCode)
			assert.Equal(t, "nope", apiErr.Message)
			assert.Equal(t, int32(1), atomic.LoadInt32(&calls), "transport must not retry")
		})
	}
}

func TestTransport_Do_ContextDeadline(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	transport := NewTransport(Config{BaseURL: server.URL, APIKey: testAPIKey})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := transport.Do(ctx, &Request{Method: http.MethodGet, Path: "/slow"})
	require.Error(t, err)
	var timeoutErr *TimeoutError
	assert.ErrorAs(t, err, &timeoutErr)
}

func TestTransport_Do_ContextCancelled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	transport := NewTransport(Config{BaseURL: server.URL, APIKey: testAPIKey})

	ctx, cancel := context.WithCancel(context.Background())
	time.AfterFunc(20*time.Millisecond, cancel)

	_, err := transport.Do(ctx, &Request{Method: http.MethodGet, Path: "/slow"})
	require.Error(t, err)
	var netErr *NetworkError
	require.ErrorAs(t, err, &netErr)
	assert.ErrorIs(t, err, context.Canceled)
	var timeoutErr *TimeoutError
	assert.False(t, errors.As(err, &timeoutErr))
	assert.NotContains(t, err.Error(), "timed out")
}

func TestTransport_Do_NetworkError(t *testing.T) {
	transport := NewTransport(Config{BaseURL: "http://127.0.0.1:1", APIKey: testAPIKey})

	_, err := transport.Do(context.Background(), &Request{Method: http.MethodGet, Path: "/"})
	require.Error(t, err)
	var netErr *NetworkError
	assert.ErrorAs(t, err, &netErr)
}

func TestTransport_RateLimit(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	transport := NewTransport(Config{
		BaseURL:   server.URL,
		APIKey:    testAPIKey,
		RateLimit: RateLimitConfig{RequestsPerSecond: 20, Burst: 1},
	})

	start := time.Now()
	for i := 0; i < 3; i++ {
		_, err := transport.Do(context.Background(), &Request{Method: http.MethodGet, Path: "/"})
		require.NoError(t, err)
	}
	assert.GreaterOrEqual(t, time.Since(start), 80*time.Millisecond)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

type recordingLogger struct {
	messages []string
}

func (l *recordingLogger) Debug(msg string, keysAndValues ...any) {
	l.messages = append(l.messages, msg)
}

func TestTransport_Logger(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	logger := &recordingLogger{}
	transport := NewTransport(Config{BaseURL: server.URL, APIKey: testAPIKey, Logger: logger})

	_, err := transport.Do(context.Background(), &Request{Method: http.MethodGet, Path: "/"})
	require.NoError(t, err)
	assert.Equal(t, []string{"executing request", "received response"}, logger.messages)
}
