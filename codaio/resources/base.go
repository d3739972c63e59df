// Package resources provides REST resource implementations for the Coda API.
//
// Every method maps 1:1 onto an endpoint under /docs/{docId}; list methods
// follow continuation cursors unless the caller bounds the fetch.
package resources

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/oapi-codegen/runtime"

	"github.com/blasterai/codaio-go/codaio/types"
	"github.com/blasterai/codaio-go/internal/httpx"
)

// ErrEmptyResponse is returned when a single-object endpoint answered
// with an empty JSON object.
var ErrEmptyResponse = errors.New("empty response body")

// Base provides common functionality for all resources.
type Base struct {
	transport *httpx.Transport
	paginator *httpx.Paginator
}

// NewBase creates a new Base resource.
func NewBase(transport *httpx.Transport) *Base {
	return &Base{
		transport: transport,
		paginator: httpx.NewPaginator(transport),
	}
}

// Get performs a GET request and decodes the object into result.
func (b *Base) Get(ctx context.Context, path string, query url.Values, result types.Record) error {
	raw, err := b.transport.Request(ctx, http.MethodGet, path, query, nil)
	if err != nil {
		return err
	}
	if len(raw) == 0 {
		return fmt.Errorf("GET %s: %w", path, ErrEmptyResponse)
	}
	return types.Decode(raw, result)
}

// List performs a GET request on a list endpoint. A positive limit returns
// a single bounded page.
func (b *Base) List(ctx context.Context, path string, query url.Values, limit int) (*httpx.Collection, error) {
	return b.paginator.FetchAll(ctx, path, query, limit)
}

// Post performs a POST request and returns the write acknowledgement.
func (b *Base) Post(ctx context.Context, path string, body any) (*types.MutationStatus, error) {
	return b.write(ctx, http.MethodPost, path, body)
}

// Put performs a PUT request and returns the write acknowledgement.
func (b *Base) Put(ctx context.Context, path string, body any) (*types.MutationStatus, error) {
	return b.write(ctx, http.MethodPut, path, body)
}

// Delete performs a DELETE request and returns the write acknowledgement.
func (b *Base) Delete(ctx context.Context, path string, body any) (*types.MutationStatus, error) {
	return b.write(ctx, http.MethodDelete, path, body)
}

func (b *Base) write(ctx context.Context, method, path string, body any) (*types.MutationStatus, error) {
	resp, err := b.transport.Do(ctx, &httpx.Request{
		Method: method,
		Path:   path,
		Body:   body,
	})
	if err != nil {
		return nil, err
	}
	raw, err := resp.Object()
	if err != nil {
		return nil, err
	}
	var status types.MutationStatus
	if err := types.Decode(raw, &status); err != nil {
		return nil, err
	}
	status.Status = resp.StatusCode
	if status.RequestID == "" {
		status.RequestID = resp.RequestID
	}
	return &status, nil
}

// docPath joins escaped path segments under /docs/{docID}.
func docPath(docID string, segments ...string) string {
	var sb strings.Builder
	sb.WriteString("/docs/")
	sb.WriteString(url.PathEscape(docID))
	for _, s := range segments {
		sb.WriteByte('/')
		sb.WriteString(url.PathEscape(s))
	}
	return sb.String()
}

// addQueryParam encodes one form-style query parameter. Nil pointers are
// skipped.
func addQueryParam(q url.Values, name string, value any) error {
	switch v := value.(type) {
	case *string:
		if v == nil {
			return nil
		}
		value = *v
	case *int:
		if v == nil {
			return nil
		}
		value = *v
	case *bool:
		if v == nil {
			return nil
		}
		value = *v
	}

	frag, err := runtime.StyleParamWithLocation("form", true, name, runtime.ParamLocationQuery, value)
	if err != nil {
		return fmt.Errorf("encode query parameter %s: %w", name, err)
	}
	parsed, err := url.ParseQuery(frag)
	if err != nil {
		return fmt.Errorf("encode query parameter %s: %w", name, err)
	}
	for k, vs := range parsed {
		for _, v := range vs {
			q.Add(k, v)
		}
	}
	return nil
}

// limitOf dereferences an optional page size.
func limitOf(limit *int) int {
	if limit == nil {
		return 0
	}
	return *limit
}
