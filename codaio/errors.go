package codaio

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/blasterai/codaio-go/codaio/types"
	"github.com/blasterai/codaio-go/internal/httpx"
)

// Transport level errors.
type (
	// APIError is any non-2xx response; it carries status code and server message.
	APIError = httpx.APIError
	// NotFoundError is a 404 response.
	NotFoundError = httpx.NotFoundError
	// NetworkError is a failure below HTTP.
	NetworkError = httpx.NetworkError
	// TimeoutError is a request that exceeded its deadline.
	TimeoutError = httpx.TimeoutError
	// DecodeError is a record missing required keys or of the wrong shape.
	DecodeError = types.DecodeError
)

// ErrNoAPIKey is returned by NewClient when no API token is configured.
var ErrNoAPIKey = errors.New("no API key configured: use WithAPIKey or set " + EnvAPIKey)

// DocumentNotFoundError is returned when a doc cannot be loaded.
type DocumentNotFoundError struct {
	DocumentID string
	Err        error
}

func (e *DocumentNotFoundError) Error() string {
	return withCause(fmt.Sprintf("document %q not found", e.DocumentID), e.Err)
}

func (e *DocumentNotFoundError) Unwrap() error { return e.Err }

// TableNotFoundError is returned when a table lookup fails.
type TableNotFoundError struct {
	DocumentID string
	Table      string
	Err        error
}

func (e *TableNotFoundError) Error() string {
	return withCause(fmt.Sprintf("table %q not found in document %q", e.Table, e.DocumentID), e.Err)
}

func (e *TableNotFoundError) Unwrap() error { return e.Err }

// ColumnNotFoundError is returned when a column id or name matches no
// column of the table.
type ColumnNotFoundError struct {
	TableID string
	Column  string
	Err     error
}

func (e *ColumnNotFoundError) Error() string {
	return withCause(fmt.Sprintf("column %q not found in table %q", e.Column, e.TableID), e.Err)
}

func (e *ColumnNotFoundError) Unwrap() error { return e.Err }

// RowNotFoundError is returned when a row lookup fails.
type RowNotFoundError struct {
	TableID string
	Row     string
	Err     error
}

func (e *RowNotFoundError) Error() string {
	return withCause(fmt.Sprintf("row %q not found in table %q", e.Row, e.TableID), e.Err)
}

func (e *RowNotFoundError) Unwrap() error { return e.Err }

// AmbiguousNameError is returned when a name lookup matches more than one
// entity.
type AmbiguousNameError struct {
	Kind    string
	Name    string
	Matches []string
}

func (e *AmbiguousNameError) Error() string {
	return fmt.Sprintf("%s name %q is ambiguous: matches %s", e.Kind, e.Name, strings.Join(e.Matches, ", "))
}

// InvalidFilterError is returned for a row filter without a value or
// without exactly one of column id and column name.
type InvalidFilterError struct {
	Err error
}

func (e *InvalidFilterError) Error() string {
	return withCause("invalid row filter", e.Err)
}

func (e *InvalidFilterError) Unwrap() error { return e.Err }

// ConsistencyTimeoutError is returned by Cell.SetValue when the written
// value was still not visible after the poll budget was spent.
type ConsistencyTimeoutError struct {
	RowID    string
	ColumnID string
	Expected any
	Observed any
	Attempts int
	Elapsed  time.Duration
	Err      error
}

func (e *ConsistencyTimeoutError) Error() string {
	return fmt.Sprintf("row %q column %q: wrote %v, still reading %v after %d reads (%v)",
		e.RowID, e.ColumnID, e.Expected, e.Observed, e.Attempts, e.Elapsed.Round(time.Millisecond))
}

func (e *ConsistencyTimeoutError) Unwrap() error { return e.Err }

func withCause(msg string, err error) string {
	if err == nil {
		return msg
	}
	return msg + ": " + err.Error()
}

// IsNotFoundError reports whether err is a 404 or one of the lookup
// failures raised by the entity graph.
func IsNotFoundError(err error) bool {
	if httpx.IsNotFoundError(err) {
		return true
	}
	var (
		docErr *DocumentNotFoundError
		tblErr *TableNotFoundError
		colErr *ColumnNotFoundError
		rowErr *RowNotFoundError
	)
	return errors.As(err, &docErr) || errors.As(err, &tblErr) || errors.As(err, &colErr) || errors.As(err, &rowErr)
}

// IsCodaError returns true if err carries an HTTP level API error.
func IsCodaError(err error) bool {
	_, ok := httpx.AsAPIError(err)
	return ok
}

// AsCodaError extracts the underlying API error.
func AsCodaError(err error) (*APIError, bool) {
	return httpx.AsAPIError(err)
}

// IsRateLimitError reports whether the server answered 429.
func IsRateLimitError(err error) bool {
	apiErr, ok := httpx.AsAPIError(err)
	return ok && apiErr.IsRateLimited()
}

// IsAuthenticationError reports whether the server rejected the token.
func IsAuthenticationError(err error) bool {
	apiErr, ok := httpx.AsAPIError(err)
	return ok && apiErr.IsUnauthorized()
}

// notFoundAs converts a 404 or an empty response into the error built by
// wrap, leaving every other error untouched.
func notFoundAs(err error, wrap func(error) error) error {
	if err == nil {
		return nil
	}
	if httpx.IsNotFoundError(err) || errors.Is(err, errEmptyResponse) {
		return wrap(err)
	}
	return err
}
