package codaio

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Keys accepted by ParseRowFilter.
const (
	FilterColumnID   = "column_id"
	FilterColumnName = "column_name"
	FilterValue      = "value"
)

// RowFilter selects rows whose cell in one column equals Value. Exactly
// one of ColumnID and ColumnName must be set.
type RowFilter struct {
	ColumnID   string
	ColumnName string
	Value      any
}

// ParseRowFilter builds a RowFilter from a loosely typed map with the keys
// column_id or column_name, and value.
func ParseRowFilter(m map[string]any) (RowFilter, error) {
	var f RowFilter
	value, ok := m[FilterValue]
	if !ok {
		return f, &InvalidFilterError{Err: fmt.Errorf("missing %q", FilterValue)}
	}
	f.Value = value

	for key, dst := range map[string]*string{FilterColumnID: &f.ColumnID, FilterColumnName: &f.ColumnName} {
		raw, ok := m[key]
		if !ok {
			continue
		}
		s, ok := raw.(string)
		if !ok {
			return f, &InvalidFilterError{Err: fmt.Errorf("%q must be a string, got %T", key, raw)}
		}
		*dst = s
	}
	return f, f.Validate()
}

// Validate reports a filter without a value or without exactly one column
// selector as an *InvalidFilterError.
func (f RowFilter) Validate() error {
	err := validation.ValidateStruct(&f,
		validation.Field(&f.Value, validation.NotNil.Error("is required")),
		validation.Field(&f.ColumnID,
			validation.When(f.ColumnName == "", validation.Required.Error("column id or column name is required")),
			validation.When(f.ColumnName != "", validation.Empty.Error("cannot be combined with a column name")),
		),
	)
	if err != nil {
		return &InvalidFilterError{Err: err}
	}
	return nil
}

// Query renders the filter in the row query syntax: the column id, or the
// quoted column name, then a colon and the JSON-encoded value.
//
//	RowFilter{ColumnID: "c1", Value: "bar"}.Query()     // c1:"bar"
//	RowFilter{ColumnName: "foo", Value: "bar"}.Query()  // "foo":"bar"
func (f RowFilter) Query() (string, error) {
	if err := f.Validate(); err != nil {
		return "", err
	}
	value, err := encodeJSON(f.Value)
	if err != nil {
		return "", &InvalidFilterError{Err: err}
	}
	if f.ColumnID != "" {
		return f.ColumnID + ":" + value, nil
	}
	name, err := encodeJSON(f.ColumnName)
	if err != nil {
		return "", &InvalidFilterError{Err: err}
	}
	return name + ":" + value, nil
}

func encodeJSON(v any) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return "", err
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}
