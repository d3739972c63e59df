package types

import (
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/hashicorp/go-multierror"
	"github.com/mitchellh/mapstructure"
)

// Record is implemented by every decodable wire record.
type Record interface {
	// RequiredKeys lists the JSON keys that must be present.
	RequiredKeys() []string
}

// DecodeError reports a structurally invalid record.
type DecodeError struct {
	Record  string
	Missing []string
	Err     error
}

func (e *DecodeError) Error() string {
	if len(e.Missing) > 0 {
		return fmt.Sprintf("decode %s: missing required keys %s", e.Record, strings.Join(e.Missing, ", "))
	}
	return fmt.Sprintf("decode %s: %v", e.Record, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// Decode maps raw onto out, which must be a pointer to a Record.
func Decode(raw map[string]any, out Record) error {
	name := recordName(out)

	var missing *multierror.Error
	var missingKeys []string
	for _, key := range out.RequiredKeys() {
		if v, ok := raw[key]; !ok || v == nil {
			missingKeys = append(missingKeys, key)
			missing = multierror.Append(missing, fmt.Errorf("missing required key %q", key))
		}
	}
	if missing != nil {
		return &DecodeError{Record: name, Missing: missingKeys, Err: missing.ErrorOrNil()}
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:    "json",
		Result:     out,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(timeHook),
	})
	if err != nil {
		return &DecodeError{Record: name, Err: err}
	}
	if err := decoder.Decode(raw); err != nil {
		return &DecodeError{Record: name, Err: err}
	}
	return nil
}

// DecodeAll decodes every item, reporting all failures at once.
func DecodeAll[T any, PT interface {
	*T
	Record
}](items []map[string]any) ([]T, error) {
	out := make([]T, 0, len(items))
	var errs *multierror.Error
	for i, item := range items {
		var rec T
		if err := Decode(item, PT(&rec)); err != nil {
			errs = multierror.Append(errs, fmt.Errorf("item %d: %w", i, err))
			continue
		}
		out = append(out, rec)
	}
	if err := errs.ErrorOrNil(); err != nil {
		return nil, err
	}
	return out, nil
}

var timeType = reflect.TypeOf(time.Time{})

func timeHook(from reflect.Type, to reflect.Type, data any) (any, error) {
	if from.Kind() != reflect.String || to != timeType {
		return data, nil
	}
	s := data.(string)
	if s == "" {
		return time.Time{}, nil
	}
	return dateparse.ParseAny(s)
}

func recordName(r Record) string {
	t := reflect.TypeOf(r)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t.Name()
}
