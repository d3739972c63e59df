package codaio

import (
	"bytes"
	"encoding/json"
	"reflect"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
)

// valuesEqual compares two cell values in the JSON value model, so that
// e.g. int(3) written by the caller matches the float64 3 decoded from a
// response. A null and an empty string both mean an empty cell, and NaN
// matches NaN.
func valuesEqual(a, b any) bool {
	va, errA := cellValue(a)
	vb, errB := cellValue(b)
	if errA != nil || errB != nil {
		return reflect.DeepEqual(a, b)
	}
	return proto.Equal(va, vb)
}

// cellValue converts v to a structpb value. Types structpb does not know
// (typed slices and maps, structs, json.Number) go through a JSON round trip
// first.
func cellValue(v any) (*structpb.Value, error) {
	pv, err := structpb.NewValue(v)
	if err != nil {
		nv, jerr := normalizeValue(v)
		if jerr != nil {
			return nil, jerr
		}
		if pv, err = structpb.NewValue(nv); err != nil {
			return nil, err
		}
	}
	if _, isNull := pv.GetKind().(*structpb.Value_NullValue); isNull {
		return structpb.NewStringValue(""), nil
	}
	return pv, nil
}

// normalizeValue round-trips v through JSON.
func normalizeValue(v any) (any, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var out any
	dec := json.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&out); err != nil {
		return nil, err
	}
	return out, nil
}
