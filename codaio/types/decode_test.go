package types

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode_Row(t *testing.T) {
	raw := map[string]any{
		"id":          "i-abc",
		"type":        "row",
		"href":        "https://coda.io/apis/v1/docs/d/tables/t/rows/i-abc",
		"name":        "Alpha",
		"index":       float64(3),
		"browserLink": "https://coda.io/d/_dd#_rui-abc",
		"createdAt":   "2018-04-11T00:18:57.946Z",
		"updatedAt":   "2018-04-11T00:18:57.946Z",
		"values":      map[string]any{"c-1": "Alpha", "c-2": float64(5)},
		"unknownKey":  "ignored",
	}

	var row RowRecord
	require.NoError(t, Decode(raw, &row))

	assert.Equal(t, "i-abc", row.ID)
	assert.Equal(t, 3, row.Index)
	assert.Equal(t, map[string]any{"c-1": "Alpha", "c-2": float64(5)}, row.Values)
	assert.Equal(t, time.Date(2018, 4, 11, 0, 18, 57, 946000000, time.UTC), row.CreatedAt.UTC())
}

func TestDecode_Table(t *testing.T) {
	raw := map[string]any{
		"id":        "grid-1",
		"name":      "Main",
		"tableType": "table",
		"rowCount":  float64(12),
		"displayColumn": map[string]any{
			"id": "c-1", "type": "column", "href": "h",
		},
		"sorts": []any{
			map[string]any{"column": map[string]any{"id": "c-2"}, "direction": "descending"},
		},
		"layout":    "default",
		"createdAt": "2020-01-02 15:04:05",
	}

	var table TableRecord
	require.NoError(t, Decode(raw, &table))

	assert.Equal(t, 12, table.RowCount)
	require.NotNil(t, table.DisplayColumn)
	assert.Equal(t, "c-1", table.DisplayColumn.ID)
	require.Len(t, table.Sorts, 1)
	assert.Equal(t, "c-2", table.Sorts[0].Column.ID)
	assert.Equal(t, "descending", table.Sorts[0].Direction)
	assert.Equal(t, 2020, table.CreatedAt.Year())
	assert.True(t, table.UpdatedAt.IsZero())
}

func TestDecode_MissingRequiredKeys(t *testing.T) {
	var col ColumnRecord
	err := Decode(map[string]any{"type": "column", "name": nil}, &col)
	require.Error(t, err)

	var decodeErr *DecodeError
	require.True(t, errors.As(err, &decodeErr))
	assert.Equal(t, "ColumnRecord", decodeErr.Record)
	assert.Equal(t, []string{"id", "name"}, decodeErr.Missing)
	assert.Contains(t, err.Error(), "missing required keys id, name")
}

func TestDecode_WrongType(t *testing.T) {
	var col ColumnRecord
	err := Decode(map[string]any{"id": "c-1", "name": "Name", "display": "yes"}, &col)
	require.Error(t, err)
	var decodeErr *DecodeError
	assert.ErrorAs(t, err, &decodeErr)
	assert.Empty(t, decodeErr.Missing)
}

func TestDecode_BadTimestamp(t *testing.T) {
	var doc DocumentRecord
	err := Decode(map[string]any{"id": "d", "name": "n", "createdAt": "not a date"}, &doc)
	assert.Error(t, err)
}

func TestDecodeAll(t *testing.T) {
	cols, err := DecodeAll[ColumnRecord]([]map[string]any{
		{"id": "c-1", "name": "A", "display": true},
		{"id": "c-2", "name": "B", "calculated": true, "formula": "thisRow.A"},
	})
	require.NoError(t, err)
	require.Len(t, cols, 2)
	assert.True(t, cols[0].Display)
	assert.True(t, cols[1].Calculated)
	assert.Equal(t, "thisRow.A", cols[1].Formula)

	_, err = DecodeAll[ColumnRecord]([]map[string]any{
		{"id": "c-1", "name": "A"},
		{"name": "no id"},
		{"id": "c-3"},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "item 1")
	assert.Contains(t, err.Error(), "item 2")
}

func TestMutationStatus_Accepted(t *testing.T) {
	assert.True(t, (&MutationStatus{Status: 202}).Accepted())
	assert.True(t, (&MutationStatus{Status: 200}).Accepted())
	assert.False(t, (&MutationStatus{Status: 0}).Accepted())
}
