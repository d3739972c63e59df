package codaio

import (
	"context"
	"sort"

	"github.com/blasterai/codaio-go/codaio/types"
)

type (
	// CellEdit sets one column of a row; Column is a column id or name.
	CellEdit = types.CellEdit
	// MutationStatus acknowledges a queued write.
	MutationStatus = types.MutationStatus
)

// Row is a snapshot of one table row. It is built fresh on every fetch and
// goes stale as soon as the row is written; call Refresh to re-read it.
type Row struct {
	types.RowRecord

	table *Table
}

func newRow(t *Table, rec types.RowRecord) *Row {
	if rec.Values == nil {
		rec.Values = map[string]any{}
	}
	return &Row{RowRecord: rec, table: t}
}

// Table returns the table the row belongs to.
func (r *Row) Table() *Table {
	return r.table
}

// Value returns the raw value stored under columnID.
func (r *Row) Value(columnID string) (any, bool) {
	v, ok := r.Values[columnID]
	return v, ok
}

// Refresh re-reads the row in place.
func (r *Row) Refresh(ctx context.Context) error {
	fresh, err := r.table.Row(ctx, r.ID)
	if err != nil {
		return err
	}
	r.RowRecord = fresh.RowRecord
	return nil
}

// Update writes cells to the row without waiting for the change to be
// visible.
func (r *Row) Update(ctx context.Context, cells ...CellEdit) (*MutationStatus, error) {
	return r.table.UpdateRow(ctx, r.ID, cells...)
}

// Delete deletes the row.
func (r *Row) Delete(ctx context.Context) (*MutationStatus, error) {
	return r.table.DeleteRow(ctx, r.ID)
}

// Cells materializes one Cell per value of the row, in table column order.
// A value keyed by a column the table does not have is a
// *ColumnNotFoundError.
func (r *Row) Cells(ctx context.Context) ([]*Cell, error) {
	ids := make([]string, 0, len(r.Values))
	for id := range r.Values {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	if _, err := r.table.resolveColumns(ctx, ids); err != nil {
		return nil, err
	}
	columns, err := r.table.Columns(ctx)
	if err != nil {
		return nil, err
	}

	cells := make([]*Cell, 0, len(r.Values))
	for _, col := range columns {
		if v, ok := r.Values[col.ID]; ok {
			cells = append(cells, &Cell{Column: col, Row: r, Value: v})
		}
	}
	return cells, nil
}

// Cell returns the cell of the column with the given id.
func (r *Row) Cell(ctx context.Context, columnID string) (*Cell, error) {
	cols, err := r.table.resolveColumns(ctx, []string{columnID})
	if err != nil {
		return nil, err
	}
	return r.CellByColumn(cols[columnID]), nil
}

// CellByColumn returns the cell of col. col must belong to the row's table.
func (r *Row) CellByColumn(col *Column) *Cell {
	return &Cell{Column: col, Row: r, Value: r.Values[col.ID]}
}

// CellByColumnName returns the cell of the only column called name.
func (r *Row) CellByColumnName(ctx context.Context, name string) (*Cell, error) {
	col, err := r.table.ColumnByName(ctx, name)
	if err != nil {
		return nil, err
	}
	return r.CellByColumn(col), nil
}
