package codaio

import "github.com/blasterai/codaio-go/codaio/types"

// Column is a column of a Table. Its id is stable and unique within the
// table.
type Column struct {
	types.ColumnRecord

	table *Table
}

// Table returns the table the column belongs to.
func (c *Column) Table() *Table {
	return c.table
}

// Edit builds the cell edit that sets this column to value.
func (c *Column) Edit(value any) CellEdit {
	return CellEdit{Column: c.ID, Value: value}
}
