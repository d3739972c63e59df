package codaio

import (
	"context"
	"fmt"

	"github.com/blasterai/codaio-go/codaio/types"
)

// Table is a table or view of a Document.
//
// Columns are fetched once and cached for the lifetime of the Table value;
// rows are fetched on every call. Two Table values for the same remote
// table do not share their column cache.
type Table struct {
	types.TableRecord

	doc *Document

	// nil until the first Columns call
	columns     []*Column
	columnIndex map[string]*Column
}

func newTable(doc *Document, rec types.TableRecord) *Table {
	return &Table{TableRecord: rec, doc: doc}
}

// Document returns the doc the table belongs to.
func (t *Table) Document() *Document {
	return t.doc
}

func (t *Table) client() *Client {
	return t.doc.client
}

// Refresh re-reads the table's metadata and drops the column cache.
func (t *Table) Refresh(ctx context.Context) error {
	rec, err := t.client().tables.Get(ctx, t.doc.ID, t.ID)
	if err != nil {
		return notFoundAs(err, func(err error) error {
			return &TableNotFoundError{DocumentID: t.doc.ID, Table: t.ID, Err: err}
		})
	}
	t.TableRecord = *rec
	t.resetColumns()
	return nil
}

func (t *Table) resetColumns() {
	t.columns = nil
	t.columnIndex = nil
}

// Columns returns the table's columns in table order. Only the first call
// hits the network.
func (t *Table) Columns(ctx context.Context) ([]*Column, error) {
	if t.columns != nil {
		return t.columns, nil
	}

	records, err := t.client().columns.List(ctx, t.doc.ID, t.ID)
	if err != nil {
		return nil, notFoundAs(err, func(err error) error {
			return &TableNotFoundError{DocumentID: t.doc.ID, Table: t.ID, Err: err}
		})
	}
	columns := make([]*Column, len(records))
	index := make(map[string]*Column, len(records))
	for i, rec := range records {
		col := &Column{ColumnRecord: rec, table: t}
		columns[i] = col
		index[rec.ID] = col
	}
	t.columns = columns
	t.columnIndex = index
	return columns, nil
}

// Column returns the column with the given id, in O(1) once the column
// list is cached.
func (t *Table) Column(ctx context.Context, columnID string) (*Column, error) {
	if _, err := t.Columns(ctx); err != nil {
		return nil, err
	}
	if col, ok := t.columnIndex[columnID]; ok {
		return col, nil
	}
	return nil, &ColumnNotFoundError{TableID: t.ID, Column: columnID}
}

// ColumnByName returns the only column called name. Names are not unique
// in Coda: prefer Column.
func (t *Table) ColumnByName(ctx context.Context, name string) (*Column, error) {
	columns, err := t.Columns(ctx)
	if err != nil {
		return nil, err
	}
	var matches []*Column
	for _, col := range columns {
		if col.Name == name {
			matches = append(matches, col)
		}
	}
	switch len(matches) {
	case 0:
		return nil, &ColumnNotFoundError{TableID: t.ID, Column: name}
	case 1:
		return matches[0], nil
	default:
		ids := make([]string, len(matches))
		for i, col := range matches {
			ids[i] = col.ID
		}
		return nil, &AmbiguousNameError{Kind: "column", Name: name, Matches: ids}
	}
}

// resolveColumns maps column ids to cached columns. Ids unknown to the
// cache trigger one reload, since the column may have been added after
// the cache was filled.
func (t *Table) resolveColumns(ctx context.Context, ids []string) (map[string]*Column, error) {
	if _, err := t.Columns(ctx); err != nil {
		return nil, err
	}
	if missing := t.unknownColumns(ids); len(missing) > 0 {
		t.client().log("reloading columns", "table", t.ID, "unknown", missing)
		t.resetColumns()
		if _, err := t.Columns(ctx); err != nil {
			return nil, err
		}
		if missing = t.unknownColumns(ids); len(missing) > 0 {
			return nil, &ColumnNotFoundError{TableID: t.ID, Column: missing[0]}
		}
	}
	resolved := make(map[string]*Column, len(ids))
	for _, id := range ids {
		resolved[id] = t.columnIndex[id]
	}
	return resolved, nil
}

func (t *Table) unknownColumns(ids []string) []string {
	var missing []string
	for _, id := range ids {
		if _, ok := t.columnIndex[id]; !ok {
			missing = append(missing, id)
		}
	}
	return missing
}

// Rows fetches every row of the table. Each call hits the network.
func (t *Table) Rows(ctx context.Context) ([]*Row, error) {
	page, err := t.ListRows(ctx, nil)
	if err != nil {
		return nil, err
	}
	return page.Rows, nil
}

// RowPage is one fetch of rows. NextPageToken is only set when the fetch
// was bounded by a limit and more rows exist.
type RowPage struct {
	Rows          []*Row
	NextPageToken string
}

// ListRows fetches rows with the given parameters. Without a limit every
// page is followed. Row values are always keyed by column id.
func (t *Table) ListRows(ctx context.Context, params *types.ListRowsParams) (*RowPage, error) {
	p := types.ListRowsParams{}
	if params != nil {
		p = *params
	}
	p.UseColumnNames = types.Bool(false)

	list, err := t.client().rows.List(ctx, t.doc.ID, t.ID, &p)
	if err != nil {
		return nil, notFoundAs(err, func(err error) error {
			return &TableNotFoundError{DocumentID: t.doc.ID, Table: t.ID, Err: err}
		})
	}
	rows := make([]*Row, len(list.Rows))
	for i, rec := range list.Rows {
		rows[i] = newRow(t, rec)
	}
	return &RowPage{Rows: rows, NextPageToken: list.NextPageToken}, nil
}

// Row fetches one row by id or name.
func (t *Table) Row(ctx context.Context, rowIDOrName string) (*Row, error) {
	rec, err := t.client().rows.Get(ctx, t.doc.ID, t.ID, rowIDOrName)
	if err != nil {
		return nil, notFoundAs(err, func(err error) error {
			return &RowNotFoundError{TableID: t.ID, Row: rowIDOrName, Err: err}
		})
	}
	return newRow(t, *rec), nil
}

// FindRows returns the rows matching filter, or an empty slice.
func (t *Table) FindRows(ctx context.Context, filter RowFilter) ([]*Row, error) {
	query, err := filter.Query()
	if err != nil {
		return nil, err
	}
	page, err := t.ListRows(ctx, &types.ListRowsParams{Query: types.String(query)})
	if err != nil {
		return nil, fmt.Errorf("find rows %s: %w", query, err)
	}
	return page.Rows, nil
}

// FindRowsByColumnIDAndValue returns the rows whose columnID cell equals value.
func (t *Table) FindRowsByColumnIDAndValue(ctx context.Context, columnID string, value any) ([]*Row, error) {
	return t.FindRows(ctx, RowFilter{ColumnID: columnID, Value: value})
}

// FindRowsByColumnNameAndValue returns the rows whose cell in the column
// called columnName equals value.
func (t *Table) FindRowsByColumnNameAndValue(ctx context.Context, columnName string, value any) ([]*Row, error) {
	return t.FindRows(ctx, RowFilter{ColumnName: columnName, Value: value})
}

// UpdateRow writes cells to one row and returns once the server queued
// the write. The change may not be visible to reads yet.
func (t *Table) UpdateRow(ctx context.Context, rowIDOrName string, cells ...CellEdit) (*MutationStatus, error) {
	status, err := t.client().rows.Update(ctx, t.doc.ID, t.ID, rowIDOrName, types.RowEdit{Cells: cells})
	if err != nil {
		return nil, notFoundAs(err, func(err error) error {
			return &RowNotFoundError{TableID: t.ID, Row: rowIDOrName, Err: err}
		})
	}
	return status, nil
}

// UpsertRow inserts one row, or updates the rows matching every key
// column. It returns once the server queued the write.
func (t *Table) UpsertRow(ctx context.Context, cells []CellEdit, keyColumns ...string) (*MutationStatus, error) {
	return t.UpsertRows(ctx, [][]CellEdit{cells}, keyColumns...)
}

// UpsertRows inserts or updates several rows in one request.
func (t *Table) UpsertRows(ctx context.Context, rows [][]CellEdit, keyColumns ...string) (*MutationStatus, error) {
	req := &types.UpsertRowsRequest{
		Rows:       make([]types.RowEdit, len(rows)),
		KeyColumns: keyColumns,
	}
	for i, cells := range rows {
		req.Rows[i] = types.RowEdit{Cells: cells}
	}
	status, err := t.client().rows.Upsert(ctx, t.doc.ID, t.ID, req)
	if err != nil {
		return nil, notFoundAs(err, func(err error) error {
			return &TableNotFoundError{DocumentID: t.doc.ID, Table: t.ID, Err: err}
		})
	}
	return status, nil
}

// DeleteRow deletes one row by id or name.
func (t *Table) DeleteRow(ctx context.Context, rowIDOrName string) (*MutationStatus, error) {
	status, err := t.client().rows.Delete(ctx, t.doc.ID, t.ID, rowIDOrName)
	if err != nil {
		return nil, notFoundAs(err, func(err error) error {
			return &RowNotFoundError{TableID: t.ID, Row: rowIDOrName, Err: err}
		})
	}
	return status, nil
}

// DeleteRows deletes several rows by id in one request.
func (t *Table) DeleteRows(ctx context.Context, rowIDs ...string) (*MutationStatus, error) {
	return t.client().rows.DeleteRows(ctx, t.doc.ID, t.ID, rowIDs)
}
