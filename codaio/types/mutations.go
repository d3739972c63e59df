package types

import "net/http"

// CellEdit sets one column of a row. Column is a column id or name.
type CellEdit struct {
	Column string `json:"column"`
	Value  any    `json:"value"`
}

// RowEdit is the set of cells written to one row.
type RowEdit struct {
	Cells []CellEdit `json:"cells"`
}

// UpdateRowRequest is the body of PUT .../rows/{rowIdOrName}.
type UpdateRowRequest struct {
	Row RowEdit `json:"row"`
}

// UpsertRowsRequest is the body of POST .../rows. Rows matching every
// KeyColumns value are updated, others inserted.
type UpsertRowsRequest struct {
	Rows       []RowEdit `json:"rows"`
	KeyColumns []string  `json:"keyColumns,omitempty"`
}

// DeleteRowsRequest is the body of DELETE .../rows.
type DeleteRowsRequest struct {
	RowIDs []string `json:"rowIds"`
}

// MutationStatus acknowledges an accepted write. The write is applied
// asynchronously; Status is the HTTP status (202 when queued).
type MutationStatus struct {
	Status      int      `json:"status"`
	RequestID   string   `json:"requestId"`
	ID          string   `json:"id,omitempty"`
	AddedRowIDs []string `json:"addedRowIds,omitempty"`
	RowIDs      []string `json:"rowIds,omitempty"`
}

// RequiredKeys implements Record.
func (MutationStatus) RequiredKeys() []string { return nil }

// Accepted reports whether the server queued the write.
func (m *MutationStatus) Accepted() bool {
	return m.Status == http.StatusAccepted || (m.Status >= 200 && m.Status < 300)
}

// ListRowsParams are parameters for listing rows.
type ListRowsParams struct {
	// Query filters rows, in the form <column-id-or-quoted-name>:<json-value>.
	Query *string `json:"query,omitempty"`
	// SortBy is "createdAt", "natural" or "updatedAt".
	SortBy *string `json:"sortBy,omitempty"`
	// UseColumnNames keys row values by column name instead of id.
	UseColumnNames *bool `json:"useColumnNames,omitempty"`
	// ValueFormat is "simple", "simpleWithArrays" or "rich".
	ValueFormat *string `json:"valueFormat,omitempty"`
	VisibleOnly *bool   `json:"visibleOnly,omitempty"`
	// Limit bounds the fetch to a single page of at most Limit rows.
	Limit     *int    `json:"limit,omitempty"`
	PageToken *string `json:"pageToken,omitempty"`
}

// ListTablesParams are parameters for listing tables.
type ListTablesParams struct {
	// TableTypes is "table", "view" or both comma separated.
	TableTypes *string `json:"tableTypes,omitempty"`
	Limit      *int    `json:"limit,omitempty"`
	PageToken  *string `json:"pageToken,omitempty"`
}
