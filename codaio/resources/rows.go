package resources

import (
	"context"
	"net/url"
	"strconv"

	"github.com/blasterai/codaio-go/codaio/types"
	"github.com/blasterai/codaio-go/internal/httpx"
)

// RowsResource provides access to the rows of a table.
//
// Writes are applied asynchronously by the server: Update, Upsert and
// Delete return as soon as the mutation is queued.
type RowsResource struct {
	base *Base
}

// NewRowsResource creates a new RowsResource.
func NewRowsResource(transport *httpx.Transport) *RowsResource {
	return &RowsResource{base: NewBase(transport)}
}

// RowList is the result of a row listing.
type RowList struct {
	Rows []types.RowRecord
	// NextPageToken is only set for a bounded (Limit) fetch that has more rows.
	NextPageToken string
}

// List retrieves rows. Without params.Limit every page is fetched; row
// values are keyed by column id unless UseColumnNames is set.
func (r *RowsResource) List(ctx context.Context, docID, tableIDOrName string, params *types.ListRowsParams) (*RowList, error) {
	if params == nil {
		params = &types.ListRowsParams{}
	}
	query := url.Values{}
	useNames := false
	if params.UseColumnNames != nil {
		useNames = *params.UseColumnNames
	}
	query.Set("useColumnNames", strconv.FormatBool(useNames))
	for _, p := range []struct {
		name  string
		value any
	}{
		{"query", params.Query},
		{"sortBy", params.SortBy},
		{"valueFormat", params.ValueFormat},
		{"visibleOnly", params.VisibleOnly},
		{"pageToken", params.PageToken},
	} {
		if err := addQueryParam(query, p.name, p.value); err != nil {
			return nil, err
		}
	}

	coll, err := r.base.List(ctx, docPath(docID, "tables", tableIDOrName, "rows"), query, limitOf(params.Limit))
	if err != nil {
		return nil, err
	}
	rows, err := types.DecodeAll[types.RowRecord](coll.Items)
	if err != nil {
		return nil, err
	}
	result := &RowList{Rows: rows}
	if token, ok := coll.Body[httpx.NextPageTokenKey].(string); ok {
		result.NextPageToken = token
	}
	return result, nil
}

// Get retrieves a row by id or name.
func (r *RowsResource) Get(ctx context.Context, docID, tableIDOrName, rowIDOrName string) (*types.RowRecord, error) {
	var result types.RowRecord
	query := url.Values{"useColumnNames": []string{"false"}}
	if err := r.base.Get(ctx, docPath(docID, "tables", tableIDOrName, "rows", rowIDOrName), query, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Update replaces the given cells of one row.
func (r *RowsResource) Update(ctx context.Context, docID, tableIDOrName, rowIDOrName string, row types.RowEdit) (*types.MutationStatus, error) {
	return r.base.Put(ctx, docPath(docID, "tables", tableIDOrName, "rows", rowIDOrName), &types.UpdateRowRequest{Row: row})
}

// Upsert inserts rows, or updates those matching req.KeyColumns.
func (r *RowsResource) Upsert(ctx context.Context, docID, tableIDOrName string, req *types.UpsertRowsRequest) (*types.MutationStatus, error) {
	return r.base.Post(ctx, docPath(docID, "tables", tableIDOrName, "rows"), req)
}

// Delete removes one row.
func (r *RowsResource) Delete(ctx context.Context, docID, tableIDOrName, rowIDOrName string) (*types.MutationStatus, error) {
	return r.base.Delete(ctx, docPath(docID, "tables", tableIDOrName, "rows", rowIDOrName), nil)
}

// DeleteRows removes several rows in one request.
func (r *RowsResource) DeleteRows(ctx context.Context, docID, tableIDOrName string, rowIDs []string) (*types.MutationStatus, error) {
	return r.base.Delete(ctx, docPath(docID, "tables", tableIDOrName, "rows"), &types.DeleteRowsRequest{RowIDs: rowIDs})
}
