package resources

import (
	"context"

	"github.com/blasterai/codaio-go/codaio/types"
	"github.com/blasterai/codaio-go/internal/httpx"
)

// ColumnsResource provides access to the columns of a table.
type ColumnsResource struct {
	base *Base
}

// NewColumnsResource creates a new ColumnsResource.
func NewColumnsResource(transport *httpx.Transport) *ColumnsResource {
	return &ColumnsResource{base: NewBase(transport)}
}

// List retrieves every column of a table, in table order.
func (r *ColumnsResource) List(ctx context.Context, docID, tableIDOrName string) ([]types.ColumnRecord, error) {
	coll, err := r.base.List(ctx, docPath(docID, "tables", tableIDOrName, "columns"), nil, 0)
	if err != nil {
		return nil, err
	}
	return types.DecodeAll[types.ColumnRecord](coll.Items)
}

// Get retrieves a column by id or name.
func (r *ColumnsResource) Get(ctx context.Context, docID, tableIDOrName, columnIDOrName string) (*types.ColumnRecord, error) {
	var result types.ColumnRecord
	if err := r.base.Get(ctx, docPath(docID, "tables", tableIDOrName, "columns", columnIDOrName), nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
