package resources

import (
	"context"
	"net/url"

	"github.com/blasterai/codaio-go/codaio/types"
	"github.com/blasterai/codaio-go/internal/httpx"
)

// TablesResource provides access to the tables and views of a doc.
type TablesResource struct {
	base *Base
}

// NewTablesResource creates a new TablesResource.
func NewTablesResource(transport *httpx.Transport) *TablesResource {
	return &TablesResource{base: NewBase(transport)}
}

// List retrieves the tables of a doc.
func (r *TablesResource) List(ctx context.Context, docID string, params *types.ListTablesParams) ([]types.TableRecord, error) {
	query := url.Values{}
	limit := 0
	if params != nil {
		if err := addQueryParam(query, "tableTypes", params.TableTypes); err != nil {
			return nil, err
		}
		if err := addQueryParam(query, "pageToken", params.PageToken); err != nil {
			return nil, err
		}
		limit = limitOf(params.Limit)
	}

	coll, err := r.base.List(ctx, docPath(docID, "tables"), query, limit)
	if err != nil {
		return nil, err
	}
	return types.DecodeAll[types.TableRecord](coll.Items)
}

// Get retrieves a table by id or name.
func (r *TablesResource) Get(ctx context.Context, docID, tableIDOrName string) (*types.TableRecord, error) {
	var result types.TableRecord
	if err := r.base.Get(ctx, docPath(docID, "tables", tableIDOrName), nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
