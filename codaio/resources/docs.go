package resources

import (
	"context"
	"fmt"
	"net/url"

	"github.com/blasterai/codaio-go/codaio/types"
	"github.com/blasterai/codaio-go/internal/httpx"
)

// DocsResource provides read access to docs. Creating and deleting docs is
// not exposed.
type DocsResource struct {
	base *Base
}

// NewDocsResource creates a new DocsResource.
func NewDocsResource(transport *httpx.Transport) *DocsResource {
	return &DocsResource{base: NewBase(transport)}
}

// ListDocsParams are parameters for listing docs.
type ListDocsParams struct {
	Query     *string `json:"query,omitempty"`
	IsOwner   *bool   `json:"isOwner,omitempty"`
	FolderID  *string `json:"folderId,omitempty"`
	Limit     *int    `json:"limit,omitempty"`
	PageToken *string `json:"pageToken,omitempty"`
}

// Get retrieves a doc's metadata.
func (r *DocsResource) Get(ctx context.Context, docID string) (*types.DocumentRecord, error) {
	var result types.DocumentRecord
	if err := r.base.Get(ctx, docPath(docID), nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// List retrieves the docs visible to the API token.
func (r *DocsResource) List(ctx context.Context, params *ListDocsParams) ([]types.DocumentRecord, error) {
	query := url.Values{}
	limit := 0
	if params != nil {
		if err := addQueryParam(query, "query", params.Query); err != nil {
			return nil, err
		}
		if err := addQueryParam(query, "isOwner", params.IsOwner); err != nil {
			return nil, err
		}
		if err := addQueryParam(query, "folderId", params.FolderID); err != nil {
			return nil, err
		}
		if err := addQueryParam(query, "pageToken", params.PageToken); err != nil {
			return nil, err
		}
		limit = limitOf(params.Limit)
	}

	coll, err := r.base.List(ctx, "/docs", query, limit)
	if err != nil {
		return nil, fmt.Errorf("list docs: %w", err)
	}
	return types.DecodeAll[types.DocumentRecord](coll.Items)
}
