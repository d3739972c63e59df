package resources

import (
	"context"

	"github.com/blasterai/codaio-go/codaio/types"
	"github.com/blasterai/codaio-go/internal/httpx"
)

// SectionsResource provides access to the sections of a doc.
type SectionsResource struct {
	base *Base
}

// NewSectionsResource creates a new SectionsResource.
func NewSectionsResource(transport *httpx.Transport) *SectionsResource {
	return &SectionsResource{base: NewBase(transport)}
}

// List retrieves every section of a doc.
func (r *SectionsResource) List(ctx context.Context, docID string) ([]types.SectionRecord, error) {
	coll, err := r.base.List(ctx, docPath(docID, "sections"), nil, 0)
	if err != nil {
		return nil, err
	}
	return types.DecodeAll[types.SectionRecord](coll.Items)
}

// Get retrieves a section by id or name.
func (r *SectionsResource) Get(ctx context.Context, docID, sectionIDOrName string) (*types.SectionRecord, error) {
	var result types.SectionRecord
	if err := r.base.Get(ctx, docPath(docID, "sections", sectionIDOrName), nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
