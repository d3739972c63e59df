package codaio

import (
	"context"

	"github.com/blasterai/codaio-go/codaio/types"
)

// Document is a Coda doc. Tables are fetched on demand and never cached
// by the Document.
type Document struct {
	types.DocumentRecord

	client *Client
}

// Client returns the client the document was loaded with.
func (d *Document) Client() *Client {
	return d.client
}

// Refresh re-reads the doc's metadata in place.
func (d *Document) Refresh(ctx context.Context) error {
	rec, err := d.client.docs.Get(ctx, d.ID)
	if err != nil {
		return notFoundAs(err, func(err error) error {
			return &DocumentNotFoundError{DocumentID: d.ID, Err: err}
		})
	}
	d.DocumentRecord = *rec
	return nil
}

// Tables lists every table and view of the doc.
func (d *Document) Tables(ctx context.Context) ([]*Table, error) {
	records, err := d.client.tables.List(ctx, d.ID, nil)
	if err != nil {
		return nil, err
	}
	tables := make([]*Table, len(records))
	for i, rec := range records {
		tables[i] = newTable(d, rec)
	}
	return tables, nil
}

// Table loads one table by id or name.
func (d *Document) Table(ctx context.Context, tableIDOrName string) (*Table, error) {
	rec, err := d.client.tables.Get(ctx, d.ID, tableIDOrName)
	if err != nil {
		return nil, notFoundAs(err, func(err error) error {
			return &TableNotFoundError{DocumentID: d.ID, Table: tableIDOrName, Err: err}
		})
	}
	return newTable(d, *rec), nil
}

// Sections lists the sections (pages) of the doc.
func (d *Document) Sections(ctx context.Context) ([]types.SectionRecord, error) {
	return d.client.sections.List(ctx, d.ID)
}

// Section loads one section by id or name.
func (d *Document) Section(ctx context.Context, sectionIDOrName string) (*types.SectionRecord, error) {
	return d.client.sections.Get(ctx, d.ID, sectionIDOrName)
}
