// Package codaio provides top-level convenience functions for common operations.
//
// These functions provide shortcuts for the most common SDK operations.
package codaio

import (
	"context"
)

// CreateClient creates a new Coda client with default configuration.
//
// This is a convenience function equivalent to:
//
//	client, err := codaio.NewClient(codaio.WithAPIKey(apiKey))
func CreateClient(apiKey string) (*Client, error) {
	return NewClient(WithAPIKey(apiKey))
}

// OpenTable loads a doc and one of its tables.
//
// Example:
//
//	table, err := codaio.OpenTable(ctx, client, "AbCDeFGH", "Tasks")
//	if err != nil {
//		log.Fatal(err)
//	}
func OpenTable(ctx context.Context, client *Client, docID, tableIDOrName string) (*Table, error) {
	doc, err := client.Document(ctx, docID)
	if err != nil {
		return nil, err
	}
	return doc.Table(ctx, tableIDOrName)
}

// SetCell writes value to one cell and waits until the write is visible.
//
// Example:
//
//	err := codaio.SetCell(ctx, table, "i-cd3e1A", "c-Status", "Done")
func SetCell(ctx context.Context, table *Table, rowIDOrName, columnID string, value any) error {
	row, err := table.Row(ctx, rowIDOrName)
	if err != nil {
		return err
	}
	cell, err := row.Cell(ctx, columnID)
	if err != nil {
		return err
	}
	return cell.SetValue(ctx, value)
}

// RowValuesByName returns a row's values keyed by column name. Columns
// sharing a name collapse onto the last one in table order.
func RowValuesByName(ctx context.Context, row *Row) (map[string]any, error) {
	cells, err := row.Cells(ctx)
	if err != nil {
		return nil, err
	}
	out := make(map[string]any, len(cells))
	for _, cell := range cells {
		out[cell.Column.Name] = cell.Value
	}
	return out, nil
}
