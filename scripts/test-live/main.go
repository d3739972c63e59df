// Package main runs a smoke suite against a live Coda doc.
//
// The target table is modified: rows are upserted, updated and deleted.
// Point it at a scratch table whose first two columns are plain text.
//
// Usage:
//
//	CODA_API_KEY=... CODA_DOC_ID=... CODA_TABLE=... go run ./scripts/test-live
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/hashicorp/go-hclog"

	"github.com/blasterai/codaio-go/codaio"
	"github.com/blasterai/codaio-go/internal/version"
)

var (
	docID   = os.Getenv("CODA_DOC_ID")
	tableID = os.Getenv("CODA_TABLE")
	verbose = os.Getenv("VERBOSE") == "1"
	prefix  = fmt.Sprintf("live-%d", time.Now().Unix())
)

type result struct {
	name   string
	passed bool
	err    string
}

var results []result

func run(name string, fn func() error) {
	if err := fn(); err != nil {
		results = append(results, result{name: name, err: err.Error()})
		fmt.Printf("  ✗ %s\n    Error: %v\n", name, err)
		return
	}
	results = append(results, result{name: name, passed: true})
	fmt.Printf("  ✓ %s\n", name)
}

// waitForRows re-runs a filtered read until it returns want rows. Upserts
// are asynchronous, so a read right after the write usually sees nothing.
func waitForRows(ctx context.Context, table *codaio.Table, columnID string, value any, want int) ([]*codaio.Row, error) {
	deadline := time.Now().Add(30 * time.Second)
	for {
		rows, err := table.FindRowsByColumnIDAndValue(ctx, columnID, value)
		if err != nil {
			return nil, err
		}
		if len(rows) == want {
			return rows, nil
		}
		if time.Now().After(deadline) {
			return nil, fmt.Errorf("found %d rows for %s=%v, want %d", len(rows), columnID, value, want)
		}
		time.Sleep(time.Second)
	}
}

func main() {
	if docID == "" || tableID == "" {
		fmt.Println("CODA_DOC_ID and CODA_TABLE are required")
		os.Exit(2)
	}

	opts := []codaio.Option{codaio.WithRateLimit(4, 2)}
	if verbose {
		opts = append(opts, codaio.WithLogger(hclog.New(&hclog.LoggerOptions{Name: "test-live", Level: hclog.Debug})))
	}
	client, err := codaio.NewClientFromEnvironment(opts...)
	if err != nil {
		fmt.Printf("create client: %v\n", err)
		os.Exit(2)
	}
	defer client.Close()

	fmt.Printf("%s against %s, doc %s, table %s\n\n", version.ShortUserAgent(), client.BaseURL(), docID, tableID)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	var (
		doc     *codaio.Document
		table   *codaio.Table
		columns []*codaio.Column
	)

	fmt.Println("Document")
	run("load document", func() (err error) {
		doc, err = client.Document(ctx, docID)
		return err
	})
	if doc == nil {
		os.Exit(1)
	}
	run("missing document", func() error {
		_, err := client.Document(ctx, "definitely-not-a-doc")
		var notFound *codaio.DocumentNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("expected DocumentNotFoundError, got %v", err)
		}
		return nil
	})
	run("list tables", func() error {
		tables, err := doc.Tables(ctx)
		if err != nil {
			return err
		}
		if len(tables) == 0 {
			return errors.New("doc has no tables")
		}
		return nil
	})

	fmt.Println("Table")
	run("open table", func() (err error) {
		table, err = doc.Table(ctx, tableID)
		return err
	})
	if table == nil {
		os.Exit(1)
	}
	run("columns", func() (err error) {
		columns, err = table.Columns(ctx)
		if err == nil && len(columns) < 2 {
			err = fmt.Errorf("need at least 2 columns, table has %d", len(columns))
		}
		return err
	})
	if len(columns) < 2 {
		os.Exit(1)
	}
	key, other := columns[0], columns[1]

	fmt.Println("Rows")
	run("upsert row and find it", func() error {
		value := prefix + "-single"
		status, err := table.UpsertRow(ctx, []codaio.CellEdit{key.Edit(value), other.Edit("first")})
		if err != nil {
			return err
		}
		if !status.Accepted() {
			return fmt.Errorf("status %d", status.Status)
		}
		rows, err := waitForRows(ctx, table, key.ID, value, 1)
		if err != nil {
			return err
		}
		cell, err := rows[0].Cell(ctx, other.ID)
		if err != nil {
			return err
		}
		if cell.Value != "first" {
			return fmt.Errorf("cell value %v", cell.Value)
		}
		return nil
	})
	run("upsert with key column updates in place", func() error {
		value := prefix + "-single"
		if _, err := table.UpsertRows(ctx, [][]codaio.CellEdit{{key.Edit(value), other.Edit("updated")}}, key.ID); err != nil {
			return err
		}
		deadline := time.Now().Add(30 * time.Second)
		for time.Now().Before(deadline) {
			rows, err := waitForRows(ctx, table, key.ID, value, 1)
			if err != nil {
				return err
			}
			if v, _ := rows[0].Value(other.ID); v == "updated" {
				return nil
			}
			time.Sleep(time.Second)
		}
		return errors.New("update never became visible")
	})
	run("set cell value", func() error {
		rows, err := waitForRows(ctx, table, key.ID, prefix+"-single", 1)
		if err != nil {
			return err
		}
		cell := rows[0].CellByColumn(other)
		if err := cell.SetValue(ctx, "via cell"); err != nil {
			return err
		}
		if err := rows[0].Refresh(ctx); err != nil {
			return err
		}
		if v, _ := rows[0].Value(other.ID); v != "via cell" {
			return fmt.Errorf("row reads %v after SetValue", v)
		}
		return nil
	})
	run("delete rows", func() error {
		rows, err := table.Rows(ctx)
		if err != nil {
			return err
		}
		var ids []string
		for _, row := range rows {
			if v, _ := row.Value(key.ID); v == prefix+"-single" {
				ids = append(ids, row.ID)
			}
		}
		if len(ids) == 0 {
			return errors.New("nothing to delete")
		}
		_, err = table.DeleteRows(ctx, ids...)
		if err != nil {
			return err
		}
		_, err = waitForRows(ctx, table, key.ID, prefix+"-single", 0)
		return err
	})

	failed := 0
	for _, r := range results {
		if !r.passed {
			failed++
		}
	}
	fmt.Printf("\n%d passed, %d failed\n", len(results)-failed, failed)
	if failed > 0 {
		os.Exit(1)
	}
}
