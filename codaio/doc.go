// Package codaio provides a Go client for the Coda API.
//
// The package exposes Coda docs as a small object graph. A Document owns
// Tables, a Table owns Columns (cached) and Rows (fetched on every call),
// and a Row materializes Cells from its column-id keyed values. Every
// entity keeps a back-reference to its parent for navigation only.
//
// # Basic Usage
//
//	client, err := codaio.NewClient(
//		codaio.WithAPIKey("your-api-token"),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer client.Close()
//
//	doc, err := client.Document(ctx, "AbCDeFGH")
//	if err != nil {
//		log.Fatal(err)
//	}
//	table, err := doc.Table(ctx, "Tasks")
//	if err != nil {
//		log.Fatal(err)
//	}
//	rows, err := table.Rows(ctx)
//
// # Writes
//
// Coda applies writes asynchronously: a write request is acknowledged with
// 202 before the change is visible to reads. Table.UpdateRow,
// Table.UpsertRows and Table.DeleteRow return the acknowledgement right
// away. Cell.SetValue instead re-reads the row until the new value shows
// up:
//
//	cell, err := row.Cell(ctx, "c-Status")
//	if err != nil {
//		log.Fatal(err)
//	}
//	if err := cell.SetValue(ctx, "Done"); err != nil {
//		var timeout *codaio.ConsistencyTimeoutError
//		if errors.As(err, &timeout) {
//			fmt.Println("write still not visible after", timeout.Attempts, "reads")
//		}
//	}
//
// The wait is bounded by WithPollPolicy (100 reads, 300ms apart, by
// default) and by the context.
//
// # Configuration Options
//
//	client, err := codaio.NewClient(
//		codaio.WithAPIKey("..."),
//		codaio.WithBaseURL("https://coda.io/apis/v1"),
//		codaio.WithTimeout(30 * time.Second),
//		codaio.WithRateLimit(10, 5),
//		codaio.WithPollPolicy(codaio.PollPolicy{Interval: time.Second, MaxAttempts: 30}),
//		codaio.WithDebug(true),
//	)
//
// NewClientFromEnvironment reads CODA_API_KEY and CODA_API_ENDPOINT.
//
// # Error Handling
//
//	table, err := doc.Table(ctx, "Tasks")
//	if err != nil {
//		var notFound *codaio.TableNotFoundError
//		if errors.As(err, &notFound) {
//			fmt.Println("no table", notFound.Table)
//		} else if codaio.IsRateLimitError(err) {
//			fmt.Println("slow down")
//		}
//	}
package codaio
