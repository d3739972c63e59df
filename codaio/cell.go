package codaio

import (
	"context"
	"errors"
	"time"

	"github.com/blasterai/codaio-go/codaio/types"
	"github.com/blasterai/codaio-go/internal/poll"
)

// Cell is the value of one Column in one Row. It is a view over the row's
// values, not a server-side resource.
type Cell struct {
	Column *Column
	Row    *Row
	Value  any
}

// Edit builds the cell edit writing value to this cell's column.
func (c *Cell) Edit(value any) CellEdit {
	return c.Column.Edit(value)
}

// SetValue writes value to the cell and blocks until a read of the row
// returns it. Reads are spaced by the client's poll interval; after
// MaxAttempts mismatching reads a *ConsistencyTimeoutError is returned.
// Read errors abort the wait. On success the cell and its row hold the
// observed state. Coda reports an empty cell as "", so a nil value is
// satisfied by an empty string.
func (c *Cell) SetValue(ctx context.Context, value any) error {
	table := c.Row.table
	client := table.client()

	if _, err := client.rows.Update(ctx, table.doc.ID, table.ID, c.Row.ID, types.RowEdit{
		Cells: []types.CellEdit{c.Edit(value)},
	}); err != nil {
		return notFoundAs(err, func(err error) error {
			return &RowNotFoundError{TableID: table.ID, Row: c.Row.ID, Err: err}
		})
	}

	var observed any
	policy := client.pollPolicy(func(attempt int) {
		client.log("cell value not visible yet", "row", c.Row.ID, "column", c.Column.ID, "attempt", attempt, "observed", observed)
	})

	start := time.Now()
	attempts, err := poll.Until(ctx, policy, func(ctx context.Context, _ int) (bool, error) {
		rec, err := client.rows.Get(ctx, table.doc.ID, table.ID, c.Row.ID)
		if err != nil {
			return false, notFoundAs(err, func(err error) error {
				return &RowNotFoundError{TableID: table.ID, Row: c.Row.ID, Err: err}
			})
		}
		observed = rec.Values[c.Column.ID]
		if !valuesEqual(observed, value) {
			return false, nil
		}
		c.Row.RowRecord = *rec
		return true, nil
	})

	var exhausted *poll.ExhaustedError
	if errors.As(err, &exhausted) {
		return &ConsistencyTimeoutError{
			RowID:    c.Row.ID,
			ColumnID: c.Column.ID,
			Expected: value,
			Observed: observed,
			Attempts: exhausted.Attempts,
			Elapsed:  exhausted.Elapsed,
			Err:      err,
		}
	}
	if err != nil {
		return err
	}

	client.log("cell value visible", "row", c.Row.ID, "column", c.Column.ID, "reads", attempts, "elapsed", time.Since(start))
	c.Value = observed
	return nil
}
