// Package types provides the wire records of the Coda API.
//
// Records are decoded from raw JSON objects through an explicit schema:
// every record declares a fixed set of `json`-tagged fields, unknown keys
// are ignored and a record's required keys must be present.
//
//	var table types.TableRecord
//	if err := types.Decode(raw, &table); err != nil {
//		var decodeErr *types.DecodeError
//		if errors.As(err, &decodeErr) {
//			fmt.Println(decodeErr.Missing)
//		}
//	}
//
// Timestamps are accepted in any layout dateparse understands.
//
// # Optional Fields
//
// Optional request fields are represented as pointers. Helper functions are
// provided to create pointers to values:
//
//	params := &types.ListRowsParams{
//		Limit:       types.Int(50),
//		VisibleOnly: types.Bool(true),
//	}
package types
