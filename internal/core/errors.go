package core

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNoData signals that the fetch collaborator delivered no raw table at
// all. Distinct from EmptyDatasetError: here there was nothing to normalize,
// not rows that all failed.
var ErrNoData = errors.New("no data available from source")

// ColumnNotFoundError reports that neither a name match nor a usable
// positional fallback exists for a required column role. It carries the
// columns actually present so the user can fix the source sheet.
type ColumnNotFoundError struct {
	Role      string // "amount" or "date"
	Available []string
}

func (e *ColumnNotFoundError) Error() string {
	return fmt.Sprintf("no %s column found; available columns: %s",
		e.Role, strings.Join(e.Available, ", "))
}

// UnknownColumnError reports an aggregation request against a category
// column the dataset does not retain.
type UnknownColumnError struct {
	Column    string
	Available []string
}

func (e *UnknownColumnError) Error() string {
	return fmt.Sprintf("unknown column %q; available columns: %s",
		e.Column, strings.Join(e.Available, ", "))
}

// EmptyDatasetError reports that every row of a raw table failed date
// parsing, leaving nothing to render. Surfaced to the user as a data-quality
// warning, distinct from a connectivity failure.
type EmptyDatasetError struct {
	Role Role
	Rows int
}

func (e *EmptyDatasetError) Error() string {
	return fmt.Sprintf("%s: all %d rows dropped (no parseable dates)", e.Role, e.Rows)
}
