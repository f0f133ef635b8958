// Package source defines the inbound data port and its adapters: where raw
// tables come from before normalization.
package source

import (
	"context"

	"masarif/internal/core"
)

// TableReader fetches the raw table for one role. Implementations own
// transport concerns (HTTP, filesystem); they never parse amounts or dates.
type TableReader interface {
	ReadTable(ctx context.Context, role core.Role) (core.RawTable, error)
}
