package normalize

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"masarif/internal/core"
)

type (
	// Fallbacks holds the positional fallback index per column role for one
	// dataset. NoFallback disables the degraded mode for that role.
	Fallbacks struct {
		Amount int
		Date   int
	}

	// Options configure a Normalizer.
	Options struct {
		// MinYear drops rows dated before the given year. Zero disables the
		// cutoff. Kept as explicit configuration rather than a hardcoded
		// policy.
		MinYear int

		// Fallbacks maps each table role to its positional fallbacks.
		// Missing roles get no fallback.
		Fallbacks map[core.Role]Fallbacks
	}

	// Normalizer turns raw tables into canonical datasets.
	Normalizer struct {
		opts Options
	}
)

// New creates a Normalizer with the given options.
func New(opts Options) *Normalizer {
	return &Normalizer{opts: opts}
}

// Normalize resolves the amount and date columns of a raw table, parses
// every row, and returns the canonical dataset for the role.
//
// Rows whose date cannot be parsed (or falls before the configured minimum
// year) are dropped and counted, never kept with a null date; the invariant
// len(Records)+Dropped == len(raw.Rows) always holds. Amounts that fail to
// parse become 0.0, never an error. When every row drops the result is an
// EmptyDatasetError; an absent table is ErrNoData.
func (n *Normalizer) Normalize(ctx context.Context, raw core.RawTable, role core.Role) (core.Dataset, error) {
	if raw.IsEmpty() {
		return core.Dataset{}, fmt.Errorf("%s: %w", role, core.ErrNoData)
	}

	fb, ok := n.opts.Fallbacks[role]
	if !ok {
		fb = Fallbacks{Amount: NoFallback, Date: NoFallback}
	}

	amountCol, err := ResolveColumn(raw.Columns, AmountColumn, fb.Amount)
	if err != nil {
		return core.Dataset{}, fmt.Errorf("%s: %w", role, err)
	}
	dateCol, err := ResolveColumn(raw.Columns, DateColumn, fb.Date)
	if err != nil {
		return core.Dataset{}, fmt.Errorf("%s: %w", role, err)
	}
	if amountCol.Fallback {
		slog.WarnContext(ctx, "Amount column resolved positionally", "role", role, "column", amountCol.Name, "index", amountCol.Index)
	}
	if dateCol.Fallback {
		slog.WarnContext(ctx, "Date column resolved positionally", "role", role, "column", dateCol.Name, "index", dateCol.Index)
	}

	retained := make([]string, 0, len(raw.Columns))
	for i, col := range raw.Columns {
		if i == amountCol.Index || i == dateCol.Index {
			continue
		}
		retained = append(retained, col)
	}

	ds := core.Dataset{
		Role:    role,
		Columns: retained,
		Records: make([]core.Record, 0, len(raw.Rows)),
	}
	passthrough := columnIndexes(raw.Columns, amountCol.Index, dateCol.Index)
	cutoff := 0
	for i := range raw.Rows {
		date, ok := ParseDate(raw.Cell(i, dateCol.Index))
		if !ok {
			ds.Dropped++
			continue
		}
		if n.opts.MinYear > 0 && date.Year() < n.opts.MinYear {
			ds.Dropped++
			cutoff++
			continue
		}

		rec := core.Record{
			Amount: ParseAmount(raw.Cell(i, amountCol.Index)),
			Date:   date,
			Extra:  make(map[string]string, len(retained)),
		}
		parts := core.DeriveCalendar(date)
		rec.Year, rec.Month, rec.Day, rec.PeriodKey = parts.Year, parts.Month, parts.Day, parts.PeriodKey

		for col, name := range passthrough {
			rec.Extra[name] = cellString(raw.Cell(i, col))
		}
		ds.Records = append(ds.Records, rec)
	}

	if len(ds.Records) == 0 && len(raw.Rows) > 0 {
		return core.Dataset{}, &core.EmptyDatasetError{Role: role, Rows: len(raw.Rows)}
	}
	if ds.Dropped > 0 {
		slog.InfoContext(ctx, "Dropped rows during normalization",
			"role", role, "dropped", ds.Dropped, "before_min_year", cutoff, "kept", len(ds.Records))
	}
	return ds, nil
}

// columnIndexes maps retained column index -> name, skipping the consumed
// amount and date columns.
func columnIndexes(columns []string, amountIdx, dateIdx int) map[int]string {
	out := make(map[int]string, len(columns))
	for i, name := range columns {
		if i == amountIdx || i == dateIdx {
			continue
		}
		out[i] = name
	}
	return out
}

func cellString(v any) string {
	if v == nil {
		return ""
	}
	return strings.TrimSpace(fmt.Sprint(v))
}
