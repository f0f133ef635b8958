// Package services wires the pipeline together: cached fetch, then
// normalization, then filtering and aggregation on demand.
package services

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"masarif/internal/core"
	"masarif/internal/normalize"
	"masarif/internal/report"
	"masarif/internal/source"
)

// Refresher is implemented by sources whose cached data can be discarded,
// either wholesale or one role at a time. The plain adapters (sheets, csv,
// memory) have nothing to discard.
type Refresher interface {
	Invalidate(role core.Role)
	InvalidateAll()
}

// Filter narrows a dataset to a date range or a calendar period. Range
// fields win when set; otherwise a non-zero Year selects period mode: the
// whole year when Month is 0, the whole month when Day is 0. The zero
// Filter selects everything.
type Filter struct {
	From  core.Date
	To    core.Date
	Year  int
	Month int
	Day   int
}

// Apply runs the filter over a dataset.
func (f Filter) Apply(ds core.Dataset) core.Dataset {
	switch {
	case !f.From.IsZero() || !f.To.IsZero():
		from, to := f.From, f.To
		if from.IsZero() {
			from = core.NewDate(1, 1, 1)
		}
		if to.IsZero() {
			to = core.NewDate(9999, 12, 31)
		}
		return report.FilterRange(ds, from, to)
	case f.Year != 0 && f.Month == 0:
		return report.FilterRange(ds, core.NewDate(f.Year, 1, 1), core.NewDate(f.Year, 12, 31))
	case f.Year != 0:
		return report.FilterPeriod(ds, f.Year, f.Month, f.Day)
	default:
		return ds
	}
}

// Dashboard serves every read the reporting UI needs. It holds no dataset
// state of its own: each call rebuilds from the (cached) raw tables.
type Dashboard struct {
	reader          source.TableReader
	normalizer      *normalize.Normalizer
	categoryColumns map[core.Role]string
}

// NewDashboard creates the service. categoryColumns names the default
// grouping column per role, used when a caller does not pick one.
func NewDashboard(reader source.TableReader, normalizer *normalize.Normalizer, categoryColumns map[core.Role]string) *Dashboard {
	return &Dashboard{
		reader:          reader,
		normalizer:      normalizer,
		categoryColumns: categoryColumns,
	}
}

// Dataset fetches and normalizes the table for one role.
func (d *Dashboard) Dataset(ctx context.Context, role core.Role) (core.Dataset, error) {
	raw, err := d.reader.ReadTable(ctx, role)
	if err != nil {
		return core.Dataset{}, err
	}
	return d.normalizer.Normalize(ctx, raw, role)
}

// Datasets loads both roles, fetching them concurrently.
func (d *Dashboard) Datasets(ctx context.Context) (expenses, income core.Dataset, err error) {
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		expenses, err = d.Dataset(gctx, core.Expenses)
		return err
	})
	g.Go(func() error {
		var err error
		income, err = d.Dataset(gctx, core.Income)
		return err
	})
	if err := g.Wait(); err != nil {
		return core.Dataset{}, core.Dataset{}, err
	}
	return expenses, income, nil
}

// Records returns the filtered records for one role.
func (d *Dashboard) Records(ctx context.Context, role core.Role, f Filter) (core.Dataset, error) {
	ds, err := d.Dataset(ctx, role)
	if err != nil {
		return core.Dataset{}, err
	}
	return f.Apply(ds), nil
}

// CategoryTotals groups the filtered records of one role by a category
// column and returns ranked totals. An empty "by" falls back to the role's
// configured default column.
func (d *Dashboard) CategoryTotals(ctx context.Context, role core.Role, by string, f Filter) ([]core.CategoryTotal, error) {
	ds, err := d.Dataset(ctx, role)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(by) == "" {
		by = d.categoryColumns[role]
	}
	if strings.TrimSpace(by) == "" {
		return nil, fmt.Errorf("no category column configured for role %s", role)
	}
	return report.GroupSum(f.Apply(ds), by)
}

// MonthlySummary merges the per-month totals of both roles.
func (d *Dashboard) MonthlySummary(ctx context.Context) ([]core.PeriodSummary, error) {
	expenses, income, err := d.Datasets(ctx)
	if err != nil {
		return nil, err
	}
	return report.MonthlySummary(income, expenses), nil
}

// Refresh discards cached raw tables so the next read refetches. A no-op
// when the underlying source is not cached.
func (d *Dashboard) Refresh() bool {
	if r, ok := d.reader.(Refresher); ok {
		r.InvalidateAll()
		return true
	}
	return false
}

// RefreshRole discards the cached raw table for a single role, leaving the
// other role's cache entry untouched.
func (d *Dashboard) RefreshRole(role core.Role) bool {
	if r, ok := d.reader.(Refresher); ok {
		r.Invalidate(role)
		return true
	}
	return false
}
