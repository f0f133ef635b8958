// Package report implements the filtering and aggregation stage of the
// pipeline: period selection over normalized datasets, ranked category
// totals and merged monthly income/expense summaries.
package report

import (
	"masarif/internal/core"
)

// AllDays is the sentinel day value meaning "every day of the month".
const AllDays = 0

// FilterRange returns the records whose date falls within [start, end],
// inclusive on both bounds. Comparison is date-only. An empty result is a
// valid renderable state, not an error.
func FilterRange(ds core.Dataset, start, end core.Date) core.Dataset {
	out := emptyLike(ds)
	for _, r := range ds.Records {
		if r.Date.Before(start.Time) || r.Date.After(end.Time) {
			continue
		}
		out.Records = append(out.Records, r)
	}
	return out
}

// FilterPeriod returns the records matching year and month exactly. When
// day is not AllDays it must match exactly too.
func FilterPeriod(ds core.Dataset, year, month, day int) core.Dataset {
	out := emptyLike(ds)
	for _, r := range ds.Records {
		if r.Year != year || r.Month != month {
			continue
		}
		if day != AllDays && r.Day != day {
			continue
		}
		out.Records = append(out.Records, r)
	}
	return out
}

// emptyLike keeps role, schema and diagnostics while starting from zero
// records, so filtered datasets stay self-describing.
func emptyLike(ds core.Dataset) core.Dataset {
	return core.Dataset{
		Role:    ds.Role,
		Columns: ds.Columns,
		Dropped: ds.Dropped,
		Records: []core.Record{},
	}
}
