package report

import (
	"sort"

	"masarif/internal/core"
)

// GroupSum groups a dataset by one of its retained columns and sums the
// amount per bucket. The result is sorted by total, descending; equal
// totals keep first-encountered category order. Requesting a column the
// dataset does not retain is an UnknownColumnError.
func GroupSum(ds core.Dataset, categoryColumn string) ([]core.CategoryTotal, error) {
	if !ds.HasColumn(categoryColumn) {
		return nil, &core.UnknownColumnError{
			Column:    categoryColumn,
			Available: append([]string(nil), ds.Columns...),
		}
	}
	totals := map[string]float64{}
	order := make([]string, 0)
	for _, r := range ds.Records {
		cat := r.Get(categoryColumn)
		if _, seen := totals[cat]; !seen {
			order = append(order, cat)
		}
		totals[cat] += r.Amount
	}
	out := make([]core.CategoryTotal, 0, len(order))
	for _, cat := range order {
		out = append(out, core.CategoryTotal{Category: cat, Total: totals[cat]})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Total > out[j].Total
	})
	return out, nil
}

// MonthlySummary outer-joins the per-month totals of the income and
// expense datasets on period key. A period present on only one side gets 0
// for the other. Rows are sorted ascending by period key, which equals
// chronological order.
func MonthlySummary(income, expenses core.Dataset) []core.PeriodSummary {
	byPeriod := map[string]*core.PeriodSummary{}
	add := func(ds core.Dataset, toIncome bool) {
		for _, r := range ds.Records {
			row, ok := byPeriod[r.PeriodKey]
			if !ok {
				row = &core.PeriodSummary{PeriodKey: r.PeriodKey}
				byPeriod[r.PeriodKey] = row
			}
			if toIncome {
				row.Income += r.Amount
			} else {
				row.Expense += r.Amount
			}
		}
	}
	add(income, true)
	add(expenses, false)

	out := make([]core.PeriodSummary, 0, len(byPeriod))
	for _, row := range byPeriod {
		row.Net = row.Income - row.Expense
		out = append(out, *row)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].PeriodKey < out[j].PeriodKey
	})
	return out
}
