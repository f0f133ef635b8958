package core

import (
	"encoding/json"
	"fmt"
)

// Role identifies which of the two source tables a dataset came from.
type Role string

const (
	Expenses Role = "expenses"
	Income   Role = "income"
)

// Roles lists every valid role, in output order.
var Roles = []Role{Expenses, Income}

// IsValid returns true if the role is one of the known table roles.
func (r Role) IsValid() bool {
	switch r {
	case Expenses, Income:
		return true
	default:
		return false
	}
}

// String implements fmt.Stringer
func (r Role) String() string {
	return string(r)
}

// Canonical column names attached to every normalized record.
const (
	ColAmount    = "amount"
	ColDate      = "date"
	ColYear      = "year"
	ColMonth     = "month"
	ColDay       = "day"
	ColPeriodKey = "period_key"
)

type (
	// RawTable is one fetched spreadsheet tab or CSV file: a header row and
	// data rows, exactly as the source delivered them. Column names may be
	// Arabic or English and are not stable across sources.
	RawTable struct {
		Columns []string
		Rows    [][]any
	}

	// Record is one normalized row. Amount and Date are parsed into
	// canonical form; every source column not consumed as amount or date is
	// retained verbatim in Extra.
	Record struct {
		Amount    float64
		Date      Date
		Year      int
		Month     int
		Day       int
		PeriodKey string
		Extra     map[string]string
	}

	// Dataset is the normalized form of one RawTable. Columns preserves the
	// source order of the retained (passthrough) columns. Dropped counts
	// input rows excluded because their date could not be parsed or fell
	// before the configured minimum year.
	Dataset struct {
		Role    Role
		Columns []string
		Records []Record
		Dropped int
	}

	// CategoryTotal is one aggregation bucket: a category label and the sum
	// of amounts attributed to it.
	CategoryTotal struct {
		Category string  `json:"category"`
		Total    float64 `json:"total"`
	}

	// PeriodSummary merges the per-month totals of the income and expense
	// datasets for a single period key.
	PeriodSummary struct {
		PeriodKey string  `json:"period_key"`
		Income    float64 `json:"income_total"`
		Expense   float64 `json:"expense_total"`
		Net       float64 `json:"net"`
	}
)

// IsEmpty reports whether the raw table carries no header at all, i.e. the
// fetch collaborator delivered nothing usable.
func (t RawTable) IsEmpty() bool {
	return len(t.Columns) == 0
}

// Cell returns the value at the given column index, or nil when the row is
// shorter than the header. Spreadsheet APIs routinely truncate trailing
// empty cells.
func (t RawTable) Cell(row, col int) any {
	if row < 0 || row >= len(t.Rows) {
		return nil
	}
	r := t.Rows[row]
	if col < 0 || col >= len(r) {
		return nil
	}
	return r[col]
}

// HasColumn reports whether name is one of the dataset's retained columns.
func (d Dataset) HasColumn(name string) bool {
	for _, c := range d.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// GrandTotal sums the amount over every record.
func (d Dataset) GrandTotal() float64 {
	var total float64
	for _, r := range d.Records {
		total += r.Amount
	}
	return total
}

// MarshalJSON flattens the record into a single object with the canonical
// keys plus the passthrough columns, ready for direct table binding in a UI.
// A passthrough column whose name collides with a canonical key is skipped.
func (r Record) MarshalJSON() ([]byte, error) {
	out := map[string]any{
		ColAmount:    r.Amount,
		ColDate:      r.Date.Format(DateLayout),
		ColYear:      r.Year,
		ColMonth:     r.Month,
		ColDay:       r.Day,
		ColPeriodKey: r.PeriodKey,
	}
	for k, v := range r.Extra {
		if _, taken := out[k]; taken {
			continue
		}
		out[k] = v
	}
	return json.Marshal(out)
}

// Get returns the value of a passthrough column, or "" if absent.
func (r Record) Get(column string) string {
	return r.Extra[column]
}

func (r Record) String() string {
	return fmt.Sprintf("%s %.2f", r.Date.Format(DateLayout), r.Amount)
}
