package normalize

import (
	"context"
	"errors"
	"math"
	"testing"

	"masarif/internal/core"
)

func expenseTable() core.RawTable {
	return core.RawTable{
		Columns: []string{"التاريخ", "البند", "المبلغ"},
		Rows: [][]any{
			{"2024-03-05", "Rent", "1,200 EGP"},
			{"2024-03-10", "Supplies", "300"},
			{"bad", "X", "50"},
		},
	}
}

func TestNormalizeDropsUnparseableDates(t *testing.T) {
	n := New(Options{})
	ds, err := n.Normalize(context.Background(), expenseTable(), core.Expenses)
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if len(ds.Records)+ds.Dropped != 3 {
		t.Fatalf("conservation violated: kept=%d dropped=%d", len(ds.Records), ds.Dropped)
	}
	if ds.Dropped != 1 {
		t.Fatalf("dropped = %d, want 1", ds.Dropped)
	}
	for _, r := range ds.Records {
		if r.Date.IsZero() {
			t.Fatal("record with zero date survived normalization")
		}
	}
	first := ds.Records[0]
	if math.Abs(first.Amount-1200) > 1e-9 {
		t.Fatalf("amount = %v, want 1200", first.Amount)
	}
	if first.Year != 2024 || first.Month != 3 || first.Day != 5 || first.PeriodKey != "2024-03" {
		t.Fatalf("calendar fields wrong: %+v", first)
	}
	if got := first.Get("البند"); got != "Rent" {
		t.Fatalf("passthrough column lost: %q", got)
	}
	if !ds.HasColumn("البند") {
		t.Fatal("retained column missing from dataset schema")
	}
	if ds.HasColumn("المبلغ") {
		t.Fatal("consumed amount column should not be retained")
	}
}

func TestNormalizeBadAmountBecomesZero(t *testing.T) {
	raw := core.RawTable{
		Columns: []string{"date", "item", "amount"},
		Rows:    [][]any{{"2024-01-02", "Misc", "???"}},
	}
	ds, err := New(Options{}).Normalize(context.Background(), raw, core.Expenses)
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if ds.Records[0].Amount != 0.0 {
		t.Fatalf("amount = %v, want 0", ds.Records[0].Amount)
	}
}

func TestNormalizeShortRows(t *testing.T) {
	raw := core.RawTable{
		Columns: []string{"date", "item", "amount"},
		Rows:    [][]any{{"2024-01-02"}}, // trailing cells truncated by source
	}
	ds, err := New(Options{}).Normalize(context.Background(), raw, core.Income)
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if ds.Records[0].Amount != 0 || ds.Records[0].Get("item") != "" {
		t.Fatalf("short row handled badly: %+v", ds.Records[0])
	}
}

func TestNormalizeEmptyDataset(t *testing.T) {
	raw := core.RawTable{
		Columns: []string{"date", "amount"},
		Rows:    [][]any{{"garbage", "1"}, {"also bad", "2"}},
	}
	_, err := New(Options{}).Normalize(context.Background(), raw, core.Expenses)
	var empty *core.EmptyDatasetError
	if !errors.As(err, &empty) {
		t.Fatalf("expected EmptyDatasetError, got %v", err)
	}
	if empty.Rows != 2 {
		t.Fatalf("rows = %d", empty.Rows)
	}
}

func TestNormalizeNoData(t *testing.T) {
	_, err := New(Options{}).Normalize(context.Background(), core.RawTable{}, core.Expenses)
	if !errors.Is(err, core.ErrNoData) {
		t.Fatalf("expected ErrNoData, got %v", err)
	}
}

func TestNormalizeZeroRowsIsValidEmpty(t *testing.T) {
	raw := core.RawTable{Columns: []string{"date", "amount"}}
	ds, err := New(Options{}).Normalize(context.Background(), raw, core.Income)
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if len(ds.Records) != 0 || ds.Dropped != 0 {
		t.Fatalf("unexpected dataset: %+v", ds)
	}
}

func TestNormalizeMissingColumn(t *testing.T) {
	raw := core.RawTable{
		Columns: []string{"alpha", "beta"},
		Rows:    [][]any{{"1", "2"}},
	}
	_, err := New(Options{}).Normalize(context.Background(), raw, core.Expenses)
	var cnf *core.ColumnNotFoundError
	if !errors.As(err, &cnf) {
		t.Fatalf("expected ColumnNotFoundError, got %v", err)
	}
}

func TestNormalizeFallbackColumns(t *testing.T) {
	raw := core.RawTable{
		Columns: []string{"when", "what", "how much"},
		Rows:    [][]any{{"2024-05-01", "Rent", "900"}},
	}
	n := New(Options{Fallbacks: map[core.Role]Fallbacks{
		core.Expenses: {Amount: 2, Date: 0},
	}})
	ds, err := n.Normalize(context.Background(), raw, core.Expenses)
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if ds.Records[0].Amount != 900 {
		t.Fatalf("amount = %v", ds.Records[0].Amount)
	}
	if ds.Records[0].Get("what") != "Rent" {
		t.Fatalf("passthrough lost: %+v", ds.Records[0])
	}
}

func TestNormalizeMinYearCutoff(t *testing.T) {
	raw := core.RawTable{
		Columns: []string{"date", "item", "amount"},
		Rows: [][]any{
			{"2023-12-31", "Old", "10"},
			{"2024-01-01", "New", "20"},
		},
	}
	ds, err := New(Options{MinYear: 2024}).Normalize(context.Background(), raw, core.Expenses)
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if len(ds.Records) != 1 || ds.Dropped != 1 {
		t.Fatalf("cutoff not applied: kept=%d dropped=%d", len(ds.Records), ds.Dropped)
	}
	if ds.Records[0].Get("item") != "New" {
		t.Fatalf("wrong row kept: %+v", ds.Records[0])
	}
}
