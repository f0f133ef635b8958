package memory

import (
	"context"
	"errors"
	"testing"

	"masarif/internal/core"
)

func TestSeededTablesHaveBothRoles(t *testing.T) {
	store := NewSeeded()
	for _, role := range core.Roles {
		table, err := store.ReadTable(context.Background(), role)
		if err != nil {
			t.Fatalf("%s: %v", role, err)
		}
		if table.IsEmpty() || len(table.Rows) == 0 {
			t.Fatalf("%s: empty seed table", role)
		}
	}
}

func TestReadTableReturnsCopy(t *testing.T) {
	store := NewSeeded()
	first, _ := store.ReadTable(context.Background(), core.Expenses)
	first.Rows[0][0] = "mutated"
	second, _ := store.ReadTable(context.Background(), core.Expenses)
	if second.Rows[0][0] == "mutated" {
		t.Fatal("ReadTable exposed shared state")
	}
}

func TestReplace(t *testing.T) {
	store := New(nil)
	if _, err := store.ReadTable(context.Background(), core.Income); !errors.Is(err, core.ErrNoData) {
		t.Fatalf("expected ErrNoData, got %v", err)
	}
	store.Replace(core.Income, core.RawTable{Columns: []string{"date", "amount"}})
	table, err := store.ReadTable(context.Background(), core.Income)
	if err != nil {
		t.Fatalf("read after replace: %v", err)
	}
	if len(table.Columns) != 2 {
		t.Fatalf("columns = %v", table.Columns)
	}
}
