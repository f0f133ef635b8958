package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"masarif/internal/core"
)

type countingReader struct {
	calls int
	err   error
}

func (r *countingReader) ReadTable(_ context.Context, role core.Role) (core.RawTable, error) {
	r.calls++
	if r.err != nil {
		return core.RawTable{}, r.err
	}
	return core.RawTable{Columns: []string{"date", "amount"}}, nil
}

func TestReadTableFetchesOnceWithinTTL(t *testing.T) {
	reader := &countingReader{}
	tables := NewTables(reader, 10, time.Minute)

	for i := 0; i < 3; i++ {
		if _, err := tables.ReadTable(context.Background(), core.Expenses); err != nil {
			t.Fatalf("read %d: %v", i, err)
		}
	}
	if reader.calls != 1 {
		t.Fatalf("reader called %d times, want 1", reader.calls)
	}
}

func TestInvalidateForcesRefetch(t *testing.T) {
	reader := &countingReader{}
	tables := NewTables(reader, 10, time.Minute)

	tables.ReadTable(context.Background(), core.Expenses)
	tables.Invalidate(core.Expenses)
	tables.ReadTable(context.Background(), core.Expenses)
	if reader.calls != 2 {
		t.Fatalf("reader called %d times, want 2", reader.calls)
	}

	tables.ReadTable(context.Background(), core.Income)
	tables.InvalidateAll()
	tables.ReadTable(context.Background(), core.Expenses)
	tables.ReadTable(context.Background(), core.Income)
	if reader.calls != 5 {
		t.Fatalf("reader called %d times, want 5", reader.calls)
	}
}

func TestFetchErrorsAreNotCached(t *testing.T) {
	reader := &countingReader{err: errors.New("boom")}
	tables := NewTables(reader, 10, time.Minute)

	if _, err := tables.ReadTable(context.Background(), core.Expenses); err == nil {
		t.Fatal("expected error")
	}
	reader.err = nil
	if _, err := tables.ReadTable(context.Background(), core.Expenses); err != nil {
		t.Fatalf("expected recovery, got %v", err)
	}
	if reader.calls != 2 {
		t.Fatalf("reader called %d times, want 2", reader.calls)
	}
}

func TestLRUExpiry(t *testing.T) {
	lru := NewLRU[int](2, 10*time.Millisecond)
	lru.Set("a", 1)
	time.Sleep(20 * time.Millisecond)
	if _, ok := lru.Get("a"); ok {
		t.Fatal("expired entry still served")
	}
	lru.Set("b", 2)
	lru.Set("c", 3)
	lru.Set("d", 4) // evicts oldest
	if lru.Size() != 2 {
		t.Fatalf("size = %d, want 2", lru.Size())
	}
}

func TestCleanExpired(t *testing.T) {
	lru := NewLRU[int](10, time.Nanosecond)
	lru.Set("a", 1)
	lru.Set("b", 2)
	time.Sleep(time.Millisecond)
	if cleaned := lru.CleanExpired(); cleaned != 2 {
		t.Fatalf("cleaned = %d, want 2", cleaned)
	}
}
