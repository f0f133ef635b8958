package cache

import (
	"context"
	"fmt"
	"time"

	"masarif/internal/core"
	"masarif/internal/source"
)

// Tables caches fetched raw tables per role in front of a TableReader.
// A manual refresh invalidates everything; otherwise entries live for the
// configured TTL, matching the host dashboard's reload behavior.
type Tables struct {
	lru    *LRU[core.RawTable]
	reader source.TableReader
}

var _ source.TableReader = (*Tables)(nil)

// NewTables wraps reader with an LRU+TTL layer.
func NewTables(reader source.TableReader, maxSize int, ttl time.Duration) *Tables {
	return &Tables{
		lru:    NewLRU[core.RawTable](maxSize, ttl),
		reader: reader,
	}
}

// ReadTable is GetOrFetch keyed by role: cached table when fresh, a real
// fetch otherwise. Fetch failures are not cached.
func (t *Tables) ReadTable(ctx context.Context, role core.Role) (core.RawTable, error) {
	key := string(role)
	if table, ok := t.lru.Get(key); ok {
		return table, nil
	}
	table, err := t.reader.ReadTable(ctx, role)
	if err != nil {
		return core.RawTable{}, fmt.Errorf("fetch %s: %w", role, err)
	}
	t.lru.Set(key, table)
	return table, nil
}

// Invalidate drops the cached table for one role.
func (t *Tables) Invalidate(role core.Role) {
	t.lru.Delete(string(role))
}

// InvalidateAll drops every cached table. Used by the manual refresh
// action.
func (t *Tables) InvalidateAll() {
	t.lru.Clear()
}

// CleanExpired implements the Cleaner interface for the cleanup manager.
func (t *Tables) CleanExpired() int {
	return t.lru.CleanExpired()
}
