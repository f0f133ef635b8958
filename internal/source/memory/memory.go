// Package memory is an in-process table source used by tests and as the
// default development backend.
package memory

import (
	"context"
	"fmt"
	"sync"

	"masarif/internal/core"
	"masarif/internal/source"
)

type Store struct {
	mu     sync.Mutex
	tables map[core.Role]core.RawTable
}

var _ source.TableReader = (*Store)(nil)

// New creates a store holding the given tables.
func New(tables map[core.Role]core.RawTable) *Store {
	copied := make(map[core.Role]core.RawTable, len(tables))
	for role, t := range tables {
		copied[role] = t
	}
	return &Store{tables: copied}
}

// NewSeeded returns a store with small bilingual sample tables for both
// roles, mirroring the layout of the real sheets.
func NewSeeded() *Store {
	return New(map[core.Role]core.RawTable{
		core.Expenses: {
			Columns: []string{"التاريخ", "البند", "المبلغ", "ملاحظات"},
			Rows: [][]any{
				{"2024-03-05", "إيجار", "1,200 EGP", ""},
				{"2024-03-10", "مستلزمات", "300", ""},
				{"2024-03-18", "طعام", "٤٥٠٫٥٠", "سوبر ماركت"},
				{"2024-04-02", "طعام", "210", ""},
			},
		},
		core.Income: {
			Columns: []string{"التاريخ", "المصدر", "المبلغ"},
			Rows: [][]any{
				{"2024-03-01", "مرتب", "5,000 EGP"},
				{"2024-04-01", "مرتب", "5,000 EGP"},
			},
		},
	})
}

// ReadTable returns a copy of the stored table for role.
func (s *Store) ReadTable(_ context.Context, role core.Role) (core.RawTable, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tables[role]
	if !ok {
		return core.RawTable{}, fmt.Errorf("%s: %w", role, core.ErrNoData)
	}
	out := core.RawTable{Columns: append([]string(nil), t.Columns...)}
	out.Rows = make([][]any, len(t.Rows))
	for i, row := range t.Rows {
		out.Rows[i] = append([]any(nil), row...)
	}
	return out, nil
}

// Replace swaps the table stored for role, for tests that simulate a
// source refresh.
func (s *Store) Replace(role core.Role, table core.RawTable) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tables[role] = table
}
