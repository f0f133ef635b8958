// Package csvfile reads raw tables from local CSV files, one file per
// table role.
package csvfile

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"strings"

	"masarif/internal/core"
	"masarif/internal/source"
)

// Source maps each role to a CSV file path.
type Source struct {
	paths map[core.Role]string
}

var _ source.TableReader = (*Source)(nil)

// New creates a CSV-backed source.
func New(paths map[core.Role]string) *Source {
	return &Source{paths: paths}
}

// ReadTable reads the whole CSV file for role. The first record is the
// header. Rows may have fewer fields than the header; sheet exports drop
// trailing empty cells.
func (s *Source) ReadTable(_ context.Context, role core.Role) (core.RawTable, error) {
	path, ok := s.paths[role]
	if !ok || strings.TrimSpace(path) == "" {
		return core.RawTable{}, fmt.Errorf("no CSV path configured for role %s", role)
	}

	f, err := os.Open(path)
	if err != nil {
		return core.RawTable{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	cr := csv.NewReader(f)
	cr.FieldsPerRecord = -1
	records, err := cr.ReadAll()
	if err != nil {
		return core.RawTable{}, fmt.Errorf("reading %s: %w", path, err)
	}
	if len(records) == 0 {
		return core.RawTable{}, fmt.Errorf("%s: %w", role, core.ErrNoData)
	}

	header := records[0]
	columns := make([]string, len(header))
	for i, h := range header {
		columns[i] = strings.TrimSpace(h)
	}

	rows := make([][]any, 0, len(records)-1)
	for _, rec := range records[1:] {
		row := make([]any, len(rec))
		for i, cell := range rec {
			row[i] = cell
		}
		rows = append(rows, row)
	}

	return core.RawTable{Columns: columns, Rows: rows}, nil
}
