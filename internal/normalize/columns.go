package normalize

import (
	"strings"

	"masarif/internal/core"
)

// ColumnRole is the semantic purpose of a column, independent of its
// literal header text.
type ColumnRole string

const (
	AmountColumn ColumnRole = "amount"
	DateColumn   ColumnRole = "date"
)

// NoFallback disables positional fallback for a role.
const NoFallback = -1

// Keyword sets scanned case-insensitively against header names. The Arabic
// entries match the sheet layouts this tool was built for; the Latin ones
// cover exported or translated copies of the same sheets.
var roleKeywords = map[ColumnRole][]string{
	AmountColumn: {"المبلغ", "amount", "egp", "ج.م"},
	DateColumn:   {"التاريخ", "date"},
}

// Resolution is the outcome of a successful column lookup. Fallback marks
// the degraded positional mode so callers can log it: a positional guess
// may not hold across unrelated sheet layouts.
type Resolution struct {
	Name     string
	Index    int
	Fallback bool
}

// ResolveColumn finds the column serving the given role by scanning header
// names for the role's keywords, first match in column order wins. When no
// name matches, fallbackIndex (if not NoFallback and in range) selects a
// column positionally. Otherwise a ColumnNotFoundError names the role and
// the headers actually present.
//
// Resolution is deterministic: the same headers and role always yield the
// same column.
func ResolveColumn(columns []string, role ColumnRole, fallbackIndex int) (Resolution, error) {
	for i, col := range columns {
		name := strings.ToLower(strings.TrimSpace(col))
		for _, kw := range roleKeywords[role] {
			if strings.Contains(name, kw) {
				return Resolution{Name: col, Index: i}, nil
			}
		}
	}
	if fallbackIndex != NoFallback && fallbackIndex >= 0 && fallbackIndex < len(columns) {
		return Resolution{Name: columns[fallbackIndex], Index: fallbackIndex, Fallback: true}, nil
	}
	return Resolution{}, &core.ColumnNotFoundError{
		Role:      string(role),
		Available: append([]string(nil), columns...),
	}
}
