package normalize

import (
	"strings"
	"time"

	"masarif/internal/core"
)

// dateLayouts are tried in order. Slash dates are ambiguous; month-first is
// preferred, day-first only matches when the first field exceeds 12.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	time.RFC3339,
	"2006/01/02",
	"01/02/2006",
	"1/2/2006",
	"02/01/2006",
	"2/1/2006",
	"02-01-2006",
	"Jan 2, 2006",
	"2 Jan 2006",
}

// ParseDate parses a raw cell as a calendar date, tolerating the common
// textual formats seen in sheet exports. Arabic-Indic digits are folded to
// ASCII first. The boolean is false when no layout matches; the caller
// drops such rows.
func ParseDate(v any) (core.Date, bool) {
	switch d := v.(type) {
	case nil:
		return core.Date{}, false
	case time.Time:
		if d.IsZero() {
			return core.Date{}, false
		}
		return core.DateOf(d), true
	case core.Date:
		if d.IsZero() {
			return core.Date{}, false
		}
		return d, true
	case string:
		return parseDateString(d)
	default:
		return core.Date{}, false
	}
}

func parseDateString(s string) (core.Date, bool) {
	s = strings.TrimSpace(foldDigits(s))
	if s == "" {
		return core.Date{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return core.DateOf(t), true
		}
	}
	return core.Date{}, false
}

// foldDigits maps Arabic-Indic digits to their ASCII equivalents, leaving
// everything else untouched.
func foldDigits(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r >= '٠' && r <= '٩':
			b.WriteRune('0' + (r - '٠'))
		case r >= '۰' && r <= '۹':
			b.WriteRune('0' + (r - '۰'))
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
