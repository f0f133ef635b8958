// Package normalize turns raw spreadsheet tables with Arabic or English
// headers into canonical datasets: resolved columns, parsed amounts and
// dates, derived calendar fields.
package normalize

import (
	"fmt"
	"strconv"
	"strings"
)

// Arabic numeric punctuation as produced by spreadsheet locales.
const (
	arabicThousandsSep = '٬' // ٬
	arabicDecimalSep   = '٫' // ٫
	arabicComma        = '،' // ، occasionally used as a separator
)

// currencyTokens are stripped from amount strings before numeric parsing.
// Matching is case-insensitive for the Latin tokens.
var currencyTokens = []string{"ج.م", "egp", "£"}

// ParseAmount converts a raw spreadsheet cell into a monetary value.
// Numeric cells pass through unchanged. String cells are cleaned of
// currency tokens and locale separators (both Arabic and ASCII) before a
// float parse. Anything that still fails to parse yields 0.0: a dirty cell
// must never abort the whole report.
func ParseAmount(v any) float64 {
	switch n := v.(type) {
	case nil:
		return 0
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int64:
		return float64(n)
	case string:
		return parseAmountString(n)
	default:
		return parseAmountString(fmt.Sprint(v))
	}
}

func parseAmountString(s string) float64 {
	// Case-fold once up front; every currency token is lowercase or caseless.
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return 0
	}
	for _, tok := range currencyTokens {
		s = strings.ReplaceAll(s, tok, "")
	}
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r >= '٠' && r <= '٩': // Arabic-Indic digits
			b.WriteRune('0' + (r - '٠'))
		case r >= '۰' && r <= '۹': // Extended Arabic-Indic digits
			b.WriteRune('0' + (r - '۰'))
		case r == arabicDecimalSep:
			b.WriteRune('.')
		case r == ',' || r == arabicThousandsSep || r == arabicComma:
			// thousands separators
		case r == ' ' || r == '\t' || r == ' ':
			// spacing, including non-breaking spaces from sheet exports
		case r == '.' || r == '-' || r == '+':
			b.WriteRune(r)
		default:
			// residual non-numeric text: let ParseFloat reject it below
			b.WriteRune(r)
		}
	}
	f, err := strconv.ParseFloat(b.String(), 64)
	if err != nil {
		return 0
	}
	return f
}
