// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormatAmount formats a signed monetary value with thousands separators
// and two decimal places, e.g. -1234.5 -> "-1,234.50 €".
func FormatAmount(d decimal.Decimal, currency string) string {
	s := d.StringFixed(2)

	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")

	units, cents, _ := strings.Cut(s, ".")

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	b.WriteString(groupThousands(units))
	b.WriteByte('.')
	b.WriteString(cents)
	if currency != "" {
		b.WriteByte(' ')
		b.WriteString(currency)
	}
	return b.String()
}

// FormatLabelAmount formats the compact unsigned amount used in diagram
// labels, e.g. -1234.56 -> "1234€".
func FormatLabelAmount(d decimal.Decimal, currency string) string {
	return d.Abs().Truncate(0).String() + currency
}

// groupThousands inserts comma separators into a digit string.
func groupThousands(s string) string {
	if len(s) <= 3 {
		return s
	}

	var b strings.Builder
	remainder := len(s) % 3
	if remainder > 0 {
		b.WriteString(s[:remainder])
	}
	for i := remainder; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}
