// Package model defines the record types shared across the pipeline.
package model

import "github.com/shopspring/decimal"

// Transaction is a single booked row from a Hibiscus CSV export.
// Only the fields the aggregator needs are carried; everything else in the
// export (dates, counterparty, purpose lines) is ignored at parse time.
// Immutable once read.
type Transaction struct {
	// Category is the raw operator-assigned path, e.g. "Ausgaben/Wohnen/Miete".
	Category string

	// Amount is the signed booking amount. Expenses are negative,
	// income positive, as exported by the source application.
	Amount decimal.Decimal
}
