// Package source reads bank transaction CSV exports into records.
package source

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/patrislav1/sankeygen/internal/model"
)

// ErrSchema is returned when an export file lacks a required column.
var ErrSchema = errors.New("csv schema mismatch")

// Schema describes how to locate and decode the relevant columns of an
// export file. It mirrors the external contract of the source application.
type Schema struct {
	Comma          rune
	CategoryColumn string
	AmountColumn   string
	// DecimalComma: amounts use "." as thousands separator and "," as
	// decimal point (German export format).
	DecimalComma bool
}

// Result holds the merged outcome of reading one or more export files.
type Result struct {
	Transactions []model.Transaction
	// Skipped counts rows dropped because the category path or amount was
	// empty or the amount did not parse. Reported to the user, never
	// silently discarded.
	Skipped int
}

// ReadFiles reads every file in order and concatenates all transactions
// into one logical sequence. No deduplication is performed: duplicate
// bookings across files (e.g. credit card re-ups) are expected to cancel
// out by sign. A missing or malformed file is fatal.
func ReadFiles(paths []string, sch Schema) (Result, error) {
	var res Result
	for _, path := range paths {
		if err := readFile(path, sch, &res); err != nil {
			return Result{}, err
		}
	}
	return res, nil
}

func readFile(path string, sch Schema, res *Result) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	r := csv.NewReader(f)
	r.Comma = sch.Comma
	r.FieldsPerRecord = -1 // exports carry a variable tail of columns

	header, err := r.Read()
	if err != nil {
		if err == io.EOF {
			return fmt.Errorf("%w: %s is empty", ErrSchema, path)
		}
		return fmt.Errorf("reading header of %s: %w", path, err)
	}

	catIdx, amtIdx := -1, -1
	for i, col := range header {
		switch strings.TrimSpace(stripBOM(col)) {
		case sch.CategoryColumn:
			catIdx = i
		case sch.AmountColumn:
			amtIdx = i
		}
	}
	if catIdx < 0 {
		return fmt.Errorf("%w: %s has no %q column", ErrSchema, path, sch.CategoryColumn)
	}
	if amtIdx < 0 {
		return fmt.Errorf("%w: %s has no %q column", ErrSchema, path, sch.AmountColumn)
	}

	for {
		row, err := r.Read()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}

		if catIdx >= len(row) || amtIdx >= len(row) {
			res.Skipped++
			continue
		}

		category := strings.TrimSpace(row[catIdx])
		rawAmount := strings.TrimSpace(row[amtIdx])
		if category == "" || rawAmount == "" {
			res.Skipped++
			continue
		}

		amount, err := ParseAmount(rawAmount, sch.DecimalComma)
		if err != nil {
			res.Skipped++
			continue
		}

		res.Transactions = append(res.Transactions, model.Transaction{
			Category: category,
			Amount:   amount,
		})
	}
}

// ParseAmount decodes a booking amount string. With decimalComma set,
// "1.234,56" is read as 1234.56; otherwise the string is parsed as-is.
func ParseAmount(raw string, decimalComma bool) (decimal.Decimal, error) {
	s := raw
	if decimalComma {
		s = strings.ReplaceAll(s, ".", "")
		s = strings.ReplaceAll(s, ",", ".")
	} else {
		s = strings.ReplaceAll(s, ",", "")
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("amount %q: %w", raw, err)
	}
	return d, nil
}

// stripBOM removes a UTF-8 byte order mark some exporters prepend to the
// first header cell.
func stripBOM(s string) string {
	return strings.TrimPrefix(s, "\uFEFF")
}
