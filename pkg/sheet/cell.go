// Package sheet maps ledger records to and from a fixed-layout
// spreadsheet: a debit block and a credit block sharing the header
// row, written and parsed independently.
package sheet

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/dualibesoft/cherry-ledger/pkg/ledger"
)

// CellKind discriminates the runtime representation of a cell.
type CellKind int

const (
	KindEmpty CellKind = iota
	KindText
	KindNumber
	KindDate
)

// CellValue is a tagged union over the cell representations a
// workbook can hand back: text, number (including date serials), a
// resolved calendar date, or nothing. Raw always carries the
// uninterpreted cell text.
type CellValue struct {
	Kind   CellKind
	Raw    string
	Number float64
	Date   ledger.Date
}

// EmptyCell returns the empty cell value.
func EmptyCell() CellValue { return CellValue{Kind: KindEmpty} }

// TextCell wraps a string cell.
func TextCell(s string) CellValue { return CellValue{Kind: KindText, Raw: s} }

// NumberCell wraps a numeric cell.
func NumberCell(f float64) CellValue {
	return CellValue{Kind: KindNumber, Raw: strconv.FormatFloat(f, 'f', -1, 64), Number: f}
}

// DateCell wraps a resolved calendar date.
func DateCell(d ledger.Date) CellValue {
	return CellValue{Kind: KindDate, Raw: d.String(), Date: d}
}

// IsEmpty reports whether the cell holds nothing.
func (c CellValue) IsEmpty() bool { return c.Kind == KindEmpty }

// NormalizeDate coerces the cell to a calendar date. Accepted
// representations: an already-resolved date, a DD/MM/YYYY or
// YYYY-MM-DD string, or a spreadsheet day-serial number. All three
// normalize to the same Date.
func (c CellValue) NormalizeDate() (ledger.Date, bool) {
	switch c.Kind {
	case KindDate:
		return c.Date, true
	case KindText:
		if d, err := ledger.ParseDMY(c.Raw); err == nil {
			return d, true
		}
		if d, err := ledger.ParseISO(c.Raw); err == nil {
			return d, true
		}
		return ledger.Date{}, false
	case KindNumber:
		t, err := excelize.ExcelDateToTime(c.Number, false)
		if err != nil {
			return ledger.Date{}, false
		}
		return ledger.DateFromTime(t), true
	default:
		return ledger.Date{}, false
	}
}

// NormalizeAmount coerces the cell to a decimal amount. Numbers and
// numeric strings qualify; anything else does not.
func (c CellValue) NormalizeAmount() (decimal.Decimal, bool) {
	switch c.Kind {
	case KindNumber, KindText:
		d, err := decimal.NewFromString(strings.TrimSpace(c.Raw))
		if err != nil {
			return decimal.Decimal{}, false
		}
		return d, true
	default:
		return decimal.Decimal{}, false
	}
}

// NormalizeText returns the trimmed cell text.
func (c CellValue) NormalizeText() string {
	return strings.TrimSpace(c.Raw)
}

// readCell classifies one workbook cell. The raw (unformatted) value
// is used so display formats never leak into parsing; string cells
// that look numeric are still classified as numbers, matching the
// numeric-string import rule.
func readCell(f *excelize.File, sheetName, cell string) (CellValue, error) {
	raw, err := f.GetCellValue(sheetName, cell, excelize.Options{RawCellValue: true})
	if err != nil {
		return CellValue{}, err
	}
	if strings.TrimSpace(raw) == "" {
		return EmptyCell(), nil
	}
	if n, err := strconv.ParseFloat(strings.TrimSpace(raw), 64); err == nil {
		return CellValue{Kind: KindNumber, Raw: strings.TrimSpace(raw), Number: n}, nil
	}
	return TextCell(raw), nil
}
