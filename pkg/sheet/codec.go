package sheet

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"github.com/dualibesoft/cherry-ledger/pkg/ledger"
)

// ParseError reports a workbook that cannot be imported at all:
// unreadable content or a sheet whose header row does not match the
// expected layout. Individual bad rows are skipped, not errors.
type ParseError struct {
	Sheet  string
	Reason string
}

func (e *ParseError) Error() string {
	if e.Sheet == "" {
		return fmt.Sprintf("cannot parse workbook: %s", e.Reason)
	}
	return fmt.Sprintf("cannot parse sheet %q: %s", e.Sheet, e.Reason)
}

// ParsedLedger is the result of reading one account sheet: records
// staged for commit plus the count of rows that were skipped because
// their date or amount cell was blank or not interpretable.
type ParsedLedger struct {
	Invoices    []ledger.Invoice
	Payments    []ledger.Payment
	SkippedRows int
}

// WriteLedger renders one account's ledger onto a sheet. Invoices
// occupy the debit block, payments the credit block; the two blocks
// are row-aligned from the shared header row and may differ in
// length. Dates render as DD/MM/YYYY strings, amounts as numbers
// carrying the currency display format. Record order is preserved.
func WriteLedger(f *excelize.File, sheetName string, invoices []ledger.Invoice, payments []ledger.Payment, layout Layout) error {
	for i, h := range layout.DebitHeaders {
		if err := setCell(f, sheetName, layout.DebitStartCol+i, 1, h); err != nil {
			return err
		}
	}
	for i, h := range layout.CreditHeaders {
		if err := setCell(f, sheetName, layout.CreditStartCol+i, 1, h); err != nil {
			return err
		}
	}

	for i, inv := range invoices {
		row := i + 2
		due := ""
		if inv.DueDate != nil {
			due = inv.DueDate.FormatDMY()
		}
		cells := []interface{}{
			inv.IssueDate.FormatDMY(),
			due,
			inv.Number,
			inv.Amount.InexactFloat64(),
			inv.Rejected.InexactFloat64(),
		}
		for j, v := range cells {
			if err := setCell(f, sheetName, layout.DebitStartCol+j, row, v); err != nil {
				return err
			}
		}
	}

	for i, p := range payments {
		row := i + 2
		cells := []interface{}{p.Date.FormatDMY(), p.Amount.InexactFloat64()}
		for j, v := range cells {
			if err := setCell(f, sheetName, layout.CreditStartCol+j, row, v); err != nil {
				return err
			}
		}
	}

	return applyCurrencyFormat(f, sheetName, layout, len(invoices), len(payments))
}

// applyCurrencyFormat styles the amount and rejection columns of the
// debit block and the amount column of the credit block.
func applyCurrencyFormat(f *excelize.File, sheetName string, layout Layout, invoiceRows, paymentRows int) error {
	if invoiceRows == 0 && paymentRows == 0 {
		return nil
	}
	style, err := f.NewStyle(&excelize.Style{CustomNumFmt: &layout.CurrencyFormat})
	if err != nil {
		return fmt.Errorf("failed to create currency style: %w", err)
	}

	ranges := []struct {
		col  int
		rows int
	}{
		{layout.DebitStartCol + 3, invoiceRows},
		{layout.DebitStartCol + 4, invoiceRows},
		{layout.CreditStartCol + 1, paymentRows},
	}
	for _, r := range ranges {
		if r.rows == 0 {
			continue
		}
		top, err := excelize.CoordinatesToCellName(r.col, 2)
		if err != nil {
			return err
		}
		bottom, err := excelize.CoordinatesToCellName(r.col, r.rows+1)
		if err != nil {
			return err
		}
		if err := f.SetCellStyle(sheetName, top, bottom, style); err != nil {
			return fmt.Errorf("failed to apply currency style: %w", err)
		}
	}
	return nil
}

// ParseLedger reads the two column blocks of an account sheet back
// into staged records for the given supplier. The blocks are scanned
// independently: a debit row stages an invoice only when its date
// cell is non-empty and its amount cell is a number or numeric
// string; the credit block follows the same rule. Anything else in a
// row is skipped silently and counted. Fresh IDs are assigned, so
// re-importing an export never collides with existing records.
func ParseLedger(f *excelize.File, sheetName, supplierID string, layout Layout) (*ParsedLedger, error) {
	if err := checkHeaders(f, sheetName, layout); err != nil {
		return nil, err
	}

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, &ParseError{Sheet: sheetName, Reason: err.Error()}
	}

	parsed := &ParsedLedger{}
	for row := 2; row <= len(rows); row++ {
		staged, present, err := parseDebitRow(f, sheetName, supplierID, layout, row)
		if err != nil {
			return nil, err
		}
		if staged != nil {
			parsed.Invoices = append(parsed.Invoices, *staged)
		} else if present {
			parsed.SkippedRows++
		}

		payment, present, err := parseCreditRow(f, sheetName, supplierID, layout, row)
		if err != nil {
			return nil, err
		}
		if payment != nil {
			parsed.Payments = append(parsed.Payments, *payment)
		} else if present {
			parsed.SkippedRows++
		}
	}
	return parsed, nil
}

func parseDebitRow(f *excelize.File, sheetName, supplierID string, layout Layout, row int) (*ledger.Invoice, bool, error) {
	cells, err := readBlock(f, sheetName, layout.DebitStartCol, row, 5)
	if err != nil {
		return nil, false, err
	}
	present := false
	for _, c := range cells {
		if !c.IsEmpty() {
			present = true
			break
		}
	}
	if !present {
		return nil, false, nil
	}

	dateCell, dueCell, numberCell, amountCell, rejectedCell := cells[0], cells[1], cells[2], cells[3], cells[4]
	if dateCell.IsEmpty() {
		return nil, true, nil
	}
	amount, ok := amountCell.NormalizeAmount()
	if !ok {
		return nil, true, nil
	}
	issueDate, ok := dateCell.NormalizeDate()
	if !ok {
		return nil, true, nil
	}

	inv := ledger.Invoice{
		ID:         uuid.NewString(),
		SupplierID: supplierID,
		IssueDate:  issueDate,
		Number:     numberCell.NormalizeText(),
		Amount:     amount,
	}
	if due, ok := dueCell.NormalizeDate(); ok {
		inv.DueDate = &due
	}
	if rejected, ok := rejectedCell.NormalizeAmount(); ok {
		inv.Rejected = rejected
	}
	return &inv, true, nil
}

func parseCreditRow(f *excelize.File, sheetName, supplierID string, layout Layout, row int) (*ledger.Payment, bool, error) {
	cells, err := readBlock(f, sheetName, layout.CreditStartCol, row, 2)
	if err != nil {
		return nil, false, err
	}
	dateCell, amountCell := cells[0], cells[1]
	if dateCell.IsEmpty() && amountCell.IsEmpty() {
		return nil, false, nil
	}
	if dateCell.IsEmpty() {
		return nil, true, nil
	}
	amount, ok := amountCell.NormalizeAmount()
	if !ok {
		return nil, true, nil
	}
	date, ok := dateCell.NormalizeDate()
	if !ok {
		return nil, true, nil
	}

	return &ledger.Payment{
		ID:         uuid.NewString(),
		SupplierID: supplierID,
		Date:       date,
		Amount:     amount,
	}, true, nil
}

// checkHeaders verifies row 1 carries the expected block labels.
// A sheet without them was not produced by this layout and the whole
// import is refused rather than guessed at.
func checkHeaders(f *excelize.File, sheetName string, layout Layout) error {
	check := func(startCol int, headers []string) error {
		for i, want := range headers {
			cell, err := cellName(startCol+i, 1)
			if err != nil {
				return err
			}
			got, err := f.GetCellValue(sheetName, cell)
			if err != nil {
				return &ParseError{Sheet: sheetName, Reason: err.Error()}
			}
			if !strings.EqualFold(strings.TrimSpace(got), want) {
				return &ParseError{
					Sheet:  sheetName,
					Reason: fmt.Sprintf("header cell %s is %q, expected %q", cell, got, want),
				}
			}
		}
		return nil
	}
	if err := check(layout.DebitStartCol, layout.DebitHeaders); err != nil {
		return err
	}
	return check(layout.CreditStartCol, layout.CreditHeaders)
}

func readBlock(f *excelize.File, sheetName string, startCol, row, width int) ([]CellValue, error) {
	cells := make([]CellValue, width)
	for i := 0; i < width; i++ {
		name, err := cellName(startCol+i, row)
		if err != nil {
			return nil, err
		}
		c, err := readCell(f, sheetName, name)
		if err != nil {
			return nil, &ParseError{Sheet: sheetName, Reason: err.Error()}
		}
		cells[i] = c
	}
	return cells, nil
}

func setCell(f *excelize.File, sheetName string, col, row int, value interface{}) error {
	name, err := cellName(col, row)
	if err != nil {
		return err
	}
	if err := f.SetCellValue(sheetName, name, value); err != nil {
		return fmt.Errorf("failed to write cell %s: %w", name, err)
	}
	return nil
}

func cellName(col, row int) (string, error) {
	name, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return "", fmt.Errorf("invalid cell coordinates (%d,%d): %w", col, row, err)
	}
	return name, nil
}
