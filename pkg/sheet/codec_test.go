package sheet

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/dualibesoft/cherry-ledger/pkg/ledger"
)

func dec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("bad decimal %q: %v", s, err)
	}
	return d
}

func newSheet(t *testing.T, name string) *excelize.File {
	t.Helper()
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", name); err != nil {
		t.Fatalf("SetSheetName: %v", err)
	}
	t.Cleanup(func() { f.Close() })
	return f
}

func TestWriteParseRoundTrip(t *testing.T) {
	due := ledger.Date{Year: 2024, Month: time.January, Day: 12}
	invoices := []ledger.Invoice{
		{
			SupplierID: "s1",
			IssueDate:  ledger.Date{Year: 2024, Month: time.January, Day: 5},
			DueDate:    &due,
			Number:     "A1",
			Amount:     dec(t, "1000"),
			Rejected:   dec(t, "0"),
		},
		{
			SupplierID: "s1",
			IssueDate:  ledger.Date{Year: 2024, Month: time.February, Day: 1},
			Number:     "A2",
			Amount:     dec(t, "250.75"),
			Rejected:   dec(t, "50.25"),
		},
	}
	payments := []ledger.Payment{
		{SupplierID: "s1", Date: ledger.Date{Year: 2024, Month: time.January, Day: 20}, Amount: dec(t, "500")},
	}

	layout := DefaultLayout()
	f := newSheet(t, "Acme")
	if err := WriteLedger(f, "Acme", invoices, payments, layout); err != nil {
		t.Fatalf("WriteLedger: %v", err)
	}

	parsed, err := ParseLedger(f, "Acme", "s1", layout)
	if err != nil {
		t.Fatalf("ParseLedger: %v", err)
	}

	if len(parsed.Invoices) != len(invoices) {
		t.Fatalf("parsed %d invoices, expected %d", len(parsed.Invoices), len(invoices))
	}
	if len(parsed.Payments) != len(payments) {
		t.Fatalf("parsed %d payments, expected %d", len(parsed.Payments), len(payments))
	}
	if parsed.SkippedRows != 0 {
		t.Errorf("SkippedRows = %d, expected 0", parsed.SkippedRows)
	}

	for i, got := range parsed.Invoices {
		want := invoices[i]
		if got.ID == "" {
			t.Error("staged invoice has no ID")
		}
		if got.SupplierID != "s1" {
			t.Errorf("invoice %d supplier = %q", i, got.SupplierID)
		}
		if got.IssueDate != want.IssueDate {
			t.Errorf("invoice %d issue date = %v, expected %v", i, got.IssueDate, want.IssueDate)
		}
		if (got.DueDate == nil) != (want.DueDate == nil) {
			t.Errorf("invoice %d due date presence mismatch", i)
		} else if got.DueDate != nil && *got.DueDate != *want.DueDate {
			t.Errorf("invoice %d due date = %v, expected %v", i, *got.DueDate, *want.DueDate)
		}
		if got.Number != want.Number {
			t.Errorf("invoice %d number = %q, expected %q", i, got.Number, want.Number)
		}
		if !got.Amount.Equal(want.Amount) {
			t.Errorf("invoice %d amount = %s, expected %s", i, got.Amount, want.Amount)
		}
		if !got.Rejected.Equal(want.Rejected) {
			t.Errorf("invoice %d rejected = %s, expected %s", i, got.Rejected, want.Rejected)
		}
	}

	if parsed.Payments[0].Date != payments[0].Date {
		t.Errorf("payment date = %v, expected %v", parsed.Payments[0].Date, payments[0].Date)
	}
	if !parsed.Payments[0].Amount.Equal(payments[0].Amount) {
		t.Errorf("payment amount = %s, expected %s", parsed.Payments[0].Amount, payments[0].Amount)
	}
}

func TestRoundTripIdempotent(t *testing.T) {
	// Export, import, export the import again: the second export must
	// parse to the same records as the first.
	due := ledger.Date{Year: 2024, Month: time.June, Day: 1}
	invoices := []ledger.Invoice{
		{SupplierID: "s1", IssueDate: ledger.Date{Year: 2024, Month: time.May, Day: 25}, DueDate: &due, Number: "F-77", Amount: dec(t, "123.45"), Rejected: dec(t, "3.45")},
	}
	layout := DefaultLayout()

	first := newSheet(t, "Hoja")
	if err := WriteLedger(first, "Hoja", invoices, nil, layout); err != nil {
		t.Fatalf("first WriteLedger: %v", err)
	}
	once, err := ParseLedger(first, "Hoja", "s1", layout)
	if err != nil {
		t.Fatalf("first ParseLedger: %v", err)
	}

	second := newSheet(t, "Hoja")
	if err := WriteLedger(second, "Hoja", once.Invoices, once.Payments, layout); err != nil {
		t.Fatalf("second WriteLedger: %v", err)
	}
	twice, err := ParseLedger(second, "Hoja", "s1", layout)
	if err != nil {
		t.Fatalf("second ParseLedger: %v", err)
	}

	if len(twice.Invoices) != 1 {
		t.Fatalf("expected 1 invoice after double round trip, got %d", len(twice.Invoices))
	}
	got, want := twice.Invoices[0], invoices[0]
	if got.IssueDate != want.IssueDate || *got.DueDate != *want.DueDate ||
		got.Number != want.Number || !got.Amount.Equal(want.Amount) || !got.Rejected.Equal(want.Rejected) {
		t.Errorf("double round trip drifted: %+v", got)
	}
}

func TestParseSkipsBadRows(t *testing.T) {
	layout := DefaultLayout()
	f := newSheet(t, "Acme")
	if err := WriteLedger(f, "Acme", nil, nil, layout); err != nil {
		t.Fatalf("WriteLedger: %v", err)
	}

	// valid debit row
	f.SetCellValue("Acme", "A2", "05/01/2024")
	f.SetCellValue("Acme", "B2", "12/01/2024")
	f.SetCellValue("Acme", "C2", "A1")
	f.SetCellValue("Acme", "D2", 1000)
	f.SetCellValue("Acme", "E2", 0)
	// blank date, non-numeric amount: skipped, no error
	f.SetCellValue("Acme", "C3", "huérfana")
	f.SetCellValue("Acme", "D3", "sin monto")
	// date present but amount cell not numeric: skipped
	f.SetCellValue("Acme", "A4", "06/01/2024")
	f.SetCellValue("Acme", "D4", "n/a")
	// numeric-string amount: staged
	f.SetCellValue("Acme", "A5", "07/01/2024")
	f.SetCellValue("Acme", "C5", "A2")
	f.SetCellValue("Acme", "D5", "750.50")

	parsed, err := ParseLedger(f, "Acme", "s1", layout)
	if err != nil {
		t.Fatalf("ParseLedger: %v", err)
	}

	if len(parsed.Invoices) != 2 {
		t.Fatalf("staged %d invoices, expected 2", len(parsed.Invoices))
	}
	if parsed.SkippedRows != 2 {
		t.Errorf("SkippedRows = %d, expected 2", parsed.SkippedRows)
	}
	if !parsed.Invoices[1].Amount.Equal(dec(t, "750.50")) {
		t.Errorf("numeric-string amount parsed as %s", parsed.Invoices[1].Amount)
	}
	if parsed.Invoices[1].DueDate != nil {
		t.Error("missing due date should stage as nil")
	}
}

func TestParseNativeDateAndSerial(t *testing.T) {
	layout := DefaultLayout()
	f := newSheet(t, "Acme")
	if err := WriteLedger(f, "Acme", nil, nil, layout); err != nil {
		t.Fatalf("WriteLedger: %v", err)
	}

	// native date cell, as a spreadsheet application would store it
	f.SetCellValue("Acme", "A2", time.Date(2024, time.March, 10, 0, 0, 0, 0, time.UTC))
	f.SetCellValue("Acme", "C2", "N1")
	f.SetCellValue("Acme", "D2", 100)
	// bare day serial for the same date
	f.SetCellValue("Acme", "I2", 45361)
	f.SetCellValue("Acme", "J2", 200)

	parsed, err := ParseLedger(f, "Acme", "s1", layout)
	if err != nil {
		t.Fatalf("ParseLedger: %v", err)
	}

	want := ledger.Date{Year: 2024, Month: time.March, Day: 10}
	if len(parsed.Invoices) != 1 || parsed.Invoices[0].IssueDate != want {
		t.Errorf("native date cell parsed as %+v, expected %v", parsed.Invoices, want)
	}
	if len(parsed.Payments) != 1 || parsed.Payments[0].Date != want {
		t.Errorf("serial date cell parsed as %+v, expected %v", parsed.Payments, want)
	}
}

func TestParseUnevenBlocks(t *testing.T) {
	layout := DefaultLayout()
	invoices := []ledger.Invoice{
		{SupplierID: "s1", IssueDate: ledger.Date{Year: 2024, Month: time.January, Day: 1}, Number: "1", Amount: dec(t, "10")},
	}
	payments := []ledger.Payment{
		{SupplierID: "s1", Date: ledger.Date{Year: 2024, Month: time.January, Day: 2}, Amount: dec(t, "1")},
		{SupplierID: "s1", Date: ledger.Date{Year: 2024, Month: time.January, Day: 3}, Amount: dec(t, "2")},
		{SupplierID: "s1", Date: ledger.Date{Year: 2024, Month: time.January, Day: 4}, Amount: dec(t, "3")},
	}

	f := newSheet(t, "Acme")
	if err := WriteLedger(f, "Acme", invoices, payments, layout); err != nil {
		t.Fatalf("WriteLedger: %v", err)
	}
	parsed, err := ParseLedger(f, "Acme", "s1", layout)
	if err != nil {
		t.Fatalf("ParseLedger: %v", err)
	}

	if len(parsed.Invoices) != 1 || len(parsed.Payments) != 3 {
		t.Errorf("parsed %d/%d records, expected 1/3", len(parsed.Invoices), len(parsed.Payments))
	}
	if parsed.SkippedRows != 0 {
		t.Errorf("SkippedRows = %d, expected 0 for the shorter block's blank tail", parsed.SkippedRows)
	}
}

func TestParseRejectsWrongHeaders(t *testing.T) {
	layout := DefaultLayout()
	f := newSheet(t, "Datos")
	f.SetCellValue("Datos", "A1", "COLUMNA")
	f.SetCellValue("Datos", "B1", "OTRA")

	_, err := ParseLedger(f, "Datos", "s1", layout)
	if err == nil {
		t.Fatal("expected error for wrong headers")
	}
	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Errorf("error type = %T, expected *ParseError", err)
	}
}
