package sheet

import (
	"testing"
	"time"

	"github.com/dualibesoft/cherry-ledger/pkg/ledger"
)

// excelSerial returns the 1900-epoch day serial for a date, the way
// spreadsheets store native date cells.
func excelSerial(d ledger.Date) float64 {
	epoch := time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)
	return d.Time().Sub(epoch).Hours() / 24
}

func TestNormalizeDateThreeEncodings(t *testing.T) {
	want := ledger.Date{Year: 2024, Month: time.March, Day: 10}

	tests := []struct {
		name string
		cell CellValue
	}{
		{"native date", DateCell(want)},
		{"dmy string", TextCell("10/03/2024")},
		{"iso string", TextCell("2024-03-10")},
		{"day serial", NumberCell(excelSerial(want))},
		{"known serial 45361", NumberCell(45361)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.cell.NormalizeDate()
			if !ok {
				t.Fatalf("NormalizeDate() failed for %v", tt.cell)
			}
			if got != want {
				t.Errorf("NormalizeDate() = %v, expected %v", got, want)
			}
		})
	}
}

func TestNormalizeDateRejects(t *testing.T) {
	tests := []struct {
		name string
		cell CellValue
	}{
		{"empty", EmptyCell()},
		{"free text", TextCell("mañana")},
		{"partial date", TextCell("10/03")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, ok := tt.cell.NormalizeDate(); ok {
				t.Errorf("NormalizeDate() accepted %v", tt.cell)
			}
		})
	}
}

func TestNormalizeAmount(t *testing.T) {
	tests := []struct {
		name   string
		cell   CellValue
		want   string
		wantOK bool
	}{
		{"number", NumberCell(1000), "1000", true},
		{"decimal number", NumberCell(1234.56), "1234.56", true},
		{"numeric string", TextCell("500"), "500", true},
		{"numeric string with decimals", TextCell(" 12.50 "), "12.5", true},
		{"negative string", TextCell("-3"), "-3", true},
		{"free text", TextCell("quinientos"), "", false},
		{"empty", EmptyCell(), "", false},
		{"date", DateCell(ledger.Date{Year: 2024, Month: 1, Day: 5}), "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.cell.NormalizeAmount()
			if ok != tt.wantOK {
				t.Fatalf("NormalizeAmount() ok = %v, expected %v", ok, tt.wantOK)
			}
			if ok && got.String() != tt.want {
				t.Errorf("NormalizeAmount() = %s, expected %s", got, tt.want)
			}
		})
	}
}

func TestNormalizeText(t *testing.T) {
	if got := TextCell("  A-001  ").NormalizeText(); got != "A-001" {
		t.Errorf("NormalizeText() = %q, expected %q", got, "A-001")
	}
	if got := EmptyCell().NormalizeText(); got != "" {
		t.Errorf("NormalizeText() on empty = %q, expected empty", got)
	}
}
