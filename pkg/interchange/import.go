package interchange

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/dualibesoft/cherry-ledger/pkg/ledger"
	"github.com/dualibesoft/cherry-ledger/pkg/sheet"
)

// StagedImport holds records parsed from a workbook, awaiting an
// explicit commit. Nothing is persisted until Commit is called, so a
// caller can show the staged counts and let the user back out.
type StagedImport struct {
	SupplierID  string
	Invoices    []ledger.Invoice
	Payments    []ledger.Payment
	SkippedRows int
}

// ImportWorkbook parses the first sheet of a workbook into staged
// records for the given supplier. Unreadable content or a sheet that
// does not match the layout is a *sheet.ParseError; rows that cannot
// be interpreted are skipped and counted, not errors.
func ImportWorkbook(r io.Reader, supplierID string, layout sheet.Layout) (*StagedImport, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, &sheet.ParseError{Reason: fmt.Sprintf("not a readable workbook: %v", err)}
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, &sheet.ParseError{Reason: "workbook has no sheets"}
	}

	parsed, err := sheet.ParseLedger(f, sheets[0], supplierID, layout)
	if err != nil {
		return nil, err
	}

	return &StagedImport{
		SupplierID:  supplierID,
		Invoices:    parsed.Invoices,
		Payments:    parsed.Payments,
		SkippedRows: parsed.SkippedRows,
	}, nil
}

// Empty reports whether the staging area holds no records at all.
func (s *StagedImport) Empty() bool {
	return len(s.Invoices) == 0 && len(s.Payments) == 0
}

// Commit persists the staged records through the repository. Existing
// records are never touched; staged records carry fresh IDs and are
// appended.
func (s *StagedImport) Commit(repo ledger.Repository) error {
	for _, inv := range s.Invoices {
		if _, err := repo.CreateInvoice(inv); err != nil {
			return fmt.Errorf("failed to commit invoice %s: %w", inv.Number, err)
		}
	}
	for _, p := range s.Payments {
		if _, err := repo.CreatePayment(p); err != nil {
			return fmt.Errorf("failed to commit payment of %s: %w", p.Date, err)
		}
	}
	return nil
}
