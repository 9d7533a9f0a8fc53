package cmd

import (
	"bufio"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dualibesoft/cherry-ledger/pkg/db"
	"github.com/dualibesoft/cherry-ledger/pkg/interchange"
)

var (
	importSupplier string
	importFile     string
	importYes      bool
)

// importCmd represents the import command.
var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import invoices and payments from a workbook",
	Long: `Import invoice and payment rows from a spreadsheet workbook into a
supplier's ledger.

Rows are staged first: a debit row is taken when its date cell is
filled and its amount is a number, a credit row likewise. Everything
else is skipped and counted. The staged totals are shown and nothing
is committed until confirmed, so a wrong file costs nothing.

Existing records are never modified; imported records are appended
with fresh IDs.

Example:
  cherry-ledger import --supplier "Acme" --file enero.xlsx
  cherry-ledger import --supplier "Acme" --file enero.xlsx --yes`,
	Run: runImport,
}

func init() {
	importCmd.Flags().StringVar(&importSupplier, "supplier", "", "Supplier name or ID (required)")
	importCmd.Flags().StringVar(&importFile, "file", "", "Workbook file to import (required)")
	importCmd.Flags().BoolVar(&importYes, "yes", false, "Commit without asking for confirmation")

	importCmd.MarkFlagRequired("supplier")
	importCmd.MarkFlagRequired("file")
}

func runImport(cmd *cobra.Command, args []string) {
	cfg, _, conn := setup()
	defer conn.Close()

	repo := openDataSource(cfg, conn)
	layout := loadLayout(cfg)

	supplier, err := findSupplier(repo, importSupplier)
	exitOnError(err, "failed to resolve supplier")

	f, err := os.Open(importFile)
	exitOnError(err, "failed to open workbook")
	defer f.Close()

	slog.Info("Staging import", "supplier", supplier.Name, "file", importFile)
	staged, err := interchange.ImportWorkbook(f, supplier.ID, layout)
	exitOnError(err, "failed to parse workbook")

	fmt.Printf("Staged from %s:\n", filepath.Base(importFile))
	fmt.Printf("  Invoices: %d\n", len(staged.Invoices))
	fmt.Printf("  Payments: %d\n", len(staged.Payments))
	if staged.SkippedRows > 0 {
		fmt.Printf("  Skipped rows: %d\n", staged.SkippedRows)
	}

	if staged.Empty() {
		fmt.Println("Nothing to import.")
		return
	}

	if !importYes && !confirm(fmt.Sprintf("Commit to %s?", supplier.Name)) {
		fmt.Println("Aborted. Nothing was committed.")
		return
	}

	err = staged.Commit(repo)
	exitOnError(err, "failed to commit staged records")

	history := db.NewHistory(conn)
	err = history.RecordImport(db.ImportRecord{
		SupplierID:   supplier.ID,
		SourceFile:   filepath.Base(importFile),
		InvoiceCount: len(staged.Invoices),
		PaymentCount: len(staged.Payments),
		SkippedRows:  staged.SkippedRows,
	})
	exitOnError(err, "failed to record import history")

	fmt.Printf("Committed %d invoices and %d payments to %s\n",
		len(staged.Invoices), len(staged.Payments), supplier.Name)
}

// confirm asks a yes/no question on stdin.
func confirm(prompt string) bool {
	fmt.Printf("%s [y/N]: ", prompt)
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}
