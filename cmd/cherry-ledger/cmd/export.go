package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/dualibesoft/cherry-ledger/pkg/interchange"
)

var exportSupplier string

// exportCmd represents the export command.
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export a supplier's ledger as a workbook",
	Long: `Export one supplier's invoices and payments as a spreadsheet
workbook: invoices in the debit block, payments in the credit block,
dates as DD/MM/YYYY and amounts in the currency display format.

The file is written to the exports directory and can be re-imported
later without losing any record.

Example:
  cherry-ledger export --supplier "Acme"`,
	Run: runExport,
}

func init() {
	exportCmd.Flags().StringVar(&exportSupplier, "supplier", "", "Supplier name or ID (required)")
	exportCmd.MarkFlagRequired("supplier")
}

func runExport(cmd *cobra.Command, args []string) {
	cfg, resolver, conn := setup()
	defer conn.Close()

	repo := openDataSource(cfg, conn)
	layout := loadLayout(cfg)

	supplier, err := findSupplier(repo, exportSupplier)
	exitOnError(err, "failed to resolve supplier")

	invoices, err := repo.ListInvoices(supplier.ID)
	exitOnError(err, "failed to list invoices")
	payments, err := repo.ListPayments(supplier.ID)
	exitOnError(err, "failed to list payments")

	slog.Info("Exporting ledger",
		"supplier", supplier.Name,
		"invoices", len(invoices),
		"payments", len(payments),
	)

	buf, filename, err := interchange.ExportSupplier(supplier, invoices, payments, layout)
	exitOnError(err, "failed to build workbook")

	outPath := resolver.ExportFilePath(filename)
	err = resolver.EnsureParentDir(outPath)
	exitOnError(err, "failed to create exports directory")
	err = os.WriteFile(outPath, buf.Bytes(), 0644)
	exitOnError(err, "failed to write workbook")

	fmt.Printf("Exported %d invoices and %d payments to %s\n", len(invoices), len(payments), outPath)
}
