package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/dualibesoft/cherry-ledger/pkg/ledger"
)

// alertsCmd represents the alerts command.
var alertsCmd = &cobra.Command{
	Use:   "alerts",
	Short: "Show suppliers with overdue or soon-due invoices",
	Long: `Show suppliers whose outstanding invoices are overdue or coming due.

Each supplier with a positive balance is placed in at most one bucket,
the most urgent one any of its due dates falls in:
- OVERDUE: a due date already passed
- DUE SOON (0-3 days): due within the short window
- UPCOMING (4-7 days): due within the horizon

Suppliers that owe nothing are never listed, even with overdue
invoices on file. The windows can be changed in the layout profile.

Example:
  cherry-ledger alerts`,
	Run: runAlerts,
}

func runAlerts(cmd *cobra.Command, args []string) {
	cfg, _, conn := setup()
	defer conn.Close()

	repo := openDataSource(cfg, conn)
	layout := loadLayout(cfg)

	suppliers, err := repo.ListSuppliers()
	exitOnError(err, "failed to list suppliers")

	invoices := make(map[string][]ledger.Invoice, len(suppliers))
	payments := make(map[string][]ledger.Payment, len(suppliers))
	for _, s := range suppliers {
		invoices[s.ID], err = repo.ListInvoices(s.ID)
		exitOnError(err, "failed to list invoices")
		payments[s.ID], err = repo.ListPayments(s.ID)
		exitOnError(err, "failed to list payments")
	}

	today := ledger.Today()
	report := ledger.ClassifyAccountsWindows(suppliers, invoices, payments, today, layout.Windows())
	slog.Debug("Classified accounts",
		"suppliers", len(suppliers),
		"overdue", len(report.Overdue),
		"due_soon", len(report.DueSoon0to3),
		"upcoming", len(report.DueSoon4to7),
	)

	if len(report.Overdue) == 0 && len(report.DueSoon0to3) == 0 && len(report.DueSoon4to7) == 0 {
		fmt.Println("No due-date alerts.")
		return
	}

	printBucket("OVERDUE", report.Overdue)
	printBucket(fmt.Sprintf("DUE SOON (0-%d days)", layout.DueSoonDays), report.DueSoon0to3)
	printBucket(fmt.Sprintf("UPCOMING (%d-%d days)", layout.DueSoonDays+1, layout.HorizonDays), report.DueSoon4to7)
}

func printBucket(title string, alerts []ledger.AccountAlert) {
	if len(alerts) == 0 {
		return
	}
	fmt.Printf("\n=== %s ===\n", title)
	for _, a := range alerts {
		fmt.Printf("  %-30s $%s\n", a.Name, a.Balance.StringFixed(2))
	}
}
