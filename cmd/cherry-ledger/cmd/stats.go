package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/dualibesoft/cherry-ledger/pkg/db"
)

// statsCmd represents the stats command.
var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Display import and backup statistics",
	Long: `Display statistics about workbook imports and backups.

Shows:
- Total number of imports and the records they brought in
- Total number of backups
- Last backup timestamp

Example:
  cherry-ledger stats`,
	Run: runStats,
}

func runStats(cmd *cobra.Command, args []string) {
	_, _, conn := setup()
	defer conn.Close()

	history := db.NewHistory(conn)

	stats, err := history.GetStats()
	exitOnError(err, "failed to get statistics")

	fmt.Println("\n=== Interchange Statistics ===")
	fmt.Printf("Total imports:      %d\n", stats.TotalImports)
	fmt.Printf("Imported invoices:  %d\n", stats.ImportedInvoices)
	fmt.Printf("Imported payments:  %d\n", stats.ImportedPayments)
	fmt.Printf("Total backups:      %d\n", stats.TotalBackups)

	if stats.LastBackup.Valid {
		fmt.Printf("Last backup:        %s\n", stats.LastBackup.String)
	} else {
		fmt.Printf("Last backup:        (never)\n")
	}

	fmt.Println()

	slog.Info("Statistics displayed successfully")
}
