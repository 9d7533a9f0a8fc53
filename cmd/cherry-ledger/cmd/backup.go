package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/dualibesoft/cherry-ledger/pkg/db"
	"github.com/dualibesoft/cherry-ledger/pkg/interchange"
)

var backupAuto bool

// backupCmd represents the backup command.
var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Write a whole-system backup workbook",
	Long: `Write a backup workbook covering everything: customer and supplier
summaries and details, the produce-stand months, daily sales and fixed
costs. Sheets that would come out empty are omitted.

With --auto the backup only runs when the last recorded one is five or
more days old, so the command can be called from a cron job or shell
profile without piling up files.

Example:
  cherry-ledger backup
  cherry-ledger backup --auto`,
	Run: runBackup,
}

func init() {
	backupCmd.Flags().BoolVar(&backupAuto, "auto", false, "Only back up when the last backup is stale")
}

func runBackup(cmd *cobra.Command, args []string) {
	cfg, resolver, conn := setup()
	defer conn.Close()

	history := db.NewHistory(conn)
	now := time.Now()

	if backupAuto {
		due, err := interchange.BackupDue(history, now, interchange.DefaultBackupEvery)
		exitOnError(err, "failed to check backup cadence")
		if !due {
			slog.Debug("Backup not due yet")
			fmt.Println("Backup not due yet.")
			return
		}
	}

	repo := openDataSource(cfg, conn)
	layout := loadLayout(cfg)

	slog.Info("Loading snapshot")
	snap, err := interchange.LoadSnapshot(repo, repo)
	exitOnError(err, "failed to load data")

	buf, filename, sheets, err := interchange.ExportBackup(snap, layout, now)
	exitOnError(err, "failed to build backup")

	outPath := resolver.ExportFilePath(filename)
	err = resolver.EnsureParentDir(outPath)
	exitOnError(err, "failed to create exports directory")
	err = os.WriteFile(outPath, buf.Bytes(), 0644)
	exitOnError(err, "failed to write backup")

	err = history.RecordBackup(db.BackupRecord{FileName: filename, SheetCount: sheets})
	exitOnError(err, "failed to record backup history")
	err = interchange.MarkBackupDone(history, now)
	exitOnError(err, "failed to record backup time")

	fmt.Printf("Backup written: %s (%d sheets)\n", outPath, sheets)
}
