// Package cmd provides CLI commands for cherry-ledger.
package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dualibesoft/cherry-ledger/pkg/api"
	"github.com/dualibesoft/cherry-ledger/pkg/config"
	"github.com/dualibesoft/cherry-ledger/pkg/db"
	"github.com/dualibesoft/cherry-ledger/pkg/ledger"
	"github.com/dualibesoft/cherry-ledger/pkg/pathutil"
	"github.com/dualibesoft/cherry-ledger/pkg/sheet"
	"github.com/dualibesoft/cherry-ledger/pkg/store"
)

var (
	cfgFile string
	debug   bool
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "cherry-ledger",
	Short: "Bookkeeping tools for the Cherry backend",
	Long: `cherry-ledger works with supplier and customer accounts kept in the
Cherry bookkeeping backend, or in a local SQLite store when no backend
is configured.

It supports:
- Due-date alerts for supplier invoices
- Exporting a supplier's ledger as a spreadsheet workbook
- Importing invoice and payment rows from a workbook, with review
  before anything is committed
- Whole-system backup workbooks, on demand or on a cadence

Example:
  cherry-ledger alerts
  cherry-ledger export --supplier "Acme"
  cherry-ledger import --supplier "Acme" --file enero.xlsx
  cherry-ledger backup --auto`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// Setup logging
		logLevel := slog.LevelInfo
		if debug {
			logLevel = slog.LevelDebug
		}

		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: logLevel,
		}))
		slog.SetDefault(logger)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is .env)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")

	// Add subcommands
	rootCmd.AddCommand(alertsCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(backupCmd)
	rootCmd.AddCommand(statsCmd)
}

// Helper function to get config file path.
func getConfigFile() string {
	if cfgFile != "" {
		return cfgFile
	}
	return "" // Will use default .env loading
}

// Helper function to handle errors and exit.
func exitOnError(err error, msg string) {
	if err != nil {
		slog.Error(msg, "error", err)
		fmt.Fprintf(os.Stderr, "Error: %s: %v\n", msg, err)
		os.Exit(1)
	}
}

// dataSource is what every command works against: bookkeeping records
// plus the produce-stand data backups need.
type dataSource interface {
	ledger.Repository
	ledger.ProduceSource
}

// setup loads configuration and opens the local database. The
// database is opened even when a backend is configured; import and
// backup history always live locally.
func setup() (*config.Config, *pathutil.PathResolver, *db.Connection) {
	cfg, err := config.Load(getConfigFile())
	exitOnError(err, "failed to load configuration")

	if err := cfg.Validate("data.root"); err != nil {
		exitOnError(err, "invalid configuration")
	}

	resolver := pathutil.New(pathutil.Config{
		DataRoot:     cfg.Data.Root,
		DatabasePath: cfg.Data.DBPath,
		ExportsDir:   cfg.Data.ExportsDir,
	})

	dbPath := resolver.GetDatabasePath()
	slog.Debug("Opening database", "path", dbPath)
	conn, err := db.Open(dbPath)
	exitOnError(err, "failed to open database")

	return cfg, resolver, conn
}

// openDataSource returns the API client when a backend URL is
// configured, the local store otherwise.
func openDataSource(cfg *config.Config, conn *db.Connection) dataSource {
	if cfg.API.URL != "" {
		slog.Debug("Using API backend", "url", cfg.API.URL)
		return api.NewClient(api.ClientConfig{BaseURL: cfg.API.URL})
	}
	slog.Debug("Using local store", "path", conn.Path())
	return store.New(conn)
}

// loadLayout returns the configured sheet layout profile, or the
// built-in default.
func loadLayout(cfg *config.Config) sheet.Layout {
	if cfg.Data.LayoutFile == "" {
		return sheet.DefaultLayout()
	}
	layout, err := sheet.LoadLayout(cfg.Data.LayoutFile)
	exitOnError(err, "failed to load sheet layout")
	return layout
}

// findSupplier resolves a supplier by ID or (case-insensitive) name.
func findSupplier(repo ledger.Repository, nameOrID string) (ledger.Supplier, error) {
	suppliers, err := repo.ListSuppliers()
	if err != nil {
		return ledger.Supplier{}, err
	}
	for _, s := range suppliers {
		if s.ID == nameOrID || strings.EqualFold(s.Name, nameOrID) {
			return s, nil
		}
	}
	return ledger.Supplier{}, fmt.Errorf("supplier %q not found", nameOrID)
}
