// Package pathutil provides centralized path management for the data
// directory, database and exported workbooks.
package pathutil

import (
	"os"
	"path/filepath"
)

// PathResolver manages paths under the data root.
type PathResolver struct {
	dataRoot   string
	dbPath     string
	exportsDir string
}

// Config represents the configuration for PathResolver.
type Config struct {
	// DataRoot is the root directory for all application data.
	DataRoot string
	// DatabasePath is the path to the SQLite database file.
	DatabasePath string
	// ExportsDir is the directory exported workbooks are written to.
	ExportsDir string
}

// New creates a new PathResolver with the given configuration.
// If DatabasePath is empty, it defaults to {DataRoot}/.cherry/ledger.db.
// If ExportsDir is empty, it defaults to {DataRoot}/exports.
func New(config Config) *PathResolver {
	dbPath := config.DatabasePath
	if dbPath == "" {
		dbPath = filepath.Join(config.DataRoot, ".cherry", "ledger.db")
	}

	exportsDir := config.ExportsDir
	if exportsDir == "" {
		exportsDir = filepath.Join(config.DataRoot, "exports")
	}

	return &PathResolver{
		dataRoot:   config.DataRoot,
		dbPath:     dbPath,
		exportsDir: exportsDir,
	}
}

// GetDataRoot returns the data root directory.
func (p *PathResolver) GetDataRoot() string {
	return p.dataRoot
}

// GetDatabasePath returns the database file path.
func (p *PathResolver) GetDatabasePath() string {
	return p.dbPath
}

// GetExportsDir returns the exports directory.
func (p *PathResolver) GetExportsDir() string {
	return p.exportsDir
}

// ExportFilePath returns the full path for an exported workbook.
func (p *PathResolver) ExportFilePath(filename string) string {
	return filepath.Join(p.exportsDir, filename)
}

// EnsureDir creates a directory if it doesn't exist, including parents.
func (p *PathResolver) EnsureDir(dir string) error {
	return os.MkdirAll(dir, 0755)
}

// EnsureParentDir creates the parent directory of a file path.
func (p *PathResolver) EnsureParentDir(filePath string) error {
	return os.MkdirAll(filepath.Dir(filePath), 0755)
}

// FileExists checks if a file exists.
func (p *PathResolver) FileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
