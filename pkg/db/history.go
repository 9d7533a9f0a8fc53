package db

import (
	"database/sql"
	"fmt"
	"time"
)

// ImportRecord is one committed workbook import.
type ImportRecord struct {
	ID           int64
	SupplierID   string
	SourceFile   string
	InvoiceCount int
	PaymentCount int
	SkippedRows  int
	ImportedAt   time.Time
}

// BackupRecord is one generated backup workbook.
type BackupRecord struct {
	ID         int64
	FileName   string
	SheetCount int
	CreatedAt  time.Time
}

// History manages import/backup history and app metadata.
type History struct {
	conn *Connection
}

// NewHistory creates a History over an open connection.
func NewHistory(conn *Connection) *History {
	return &History{conn: conn}
}

// RecordImport records a committed workbook import.
func (h *History) RecordImport(rec ImportRecord) error {
	query := `
		INSERT INTO import_history (supplier_id, source_file, invoice_count, payment_count, skipped_rows)
		VALUES (?, ?, ?, ?, ?)
	`
	_, err := h.conn.Exec(query,
		rec.SupplierID,
		rec.SourceFile,
		rec.InvoiceCount,
		rec.PaymentCount,
		rec.SkippedRows,
	)
	if err != nil {
		return fmt.Errorf("failed to record import: %w", err)
	}
	return nil
}

// RecordBackup records a generated backup workbook.
func (h *History) RecordBackup(rec BackupRecord) error {
	query := `INSERT INTO backup_history (file_name, sheet_count) VALUES (?, ?)`
	if _, err := h.conn.Exec(query, rec.FileName, rec.SheetCount); err != nil {
		return fmt.Errorf("failed to record backup: %w", err)
	}
	return nil
}

// ImportsForSupplier retrieves import history for one supplier,
// newest first.
func (h *History) ImportsForSupplier(supplierID string) ([]ImportRecord, error) {
	query := `
		SELECT id, supplier_id, source_file, invoice_count, payment_count, skipped_rows, imported_at
		FROM import_history
		WHERE supplier_id = ?
		ORDER BY imported_at DESC
	`
	rows, err := h.conn.Query(query, supplierID)
	if err != nil {
		return nil, fmt.Errorf("failed to query import history: %w", err)
	}
	defer rows.Close()

	var records []ImportRecord
	for rows.Next() {
		var rec ImportRecord
		if err := rows.Scan(
			&rec.ID,
			&rec.SupplierID,
			&rec.SourceFile,
			&rec.InvoiceCount,
			&rec.PaymentCount,
			&rec.SkippedRows,
			&rec.ImportedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan import record: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Stats summarizes the history tables.
type Stats struct {
	TotalImports     int
	ImportedInvoices int
	ImportedPayments int
	TotalBackups     int
	LastBackup       sql.NullString
}

// GetStats retrieves history statistics.
func (h *History) GetStats() (*Stats, error) {
	var stats Stats

	err := h.conn.QueryRow(`
		SELECT COUNT(*), COALESCE(SUM(invoice_count), 0), COALESCE(SUM(payment_count), 0)
		FROM import_history
	`).Scan(&stats.TotalImports, &stats.ImportedInvoices, &stats.ImportedPayments)
	if err != nil {
		return nil, fmt.Errorf("failed to get import stats: %w", err)
	}

	err = h.conn.QueryRow(`SELECT COUNT(*) FROM backup_history`).Scan(&stats.TotalBackups)
	if err != nil {
		return nil, fmt.Errorf("failed to get backup count: %w", err)
	}

	err = h.conn.QueryRow(`SELECT MAX(created_at) FROM backup_history`).Scan(&stats.LastBackup)
	if err != nil && err != sql.ErrNoRows {
		return nil, fmt.Errorf("failed to get last backup time: %w", err)
	}

	return &stats, nil
}

// GetMetadata retrieves a metadata value, empty string when unset.
func (h *History) GetMetadata(key string) (string, error) {
	var value string
	err := h.conn.QueryRow(`SELECT value FROM app_metadata WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to get metadata: %w", err)
	}
	return value, nil
}

// SetMetadata sets a metadata value.
func (h *History) SetMetadata(key, value string) error {
	query := `
		INSERT INTO app_metadata (key, value, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET
			value = excluded.value,
			updated_at = CURRENT_TIMESTAMP
	`
	if _, err := h.conn.Exec(query, key, value); err != nil {
		return fmt.Errorf("failed to set metadata: %w", err)
	}
	return nil
}
