package db

// Schema defines the SQL statements to create database tables.
// Monetary amounts are stored as decimal strings so values survive
// round trips without binary floating point drift. Dates are
// YYYY-MM-DD text.
const Schema = `
-- Bookkeeping entities (local store variant)
CREATE TABLE IF NOT EXISTS suppliers (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS customers (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS invoices (
    id TEXT PRIMARY KEY,
    supplier_id TEXT NOT NULL REFERENCES suppliers(id) ON DELETE CASCADE,
    issue_date TEXT NOT NULL,
    due_date TEXT,                    -- NULL when the invoice has no due date
    number TEXT NOT NULL,
    amount TEXT NOT NULL,
    rejected TEXT NOT NULL DEFAULT '0'
);

CREATE INDEX IF NOT EXISTS idx_invoices_supplier
    ON invoices(supplier_id);

CREATE TABLE IF NOT EXISTS payments (
    id TEXT PRIMARY KEY,
    supplier_id TEXT NOT NULL REFERENCES suppliers(id) ON DELETE CASCADE,
    date TEXT NOT NULL,
    amount TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_payments_supplier
    ON payments(supplier_id);

CREATE TABLE IF NOT EXISTS debts (
    id TEXT PRIMARY KEY,
    customer_id TEXT NOT NULL REFERENCES customers(id) ON DELETE CASCADE,
    date TEXT NOT NULL,
    amount TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_debts_customer
    ON debts(customer_id);

-- Produce stand
CREATE TABLE IF NOT EXISTS months (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS daily_sales (
    id TEXT PRIMARY KEY,
    month_id TEXT NOT NULL REFERENCES months(id) ON DELETE CASCADE,
    date TEXT NOT NULL,
    weekday TEXT NOT NULL DEFAULT '',
    goods_cost TEXT NOT NULL DEFAULT '0',
    expenses TEXT NOT NULL DEFAULT '0',
    revenue TEXT NOT NULL DEFAULT '0'
);

CREATE INDEX IF NOT EXISTS idx_daily_sales_month
    ON daily_sales(month_id);

CREATE TABLE IF NOT EXISTS fixed_costs (
    id TEXT PRIMARY KEY,
    month_id TEXT NOT NULL REFERENCES months(id) ON DELETE CASCADE,
    concept TEXT NOT NULL,
    total TEXT NOT NULL DEFAULT '0',
    percent TEXT NOT NULL DEFAULT '0',
    allocated TEXT NOT NULL DEFAULT '0'
);

CREATE INDEX IF NOT EXISTS idx_fixed_costs_month
    ON fixed_costs(month_id);

-- Import history: one row per committed workbook import
CREATE TABLE IF NOT EXISTS import_history (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    supplier_id TEXT NOT NULL,
    source_file TEXT NOT NULL,
    invoice_count INTEGER NOT NULL,
    payment_count INTEGER NOT NULL,
    skipped_rows INTEGER NOT NULL,
    imported_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_import_history_supplier
    ON import_history(supplier_id);

-- Backup history: one row per generated backup workbook
CREATE TABLE IF NOT EXISTS backup_history (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    file_name TEXT NOT NULL,
    sheet_count INTEGER NOT NULL,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);

-- Key-value metadata (last backup time, etc.)
CREATE TABLE IF NOT EXISTS app_metadata (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL,
    updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);
`
