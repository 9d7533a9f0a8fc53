// Package store implements ledger.Repository and ledger.ProduceSource
// on the local SQLite database, for working offline or against an
// imported snapshot.
package store

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dualibesoft/cherry-ledger/pkg/db"
	"github.com/dualibesoft/cherry-ledger/pkg/ledger"
)

// Store persists bookkeeping records in SQLite. Amounts are stored as
// decimal strings and dates as YYYY-MM-DD text.
type Store struct {
	conn *db.Connection
}

// New creates a Store over an open connection.
func New(conn *db.Connection) *Store {
	return &Store{conn: conn}
}

func (s *Store) ListSuppliers() ([]ledger.Supplier, error) {
	rows, err := s.conn.Query(`SELECT id, name FROM suppliers ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list suppliers: %w", err)
	}
	defer rows.Close()

	var suppliers []ledger.Supplier
	for rows.Next() {
		var sup ledger.Supplier
		if err := rows.Scan(&sup.ID, &sup.Name); err != nil {
			return nil, fmt.Errorf("failed to scan supplier: %w", err)
		}
		suppliers = append(suppliers, sup)
	}
	return suppliers, rows.Err()
}

func (s *Store) CreateSupplier(name string) (ledger.Supplier, error) {
	sup := ledger.Supplier{ID: uuid.NewString(), Name: name}
	_, err := s.conn.Exec(`INSERT INTO suppliers (id, name) VALUES (?, ?)`, sup.ID, sup.Name)
	if err != nil {
		return ledger.Supplier{}, fmt.Errorf("failed to create supplier: %w", err)
	}
	return sup, nil
}

func (s *Store) DeleteSupplier(id string) error {
	if _, err := s.conn.Exec(`DELETE FROM suppliers WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete supplier: %w", err)
	}
	return nil
}

func (s *Store) ListInvoices(supplierID string) ([]ledger.Invoice, error) {
	rows, err := s.conn.Query(`
		SELECT id, supplier_id, issue_date, due_date, number, amount, rejected
		FROM invoices
		WHERE supplier_id = ?
		ORDER BY issue_date
	`, supplierID)
	if err != nil {
		return nil, fmt.Errorf("failed to list invoices: %w", err)
	}
	defer rows.Close()

	var invoices []ledger.Invoice
	for rows.Next() {
		var (
			inv              ledger.Invoice
			issue            string
			due              sql.NullString
			amount, rejected string
		)
		if err := rows.Scan(&inv.ID, &inv.SupplierID, &issue, &due, &inv.Number, &amount, &rejected); err != nil {
			return nil, fmt.Errorf("failed to scan invoice: %w", err)
		}
		if inv.IssueDate, err = ledger.ParseISO(issue); err != nil {
			return nil, fmt.Errorf("invoice %s: bad issue date: %w", inv.ID, err)
		}
		if due.Valid && due.String != "" {
			d, err := ledger.ParseISO(due.String)
			if err != nil {
				return nil, fmt.Errorf("invoice %s: bad due date: %w", inv.ID, err)
			}
			inv.DueDate = &d
		}
		if inv.Amount, err = decimal.NewFromString(amount); err != nil {
			return nil, fmt.Errorf("invoice %s: bad amount: %w", inv.ID, err)
		}
		if inv.Rejected, err = decimal.NewFromString(rejected); err != nil {
			return nil, fmt.Errorf("invoice %s: bad rejected amount: %w", inv.ID, err)
		}
		invoices = append(invoices, inv)
	}
	return invoices, rows.Err()
}

func (s *Store) CreateInvoice(inv ledger.Invoice) (ledger.Invoice, error) {
	if inv.ID == "" {
		inv.ID = uuid.NewString()
	}
	var due interface{}
	if inv.DueDate != nil {
		due = inv.DueDate.String()
	}
	_, err := s.conn.Exec(`
		INSERT INTO invoices (id, supplier_id, issue_date, due_date, number, amount, rejected)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, inv.ID, inv.SupplierID, inv.IssueDate.String(), due, inv.Number, inv.Amount.String(), inv.Rejected.String())
	if err != nil {
		return ledger.Invoice{}, fmt.Errorf("failed to create invoice: %w", err)
	}
	return inv, nil
}

func (s *Store) DeleteInvoice(id string) error {
	if _, err := s.conn.Exec(`DELETE FROM invoices WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete invoice: %w", err)
	}
	return nil
}

func (s *Store) ListPayments(supplierID string) ([]ledger.Payment, error) {
	rows, err := s.conn.Query(`
		SELECT id, supplier_id, date, amount
		FROM payments
		WHERE supplier_id = ?
		ORDER BY date
	`, supplierID)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	defer rows.Close()

	var payments []ledger.Payment
	for rows.Next() {
		var (
			p            ledger.Payment
			date, amount string
		)
		if err := rows.Scan(&p.ID, &p.SupplierID, &date, &amount); err != nil {
			return nil, fmt.Errorf("failed to scan payment: %w", err)
		}
		if p.Date, err = ledger.ParseISO(date); err != nil {
			return nil, fmt.Errorf("payment %s: bad date: %w", p.ID, err)
		}
		if p.Amount, err = decimal.NewFromString(amount); err != nil {
			return nil, fmt.Errorf("payment %s: bad amount: %w", p.ID, err)
		}
		payments = append(payments, p)
	}
	return payments, rows.Err()
}

func (s *Store) CreatePayment(p ledger.Payment) (ledger.Payment, error) {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	_, err := s.conn.Exec(`
		INSERT INTO payments (id, supplier_id, date, amount) VALUES (?, ?, ?, ?)
	`, p.ID, p.SupplierID, p.Date.String(), p.Amount.String())
	if err != nil {
		return ledger.Payment{}, fmt.Errorf("failed to create payment: %w", err)
	}
	return p, nil
}

func (s *Store) DeletePayment(id string) error {
	if _, err := s.conn.Exec(`DELETE FROM payments WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete payment: %w", err)
	}
	return nil
}

func (s *Store) ListCustomers() ([]ledger.Customer, error) {
	rows, err := s.conn.Query(`SELECT id, name FROM customers ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}
	defer rows.Close()

	var customers []ledger.Customer
	for rows.Next() {
		var c ledger.Customer
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, fmt.Errorf("failed to scan customer: %w", err)
		}
		customers = append(customers, c)
	}
	return customers, rows.Err()
}

// CreateCustomer registers a customer account.
func (s *Store) CreateCustomer(name string) (ledger.Customer, error) {
	c := ledger.Customer{ID: uuid.NewString(), Name: name}
	_, err := s.conn.Exec(`INSERT INTO customers (id, name) VALUES (?, ?)`, c.ID, c.Name)
	if err != nil {
		return ledger.Customer{}, fmt.Errorf("failed to create customer: %w", err)
	}
	return c, nil
}

func (s *Store) ListDebts(customerID string) ([]ledger.Debt, error) {
	rows, err := s.conn.Query(`
		SELECT id, customer_id, date, amount
		FROM debts
		WHERE customer_id = ?
		ORDER BY date
	`, customerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list debts: %w", err)
	}
	defer rows.Close()

	var debts []ledger.Debt
	for rows.Next() {
		var (
			d            ledger.Debt
			date, amount string
		)
		if err := rows.Scan(&d.ID, &d.CustomerID, &date, &amount); err != nil {
			return nil, fmt.Errorf("failed to scan debt: %w", err)
		}
		if d.Date, err = ledger.ParseISO(date); err != nil {
			return nil, fmt.Errorf("debt %s: bad date: %w", d.ID, err)
		}
		if d.Amount, err = decimal.NewFromString(amount); err != nil {
			return nil, fmt.Errorf("debt %s: bad amount: %w", d.ID, err)
		}
		debts = append(debts, d)
	}
	return debts, rows.Err()
}

// CreateDebt records a customer debt.
func (s *Store) CreateDebt(d ledger.Debt) (ledger.Debt, error) {
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	_, err := s.conn.Exec(`
		INSERT INTO debts (id, customer_id, date, amount) VALUES (?, ?, ?, ?)
	`, d.ID, d.CustomerID, d.Date.String(), d.Amount.String())
	if err != nil {
		return ledger.Debt{}, fmt.Errorf("failed to create debt: %w", err)
	}
	return d, nil
}

func (s *Store) ListMonths() ([]ledger.Month, error) {
	rows, err := s.conn.Query(`SELECT id, name FROM months ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list months: %w", err)
	}
	defer rows.Close()

	var months []ledger.Month
	for rows.Next() {
		var m ledger.Month
		if err := rows.Scan(&m.ID, &m.Name); err != nil {
			return nil, fmt.Errorf("failed to scan month: %w", err)
		}
		months = append(months, m)
	}
	return months, rows.Err()
}

// CreateMonth opens a produce-stand accounting month.
func (s *Store) CreateMonth(name string) (ledger.Month, error) {
	m := ledger.Month{ID: uuid.NewString(), Name: name}
	_, err := s.conn.Exec(`INSERT INTO months (id, name) VALUES (?, ?)`, m.ID, m.Name)
	if err != nil {
		return ledger.Month{}, fmt.Errorf("failed to create month: %w", err)
	}
	return m, nil
}

func (s *Store) ListSales(monthID string) ([]ledger.DailySale, error) {
	rows, err := s.conn.Query(`
		SELECT id, month_id, date, weekday, goods_cost, expenses, revenue
		FROM daily_sales
		WHERE month_id = ?
		ORDER BY date
	`, monthID)
	if err != nil {
		return nil, fmt.Errorf("failed to list sales: %w", err)
	}
	defer rows.Close()

	var sales []ledger.DailySale
	for rows.Next() {
		var (
			sale                          ledger.DailySale
			date, cost, expenses, revenue string
		)
		if err := rows.Scan(&sale.ID, &sale.MonthID, &date, &sale.Weekday, &cost, &expenses, &revenue); err != nil {
			return nil, fmt.Errorf("failed to scan sale: %w", err)
		}
		if sale.Date, err = ledger.ParseISO(date); err != nil {
			return nil, fmt.Errorf("sale %s: bad date: %w", sale.ID, err)
		}
		if sale.GoodsCost, err = decimal.NewFromString(cost); err != nil {
			return nil, fmt.Errorf("sale %s: bad goods cost: %w", sale.ID, err)
		}
		if sale.Expenses, err = decimal.NewFromString(expenses); err != nil {
			return nil, fmt.Errorf("sale %s: bad expenses: %w", sale.ID, err)
		}
		if sale.Revenue, err = decimal.NewFromString(revenue); err != nil {
			return nil, fmt.Errorf("sale %s: bad revenue: %w", sale.ID, err)
		}
		sales = append(sales, sale)
	}
	return sales, rows.Err()
}

// CreateSale records one day of produce-stand trading.
func (s *Store) CreateSale(sale ledger.DailySale) (ledger.DailySale, error) {
	if sale.ID == "" {
		sale.ID = uuid.NewString()
	}
	_, err := s.conn.Exec(`
		INSERT INTO daily_sales (id, month_id, date, weekday, goods_cost, expenses, revenue)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, sale.ID, sale.MonthID, sale.Date.String(), sale.Weekday,
		sale.GoodsCost.String(), sale.Expenses.String(), sale.Revenue.String())
	if err != nil {
		return ledger.DailySale{}, fmt.Errorf("failed to create sale: %w", err)
	}
	return sale, nil
}

func (s *Store) ListFixedCosts(monthID string) ([]ledger.FixedCost, error) {
	rows, err := s.conn.Query(`
		SELECT id, month_id, concept, total, percent, allocated
		FROM fixed_costs
		WHERE month_id = ?
		ORDER BY concept
	`, monthID)
	if err != nil {
		return nil, fmt.Errorf("failed to list fixed costs: %w", err)
	}
	defer rows.Close()

	var costs []ledger.FixedCost
	for rows.Next() {
		var (
			fc                        ledger.FixedCost
			total, percent, allocated string
		)
		if err := rows.Scan(&fc.ID, &fc.MonthID, &fc.Concept, &total, &percent, &allocated); err != nil {
			return nil, fmt.Errorf("failed to scan fixed cost: %w", err)
		}
		if fc.Total, err = decimal.NewFromString(total); err != nil {
			return nil, fmt.Errorf("fixed cost %s: bad total: %w", fc.ID, err)
		}
		if fc.Percent, err = decimal.NewFromString(percent); err != nil {
			return nil, fmt.Errorf("fixed cost %s: bad percent: %w", fc.ID, err)
		}
		if fc.Allocated, err = decimal.NewFromString(allocated); err != nil {
			return nil, fmt.Errorf("fixed cost %s: bad allocated amount: %w", fc.ID, err)
		}
		costs = append(costs, fc)
	}
	return costs, rows.Err()
}

// CreateFixedCost records a monthly fixed cost allocation.
func (s *Store) CreateFixedCost(fc ledger.FixedCost) (ledger.FixedCost, error) {
	if fc.ID == "" {
		fc.ID = uuid.NewString()
	}
	_, err := s.conn.Exec(`
		INSERT INTO fixed_costs (id, month_id, concept, total, percent, allocated)
		VALUES (?, ?, ?, ?, ?, ?)
	`, fc.ID, fc.MonthID, fc.Concept, fc.Total.String(), fc.Percent.String(), fc.Allocated.String())
	if err != nil {
		return ledger.FixedCost{}, fmt.Errorf("failed to create fixed cost: %w", err)
	}
	return fc, nil
}
