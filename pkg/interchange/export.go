// Package interchange moves ledgers between the app and spreadsheet
// workbooks: per-supplier exports, staged imports and whole-system
// backups.
package interchange

import (
	"bytes"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/dualibesoft/cherry-ledger/pkg/ledger"
	"github.com/dualibesoft/cherry-ledger/pkg/sheet"
)

// ExportSupplier renders one supplier's ledger as a workbook with a
// single account sheet. It returns the workbook bytes and the
// suggested file name.
func ExportSupplier(supplier ledger.Supplier, invoices []ledger.Invoice, payments []ledger.Payment, layout sheet.Layout) (*bytes.Buffer, string, error) {
	sheetName := sanitizeSheetName(supplier.Name)

	f := excelize.NewFile()
	defer f.Close()
	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, "", fmt.Errorf("failed to name sheet: %w", err)
	}
	if err := sheet.WriteLedger(f, sheetName, invoices, payments, layout); err != nil {
		return nil, "", err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, "", fmt.Errorf("failed to serialize workbook: %w", err)
	}
	return buf, fmt.Sprintf("Reporte_%s.xlsx", sanitizeFileName(supplier.Name)), nil
}

// Snapshot is the full dataset a backup covers.
type Snapshot struct {
	Suppliers []ledger.Supplier
	Invoices  map[string][]ledger.Invoice
	Payments  map[string][]ledger.Payment

	Customers []ledger.Customer
	Debts     map[string][]ledger.Debt

	Months     []ledger.Month
	Sales      map[string][]ledger.DailySale
	FixedCosts map[string][]ledger.FixedCost
}

// LoadSnapshot reads the whole system from a repository and produce
// source.
func LoadSnapshot(repo ledger.Repository, produce ledger.ProduceSource) (*Snapshot, error) {
	snap := &Snapshot{
		Invoices:   make(map[string][]ledger.Invoice),
		Payments:   make(map[string][]ledger.Payment),
		Debts:      make(map[string][]ledger.Debt),
		Sales:      make(map[string][]ledger.DailySale),
		FixedCosts: make(map[string][]ledger.FixedCost),
	}

	var err error
	if snap.Suppliers, err = repo.ListSuppliers(); err != nil {
		return nil, fmt.Errorf("failed to load suppliers: %w", err)
	}
	for _, s := range snap.Suppliers {
		if snap.Invoices[s.ID], err = repo.ListInvoices(s.ID); err != nil {
			return nil, fmt.Errorf("failed to load invoices for %s: %w", s.Name, err)
		}
		if snap.Payments[s.ID], err = repo.ListPayments(s.ID); err != nil {
			return nil, fmt.Errorf("failed to load payments for %s: %w", s.Name, err)
		}
	}

	if snap.Customers, err = repo.ListCustomers(); err != nil {
		return nil, fmt.Errorf("failed to load customers: %w", err)
	}
	for _, c := range snap.Customers {
		if snap.Debts[c.ID], err = repo.ListDebts(c.ID); err != nil {
			return nil, fmt.Errorf("failed to load debts for %s: %w", c.Name, err)
		}
	}

	if produce != nil {
		if snap.Months, err = produce.ListMonths(); err != nil {
			return nil, fmt.Errorf("failed to load months: %w", err)
		}
		for _, m := range snap.Months {
			if snap.Sales[m.ID], err = produce.ListSales(m.ID); err != nil {
				return nil, fmt.Errorf("failed to load sales for %s: %w", m.Name, err)
			}
			if snap.FixedCosts[m.ID], err = produce.ListFixedCosts(m.ID); err != nil {
				return nil, fmt.Errorf("failed to load fixed costs for %s: %w", m.Name, err)
			}
		}
	}

	return snap, nil
}

// ExportBackup renders a whole-system backup workbook: summary and
// detail sheets for customers, suppliers and the produce stand.
// Sheets that would come out empty are omitted. Returns the workbook
// bytes, the timestamped file name and the number of sheets written.
func ExportBackup(snap *Snapshot, layout sheet.Layout, now time.Time) (*bytes.Buffer, string, int, error) {
	f := excelize.NewFile()
	defer f.Close()

	w := &backupWriter{f: f, format: layout.CurrencyFormat}
	if err := w.writeCustomerSummary(snap); err != nil {
		return nil, "", 0, err
	}
	if err := w.writeDebtDetail(snap); err != nil {
		return nil, "", 0, err
	}
	if err := w.writeSupplierSummary(snap); err != nil {
		return nil, "", 0, err
	}
	if err := w.writeInvoiceDetail(snap); err != nil {
		return nil, "", 0, err
	}
	if err := w.writePaymentDetail(snap); err != nil {
		return nil, "", 0, err
	}
	if err := w.writeProduceSummary(snap); err != nil {
		return nil, "", 0, err
	}
	if err := w.writeDailySales(snap); err != nil {
		return nil, "", 0, err
	}
	if err := w.writeFixedCosts(snap); err != nil {
		return nil, "", 0, err
	}

	if w.sheets == 0 {
		return nil, "", 0, fmt.Errorf("nothing to back up: all datasets are empty")
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, "", 0, fmt.Errorf("failed to serialize backup: %w", err)
	}
	name := fmt.Sprintf("Backup_Cherry_%s.xlsx", now.Format("2006-01-02_15-04"))
	return buf, name, w.sheets, nil
}

// backupWriter appends tabular sheets to a workbook, renaming the
// default sheet for the first table and creating new ones after.
type backupWriter struct {
	f      *excelize.File
	format string
	sheets int
}

func (w *backupWriter) writeTable(name string, headers []string, rows [][]interface{}, currencyCols []int) error {
	if len(rows) == 0 {
		return nil
	}

	if w.sheets == 0 {
		if err := w.f.SetSheetName("Sheet1", name); err != nil {
			return fmt.Errorf("failed to name sheet %q: %w", name, err)
		}
	} else {
		if _, err := w.f.NewSheet(name); err != nil {
			return fmt.Errorf("failed to create sheet %q: %w", name, err)
		}
	}
	w.sheets++

	for col, h := range headers {
		if err := w.setCell(name, col+1, 1, h); err != nil {
			return err
		}
	}
	for i, row := range rows {
		for col, v := range row {
			if err := w.setCell(name, col+1, i+2, v); err != nil {
				return err
			}
		}
	}

	if len(currencyCols) == 0 {
		return nil
	}
	style, err := w.f.NewStyle(&excelize.Style{CustomNumFmt: &w.format})
	if err != nil {
		return fmt.Errorf("failed to create currency style: %w", err)
	}
	for _, col := range currencyCols {
		top, err := excelize.CoordinatesToCellName(col, 2)
		if err != nil {
			return err
		}
		bottom, err := excelize.CoordinatesToCellName(col, len(rows)+1)
		if err != nil {
			return err
		}
		if err := w.f.SetCellStyle(name, top, bottom, style); err != nil {
			return fmt.Errorf("failed to style sheet %q: %w", name, err)
		}
	}
	return nil
}

func (w *backupWriter) setCell(sheetName string, col, row int, value interface{}) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return err
	}
	if err := w.f.SetCellValue(sheetName, cell, value); err != nil {
		return fmt.Errorf("failed to write cell %s: %w", cell, err)
	}
	return nil
}

func (w *backupWriter) writeCustomerSummary(snap *Snapshot) error {
	var rows [][]interface{}
	for _, c := range snap.Customers {
		debts := snap.Debts[c.ID]
		total := ledger.CustomerTotal(c.ID, debts)

		var last *ledger.Debt
		for i := range debts {
			if last == nil || debts[i].Date.After(last.Date) {
				last = &debts[i]
			}
		}
		lastDate, lastAmount := "", 0.0
		if last != nil {
			lastDate = last.Date.FormatDMY()
			lastAmount = last.Amount.InexactFloat64()
		}
		rows = append(rows, []interface{}{
			c.Name, total.InexactFloat64(), len(debts), lastDate, lastAmount,
		})
	}
	return w.writeTable("Resumen Clientes",
		[]string{"CLIENTE", "TOTAL_ADEUDADO", "CANTIDAD_DEUDAS", "ULTIMA_DEUDA_FECHA", "ULTIMA_DEUDA_MONTO"},
		rows, []int{2, 5})
}

func (w *backupWriter) writeDebtDetail(snap *Snapshot) error {
	customers := append([]ledger.Customer(nil), snap.Customers...)
	sort.Slice(customers, func(i, j int) bool { return customers[i].Name < customers[j].Name })

	var rows [][]interface{}
	for _, c := range customers {
		for _, d := range snap.Debts[c.ID] {
			rows = append(rows, []interface{}{c.Name, d.Date.FormatDMY(), d.Amount.InexactFloat64()})
		}
	}
	return w.writeTable("Detalle Deudas",
		[]string{"CLIENTE", "FECHA", "MONTO"},
		rows, []int{3})
}

func (w *backupWriter) writeSupplierSummary(snap *Snapshot) error {
	var rows [][]interface{}
	for _, s := range snap.Suppliers {
		invoices := snap.Invoices[s.ID]
		payments := snap.Payments[s.ID]

		amounts, rejections, paid := decimal.Zero, decimal.Zero, decimal.Zero
		for _, inv := range invoices {
			amounts = amounts.Add(inv.Amount)
			rejections = rejections.Add(inv.Rejected)
		}
		for _, p := range payments {
			paid = paid.Add(p.Amount)
		}
		balance := ledger.Balance(s.ID, invoices, payments)

		rows = append(rows, []interface{}{
			s.Name,
			len(invoices),
			amounts.InexactFloat64(),
			rejections.InexactFloat64(),
			paid.InexactFloat64(),
			balance.InexactFloat64(),
			len(payments),
		})
	}
	return w.writeTable("Resumen Proveedores",
		[]string{"PROVEEDOR", "TOTAL_FACTURAS", "MONTO_FACTURAS", "TOTAL_RECHAZOS", "TOTAL_PAGADO", "SALDO_PENDIENTE", "CANTIDAD_PAGOS"},
		rows, []int{3, 4, 5, 6})
}

func (w *backupWriter) writeInvoiceDetail(snap *Snapshot) error {
	type entry struct {
		supplier string
		inv      ledger.Invoice
	}
	var entries []entry
	for _, s := range snap.Suppliers {
		for _, inv := range snap.Invoices[s.ID] {
			entries = append(entries, entry{supplier: s.Name, inv: inv})
		}
	}
	// newest due dates first; invoices without one sink to the bottom
	sort.SliceStable(entries, func(i, j int) bool {
		di, dj := entries[i].inv.DueDate, entries[j].inv.DueDate
		switch {
		case di == nil:
			return false
		case dj == nil:
			return true
		default:
			return dj.Before(*di)
		}
	})

	var rows [][]interface{}
	for _, e := range entries {
		due := ""
		if e.inv.DueDate != nil {
			due = e.inv.DueDate.FormatDMY()
		}
		rows = append(rows, []interface{}{
			e.supplier,
			e.inv.IssueDate.FormatDMY(),
			due,
			e.inv.Number,
			e.inv.Amount.InexactFloat64(),
			e.inv.Rejected.InexactFloat64(),
			e.inv.Amount.Sub(e.inv.Rejected).InexactFloat64(),
		})
	}
	return w.writeTable("Detalle Facturas",
		[]string{"PROVEEDOR", "FECHA_FACTURA", "VENCIMIENTO", "NUMERO", "MONTO", "RECHAZO", "SALDO"},
		rows, []int{5, 6, 7})
}

func (w *backupWriter) writePaymentDetail(snap *Snapshot) error {
	type entry struct {
		supplier string
		p        ledger.Payment
	}
	var entries []entry
	for _, s := range snap.Suppliers {
		for _, p := range snap.Payments[s.ID] {
			entries = append(entries, entry{supplier: s.Name, p: p})
		}
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[j].p.Date.Before(entries[i].p.Date)
	})

	var rows [][]interface{}
	for _, e := range entries {
		rows = append(rows, []interface{}{e.supplier, e.p.Date.FormatDMY(), e.p.Amount.InexactFloat64()})
	}
	return w.writeTable("Detalle Pagos",
		[]string{"PROVEEDOR", "FECHA_PAGO", "MONTO_PAGADO"},
		rows, []int{3})
}

func (w *backupWriter) writeProduceSummary(snap *Snapshot) error {
	var rows [][]interface{}
	for _, m := range snap.Months {
		sum := ledger.SummarizeMonth(m, snap.Sales[m.ID], snap.FixedCosts[m.ID])
		rows = append(rows, []interface{}{
			m.Name,
			sum.Sales.InexactFloat64(),
			sum.GoodsCost.InexactFloat64(),
			sum.VariableExpenses.InexactFloat64(),
			sum.FixedCosts.InexactFloat64(),
			sum.Net.InexactFloat64(),
			sum.DaysWorked,
		})
	}
	return w.writeTable("Resumen Verduleria",
		[]string{"MES", "TOTAL_VENTAS", "COSTO_MERCADERIA", "GASTOS_VARIABLES", "GASTOS_FIJOS", "MARGEN_NETO", "DIAS_TRABAJADOS"},
		rows, []int{2, 3, 4, 5, 6})
}

func (w *backupWriter) writeDailySales(snap *Snapshot) error {
	type entry struct {
		month string
		sale  ledger.DailySale
	}
	var entries []entry
	for _, m := range snap.Months {
		for _, s := range snap.Sales[m.ID] {
			entries = append(entries, entry{month: m.Name, sale: s})
		}
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[j].sale.Date.Before(entries[i].sale.Date)
	})

	var rows [][]interface{}
	for _, e := range entries {
		rows = append(rows, []interface{}{
			e.month,
			e.sale.Date.FormatDMY(),
			e.sale.Weekday,
			e.sale.GoodsCost.InexactFloat64(),
			e.sale.Expenses.InexactFloat64(),
			e.sale.Revenue.InexactFloat64(),
			e.sale.Margin().InexactFloat64(),
		})
	}
	return w.writeTable("Ventas Diarias",
		[]string{"MES", "FECHA", "DIA", "COSTO_MERCADERIA", "GASTOS", "VENTA", "MARGEN"},
		rows, []int{4, 5, 6, 7})
}

func (w *backupWriter) writeFixedCosts(snap *Snapshot) error {
	var rows [][]interface{}
	for _, m := range snap.Months {
		for _, fc := range snap.FixedCosts[m.ID] {
			if !fc.Allocated.IsPositive() {
				continue
			}
			rows = append(rows, []interface{}{
				m.Name,
				fc.Concept,
				fc.Total.InexactFloat64(),
				fc.Percent.InexactFloat64(),
				fc.Allocated.InexactFloat64(),
			})
		}
	}
	return w.writeTable("Gastos Fijos",
		[]string{"MES", "CONCEPTO", "GASTO_TOTAL", "PORCENTAJE", "ASIGNADO_VERDULERIA"},
		rows, []int{3, 5})
}

// sanitizeSheetName strips characters spreadsheet applications refuse
// in sheet names and enforces the 31-character limit.
func sanitizeSheetName(name string) string {
	cleaned := strings.Map(func(r rune) rune {
		switch r {
		case '[', ']', ':', '*', '?', '/', '\\':
			return -1
		}
		return r
	}, strings.TrimSpace(name))
	if cleaned == "" {
		cleaned = "Cuenta"
	}
	runes := []rune(cleaned)
	if len(runes) > 31 {
		cleaned = string(runes[:31])
	}
	return cleaned
}

func sanitizeFileName(name string) string {
	cleaned := strings.Map(func(r rune) rune {
		switch r {
		case '<', '>', ':', '"', '*', '?', '/', '\\', '|':
			return '_'
		case ' ':
			return '_'
		}
		return r
	}, strings.TrimSpace(name))
	if cleaned == "" {
		cleaned = "Cuenta"
	}
	return cleaned
}
