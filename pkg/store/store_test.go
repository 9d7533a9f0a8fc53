package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/dualibesoft/cherry-ledger/pkg/db"
	"github.com/dualibesoft/cherry-ledger/pkg/ledger"
)

var (
	_ ledger.Repository    = (*Store)(nil)
	_ ledger.ProduceSource = (*Store)(nil)
)

func testStore(t *testing.T) *Store {
	t.Helper()
	conn, err := db.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("db.Open: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return New(conn)
}

func dec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("bad decimal %q: %v", s, err)
	}
	return d
}

func TestSupplierLifecycle(t *testing.T) {
	s := testStore(t)

	acme, err := s.CreateSupplier("Acme")
	if err != nil {
		t.Fatalf("CreateSupplier: %v", err)
	}
	if acme.ID == "" {
		t.Fatal("created supplier has no ID")
	}
	if _, err := s.CreateSupplier("Beta"); err != nil {
		t.Fatalf("CreateSupplier: %v", err)
	}

	suppliers, err := s.ListSuppliers()
	if err != nil {
		t.Fatalf("ListSuppliers: %v", err)
	}
	if len(suppliers) != 2 {
		t.Fatalf("listed %d suppliers, expected 2", len(suppliers))
	}

	if err := s.DeleteSupplier(acme.ID); err != nil {
		t.Fatalf("DeleteSupplier: %v", err)
	}
	suppliers, err = s.ListSuppliers()
	if err != nil {
		t.Fatalf("ListSuppliers: %v", err)
	}
	if len(suppliers) != 1 || suppliers[0].Name != "Beta" {
		t.Errorf("after delete: %+v", suppliers)
	}
}

func TestInvoiceRoundTrip(t *testing.T) {
	s := testStore(t)
	sup, err := s.CreateSupplier("Acme")
	if err != nil {
		t.Fatalf("CreateSupplier: %v", err)
	}

	due := ledger.Date{Year: 2024, Month: time.January, Day: 12}
	withDue := ledger.Invoice{
		SupplierID: sup.ID,
		IssueDate:  ledger.Date{Year: 2024, Month: time.January, Day: 5},
		DueDate:    &due,
		Number:     "A1",
		Amount:     dec(t, "1000.50"),
		Rejected:   dec(t, "0"),
	}
	withoutDue := ledger.Invoice{
		SupplierID: sup.ID,
		IssueDate:  ledger.Date{Year: 2024, Month: time.February, Day: 1},
		Number:     "A2",
		Amount:     dec(t, "250.75"),
		Rejected:   dec(t, "50.25"),
	}
	if _, err := s.CreateInvoice(withDue); err != nil {
		t.Fatalf("CreateInvoice: %v", err)
	}
	if _, err := s.CreateInvoice(withoutDue); err != nil {
		t.Fatalf("CreateInvoice: %v", err)
	}

	invoices, err := s.ListInvoices(sup.ID)
	if err != nil {
		t.Fatalf("ListInvoices: %v", err)
	}
	if len(invoices) != 2 {
		t.Fatalf("listed %d invoices, expected 2", len(invoices))
	}

	got := invoices[0]
	if got.IssueDate != withDue.IssueDate {
		t.Errorf("issue date = %v, expected %v", got.IssueDate, withDue.IssueDate)
	}
	if got.DueDate == nil || *got.DueDate != due {
		t.Errorf("due date = %v, expected %v", got.DueDate, due)
	}
	if !got.Amount.Equal(withDue.Amount) {
		t.Errorf("amount = %s, expected %s", got.Amount, withDue.Amount)
	}

	if invoices[1].DueDate != nil {
		t.Error("invoice without due date came back with one")
	}
	if !invoices[1].Rejected.Equal(dec(t, "50.25")) {
		t.Errorf("rejected = %s, expected 50.25", invoices[1].Rejected)
	}
}

func TestDeleteSupplierCascades(t *testing.T) {
	s := testStore(t)
	sup, err := s.CreateSupplier("Acme")
	if err != nil {
		t.Fatalf("CreateSupplier: %v", err)
	}
	if _, err := s.CreateInvoice(ledger.Invoice{
		SupplierID: sup.ID,
		IssueDate:  ledger.Date{Year: 2024, Month: time.January, Day: 5},
		Number:     "A1",
		Amount:     dec(t, "100"),
		Rejected:   dec(t, "0"),
	}); err != nil {
		t.Fatalf("CreateInvoice: %v", err)
	}
	if _, err := s.CreatePayment(ledger.Payment{
		SupplierID: sup.ID,
		Date:       ledger.Date{Year: 2024, Month: time.January, Day: 20},
		Amount:     dec(t, "40"),
	}); err != nil {
		t.Fatalf("CreatePayment: %v", err)
	}

	if err := s.DeleteSupplier(sup.ID); err != nil {
		t.Fatalf("DeleteSupplier: %v", err)
	}

	invoices, err := s.ListInvoices(sup.ID)
	if err != nil {
		t.Fatalf("ListInvoices: %v", err)
	}
	payments, err := s.ListPayments(sup.ID)
	if err != nil {
		t.Fatalf("ListPayments: %v", err)
	}
	if len(invoices) != 0 || len(payments) != 0 {
		t.Errorf("cascade left %d invoices, %d payments", len(invoices), len(payments))
	}
}

func TestBalanceOverStore(t *testing.T) {
	s := testStore(t)
	sup, err := s.CreateSupplier("Acme")
	if err != nil {
		t.Fatalf("CreateSupplier: %v", err)
	}
	if _, err := s.CreateInvoice(ledger.Invoice{
		SupplierID: sup.ID,
		IssueDate:  ledger.Date{Year: 2024, Month: time.January, Day: 5},
		Number:     "A1",
		Amount:     dec(t, "1000"),
		Rejected:   dec(t, "100"),
	}); err != nil {
		t.Fatalf("CreateInvoice: %v", err)
	}
	if _, err := s.CreatePayment(ledger.Payment{
		SupplierID: sup.ID,
		Date:       ledger.Date{Year: 2024, Month: time.January, Day: 20},
		Amount:     dec(t, "400"),
	}); err != nil {
		t.Fatalf("CreatePayment: %v", err)
	}

	invoices, err := s.ListInvoices(sup.ID)
	if err != nil {
		t.Fatalf("ListInvoices: %v", err)
	}
	payments, err := s.ListPayments(sup.ID)
	if err != nil {
		t.Fatalf("ListPayments: %v", err)
	}

	balance := ledger.Balance(sup.ID, invoices, payments)
	if !balance.Equal(dec(t, "500")) {
		t.Errorf("balance = %s, expected 500", balance)
	}
}

func TestProduceSource(t *testing.T) {
	s := testStore(t)
	month, err := s.CreateMonth("Marzo 2024")
	if err != nil {
		t.Fatalf("CreateMonth: %v", err)
	}

	if _, err := s.CreateSale(ledger.DailySale{
		MonthID:   month.ID,
		Date:      ledger.Date{Year: 2024, Month: time.March, Day: 4},
		Weekday:   "lunes",
		GoodsCost: dec(t, "300"),
		Expenses:  dec(t, "50"),
		Revenue:   dec(t, "600"),
	}); err != nil {
		t.Fatalf("CreateSale: %v", err)
	}
	if _, err := s.CreateFixedCost(ledger.FixedCost{
		MonthID:   month.ID,
		Concept:   "Alquiler",
		Total:     dec(t, "2000"),
		Percent:   dec(t, "25"),
		Allocated: dec(t, "500"),
	}); err != nil {
		t.Fatalf("CreateFixedCost: %v", err)
	}

	sales, err := s.ListSales(month.ID)
	if err != nil {
		t.Fatalf("ListSales: %v", err)
	}
	if len(sales) != 1 {
		t.Fatalf("listed %d sales, expected 1", len(sales))
	}
	if !sales[0].Margin().Equal(dec(t, "250")) {
		t.Errorf("margin = %s, expected 250", sales[0].Margin())
	}

	costs, err := s.ListFixedCosts(month.ID)
	if err != nil {
		t.Fatalf("ListFixedCosts: %v", err)
	}
	if len(costs) != 1 || costs[0].Concept != "Alquiler" {
		t.Errorf("fixed costs = %+v", costs)
	}
}

func TestCustomerDebts(t *testing.T) {
	s := testStore(t)
	customer, err := s.CreateCustomer("Doña Rosa")
	if err != nil {
		t.Fatalf("CreateCustomer: %v", err)
	}
	if _, err := s.CreateDebt(ledger.Debt{
		CustomerID: customer.ID,
		Date:       ledger.Date{Year: 2024, Month: time.April, Day: 2},
		Amount:     dec(t, "120.30"),
	}); err != nil {
		t.Fatalf("CreateDebt: %v", err)
	}

	debts, err := s.ListDebts(customer.ID)
	if err != nil {
		t.Fatalf("ListDebts: %v", err)
	}
	if len(debts) != 1 || !debts[0].Amount.Equal(dec(t, "120.30")) {
		t.Errorf("debts = %+v", debts)
	}
	if !ledger.CustomerTotal(customer.ID, debts).Equal(dec(t, "120.30")) {
		t.Errorf("customer total = %s", ledger.CustomerTotal(customer.ID, debts))
	}
}
