// Package ledger defines the bookkeeping entities and the pure
// balance and aging computations over them. The package performs no
// I/O; records are passed in as immutable batches and results are
// returned out.
package ledger

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Supplier is an account the business owes money to.
type Supplier struct {
	ID   string
	Name string
}

// Customer is an account that owes the business money.
type Customer struct {
	ID   string
	Name string
}

// Invoice is a debit record against a supplier. Rejected is a
// credit-memo style adjustment that reduces the effective debt; the
// engine accepts it as-is and never checks it against Amount.
type Invoice struct {
	ID         string
	SupplierID string
	IssueDate  Date
	DueDate    *Date // nil when the invoice has no due date
	Number     string
	Amount     decimal.Decimal
	Rejected   decimal.Decimal
}

// Payment is a credit record against a supplier.
type Payment struct {
	ID         string
	SupplierID string
	Date       Date
	Amount     decimal.Decimal
}

// Debt is a debit record against a customer. Customers have no credit
// records; their balance is the plain sum of debts.
type Debt struct {
	ID         string
	CustomerID string
	Date       Date
	Amount     decimal.Decimal
}

// Month is one accounting month of the produce stand.
type Month struct {
	ID   string
	Name string
}

// DailySale is one day of produce-stand trading.
type DailySale struct {
	ID        string
	MonthID   string
	Date      Date
	Weekday   string
	GoodsCost decimal.Decimal
	Expenses  decimal.Decimal
	Revenue   decimal.Decimal
}

// Margin returns the day's net margin.
func (s DailySale) Margin() decimal.Decimal {
	return s.Revenue.Sub(s.GoodsCost).Sub(s.Expenses)
}

// FixedCost is a monthly fixed cost partially allocated to the
// produce stand.
type FixedCost struct {
	ID        string
	MonthID   string
	Concept   string
	Total     decimal.Decimal
	Percent   decimal.Decimal
	Allocated decimal.Decimal
}

// ValidationError reports a record that cannot be accepted from a
// form. Bulk import skips bad rows instead of raising this.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Validate checks the fields required when an invoice is entered by
// hand. Rejected is deliberately not compared against Amount.
func (inv Invoice) Validate() error {
	if strings.TrimSpace(inv.Number) == "" {
		return &ValidationError{Field: "number", Reason: "invoice number is required"}
	}
	if !inv.Amount.IsPositive() {
		return &ValidationError{Field: "amount", Reason: "amount must be greater than zero"}
	}
	if inv.IssueDate.IsZero() {
		return &ValidationError{Field: "issue_date", Reason: "issue date is required"}
	}
	return nil
}

// Validate checks the fields required when a payment is entered by hand.
func (p Payment) Validate() error {
	if !p.Amount.IsPositive() {
		return &ValidationError{Field: "amount", Reason: "amount must be greater than zero"}
	}
	if p.Date.IsZero() {
		return &ValidationError{Field: "date", Reason: "payment date is required"}
	}
	return nil
}
