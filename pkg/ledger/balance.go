package ledger

import "github.com/shopspring/decimal"

// Balance returns the outstanding balance for a supplier:
// sum of invoice amounts, minus rejections, minus payments.
// A negative balance means the supplier has been overpaid; that is
// allowed, not an error. Records belonging to other suppliers are
// ignored, so callers may pass unfiltered batches.
func Balance(supplierID string, invoices []Invoice, payments []Payment) decimal.Decimal {
	total := decimal.Zero
	for _, inv := range invoices {
		if inv.SupplierID != supplierID {
			continue
		}
		total = total.Add(inv.Amount).Sub(inv.Rejected)
	}
	for _, p := range payments {
		if p.SupplierID != supplierID {
			continue
		}
		total = total.Sub(p.Amount)
	}
	return total
}

// CustomerTotal returns the total owed by a customer.
func CustomerTotal(customerID string, debts []Debt) decimal.Decimal {
	total := decimal.Zero
	for _, d := range debts {
		if d.CustomerID != customerID {
			continue
		}
		total = total.Add(d.Amount)
	}
	return total
}

// MonthSummary is the produce-stand P&L for one month.
type MonthSummary struct {
	Month            Month
	Sales            decimal.Decimal
	GoodsCost        decimal.Decimal
	VariableExpenses decimal.Decimal
	FixedCosts       decimal.Decimal
	Net              decimal.Decimal
	DaysWorked       int
}

// SummarizeMonth computes the month's P&L from its daily sales and
// allocated fixed costs.
func SummarizeMonth(m Month, sales []DailySale, costs []FixedCost) MonthSummary {
	sum := MonthSummary{
		Month:            m,
		Sales:            decimal.Zero,
		GoodsCost:        decimal.Zero,
		VariableExpenses: decimal.Zero,
		FixedCosts:       decimal.Zero,
	}
	for _, s := range sales {
		if s.MonthID != m.ID {
			continue
		}
		sum.Sales = sum.Sales.Add(s.Revenue)
		sum.GoodsCost = sum.GoodsCost.Add(s.GoodsCost)
		sum.VariableExpenses = sum.VariableExpenses.Add(s.Expenses)
		sum.DaysWorked++
	}
	for _, c := range costs {
		if c.MonthID != m.ID {
			continue
		}
		sum.FixedCosts = sum.FixedCosts.Add(c.Allocated)
	}
	sum.Net = sum.Sales.Sub(sum.GoodsCost).Sub(sum.VariableExpenses).Sub(sum.FixedCosts)
	return sum
}
