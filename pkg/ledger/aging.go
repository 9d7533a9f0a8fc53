package ledger

import "github.com/shopspring/decimal"

// AccountAlert is one supplier flagged by the aging classification.
type AccountAlert struct {
	SupplierID string
	Name       string
	Balance    decimal.Decimal
}

// AgingReport groups suppliers by due-date urgency. A supplier
// appears in at most one bucket.
type AgingReport struct {
	Overdue     []AccountAlert
	DueSoon0to3 []AccountAlert
	DueSoon4to7 []AccountAlert
}

// AgingWindows sets the day windows for the two due-soon buckets.
// With the defaults, due dates in [today, today+3] are "due soon" and
// dates in (today+3, today+7] are "upcoming".
type AgingWindows struct {
	DueSoonDays int
	HorizonDays int
}

// DefaultWindows matches the 0-3 / 4-7 day dashboard windows.
func DefaultWindows() AgingWindows {
	return AgingWindows{DueSoonDays: 3, HorizonDays: 7}
}

// ClassifyAccounts classifies suppliers into urgency buckets using the
// default windows. See ClassifyAccountsWindows.
func ClassifyAccounts(suppliers []Supplier, invoices map[string][]Invoice, payments map[string][]Payment, today Date) AgingReport {
	return ClassifyAccountsWindows(suppliers, invoices, payments, today, DefaultWindows())
}

// ClassifyAccountsWindows classifies each supplier by the most urgent
// bucket any of its invoice due dates falls in, relative to today.
//
// Suppliers with a balance of zero or less are excluded entirely, even
// when they hold overdue invoices. Overdue wins over due-soon, which
// wins over upcoming. Invoices without a due date, and due dates past
// the horizon, contribute nothing; a supplier with only such invoices
// is silently dropped. Bucket ordering follows the input supplier
// order. The result depends only on the arguments, never on the wall
// clock.
func ClassifyAccountsWindows(suppliers []Supplier, invoices map[string][]Invoice, payments map[string][]Payment, today Date, w AgingWindows) AgingReport {
	dueSoonEnd := today.AddDays(w.DueSoonDays)
	horizonEnd := today.AddDays(w.HorizonDays)

	var report AgingReport
	for _, s := range suppliers {
		balance := Balance(s.ID, invoices[s.ID], payments[s.ID])
		if !balance.IsPositive() {
			continue
		}

		var overdue, dueSoon, upcoming bool
		for _, inv := range invoices[s.ID] {
			if inv.DueDate == nil {
				continue
			}
			due := *inv.DueDate
			switch {
			case due.Before(today):
				overdue = true
			case !due.After(dueSoonEnd):
				dueSoon = true
			case !due.After(horizonEnd):
				upcoming = true
			}
		}

		alert := AccountAlert{SupplierID: s.ID, Name: s.Name, Balance: balance}
		switch {
		case overdue:
			report.Overdue = append(report.Overdue, alert)
		case dueSoon:
			report.DueSoon0to3 = append(report.DueSoon0to3, alert)
		case upcoming:
			report.DueSoon4to7 = append(report.DueSoon4to7, alert)
		}
	}
	return report
}
