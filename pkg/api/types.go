package api

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/dualibesoft/cherry-ledger/pkg/ledger"
)

// Wire types mirror the backend's JSON. The backend keeps Spanish
// field names and float amounts; conversion to ledger types happens
// at this boundary.

type supplierDTO struct {
	ID   string `json:"_id,omitempty"`
	Name string `json:"nombre"`
}

type customerDTO struct {
	ID   string `json:"_id,omitempty"`
	Name string `json:"nombre"`
}

type invoiceDTO struct {
	ID         string  `json:"_id,omitempty"`
	SupplierID string  `json:"proveedorId,omitempty"`
	IssueDate  string  `json:"fecha"`
	DueDate    *string `json:"fechaVencimiento,omitempty"`
	Number     string  `json:"numero"`
	Amount     float64 `json:"monto"`
	Rejected   float64 `json:"rechazo"`
}

type paymentDTO struct {
	ID         string  `json:"_id,omitempty"`
	SupplierID string  `json:"proveedorId,omitempty"`
	Date       string  `json:"fecha"`
	Amount     float64 `json:"monto"`
}

type debtDTO struct {
	ID         string  `json:"_id"`
	CustomerID string  `json:"clienteId"`
	Date       string  `json:"fecha"`
	Amount     float64 `json:"monto"`
}

type monthDTO struct {
	ID   string `json:"_id"`
	Name string `json:"nombre"`
}

type saleDTO struct {
	ID        string  `json:"_id"`
	MonthID   string  `json:"mesId"`
	Date      string  `json:"fecha"`
	Weekday   string  `json:"diaSemana"`
	GoodsCost float64 `json:"costoMercaderia"`
	Expenses  float64 `json:"gastos"`
	Revenue   float64 `json:"venta"`
}

type fixedCostDTO struct {
	ID        string  `json:"_id"`
	MonthID   string  `json:"mesId"`
	Concept   string  `json:"concepto"`
	Total     float64 `json:"total"`
	Percent   float64 `json:"porcentaje"`
	Allocated float64 `json:"verduleria"`
}

func (d invoiceDTO) toLedger() (ledger.Invoice, error) {
	issue, err := ledger.ParseISO(d.IssueDate)
	if err != nil {
		return ledger.Invoice{}, fmt.Errorf("invoice %s: bad issue date %q: %w", d.ID, d.IssueDate, err)
	}
	inv := ledger.Invoice{
		ID:         d.ID,
		SupplierID: d.SupplierID,
		IssueDate:  issue,
		Number:     d.Number,
		Amount:     decimal.NewFromFloat(d.Amount),
		Rejected:   decimal.NewFromFloat(d.Rejected),
	}
	if d.DueDate != nil && *d.DueDate != "" {
		due, err := ledger.ParseISO(*d.DueDate)
		if err != nil {
			return ledger.Invoice{}, fmt.Errorf("invoice %s: bad due date %q: %w", d.ID, *d.DueDate, err)
		}
		inv.DueDate = &due
	}
	return inv, nil
}

func invoiceToDTO(inv ledger.Invoice) invoiceDTO {
	dto := invoiceDTO{
		IssueDate: inv.IssueDate.String(),
		Number:    inv.Number,
		Amount:    inv.Amount.InexactFloat64(),
		Rejected:  inv.Rejected.InexactFloat64(),
	}
	if inv.DueDate != nil {
		due := inv.DueDate.String()
		dto.DueDate = &due
	}
	return dto
}

func (d paymentDTO) toLedger() (ledger.Payment, error) {
	date, err := ledger.ParseISO(d.Date)
	if err != nil {
		return ledger.Payment{}, fmt.Errorf("payment %s: bad date %q: %w", d.ID, d.Date, err)
	}
	return ledger.Payment{
		ID:         d.ID,
		SupplierID: d.SupplierID,
		Date:       date,
		Amount:     decimal.NewFromFloat(d.Amount),
	}, nil
}

func (d debtDTO) toLedger() (ledger.Debt, error) {
	date, err := ledger.ParseISO(d.Date)
	if err != nil {
		return ledger.Debt{}, fmt.Errorf("debt %s: bad date %q: %w", d.ID, d.Date, err)
	}
	return ledger.Debt{
		ID:         d.ID,
		CustomerID: d.CustomerID,
		Date:       date,
		Amount:     decimal.NewFromFloat(d.Amount),
	}, nil
}

func (d saleDTO) toLedger() (ledger.DailySale, error) {
	date, err := ledger.ParseISO(d.Date)
	if err != nil {
		return ledger.DailySale{}, fmt.Errorf("sale %s: bad date %q: %w", d.ID, d.Date, err)
	}
	return ledger.DailySale{
		ID:        d.ID,
		MonthID:   d.MonthID,
		Date:      date,
		Weekday:   d.Weekday,
		GoodsCost: decimal.NewFromFloat(d.GoodsCost),
		Expenses:  decimal.NewFromFloat(d.Expenses),
		Revenue:   decimal.NewFromFloat(d.Revenue),
	}, nil
}

func (d fixedCostDTO) toLedger() ledger.FixedCost {
	return ledger.FixedCost{
		ID:        d.ID,
		MonthID:   d.MonthID,
		Concept:   d.Concept,
		Total:     decimal.NewFromFloat(d.Total),
		Percent:   decimal.NewFromFloat(d.Percent),
		Allocated: decimal.NewFromFloat(d.Allocated),
	}
}
