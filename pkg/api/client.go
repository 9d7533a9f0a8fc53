// Package api is a client for the bookkeeping backend's REST API. It
// implements ledger.Repository and ledger.ProduceSource so commands
// can run against the live backend or the local store interchangeably.
package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/dualibesoft/cherry-ledger/pkg/ledger"
)

// ClientConfig represents the configuration for the API client.
type ClientConfig struct {
	BaseURL string
	Timeout time.Duration // Default: 30 seconds
}

// Client is a bookkeeping backend API client.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// NewClient creates a new API client.
func NewClient(config ClientConfig) *Client {
	timeout := config.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL: config.BaseURL,
	}
}

func (c *Client) get(path string, out interface{}) error {
	req, err := http.NewRequest("GET", c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return c.parseError(resp)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func (c *Client) post(path string, body, out interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to encode request body: %w", err)
	}

	req, err := http.NewRequest("POST", c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return c.parseError(resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func (c *Client) delete(path string) error {
	req, err := http.NewRequest("DELETE", c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		return c.parseError(resp)
	}
	return nil
}

func (c *Client) parseError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))

	var apiErr struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &apiErr); err == nil {
		if apiErr.Error != "" {
			return fmt.Errorf("API error (status %d): %s", resp.StatusCode, apiErr.Error)
		}
		if apiErr.Message != "" {
			return fmt.Errorf("API error (status %d): %s", resp.StatusCode, apiErr.Message)
		}
	}
	return fmt.Errorf("API error (status %d): %s", resp.StatusCode, string(body))
}

func (c *Client) ListSuppliers() ([]ledger.Supplier, error) {
	var dtos []supplierDTO
	if err := c.get("/proveedores", &dtos); err != nil {
		return nil, err
	}
	suppliers := make([]ledger.Supplier, 0, len(dtos))
	for _, d := range dtos {
		suppliers = append(suppliers, ledger.Supplier{ID: d.ID, Name: d.Name})
	}
	return suppliers, nil
}

func (c *Client) CreateSupplier(name string) (ledger.Supplier, error) {
	var created supplierDTO
	if err := c.post("/proveedores", supplierDTO{Name: name}, &created); err != nil {
		return ledger.Supplier{}, err
	}
	return ledger.Supplier{ID: created.ID, Name: created.Name}, nil
}

func (c *Client) DeleteSupplier(id string) error {
	return c.delete("/proveedores/" + id)
}

func (c *Client) ListInvoices(supplierID string) ([]ledger.Invoice, error) {
	var dtos []invoiceDTO
	if err := c.get("/proveedores/"+supplierID+"/facturas", &dtos); err != nil {
		return nil, err
	}
	invoices := make([]ledger.Invoice, 0, len(dtos))
	for _, d := range dtos {
		inv, err := d.toLedger()
		if err != nil {
			return nil, err
		}
		if inv.SupplierID == "" {
			inv.SupplierID = supplierID
		}
		invoices = append(invoices, inv)
	}
	return invoices, nil
}

func (c *Client) CreateInvoice(inv ledger.Invoice) (ledger.Invoice, error) {
	var created invoiceDTO
	if err := c.post("/proveedores/"+inv.SupplierID+"/facturas", invoiceToDTO(inv), &created); err != nil {
		return ledger.Invoice{}, err
	}
	out, err := created.toLedger()
	if err != nil {
		return ledger.Invoice{}, err
	}
	if out.SupplierID == "" {
		out.SupplierID = inv.SupplierID
	}
	return out, nil
}

func (c *Client) DeleteInvoice(id string) error {
	return c.delete("/proveedores/facturas/" + id)
}

func (c *Client) ListPayments(supplierID string) ([]ledger.Payment, error) {
	var dtos []paymentDTO
	if err := c.get("/proveedores/"+supplierID+"/pagos", &dtos); err != nil {
		return nil, err
	}
	payments := make([]ledger.Payment, 0, len(dtos))
	for _, d := range dtos {
		p, err := d.toLedger()
		if err != nil {
			return nil, err
		}
		if p.SupplierID == "" {
			p.SupplierID = supplierID
		}
		payments = append(payments, p)
	}
	return payments, nil
}

func (c *Client) CreatePayment(p ledger.Payment) (ledger.Payment, error) {
	dto := paymentDTO{Date: p.Date.String(), Amount: p.Amount.InexactFloat64()}
	var created paymentDTO
	if err := c.post("/proveedores/"+p.SupplierID+"/pagos", dto, &created); err != nil {
		return ledger.Payment{}, err
	}
	out, err := created.toLedger()
	if err != nil {
		return ledger.Payment{}, err
	}
	if out.SupplierID == "" {
		out.SupplierID = p.SupplierID
	}
	return out, nil
}

func (c *Client) DeletePayment(id string) error {
	return c.delete("/proveedores/pagos/" + id)
}

func (c *Client) ListCustomers() ([]ledger.Customer, error) {
	var dtos []customerDTO
	if err := c.get("/clientes", &dtos); err != nil {
		return nil, err
	}
	customers := make([]ledger.Customer, 0, len(dtos))
	for _, d := range dtos {
		customers = append(customers, ledger.Customer{ID: d.ID, Name: d.Name})
	}
	return customers, nil
}

func (c *Client) ListDebts(customerID string) ([]ledger.Debt, error) {
	var dtos []debtDTO
	if err := c.get("/clientes/"+customerID+"/deudas", &dtos); err != nil {
		return nil, err
	}
	debts := make([]ledger.Debt, 0, len(dtos))
	for _, d := range dtos {
		debt, err := d.toLedger()
		if err != nil {
			return nil, err
		}
		if debt.CustomerID == "" {
			debt.CustomerID = customerID
		}
		debts = append(debts, debt)
	}
	return debts, nil
}

func (c *Client) ListMonths() ([]ledger.Month, error) {
	var dtos []monthDTO
	if err := c.get("/verduleria/meses", &dtos); err != nil {
		return nil, err
	}
	months := make([]ledger.Month, 0, len(dtos))
	for _, d := range dtos {
		months = append(months, ledger.Month{ID: d.ID, Name: d.Name})
	}
	return months, nil
}

func (c *Client) ListSales(monthID string) ([]ledger.DailySale, error) {
	var dtos []saleDTO
	if err := c.get("/verduleria/meses/"+monthID+"/ventas", &dtos); err != nil {
		return nil, err
	}
	sales := make([]ledger.DailySale, 0, len(dtos))
	for _, d := range dtos {
		sale, err := d.toLedger()
		if err != nil {
			return nil, err
		}
		if sale.MonthID == "" {
			sale.MonthID = monthID
		}
		sales = append(sales, sale)
	}
	return sales, nil
}

func (c *Client) ListFixedCosts(monthID string) ([]ledger.FixedCost, error) {
	var dtos []fixedCostDTO
	if err := c.get("/verduleria/meses/"+monthID+"/gastos", &dtos); err != nil {
		return nil, err
	}
	costs := make([]ledger.FixedCost, 0, len(dtos))
	for _, d := range dtos {
		fc := d.toLedger()
		if fc.MonthID == "" {
			fc.MonthID = monthID
		}
		costs = append(costs, fc)
	}
	return costs, nil
}

var (
	_ ledger.Repository    = (*Client)(nil)
	_ ledger.ProduceSource = (*Client)(nil)
)
