package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dualibesoft/cherry-ledger/pkg/ledger"
)

func TestListInvoicesDecodesWireFormat(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/proveedores/s1/facturas" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{"_id":"f1","proveedorId":"s1","fecha":"2024-01-05","fechaVencimiento":"2024-01-12","numero":"A1","monto":1000,"rechazo":0},
			{"_id":"f2","fecha":"2024-02-01T00:00:00.000Z","numero":"A2","monto":250.75,"rechazo":50.25}
		]`))
	}))
	defer server.Close()

	client := NewClient(ClientConfig{BaseURL: server.URL})
	invoices, err := client.ListInvoices("s1")
	if err != nil {
		t.Fatalf("ListInvoices: %v", err)
	}
	if len(invoices) != 2 {
		t.Fatalf("got %d invoices, expected 2", len(invoices))
	}

	first := invoices[0]
	if first.IssueDate != (ledger.Date{Year: 2024, Month: time.January, Day: 5}) {
		t.Errorf("issue date = %v", first.IssueDate)
	}
	if first.DueDate == nil || *first.DueDate != (ledger.Date{Year: 2024, Month: time.January, Day: 12}) {
		t.Errorf("due date = %v", first.DueDate)
	}
	if first.Amount.String() != "1000" {
		t.Errorf("amount = %s", first.Amount)
	}

	// timestamped date strings and missing fields
	second := invoices[1]
	if second.IssueDate != (ledger.Date{Year: 2024, Month: time.February, Day: 1}) {
		t.Errorf("issue date with timestamp = %v", second.IssueDate)
	}
	if second.DueDate != nil {
		t.Error("absent due date should decode as nil")
	}
	if second.SupplierID != "s1" {
		t.Errorf("supplier fallback = %q", second.SupplierID)
	}
}

func TestCreateSupplier(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "POST" || r.URL.Path != "/proveedores" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"_id":"s9","nombre":"Acme"}`))
	}))
	defer server.Close()

	client := NewClient(ClientConfig{BaseURL: server.URL})
	sup, err := client.CreateSupplier("Acme")
	if err != nil {
		t.Fatalf("CreateSupplier: %v", err)
	}
	if sup.ID != "s9" || sup.Name != "Acme" {
		t.Errorf("created = %+v", sup)
	}
}

func TestErrorResponses(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error":"proveedor no encontrado"}`))
	}))
	defer server.Close()

	client := NewClient(ClientConfig{BaseURL: server.URL})
	if _, err := client.ListSuppliers(); err == nil {
		t.Fatal("expected error for 404 response")
	}
	if err := client.DeleteSupplier("nope"); err == nil {
		t.Fatal("expected error for 404 response")
	}
}
