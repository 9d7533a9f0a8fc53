package ledger

// Repository is the persistence boundary for bookkeeping records.
// The remote API client and the local SQLite store both implement it;
// the engine itself never touches storage.
type Repository interface {
	ListSuppliers() ([]Supplier, error)
	CreateSupplier(name string) (Supplier, error)
	DeleteSupplier(id string) error

	ListInvoices(supplierID string) ([]Invoice, error)
	CreateInvoice(inv Invoice) (Invoice, error)
	DeleteInvoice(id string) error

	ListPayments(supplierID string) ([]Payment, error)
	CreatePayment(p Payment) (Payment, error)
	DeletePayment(id string) error

	ListCustomers() ([]Customer, error)
	ListDebts(customerID string) ([]Debt, error)
}

// ProduceSource exposes the produce-stand records used by full
// backups.
type ProduceSource interface {
	ListMonths() ([]Month, error)
	ListSales(monthID string) ([]DailySale, error)
	ListFixedCosts(monthID string) ([]FixedCost, error)
}
