package domain

import "time"

// InvoiceStatus is the closed set of invoice states.
type InvoiceStatus string

const (
	StatusPending InvoiceStatus = "pending"
	StatusPaid    InvoiceStatus = "paid"
)

// Valid reports whether s is one of the known statuses.
func (s InvoiceStatus) Valid() bool {
	return s == StatusPending || s == StatusPaid
}

// Invoice is the stored row. Amount is in cents.
type Invoice struct {
	ID         string        `json:"id" db:"id"`
	CustomerID string        `json:"customer_id" db:"customer_id"`
	Amount     int64         `json:"amount" db:"amount"`
	Status     InvoiceStatus `json:"status" db:"status"`
	Date       time.Time     `json:"date" db:"date"`
}

// InvoiceForm is the editable view of an invoice. Amount is in major units.
type InvoiceForm struct {
	ID         string        `json:"id"`
	CustomerID string        `json:"customer_id"`
	Amount     float64       `json:"amount"`
	Status     InvoiceStatus `json:"status"`
}

// InvoiceRow is one line of the searchable invoices table. Amount is in cents.
type InvoiceRow struct {
	ID       string        `json:"id" db:"id"`
	Amount   int64         `json:"amount" db:"amount"`
	Date     time.Time     `json:"date" db:"date"`
	Status   InvoiceStatus `json:"status" db:"status"`
	Name     string        `json:"name" db:"name"`
	Email    string        `json:"email" db:"email"`
	ImageURL string        `json:"image_url" db:"image_url"`
}

// LatestInvoice is a dashboard summary line with the amount already formatted.
type LatestInvoice struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	ImageURL string `json:"image_url"`
	Amount   string `json:"amount"`
}

// CardData holds the dashboard summary counters.
type CardData struct {
	NumberOfInvoices     int64  `json:"number_of_invoices"`
	NumberOfCustomers    int64  `json:"number_of_customers"`
	TotalPaidInvoices    string `json:"total_paid_invoices"`
	TotalPendingInvoices string `json:"total_pending_invoices"`
}

// InvoiceTotals is the raw paid/pending split in cents.
type InvoiceTotals struct {
	Paid    int64 `db:"paid"`
	Pending int64 `db:"pending"`
}

// InvoiceInput carries validated data for a create or update.
type InvoiceInput struct {
	CustomerID  string
	AmountCents int64
	Status      InvoiceStatus
}

// Revenue is one month of the revenue chart.
type Revenue struct {
	Month   string `json:"month" db:"month"`
	Revenue int64  `json:"revenue" db:"revenue"`
}
