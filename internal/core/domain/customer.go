package domain

// Customer is referenced by invoices and never mutated here.
type Customer struct {
	ID       string `json:"id" db:"id"`
	Name     string `json:"name" db:"name"`
	Email    string `json:"email" db:"email"`
	ImageURL string `json:"image_url" db:"image_url"`
}

// CustomerField is the id/name pair used by invoice form selects.
type CustomerField struct {
	ID   string `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
}

// CustomerTotals is a customer with its invoice aggregates in cents.
type CustomerTotals struct {
	Customer
	TotalInvoices int64 `db:"total_invoices"`
	TotalPending  int64 `db:"total_pending"`
	TotalPaid     int64 `db:"total_paid"`
}

// CustomerRow is a customers table line with formatted totals.
type CustomerRow struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Email         string `json:"email"`
	ImageURL      string `json:"image_url"`
	TotalInvoices int64  `json:"total_invoices"`
	TotalPending  string `json:"total_pending"`
	TotalPaid     string `json:"total_paid"`
}
