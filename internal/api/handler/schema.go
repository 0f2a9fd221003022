package handler

import "github.com/99minutos/invoice-dashboard/internal/core/domain"

// errorResponse is the standard error envelope returned on 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// formState is the body of a form action that did not succeed.
type formState struct {
	Message string              `json:"message"`
	Errors  map[string][]string `json:"errors,omitempty"`
}

type loginPageResponse struct {
	CallbackURL string `json:"callbackUrl"`
}

type overviewResponse struct {
	Revenue        []domain.Revenue       `json:"revenue"`
	Cards          domain.CardData        `json:"cards"`
	LatestInvoices []domain.LatestInvoice `json:"latest_invoices"`
}

type sessionResponse struct {
	UserID    string `json:"user_id"`
	Email     string `json:"email"`
	Name      string `json:"name,omitempty"`
	ExpiresAt string `json:"expires_at"`
}

type invoiceRowResponse struct {
	ID       string               `json:"id"`
	Name     string               `json:"name"`
	Email    string               `json:"email"`
	ImageURL string               `json:"image_url"`
	Amount   string               `json:"amount"`
	Date     string               `json:"date"`
	Status   domain.InvoiceStatus `json:"status"`
}

type invoicesResponse struct {
	Query    string               `json:"query"`
	Page     int                  `json:"page"`
	Invoices []invoiceRowResponse `json:"invoices"`
}

type pagesResponse struct {
	Query      string `json:"query"`
	TotalPages int    `json:"total_pages"`
}

type invoiceMutationResponse struct {
	ID string `json:"id"`
}

func toInvoiceRows(rows []domain.InvoiceRow) []invoiceRowResponse {
	out := make([]invoiceRowResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, invoiceRowResponse{
			ID:       r.ID,
			Name:     r.Name,
			Email:    r.Email,
			ImageURL: r.ImageURL,
			Amount:   domain.FormatCurrency(r.Amount),
			Date:     domain.FormatDateToLocal(r.Date),
			Status:   r.Status,
		})
	}
	return out
}
