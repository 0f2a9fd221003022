package ports

import (
	"context"

	"github.com/99minutos/invoice-dashboard/internal/core/domain"
)

// InvoiceService is the query layer consumed by the HTTP adapter.
type InvoiceService interface {
	FetchRevenue(ctx context.Context) ([]domain.Revenue, error)
	FetchCardData(ctx context.Context) (*domain.CardData, error)
	FetchLatestInvoices(ctx context.Context) ([]domain.LatestInvoice, error)
	FetchFilteredInvoices(ctx context.Context, query string, page int) ([]domain.InvoiceRow, error)
	FetchInvoicesPages(ctx context.Context, query string) (int, error)
	FetchInvoiceByID(ctx context.Context, id string) (*domain.InvoiceForm, error)
	FetchCustomers(ctx context.Context) ([]domain.CustomerField, error)
	FetchFilteredCustomers(ctx context.Context, query string) ([]domain.CustomerRow, error)

	CreateInvoice(ctx context.Context, in domain.InvoiceInput) (string, error)
	UpdateInvoice(ctx context.Context, id string, in domain.InvoiceInput) error
	DeleteInvoice(ctx context.Context, id string) error
}
