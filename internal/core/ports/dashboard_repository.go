package ports

import (
	"context"
	"time"

	"github.com/99minutos/invoice-dashboard/internal/core/domain"
)

// InvoiceFilter selects one page of the invoices search.
type InvoiceFilter struct {
	Query  string // case-insensitive substring; empty matches everything
	Limit  int
	Offset int
}

// DashboardRepository defines the relational reads and writes behind the dashboard.
// Implementations return raw store errors; the service layer decides what the
// caller sees.
type DashboardRepository interface {
	Revenue(ctx context.Context) ([]domain.Revenue, error)

	CountInvoices(ctx context.Context) (int64, error)
	CountCustomers(ctx context.Context) (int64, error)
	InvoiceTotals(ctx context.Context) (domain.InvoiceTotals, error)

	LatestInvoices(ctx context.Context, limit int) ([]domain.InvoiceRow, error)
	FilteredInvoices(ctx context.Context, filter InvoiceFilter) ([]domain.InvoiceRow, error)
	CountFilteredInvoices(ctx context.Context, query string) (int64, error)
	// InvoiceByID returns domain.ErrNotFound when the invoice does not exist.
	InvoiceByID(ctx context.Context, id string) (*domain.Invoice, error)

	Customers(ctx context.Context) ([]domain.CustomerField, error)
	FilteredCustomers(ctx context.Context, query string) ([]domain.CustomerTotals, error)

	CreateInvoice(ctx context.Context, inv *domain.Invoice) error
	// UpdateInvoice and DeleteInvoice return domain.ErrNotFound when no row matched.
	UpdateInvoice(ctx context.Context, inv *domain.Invoice) error
	DeleteInvoice(ctx context.Context, id string) error
}

// ListingCache holds rendered listing results between invoice mutations.
type ListingCache interface {
	// Get decodes a cached value into dest and reports whether it was present.
	// gen is the cache generation the lookup ran against.
	Get(ctx context.Context, key string, dest any) (gen int64, hit bool, err error)
	// Set stores value under generation gen. A value computed while an
	// invalidation landed is therefore written where no later Get looks.
	Set(ctx context.Context, gen int64, key string, value any, ttl time.Duration) error
	// Invalidate makes every previously cached listing unreachable.
	Invalidate(ctx context.Context) error
}
