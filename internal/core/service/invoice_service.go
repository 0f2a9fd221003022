package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/99minutos/invoice-dashboard/internal/core/domain"
	"github.com/99minutos/invoice-dashboard/internal/core/ports"
)

const (
	defaultPageSize    = 6
	defaultLatestLimit = 5
)

// InvoiceServiceConfig carries the listing knobs shared by every query.
type InvoiceServiceConfig struct {
	PageSize    int
	LatestLimit int
	// CacheTTL enables the listing cache when positive.
	CacheTTL time.Duration
}

// InvoiceService is the dashboard query layer. Every operation goes through
// guard, so store failures reach the caller only as a domain.OperationError.
type InvoiceService struct {
	repo  ports.DashboardRepository
	cache ports.ListingCache
	cfg   InvoiceServiceConfig
	log   zerolog.Logger
	now   func() time.Time
	newID func() string
}

// NewInvoiceService builds the query layer. cache may be nil.
func NewInvoiceService(repo ports.DashboardRepository, cache ports.ListingCache, cfg InvoiceServiceConfig, log zerolog.Logger) *InvoiceService {
	if cfg.PageSize <= 0 {
		cfg.PageSize = defaultPageSize
	}
	if cfg.LatestLimit <= 0 {
		cfg.LatestLimit = defaultLatestLimit
	}
	return &InvoiceService{
		repo:  repo,
		cache: cache,
		cfg:   cfg,
		log:   log.With().Str("component", "invoices").Logger(),
		now:   func() time.Time { return time.Now().UTC() },
		newID: uuid.NewString,
	}
}

// PageSize is the number of invoices per page.
func (s *InvoiceService) PageSize() int { return s.cfg.PageSize }

func (s *InvoiceService) FetchRevenue(ctx context.Context) ([]domain.Revenue, error) {
	return guard(ctx, s, "fetch revenue data", s.repo.Revenue)
}

// FetchCardData runs the three aggregate queries concurrently. The first
// failure cancels the others and fails the whole call.
func (s *InvoiceService) FetchCardData(ctx context.Context) (*domain.CardData, error) {
	return guard(ctx, s, "fetch card data", func(ctx context.Context) (*domain.CardData, error) {
		return cached(ctx, s, "cards", func(ctx context.Context) (*domain.CardData, error) {
			var (
				invoices, customers int64
				totals              domain.InvoiceTotals
			)
			g, gctx := errgroup.WithContext(ctx)
			g.Go(func() (err error) {
				invoices, err = s.repo.CountInvoices(gctx)
				return err
			})
			g.Go(func() (err error) {
				customers, err = s.repo.CountCustomers(gctx)
				return err
			})
			g.Go(func() (err error) {
				totals, err = s.repo.InvoiceTotals(gctx)
				return err
			})
			if err := g.Wait(); err != nil {
				return nil, err
			}

			return &domain.CardData{
				NumberOfInvoices:     invoices,
				NumberOfCustomers:    customers,
				TotalPaidInvoices:    domain.FormatCurrency(totals.Paid),
				TotalPendingInvoices: domain.FormatCurrency(totals.Pending),
			}, nil
		})
	})
}

func (s *InvoiceService) FetchLatestInvoices(ctx context.Context) ([]domain.LatestInvoice, error) {
	return guard(ctx, s, "fetch the latest invoices", func(ctx context.Context) ([]domain.LatestInvoice, error) {
		return cached(ctx, s, "invoices:latest", func(ctx context.Context) ([]domain.LatestInvoice, error) {
			rows, err := s.repo.LatestInvoices(ctx, s.cfg.LatestLimit)
			if err != nil {
				return nil, err
			}
			out := make([]domain.LatestInvoice, 0, len(rows))
			for _, r := range rows {
				out = append(out, domain.LatestInvoice{
					ID:       r.ID,
					Name:     r.Name,
					Email:    r.Email,
					ImageURL: r.ImageURL,
					Amount:   domain.FormatCurrency(r.Amount),
				})
			}
			return out, nil
		})
	})
}

// FetchFilteredInvoices returns one page of the invoice search, newest first.
// Pages below 1 are treated as page 1. Pages whose offset does not fit an int
// are empty.
func (s *InvoiceService) FetchFilteredInvoices(ctx context.Context, query string, page int) ([]domain.InvoiceRow, error) {
	if page < 1 {
		page = 1
	}
	if page-1 > math.MaxInt/s.cfg.PageSize {
		return []domain.InvoiceRow{}, nil
	}
	key := fmt.Sprintf("invoices:filtered:%d:%s", page, query)
	return guard(ctx, s, "fetch invoices", func(ctx context.Context) ([]domain.InvoiceRow, error) {
		return cached(ctx, s, key, func(ctx context.Context) ([]domain.InvoiceRow, error) {
			rows, err := s.repo.FilteredInvoices(ctx, ports.InvoiceFilter{
				Query:  query,
				Limit:  s.cfg.PageSize,
				Offset: (page - 1) * s.cfg.PageSize,
			})
			if err != nil {
				return nil, err
			}
			if rows == nil {
				rows = []domain.InvoiceRow{}
			}
			return rows, nil
		})
	})
}

// FetchInvoicesPages returns how many pages FetchFilteredInvoices can serve for query.
func (s *InvoiceService) FetchInvoicesPages(ctx context.Context, query string) (int, error) {
	return guard(ctx, s, "fetch total number of invoices", func(ctx context.Context) (int, error) {
		return cached(ctx, s, "invoices:pages:"+query, func(ctx context.Context) (int, error) {
			count, err := s.repo.CountFilteredInvoices(ctx, query)
			if err != nil {
				return 0, err
			}
			return totalPages(count, s.cfg.PageSize), nil
		})
	})
}

// FetchInvoiceByID returns the invoice with its amount in major units.
func (s *InvoiceService) FetchInvoiceByID(ctx context.Context, id string) (*domain.InvoiceForm, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrNotFound
	}
	return guard(ctx, s, "fetch invoice", func(ctx context.Context) (*domain.InvoiceForm, error) {
		inv, err := s.repo.InvoiceByID(ctx, id)
		if err != nil {
			return nil, err
		}
		return &domain.InvoiceForm{
			ID:         inv.ID,
			CustomerID: inv.CustomerID,
			Amount:     domain.MinorToMajor(inv.Amount),
			Status:     inv.Status,
		}, nil
	})
}

func (s *InvoiceService) FetchCustomers(ctx context.Context) ([]domain.CustomerField, error) {
	return guard(ctx, s, "fetch all customers", s.repo.Customers)
}

// FetchFilteredCustomers lists matching customers with their invoice totals.
// Customers without invoices appear with zero totals.
func (s *InvoiceService) FetchFilteredCustomers(ctx context.Context, query string) ([]domain.CustomerRow, error) {
	return guard(ctx, s, "fetch customer table", func(ctx context.Context) ([]domain.CustomerRow, error) {
		return cached(ctx, s, "customers:filtered:"+query, func(ctx context.Context) ([]domain.CustomerRow, error) {
			rows, err := s.repo.FilteredCustomers(ctx, query)
			if err != nil {
				return nil, err
			}
			out := make([]domain.CustomerRow, 0, len(rows))
			for _, r := range rows {
				out = append(out, domain.CustomerRow{
					ID:            r.ID,
					Name:          r.Name,
					Email:         r.Email,
					ImageURL:      r.ImageURL,
					TotalInvoices: r.TotalInvoices,
					TotalPending:  domain.FormatCurrency(r.TotalPending),
					TotalPaid:     domain.FormatCurrency(r.TotalPaid),
				})
			}
			return out, nil
		})
	})
}

// CreateInvoice stores a new invoice dated today and returns its id.
func (s *InvoiceService) CreateInvoice(ctx context.Context, in domain.InvoiceInput) (string, error) {
	if err := checkInvoiceInput(in); err != nil {
		return "", err
	}
	inv := &domain.Invoice{
		ID:         s.newID(),
		CustomerID: in.CustomerID,
		Amount:     in.AmountCents,
		Status:     in.Status,
		Date:       today(s.now()),
	}
	_, err := guard(ctx, s, "create invoice", func(ctx context.Context) (struct{}, error) {
		return struct{}{}, s.repo.CreateInvoice(ctx, inv)
	})
	if err != nil {
		return "", err
	}
	s.invalidate(ctx)
	s.log.Info().Str("invoice_id", inv.ID).Str("customer_id", inv.CustomerID).Int64("amount", inv.Amount).Msg("invoice created")
	return inv.ID, nil
}

// UpdateInvoice replaces customer, amount and status of an existing invoice.
func (s *InvoiceService) UpdateInvoice(ctx context.Context, id string, in domain.InvoiceInput) error {
	if _, err := uuid.Parse(id); err != nil {
		return domain.ErrNotFound
	}
	if err := checkInvoiceInput(in); err != nil {
		return err
	}
	inv := &domain.Invoice{ID: id, CustomerID: in.CustomerID, Amount: in.AmountCents, Status: in.Status}
	_, err := guard(ctx, s, "update invoice", func(ctx context.Context) (struct{}, error) {
		return struct{}{}, s.repo.UpdateInvoice(ctx, inv)
	})
	if err != nil {
		return err
	}
	s.invalidate(ctx)
	s.log.Info().Str("invoice_id", id).Msg("invoice updated")
	return nil
}

func (s *InvoiceService) DeleteInvoice(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return domain.ErrNotFound
	}
	_, err := guard(ctx, s, "delete invoice", func(ctx context.Context) (struct{}, error) {
		return struct{}{}, s.repo.DeleteInvoice(ctx, id)
	})
	if err != nil {
		return err
	}
	s.invalidate(ctx)
	s.log.Info().Str("invoice_id", id).Msg("invoice deleted")
	return nil
}

func (s *InvoiceService) invalidate(ctx context.Context) {
	if s.cache == nil || s.cfg.CacheTTL <= 0 {
		return
	}
	if err := s.cache.Invalidate(ctx); err != nil {
		s.log.Warn().Err(err).Msg("listing cache invalidation failed")
	}
}

// guard runs fn and collapses store failures into an OperationError named
// after op. Not-found and validation errors are passed through unchanged.
func guard[T any](ctx context.Context, s *InvoiceService, op string, fn func(context.Context) (T, error)) (T, error) {
	v, err := fn(ctx)
	if err == nil {
		return v, nil
	}
	var zero T
	if errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrValidation) {
		return zero, err
	}
	s.log.Error().Err(err).Str("operation", op).Msg("database error")
	return zero, &domain.OperationError{Op: op}
}

// cached serves key from the listing cache when enabled, falling back to fn.
// The fresh value is stored under the generation seen before fn ran, so a
// write that lands mid-read leaves it unreachable. Cache errors never fail
// the read.
func cached[T any](ctx context.Context, s *InvoiceService, key string, fn func(context.Context) (T, error)) (T, error) {
	if s.cache == nil || s.cfg.CacheTTL <= 0 {
		return fn(ctx)
	}

	var v T
	gen, hit, err := s.cache.Get(ctx, key, &v)
	if err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("listing cache read failed")
		return fn(ctx)
	}
	if hit {
		return v, nil
	}

	v, err = fn(ctx)
	if err != nil {
		return v, err
	}
	if err := s.cache.Set(ctx, gen, key, v, s.cfg.CacheTTL); err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("listing cache write failed")
	}
	return v, nil
}

func checkInvoiceInput(in domain.InvoiceInput) error {
	ve := domain.NewValidationError("Invalid invoice.")
	if in.CustomerID == "" {
		ve.Add("customerId", "Please select a customer.")
	}
	if in.AmountCents <= 0 {
		ve.Add("amount", "Please enter an amount greater than $0.")
	}
	if !in.Status.Valid() {
		ve.Add("status", "Please select an invoice status.")
	}
	if ve.HasErrors() {
		return ve
	}
	return nil
}

func totalPages(count int64, pageSize int) int {
	size := int64(pageSize)
	return int((count + size - 1) / size)
}

func today(now time.Time) time.Time {
	y, m, d := now.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
