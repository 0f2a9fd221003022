package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"go.opentelemetry.io/otel/attribute"

	"github.com/99minutos/invoice-dashboard/internal/core/domain"
	"github.com/99minutos/invoice-dashboard/internal/core/ports"
)

const (
	pqForeignKeyViolation   = "23503"
	pqInvalidTextRepresent  = "22P02"
	pqCheckConstraintFailed = "23514"
)

// invoiceSearch is shared by the page query and the page count so both always
// agree on which rows match.
const invoiceSearch = `
	FROM invoices
	JOIN customers ON invoices.customer_id = customers.id
	WHERE
		customers.name ILIKE $1 OR
		customers.email ILIKE $1 OR
		invoices.amount::text ILIKE $1 OR
		invoices.date::text ILIKE $1 OR
		invoices.status ILIKE $1`

type DashboardRepository struct {
	db *sqlx.DB
}

func NewDashboardRepository(db *sqlx.DB) *DashboardRepository {
	return &DashboardRepository{db: db}
}

func (r *DashboardRepository) Revenue(ctx context.Context) ([]domain.Revenue, error) {
	ctx, span := tracer.Start(ctx, "postgres.Revenue")
	defer span.End()

	var rows []domain.Revenue
	if err := r.db.SelectContext(ctx, &rows, `SELECT month, revenue FROM revenue`); err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("select revenue: %w", err)
	}
	return rows, nil
}

func (r *DashboardRepository) CountInvoices(ctx context.Context) (int64, error) {
	return r.count(ctx, "postgres.CountInvoices", `SELECT COUNT(*) FROM invoices`)
}

func (r *DashboardRepository) CountCustomers(ctx context.Context) (int64, error) {
	return r.count(ctx, "postgres.CountCustomers", `SELECT COUNT(*) FROM customers`)
}

func (r *DashboardRepository) InvoiceTotals(ctx context.Context) (domain.InvoiceTotals, error) {
	ctx, span := tracer.Start(ctx, "postgres.InvoiceTotals")
	defer span.End()

	var totals domain.InvoiceTotals
	err := r.db.GetContext(ctx, &totals, `
		SELECT
			COALESCE(SUM(CASE WHEN status = 'paid' THEN amount ELSE 0 END), 0) AS paid,
			COALESCE(SUM(CASE WHEN status = 'pending' THEN amount ELSE 0 END), 0) AS pending
		FROM invoices`)
	if err != nil {
		span.RecordError(err)
		return domain.InvoiceTotals{}, fmt.Errorf("sum invoice totals: %w", err)
	}
	return totals, nil
}

func (r *DashboardRepository) LatestInvoices(ctx context.Context, limit int) ([]domain.InvoiceRow, error) {
	ctx, span := tracer.Start(ctx, "postgres.LatestInvoices")
	defer span.End()

	var rows []domain.InvoiceRow
	err := r.db.SelectContext(ctx, &rows, `
		SELECT invoices.id, invoices.amount, invoices.date, invoices.status,
			customers.name, customers.email, customers.image_url
		FROM invoices
		JOIN customers ON invoices.customer_id = customers.id
		ORDER BY invoices.date DESC, invoices.id
		LIMIT $1`, limit)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("select latest invoices: %w", err)
	}
	return rows, nil
}

// FilteredInvoices orders by date then id so that consecutive pages never
// overlap when several invoices share a date.
func (r *DashboardRepository) FilteredInvoices(ctx context.Context, f ports.InvoiceFilter) ([]domain.InvoiceRow, error) {
	ctx, span := tracer.Start(ctx, "postgres.FilteredInvoices")
	defer span.End()
	span.SetAttributes(attribute.Int("limit", f.Limit), attribute.Int("offset", f.Offset))

	var rows []domain.InvoiceRow
	err := r.db.SelectContext(ctx, &rows, `
		SELECT invoices.id, invoices.amount, invoices.date, invoices.status,
			customers.name, customers.email, customers.image_url`+invoiceSearch+`
		ORDER BY invoices.date DESC, invoices.id
		LIMIT $2 OFFSET $3`, likePattern(f.Query), f.Limit, f.Offset)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("select filtered invoices: %w", err)
	}
	return rows, nil
}

func (r *DashboardRepository) CountFilteredInvoices(ctx context.Context, query string) (int64, error) {
	return r.count(ctx, "postgres.CountFilteredInvoices", `SELECT COUNT(*)`+invoiceSearch, likePattern(query))
}

func (r *DashboardRepository) InvoiceByID(ctx context.Context, id string) (*domain.Invoice, error) {
	ctx, span := tracer.Start(ctx, "postgres.InvoiceByID")
	defer span.End()

	var inv domain.Invoice
	err := r.db.GetContext(ctx, &inv, `
		SELECT id, customer_id, amount, status, date
		FROM invoices
		WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("select invoice %s: %w", id, err)
	}
	return &inv, nil
}

func (r *DashboardRepository) Customers(ctx context.Context) ([]domain.CustomerField, error) {
	ctx, span := tracer.Start(ctx, "postgres.Customers")
	defer span.End()

	var rows []domain.CustomerField
	if err := r.db.SelectContext(ctx, &rows, `SELECT id, name FROM customers ORDER BY name ASC`); err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("select customers: %w", err)
	}
	return rows, nil
}

func (r *DashboardRepository) FilteredCustomers(ctx context.Context, query string) ([]domain.CustomerTotals, error) {
	ctx, span := tracer.Start(ctx, "postgres.FilteredCustomers")
	defer span.End()

	var rows []domain.CustomerTotals
	err := r.db.SelectContext(ctx, &rows, `
		SELECT
			customers.id,
			customers.name,
			customers.email,
			customers.image_url,
			COUNT(invoices.id) AS total_invoices,
			COALESCE(SUM(CASE WHEN invoices.status = 'pending' THEN invoices.amount ELSE 0 END), 0) AS total_pending,
			COALESCE(SUM(CASE WHEN invoices.status = 'paid' THEN invoices.amount ELSE 0 END), 0) AS total_paid
		FROM customers
		LEFT JOIN invoices ON customers.id = invoices.customer_id
		WHERE
			customers.name ILIKE $1 OR
			customers.email ILIKE $1
		GROUP BY customers.id, customers.name, customers.email, customers.image_url
		ORDER BY customers.name ASC`, likePattern(query))
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("select filtered customers: %w", err)
	}
	return rows, nil
}

func (r *DashboardRepository) CreateInvoice(ctx context.Context, inv *domain.Invoice) error {
	ctx, span := tracer.Start(ctx, "postgres.CreateInvoice")
	defer span.End()

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO invoices (id, customer_id, amount, status, date)
		VALUES ($1, $2, $3, $4, $5)`,
		inv.ID, inv.CustomerID, inv.Amount, string(inv.Status), inv.Date.Format("2006-01-02"))
	if err != nil {
		if ve := constraintError(err); ve != nil {
			return ve
		}
		span.RecordError(err)
		return fmt.Errorf("insert invoice: %w", err)
	}
	return nil
}

func (r *DashboardRepository) UpdateInvoice(ctx context.Context, inv *domain.Invoice) error {
	ctx, span := tracer.Start(ctx, "postgres.UpdateInvoice")
	defer span.End()

	res, err := r.db.ExecContext(ctx, `
		UPDATE invoices
		SET customer_id = $1, amount = $2, status = $3
		WHERE id = $4`,
		inv.CustomerID, inv.Amount, string(inv.Status), inv.ID)
	if err != nil {
		if ve := constraintError(err); ve != nil {
			return ve
		}
		span.RecordError(err)
		return fmt.Errorf("update invoice %s: %w", inv.ID, err)
	}
	return expectRow(res, "update invoice "+inv.ID)
}

func (r *DashboardRepository) DeleteInvoice(ctx context.Context, id string) error {
	ctx, span := tracer.Start(ctx, "postgres.DeleteInvoice")
	defer span.End()

	res, err := r.db.ExecContext(ctx, `DELETE FROM invoices WHERE id = $1`, id)
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("delete invoice %s: %w", id, err)
	}
	return expectRow(res, "delete invoice "+id)
}

func (r *DashboardRepository) count(ctx context.Context, name, query string, args ...any) (int64, error) {
	ctx, span := tracer.Start(ctx, name)
	defer span.End()

	var n int64
	if err := r.db.GetContext(ctx, &n, query, args...); err != nil {
		span.RecordError(err)
		return 0, fmt.Errorf("%s: %w", name, err)
	}
	return n, nil
}

func likePattern(query string) string {
	return "%" + query + "%"
}

func expectRow(res sql.Result, what string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: rows affected: %w", what, err)
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// constraintError turns constraint violations caused by client input into a
// ValidationError. Any other error yields nil.
func constraintError(err error) *domain.ValidationError {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return nil
	}
	switch pqErr.Code {
	case pqForeignKeyViolation, pqInvalidTextRepresent:
		ve := domain.NewValidationError("Invalid invoice.")
		ve.Add("customerId", "Please select a customer.")
		return ve
	case pqCheckConstraintFailed:
		ve := domain.NewValidationError("Invalid invoice.")
		ve.Add("status", "Please select an invoice status.")
		return ve
	}
	return nil
}
