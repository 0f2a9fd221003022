package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/invoice-dashboard/internal/api/metrics"
	"github.com/99minutos/invoice-dashboard/internal/core/domain"
	"github.com/99minutos/invoice-dashboard/internal/core/ports"
)

const (
	invoicesPath = "/dashboard/invoices"

	// HeaderRevalidatePath names the listing a client should refetch after a
	// successful mutation.
	HeaderRevalidatePath = "X-Revalidate-Path"
)

type InvoiceHandler struct {
	service ports.InvoiceService
	forms   *formValidator
}

func NewInvoiceHandler(service ports.InvoiceService, forms *formValidator) *InvoiceHandler {
	return &InvoiceHandler{service: service, forms: forms}
}

// List handles GET /dashboard/invoices.
//
// @Summary      Search invoices
// @Tags         invoices
// @Produce      json
// @Param        query  query     string  false  "Matches customer name, email, amount, date or status"
// @Param        page   query     int     false  "1-based page number"
// @Success      200    {object}  invoicesResponse
// @Failure      401    {object}  errorResponse
// @Failure      503    {object}  errorResponse
// @Router       /dashboard/invoices [get]
func (h *InvoiceHandler) List(c echo.Context) error {
	query := c.QueryParam("query")
	page := parsePage(c.QueryParam("page"))

	rows, err := h.service.FetchFilteredInvoices(c.Request().Context(), query, page)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, invoicesResponse{Query: query, Page: page, Invoices: toInvoiceRows(rows)})
}

// Pages handles GET /dashboard/invoices/pages.
//
// @Summary      Count invoice pages
// @Tags         invoices
// @Produce      json
// @Param        query  query     string  false  "Same filter as the invoice search"
// @Success      200    {object}  pagesResponse
// @Failure      503    {object}  errorResponse
// @Router       /dashboard/invoices/pages [get]
func (h *InvoiceHandler) Pages(c echo.Context) error {
	query := c.QueryParam("query")
	total, err := h.service.FetchInvoicesPages(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, pagesResponse{Query: query, TotalPages: total})
}

// Latest handles GET /dashboard/invoices/latest.
//
// @Summary      Latest invoices
// @Tags         invoices
// @Produce      json
// @Success      200  {array}   domain.LatestInvoice
// @Failure      503  {object}  errorResponse
// @Router       /dashboard/invoices/latest [get]
func (h *InvoiceHandler) Latest(c echo.Context) error {
	latest, err := h.service.FetchLatestInvoices(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, latest)
}

// Get handles GET /dashboard/invoices/:id.
//
// @Summary      Invoice for editing
// @Tags         invoices
// @Produce      json
// @Param        id   path      string  true  "Invoice id"
// @Success      200  {object}  domain.InvoiceForm
// @Failure      404  {object}  errorResponse
// @Failure      503  {object}  errorResponse
// @Router       /dashboard/invoices/{id} [get]
func (h *InvoiceHandler) Get(c echo.Context) error {
	form, err := h.service.FetchInvoiceByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, form)
}

// Create handles POST /dashboard/invoices.
//
// @Summary      Create an invoice
// @Tags         invoices
// @Accept       x-www-form-urlencoded
// @Produce      json
// @Param        customerId  formData  string  true  "Customer id"
// @Param        amount      formData  number  true  "Amount in dollars"
// @Param        status      formData  string  true  "pending or paid"
// @Success      303         {object}  invoiceMutationResponse
// @Failure      422         {object}  formState
// @Failure      503         {object}  errorResponse
// @Router       /dashboard/invoices [post]
func (h *InvoiceHandler) Create(c echo.Context) error {
	const summary = "Missing Fields. Failed to Create Invoice."

	values, err := c.FormParams()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form")
	}
	in, err := h.forms.ParseInvoiceForm(values, summary)
	if err != nil {
		return formError(c, err)
	}

	id, err := h.service.CreateInvoice(c.Request().Context(), in)
	if err != nil {
		return formError(c, err)
	}

	metrics.InvoiceMutationsTotal.WithLabelValues("create").Inc()
	return revalidate(c, invoiceMutationResponse{ID: id})
}

// Update handles POST /dashboard/invoices/:id.
//
// @Summary      Update an invoice
// @Tags         invoices
// @Accept       x-www-form-urlencoded
// @Produce      json
// @Param        id          path      string  true  "Invoice id"
// @Param        customerId  formData  string  true  "Customer id"
// @Param        amount      formData  number  true  "Amount in dollars"
// @Param        status      formData  string  true  "pending or paid"
// @Success      303         {object}  invoiceMutationResponse
// @Failure      404         {object}  errorResponse
// @Failure      422         {object}  formState
// @Failure      503         {object}  errorResponse
// @Router       /dashboard/invoices/{id} [post]
func (h *InvoiceHandler) Update(c echo.Context) error {
	const summary = "Missing Fields. Failed to Update Invoice."

	values, err := c.FormParams()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form")
	}
	in, err := h.forms.ParseInvoiceForm(values, summary)
	if err != nil {
		return formError(c, err)
	}

	id := c.Param("id")
	if err := h.service.UpdateInvoice(c.Request().Context(), id, in); err != nil {
		return formError(c, err)
	}

	metrics.InvoiceMutationsTotal.WithLabelValues("update").Inc()
	return revalidate(c, invoiceMutationResponse{ID: id})
}

// Delete handles POST /dashboard/invoices/:id/delete.
//
// @Summary      Delete an invoice
// @Tags         invoices
// @Param        id   path  string  true  "Invoice id"
// @Success      303  {object}  invoiceMutationResponse
// @Failure      404  {object}  errorResponse
// @Failure      503  {object}  errorResponse
// @Router       /dashboard/invoices/{id}/delete [post]
func (h *InvoiceHandler) Delete(c echo.Context) error {
	id := c.Param("id")
	if err := h.service.DeleteInvoice(c.Request().Context(), id); err != nil {
		return err
	}

	metrics.InvoiceMutationsTotal.WithLabelValues("delete").Inc()
	return revalidate(c, invoiceMutationResponse{ID: id})
}

// formError renders validation failures as form state and hands everything
// else to the HTTP error handler.
func formError(c echo.Context, err error) error {
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		return c.JSON(http.StatusUnprocessableEntity, formState{Message: ve.Message, Errors: ve.Fields})
	}
	return err
}

// revalidate tells the client which listing is stale and sends it there.
func revalidate(c echo.Context, body invoiceMutationResponse) error {
	c.Response().Header().Set(HeaderRevalidatePath, invoicesPath)
	c.Response().Header().Set(echo.HeaderLocation, invoicesPath)
	return c.JSON(http.StatusSeeOther, body)
}
