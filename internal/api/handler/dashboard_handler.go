package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"golang.org/x/sync/errgroup"

	"github.com/99minutos/invoice-dashboard/internal/core/domain"
	"github.com/99minutos/invoice-dashboard/internal/core/ports"
)

// DashboardHandler serves the overview widgets and the customers table.
type DashboardHandler struct {
	service ports.InvoiceService
}

func NewDashboardHandler(service ports.InvoiceService) *DashboardHandler {
	return &DashboardHandler{service: service}
}

// Overview handles GET /dashboard, the landing page after sign in. The three
// widgets load concurrently and the first failure fails the page.
//
// @Summary      Dashboard overview
// @Tags         dashboard
// @Produce      json
// @Success      200  {object}  overviewResponse
// @Failure      503  {object}  errorResponse
// @Router       /dashboard [get]
func (h *DashboardHandler) Overview(c echo.Context) error {
	var (
		resp  overviewResponse
		cards *domain.CardData
	)
	g, ctx := errgroup.WithContext(c.Request().Context())
	g.Go(func() (err error) {
		resp.Revenue, err = h.service.FetchRevenue(ctx)
		return err
	})
	g.Go(func() (err error) {
		cards, err = h.service.FetchCardData(ctx)
		return err
	})
	g.Go(func() (err error) {
		resp.LatestInvoices, err = h.service.FetchLatestInvoices(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return err
	}

	resp.Cards = *cards
	if resp.Revenue == nil {
		resp.Revenue = []domain.Revenue{}
	}
	if resp.LatestInvoices == nil {
		resp.LatestInvoices = []domain.LatestInvoice{}
	}
	return c.JSON(http.StatusOK, resp)
}

// Revenue handles GET /dashboard/revenue.
//
// @Summary      Monthly revenue
// @Tags         dashboard
// @Produce      json
// @Success      200  {array}   domain.Revenue
// @Failure      503  {object}  errorResponse
// @Router       /dashboard/revenue [get]
func (h *DashboardHandler) Revenue(c echo.Context) error {
	revenue, err := h.service.FetchRevenue(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, revenue)
}

// Cards handles GET /dashboard/cards.
//
// @Summary      Summary cards
// @Tags         dashboard
// @Produce      json
// @Success      200  {object}  domain.CardData
// @Failure      503  {object}  errorResponse
// @Router       /dashboard/cards [get]
func (h *DashboardHandler) Cards(c echo.Context) error {
	cards, err := h.service.FetchCardData(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, cards)
}

// Customers handles GET /dashboard/customers.
//
// @Summary      Customer options for invoice forms
// @Tags         customers
// @Produce      json
// @Success      200  {array}   domain.CustomerField
// @Failure      503  {object}  errorResponse
// @Router       /dashboard/customers [get]
func (h *DashboardHandler) Customers(c echo.Context) error {
	customers, err := h.service.FetchCustomers(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, customers)
}

// FilteredCustomers handles GET /dashboard/customers/filtered.
//
// @Summary      Customers table with invoice totals
// @Tags         customers
// @Produce      json
// @Param        query  query     string  false  "Matches customer name or email"
// @Success      200    {array}   domain.CustomerRow
// @Failure      503    {object}  errorResponse
// @Router       /dashboard/customers/filtered [get]
func (h *DashboardHandler) FilteredCustomers(c echo.Context) error {
	rows, err := h.service.FetchFilteredCustomers(c.Request().Context(), c.QueryParam("query"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, rows)
}
