package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/99minutos/invoice-dashboard/docs"
	"github.com/99minutos/invoice-dashboard/internal/api/handler"
	"github.com/99minutos/invoice-dashboard/internal/api/metrics"
	"github.com/99minutos/invoice-dashboard/internal/api/middleware"
	"github.com/99minutos/invoice-dashboard/internal/core/ports"
	"github.com/99minutos/invoice-dashboard/internal/core/service"
)

// Dependencies is everything the HTTP layer needs from the rest of the process.
type Dependencies struct {
	Log          zerolog.Logger
	Auth         ports.AuthService
	Invoices     ports.InvoiceService
	Gate         *service.Gate
	LoginLimiter *middleware.RateLimiter
	Cookie       handler.CookieConfig
	Readiness    map[string]handler.Check

	// Registerer and Gatherer default to the global Prometheus registry.
	Registerer prometheus.Registerer
	Gatherer   prometheus.Gatherer
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Dependencies) *echo.Echo {
	if d.Registerer == nil {
		d.Registerer = prometheus.DefaultRegisterer
	}
	if d.Gatherer == nil {
		d.Gatherer = prometheus.DefaultGatherer
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(middleware.RequestLogger(d.Log))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "http",
		Registerer: d.Registerer,
	}))
	e.Use(middleware.Session(d.Auth, d.Cookie))
	e.Use(middleware.Gate(d.Gate))

	// --- Operational endpoints ---
	health := handler.NewHealthHandler()
	readiness := handler.NewReadinessHandler(d.Readiness)
	e.GET("/health", health.Liveness)
	e.GET("/health/ready", readiness.Readiness)
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: d.Gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// --- Auth ---
	auth := handler.NewAuthHandler(d.Auth, d.Cookie, d.Log)
	loginMiddleware := []echo.MiddlewareFunc{}
	if d.LoginLimiter != nil {
		loginMiddleware = append(loginMiddleware, d.LoginLimiter.Middleware(func(echo.Context) {
			metrics.LoginAttemptsTotal.WithLabelValues("throttled").Inc()
		}))
	}
	e.GET("/login", auth.LoginPage)
	e.POST("/login", auth.Login, loginMiddleware...)
	e.POST("/logout", auth.Logout)

	// --- Dashboard (gated) ---
	dashboard := handler.NewDashboardHandler(d.Invoices)
	invoices := handler.NewInvoiceHandler(d.Invoices, handler.NewValidator())

	g := e.Group("/dashboard")
	g.GET("", dashboard.Overview)
	g.GET("/session", auth.Me)
	g.GET("/revenue", dashboard.Revenue)
	g.GET("/cards", dashboard.Cards)
	g.GET("/customers", dashboard.Customers)
	g.GET("/customers/filtered", dashboard.FilteredCustomers)

	g.GET("/invoices", invoices.List)
	g.GET("/invoices/pages", invoices.Pages)
	g.GET("/invoices/latest", invoices.Latest)
	g.GET("/invoices/:id", invoices.Get)
	g.POST("/invoices", invoices.Create)
	g.POST("/invoices/:id", invoices.Update)
	g.POST("/invoices/:id/delete", invoices.Delete)

	return e
}
