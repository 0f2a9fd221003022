package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/invoice-dashboard/internal/api/metrics"
	"github.com/99minutos/invoice-dashboard/internal/core/service"
)

// Gate enforces the route policy on every request. Browsers are redirected
// with 303; API clients asking for JSON get a 401 instead of a redirect.
func Gate(gate *service.Gate) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			path := c.Request().URL.Path
			d := gate.Authorize(path, SessionFrom(c))
			if d.Allow {
				metrics.GateDecisionsTotal.WithLabelValues("allow").Inc()
				return next(c)
			}

			if gate.IsProtected(path) {
				metrics.GateDecisionsTotal.WithLabelValues("login_redirect").Inc()
				if wantsJSON(c.Request()) {
					c.Response().Header().Set(echo.HeaderLocation, d.Redirect)
					return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
				}
			} else {
				metrics.GateDecisionsTotal.WithLabelValues("home_redirect").Inc()
			}
			return c.Redirect(http.StatusSeeOther, d.Redirect)
		}
	}
}

func wantsJSON(r *http.Request) bool {
	accept := r.Header.Get(echo.HeaderAccept)
	return strings.Contains(accept, echo.MIMEApplicationJSON) && !strings.Contains(accept, echo.MIMETextHTML)
}
