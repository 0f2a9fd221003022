package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/99minutos/invoice-dashboard/internal/core/domain"
	"github.com/99minutos/invoice-dashboard/internal/core/ports"
)

const sessionKey = "session"

// Session resolves the session cookie and stores the result in the context.
// A missing, malformed, expired or revoked cookie leaves the request anonymous;
// the gate decides what anonymous requests may see.
func Session(auth ports.AuthService, cfg CookieConfig) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(cfg.name())
			if err != nil || cookie.Value == "" {
				return next(c)
			}

			session, err := auth.ResolveSession(c.Request().Context(), cookie.Value)
			if err != nil {
				cfg.Clear(c)
				return next(c)
			}

			c.Set(sessionKey, session)
			return next(c)
		}
	}
}

// SessionFrom returns the session resolved for this request, or nil.
func SessionFrom(c echo.Context) *domain.Session {
	s, _ := c.Get(sessionKey).(*domain.Session)
	return s
}
