package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/99minutos/invoice-dashboard/internal/api/middleware"
	"github.com/99minutos/invoice-dashboard/internal/core/domain"
)

// currentSession returns the session resolved by the Session middleware.
// Handlers behind the gate can rely on it being non-nil.
func currentSession(c echo.Context) *domain.Session {
	return middleware.SessionFrom(c)
}
