package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/99minutos/invoice-dashboard/internal/api/metrics"
	"github.com/99minutos/invoice-dashboard/internal/api/middleware"
	"github.com/99minutos/invoice-dashboard/internal/core/domain"
	"github.com/99minutos/invoice-dashboard/internal/core/ports"
)

const (
	msgInvalidCredentials = "Invalid credentials."
	msgSomethingWentWrong = "Something went wrong."
)

// CookieConfig controls the session cookie.
type CookieConfig = middleware.CookieConfig

type AuthHandler struct {
	authService ports.AuthService
	cookie      CookieConfig
	log         zerolog.Logger
}

func NewAuthHandler(authService ports.AuthService, cookie CookieConfig, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		cookie:      cookie,
		log:         log.With().Str("component", "auth_handler").Logger(),
	}
}

// LoginPage describes the login form for a client about to render it.
//
// @Summary      Login form state
// @Tags         auth
// @Produce      json
// @Param        callbackUrl  query     string  false  "Where to go after signing in"
// @Success      200          {object}  loginPageResponse
// @Success      303          "Already signed in, redirected to the dashboard"
// @Router       /login [get]
func (h *AuthHandler) LoginPage(c echo.Context) error {
	return c.JSON(http.StatusOK, loginPageResponse{CallbackURL: SafeRedirect(c.QueryParam("callbackUrl"))})
}

// Login verifies the submitted credentials and starts a session.
//
// @Summary      Sign in
// @Tags         auth
// @Accept       x-www-form-urlencoded
// @Produce      json
// @Param        email       formData  string  true   "Email"
// @Param        password    formData  string  true   "Password (min 6 characters)"
// @Param        redirectTo  formData  string  false  "Same-site path to continue to"
// @Success      303         "Signed in, session cookie set"
// @Failure      401         {object}  formState
// @Failure      429         {object}  errorResponse
// @Failure      503         {object}  formState
// @Router       /login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	session, token, err := h.authService.Authenticate(
		c.Request().Context(),
		c.FormValue("email"),
		c.FormValue("password"),
	)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrValidation), errors.Is(err, domain.ErrInvalidCredentials):
			metrics.LoginAttemptsTotal.WithLabelValues("invalid").Inc()
			return c.JSON(http.StatusUnauthorized, formState{Message: msgInvalidCredentials})
		case errors.Is(err, domain.ErrStoreUnavailable):
			metrics.LoginAttemptsTotal.WithLabelValues("error").Inc()
			return c.JSON(http.StatusServiceUnavailable, formState{Message: msgSomethingWentWrong})
		default:
			metrics.LoginAttemptsTotal.WithLabelValues("error").Inc()
			return err
		}
	}

	metrics.LoginAttemptsTotal.WithLabelValues("success").Inc()
	h.cookie.Write(c, token, session.ExpiresAt)
	return c.Redirect(http.StatusSeeOther, SafeRedirect(c.FormValue("redirectTo")))
}

// Logout ends the current session and clears the cookie.
//
// @Summary      Sign out
// @Tags         auth
// @Success      303  "Signed out, redirected to the login page"
// @Failure      503  {object}  errorResponse
// @Router       /logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	if session := currentSession(c); session != nil {
		if err := h.authService.Logout(c.Request().Context(), session); err != nil {
			return err
		}
		metrics.SessionsRevokedTotal.Inc()
		h.log.Info().Str("session_id", session.ID).Msg("session ended")
	}

	h.cookie.Clear(c)
	return c.Redirect(http.StatusSeeOther, "/login")
}

// Me returns the signed-in user.
//
// @Summary      Current session
// @Tags         auth
// @Produce      json
// @Success      200  {object}  sessionResponse
// @Failure      401  {object}  errorResponse
// @Router       /dashboard/session [get]
func (h *AuthHandler) Me(c echo.Context) error {
	session := currentSession(c)
	if session == nil {
		return domain.ErrNoSession
	}
	return c.JSON(http.StatusOK, sessionResponse{
		UserID:    session.UserID,
		Email:     session.Email,
		Name:      session.Name,
		ExpiresAt: session.ExpiresAt.Format(time.RFC3339),
	})
}
