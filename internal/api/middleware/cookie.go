package middleware

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

const defaultCookieName = "session"

// CookieConfig controls the session cookie. Every write and every clear goes
// through Write and Clear so both carry the same attributes.
type CookieConfig struct {
	Name   string
	Secure bool
}

func (cfg CookieConfig) name() string {
	if cfg.Name == "" {
		return defaultCookieName
	}
	return cfg.Name
}

// Write sets the session cookie to token until expires.
func (cfg CookieConfig) Write(c echo.Context, token string, expires time.Time) {
	c.SetCookie(cfg.cookie(token, expires, 0))
}

// Clear tells the browser to drop the session cookie.
func (cfg CookieConfig) Clear(c echo.Context) {
	c.SetCookie(cfg.cookie("", time.Time{}, -1))
}

func (cfg CookieConfig) cookie(value string, expires time.Time, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     cfg.name(),
		Value:    value,
		Path:     "/",
		Expires:  expires,
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   cfg.Secure,
		SameSite: http.SameSiteLaxMode,
	}
}
