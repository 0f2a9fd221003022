package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/invoice-dashboard/internal/core/domain"
	"github.com/99minutos/invoice-dashboard/internal/core/service"
)

type stubAuthService struct {
	sessions map[string]*domain.Session
}

func (s *stubAuthService) Verify(context.Context, string, string) (*domain.User, error) {
	return nil, domain.ErrInvalidCredentials
}

func (s *stubAuthService) Authenticate(context.Context, string, string) (*domain.Session, string, error) {
	return nil, "", domain.ErrInvalidCredentials
}

func (s *stubAuthService) ResolveSession(_ context.Context, token string) (*domain.Session, error) {
	if sess, ok := s.sessions[token]; ok {
		return sess, nil
	}
	return nil, domain.ErrNoSession
}

func (s *stubAuthService) Logout(context.Context, *domain.Session) error { return nil }

func newSessionStub() *stubAuthService {
	return &stubAuthService{sessions: map[string]*domain.Session{
		"good-token": {ID: "s1", UserID: "u1", Email: "user@nextmail.com"},
	}}
}

// serve runs req through session + gate in front of a handler that records
// whether it was reached.
func serve(t *testing.T, req *http.Request) (*httptest.ResponseRecorder, bool) {
	t.Helper()
	e := echo.New()
	reached := false
	h := func(c echo.Context) error {
		reached = true
		return c.NoContent(http.StatusOK)
	}
	e.Use(Session(newSessionStub(), CookieConfig{Name: "session", Secure: true}))
	e.Use(Gate(service.NewGate(service.GateConfig{})))
	e.GET("/dashboard/invoices", h)
	e.GET("/login", h)
	e.GET("/health", h)

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec, reached
}

func TestSessionAndGate_AnonymousDashboardRedirects(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/dashboard/invoices", nil)
	rec, reached := serve(t, req)

	if reached {
		t.Fatalf("protected handler must not run")
	}
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", rec.Code)
	}
	if loc := rec.Header().Get(echo.HeaderLocation); loc != "/login?callbackUrl=%2Fdashboard%2Finvoices" {
		t.Fatalf("unexpected location %q", loc)
	}
}

func TestSessionAndGate_AnonymousJSONGets401(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/dashboard/invoices", nil)
	req.Header.Set(echo.HeaderAccept, echo.MIMEApplicationJSON)
	rec, reached := serve(t, req)

	if reached || rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without reaching handler, got %d", rec.Code)
	}
}

func TestSessionAndGate_ValidCookieAllows(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/dashboard/invoices", nil)
	req.AddCookie(&http.Cookie{Name: "session", Value: "good-token"})
	rec, reached := serve(t, req)

	if !reached || rec.Code != http.StatusOK {
		t.Fatalf("expected handler to run, got %d", rec.Code)
	}
}

func TestSessionAndGate_InvalidCookieIsClearedAndDenied(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/dashboard/invoices", nil)
	req.AddCookie(&http.Cookie{Name: "session", Value: "forged"})
	rec, reached := serve(t, req)

	if reached || rec.Code != http.StatusSeeOther {
		t.Fatalf("expected redirect, got %d", rec.Code)
	}
	var cleared *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == "session" && c.MaxAge < 0 {
			cleared = c
		}
	}
	if cleared == nil {
		t.Fatalf("expected invalid cookie to be cleared")
	}
	if !cleared.Secure || !cleared.HttpOnly || cleared.SameSite != http.SameSiteLaxMode {
		t.Fatalf("cleared cookie must keep the session cookie attributes, got %+v", cleared)
	}
}

func TestCookieConfig_WriteAndClearShareAttributes(t *testing.T) {
	e := echo.New()
	cfg := CookieConfig{Secure: true}
	expires := time.Now().Add(time.Hour)

	rec := httptest.NewRecorder()
	cfg.Write(e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec), "token", expires)
	rec2 := httptest.NewRecorder()
	cfg.Clear(e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec2))

	written, cleared := rec.Result().Cookies(), rec2.Result().Cookies()
	if len(written) != 1 || len(cleared) != 1 {
		t.Fatalf("expected one cookie each, got %d and %d", len(written), len(cleared))
	}
	w, c := written[0], cleared[0]
	if w.Name != "session" || c.Name != "session" {
		t.Fatalf("expected the default cookie name, got %q and %q", w.Name, c.Name)
	}
	if w.Value != "token" || c.Value != "" || c.MaxAge >= 0 {
		t.Fatalf("unexpected values: written %+v cleared %+v", w, c)
	}
	if w.Secure != c.Secure || w.HttpOnly != c.HttpOnly || w.SameSite != c.SameSite || w.Path != c.Path {
		t.Fatalf("attributes differ: written %+v cleared %+v", w, c)
	}
}

func TestSessionAndGate_LoginWithSessionGoesHome(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/login", nil)
	req.AddCookie(&http.Cookie{Name: "session", Value: "good-token"})
	rec, reached := serve(t, req)

	if reached || rec.Code != http.StatusSeeOther || rec.Header().Get(echo.HeaderLocation) != "/dashboard" {
		t.Fatalf("expected redirect to /dashboard, got %d %q", rec.Code, rec.Header().Get(echo.HeaderLocation))
	}
}

func TestSessionAndGate_PublicPaths(t *testing.T) {
	for _, path := range []string{"/login", "/health"} {
		rec, reached := serve(t, httptest.NewRequest(http.MethodGet, path, nil))
		if !reached || rec.Code != http.StatusOK {
			t.Fatalf("%s: expected public access, got %d", path, rec.Code)
		}
	}
}

func TestSessionFrom_Empty(t *testing.T) {
	c := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	if SessionFrom(c) != nil {
		t.Fatalf("expected nil session")
	}
}

func TestRateLimiter(t *testing.T) {
	rl := NewRateLimiter(0.001, 2)
	e := echo.New()
	limited := 0
	e.POST("/login", func(c echo.Context) error { return c.NoContent(http.StatusOK) },
		rl.Middleware(func(echo.Context) { limited++ }))

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodPost, "/login", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
	}
	if codes[0] != http.StatusOK || codes[1] != http.StatusOK || codes[2] != http.StatusTooManyRequests {
		t.Fatalf("unexpected codes %v", codes)
	}
	if limited != 1 {
		t.Fatalf("expected one limit callback, got %d", limited)
	}

	req := httptest.NewRequest(http.MethodPost, "/login", nil)
	req.RemoteAddr = "10.0.0.2:1234"
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("other clients must have their own bucket, got %d", rec.Code)
	}
}

func TestRateLimiter_CleanupEvictsIdleVisitors(t *testing.T) {
	rl := NewRateLimiter(1, 1)
	now := time.Date(2024, time.March, 14, 12, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }

	rl.allow("10.0.0.1")
	now = now.Add(visitorIdle + time.Second)
	rl.allow("10.0.0.2")
	rl.cleanup()

	if _, ok := rl.visitors["10.0.0.1"]; ok {
		t.Fatalf("idle visitor not evicted")
	}
	if _, ok := rl.visitors["10.0.0.2"]; !ok {
		t.Fatalf("active visitor evicted")
	}
}
