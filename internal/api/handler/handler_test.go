package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/99minutos/invoice-dashboard/internal/api/middleware"
	"github.com/99minutos/invoice-dashboard/internal/core/domain"
)

// ---------------------------------------------------------------------------
// Stubs
// ---------------------------------------------------------------------------

type stubAuthService struct {
	authenticateFn func(ctx context.Context, email, password string) (*domain.Session, string, error)
	sessions       map[string]*domain.Session
	loggedOut      []string
	logoutErr      error
}

func (s *stubAuthService) Verify(context.Context, string, string) (*domain.User, error) {
	return nil, domain.ErrInvalidCredentials
}

func (s *stubAuthService) Authenticate(ctx context.Context, email, password string) (*domain.Session, string, error) {
	return s.authenticateFn(ctx, email, password)
}

func (s *stubAuthService) ResolveSession(_ context.Context, token string) (*domain.Session, error) {
	if sess, ok := s.sessions[token]; ok {
		return sess, nil
	}
	return nil, domain.ErrNoSession
}

func (s *stubAuthService) Logout(_ context.Context, session *domain.Session) error {
	if s.logoutErr != nil {
		return s.logoutErr
	}
	s.loggedOut = append(s.loggedOut, session.ID)
	return nil
}

type stubInvoiceService struct {
	rows      []domain.InvoiceRow
	pages     int
	lastQuery string
	lastPage  int
	created   []domain.InvoiceInput
	updated   map[string]domain.InvoiceInput
	deleted   []string
	err       error
}

func (s *stubInvoiceService) FetchRevenue(context.Context) ([]domain.Revenue, error) {
	return []domain.Revenue{{Month: "Jan", Revenue: 2000}}, s.err
}

func (s *stubInvoiceService) FetchCardData(context.Context) (*domain.CardData, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &domain.CardData{TotalPaidInvoices: "$0.00", TotalPendingInvoices: "$0.00"}, nil
}

func (s *stubInvoiceService) FetchLatestInvoices(context.Context) ([]domain.LatestInvoice, error) {
	return nil, s.err
}

func (s *stubInvoiceService) FetchFilteredInvoices(_ context.Context, query string, page int) ([]domain.InvoiceRow, error) {
	s.lastQuery, s.lastPage = query, page
	return s.rows, s.err
}

func (s *stubInvoiceService) FetchInvoicesPages(_ context.Context, query string) (int, error) {
	s.lastQuery = query
	return s.pages, s.err
}

func (s *stubInvoiceService) FetchInvoiceByID(_ context.Context, id string) (*domain.InvoiceForm, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &domain.InvoiceForm{ID: id, Amount: 45}, nil
}

func (s *stubInvoiceService) FetchCustomers(context.Context) ([]domain.CustomerField, error) {
	return nil, s.err
}

func (s *stubInvoiceService) FetchFilteredCustomers(context.Context, string) ([]domain.CustomerRow, error) {
	return nil, s.err
}

func (s *stubInvoiceService) CreateInvoice(_ context.Context, in domain.InvoiceInput) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	s.created = append(s.created, in)
	return "new-id", nil
}

func (s *stubInvoiceService) UpdateInvoice(_ context.Context, id string, in domain.InvoiceInput) error {
	if s.err != nil {
		return s.err
	}
	if s.updated == nil {
		s.updated = make(map[string]domain.InvoiceInput)
	}
	s.updated[id] = in
	return nil
}

func (s *stubInvoiceService) DeleteInvoice(_ context.Context, id string) error {
	if s.err != nil {
		return s.err
	}
	s.deleted = append(s.deleted, id)
	return nil
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func formRequest(method, target string, values url.Values) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(values.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	return req
}

func decodeFormState(t *testing.T, rec *httptest.ResponseRecorder) formState {
	t.Helper()
	var body formState
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid json %q: %v", rec.Body.String(), err)
	}
	return body
}

func loginValues(email, password, redirectTo string) url.Values {
	return url.Values{"email": {email}, "password": {password}, "redirectTo": {redirectTo}}
}

// ---------------------------------------------------------------------------
// Auth handler
// ---------------------------------------------------------------------------

func TestAuthHandler_Login_Success(t *testing.T) {
	e := echo.New()
	expires := time.Now().Add(time.Hour)
	stub := &stubAuthService{
		authenticateFn: func(_ context.Context, email, password string) (*domain.Session, string, error) {
			if email != "user@nextmail.com" || password != "123456" {
				t.Fatalf("unexpected credentials %q %q", email, password)
			}
			return &domain.Session{ID: "s1", ExpiresAt: expires}, "signed-token", nil
		},
	}
	h := NewAuthHandler(stub, CookieConfig{Name: "session"}, zerolog.Nop())

	rec := httptest.NewRecorder()
	c := e.NewContext(formRequest(http.MethodPost, "/login", loginValues("user@nextmail.com", "123456", "/dashboard/invoices?page=2")), rec)

	if err := h.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", rec.Code)
	}
	if loc := rec.Header().Get(echo.HeaderLocation); loc != "/dashboard/invoices?page=2" {
		t.Fatalf("unexpected location %q", loc)
	}

	cookies := rec.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != "session" || cookies[0].Value != "signed-token" || !cookies[0].HttpOnly {
		t.Fatalf("unexpected cookies: %+v", cookies)
	}
}

func TestAuthHandler_Login_RejectsOffsiteRedirect(t *testing.T) {
	e := echo.New()
	stub := &stubAuthService{
		authenticateFn: func(context.Context, string, string) (*domain.Session, string, error) {
			return &domain.Session{ID: "s1", ExpiresAt: time.Now().Add(time.Hour)}, "tok", nil
		},
	}
	h := NewAuthHandler(stub, CookieConfig{}, zerolog.Nop())

	rec := httptest.NewRecorder()
	c := e.NewContext(formRequest(http.MethodPost, "/login", loginValues("user@nextmail.com", "123456", "https://evil.example/phish")), rec)
	if err := h.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if loc := rec.Header().Get(echo.HeaderLocation); loc != "/dashboard" {
		t.Fatalf("expected fallback to /dashboard, got %q", loc)
	}
}

func TestAuthHandler_Login_Failures(t *testing.T) {
	cases := []struct {
		name    string
		err     error
		code    int
		message string
	}{
		{"invalid credentials", domain.ErrInvalidCredentials, http.StatusUnauthorized, "Invalid credentials."},
		{"malformed input", domain.NewValidationError("Invalid credentials."), http.StatusUnauthorized, "Invalid credentials."},
		{"store down", &domain.OperationError{Op: "fetch user"}, http.StatusServiceUnavailable, "Something went wrong."},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := echo.New()
			stub := &stubAuthService{
				authenticateFn: func(context.Context, string, string) (*domain.Session, string, error) {
					return nil, "", tc.err
				},
			}
			h := NewAuthHandler(stub, CookieConfig{}, zerolog.Nop())

			rec := httptest.NewRecorder()
			c := e.NewContext(formRequest(http.MethodPost, "/login", loginValues("a@b.com", "x", "")), rec)
			if err := h.Login(c); err != nil {
				t.Fatalf("handler error: %v", err)
			}
			if rec.Code != tc.code {
				t.Fatalf("expected %d, got %d", tc.code, rec.Code)
			}
			if got := decodeFormState(t, rec).Message; got != tc.message {
				t.Fatalf("expected %q, got %q", tc.message, got)
			}
			if len(rec.Result().Cookies()) != 0 {
				t.Fatalf("no cookie may be set on failure")
			}
		})
	}
}

func TestAuthHandler_Login_UnexpectedErrorPropagates(t *testing.T) {
	boom := errors.New("boom")
	e := echo.New()
	stub := &stubAuthService{
		authenticateFn: func(context.Context, string, string) (*domain.Session, string, error) {
			return nil, "", boom
		},
	}
	h := NewAuthHandler(stub, CookieConfig{}, zerolog.Nop())

	c := e.NewContext(formRequest(http.MethodPost, "/login", loginValues("a@b.com", "123456", "")), httptest.NewRecorder())
	if err := h.Login(c); err != boom {
		t.Fatalf("expected error to propagate, got %v", err)
	}
}

func TestAuthHandler_Logout(t *testing.T) {
	stub := &stubAuthService{sessions: map[string]*domain.Session{"tok": {ID: "s1"}}}
	h := NewAuthHandler(stub, CookieConfig{Name: "session"}, zerolog.Nop())

	e := echo.New()
	e.POST("/logout", h.Logout, middleware.Session(stub, CookieConfig{Name: "session"}))

	req := httptest.NewRequest(http.MethodPost, "/logout", nil)
	req.AddCookie(&http.Cookie{Name: "session", Value: "tok"})
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusSeeOther || rec.Header().Get(echo.HeaderLocation) != "/login" {
		t.Fatalf("expected redirect to /login, got %d %q", rec.Code, rec.Header().Get(echo.HeaderLocation))
	}
	if len(stub.loggedOut) != 1 || stub.loggedOut[0] != "s1" {
		t.Fatalf("session not revoked: %v", stub.loggedOut)
	}
	cleared := false
	for _, c := range rec.Result().Cookies() {
		if c.Name == "session" && c.MaxAge < 0 {
			cleared = true
		}
	}
	if !cleared {
		t.Fatalf("cookie not cleared")
	}
}

func TestAuthHandler_LoginPage(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{}, CookieConfig{}, zerolog.Nop())
	rec := httptest.NewRecorder()
	c := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/login?callbackUrl=%2Fdashboard%2Fcustomers", nil), rec)

	if err := h.LoginPage(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	var body loginPageResponse
	_ = json.Unmarshal(rec.Body.Bytes(), &body)
	if body.CallbackURL != "/dashboard/customers" {
		t.Fatalf("unexpected callback %q", body.CallbackURL)
	}
}

// ---------------------------------------------------------------------------
// Invoice handler
// ---------------------------------------------------------------------------

func invoiceValues(customerID, amount, status string) url.Values {
	return url.Values{"customerId": {customerID}, "amount": {amount}, "status": {status}}
}

func TestInvoiceHandler_Create_Success(t *testing.T) {
	svc := &stubInvoiceService{}
	h := NewInvoiceHandler(svc, NewValidator())

	rec := httptest.NewRecorder()
	c := echo.New().NewContext(formRequest(http.MethodPost, "/dashboard/invoices", invoiceValues("cust-1", "45.00", "pending")), rec)

	if err := h.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", rec.Code)
	}
	if rec.Header().Get(HeaderRevalidatePath) != "/dashboard/invoices" || rec.Header().Get(echo.HeaderLocation) != "/dashboard/invoices" {
		t.Fatalf("missing revalidation headers: %v", rec.Header())
	}
	if len(svc.created) != 1 {
		t.Fatalf("expected one create, got %d", len(svc.created))
	}
	want := domain.InvoiceInput{CustomerID: "cust-1", AmountCents: 4500, Status: domain.StatusPending}
	if svc.created[0] != want {
		t.Fatalf("unexpected input %+v", svc.created[0])
	}
}

func TestInvoiceHandler_Create_ValidationErrors(t *testing.T) {
	svc := &stubInvoiceService{}
	h := NewInvoiceHandler(svc, NewValidator())

	rec := httptest.NewRecorder()
	c := echo.New().NewContext(formRequest(http.MethodPost, "/dashboard/invoices", invoiceValues("", "", "overdue")), rec)

	if err := h.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}
	body := decodeFormState(t, rec)
	if body.Message != "Missing Fields. Failed to Create Invoice." {
		t.Fatalf("unexpected message %q", body.Message)
	}
	want := map[string]string{
		"customerId": "Please select a customer.",
		"amount":     "Please enter an amount greater than $0.",
		"status":     "Please select an invoice status.",
	}
	for field, msg := range want {
		if got := body.Errors[field]; len(got) != 1 || got[0] != msg {
			t.Fatalf("field %s: expected [%q], got %v", field, msg, got)
		}
	}
	if len(svc.created) != 0 {
		t.Fatalf("service must not be called on invalid input")
	}
}

func TestInvoiceHandler_Create_StoreFailurePropagates(t *testing.T) {
	svc := &stubInvoiceService{err: &domain.OperationError{Op: "create invoice"}}
	h := NewInvoiceHandler(svc, NewValidator())

	c := echo.New().NewContext(formRequest(http.MethodPost, "/dashboard/invoices", invoiceValues("cust-1", "10", "paid")), httptest.NewRecorder())
	if err := h.Create(c); !errors.Is(err, domain.ErrStoreUnavailable) {
		t.Fatalf("expected store error to reach the error handler, got %v", err)
	}
}

func TestInvoiceHandler_UpdateAndDelete(t *testing.T) {
	svc := &stubInvoiceService{}
	h := NewInvoiceHandler(svc, NewValidator())
	e := echo.New()
	e.POST("/dashboard/invoices/:id", h.Update)
	e.POST("/dashboard/invoices/:id/delete", h.Delete)

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, formRequest(http.MethodPost, "/dashboard/invoices/inv-1", invoiceValues("cust-2", "12.345", "paid")))
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("update: expected 303, got %d", rec.Code)
	}
	if got := svc.updated["inv-1"]; got.AmountCents != 1235 || got.Status != domain.StatusPaid {
		t.Fatalf("unexpected update %+v", got)
	}

	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/dashboard/invoices/inv-1/delete", nil))
	if rec.Code != http.StatusSeeOther || len(svc.deleted) != 1 || svc.deleted[0] != "inv-1" {
		t.Fatalf("delete: got %d %v", rec.Code, svc.deleted)
	}
}

func TestInvoiceHandler_Delete_NotFound(t *testing.T) {
	svc := &stubInvoiceService{err: domain.ErrNotFound}
	h := NewInvoiceHandler(svc, NewValidator())

	c := echo.New().NewContext(httptest.NewRequest(http.MethodPost, "/", nil), httptest.NewRecorder())
	c.SetParamNames("id")
	c.SetParamValues("missing")
	if err := h.Delete(c); err != domain.ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestInvoiceHandler_List(t *testing.T) {
	svc := &stubInvoiceService{rows: []domain.InvoiceRow{{
		ID: "inv-1", Amount: 15795, Status: domain.StatusPending, Name: "Evil Rabbit",
		Date: time.Date(2022, time.December, 6, 0, 0, 0, 0, time.UTC),
	}}}
	h := NewInvoiceHandler(svc, NewValidator())

	rec := httptest.NewRecorder()
	c := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/dashboard/invoices?query=evil&page=abc", nil), rec)
	if err := h.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if svc.lastQuery != "evil" || svc.lastPage != 1 {
		t.Fatalf("unexpected args %q %d", svc.lastQuery, svc.lastPage)
	}

	var body invoicesResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(body.Invoices) != 1 || body.Invoices[0].Amount != "$157.95" || body.Invoices[0].Date != "Dec 6, 2022" {
		t.Fatalf("unexpected body %+v", body)
	}
}

func TestDashboardHandler_Overview(t *testing.T) {
	h := NewDashboardHandler(&stubInvoiceService{})

	rec := httptest.NewRecorder()
	c := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/dashboard", nil), rec)
	if err := h.Overview(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var body overviewResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(body.Revenue) != 1 || body.Cards.TotalPaidInvoices != "$0.00" || body.LatestInvoices == nil {
		t.Fatalf("unexpected body %s", rec.Body.String())
	}
}

func TestDashboardHandler_Overview_StoreFailure(t *testing.T) {
	opErr := &domain.OperationError{Op: "fetch card data"}
	h := NewDashboardHandler(&stubInvoiceService{err: opErr})

	c := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/dashboard", nil), httptest.NewRecorder())
	if err := h.Overview(c); !errors.Is(err, domain.ErrStoreUnavailable) {
		t.Fatalf("expected store failure to propagate, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// Forms
// ---------------------------------------------------------------------------

func TestParseInvoiceForm_Amounts(t *testing.T) {
	fv := NewValidator()
	cases := []struct {
		amount string
		cents  int64
		ok     bool
	}{
		{"45", 4500, true},
		{"45.00", 4500, true},
		{"0.015", 2, true},
		{"1234.56", 123456, true},
		{"0", 0, false},
		{"-5", 0, false},
		{"0.001", 0, false},
		{"abc", 0, false},
		{"1e3", 100000, true},
		{"99999999999", 0, false},
	}
	for _, tc := range cases {
		t.Run(tc.amount, func(t *testing.T) {
			in, err := fv.ParseInvoiceForm(invoiceValues("cust-1", tc.amount, "paid"), "Invalid.")
			if tc.ok {
				if err != nil || in.AmountCents != tc.cents {
					t.Fatalf("expected %d cents, got %d %v", tc.cents, in.AmountCents, err)
				}
				return
			}
			var ve *domain.ValidationError
			if !errors.As(err, &ve) || len(ve.Fields["amount"]) != 1 {
				t.Fatalf("expected amount error, got %v", err)
			}
		})
	}
}

func TestSafeRedirect(t *testing.T) {
	cases := map[string]string{
		"":                        "/dashboard",
		"/dashboard/invoices":     "/dashboard/invoices",
		"/dashboard?query=a":      "/dashboard?query=a",
		"https://evil.example":    "/dashboard",
		"//evil.example/x":        "/dashboard",
		`/\evil.example`:          "/dashboard",
		"dashboard":               "/dashboard",
		"javascript:alert(1)":     "/dashboard",
		"/login?callbackUrl=%2Fx": "/login?callbackUrl=%2Fx",
	}
	for in, want := range cases {
		if got := SafeRedirect(in); got != want {
			t.Errorf("SafeRedirect(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestParsePage(t *testing.T) {
	cases := map[string]int{"": 1, "abc": 1, "0": 1, "-3": 1, "1": 1, "4": 4}
	for in, want := range cases {
		if got := parsePage(in); got != want {
			t.Errorf("parsePage(%q) = %d, want %d", in, got, want)
		}
	}
}

// ---------------------------------------------------------------------------
// Health
// ---------------------------------------------------------------------------

func TestReadiness(t *testing.T) {
	ok := func(context.Context) error { return nil }
	down := func(context.Context) error { return errors.New("connection refused") }

	cases := []struct {
		name   string
		checks map[string]Check
		code   int
	}{
		{"all up", map[string]Check{"postgres": ok, "redis": ok}, http.StatusOK},
		{"redis down", map[string]Check{"postgres": ok, "redis": down}, http.StatusServiceUnavailable},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			c := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/health/ready", nil), rec)
			if err := NewReadinessHandler(tc.checks).Readiness(c); err != nil {
				t.Fatalf("handler error: %v", err)
			}
			if rec.Code != tc.code {
				t.Fatalf("expected %d, got %d", tc.code, rec.Code)
			}
		})
	}
}
