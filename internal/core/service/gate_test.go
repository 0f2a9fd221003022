package service

import (
	"testing"

	"github.com/99minutos/invoice-dashboard/internal/core/domain"
)

func TestGate_Authorize(t *testing.T) {
	gate := NewGate(GateConfig{})
	session := &domain.Session{ID: "s1", UserID: "u1"}

	cases := []struct {
		name     string
		path     string
		session  *domain.Session
		allow    bool
		redirect string
	}{
		{"dashboard without session", "/dashboard/invoices", nil, false, "/login?callbackUrl=%2Fdashboard%2Finvoices"},
		{"dashboard root without session", "/dashboard", nil, false, "/login?callbackUrl=%2Fdashboard"},
		{"dashboard with session", "/dashboard/invoices", session, true, ""},
		{"login with session", "/login", session, false, "/dashboard"},
		{"login without session", "/login", nil, true, ""},
		{"public path without session", "/", nil, true, ""},
		{"public path with session", "/health", session, true, ""},
		{"prefix lookalike is public", "/dashboards", nil, true, ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d := gate.Authorize(tc.path, tc.session)
			if d.Allow != tc.allow {
				t.Fatalf("allow = %v, want %v", d.Allow, tc.allow)
			}
			if d.Redirect != tc.redirect {
				t.Fatalf("redirect = %q, want %q", d.Redirect, tc.redirect)
			}
		})
	}
}

func TestGate_CustomRoutes(t *testing.T) {
	gate := NewGate(GateConfig{ProtectedPrefix: "/app/", LoginPath: "/signin", HomePath: "/app/home"})

	if !gate.IsProtected("/app/invoices") || gate.IsProtected("/apple") {
		t.Fatalf("unexpected prefix matching")
	}
	if d := gate.Authorize("/signin", &domain.Session{}); d.Redirect != "/app/home" {
		t.Fatalf("expected redirect to /app/home, got %q", d.Redirect)
	}
	if gate.LoginPath() != "/signin" || gate.HomePath() != "/app/home" {
		t.Fatalf("unexpected routes %q %q", gate.LoginPath(), gate.HomePath())
	}
}
