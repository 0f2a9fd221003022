package service

import (
	"net/url"
	"strings"

	"github.com/99minutos/invoice-dashboard/internal/core/domain"
)

// GateConfig names the routes the gate cares about.
type GateConfig struct {
	ProtectedPrefix string
	LoginPath       string
	HomePath        string
}

// Decision is the outcome of Authorize. A non-empty Redirect means the caller
// should send the client there instead of serving the request.
type Decision struct {
	Allow    bool
	Redirect string
}

// Gate is the routing policy that decides who may see which path.
// It holds no state beyond its configuration.
type Gate struct {
	cfg GateConfig
}

func NewGate(cfg GateConfig) *Gate {
	if cfg.ProtectedPrefix == "" {
		cfg.ProtectedPrefix = "/dashboard"
	}
	if cfg.LoginPath == "" {
		cfg.LoginPath = "/login"
	}
	if cfg.HomePath == "" {
		cfg.HomePath = cfg.ProtectedPrefix
	}
	cfg.ProtectedPrefix = strings.TrimRight(cfg.ProtectedPrefix, "/")
	return &Gate{cfg: cfg}
}

// Authorize applies the policy to a request path:
//   - protected paths are allowed only with a session, otherwise the client is
//     sent to the login page with the requested path as callbackUrl.
//   - the login page redirects to the home path when a session exists.
//   - everything else is allowed.
func (g *Gate) Authorize(path string, session *domain.Session) Decision {
	loggedIn := session != nil

	if g.IsProtected(path) {
		if loggedIn {
			return Decision{Allow: true}
		}
		return Decision{Redirect: g.cfg.LoginPath + "?callbackUrl=" + url.QueryEscape(path)}
	}

	if loggedIn && path == g.cfg.LoginPath {
		return Decision{Redirect: g.cfg.HomePath}
	}

	return Decision{Allow: true}
}

// IsProtected reports whether path lies under the protected prefix.
func (g *Gate) IsProtected(path string) bool {
	p := g.cfg.ProtectedPrefix
	return path == p || strings.HasPrefix(path, p+"/")
}

// LoginPath returns the configured login route.
func (g *Gate) LoginPath() string { return g.cfg.LoginPath }

// HomePath returns the configured landing route for signed-in users.
func (g *Gate) HomePath() string { return g.cfg.HomePath }
