package ports

import (
	"context"

	"github.com/99minutos/invoice-dashboard/internal/core/domain"
)

// Verifier checks an email/password pair against the stored hash.
type Verifier interface {
	Verify(ctx context.Context, email, password string) (*domain.User, error)
}

// AuthService issues, resolves and ends sessions.
type AuthService interface {
	Verifier
	Authenticate(ctx context.Context, email, password string) (*domain.Session, string, error)
	ResolveSession(ctx context.Context, token string) (*domain.Session, error)
	Logout(ctx context.Context, session *domain.Session) error
}
