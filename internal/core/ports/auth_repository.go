package ports

import (
	"context"
	"time"

	"github.com/99minutos/invoice-dashboard/internal/core/domain"
)

// UserRepository reads provisioned user accounts.
type UserRepository interface {
	// FindByEmail returns domain.ErrNotFound when no user has exactly this email.
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
}

// SessionRevoker tracks sessions that were ended before their expiry.
type SessionRevoker interface {
	IsRevoked(ctx context.Context, sessionID string) (bool, error)
	Revoke(ctx context.Context, sessionID string, until time.Time) error
}
