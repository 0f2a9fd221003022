package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// minRevocationTTL keeps a revocation visible even when the session is already
// at or past its expiry when logout happens.
const minRevocationTTL = time.Second

// RevocationStore records sessions ended by logout until their natural expiry.
// Key format: dashboard:session:revoked:<session_id>
type RevocationStore struct {
	client *redis.Client
	now    func() time.Time
}

func NewRevocationStore(client *redis.Client) *RevocationStore {
	return &RevocationStore{client: client, now: time.Now}
}

// IsRevoked reports whether the session was ended before its expiry.
func (s *RevocationStore) IsRevoked(ctx context.Context, sessionID string) (bool, error) {
	n, err := s.client.Exists(ctx, revokedKey(sessionID)).Result()
	if err != nil {
		return false, fmt.Errorf("revocation check: %w", err)
	}
	return n > 0, nil
}

// Revoke marks the session revoked. The key expires together with the session.
func (s *RevocationStore) Revoke(ctx context.Context, sessionID string, until time.Time) error {
	if err := s.client.Set(ctx, revokedKey(sessionID), "1", revocationTTL(s.now(), until)).Err(); err != nil {
		return fmt.Errorf("revoke session: %w", err)
	}
	return nil
}

func revokedKey(sessionID string) string {
	return keyPrefix + "session:revoked:" + sessionID
}

func revocationTTL(now, until time.Time) time.Duration {
	ttl := until.Sub(now)
	if ttl < minRevocationTTL {
		return minRevocationTTL
	}
	return ttl
}
