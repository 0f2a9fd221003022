package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/99minutos/invoice-dashboard/internal/core/domain"
	"github.com/99minutos/invoice-dashboard/internal/core/ports"
)

const defaultSessionTTL = 24 * time.Hour

// credentials is the shape check applied before any lookup.
type credentials struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=6"`
}

type sessionClaims struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
	jwt.RegisteredClaims
}

// AuthService verifies credentials and manages signed session tokens.
type AuthService struct {
	users    ports.UserRepository
	revoker  ports.SessionRevoker
	secret   []byte
	ttl      time.Duration
	validate *validator.Validate
	log      zerolog.Logger
	now      func() time.Time
}

func NewAuthService(users ports.UserRepository, revoker ports.SessionRevoker, secret string, ttl time.Duration, log zerolog.Logger) *AuthService {
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}
	return &AuthService{
		users:    users,
		revoker:  revoker,
		secret:   []byte(secret),
		ttl:      ttl,
		validate: validator.New(),
		log:      log.With().Str("component", "auth").Logger(),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Verify returns the user owning email when password matches its stored hash.
// Unknown emails and wrong passwords both yield domain.ErrInvalidCredentials.
func (s *AuthService) Verify(ctx context.Context, email, password string) (*domain.User, error) {
	if err := s.validate.Struct(credentials{Email: email, Password: password}); err != nil {
		return nil, credentialsError(err)
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			// Keep the miss as slow as a real comparison.
			_ = bcrypt.CompareHashAndPassword(dummyHash(), []byte(password))
			s.log.Debug().Msg("login rejected: unknown email")
			return nil, domain.ErrInvalidCredentials
		}
		s.log.Error().Err(err).Msg("user lookup failed")
		return nil, &domain.OperationError{Op: "fetch user"}
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		s.log.Debug().Str("user_id", user.ID).Msg("login rejected: password mismatch")
		return nil, domain.ErrInvalidCredentials
	}

	verified := *user
	verified.PasswordHash = ""
	return &verified, nil
}

// Authenticate verifies the credentials and issues a fresh session token.
func (s *AuthService) Authenticate(ctx context.Context, email, password string) (*domain.Session, string, error) {
	user, err := s.Verify(ctx, email, password)
	if err != nil {
		return nil, "", err
	}

	now := s.now()
	session := &domain.Session{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		Email:     user.Email,
		IssuedAt:  now,
		ExpiresAt: now.Add(s.ttl),
	}
	if user.Name != nil {
		session.Name = *user.Name
	}

	token, err := s.sign(session)
	if err != nil {
		return nil, "", fmt.Errorf("sign session: %w", err)
	}

	s.log.Info().Str("user_id", user.ID).Str("session_id", session.ID).Msg("session issued")
	return session, token, nil
}

// ResolveSession turns a session token back into a live session. Invalid,
// expired and revoked tokens all yield domain.ErrNoSession.
func (s *AuthService) ResolveSession(ctx context.Context, token string) (*domain.Session, error) {
	if token == "" {
		return nil, domain.ErrNoSession
	}

	claims := &sessionClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(s.now))
	if err != nil || !parsed.Valid || claims.ID == "" || claims.Subject == "" || claims.ExpiresAt == nil {
		return nil, domain.ErrNoSession
	}

	revoked, err := s.revoker.IsRevoked(ctx, claims.ID)
	if err != nil {
		s.log.Warn().Err(err).Str("session_id", claims.ID).Msg("revocation check failed, rejecting session")
		return nil, domain.ErrNoSession
	}
	if revoked {
		return nil, domain.ErrNoSession
	}

	session := &domain.Session{
		ID:        claims.ID,
		UserID:    claims.Subject,
		Email:     claims.Email,
		Name:      claims.Name,
		ExpiresAt: claims.ExpiresAt.Time.UTC(),
	}
	if claims.IssuedAt != nil {
		session.IssuedAt = claims.IssuedAt.Time.UTC()
	}
	return session, nil
}

// Logout revokes the session for the rest of its lifetime.
func (s *AuthService) Logout(ctx context.Context, session *domain.Session) error {
	if session == nil {
		return nil
	}
	if err := s.revoker.Revoke(ctx, session.ID, session.ExpiresAt); err != nil {
		s.log.Error().Err(err).Str("session_id", session.ID).Msg("session revoke failed")
		return &domain.OperationError{Op: "end session"}
	}
	s.log.Info().Str("user_id", session.UserID).Str("session_id", session.ID).Msg("session ended")
	return nil
}

func (s *AuthService) sign(session *domain.Session) (string, error) {
	claims := sessionClaims{
		Email: session.Email,
		Name:  session.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        session.ID,
			Subject:   session.UserID,
			IssuedAt:  jwt.NewNumericDate(session.IssuedAt),
			ExpiresAt: jwt.NewNumericDate(session.ExpiresAt),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

func credentialsError(err error) error {
	ve := domain.NewValidationError("invalid credentials format")
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		for _, fe := range fieldErrs {
			switch fe.Field() {
			case "Email":
				ve.Add("email", "email must be a valid email")
			case "Password":
				ve.Add("password", "password must be at least 6 characters")
			}
		}
	}
	return ve
}

var (
	dummyOnce sync.Once
	dummy     []byte
)

func dummyHash() []byte {
	dummyOnce.Do(func() {
		dummy, _ = bcrypt.GenerateFromPassword([]byte("not-a-real-password"), bcrypt.DefaultCost)
	})
	return dummy
}
