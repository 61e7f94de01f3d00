package ports

import (
	"context"

	"github.com/guardlink/portal-system/internal/core/domain"
)

// LoginResult is returned on a successful login.
type LoginResult struct {
	Token       string
	RedirectURL string
	User        *domain.User
}

// AuthService orchestrates credential verification and token issuance.
type AuthService interface {
	// Login verifies credentials and mints a session token. Every failure
	// mode (unknown email, wrong password, storage error) surfaces as
	// domain.ErrInvalidCredentials so callers cannot enumerate accounts.
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	// CurrentUser resolves a presented session token to the current public
	// user record, re-reading the store so stale claims (e.g. a renamed
	// user) do not linger for the token's whole lifetime. Invalid tokens
	// and missing users both surface as domain.ErrInvalidToken.
	CurrentUser(ctx context.Context, token string) (*domain.User, error)
}

// TokenVerifier is the single verification gate consumed by the route guard
// and the session middleware. Any failure (bad signature, malformed token,
// expired) yields domain.ErrInvalidToken uniformly.
type TokenVerifier interface {
	Verify(token string) (*domain.Identity, error)
}
