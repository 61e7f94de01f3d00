package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/guardlink/portal-system/internal/core/domain"
	"github.com/guardlink/portal-system/internal/core/ports"
)

// AuthService implements login and identity lookup on top of the user
// repository and the token service.
type AuthService struct {
	users  ports.UserRepository
	tokens *TokenService
	logger zerolog.Logger
}

func NewAuthService(users ports.UserRepository, tokens *TokenService, logger zerolog.Logger) *AuthService {
	return &AuthService{users: users, tokens: tokens, logger: logger}
}

// Login verifies the credential pair and mints a session token. Unknown
// email, wrong password and storage failure are indistinguishable to the
// caller: all return domain.ErrInvalidCredentials. Storage failures are
// additionally logged (fails closed).
func (s *AuthService) Login(ctx context.Context, email, password string) (*ports.LoginResult, error) {
	if email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, domain.ErrUserNotFound) {
			s.logger.Error().Err(err).Msg("user lookup failed during login")
		}
		return nil, domain.ErrInvalidCredentials
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		s.logger.Error().Err(err).Msg("token issuance failed")
		return nil, domain.ErrInvalidCredentials
	}

	pub := user.Public()
	return &ports.LoginResult{
		Token:       token,
		RedirectURL: user.Role.Home(),
		User:        &pub,
	}, nil
}

// CurrentUser verifies the session token and re-reads the user record.
// All failure modes (bad token, unknown user, storage error) collapse into
// domain.ErrInvalidToken; storage errors are logged and fail closed.
func (s *AuthService) CurrentUser(ctx context.Context, token string) (*domain.User, error) {
	id, err := s.tokens.Verify(token)
	if err != nil {
		return nil, domain.ErrInvalidToken
	}

	user, err := s.users.FindByID(ctx, id.ID)
	if err != nil {
		if !errors.Is(err, domain.ErrUserNotFound) {
			s.logger.Error().Err(err).Int64("user_id", id.ID).Msg("user lookup failed during identity check")
		}
		return nil, domain.ErrInvalidToken
	}

	pub := user.Public()
	return &pub, nil
}
