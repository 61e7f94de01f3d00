package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/guardlink/portal-system/internal/core/domain"
)

// DefaultSessionTTL is the absolute lifetime of a session token. There is no
// refresh mechanism: once expired, only a fresh login produces a new token.
const DefaultSessionTTL = 7 * 24 * time.Hour

// sessionClaims is the wire shape of the token payload.
type sessionClaims struct {
	UserID int64  `json:"id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	Name   string `json:"name"`
	jwt.RegisteredClaims
}

// TokenService issues and verifies signed session tokens. Verification is the
// single gate every guard decision goes through; it never reports why a token
// was rejected beyond internal logging.
type TokenService struct {
	secret []byte
	ttl    time.Duration
	logger zerolog.Logger
}

func NewTokenService(secret string, ttl time.Duration, logger zerolog.Logger) *TokenService {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &TokenService{secret: []byte(secret), ttl: ttl, logger: logger}
}

// Issue encodes the user's identity into a signed HS256 token expiring
// ttl from now.
func (s *TokenService) Issue(user *domain.User) (string, error) {
	now := time.Now().UTC()
	claims := sessionClaims{
		UserID: user.ID,
		Email:  user.Email,
		Role:   string(user.Role),
		Name:   user.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(s.secret)
}

// Verify checks signature and expiry and decodes the identity claim.
// Malformed, tampered and expired tokens all yield domain.ErrInvalidToken.
func (s *TokenService) Verify(token string) (*domain.Identity, error) {
	claims := &sessionClaims{}
	tkn, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return s.secret, nil
	})
	if err != nil || !tkn.Valid {
		s.logger.Debug().Err(err).Msg("token rejected")
		return nil, domain.ErrInvalidToken
	}

	role := domain.Role(claims.Role)
	if !role.Valid() {
		s.logger.Debug().Str("role", claims.Role).Msg("token carries unknown role")
		return nil, domain.ErrInvalidToken
	}

	return &domain.Identity{
		ID:    claims.UserID,
		Email: claims.Email,
		Role:  role,
		Name:  claims.Name,
	}, nil
}

// TTL returns the configured token lifetime, used to align the session
// cookie's Max-Age with the token expiry.
func (s *TokenService) TTL() time.Duration {
	return s.ttl
}
