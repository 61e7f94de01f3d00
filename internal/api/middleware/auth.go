package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/guardlink/portal-system/internal/core/domain"
	"github.com/guardlink/portal-system/internal/core/ports"
)

// identityKey is the echo context key under which Session stores the
// verified identity.
const identityKey = "identity"

// Session validates the session cookie and injects the identity into the
// request context. API routes behind it respond 401 rather than redirecting:
// their callers are fetch calls, not browsers following links.
func Session(verifier ports.TokenVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ck, err := c.Cookie(SessionCookie)
			if err != nil || ck.Value == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "unauthenticated")
			}

			id, err := verifier.Verify(ck.Value)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "unauthenticated")
			}

			c.Set(identityKey, id)
			return next(c)
		}
	}
}

// IdentityFrom extracts the identity injected by Session.
func IdentityFrom(c echo.Context) (*domain.Identity, bool) {
	id, ok := c.Get(identityKey).(*domain.Identity)
	return id, ok
}
