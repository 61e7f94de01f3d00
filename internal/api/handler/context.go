package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/guardlink/portal-system/internal/api/middleware"
	"github.com/guardlink/portal-system/internal/core/domain"
)

// ctxIdentity extracts the identity injected by the Session middleware and
// performs a fast-fail check before any service call: a missing identity
// means the route was wired without the middleware, which must never reach a
// handler as an authenticated request.
func ctxIdentity(c echo.Context) (*domain.Identity, error) {
	id, ok := middleware.IdentityFrom(c)
	if !ok {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return id, nil
}
