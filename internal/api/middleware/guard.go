package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/guardlink/portal-system/internal/api/metrics"
	"github.com/guardlink/portal-system/internal/core/domain"
	"github.com/guardlink/portal-system/internal/core/ports"
)

// SessionCookie is the name of the HTTP-only cookie carrying the session token.
const SessionCookie = "auth_token"

// signInPath is where unauthenticated visitors are sent.
const signInPath = "/auth"

// PathClass partitions the URL space for the route guard. Every request path
// maps to exactly one class.
type PathClass int

const (
	// PathExempt is skipped by the guard entirely: the API namespace,
	// probes, metrics, docs and static assets.
	PathExempt PathClass = iota
	// PathPublic is the marketing home page.
	PathPublic
	// PathSignIn is the sign-in page.
	PathSignIn
	// PathAdmin is everything under the admin portal.
	PathAdmin
	// PathClient is everything under the client portal.
	PathClient
	// PathOther is any remaining path; allowed for any authenticated session.
	PathOther
)

var exemptPrefixes = []string{"/api/", "/health", "/metrics", "/swagger", "/static/", "/favicon.ico"}

// ClassifyPath maps a request path to its guard class.
func ClassifyPath(path string) PathClass {
	for _, p := range exemptPrefixes {
		if strings.HasPrefix(path, p) {
			return PathExempt
		}
	}
	switch {
	case path == "/":
		return PathPublic
	case path == signInPath:
		return PathSignIn
	case strings.HasPrefix(path, "/admin"):
		return PathAdmin
	case strings.HasPrefix(path, "/client"):
		return PathClient
	}
	return PathOther
}

// Decision is the outcome of the guard's decision procedure.
type Decision struct {
	Allow        bool
	RedirectTo   string
	ClearSession bool
}

// Decide evaluates the guard decision table. verify is called at most once.
//
//	exempt, home                      → allow without checking the token
//	protected, no token               → redirect to sign-in
//	sign-in, valid token              → redirect to the role's portal
//	sign-in, invalid token            → allow, clearing the stale cookie
//	admin portal, valid wrong role    → redirect to client portal
//	admin portal, invalid token       → redirect to sign-in
//	client portal, valid wrong role   → redirect to admin portal
//	client portal, invalid token      → redirect to sign-in
//	anything else                     → allow
func Decide(class PathClass, token string, verify func(string) (*domain.Identity, error)) Decision {
	if class == PathExempt || class == PathPublic {
		return Decision{Allow: true}
	}

	if token == "" {
		if class == PathSignIn {
			return Decision{Allow: true}
		}
		return Decision{RedirectTo: signInPath}
	}

	id, err := verify(token)

	switch class {
	case PathSignIn:
		if err != nil {
			// Stale or tampered cookie on the sign-in page: let the
			// visitor re-authenticate, but drop the dead cookie so it
			// doesn't outlive its usefulness.
			return Decision{Allow: true, ClearSession: true}
		}
		return Decision{RedirectTo: id.Role.Home()}

	case PathAdmin:
		if err != nil {
			return Decision{RedirectTo: signInPath}
		}
		if id.Role != domain.RoleAdmin {
			return Decision{RedirectTo: domain.RoleClient.Home()}
		}

	case PathClient:
		if err != nil {
			return Decision{RedirectTo: signInPath}
		}
		if id.Role != domain.RoleClient {
			return Decision{RedirectTo: domain.RoleAdmin.Home()}
		}
	}

	return Decision{Allow: true}
}

// Guard intercepts every inbound page request and enforces the decision
// table before any protected content is produced.
func Guard(verifier ports.TokenVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := ""
			if ck, err := c.Cookie(SessionCookie); err == nil {
				token = ck.Value
			}

			d := Decide(ClassifyPath(c.Request().URL.Path), token, verifier.Verify)
			if d.ClearSession {
				ClearSessionCookie(c)
			}
			if !d.Allow {
				metrics.GuardDecisionsTotal.WithLabelValues("redirect").Inc()
				return c.Redirect(http.StatusFound, d.RedirectTo)
			}

			metrics.GuardDecisionsTotal.WithLabelValues("allow").Inc()
			return next(c)
		}
	}
}

// NewSessionCookie builds the site-wide, HTTP-only session cookie whose
// lifetime matches the token's.
func NewSessionCookie(token string, ttl time.Duration) *http.Cookie {
	return &http.Cookie{
		Name:     SessionCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}

// ClearSessionCookie expires the session cookie on the response.
func ClearSessionCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
