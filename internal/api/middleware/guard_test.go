package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/guardlink/portal-system/internal/core/domain"
)

// stubVerifier resolves fixed tokens; everything else is invalid.
type stubVerifier struct{}

func (stubVerifier) Verify(token string) (*domain.Identity, error) {
	switch token {
	case "admin-token":
		return &domain.Identity{ID: 1, Email: "admin@example.com", Role: domain.RoleAdmin, Name: "Admin"}, nil
	case "client-token":
		return &domain.Identity{ID: 2, Email: "client@example.com", Role: domain.RoleClient, Name: "Client"}, nil
	}
	return nil, domain.ErrInvalidToken
}

func TestClassifyPath(t *testing.T) {
	cases := []struct {
		path string
		want PathClass
	}{
		{"/", PathPublic},
		{"/auth", PathSignIn},
		{"/admin", PathAdmin},
		{"/admin/requests", PathAdmin},
		{"/client", PathClient},
		{"/client/history", PathClient},
		{"/api/auth/login", PathExempt},
		{"/api/requests", PathExempt},
		{"/health", PathExempt},
		{"/health/ready", PathExempt},
		{"/metrics", PathExempt},
		{"/swagger/index.html", PathExempt},
		{"/static/portal.js", PathExempt},
		{"/favicon.ico", PathExempt},
		{"/about", PathOther},
	}
	for _, tc := range cases {
		if got := ClassifyPath(tc.path); got != tc.want {
			t.Errorf("ClassifyPath(%q) = %v, want %v", tc.path, got, tc.want)
		}
	}
}

// TestDecide_DecisionTable exercises the full cross product of path class and
// session state. Session states: absent, valid admin, valid client, invalid.
func TestDecide_DecisionTable(t *testing.T) {
	const (
		absent  = ""
		admin   = "admin-token"
		client  = "client-token"
		invalid = "expired-or-tampered"
	)
	verify := stubVerifier{}.Verify

	cases := []struct {
		name  string
		class PathClass
		token string
		want  Decision
	}{
		// Public home: allowed without ever checking the token.
		{"public/absent", PathPublic, absent, Decision{Allow: true}},
		{"public/admin", PathPublic, admin, Decision{Allow: true}},
		{"public/client", PathPublic, client, Decision{Allow: true}},
		{"public/invalid", PathPublic, invalid, Decision{Allow: true}},

		// Sign-in page.
		{"signin/absent", PathSignIn, absent, Decision{Allow: true}},
		{"signin/admin", PathSignIn, admin, Decision{RedirectTo: "/admin"}},
		{"signin/client", PathSignIn, client, Decision{RedirectTo: "/client"}},
		{"signin/invalid", PathSignIn, invalid, Decision{Allow: true, ClearSession: true}},

		// Admin portal.
		{"admin/absent", PathAdmin, absent, Decision{RedirectTo: "/auth"}},
		{"admin/admin", PathAdmin, admin, Decision{Allow: true}},
		{"admin/client", PathAdmin, client, Decision{RedirectTo: "/client"}},
		{"admin/invalid", PathAdmin, invalid, Decision{RedirectTo: "/auth"}},

		// Client portal.
		{"client/absent", PathClient, absent, Decision{RedirectTo: "/auth"}},
		{"client/admin", PathClient, admin, Decision{RedirectTo: "/admin"}},
		{"client/client", PathClient, client, Decision{Allow: true}},
		{"client/invalid", PathClient, invalid, Decision{RedirectTo: "/auth"}},

		// Exempt paths bypass the guard entirely.
		{"exempt/absent", PathExempt, absent, Decision{Allow: true}},
		{"exempt/invalid", PathExempt, invalid, Decision{Allow: true}},

		// Any other path: authenticated-or-bust, but an invalid token is
		// simply treated as not granting anything extra.
		{"other/absent", PathOther, absent, Decision{RedirectTo: "/auth"}},
		{"other/admin", PathOther, admin, Decision{Allow: true}},
		{"other/client", PathOther, client, Decision{Allow: true}},
		{"other/invalid", PathOther, invalid, Decision{Allow: true}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Decide(tc.class, tc.token, verify)
			if got != tc.want {
				t.Fatalf("Decide(%v, %q) = %+v, want %+v", tc.class, tc.token, got, tc.want)
			}
		})
	}
}

func doGuarded(t *testing.T, path, token string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.AddCookie(&http.Cookie{Name: SessionCookie, Value: token})
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	mw := Guard(stubVerifier{})
	handler := mw(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	return rec
}

func TestGuard_RedirectsWrongRole(t *testing.T) {
	rec := doGuarded(t, "/admin/requests", "client-token")
	if rec.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d", rec.Code)
	}
	if loc := rec.Header().Get(echo.HeaderLocation); loc != "/client" {
		t.Fatalf("expected redirect to /client, got %s", loc)
	}
}

func TestGuard_RedirectsAnonymous(t *testing.T) {
	rec := doGuarded(t, "/client", "")
	if rec.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d", rec.Code)
	}
	if loc := rec.Header().Get(echo.HeaderLocation); loc != "/auth" {
		t.Fatalf("expected redirect to /auth, got %s", loc)
	}
}

func TestGuard_SignInRedirectsAuthenticated(t *testing.T) {
	rec := doGuarded(t, "/auth", "admin-token")
	if rec.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d", rec.Code)
	}
	if loc := rec.Header().Get(echo.HeaderLocation); loc != "/admin" {
		t.Fatalf("expected redirect to /admin, got %s", loc)
	}
}

// A stale cookie on the sign-in page lets the visitor through and is dropped.
func TestGuard_SignInClearsStaleCookie(t *testing.T) {
	rec := doGuarded(t, "/auth", "expired-token")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	setCookie := rec.Header().Get(echo.HeaderSetCookie)
	if !strings.Contains(setCookie, SessionCookie+"=") || !strings.Contains(setCookie, "Max-Age=0") {
		t.Fatalf("expected expiring session cookie, got %q", setCookie)
	}
}

func TestGuard_AllowsPublicAndExempt(t *testing.T) {
	for _, path := range []string{"/", "/api/auth/login", "/health", "/metrics"} {
		rec := doGuarded(t, path, "")
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200 for %s, got %d", path, rec.Code)
		}
	}
}
