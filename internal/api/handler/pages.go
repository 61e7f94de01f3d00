package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// PageHandler serves the portal page shells. The pages themselves are thin:
// they bootstrap their display state client-side from GET /api/auth/me. What
// matters here is that each path exists and sits behind the route guard.
type PageHandler struct{}

func NewPageHandler() *PageHandler {
	return &PageHandler{}
}

const homePage = `<!DOCTYPE html>
<html lang="en">
<head><meta charset="utf-8"><title>GuardLink Security</title></head>
<body>
<h1>GuardLink Security Services</h1>
<p>CCTV installation, gate automation, electric fencing, alarm systems and access control.</p>
<a href="/auth">Sign in</a>
</body>
</html>`

const signInPage = `<!DOCTYPE html>
<html lang="en">
<head><meta charset="utf-8"><title>Sign in - GuardLink</title></head>
<body>
<h1>Sign in</h1>
<form id="login" method="post">
<input type="email" name="email" placeholder="Email" required>
<input type="password" name="password" placeholder="Password" required>
<button type="submit">Sign in</button>
</form>
<script src="/static/auth.js"></script>
</body>
</html>`

const adminPage = `<!DOCTYPE html>
<html lang="en">
<head><meta charset="utf-8"><title>Admin - GuardLink</title></head>
<body>
<h1>Admin dashboard</h1>
<div id="app" data-portal="admin"></div>
<script src="/static/portal.js"></script>
</body>
</html>`

const clientPage = `<!DOCTYPE html>
<html lang="en">
<head><meta charset="utf-8"><title>My requests - GuardLink</title></head>
<body>
<h1>Client dashboard</h1>
<div id="app" data-portal="client"></div>
<script src="/static/portal.js"></script>
</body>
</html>`

func (h *PageHandler) Home(c echo.Context) error {
	return c.HTML(http.StatusOK, homePage)
}

func (h *PageHandler) SignIn(c echo.Context) error {
	return c.HTML(http.StatusOK, signInPage)
}

func (h *PageHandler) AdminPortal(c echo.Context) error {
	return c.HTML(http.StatusOK, adminPage)
}

func (h *PageHandler) ClientPortal(c echo.Context) error {
	return c.HTML(http.StatusOK, clientPage)
}
