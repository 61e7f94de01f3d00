package middleware

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/guardlink/portal-system/internal/api/metrics"
)

// AttemptLimiter decides whether a caller may make another login attempt.
type AttemptLimiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// LoginThrottle rate-limits a route per client IP. When the limiter itself
// fails the request passes through: throttling is hardening, not a
// precondition for logging in.
func LoginThrottle(limiter AttemptLimiter, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ok, err := limiter.Allow(c.Request().Context(), c.RealIP())
			if err != nil {
				log.Warn().Err(err).Msg("login throttle unavailable")
				return next(c)
			}
			if !ok {
				metrics.LoginsTotal.WithLabelValues("throttled").Inc()
				return c.JSON(http.StatusTooManyRequests, map[string]string{"error": "too many login attempts"})
			}
			return next(c)
		}
	}
}
