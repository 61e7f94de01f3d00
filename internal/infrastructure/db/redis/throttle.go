package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// LoginThrottle counts login attempts per caller in Redis.
// Key format: login_attempts:<caller>
type LoginThrottle struct {
	client *redis.Client
	limit  int64
	window time.Duration
}

// NewLoginThrottle creates a throttle allowing limit attempts per window.
func NewLoginThrottle(client *redis.Client, limit int, window time.Duration) *LoginThrottle {
	if limit <= 0 {
		limit = 10
	}
	if window <= 0 {
		window = time.Minute
	}
	return &LoginThrottle{client: client, limit: int64(limit), window: window}
}

// Allow records an attempt for key and reports whether it is within budget.
// The counter's expiry starts at the first attempt of the window.
func (t *LoginThrottle) Allow(ctx context.Context, key string) (bool, error) {
	k := t.key(key)

	n, err := t.client.Incr(ctx, k).Result()
	if err != nil {
		return false, fmt.Errorf("throttle incr: %w", err)
	}
	if n == 1 {
		if err := t.client.Expire(ctx, k, t.window).Err(); err != nil {
			return false, fmt.Errorf("throttle expire: %w", err)
		}
	}

	return n <= t.limit, nil
}

func (t *LoginThrottle) key(caller string) string {
	return "login_attempts:" + caller
}
