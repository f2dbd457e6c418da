package redis

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	failureWindow = 15 * time.Minute
	maxFailures   = 5
)

// LoginGuard throttles repeated failed logins per email, backed by Redis.
// Key format: loginfail:<lowercased email>, expiring failureWindow after
// the first failure in the window.
type LoginGuard struct {
	client *redis.Client
}

// NewLoginGuard creates a LoginGuard wrapping the given Redis client.
func NewLoginGuard(client *redis.Client) *LoginGuard {
	return &LoginGuard{client: client}
}

// TooManyFailures reports whether the email has exhausted its failure budget.
func (g *LoginGuard) TooManyFailures(ctx context.Context, email string) (bool, error) {
	n, err := g.client.Get(ctx, g.key(email)).Int64()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("login guard check: %w", err)
	}
	return n >= maxFailures, nil
}

// RecordFailure increments the failure counter, starting the expiry window
// on the first failure.
func (g *LoginGuard) RecordFailure(ctx context.Context, email string) error {
	key := g.key(email)
	n, err := g.client.Incr(ctx, key).Result()
	if err != nil {
		return fmt.Errorf("login guard incr: %w", err)
	}
	if n == 1 {
		if err := g.client.Expire(ctx, key, failureWindow).Err(); err != nil {
			return fmt.Errorf("login guard expire: %w", err)
		}
	}
	return nil
}

// Reset clears the failure counter after a successful login.
func (g *LoginGuard) Reset(ctx context.Context, email string) error {
	return g.client.Del(ctx, g.key(email)).Err()
}

func (g *LoginGuard) key(email string) string {
	return "loginfail:" + strings.ToLower(email)
}
