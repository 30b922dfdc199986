package redis

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/algo/shoe-inventory/internal/core/domain"
)

// LoginLimiter counts failed logins per username and per client IP in fixed
// windows. Key format: login:fail:user:<username> and login:fail:ip:<ip>.
type LoginLimiter struct {
	client      redis.UniversalClient
	maxAttempts int
	window      time.Duration
}

// NewLoginLimiter blocks a key once it has collected maxAttempts failures
// inside window.
func NewLoginLimiter(client redis.UniversalClient, maxAttempts int, window time.Duration) *LoginLimiter {
	if maxAttempts <= 0 {
		maxAttempts = 5
	}
	if window <= 0 {
		window = 15 * time.Minute
	}
	return &LoginLimiter{client: client, maxAttempts: maxAttempts, window: window}
}

func (l *LoginLimiter) Check(ctx context.Context, username, clientIP string) error {
	for _, key := range l.keys(username, clientIP) {
		count, err := l.client.Get(ctx, key).Int64()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				continue
			}
			return fmt.Errorf("login throttle check: %w", err)
		}
		if count >= int64(l.maxAttempts) {
			return domain.ErrTooManyAttempts
		}
	}
	return nil
}

func (l *LoginLimiter) RecordFailure(ctx context.Context, username, clientIP string) error {
	for _, key := range l.keys(username, clientIP) {
		count, err := l.client.Incr(ctx, key).Result()
		if err != nil {
			return fmt.Errorf("login throttle incr: %w", err)
		}
		// The window starts with the first failure and is not extended.
		if count == 1 {
			if err := l.client.Expire(ctx, key, l.window).Err(); err != nil {
				return fmt.Errorf("login throttle expire: %w", err)
			}
		}
	}
	return nil
}

// Reset clears the username counter after a successful login. The IP counter
// is left alone so one valid account cannot launder guesses against others.
func (l *LoginLimiter) Reset(ctx context.Context, username, _ string) error {
	if err := l.client.Del(ctx, userKey(username)).Err(); err != nil {
		return fmt.Errorf("login throttle reset: %w", err)
	}
	return nil
}

func (l *LoginLimiter) keys(username, clientIP string) []string {
	keys := []string{userKey(username)}
	if clientIP != "" {
		keys = append(keys, "login:fail:ip:"+clientIP)
	}
	return keys
}

func userKey(username string) string {
	return "login:fail:user:" + strings.ToLower(username)
}
