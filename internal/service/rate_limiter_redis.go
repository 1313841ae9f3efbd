package service

import (
	"context"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// SessionRateLimiter caps how often one client may open new sessions.
type SessionRateLimiter interface {
	Allow(key string) bool
}

const redisAllowScript = `
local current = redis.call("INCR", KEYS[1])
if current == 1 then
  redis.call("EXPIRE", KEYS[1], ARGV[1])
end
return current
`

type redisSessionRateLimiter struct {
	client redisEvaler
	window time.Duration
	max    int
	prefix string
}

type redisEvaler interface {
	Eval(ctx context.Context, script string, keys []string, args ...interface{}) *redis.Cmd
}

// NewRedisSessionRateLimiter builds a fixed-window limiter backed by Redis.
// A nil client disables limiting.
func NewRedisSessionRateLimiter(client *redis.Client, window time.Duration, max int) SessionRateLimiter {
	if client == nil {
		return nil
	}
	if window <= 0 {
		window = time.Minute
	}
	if max <= 0 {
		max = 1
	}
	return &redisSessionRateLimiter{
		client: client,
		window: window,
		max:    max,
		prefix: "session:rl:",
	}
}

// Allow reports whether the key may start another session in this window.
// Redis trouble fails open: a broken limiter must not block the game.
func (l *redisSessionRateLimiter) Allow(key string) bool {
	if l == nil || l.client == nil {
		return true
	}
	normalizedKey := strings.ToLower(strings.TrimSpace(key))
	if normalizedKey == "" {
		return false
	}
	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()

	seconds := int(l.window.Seconds())
	if seconds <= 0 {
		seconds = 60
	}
	count, err := l.client.Eval(ctx, redisAllowScript, []string{l.prefix + normalizedKey}, seconds).Int()
	if err != nil {
		return true
	}
	return count <= l.max
}
