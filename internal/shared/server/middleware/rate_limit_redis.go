package middleware

import (
	"context"
	"math"
	"time"

	"github.com/redis/go-redis/v9"

	"docbuilder-backend/internal/shared/telemetry"
)

// gcraScript implements the generic cell rate algorithm, which behaves like
// a token bucket but stores a single timestamp per key. Redis TIME is the
// clock so every replica agrees.
var gcraScript = redis.NewScript(`
local rate = tonumber(ARGV[1])
local burst = tonumber(ARGV[2])
local t = redis.call('TIME')
local now = tonumber(t[1]) * 1000 + math.floor(tonumber(t[2]) / 1000)
local interval = 1000 / rate
local tat = tonumber(redis.call('GET', KEYS[1]) or now)
if tat < now then tat = now end
local new_tat = tat + interval
local allow_at = new_tat - interval * burst
if now < allow_at then
  return {0, math.ceil(allow_at - now)}
end
redis.call('SET', KEYS[1], new_tat, 'PX', math.ceil(new_tat - now))
return {1, 0}
`)

// RedisRateLimiter shares buckets across API replicas. Redis failures fail
// open: a limiter outage must not take the API down with it.
type RedisRateLimiter struct {
	Client *redis.Client
	Prefix string
}

func NewRedisRateLimiter(client *redis.Client) *RedisRateLimiter {
	return &RedisRateLimiter{Client: client, Prefix: "ratelimit:"}
}

func (l *RedisRateLimiter) Allow(ctx context.Context, key string, rule RateLimitRule) (bool, time.Duration) {
	if l == nil || l.Client == nil || rule.disabled() {
		return true, 0
	}
	res, err := gcraScript.Run(ctx, l.Client, []string{l.Prefix + key}, rule.Rate, rule.Burst).Int64Slice()
	if err != nil || len(res) != 2 {
		telemetry.Warn("ratelimit.redis_failed", map[string]any{"error": errString(err)})
		return true, 0
	}
	if res[0] == 1 {
		return true, 0
	}
	return false, time.Duration(math.Max(float64(res[1]), 1)) * time.Millisecond
}

func errString(err error) string {
	if err == nil {
		return "unexpected script result"
	}
	return err.Error()
}
