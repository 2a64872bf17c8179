package middleware

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/zabava/dashboard-go/internal/config"
)

const rateLimitKeyPrefix = "zabava:ratelimit:"

// Sliding window counter in redis. Fails open so a redis outage does not take
// the public endpoints down with it.
var rateLimitScript = redis.NewScript(`
local key = KEYS[1]
local now = tonumber(ARGV[1])
local window = tonumber(ARGV[2])
local limit = tonumber(ARGV[3])

local windowStart = now - window

redis.call('ZREMRANGEBYSCORE', key, '-inf', windowStart)

local count = redis.call('ZCARD', key)

if count >= limit then
    local oldest = redis.call('ZRANGE', key, 0, 0, 'WITHSCORES')
    local resetAt = 0
    if #oldest >= 2 then
        resetAt = tonumber(oldest[2]) + window
    else
        resetAt = now + window
    end
    return {0, 0, resetAt}
end

redis.call('ZADD', key, now, now .. '-' .. math.random())
redis.call('EXPIRE', key, window + 10)

local remaining = limit - count - 1
local resetAt = now + window

return {1, remaining, resetAt}
`)

type RedisRateLimiter struct {
	client *redis.Client
	window time.Duration
}

func NewRedisRateLimiter(client *redis.Client) *RedisRateLimiter {
	return &RedisRateLimiter{client: client, window: config.RateLimitWindow}
}

func (rl *RedisRateLimiter) Check(ctx context.Context, key string, limit int) (allowed bool, remaining int, resetAt int64) {
	now := time.Now().Unix()
	windowSecs := int64(rl.window.Seconds())

	result, err := rateLimitScript.Run(ctx, rl.client, []string{rateLimitKeyPrefix + key}, now, windowSecs, limit).Int64Slice()
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("redis rate limit check failed, allowing request")
		return true, limit - 1, now + windowSecs
	}

	if len(result) != 3 {
		log.Warn().Str("key", key).Msg("unexpected redis rate limit result")
		return true, limit - 1, now + windowSecs
	}

	return result[0] == 1, int(result[1]), result[2]
}

// IPRateLimitMiddleware throttles requests per client IP. Each scope keeps
// its own counters, so hammering the bonus endpoints never exhausts the login
// budget and vice versa.
type IPRateLimitMiddleware struct {
	limiter *RedisRateLimiter
	scope   string
	limit   int
}

// NewPublicRateLimitMiddleware throttles the unauthenticated bonus endpoints.
func NewPublicRateLimitMiddleware(redisClient *redis.Client) *IPRateLimitMiddleware {
	return &IPRateLimitMiddleware{
		limiter: NewRedisRateLimiter(redisClient),
		scope:   "public",
		limit:   config.PublicRateLimitPerMin,
	}
}

// NewLoginRateLimitMiddleware throttles credential endpoints with a tighter
// budget to slow down password guessing.
func NewLoginRateLimitMiddleware(redisClient *redis.Client) *IPRateLimitMiddleware {
	return &IPRateLimitMiddleware{
		limiter: NewRedisRateLimiter(redisClient),
		scope:   "login",
		limit:   config.LoginRateLimitPerMin,
	}
}

func (m *IPRateLimitMiddleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := clientIP(r)

		allowed, remaining, resetAt := m.limiter.Check(r.Context(), m.scope+":"+ip, m.limit)

		w.Header().Set("X-RateLimit-Limit", strconv.Itoa(m.limit))
		w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(remaining))
		w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(resetAt, 10))

		if !allowed {
			log.Warn().Str("ip", ip).Str("scope", m.scope).Msg("rate limit exceeded")
			w.Header().Set("Retry-After", strconv.Itoa(int(config.RateLimitWindow.Seconds())))
			writeJSON(w, http.StatusTooManyRequests, map[string]string{
				"error": "Rate limit exceeded",
			})
			return
		}

		next.ServeHTTP(w, r)
	})
}

func clientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		return forwarded
	}
	if realIP := r.Header.Get("X-Real-IP"); realIP != "" {
		return realIP
	}
	return r.RemoteAddr
}
