package middleware

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"

	"github.com/zabava/dashboard-go/internal/config"
)

// unreachableRedis returns a client pointed at a port nothing listens on, so
// every command errors quickly and the limiter's fail-open path is exercised.
func unreachableRedis() *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
	})
}

func TestIPRateLimit(t *testing.T) {
	t.Run("login limiter fails open when redis is down", func(t *testing.T) {
		client := unreachableRedis()
		defer client.Close()

		handler := NewLoginRateLimitMiddleware(client).Handler(okHandler())

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/auth/login", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, strconv.Itoa(config.LoginRateLimitPerMin), rec.Header().Get("X-RateLimit-Limit"))
		assert.NotEmpty(t, rec.Header().Get("X-RateLimit-Reset"))
	})

	t.Run("public and login limiters advertise their own budgets", func(t *testing.T) {
		client := unreachableRedis()
		defer client.Close()

		public := NewPublicRateLimitMiddleware(client).Handler(okHandler())
		rec := httptest.NewRecorder()
		public.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/bonus/points", nil))
		assert.Equal(t, strconv.Itoa(config.PublicRateLimitPerMin), rec.Header().Get("X-RateLimit-Limit"))

		login := NewLoginRateLimitMiddleware(client).Handler(okHandler())
		rec = httptest.NewRecorder()
		login.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/auth/login", nil))
		assert.Equal(t, strconv.Itoa(config.LoginRateLimitPerMin), rec.Header().Get("X-RateLimit-Limit"))
	})

	t.Run("forwarded header wins over remote addr as the key", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/bonus/points", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		req.Header.Set("X-Forwarded-For", "203.0.113.9")

		assert.Equal(t, "203.0.113.9", clientIP(req))
	})
}
