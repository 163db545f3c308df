package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func rateLimitedRouter(limiter *RateLimiter) *gin.Engine {
	r := gin.New()
	r.POST("/contact", RateLimit(limiter), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return r
}

func TestRateLimiter_Allow(t *testing.T) {
	t.Run("allows up to the limit within a window", func(t *testing.T) {
		rl := NewRateLimiter(3, time.Minute)

		assert.True(t, rl.Allow("1.2.3.4"))
		assert.True(t, rl.Allow("1.2.3.4"))
		assert.True(t, rl.Allow("1.2.3.4"))
		assert.False(t, rl.Allow("1.2.3.4"))
	})

	t.Run("tracks keys independently", func(t *testing.T) {
		rl := NewRateLimiter(1, time.Minute)

		assert.True(t, rl.Allow("1.2.3.4"))
		assert.False(t, rl.Allow("1.2.3.4"))
		assert.True(t, rl.Allow("5.6.7.8"))
	})

	t.Run("resets after the window passes", func(t *testing.T) {
		rl := NewRateLimiter(1, 20*time.Millisecond)

		assert.True(t, rl.Allow("1.2.3.4"))
		assert.False(t, rl.Allow("1.2.3.4"))

		time.Sleep(25 * time.Millisecond)
		assert.True(t, rl.Allow("1.2.3.4"))
	})
}

func TestRateLimitMiddleware(t *testing.T) {
	t.Run("returns 429 with Retry-After when exhausted", func(t *testing.T) {
		r := rateLimitedRouter(NewRateLimiter(2, time.Minute))

		for i := 0; i < 2; i++ {
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/contact", nil))
			assert.Equal(t, http.StatusOK, w.Code)
		}

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/contact", nil))

		assert.Equal(t, http.StatusTooManyRequests, w.Code)
		assert.NotEmpty(t, w.Header().Get("Retry-After"))
		assert.Equal(t, "ERR_RATE_LIMITED", errorCode(t, w.Body.Bytes()))
	})

	t.Run("sets rate limit headers on allowed requests", func(t *testing.T) {
		r := rateLimitedRouter(NewRateLimiter(5, time.Minute))

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/contact", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "5", w.Header().Get("X-RateLimit-Limit"))
		assert.Equal(t, "4", w.Header().Get("X-RateLimit-Remaining"))
	})
}
