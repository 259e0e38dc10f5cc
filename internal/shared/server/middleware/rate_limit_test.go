package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func TestRateLimiterRefills(t *testing.T) {
	current := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	limiter := NewRateLimiter(func() time.Time { return current })
	rule := RateLimitRule{Rate: 1, Burst: 2}

	for i := 0; i < 2; i++ {
		if ok, _ := limiter.Allow("user-1", rule); !ok {
			t.Fatalf("expected burst request %d to pass", i+1)
		}
	}
	ok, wait := limiter.Allow("user-1", rule)
	if ok {
		t.Fatalf("expected third request to be limited")
	}
	if wait <= 0 {
		t.Fatalf("expected positive retry hint, got %v", wait)
	}

	current = current.Add(time.Second)
	if ok, _ := limiter.Allow("user-1", rule); !ok {
		t.Fatalf("expected refill after one second")
	}
}

func TestRateLimiterIsolatesPrincipals(t *testing.T) {
	limiter := NewRateLimiter(nil)
	rule := RateLimitRule{Rate: 1, Burst: 1}

	if ok, _ := limiter.Allow("user-1", rule); !ok {
		t.Fatalf("expected user-1 first request to pass")
	}
	if ok, _ := limiter.Allow("user-1", rule); ok {
		t.Fatalf("expected user-1 second request limited")
	}
	if ok, _ := limiter.Allow("user-2", rule); !ok {
		t.Fatalf("expected user-2 to have its own bucket")
	}
}

func TestRateLimitMiddlewareReturns429(t *testing.T) {
	gin.SetMode(gin.TestMode)
	limiter := NewRateLimiter(nil)
	router := gin.New()
	router.Use(RateLimit(limiter, RateLimitRule{Rate: 0.1, Burst: 1}))
	router.GET("/api/ai/ask", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	first := httptest.NewRecorder()
	router.ServeHTTP(first, httptest.NewRequest(http.MethodGet, "/api/ai/ask", nil))
	if first.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", first.Code)
	}

	second := httptest.NewRecorder()
	router.ServeHTTP(second, httptest.NewRequest(http.MethodGet, "/api/ai/ask", nil))
	if second.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", second.Code)
	}
	if second.Header().Get("Retry-After") == "" {
		t.Fatalf("expected Retry-After header")
	}
}
