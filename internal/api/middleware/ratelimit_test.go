package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
)

func TestIPRateLimiter_Burst(t *testing.T) {
	rl := newIPRateLimiter(1, 2)
	now := time.Unix(0, 0)
	rl.now = func() time.Time { return now }

	if !rl.allow("1.1.1.1") || !rl.allow("1.1.1.1") {
		t.Fatalf("burst of 2 should be allowed")
	}
	if rl.allow("1.1.1.1") {
		t.Fatalf("third request should be limited")
	}
	if !rl.allow("2.2.2.2") {
		t.Fatalf("other IPs have their own bucket")
	}

	now = now.Add(time.Second)
	if !rl.allow("1.1.1.1") {
		t.Fatalf("token should refill after a second")
	}
}

func TestIPRateLimiter_SweepsIdleVisitors(t *testing.T) {
	rl := newIPRateLimiter(1, 1)
	now := time.Unix(0, 0)
	rl.now = func() time.Time { return now }

	rl.allow("1.1.1.1")
	now = now.Add(2 * visitorIdle)
	rl.allow("2.2.2.2")

	if _, ok := rl.visitors["1.1.1.1"]; ok {
		t.Fatalf("idle visitor should have been swept")
	}
	if len(rl.visitors) != 1 {
		t.Fatalf("expected 1 visitor, got %d", len(rl.visitors))
	}
}

func TestRateLimit_Middleware(t *testing.T) {
	e := echo.New()
	e.POST("/api/users", func(c echo.Context) error { return c.NoContent(http.StatusOK) }, RateLimit(0.001, 1))

	codes := make([]int, 0, 2)
	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/users", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
	}

	if codes[0] != http.StatusOK || codes[1] != http.StatusTooManyRequests {
		t.Fatalf("expected [200 429], got %v", codes)
	}
}
