package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
)

func TestRateLimit_RejectsOverBurst(t *testing.T) {
	e := echo.New()
	rl := NewRateLimiter(0.001, 2)
	h := RateLimit(rl)(func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	call := func(ip string) error {
		req := httptest.NewRequest(http.MethodPost, "/login", nil)
		req.RemoteAddr = ip + ":1234"
		return h(e.NewContext(req, httptest.NewRecorder()))
	}

	for i := 0; i < 2; i++ {
		if err := call("10.0.0.1"); err != nil {
			t.Fatalf("request %d rejected: %v", i, err)
		}
	}

	err := call("10.0.0.1")
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %v", err)
	}

	if err := call("10.0.0.2"); err != nil {
		t.Fatalf("other address must have its own budget: %v", err)
	}
}

func TestRateLimiter_SweepDropsStale(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	rl := NewRateLimiter(1, 1)
	rl.now = func() time.Time { return now }

	rl.get("10.0.0.1")
	now = now.Add(2 * time.Minute)
	rl.get("10.0.0.2")
	now = now.Add(2 * time.Minute)

	if n := rl.Sweep(); n != 1 {
		t.Fatalf("expected 1 stale address, got %d", n)
	}
	if _, ok := rl.visitors["10.0.0.2"]; !ok {
		t.Fatalf("recent address should survive")
	}
}
