package middleware

import (
	"testing"
	"time"

	"golang.org/x/time/rate"
)

// newTestLimiter builds a limiter with a near-zero refill rate so the
// burst is the only budget and no token comes back mid-test. The
// janitor goroutine is deliberately not started; sweeps run by hand.
func newTestLimiter() *RateLimiter {
	return &RateLimiter{
		visitors: make(map[string]*visitor),
		limit:    rate.Limit(0.001),
		burst:    1,
	}
}

func TestRateLimiterSweep(t *testing.T) {
	t.Run("burst is tracked per client", func(t *testing.T) {
		rl := newTestLimiter()

		if !rl.getLimiter("10.0.0.1").Allow() {
			t.Fatal("first request should pass")
		}
		if rl.getLimiter("10.0.0.1").Allow() {
			t.Fatal("second request should exceed the burst")
		}
		if !rl.getLimiter("10.0.0.2").Allow() {
			t.Fatal("another client must have its own bucket")
		}
	})

	t.Run("sweep keeps active clients and their spent tokens", func(t *testing.T) {
		rl := newTestLimiter()

		rl.getLimiter("10.0.0.1").Allow()

		rl.sweepIdle(time.Now())

		if _, ok := rl.visitors["10.0.0.1"]; !ok {
			t.Fatal("recently seen client was swept")
		}
		if rl.getLimiter("10.0.0.1").Allow() {
			t.Fatal("sweep handed an active client a fresh bucket")
		}
	})

	t.Run("sweep forgets idle clients", func(t *testing.T) {
		rl := newTestLimiter()

		rl.getLimiter("10.0.0.1").Allow()
		rl.visitors["10.0.0.1"].lastSeen = time.Now().Add(-visitorIdleTTL - time.Minute)

		rl.sweepIdle(time.Now())

		if _, ok := rl.visitors["10.0.0.1"]; ok {
			t.Fatal("idle client survived the sweep")
		}
		if !rl.getLimiter("10.0.0.1").Allow() {
			t.Fatal("a returning client should start with a full bucket")
		}
	})
}
