package httpserver

import (
	"testing"
	"time"
)

func TestRateLimiterAllowsWithinLimit(t *testing.T) {
	rl := NewRateLimiter(3, time.Minute)
	for i := 0; i < 3; i++ {
		if !rl.Allow("10.0.0.1") {
			t.Fatalf("request %d denied within limit", i)
		}
	}
	if rl.Allow("10.0.0.1") {
		t.Error("request over the limit allowed")
	}
}

func TestRateLimiterIsolatesClients(t *testing.T) {
	rl := NewRateLimiter(1, time.Minute)
	if !rl.Allow("10.0.0.1") {
		t.Fatal("first client denied")
	}
	if !rl.Allow("10.0.0.2") {
		t.Error("second client shares the first client's budget")
	}
}

func TestRateLimiterSlidingWindowEviction(t *testing.T) {
	now := time.Unix(1000, 0)
	rl := NewRateLimiter(2, time.Minute)
	rl.nowFn = func() time.Time { return now }

	if !rl.Allow("c") || !rl.Allow("c") {
		t.Fatal("initial requests denied")
	}
	if rl.Allow("c") {
		t.Fatal("limit not enforced")
	}

	// 30s later the window still covers both requests.
	now = now.Add(30 * time.Second)
	if rl.Allow("c") {
		t.Error("window slid too early")
	}

	// 61s after the first requests both have left the window.
	now = now.Add(31 * time.Second)
	if !rl.Allow("c") {
		t.Error("expired requests still counted")
	}
}

func TestRateLimiterDeniedRequestNotRecorded(t *testing.T) {
	now := time.Unix(1000, 0)
	rl := NewRateLimiter(1, time.Minute)
	rl.nowFn = func() time.Time { return now }

	rl.Allow("c")
	for i := 0; i < 10; i++ {
		rl.Allow("c")
	}

	// Only the single allowed request occupies the window, so it frees up
	// exactly when that one expires.
	now = now.Add(61 * time.Second)
	if !rl.Allow("c") {
		t.Error("denied requests extended the window")
	}
}
