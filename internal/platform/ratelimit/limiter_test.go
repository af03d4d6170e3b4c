package ratelimit

import (
	"testing"
	"time"
)

func newTestLimiter(max int, window time.Duration, now *time.Time) *Limiter {
	l := New(Config{
		MaxRequests: max,
		Window:      window,
		SweepEvery:  time.Hour, // que no interfiera
		Now:         func() time.Time { return *now },
	})
	return l
}

func TestLimiter_SixthRequestDenied(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	l := newTestLimiter(5, time.Second, &now)
	defer l.Stop()

	for i := 1; i <= 5; i++ {
		d := l.Allow("ip-1")
		if !d.Allowed {
			t.Fatalf("request %d should be allowed", i)
		}
		if d.Remaining != 5-i {
			t.Fatalf("request %d: expected remaining %d, got %d", i, 5-i, d.Remaining)
		}
	}

	d := l.Allow("ip-1")
	if d.Allowed {
		t.Fatalf("6th request within window must be denied")
	}
	if d.Remaining != 0 {
		t.Fatalf("denied decision should report remaining 0, got %d", d.Remaining)
	}
	if ra := d.RetryAfter(now); ra < 0 || ra > 1 {
		t.Fatalf("retry-after should approximate remaining window, got %d", ra)
	}
}

func TestLimiter_WindowElapsedResetsToOne(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	l := newTestLimiter(5, time.Second, &now)
	defer l.Stop()

	for i := 0; i < 6; i++ {
		l.Allow("ip-1")
	}

	now = now.Add(1100 * time.Millisecond)

	d := l.Allow("ip-1")
	if !d.Allowed {
		t.Fatalf("first request after window must be allowed")
	}
	// count=1 => remaining = max-1
	if d.Remaining != 4 {
		t.Fatalf("expected remaining 4 after reset, got %d", d.Remaining)
	}
}

func TestLimiter_KeysAreIndependent(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	l := newTestLimiter(1, time.Minute, &now)
	defer l.Stop()

	if d := l.Allow("a"); !d.Allowed {
		t.Fatalf("key a should pass")
	}
	if d := l.Allow("a"); d.Allowed {
		t.Fatalf("key a second hit should be denied")
	}
	if d := l.Allow("b"); !d.Allowed {
		t.Fatalf("key b must not be affected by key a")
	}
}

func TestLimiter_DisabledAllowsAll(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	l := newTestLimiter(0, time.Second, &now)
	defer l.Stop()

	for i := 0; i < 100; i++ {
		if d := l.Allow("x"); !d.Allowed {
			t.Fatalf("disabled limiter must allow everything")
		}
	}
}

func TestLimiter_SweepDropsExpiredBuckets(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	l := newTestLimiter(5, time.Second, &now)
	defer l.Stop()

	l.Allow("a")
	l.Allow("b")

	now = now.Add(2 * time.Second)
	l.sweep()

	l.mu.Lock()
	n := len(l.buckets)
	l.mu.Unlock()
	if n != 0 {
		t.Fatalf("expected sweep to drop expired buckets, %d left", n)
	}
}
