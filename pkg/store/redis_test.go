package store

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
)

func newTestLimiter(t *testing.T, perMinute int) (*RedisLimiter, *miniredis.Miniredis) {
	t.Helper()
	s := miniredis.RunT(t)
	limiter, err := NewRedisLimiter(context.Background(), "redis://"+s.Addr(), perMinute)
	if err != nil {
		t.Fatalf("NewRedisLimiter failed: %v", err)
	}
	t.Cleanup(func() { limiter.Close() })
	return limiter, s
}

func TestRedisLimiterWithinLimit(t *testing.T) {
	limiter, _ := newTestLimiter(t, 3)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		ok, err := limiter.Allow(ctx, "client-a")
		if err != nil {
			t.Fatalf("Allow failed on request %d: %v", i+1, err)
		}
		if !ok {
			t.Errorf("request %d should be allowed under limit 3", i+1)
		}
	}

	ok, err := limiter.Allow(ctx, "client-a")
	if err != nil {
		t.Fatalf("Allow failed: %v", err)
	}
	if ok {
		t.Error("fourth request should exceed limit 3")
	}
}

func TestRedisLimiterIsolatesKeys(t *testing.T) {
	limiter, _ := newTestLimiter(t, 1)
	ctx := context.Background()

	if ok, _ := limiter.Allow(ctx, "client-a"); !ok {
		t.Error("client-a first request should be allowed")
	}
	if ok, _ := limiter.Allow(ctx, "client-a"); ok {
		t.Error("client-a second request should be denied")
	}
	if ok, _ := limiter.Allow(ctx, "client-b"); !ok {
		t.Error("client-b should have its own counter")
	}
}

func TestRedisLimiterWindowNotExtendedByTraffic(t *testing.T) {
	limiter, s := newTestLimiter(t, 2)
	ctx := context.Background()

	// Exhaust the limit, then keep hitting mid-window. The hits must not
	// re-arm the TTL; once the original window lapses the counter resets.
	for i := 0; i < 2; i++ {
		if ok, err := limiter.Allow(ctx, "steady"); err != nil || !ok {
			t.Fatalf("request %d: ok=%v err=%v", i+1, ok, err)
		}
	}

	s.FastForward(30 * time.Second)
	if ok, err := limiter.Allow(ctx, "steady"); err != nil {
		t.Fatalf("Allow failed mid-window: %v", err)
	} else if ok {
		t.Error("request mid-window should still be denied")
	}

	s.FastForward(31 * time.Second)
	ok, err := limiter.Allow(ctx, "steady")
	if err != nil {
		t.Fatalf("Allow failed after window lapsed: %v", err)
	}
	if !ok {
		t.Error("counter should reset once the original window lapses, even under sustained traffic")
	}
}

func TestCountersRecordAndSnapshot(t *testing.T) {
	limiter, _ := newTestLimiter(t, 10)
	counters := NewCounters(limiter.Client())
	ctx := context.Background()

	for _, classification := range []string{"phishing", "phishing", "safe"} {
		if err := counters.Record(ctx, classification); err != nil {
			t.Fatalf("Record(%q) failed: %v", classification, err)
		}
	}

	got, err := counters.Snapshot(ctx)
	if err != nil {
		t.Fatalf("Snapshot failed: %v", err)
	}
	if got["phishing"] != 2 {
		t.Errorf("phishing tally = %d, want 2", got["phishing"])
	}
	if got["safe"] != 1 {
		t.Errorf("safe tally = %d, want 1", got["safe"])
	}
}

func TestSnapshotEmpty(t *testing.T) {
	limiter, _ := newTestLimiter(t, 10)
	counters := NewCounters(limiter.Client())

	got, err := counters.Snapshot(context.Background())
	if err != nil {
		t.Fatalf("Snapshot failed: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected empty snapshot, got %v", got)
	}
}
