package store

import (
	"context"
	"sync"
	"time"
)

// MemoryStore keeps recent scans in a bounded ring. Used when no
// PostgreSQL DSN is configured; history is lost on restart.
type MemoryStore struct {
	mu      sync.Mutex
	records []ScanRecord
	max     int
}

// NewMemoryStore creates an in-memory history store holding up to max
// records (default 1000).
func NewMemoryStore(max int) *MemoryStore {
	if max <= 0 {
		max = 1000
	}
	return &MemoryStore{max: max}
}

// SaveScan implements HistoryStore.
func (s *MemoryStore) SaveScan(_ context.Context, rec *ScanRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, *rec)
	if len(s.records) > s.max {
		s.records = s.records[len(s.records)-s.max:]
	}
	return nil
}

// RecentScans implements HistoryStore. newest first.
func (s *MemoryStore) RecentScans(_ context.Context, limit int) ([]ScanRecord, error) {
	if limit <= 0 || limit > 500 {
		limit = 50
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	n := len(s.records)
	if limit > n {
		limit = n
	}
	out := make([]ScanRecord, 0, limit)
	for i := n - 1; i >= n-limit; i-- {
		out = append(out, s.records[i])
	}
	return out, nil
}

// Stats implements HistoryStore.
func (s *MemoryStore) Stats(_ context.Context) (*Stats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stats := &Stats{
		ByClassification: make(map[string]int64),
		ByRiskLevel:      make(map[string]int64),
	}
	for _, rec := range s.records {
		stats.TotalScans++
		stats.ByClassification[rec.Classification]++
		stats.ByRiskLevel[rec.RiskLevel]++
	}
	return stats, nil
}

// Close implements HistoryStore.
func (s *MemoryStore) Close() {}

// MemoryLimiter is a per-key fixed-window limiter for single-instance
// deployments without redis.
type MemoryLimiter struct {
	mu      sync.Mutex
	limit   int
	window  time.Duration
	windows map[string]*window
}

type window struct {
	start time.Time
	count int
}

// NewMemoryLimiter creates a limiter allowing perMinute requests per key.
func NewMemoryLimiter(perMinute int) *MemoryLimiter {
	return &MemoryLimiter{
		limit:   perMinute,
		window:  time.Minute,
		windows: make(map[string]*window),
	}
}

// Allow implements RateLimiter.
func (l *MemoryLimiter) Allow(_ context.Context, key string) (bool, error) {
	now := time.Now()
	l.mu.Lock()
	defer l.mu.Unlock()

	w, ok := l.windows[key]
	if !ok || now.Sub(w.start) >= l.window {
		l.windows[key] = &window{start: now, count: 1}
		// Opportunistic cleanup of stale windows.
		if len(l.windows) > 10000 {
			for k, old := range l.windows {
				if now.Sub(old.start) >= l.window {
					delete(l.windows, k)
				}
			}
		}
		return true, nil
	}
	w.count++
	return w.count <= l.limit, nil
}
