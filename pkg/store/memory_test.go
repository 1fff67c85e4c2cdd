package store

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
)

func record(classification, risk string) *ScanRecord {
	return &ScanRecord{
		ID:             uuid.New(),
		ContentType:    "sms",
		Classification: classification,
		RiskLevel:      risk,
	}
}

func TestMemoryStoreRingCap(t *testing.T) {
	s := NewMemoryStore(3)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		rec := record("safe", "low")
		rec.ContentPreview = fmt.Sprintf("scan %d", i)
		if err := s.SaveScan(ctx, rec); err != nil {
			t.Fatalf("SaveScan: %v", err)
		}
	}

	got, err := s.RecentScans(ctx, 10)
	if err != nil {
		t.Fatalf("RecentScans: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("kept %d records, want 3", len(got))
	}
	// Newest first, oldest two evicted.
	for i, want := range []string{"scan 4", "scan 3", "scan 2"} {
		if got[i].ContentPreview != want {
			t.Errorf("record %d = %q, want %q", i, got[i].ContentPreview, want)
		}
	}
}

func TestMemoryStoreRecentLimit(t *testing.T) {
	s := NewMemoryStore(0)
	ctx := context.Background()
	for i := 0; i < 10; i++ {
		if err := s.SaveScan(ctx, record("safe", "low")); err != nil {
			t.Fatal(err)
		}
	}

	if got, _ := s.RecentScans(ctx, 4); len(got) != 4 {
		t.Errorf("limit 4 returned %d records", len(got))
	}
	// Out-of-range limits fall back to the default of 50.
	if got, _ := s.RecentScans(ctx, -1); len(got) != 10 {
		t.Errorf("negative limit returned %d records, want all 10", len(got))
	}
	if got, _ := s.RecentScans(ctx, 9999); len(got) != 10 {
		t.Errorf("oversized limit returned %d records, want all 10", len(got))
	}
}

func TestMemoryStoreStats(t *testing.T) {
	s := NewMemoryStore(0)
	ctx := context.Background()
	for _, pair := range [][2]string{
		{"phishing", "critical"},
		{"phishing", "high"},
		{"suspicious", "medium"},
		{"safe", "low"},
		{"safe", "low"},
	} {
		if err := s.SaveScan(ctx, record(pair[0], pair[1])); err != nil {
			t.Fatal(err)
		}
	}

	stats, err := s.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if stats.TotalScans != 5 {
		t.Errorf("TotalScans = %d, want 5", stats.TotalScans)
	}
	if stats.ByClassification["phishing"] != 2 || stats.ByClassification["safe"] != 2 || stats.ByClassification["suspicious"] != 1 {
		t.Errorf("ByClassification = %v", stats.ByClassification)
	}
	if stats.ByRiskLevel["low"] != 2 || stats.ByRiskLevel["critical"] != 1 {
		t.Errorf("ByRiskLevel = %v", stats.ByRiskLevel)
	}
}

func TestMemoryLimiter(t *testing.T) {
	l := NewMemoryLimiter(3)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		ok, err := l.Allow(ctx, "10.0.0.1")
		if err != nil || !ok {
			t.Fatalf("request %d: ok=%v err=%v", i+1, ok, err)
		}
	}
	if ok, _ := l.Allow(ctx, "10.0.0.1"); ok {
		t.Error("fourth request in the window allowed")
	}
	// Other keys have their own window.
	if ok, _ := l.Allow(ctx, "10.0.0.2"); !ok {
		t.Error("fresh key denied")
	}
}

func TestScanRecordPreview(t *testing.T) {
	short := "hello"
	if got := Preview(short); got != short {
		t.Errorf("Preview(%q) = %q", short, got)
	}

	long := ""
	for len(long) < PreviewLen*2 {
		long += "phish "
	}
	got := Preview(long)
	if len([]rune(got)) != PreviewLen+3 {
		t.Errorf("preview length = %d, want %d plus ellipsis", len([]rune(got)), PreviewLen)
	}
	if got[len(got)-3:] != "..." {
		t.Errorf("preview %q not ellipsized", got)
	}
}
