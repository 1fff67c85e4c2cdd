// Package store persists scan history and enforces rate limits.
package store

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// ScanRecord is one persisted analysis outcome. Content is stored as a
// short preview only; full message bodies never hit disk.
type ScanRecord struct {
	ID              uuid.UUID `json:"id"`
	ContentType     string    `json:"content_type"`
	ContentPreview  string    `json:"content_preview"`
	Classification  string    `json:"classification"`
	RiskLevel       string    `json:"risk_level"`
	ConfidenceScore float64   `json:"confidence_score"`
	IndicatorCount  int       `json:"indicator_count"`
	CreatedAt       time.Time `json:"created_at"`
}

// Stats aggregates scan history for the stats endpoint.
type Stats struct {
	TotalScans       int64            `json:"total_scans"`
	ByClassification map[string]int64 `json:"by_classification"`
	ByRiskLevel      map[string]int64 `json:"by_risk_level"`
}

// HistoryStore records finished scans.
type HistoryStore interface {
	SaveScan(ctx context.Context, rec *ScanRecord) error
	RecentScans(ctx context.Context, limit int) ([]ScanRecord, error)
	Stats(ctx context.Context) (*Stats, error)
	Close()
}

// RateLimiter answers whether a client may issue another request.
type RateLimiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// PreviewLen caps the stored content preview.
const PreviewLen = 120

// Preview truncates content for storage.
func Preview(content string) string {
	runes := []rune(content)
	if len(runes) <= PreviewLen {
		return content
	}
	return string(runes[:PreviewLen]) + "..."
}
