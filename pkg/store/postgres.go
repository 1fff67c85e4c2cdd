package store

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// PostgresStore persists scan history in PostgreSQL via a pgx pool.
type PostgresStore struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

const createScansTable = `
CREATE TABLE IF NOT EXISTS scans (
	id               UUID PRIMARY KEY,
	content_type     TEXT NOT NULL,
	content_preview  TEXT NOT NULL,
	classification   TEXT NOT NULL,
	risk_level       TEXT NOT NULL,
	confidence_score DOUBLE PRECISION NOT NULL,
	indicator_count  INTEGER NOT NULL,
	created_at       TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS scans_created_at_idx ON scans (created_at DESC);
`

// NewPostgresStore connects to the database and ensures the schema exists.
func NewPostgresStore(ctx context.Context, dsn string, logger *zap.Logger) (*PostgresStore, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse postgres dsn: %w", err)
	}
	cfg.MaxConns = 8
	cfg.MaxConnIdleTime = 5 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	if _, err := pool.Exec(ctx, createScansTable); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ensure scans schema: %w", err)
	}

	return &PostgresStore{pool: pool, logger: logger}, nil
}

// SaveScan implements HistoryStore.
func (s *PostgresStore) SaveScan(ctx context.Context, rec *ScanRecord) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO scans (id, content_type, content_preview, classification, risk_level, confidence_score, indicator_count, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		rec.ID, rec.ContentType, rec.ContentPreview, rec.Classification,
		rec.RiskLevel, rec.ConfidenceScore, rec.IndicatorCount, rec.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert scan %s: %w", rec.ID, err)
	}
	return nil
}

// RecentScans implements HistoryStore.
func (s *PostgresStore) RecentScans(ctx context.Context, limit int) ([]ScanRecord, error) {
	if limit <= 0 || limit > 500 {
		limit = 50
	}
	rows, err := s.pool.Query(ctx, `
		SELECT id, content_type, content_preview, classification, risk_level, confidence_score, indicator_count, created_at
		FROM scans ORDER BY created_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("query recent scans: %w", err)
	}
	defer rows.Close()

	var out []ScanRecord
	for rows.Next() {
		var rec ScanRecord
		if err := rows.Scan(&rec.ID, &rec.ContentType, &rec.ContentPreview, &rec.Classification,
			&rec.RiskLevel, &rec.ConfidenceScore, &rec.IndicatorCount, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// Stats implements HistoryStore.
func (s *PostgresStore) Stats(ctx context.Context) (*Stats, error) {
	stats := &Stats{
		ByClassification: make(map[string]int64),
		ByRiskLevel:      make(map[string]int64),
	}

	rows, err := s.pool.Query(ctx, `SELECT classification, risk_level, count(*) FROM scans GROUP BY classification, risk_level`)
	if err != nil {
		return nil, fmt.Errorf("query scan stats: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var classification, risk string
		var n int64
		if err := rows.Scan(&classification, &risk, &n); err != nil {
			return nil, fmt.Errorf("scan stats row: %w", err)
		}
		stats.TotalScans += n
		stats.ByClassification[classification] += n
		stats.ByRiskLevel[risk] += n
	}
	return stats, rows.Err()
}

// Close implements HistoryStore.
func (s *PostgresStore) Close() {
	s.pool.Close()
}
