// Package db provides PostgreSQL and SQLite storage for produced burnout analyses.
package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jonathan/burnout-insights/internal/types"
)

// DB wraps a PostgreSQL connection pool
type DB struct {
	pool *pgxpool.Pool
}

var _ Store = (*DB)(nil)

const postgresSchema = `
CREATE TABLE IF NOT EXISTS burnout_analyses (
	id             UUID PRIMARY KEY,
	user_id        INTEGER NOT NULL,
	probability    DOUBLE PRECISION NOT NULL,
	burnout_level  TEXT NOT NULL,
	alert_severity TEXT NOT NULL DEFAULT '',
	content        JSONB NOT NULL,
	created_at     TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_burnout_analyses_user_created
	ON burnout_analyses (user_id, created_at DESC);
`

// Connect establishes a connection pool to the database and creates the schema if missing
func Connect(ctx context.Context, databaseURL string) (*DB, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if _, err := pool.Exec(ctx, postgresSchema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return &DB{pool: pool}, nil
}

// Close closes the connection pool
func (db *DB) Close() error {
	if db.pool != nil {
		db.pool.Close()
	}
	return nil
}

// SaveAnalysis stores an analysis and returns its record ID
func (db *DB) SaveAnalysis(ctx context.Context, analysis *types.Analysis) (uuid.UUID, error) {
	rec, content, err := newRecord(analysis)
	if err != nil {
		return uuid.Nil, err
	}

	_, err = db.pool.Exec(ctx,
		`INSERT INTO burnout_analyses (id, user_id, probability, burnout_level, alert_severity, content, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		rec.ID, rec.UserID, rec.Probability, rec.BurnoutLevel, rec.AlertSeverity, content, rec.CreatedAt,
	)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to save analysis: %w", err)
	}
	return rec.ID, nil
}

// GetAnalysis retrieves a stored analysis by ID
func (db *DB) GetAnalysis(ctx context.Context, id uuid.UUID) (*Record, error) {
	var rec Record
	var content []byte
	err := db.pool.QueryRow(ctx,
		`SELECT id, user_id, probability, burnout_level, alert_severity, content, created_at
		 FROM burnout_analyses WHERE id = $1`,
		id,
	).Scan(&rec.ID, &rec.UserID, &rec.Probability, &rec.BurnoutLevel, &rec.AlertSeverity, &content, &rec.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		return nil, fmt.Errorf("failed to get analysis: %w", err)
	}
	if err := decodeContent(&rec, content); err != nil {
		return nil, err
	}
	return &rec, nil
}

// ListAnalyses returns the most recent analyses, newest first. A zero userID lists every user.
func (db *DB) ListAnalyses(ctx context.Context, userID int, limit int) ([]Record, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, user_id, probability, burnout_level, alert_severity, content, created_at
		 FROM burnout_analyses
		 WHERE ($1 = 0 OR user_id = $1)
		 ORDER BY created_at DESC
		 LIMIT $2`,
		userID, normalizeLimit(limit),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list analyses: %w", err)
	}
	defer rows.Close()

	records := make([]Record, 0)
	for rows.Next() {
		var rec Record
		var content []byte
		if err := rows.Scan(&rec.ID, &rec.UserID, &rec.Probability, &rec.BurnoutLevel, &rec.AlertSeverity, &content, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan analysis: %w", err)
		}
		if err := decodeContent(&rec, content); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate analyses: %w", err)
	}
	return records, nil
}
