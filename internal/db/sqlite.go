package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/burnout-insights/internal/types"

	_ "modernc.org/sqlite"
)

// SQLiteStore keeps analyses in a local SQLite database.
type SQLiteStore struct {
	Path string
	db   *sql.DB
}

var _ Store = (*SQLiteStore)(nil)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS burnout_analyses (
	id             TEXT PRIMARY KEY,
	user_id        INTEGER NOT NULL,
	probability    REAL NOT NULL,
	burnout_level  TEXT NOT NULL,
	alert_severity TEXT NOT NULL DEFAULT '',
	content        TEXT NOT NULL,
	created_at     INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_burnout_analyses_user_created
	ON burnout_analyses (user_id, created_at);
`

// OpenSQLite opens or creates a SQLite store. path may be a file path, a file: URI
// or ":memory:".
func OpenSQLite(ctx context.Context, path string) (*SQLiteStore, error) {
	if path == "" {
		return nil, fmt.Errorf("sqlite path is empty")
	}

	dsn := path
	if path != ":memory:" && !strings.HasPrefix(path, "file:") {
		absPath, err := filepath.Abs(path)
		if err != nil {
			return nil, fmt.Errorf("resolve sqlite path: %w", err)
		}
		if err := os.MkdirAll(filepath.Dir(absPath), 0o755); err != nil {
			return nil, fmt.Errorf("ensure sqlite dir: %w", err)
		}
		dsn = absPath
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	// One connection keeps :memory: databases shared and writes serialized.
	db.SetMaxOpenConns(1)

	store := &SQLiteStore{Path: dsn, db: db}
	if err := store.ensureSchema(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return store, nil
}

func (s *SQLiteStore) ensureSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, sqliteSchema); err != nil {
		return fmt.Errorf("create sqlite schema: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveAnalysis stores an analysis and returns its record ID.
func (s *SQLiteStore) SaveAnalysis(ctx context.Context, analysis *types.Analysis) (uuid.UUID, error) {
	rec, content, err := newRecord(analysis)
	if err != nil {
		return uuid.Nil, err
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO burnout_analyses (id, user_id, probability, burnout_level, alert_severity, content, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		rec.ID.String(), rec.UserID, rec.Probability, rec.BurnoutLevel, rec.AlertSeverity, string(content), rec.CreatedAt.UnixNano(),
	)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to save analysis: %w", err)
	}
	return rec.ID, nil
}

// GetAnalysis retrieves a stored analysis by ID.
func (s *SQLiteStore) GetAnalysis(ctx context.Context, id uuid.UUID) (*Record, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, user_id, probability, burnout_level, alert_severity, content, created_at
		 FROM burnout_analyses WHERE id = ?`,
		id.String(),
	)
	rec, err := scanSQLiteRecord(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		return nil, fmt.Errorf("failed to get analysis: %w", err)
	}
	return rec, nil
}

// ListAnalyses returns the most recent analyses, newest first. A zero userID lists every user.
func (s *SQLiteStore) ListAnalyses(ctx context.Context, userID int, limit int) ([]Record, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, user_id, probability, burnout_level, alert_severity, content, created_at
		 FROM burnout_analyses
		 WHERE (? = 0 OR user_id = ?)
		 ORDER BY created_at DESC, rowid DESC
		 LIMIT ?`,
		userID, userID, normalizeLimit(limit),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list analyses: %w", err)
	}
	defer rows.Close()

	records := make([]Record, 0)
	for rows.Next() {
		rec, err := scanSQLiteRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan analysis: %w", err)
		}
		records = append(records, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate analyses: %w", err)
	}
	return records, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSQLiteRecord(row rowScanner) (*Record, error) {
	var (
		rec       Record
		id        string
		content   string
		createdAt int64
	)
	if err := row.Scan(&id, &rec.UserID, &rec.Probability, &rec.BurnoutLevel, &rec.AlertSeverity, &content, &createdAt); err != nil {
		return nil, err
	}

	parsed, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid record id %q: %w", id, err)
	}
	rec.ID = parsed
	rec.CreatedAt = time.Unix(0, createdAt).UTC()

	if err := decodeContent(&rec, []byte(content)); err != nil {
		return nil, err
	}
	return &rec, nil
}
