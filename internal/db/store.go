package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/burnout-insights/internal/types"
)

// ErrNotFound is returned when a requested analysis does not exist.
var ErrNotFound = errors.New("analysis not found")

// Store persists produced analyses. It is an artifact log: nothing in the
// decision engines reads from it.
type Store interface {
	SaveAnalysis(ctx context.Context, analysis *types.Analysis) (uuid.UUID, error)
	GetAnalysis(ctx context.Context, id uuid.UUID) (*Record, error)
	ListAnalyses(ctx context.Context, userID int, limit int) ([]Record, error)
	Close() error
}

// Open connects to the store named by url. postgres:// and postgresql:// URLs
// select PostgreSQL; sqlite://path, file: URIs and bare paths select SQLite.
func Open(ctx context.Context, url string) (Store, error) {
	switch {
	case url == "":
		return nil, fmt.Errorf("database url is empty")
	case strings.HasPrefix(url, "postgres://"), strings.HasPrefix(url, "postgresql://"):
		return Connect(ctx, url)
	case strings.HasPrefix(url, "sqlite://"):
		return OpenSQLite(ctx, strings.TrimPrefix(url, "sqlite://"))
	default:
		return OpenSQLite(ctx, url)
	}
}

// normalizeLimit applies the default and maximum page sizes.
func normalizeLimit(limit int) int {
	if limit <= 0 {
		return DefaultListLimit
	}
	if limit > MaxListLimit {
		return MaxListLimit
	}
	return limit
}

// newRecord derives the indexed columns of a record from the analysis.
func newRecord(analysis *types.Analysis) (*Record, []byte, error) {
	if analysis == nil {
		return nil, nil, fmt.Errorf("analysis is nil")
	}
	content, err := json.Marshal(analysis)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to marshal analysis: %w", err)
	}

	rec := &Record{
		ID:           uuid.New(),
		UserID:       analysis.UserID,
		Probability:  analysis.Prediction.BurnoutProbability,
		BurnoutLevel: string(analysis.Prediction.BurnoutLevel),
		Analysis:     analysis,
		CreatedAt:    time.Now().UTC(),
	}
	if analysis.Alert != nil {
		rec.AlertSeverity = string(analysis.Alert.Severity)
	}
	return rec, content, nil
}

// decodeContent restores the analysis stored alongside a record.
func decodeContent(rec *Record, content []byte) error {
	var analysis types.Analysis
	if err := json.Unmarshal(content, &analysis); err != nil {
		return fmt.Errorf("failed to unmarshal analysis %s: %w", rec.ID, err)
	}
	rec.Analysis = &analysis
	return nil
}
