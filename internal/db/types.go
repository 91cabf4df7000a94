package db

import (
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/burnout-insights/internal/types"
)

// Record represents a stored analysis
type Record struct {
	ID            uuid.UUID       `json:"id"`
	UserID        int             `json:"user_id"`
	Probability   float64         `json:"probability"`
	BurnoutLevel  string          `json:"burnout_level"`
	AlertSeverity string          `json:"alert_severity,omitempty"`
	Analysis      *types.Analysis `json:"analysis"`
	CreatedAt     time.Time       `json:"created_at"`
}

// Page sizes for ListAnalyses
const (
	DefaultListLimit = 20
	MaxListLimit     = 500
)
