package alerts

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/burnout-insights/internal/types"
	"github.com/rs/zerolog/log"
)

const alertIDTimeLayout = "20060102150405"

// Engine generates burnout alerts. It holds no per-call state and is safe for
// concurrent use.
type Engine struct {
	now      func() time.Time
	idSuffix func() string
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock sets the clock used for alert ids and timestamps.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		e.now = now
	}
}

// WithIDSuffix sets the function producing the random part of alert ids.
func WithIDSuffix(suffix func() string) Option {
	return func(e *Engine) {
		e.idSuffix = suffix
	}
}

// WithoutIDSuffix produces bare ALERT-{user}-{timestamp} ids. Two alerts for the
// same user within the same second will share an id.
func WithoutIDSuffix() Option {
	return func(e *Engine) {
		e.idSuffix = nil
	}
}

// NewEngine creates an alert engine.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		now:      time.Now,
		idSuffix: randomSuffix,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.now == nil {
		e.now = time.Now
	}
	return e
}

func randomSuffix() string {
	return uuid.NewString()[:8]
}

// GenerateAlert classifies the probability and returns an alert, or nil when the
// probability is below ThresholdMedium. Out-of-range probabilities are clamped.
func (e *Engine) GenerateAlert(userID int, probability float64, metrics types.MetricSnapshot) *types.Alert {
	p, clamped := types.ClampProbability(probability)
	if clamped {
		log.Warn().
			Int("user_id", userID).
			Float64("probability", probability).
			Float64("clamped", p).
			Msg("burnout probability outside [0,1], clamping")
	}

	if p < ThresholdMedium {
		return nil
	}

	severity := ClassifySeverity(p)
	alertTypes := determineAlertTypes(metrics)
	now := e.now().UTC()

	return &types.Alert{
		UserID:               userID,
		AlertID:              e.alertID(userID, now),
		Severity:             severity,
		Probability:          types.Round(p, 3),
		Message:              alertMessage(severity, p),
		AlertTypes:           alertTypes,
		ImmediateActions:     immediateActions(severity, alertTypes),
		ContributingFactors:  contributingFactors(metrics),
		RequiresIntervention: severity.Escalated(),
		NotifyManager:        severity == types.SeverityCritical,
		Timestamp:            now.Format(time.RFC3339),
	}
}

func (e *Engine) alertID(userID int, now time.Time) string {
	id := fmt.Sprintf("ALERT-%d-%s", userID, now.Format(alertIDTimeLayout))
	if e.idSuffix != nil {
		id += "-" + e.idSuffix()
	}
	return id
}

// ShouldNotifyManager reports whether the alert must be escalated to a manager.
func ShouldNotifyManager(alert *types.Alert) bool {
	return alert != nil && alert.NotifyManager
}

// ShouldTriggerIntervention reports whether the alert requires an intervention process.
func ShouldTriggerIntervention(alert *types.Alert) bool {
	return alert != nil && alert.RequiresIntervention
}
