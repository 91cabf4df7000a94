package dashboard

import (
	"time"

	"github.com/jonathan/burnout-insights/internal/ranking"
	"github.com/jonathan/burnout-insights/internal/types"
	"github.com/rs/zerolog/log"
)

// Engine builds dashboard summaries. The factor table is fixed at construction
// and the engine is safe for concurrent use.
type Engine struct {
	now     func() time.Time
	factors []ranking.FactorSpec
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock sets the clock used for generated_at.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		e.now = now
	}
}

// WithFactors replaces the causal factor table. The slice is copied.
func WithFactors(specs []ranking.FactorSpec) Option {
	return func(e *Engine) {
		e.factors = append([]ranking.FactorSpec(nil), specs...)
	}
}

// NewEngine creates a dashboard engine using ranking.DefaultFactors.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		now:     time.Now,
		factors: ranking.DefaultFactors,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.now == nil {
		e.now = time.Now
	}
	return e
}

// GenerateSummary builds the dashboard for one person. alertList is the list produced
// earlier in the same run; it may be empty.
func (e *Engine) GenerateSummary(userID int, probability float64, metrics types.MetricSnapshot, alertList []*types.Alert) *types.DashboardSummary {
	p, clamped := types.ClampProbability(probability)
	if clamped {
		log.Warn().
			Int("user_id", userID).
			Float64("probability", probability).
			Float64("clamped", p).
			Msg("burnout probability outside [0,1], clamping")
	}

	level := BurnoutLevelFor(p)
	causes := ranking.IdentifyMainCauses(metrics, e.factors)

	return &types.DashboardSummary{
		UserID:      userID,
		GeneratedAt: e.now().UTC().Format(time.RFC3339),
		Overview: types.Overview{
			BurnoutLevel: level,
			Probability:  types.Round(p, 3),
			HealthStatus: HealthStatusFor(p, metrics),
			RiskCategory: RiskCategoryFor(p),
		},
		KeyMetrics:      KeyMetrics(metrics),
		CategoryScores:  CategoryScores(metrics),
		MainCauses:      causes,
		Trends:          placeholderTrends(),
		AlertsSummary:   SummarizeAlerts(alertList),
		Recommendations: Recommendations(level, causes),
		MetricsDetails:  MetricsDetailsFor(metrics),
	}
}
