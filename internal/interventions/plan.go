package interventions

import (
	"sort"
	"time"

	"github.com/jonathan/burnout-insights/internal/alerts"
	"github.com/jonathan/burnout-insights/internal/ranking"
	"github.com/jonathan/burnout-insights/internal/types"
	"github.com/rs/zerolog/log"
)

// maxCausesConsidered is how many of the ranked causes drive the catalogue.
const maxCausesConsidered = 3

// Engine assembles intervention plans. It holds no per-call state and is safe
// for concurrent use.
type Engine struct {
	now func() time.Time
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock sets the clock used for generated_at.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		e.now = now
	}
}

// NewEngine creates an intervention engine.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{now: time.Now}
	for _, opt := range opts {
		opt(e)
	}
	if e.now == nil {
		e.now = time.Now
	}
	return e
}

// GenerateInterventions builds the phased plan from the causes and alert list produced
// earlier in the same run. Severity is re-derived from the probability with the alert
// thresholds, so it matches the alert when one exists.
func (e *Engine) GenerateInterventions(
	userID int,
	probability float64,
	metrics types.MetricSnapshot,
	mainCauses []types.CausalFactor,
	alertList []*types.Alert,
) *types.InterventionPlan {
	p, clamped := types.ClampProbability(probability)
	if clamped {
		log.Warn().
			Int("user_id", userID).
			Float64("probability", probability).
			Float64("clamped", p).
			Msg("burnout probability outside [0,1], clamping")
	}
	severity := alerts.ClassifySeverity(p)

	var candidates []types.Intervention
	for i, cause := range mainCauses {
		if i >= maxCausesConsidered {
			break
		}
		candidates = append(candidates, forCause(cause, metrics, severity)...)
	}
	candidates = append(candidates, generalInterventions(severity)...)

	list := sortByPriority(deduplicate(candidates))
	buckets := groupByTimeframe(list)

	log.Debug().
		Int("user_id", userID).
		Str("severity", string(severity)).
		Int("alerts", countAlerts(alertList)).
		Int("interventions", len(list)).
		Msg("intervention plan assembled")

	return &types.InterventionPlan{
		UserID:                   userID,
		GeneratedAt:              e.now().UTC().Format(time.RFC3339),
		Severity:                 severity,
		TotalInterventions:       len(list),
		InterventionsByTimeframe: buckets,
		ActionPlan:               buildActionPlan(buckets),
		FollowUpRecommendations:  followUpFor(severity),
		ExpectedOutcomes:         outcomesFor(severity),
	}
}

// forCause dispatches a cause to its catalogue generator. Unknown causes add nothing.
func forCause(cause types.CausalFactor, metrics types.MetricSnapshot, severity types.Severity) []types.Intervention {
	metric, ok := ranking.MetricForCause(cause)
	if !ok {
		return nil
	}
	gen, ok := generators[metric]
	if !ok {
		return nil
	}
	return gen(metrics, severity)
}

// deduplicate collapses entries sharing an id. An id keeps the position of its first
// occurrence and the value of its last.
func deduplicate(list []types.Intervention) []types.Intervention {
	index := make(map[string]int, len(list))
	out := make([]types.Intervention, 0, len(list))
	for _, iv := range list {
		if i, seen := index[iv.ID]; seen {
			out[i] = iv
			continue
		}
		index[iv.ID] = len(out)
		out = append(out, iv)
	}
	return out
}

// sortByPriority orders by priority rank; ties keep their relative order.
func sortByPriority(list []types.Intervention) []types.Intervention {
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].Priority.Rank() < list[j].Priority.Rank()
	})
	return list
}

// groupByTimeframe buckets the list, defaulting unknown timeframes to medium_term.
// Every bucket is present and non-nil.
func groupByTimeframe(list []types.Intervention) map[types.Timeframe][]types.Intervention {
	buckets := make(map[types.Timeframe][]types.Intervention, len(types.Timeframes))
	for _, tf := range types.Timeframes {
		buckets[tf] = []types.Intervention{}
	}
	for _, iv := range list {
		tf := iv.Timeframe
		if !tf.Valid() {
			tf = types.TimeframeMediumTerm
			iv.Timeframe = tf
		}
		buckets[tf] = append(buckets[tf], iv)
	}
	return buckets
}

func countAlerts(list []*types.Alert) int {
	n := 0
	for _, a := range list {
		if a != nil {
			n++
		}
	}
	return n
}
