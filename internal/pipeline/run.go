// Package pipeline provides the high-level orchestration of the burnout decision engines.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/burnout-insights/internal/alerts"
	"github.com/jonathan/burnout-insights/internal/dashboard"
	"github.com/jonathan/burnout-insights/internal/db"
	"github.com/jonathan/burnout-insights/internal/interventions"
	"github.com/jonathan/burnout-insights/internal/pipeline/steps"
	"github.com/jonathan/burnout-insights/internal/types"
)

// DefaultBatchConcurrency is used by RunBatch when no limit is given.
const DefaultBatchConcurrency = 4

// ProgressEvent represents a progress update during pipeline execution
type ProgressEvent struct {
	Step     string `json:"step"`
	Category string `json:"category"`
	Message  string `json:"message"`
	RunID    string `json:"run_id,omitempty"`
	Content  any    `json:"content,omitempty"`
}

// ProgressCallback is called when pipeline progress occurs
type ProgressCallback func(event ProgressEvent)

// RunOptions holds configuration for a single pipeline run
type RunOptions struct {
	Request    *types.AnalyzeRequest
	OnProgress ProgressCallback
}

// Result is the outcome of a run. RecordID is uuid.Nil when nothing was persisted.
type Result struct {
	Analysis *types.Analysis `json:"analysis"`
	RecordID uuid.UUID       `json:"record_id"`
}

// Analyzer chains the alert, dashboard and intervention engines for one person.
// It is safe for concurrent use.
type Analyzer struct {
	alerts        *alerts.Engine
	dashboard     *dashboard.Engine
	interventions *interventions.Engine
	store         db.Store
	now           func() time.Time
}

type analyzerConfig struct {
	now              func() time.Time
	alertOptions     []alerts.Option
	dashboardOptions []dashboard.Option
	store            db.Store
}

// Option configures an Analyzer.
type Option func(*analyzerConfig)

// WithClock sets the clock shared by every engine.
func WithClock(now func() time.Time) Option {
	return func(c *analyzerConfig) {
		c.now = now
	}
}

// WithAlertOptions passes extra options to the alert engine.
func WithAlertOptions(opts ...alerts.Option) Option {
	return func(c *analyzerConfig) {
		c.alertOptions = append(c.alertOptions, opts...)
	}
}

// WithDashboardOptions passes extra options to the dashboard engine.
func WithDashboardOptions(opts ...dashboard.Option) Option {
	return func(c *analyzerConfig) {
		c.dashboardOptions = append(c.dashboardOptions, opts...)
	}
}

// WithStore enables persistence of every run.
func WithStore(store db.Store) Option {
	return func(c *analyzerConfig) {
		c.store = store
	}
}

// NewAnalyzer creates an Analyzer.
func NewAnalyzer(opts ...Option) *Analyzer {
	cfg := &analyzerConfig{now: time.Now}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.now == nil {
		cfg.now = time.Now
	}

	alertOpts := append([]alerts.Option{alerts.WithClock(cfg.now)}, cfg.alertOptions...)
	dashboardOpts := append([]dashboard.Option{dashboard.WithClock(cfg.now)}, cfg.dashboardOptions...)

	return &Analyzer{
		alerts:        alerts.NewEngine(alertOpts...),
		dashboard:     dashboard.NewEngine(dashboardOpts...),
		interventions: interventions.NewEngine(interventions.WithClock(cfg.now)),
		store:         cfg.store,
		now:           cfg.now,
	}
}

// HasStore reports whether runs are persisted.
func (a *Analyzer) HasStore() bool {
	return a.store != nil
}

// Store returns the configured store, or nil.
func (a *Analyzer) Store() db.Store {
	return a.store
}

// Analyze runs the three engines in order without persisting the result.
func (a *Analyzer) Analyze(req *types.AnalyzeRequest) (*types.Analysis, error) {
	res, err := a.execute(context.Background(), req, nil, false)
	if err != nil {
		return nil, err
	}
	return res.Analysis, nil
}

// Run analyses one request, reporting progress and persisting the result when a
// store is configured. A failed save is logged and the analysis is still returned.
func (a *Analyzer) Run(ctx context.Context, opts RunOptions) (*Result, error) {
	return a.execute(ctx, opts.Request, opts.OnProgress, true)
}

// RunBatch analyses many requests concurrently. Results keep the input order.
// The first failing request cancels the remaining ones.
func (a *Analyzer) RunBatch(ctx context.Context, reqs []*types.AnalyzeRequest, concurrency int) ([]*Result, error) {
	if concurrency <= 0 {
		concurrency = DefaultBatchConcurrency
	}

	results := make([]*Result, len(reqs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for i, req := range reqs {
		g.Go(func() error {
			res, err := a.Run(gctx, RunOptions{Request: req})
			if err != nil {
				return fmt.Errorf("request %d: %w", i, err)
			}
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// Alert runs only the alert engine. The result is nil when no alert is warranted.
func (a *Analyzer) Alert(req *types.AnalyzeRequest) (*types.Alert, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	p := clampOnce(req)
	return a.alerts.GenerateAlert(req.UserID, p, req.Metrics), nil
}

// Summary runs the alert and dashboard engines and returns the dashboard.
func (a *Analyzer) Summary(req *types.AnalyzeRequest) (*types.DashboardSummary, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	p := clampOnce(req)
	alertList := alertsOf(a.alerts.GenerateAlert(req.UserID, p, req.Metrics))
	return a.dashboard.GenerateSummary(req.UserID, p, req.Metrics, alertList), nil
}

// PlanInterventions builds an intervention plan. Supplied main causes are used as
// given; otherwise they are ranked from the metrics.
func (a *Analyzer) PlanInterventions(req *types.InterventionsRequest) (*types.InterventionPlan, error) {
	if req == nil {
		return nil, fmt.Errorf("request is nil")
	}
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("invalid request: %w", err)
	}

	p := clampOnce(&req.AnalyzeRequest)
	alertList := alertsOf(a.alerts.GenerateAlert(req.UserID, p, req.Metrics))

	causes := req.MainCauses
	if len(causes) == 0 {
		causes = a.dashboard.GenerateSummary(req.UserID, p, req.Metrics, alertList).MainCauses
	}
	return a.interventions.GenerateInterventions(req.UserID, p, req.Metrics, causes, alertList), nil
}

func (a *Analyzer) execute(ctx context.Context, req *types.AnalyzeRequest, onProgress ProgressCallback, persist bool) (*Result, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	runID := uuid.NewString()
	emit := func(step, message string, content any) {
		if onProgress == nil {
			return
		}
		onProgress(ProgressEvent{
			Step:     step,
			Category: steps.CategoryOf(step),
			Message:  message,
			RunID:    runID,
			Content:  content,
		})
	}

	p := clampOnce(req)
	assessment := req.Assessment()
	logger := log.With().Str("run_id", runID).Int("user_id", req.UserID).Logger()
	logger.Debug().Int("defaulted_metrics", countDefaulted(req.Metrics)).Msg("analysis started")

	completed := make(map[string]bool, len(steps.StepRegistry))
	begin := func(step string) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		logger.Debug().
			Str("step", step).
			Strs("available", steps.GetAvailableSteps(completed)).
			Strs("blocked", steps.GetBlockedSteps(completed)).
			Msg("starting step")
		return steps.ValidateDependencies(completed, step)
	}

	if err := begin(steps.StepGenerateAlert); err != nil {
		return nil, err
	}
	alert := a.alerts.GenerateAlert(req.UserID, p, req.Metrics)
	alertList := alertsOf(alert)
	completed[steps.StepGenerateAlert] = true
	if alert != nil {
		logger.Debug().Str("severity", string(alert.Severity)).Msg("alert generated")
		emit(steps.StepGenerateAlert, fmt.Sprintf("%s alert generated", alert.Severity), alert)
	} else {
		logger.Debug().Msg("no alert warranted")
		emit(steps.StepGenerateAlert, "No alert warranted", nil)
	}

	if err := begin(steps.StepGenerateSummary); err != nil {
		return nil, err
	}
	summary := a.dashboard.GenerateSummary(req.UserID, p, req.Metrics, alertList)
	completed[steps.StepGenerateSummary] = true
	logger.Debug().
		Str("burnout_level", string(summary.Overview.BurnoutLevel)).
		Int("main_causes", len(summary.MainCauses)).
		Msg("dashboard summary generated")
	emit(steps.StepGenerateSummary, fmt.Sprintf("Dashboard generated (%s)", summary.Overview.BurnoutLevel), summary)

	if err := begin(steps.StepGenerateInterventions); err != nil {
		return nil, err
	}
	plan := a.interventions.GenerateInterventions(req.UserID, p, req.Metrics, summary.MainCauses, alertList)
	completed[steps.StepGenerateInterventions] = true
	logger.Debug().Strs("interventions", plan.IDs()).Msg("intervention plan generated")
	emit(steps.StepGenerateInterventions, fmt.Sprintf("%d interventions planned", plan.TotalInterventions), plan)

	analysis := &types.Analysis{
		UserID:      req.UserID,
		GeneratedAt: a.now().UTC().Format(time.RFC3339),
		Prediction: types.Prediction{
			BurnoutProbability: summary.Overview.Probability,
			BurnoutPrediction:  assessment.Prediction,
			BurnoutLevel:       summary.Overview.BurnoutLevel,
			RiskCategory:       summary.Overview.RiskCategory,
		},
		Alert:         alert,
		Summary:       summary,
		Interventions: plan,
		Metrics:       req.Metrics.Resolved(),
	}
	result := &Result{Analysis: analysis}

	if !persist || a.store == nil {
		return result, nil
	}

	if err := begin(steps.StepPersistAnalysis); err != nil {
		return nil, err
	}
	id, err := a.store.SaveAnalysis(ctx, analysis)
	if err != nil {
		logger.Warn().Err(err).Msg("failed to persist analysis, continuing without persistence")
		emit(steps.StepPersistAnalysis, "Persistence failed: "+err.Error(), nil)
		return result, nil
	}
	completed[steps.StepPersistAnalysis] = true
	result.RecordID = id
	logger.Debug().Str("record_id", id.String()).Msg("analysis persisted")
	emit(steps.StepPersistAnalysis, "Analysis saved", map[string]string{"record_id": id.String()})

	return result, nil
}

func validateRequest(req *types.AnalyzeRequest) error {
	if req == nil {
		return fmt.Errorf("request is nil")
	}
	if err := req.Validate(); err != nil {
		return fmt.Errorf("invalid request: %w", err)
	}
	return nil
}

// clampOnce clamps the request probability and logs a single warning when it was
// out of range. The engines then receive an in-range value and stay quiet.
func clampOnce(req *types.AnalyzeRequest) float64 {
	raw := *req.BurnoutProbability
	p, clamped := types.ClampProbability(raw)
	if clamped {
		log.Warn().
			Int("user_id", req.UserID).
			Float64("probability", raw).
			Float64("clamped", p).
			Msg("burnout probability outside [0,1], clamping")
	}
	return p
}

// countDefaulted counts the vocabulary metrics the caller left out.
func countDefaulted(metrics types.MetricSnapshot) int {
	n := 0
	for _, key := range types.MetricKeys {
		if !metrics.Has(key) {
			n++
		}
	}
	return n
}

func alertsOf(alert *types.Alert) []*types.Alert {
	if alert == nil {
		return nil
	}
	return []*types.Alert{alert}
}
