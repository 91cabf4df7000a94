package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/burnout-insights/internal/alerts"
	"github.com/jonathan/burnout-insights/internal/db"
	"github.com/jonathan/burnout-insights/internal/pipeline/steps"
	"github.com/jonathan/burnout-insights/internal/types"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedTime = time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

func newTestAnalyzer(opts ...Option) *Analyzer {
	base := []Option{
		WithClock(func() time.Time { return fixedTime }),
		WithAlertOptions(alerts.WithIDSuffix(func() string { return "abcd1234" })),
	}
	return NewAnalyzer(append(base, opts...)...)
}

func request(userID int, probability float64, metrics types.MetricSnapshot) *types.AnalyzeRequest {
	return &types.AnalyzeRequest{
		UserID:             userID,
		BurnoutProbability: &probability,
		Metrics:            metrics,
	}
}

func stressedMetrics() types.MetricSnapshot {
	return types.MetricSnapshot{
		"high_stress_prevalence_perc": 50,
		"sleep_score":                 40,
		"weekly_hours_in_meetings":    35,
	}
}

// fakeStore records saved analyses and can be told to fail.
type fakeStore struct {
	mu    sync.Mutex
	saved []*types.Analysis
	err   error
}

func (s *fakeStore) SaveAnalysis(_ context.Context, analysis *types.Analysis) (uuid.UUID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return uuid.Nil, s.err
	}
	s.saved = append(s.saved, analysis)
	return uuid.New(), nil
}

func (s *fakeStore) GetAnalysis(_ context.Context, id uuid.UUID) (*db.Record, error) {
	return nil, fmt.Errorf("%w: %s", db.ErrNotFound, id)
}

func (s *fakeStore) ListAnalyses(_ context.Context, _ int, _ int) ([]db.Record, error) {
	return []db.Record{}, nil
}

func (s *fakeStore) Close() error { return nil }

func TestAnalyze_CriticalChainIsConsistent(t *testing.T) {
	analysis, err := newTestAnalyzer().Analyze(request(7, 0.9, stressedMetrics()))
	require.NoError(t, err)

	require.NotNil(t, analysis.Alert)
	require.NotNil(t, analysis.Summary)
	require.NotNil(t, analysis.Interventions)

	assert.Equal(t, 7, analysis.UserID)
	assert.Equal(t, "2026-01-02T03:04:05Z", analysis.GeneratedAt)
	assert.Equal(t, types.SeverityCritical, analysis.Alert.Severity)
	assert.Equal(t, "ALERT-7-20260102030405-abcd1234", analysis.Alert.AlertID)

	assert.Equal(t, 0.9, analysis.Prediction.BurnoutProbability)
	assert.Equal(t, 1, analysis.Prediction.BurnoutPrediction)
	assert.Equal(t, types.BurnoutSevere, analysis.Prediction.BurnoutLevel)
	assert.Equal(t, analysis.Summary.Overview.RiskCategory, analysis.Prediction.RiskCategory)

	// the dashboard sees the alert produced in the same run
	require.NotNil(t, analysis.Summary.AlertsSummary)
	assert.Equal(t, 1, analysis.Summary.AlertsSummary.Total)
	assert.Equal(t, analysis.Alert.AlertID, analysis.Summary.AlertsSummary.ActiveAlerts[0].AlertID)

	// the plan uses the alert's severity and the dashboard's causes
	assert.Equal(t, analysis.Alert.Severity, analysis.Interventions.Severity)
	require.NotEmpty(t, analysis.Summary.MainCauses)
	ids := analysis.Interventions.IDs()
	assert.Contains(t, ids, "STRESS-001")
	assert.Contains(t, ids, "SLEEP-001")
	assert.Contains(t, ids, "GEN-001")
	assert.Contains(t, ids, "GEN-002")

	// metrics carry the defaults that were used
	assert.InDelta(t, 44.0, analysis.Metrics["median_hrv"], 1e-9)
	assert.InDelta(t, 40.0, analysis.Metrics["sleep_score"], 1e-9)
}

func TestAnalyze_LowRiskHasNoAlert(t *testing.T) {
	analysis, err := newTestAnalyzer().Analyze(request(3, 0.2, types.MetricSnapshot{}))
	require.NoError(t, err)

	assert.Nil(t, analysis.Alert)
	assert.Nil(t, analysis.Summary.AlertsSummary)
	assert.Equal(t, 0, analysis.Prediction.BurnoutPrediction)
	assert.Equal(t, types.SeverityLow, analysis.Interventions.Severity)
	assert.Equal(t, []string{"GEN-002"}, analysis.Interventions.IDs())
}

func TestAnalyze_ExplicitPredictionIsKept(t *testing.T) {
	req := request(3, 0.7, types.MetricSnapshot{})
	zero := 0
	req.BurnoutPrediction = &zero

	analysis, err := newTestAnalyzer().Analyze(req)
	require.NoError(t, err)
	assert.Equal(t, 0, analysis.Prediction.BurnoutPrediction)
	require.NotNil(t, analysis.Alert)
}

func TestAnalyze_ClampsOutOfRangeProbability(t *testing.T) {
	analysis, err := newTestAnalyzer().Analyze(request(5, 1.4, types.MetricSnapshot{}))
	require.NoError(t, err)
	assert.Equal(t, 1.0, analysis.Prediction.BurnoutProbability)
	assert.Equal(t, 1.0, analysis.Alert.Probability)
	assert.Equal(t, types.SeverityCritical, analysis.Alert.Severity)

	analysis, err = newTestAnalyzer().Analyze(request(5, math.NaN(), types.MetricSnapshot{}))
	require.NoError(t, err)
	assert.Equal(t, 0.0, analysis.Prediction.BurnoutProbability)
	assert.Nil(t, analysis.Alert)
}

func TestAnalyze_InvalidRequest(t *testing.T) {
	analyzer := newTestAnalyzer()

	_, err := analyzer.Analyze(nil)
	assert.Error(t, err)

	_, err = analyzer.Analyze(&types.AnalyzeRequest{UserID: 1})
	assert.ErrorContains(t, err, "invalid request")

	_, err = analyzer.Analyze(request(0, 0.5, nil))
	assert.ErrorContains(t, err, "invalid request")
}

func TestAnalyze_IsDeterministic(t *testing.T) {
	analyzer := newTestAnalyzer()

	first, err := analyzer.Analyze(request(9, 0.77, stressedMetrics()))
	require.NoError(t, err)
	second, err := analyzer.Analyze(request(9, 0.77, stressedMetrics()))
	require.NoError(t, err)

	a, err := json.Marshal(first)
	require.NoError(t, err)
	b, err := json.Marshal(second)
	require.NoError(t, err)
	assert.JSONEq(t, string(a), string(b))
}

func TestRun_ProgressEvents(t *testing.T) {
	store := &fakeStore{}
	analyzer := newTestAnalyzer(WithStore(store))

	var events []ProgressEvent
	res, err := analyzer.Run(context.Background(), RunOptions{
		Request:    request(7, 0.9, stressedMetrics()),
		OnProgress: func(e ProgressEvent) { events = append(events, e) },
	})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, res.RecordID)
	require.Len(t, store.saved, 1)
	assert.Same(t, res.Analysis, store.saved[0])

	require.Len(t, events, 4)
	wantSteps := []string{
		steps.StepGenerateAlert,
		steps.StepGenerateSummary,
		steps.StepGenerateInterventions,
		steps.StepPersistAnalysis,
	}
	for i, e := range events {
		assert.Equal(t, wantSteps[i], e.Step)
		assert.Equal(t, steps.CategoryOf(e.Step), e.Category)
		assert.Equal(t, events[0].RunID, e.RunID)
		assert.NotEmpty(t, e.Message)
	}
	assert.Same(t, res.Analysis.Alert, events[0].Content)
	assert.Same(t, res.Analysis.Summary, events[1].Content)
	assert.Same(t, res.Analysis.Interventions, events[2].Content)
}

func TestRun_WithoutStore(t *testing.T) {
	var events []ProgressEvent
	res, err := newTestAnalyzer().Run(context.Background(), RunOptions{
		Request:    request(2, 0.4, nil),
		OnProgress: func(e ProgressEvent) { events = append(events, e) },
	})
	require.NoError(t, err)
	assert.Equal(t, uuid.Nil, res.RecordID)
	assert.Len(t, events, 3)
	assert.Nil(t, events[0].Content)
}

func TestRun_PersistenceFailureIsTolerated(t *testing.T) {
	store := &fakeStore{err: errors.New("disk full")}
	analyzer := newTestAnalyzer(WithStore(store))

	var last ProgressEvent
	res, err := analyzer.Run(context.Background(), RunOptions{
		Request:    request(4, 0.8, nil),
		OnProgress: func(e ProgressEvent) { last = e },
	})
	require.NoError(t, err)
	require.NotNil(t, res.Analysis)
	assert.Equal(t, uuid.Nil, res.RecordID)
	assert.Equal(t, steps.StepPersistAnalysis, last.Step)
	assert.Contains(t, last.Message, "disk full")
}

func TestRun_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestAnalyzer().Run(ctx, RunOptions{Request: request(1, 0.6, nil)})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRun_PersistsToSQLite(t *testing.T) {
	ctx := context.Background()
	store, err := db.OpenSQLite(ctx, filepath.Join(t.TempDir(), "runs.db"))
	require.NoError(t, err)
	defer store.Close()

	res, err := newTestAnalyzer(WithStore(store)).Run(ctx, RunOptions{Request: request(11, 0.72, stressedMetrics())})
	require.NoError(t, err)

	rec, err := store.GetAnalysis(ctx, res.RecordID)
	require.NoError(t, err)
	assert.Equal(t, 11, rec.UserID)
	assert.Equal(t, "high", rec.AlertSeverity)
	assert.Equal(t, res.Analysis.Interventions.IDs(), rec.Analysis.Interventions.IDs())
}

func TestRunBatch_PreservesOrder(t *testing.T) {
	store := &fakeStore{}
	analyzer := newTestAnalyzer(WithStore(store))

	var reqs []*types.AnalyzeRequest
	for i := 1; i <= 20; i++ {
		reqs = append(reqs, request(i, float64(i)/20, nil))
	}

	results, err := analyzer.RunBatch(context.Background(), reqs, 3)
	require.NoError(t, err)
	require.Len(t, results, len(reqs))
	for i, res := range results {
		assert.Equal(t, i+1, res.Analysis.UserID)
	}
	assert.Len(t, store.saved, len(reqs))
}

func TestRunBatch_ReportsFailingIndex(t *testing.T) {
	reqs := []*types.AnalyzeRequest{
		request(1, 0.3, nil),
		{UserID: 2},
	}

	_, err := newTestAnalyzer().RunBatch(context.Background(), reqs, 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "request 1")
}

func TestAlertAndSummary(t *testing.T) {
	analyzer := newTestAnalyzer()

	alert, err := analyzer.Alert(request(1, 0.3, nil))
	require.NoError(t, err)
	assert.Nil(t, alert)

	alert, err = analyzer.Alert(request(1, 0.75, nil))
	require.NoError(t, err)
	require.NotNil(t, alert)
	assert.Equal(t, types.SeverityHigh, alert.Severity)

	summary, err := analyzer.Summary(request(1, 0.75, nil))
	require.NoError(t, err)
	require.NotNil(t, summary.AlertsSummary)
	assert.Equal(t, 1, summary.AlertsSummary.Total)

	_, err = analyzer.Summary(nil)
	assert.Error(t, err)
}

func TestPlanInterventions(t *testing.T) {
	analyzer := newTestAnalyzer()

	t.Run("supplied causes are used as given", func(t *testing.T) {
		req := &types.InterventionsRequest{
			AnalyzeRequest: *request(1, 0.6, nil),
			MainCauses:     []types.CausalFactor{{Cause: "Too many meetings", ImpactScore: 50}},
		}
		plan, err := analyzer.PlanInterventions(req)
		require.NoError(t, err)
		assert.Equal(t, types.SeverityMedium, plan.Severity)
		assert.Contains(t, plan.IDs(), "WORK-001")
		assert.NotContains(t, plan.IDs(), "STRESS-001")
	})

	t.Run("causes are ranked when absent", func(t *testing.T) {
		req := &types.InterventionsRequest{AnalyzeRequest: *request(1, 0.9, stressedMetrics())}
		plan, err := analyzer.PlanInterventions(req)
		require.NoError(t, err)
		assert.Contains(t, plan.IDs(), "STRESS-001")
	})

	t.Run("too many causes", func(t *testing.T) {
		req := &types.InterventionsRequest{
			AnalyzeRequest: *request(1, 0.9, nil),
			MainCauses:     make([]types.CausalFactor, 6),
		}
		_, err := analyzer.PlanInterventions(req)
		assert.Error(t, err)
	})

	_, err := analyzer.PlanInterventions(nil)
	assert.Error(t, err)
}

func TestCountDefaulted(t *testing.T) {
	assert.Equal(t, len(types.MetricKeys), countDefaulted(nil))
	assert.Equal(t, len(types.MetricKeys)-2, countDefaulted(types.MetricSnapshot{
		"sleep_score": 40,
		"median_hrv":  20,
		"step_count":  9000,
	}))
}

func TestAnalyze_LogsStepProgress(t *testing.T) {
	var buf bytes.Buffer
	prevLogger, prevLevel := log.Logger, zerolog.GlobalLevel()
	log.Logger = zerolog.New(&buf)
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	t.Cleanup(func() {
		log.Logger = prevLogger
		zerolog.SetGlobalLevel(prevLevel)
	})

	_, err := newTestAnalyzer().Analyze(request(5, 0.9, types.MetricSnapshot{"sleep_score": 40}))
	require.NoError(t, err)

	var starts []map[string]any
	var planned map[string]any
	for _, line := range bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n")) {
		var entry map[string]any
		require.NoError(t, json.Unmarshal(line, &entry))
		switch entry["message"] {
		case "analysis started":
			assert.EqualValues(t, len(types.MetricKeys)-1, entry["defaulted_metrics"])
		case "starting step":
			starts = append(starts, entry)
		case "intervention plan generated":
			planned = entry
		}
	}

	require.Len(t, starts, 3)
	assert.Equal(t, steps.StepGenerateAlert, starts[0]["step"])
	assert.Equal(t, []any{steps.StepGenerateAlert}, starts[0]["available"])
	assert.Equal(t, steps.StepGenerateInterventions, starts[2]["step"])
	assert.Contains(t, starts[2]["available"], steps.StepGenerateInterventions)

	require.NotNil(t, planned)
	assert.NotEmpty(t, planned["interventions"])
}
