package dashboard

import (
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/jonathan/burnout-insights/internal/ranking"
	"github.com/jonathan/burnout-insights/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedTime = time.Date(2026, 3, 4, 5, 6, 7, 0, time.UTC)

func newTestEngine(opts ...Option) *Engine {
	return NewEngine(append([]Option{WithClock(func() time.Time { return fixedTime })}, opts...)...)
}

func TestGenerateSummary_ModerateMetrics(t *testing.T) {
	metrics := types.MetricSnapshot{
		"high_stress_prevalence_perc": 30,
		"sleep_score":                 60,
		"weekly_hours_in_meetings":    28,
		"time_to_recover":             40,
		"median_hrv":                  35,
		"time_on_focus_blocks":        3,
	}

	summary := newTestEngine().GenerateSummary(11, 0.65, metrics, nil)
	require.NotNil(t, summary)

	assert.Equal(t, 11, summary.UserID)
	assert.Equal(t, "2026-03-04T05:06:07Z", summary.GeneratedAt)
	assert.Equal(t, types.BurnoutModerate, summary.Overview.BurnoutLevel)
	assert.Contains(t, []types.HealthStatus{types.HealthFair, types.HealthGood}, summary.Overview.HealthStatus)
	assert.Equal(t, RiskModerate, summary.Overview.RiskCategory)
	assert.Equal(t, 0.65, summary.Overview.Probability)
	assert.NotEmpty(t, summary.MainCauses)
	assert.Nil(t, summary.AlertsSummary)
	assert.Equal(t, closingRecommendations, summary.Recommendations)
}

func TestGenerateSummary_HealthyMetrics(t *testing.T) {
	metrics := types.MetricSnapshot{
		"high_stress_prevalence_perc": 10,
		"sleep_score":                 85,
		"median_hrv":                  55,
		"avg_pulse":                   65,
		"weekly_hours_in_meetings":    15,
		"time_on_focus_blocks":        5,
	}

	summary := newTestEngine().GenerateSummary(12, 0.25, metrics, nil)

	assert.Contains(t, []types.BurnoutLevel{types.BurnoutNone, types.BurnoutLow}, summary.Overview.BurnoutLevel)
	assert.Contains(t, []types.HealthStatus{types.HealthExcellent, types.HealthGood}, summary.Overview.HealthStatus)
	assert.Equal(t, RiskInsignificant, summary.Overview.RiskCategory)
	assert.Empty(t, summary.MainCauses)
	for _, km := range summary.KeyMetrics {
		assert.Equal(t, types.MetricGood, km.Status, km.Name)
	}
}

func TestGenerateSummary_WithAlert(t *testing.T) {
	alert := &types.Alert{AlertID: "ALERT-1", Severity: types.SeverityCritical, Message: "critical"}
	metrics := types.MetricSnapshot{"high_stress_prevalence_perc": 80}

	summary := newTestEngine().GenerateSummary(1, 0.9, metrics, []*types.Alert{alert})

	require.NotNil(t, summary.AlertsSummary)
	assert.Equal(t, 1, summary.AlertsSummary.Total)
	assert.Equal(t, map[types.Severity]int{types.SeverityCritical: 1}, summary.AlertsSummary.BySeverity)
	assert.Equal(t, []types.ActiveAlert{{AlertID: "ALERT-1", Severity: types.SeverityCritical, Message: "critical"}}, summary.AlertsSummary.ActiveAlerts)

	assert.Equal(t, types.BurnoutSevere, summary.Overview.BurnoutLevel)
	assert.Len(t, summary.Recommendations, 5)
	assert.Equal(t, escalationRecommendations, summary.Recommendations[:2])
	assert.Equal(t, causeRecommendations[types.MetricHighStressPrevalencePerc], summary.Recommendations[2])
}

func TestGenerateSummary_TrendsAreNotFabricated(t *testing.T) {
	summary := newTestEngine().GenerateSummary(1, 0.5, nil, nil)

	assert.Equal(t, types.TrendUnavailable, summary.Trends.BurnoutRisk)
	assert.Equal(t, types.TrendUnavailable, summary.Trends.StressLevels)
	assert.Equal(t, types.TrendUnavailable, summary.Trends.SleepQuality)
	assert.Equal(t, types.TrendUnavailable, summary.Trends.Workload)
	assert.NotEmpty(t, summary.Trends.Note)
}

func TestGenerateSummary_MetricsDetailsUseDefaults(t *testing.T) {
	summary := newTestEngine().GenerateSummary(1, 0.5, types.MetricSnapshot{"eda_peaks": 20}, nil)

	assert.Len(t, summary.MetricsDetails.Physiological, 5)
	assert.Len(t, summary.MetricsDetails.Cognitive, 3)
	assert.Len(t, summary.MetricsDetails.Behavioral, 3)
	assert.Equal(t, 20.0, summary.MetricsDetails.Physiological[types.MetricEDAPeaks])
	assert.Equal(t, 44.0, summary.MetricsDetails.Physiological[types.MetricMedianHRV])
	assert.Equal(t, 0.5, summary.MetricsDetails.Behavioral[types.MetricAbsenteeismDays])
}

func TestGenerateSummary_ClampsProbability(t *testing.T) {
	summary := newTestEngine().GenerateSummary(1, 3, nil, nil)
	assert.Equal(t, 1.0, summary.Overview.Probability)
	assert.Equal(t, types.BurnoutSevere, summary.Overview.BurnoutLevel)

	summary = newTestEngine().GenerateSummary(1, math.NaN(), nil, nil)
	assert.Equal(t, 0.0, summary.Overview.Probability)
	assert.Equal(t, types.BurnoutNone, summary.Overview.BurnoutLevel)
}

func TestGenerateSummary_CustomFactors(t *testing.T) {
	specs := []ranking.FactorSpec{
		{Name: "Frequent EDA peaks", Metric: types.MetricEDAPeaks, Threshold: 10, Weight: 0.5, Direction: ranking.HigherIsWorse},
		{Name: "Zero threshold", Metric: types.MetricNPSScore, Threshold: 0, Weight: 0.5, Direction: ranking.LowerIsWorse},
	}

	summary := newTestEngine(WithFactors(specs)).GenerateSummary(1, 0.4, nil, nil)
	require.Len(t, summary.MainCauses, 1)
	assert.Equal(t, "Frequent EDA peaks", summary.MainCauses[0].Cause)
}

func TestBurnoutLevelFor(t *testing.T) {
	tests := []struct {
		p    float64
		want types.BurnoutLevel
	}{
		{0, types.BurnoutNone},
		{0.29, types.BurnoutNone},
		{0.30, types.BurnoutLow},
		{0.50, types.BurnoutModerate},
		{0.70, types.BurnoutHigh},
		{0.85, types.BurnoutSevere},
		{1, types.BurnoutSevere},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, BurnoutLevelFor(tt.p), "probability %v", tt.p)
	}
}

func TestRiskCategoryFor(t *testing.T) {
	assert.Equal(t, RiskHigh, RiskCategoryFor(0.7))
	assert.Equal(t, RiskModerate, RiskCategoryFor(0.5))
	assert.Equal(t, RiskLow, RiskCategoryFor(0.3))
	assert.Equal(t, RiskInsignificant, RiskCategoryFor(0.29))
}

func TestScoreStatus(t *testing.T) {
	assert.Equal(t, types.HealthExcellent, ScoreStatus(80))
	assert.Equal(t, types.HealthGood, ScoreStatus(65))
	assert.Equal(t, types.HealthFair, ScoreStatus(50))
	assert.Equal(t, types.HealthPoor, ScoreStatus(35))
	assert.Equal(t, types.HealthCritical, ScoreStatus(34.99))
}

func TestHealthStatusFor(t *testing.T) {
	// 0.3*0.6 + 0.3*0.7 + 0.2*0.7 + 0.2*0.35 = 0.60
	metrics := types.MetricSnapshot{"sleep_score": 60, "high_stress_prevalence_perc": 30, "median_hrv": 35}
	assert.InDelta(t, 60.0, healthScore(0.65, metrics), 1e-9)
	assert.Equal(t, types.HealthFair, HealthStatusFor(0.65, metrics))
}

func TestSummarizeAlerts(t *testing.T) {
	assert.Nil(t, SummarizeAlerts(nil))
	assert.Nil(t, SummarizeAlerts([]*types.Alert{}))
	assert.Nil(t, SummarizeAlerts([]*types.Alert{nil}))

	var list []*types.Alert
	for i := 0; i < 7; i++ {
		sev := types.SeverityMedium
		if i%2 == 0 {
			sev = types.SeverityHigh
		}
		list = append(list, &types.Alert{AlertID: fmt.Sprintf("A-%d", i), Severity: sev})
	}
	list = append(list, nil)

	summary := SummarizeAlerts(list)
	require.NotNil(t, summary)
	assert.Equal(t, 7, summary.Total)
	assert.Equal(t, 4, summary.BySeverity[types.SeverityHigh])
	assert.Equal(t, 3, summary.BySeverity[types.SeverityMedium])
	require.Len(t, summary.ActiveAlerts, 5)
	assert.Equal(t, "A-0", summary.ActiveAlerts[0].AlertID)
	assert.Equal(t, "A-4", summary.ActiveAlerts[4].AlertID)
}

func TestRecommendations(t *testing.T) {
	stress := types.CausalFactor{Cause: ranking.CauseHighStress, Metric: types.MetricHighStressPrevalencePerc}
	sleep := types.CausalFactor{Cause: ranking.CausePoorSleep}
	recovery := types.CausalFactor{Cause: ranking.CauseSlowRecovery, Metric: types.MetricTimeToRecover}

	tests := []struct {
		name   string
		level  types.BurnoutLevel
		causes []types.CausalFactor
		want   []string
	}{
		{
			name:   "severe with stress",
			level:  types.BurnoutSevere,
			causes: []types.CausalFactor{stress, recovery},
			want: []string{
				escalationRecommendations[0],
				escalationRecommendations[1],
				causeRecommendations[types.MetricHighStressPrevalencePerc],
				closingRecommendations[0],
				closingRecommendations[1],
			},
		},
		{
			name:   "moderate with sleep by name",
			level:  types.BurnoutModerate,
			causes: []types.CausalFactor{sleep},
			want: []string{
				causeRecommendations[types.MetricSleepScore],
				closingRecommendations[0],
				closingRecommendations[1],
			},
		},
		{
			name:   "top cause without targeted advice",
			level:  types.BurnoutHigh,
			causes: []types.CausalFactor{recovery, stress},
			want: []string{
				escalationRecommendations[0],
				escalationRecommendations[1],
				closingRecommendations[0],
				closingRecommendations[1],
			},
		},
		{
			name:  "no causes",
			level: types.BurnoutNone,
			want:  closingRecommendations,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Recommendations(tt.level, tt.causes)
			assert.Equal(t, tt.want, got)
			assert.LessOrEqual(t, len(got), maxRecommendations)
		})
	}
}
