package interventions

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/jonathan/burnout-insights/internal/ranking"
	"github.com/jonathan/burnout-insights/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedTime = time.Date(2026, 5, 6, 7, 8, 9, 0, time.UTC)

func newTestEngine() *Engine {
	return NewEngine(WithClock(func() time.Time { return fixedTime }))
}

func ids(list []types.Intervention) []string {
	out := make([]string, len(list))
	for i, iv := range list {
		out[i] = iv.ID
	}
	return out
}

func TestGenerateInterventions_CriticalPlan(t *testing.T) {
	metrics := types.MetricSnapshot{
		"high_stress_prevalence_perc": 60,
		"sleep_score":                 45,
		"weekly_hours_in_meetings":    30,
		"time_to_recover":             50,
	}
	causes := []types.CausalFactor{
		{Cause: ranking.CauseHighStress, Metric: types.MetricHighStressPrevalencePerc},
		{Cause: ranking.CausePoorSleep, Metric: types.MetricSleepScore},
		{Cause: ranking.CauseMeetingOverload, Metric: types.MetricWeeklyHoursInMeetings},
		{Cause: ranking.CauseSlowRecovery, Metric: types.MetricTimeToRecover},
	}

	plan := newTestEngine().GenerateInterventions(21, 0.9, metrics, causes, nil)
	require.NotNil(t, plan)

	assert.Equal(t, 21, plan.UserID)
	assert.Equal(t, "2026-05-06T07:08:09Z", plan.GeneratedAt)
	assert.Equal(t, types.SeverityCritical, plan.Severity)
	assert.Equal(t, 11, plan.TotalInterventions)

	assert.Equal(t, []string{"GEN-001", "STRESS-001", "STRESS-003", "SLEEP-001", "WORK-001"},
		ids(plan.InterventionsByTimeframe[types.TimeframeImmediate]))
	assert.Equal(t, []string{"SLEEP-003", "STRESS-002", "SLEEP-002", "WORK-002", "GEN-002"},
		ids(plan.InterventionsByTimeframe[types.TimeframeShortTerm]))
	assert.Equal(t, []string{"WORK-003"}, ids(plan.InterventionsByTimeframe[types.TimeframeMediumTerm]))
	assert.Empty(t, plan.InterventionsByTimeframe[types.TimeframeLongTerm])

	assert.NotContains(t, plan.IDs(), "RECOV-001", "only the top three causes are expanded")

	assert.Equal(t, []string{"GEN-001", "STRESS-001", "STRESS-003"}, ids(plan.ActionPlan.Immediate.Interventions))
	assert.Equal(t, []string{"SLEEP-003", "STRESS-002", "SLEEP-002", "WORK-002"}, ids(plan.ActionPlan.ShortTerm.Interventions))
	assert.Equal(t, []string{"WORK-003"}, ids(plan.ActionPlan.MediumTerm.Interventions))
	assert.Empty(t, plan.ActionPlan.LongTerm.Interventions)
	assert.NotEmpty(t, plan.ActionPlan.Immediate.Description)
	assert.NotEmpty(t, plan.ActionPlan.LongTerm.SuccessCriteria)

	assert.Equal(t, "weekly", plan.FollowUpRecommendations.Frequency)
	assert.Equal(t, "30-50%", plan.ExpectedOutcomes.ExpectedBurnoutReduction)
	assert.Len(t, plan.FollowUpRecommendations.ReassessmentTriggers, 4)
	assert.Len(t, plan.ExpectedOutcomes.SuccessIndicators, 5)
}

func TestGenerateInterventions_PriorityOrderAndUniqueIDs(t *testing.T) {
	metrics := types.MetricSnapshot{"high_stress_prevalence_perc": 70, "sleep_score": 30, "median_hrv": 20}
	causes := []types.CausalFactor{
		{Cause: "High Work Stress"},
		{Cause: "Work stress again"},
		{Cause: ranking.CauseLowHRV},
	}

	plan := newTestEngine().GenerateInterventions(1, 0.75, metrics, causes, nil)

	seen := make(map[string]bool)
	for _, id := range plan.IDs() {
		assert.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
	assert.Equal(t, plan.TotalInterventions, len(seen))

	for _, tf := range types.Timeframes {
		bucket := plan.InterventionsByTimeframe[tf]
		for i := 1; i < len(bucket); i++ {
			assert.LessOrEqual(t, bucket[i-1].Priority.Rank(), bucket[i].Priority.Rank(), string(tf))
		}
	}
}

func TestGenerateInterventions_LowSeverityOnlySocialSupport(t *testing.T) {
	plan := newTestEngine().GenerateInterventions(3, 0.2, nil, nil, nil)

	assert.Equal(t, types.SeverityLow, plan.Severity)
	assert.Equal(t, 1, plan.TotalInterventions)
	assert.Equal(t, []string{"GEN-002"}, plan.IDs())
	assert.Equal(t, "monthly", plan.FollowUpRecommendations.Frequency)
	assert.Equal(t, "first 3 months", plan.FollowUpRecommendations.Duration)
	assert.Equal(t, "1-2 months", plan.ExpectedOutcomes.Timeframe)
	assert.Equal(t, "50-70%", plan.ExpectedOutcomes.ExpectedBurnoutReduction)
}

func TestGenerateInterventions_MediumSeverity(t *testing.T) {
	causes := []types.CausalFactor{{Cause: ranking.CauseLowFocus, Metric: types.MetricTimeOnFocusBlocks}}
	plan := newTestEngine().GenerateInterventions(3, 0.6, nil, causes, nil)

	assert.Equal(t, types.SeverityMedium, plan.Severity)
	assert.Equal(t, []string{"FOCUS-001", "GEN-002"}, plan.IDs())
	assert.Equal(t, "biweekly", plan.FollowUpRecommendations.Frequency)
	assert.Equal(t, "40-60%", plan.ExpectedOutcomes.ExpectedBurnoutReduction)
}

func TestGenerateInterventions_StressPriorityFollowsSeverity(t *testing.T) {
	causes := []types.CausalFactor{{Cause: ranking.CauseHighStress}}

	medium := newTestEngine().GenerateInterventions(1, 0.55, nil, causes, nil)
	high := newTestEngine().GenerateInterventions(1, 0.72, nil, causes, nil)

	assert.Equal(t, types.PriorityMedium, findByID(t, medium, "STRESS-001").Priority)
	assert.Equal(t, types.PriorityHigh, findByID(t, high, "STRESS-001").Priority)
}

func TestGenerateInterventions_UnknownCauseIgnored(t *testing.T) {
	causes := []types.CausalFactor{{Cause: "Commute length"}}
	plan := newTestEngine().GenerateInterventions(1, 0.4, nil, causes, nil)
	assert.Equal(t, []string{"GEN-002"}, plan.IDs())
}

func TestGenerateInterventions_EmptyBucketsSerializeAsArrays(t *testing.T) {
	plan := newTestEngine().GenerateInterventions(1, 0.2, nil, nil, nil)

	data, err := json.Marshal(plan)
	require.NoError(t, err)

	body := string(data)
	assert.Contains(t, body, `"immediate":[]`)
	assert.Contains(t, body, `"long_term":[]`)
	assert.Contains(t, body, `"phase_4_long_term":{"description":"Sustainable long-term changes","interventions":[]`)
	assert.NotContains(t, body, "null")
}

func TestDeduplicate_FirstPositionLastValue(t *testing.T) {
	list := []types.Intervention{
		{ID: "A", Title: "first"},
		{ID: "B", Title: "b"},
		{ID: "A", Title: "second"},
		{ID: "C", Title: "c"},
	}

	out := deduplicate(list)
	require.Len(t, out, 3)
	assert.Equal(t, []string{"A", "B", "C"}, ids(out))
	assert.Equal(t, "second", out[0].Title)
}

func TestSortByPriority_StableOnTies(t *testing.T) {
	list := []types.Intervention{
		{ID: "m1", Priority: types.PriorityMedium},
		{ID: "h1", Priority: types.PriorityHigh},
		{ID: "x", Priority: "unknown"},
		{ID: "m2", Priority: types.PriorityMedium},
		{ID: "c", Priority: types.PriorityCritical},
		{ID: "h2", Priority: types.PriorityHigh},
		{ID: "l", Priority: types.PriorityLow},
	}

	assert.Equal(t, []string{"c", "h1", "h2", "m1", "m2", "l", "x"}, ids(sortByPriority(list)))
}

func TestGroupByTimeframe_DefaultsToMediumTerm(t *testing.T) {
	list := []types.Intervention{
		{ID: "a", Timeframe: types.TimeframeImmediate},
		{ID: "b"},
		{ID: "c", Timeframe: "someday"},
		{ID: "d", Timeframe: types.TimeframeLongTerm},
	}

	buckets := groupByTimeframe(list)
	require.Len(t, buckets, 4)
	assert.Equal(t, []string{"a"}, ids(buckets[types.TimeframeImmediate]))
	assert.Equal(t, []string{"b", "c"}, ids(buckets[types.TimeframeMediumTerm]))
	assert.Equal(t, types.TimeframeMediumTerm, buckets[types.TimeframeMediumTerm][0].Timeframe)
	assert.Equal(t, []string{"d"}, ids(buckets[types.TimeframeLongTerm]))
	assert.NotNil(t, buckets[types.TimeframeShortTerm])
	assert.Empty(t, buckets[types.TimeframeShortTerm])
}

func TestBuildActionPlan_LongTermKeepsEverything(t *testing.T) {
	var long []types.Intervention
	for i := 0; i < 6; i++ {
		long = append(long, types.Intervention{ID: string(rune('a' + i)), Timeframe: types.TimeframeLongTerm})
	}
	buckets := groupByTimeframe(long)

	plan := buildActionPlan(buckets)
	assert.Len(t, plan.LongTerm.Interventions, 6)
	assert.Empty(t, plan.Immediate.Interventions)
}

func findByID(t *testing.T, plan *types.InterventionPlan, id string) types.Intervention {
	t.Helper()
	for _, tf := range types.Timeframes {
		for _, iv := range plan.InterventionsByTimeframe[tf] {
			if iv.ID == id {
				return iv
			}
		}
	}
	require.Failf(t, "intervention not found", "id %s", id)
	return types.Intervention{}
}
