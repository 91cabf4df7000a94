package dashboard

import (
	"github.com/jonathan/burnout-insights/internal/ranking"
	"github.com/jonathan/burnout-insights/internal/types"
)

// Limits applied to the summary lists.
const (
	maxRecommendations = 5
	maxActiveAlerts    = 5
)

var (
	escalationRecommendations = []string{
		"Priority: consider immediate professional intervention",
		"Review workload and redistribute responsibilities",
	}
	causeRecommendations = map[types.MetricKey]string{
		types.MetricHighStressPrevalencePerc: "Apply stress management and mindfulness techniques",
		types.MetricSleepScore:               "Improve sleep routines and consider a specialist evaluation",
		types.MetricWeeklyHoursInMeetings:    "Optimize the calendar: cut unnecessary meetings",
	}
	closingRecommendations = []string{
		"Keep regular tracking of wellbeing metrics",
		"Promote a healthy work-life balance",
	}
)

// Recommendations builds the summary recommendations from the level and the top cause.
func Recommendations(level types.BurnoutLevel, causes []types.CausalFactor) []string {
	recs := make([]string, 0, maxRecommendations+1)

	if level == types.BurnoutSevere || level == types.BurnoutHigh {
		recs = append(recs, escalationRecommendations...)
	}

	if len(causes) > 0 {
		if metric, ok := ranking.MetricForCause(causes[0]); ok {
			if rec, found := causeRecommendations[metric]; found {
				recs = append(recs, rec)
			}
		}
	}

	recs = append(recs, closingRecommendations...)

	if len(recs) > maxRecommendations {
		recs = recs[:maxRecommendations]
	}
	return recs
}

// SummarizeAlerts tallies the alerts by severity. Nil entries are ignored and an
// empty list yields nil.
func SummarizeAlerts(list []*types.Alert) *types.AlertsSummary {
	summary := &types.AlertsSummary{
		BySeverity:   make(map[types.Severity]int),
		ActiveAlerts: make([]types.ActiveAlert, 0, maxActiveAlerts),
	}
	for _, alert := range list {
		if alert == nil {
			continue
		}
		summary.Total++
		summary.BySeverity[alert.Severity]++
		if len(summary.ActiveAlerts) < maxActiveAlerts {
			summary.ActiveAlerts = append(summary.ActiveAlerts, types.ActiveAlert{
				AlertID:  alert.AlertID,
				Severity: alert.Severity,
				Message:  alert.Message,
			})
		}
	}
	if summary.Total == 0 {
		return nil
	}
	return summary
}
