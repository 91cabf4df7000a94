package interventions

import (
	"github.com/jonathan/burnout-insights/internal/types"
)

// Phase sizes. A negative limit keeps the whole bucket.
const (
	immediatePhaseLimit  = 3
	shortTermPhaseLimit  = 4
	mediumTermPhaseLimit = 3
	longTermPhaseLimit   = -1
)

func prefix(list []types.Intervention, limit int) []types.Intervention {
	if limit >= 0 && len(list) > limit {
		list = list[:limit]
	}
	return append([]types.Intervention{}, list...)
}

func buildActionPlan(buckets map[types.Timeframe][]types.Intervention) types.ActionPlan {
	return types.ActionPlan{
		Immediate: types.Phase{
			Description:     "Actions to start within the next 24-48 hours",
			Interventions:   prefix(buckets[types.TimeframeImmediate], immediatePhaseLimit),
			SuccessCriteria: "At least 2 actions started",
		},
		ShortTerm: types.Phase{
			Description:     "Actions to implement over the next 1-2 weeks",
			Interventions:   prefix(buckets[types.TimeframeShortTerm], shortTermPhaseLimit),
			SuccessCriteria: "New routines and habits established",
		},
		MediumTerm: types.Phase{
			Description:     "Structural changes to implement within 1-3 months",
			Interventions:   prefix(buckets[types.TimeframeMediumTerm], mediumTermPhaseLimit),
			SuccessCriteria: "Measurable improvement in wellbeing metrics",
		},
		LongTerm: types.Phase{
			Description:     "Sustainable long-term changes",
			Interventions:   prefix(buckets[types.TimeframeLongTerm], longTermPhaseLimit),
			SuccessCriteria: "Healthy habits maintained and relapse prevented",
		},
	}
}

var (
	monitoredMetrics = []string{
		"Burnout probability",
		"Stress levels",
		"Sleep quality",
		"Adherence to interventions",
		"Subjective perception of improvement",
	}
	reassessmentTriggers = []string{
		"Worsening symptoms",
		"New stressors",
		"Significant job changes",
		"No progress after 4 weeks",
	}
	keyImprovements = []string{
		"Lower perceived stress",
		"Better sleep quality",
		"Greater sense of control and effectiveness",
		"Better work-life balance",
		"More energy and motivation",
	}
	successIndicators = []string{
		"Fewer critical alerts",
		"Improved physiological metrics (HRV, resting heart rate)",
		"Lower absenteeism",
		"Higher job satisfaction (NPS)",
		"Positive feedback from the employee",
	}
)

func followUpFor(severity types.Severity) types.FollowUp {
	f := types.FollowUp{
		MetricsToMonitor:     append([]string{}, monitoredMetrics...),
		ReassessmentTriggers: append([]string{}, reassessmentTriggers...),
	}
	switch {
	case severity.Escalated():
		f.Frequency, f.Duration = "weekly", "first 2 months"
	case severity == types.SeverityMedium:
		f.Frequency, f.Duration = "biweekly", "first month, then monthly"
	default:
		f.Frequency, f.Duration = "monthly", "first 3 months"
	}
	return f
}

func outcomesFor(severity types.Severity) types.ExpectedOutcomes {
	o := types.ExpectedOutcomes{
		KeyImprovements:   append([]string{}, keyImprovements...),
		SuccessIndicators: append([]string{}, successIndicators...),
	}
	switch {
	case severity.Escalated():
		o.Timeframe, o.ExpectedBurnoutReduction = "3-6 months", "30-50%"
	case severity == types.SeverityMedium:
		o.Timeframe, o.ExpectedBurnoutReduction = "2-3 months", "40-60%"
	default:
		o.Timeframe, o.ExpectedBurnoutReduction = "1-2 months", "50-70%"
	}
	return o
}
