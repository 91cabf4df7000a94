package dashboard

import (
	"fmt"

	"github.com/jonathan/burnout-insights/internal/types"
)

// keyMetricSpec describes one of the fixed dashboard readouts.
type keyMetricSpec struct {
	name        string
	metric      types.MetricKey
	format      string
	good        float64
	bad         float64
	inverse     bool
	description string
}

var keyMetricSpecs = []keyMetricSpec{
	{"Stress Level", types.MetricHighStressPrevalencePerc, "%.1f%%", 20, 40, true, "Share of time spent in a high-stress state"},
	{"Sleep Quality", types.MetricSleepScore, "%.1f/100", 70, 50, false, "Sleep quality score"},
	{"Heart Rate Variability (HRV)", types.MetricMedianHRV, "%.1f ms", 40, 30, false, "Indicator of the capacity to adapt to stress"},
	{"Average Heart Rate", types.MetricAvgPulse, "%.1f bpm", 80, 90, true, "Average resting heart rate"},
	{"Meeting Hours", types.MetricWeeklyHoursInMeetings, "%.1f h/week", 20, 30, true, "Weekly time spent in meetings"},
	{"Focus Time", types.MetricTimeOnFocusBlocks, "%.1f h/day", 3, 2, false, "Daily time in focused work blocks"},
}

// MetricStatus classifies value against good and bad cutoffs. With inverse set,
// lower values are better.
func MetricStatus(value, good, bad float64, inverse bool) types.MetricStatus {
	if inverse {
		switch {
		case value <= good:
			return types.MetricGood
		case value <= bad:
			return types.MetricWarning
		default:
			return types.MetricBad
		}
	}
	switch {
	case value >= good:
		return types.MetricGood
	case value >= bad:
		return types.MetricWarning
	default:
		return types.MetricBad
	}
}

// KeyMetrics returns the six fixed readouts in display order.
func KeyMetrics(metrics types.MetricSnapshot) []types.KeyMetric {
	out := make([]types.KeyMetric, 0, len(keyMetricSpecs))
	for _, spec := range keyMetricSpecs {
		value := metrics.Get(spec.metric)
		out = append(out, types.KeyMetric{
			Name:        spec.name,
			Value:       fmt.Sprintf(spec.format, value),
			Status:      MetricStatus(value, spec.good, spec.bad, spec.inverse),
			Description: spec.description,
		})
	}
	return out
}

var (
	physiologicalKeys = []types.MetricKey{
		types.MetricMedianHRV,
		types.MetricAvgPulse,
		types.MetricSleepScore,
		types.MetricTimeToRecover,
		types.MetricEDAPeaks,
	}
	cognitiveKeys = []types.MetricKey{
		types.MetricTimeOnFocusBlocks,
		types.MetricHighStressPrevalencePerc,
		types.MetricNPSScore,
	}
	behavioralKeys = []types.MetricKey{
		types.MetricWeeklyHoursInMeetings,
		types.MetricAbsenteeismDays,
		types.MetricInterventionAcceptanceRate,
	}
)

func extract(metrics types.MetricSnapshot, keys []types.MetricKey) map[types.MetricKey]float64 {
	out := make(map[types.MetricKey]float64, len(keys))
	for _, key := range keys {
		out[key] = metrics.Get(key)
	}
	return out
}

// MetricsDetailsFor groups the resolved metric values for display.
func MetricsDetailsFor(metrics types.MetricSnapshot) types.MetricsDetails {
	return types.MetricsDetails{
		Physiological: extract(metrics, physiologicalKeys),
		Cognitive:     extract(metrics, cognitiveKeys),
		Behavioral:    extract(metrics, behavioralKeys),
	}
}

const trendsNote = "Trends require historical data; no history source is connected, so no direction is reported"

// placeholderTrends reports every trend as unavailable.
func placeholderTrends() types.Trends {
	return types.Trends{
		BurnoutRisk:  types.TrendUnavailable,
		StressLevels: types.TrendUnavailable,
		SleepQuality: types.TrendUnavailable,
		Workload:     types.TrendUnavailable,
		Note:         trendsNote,
	}
}
