package ranking

import (
	"strings"

	"github.com/jonathan/burnout-insights/internal/types"
)

// causeKeywords maps a word found in a cause name back to the metric it describes.
// Used for causes supplied by callers without a metric key.
var causeKeywords = []struct {
	keyword string
	metric  types.MetricKey
}{
	{"stress", types.MetricHighStressPrevalencePerc},
	{"sleep", types.MetricSleepScore},
	{"meeting", types.MetricWeeklyHoursInMeetings},
	{"recovery", types.MetricTimeToRecover},
	{"hrv", types.MetricMedianHRV},
	{"heart rate", types.MetricMedianHRV},
	{"focus", types.MetricTimeOnFocusBlocks},
}

// MetricForCause resolves the metric a causal factor refers to. The metric key
// wins when set; otherwise the cause name is matched against known keywords.
func MetricForCause(cause types.CausalFactor) (types.MetricKey, bool) {
	if cause.Metric != "" {
		return cause.Metric, true
	}
	name := strings.ToLower(cause.Cause)
	for _, kw := range causeKeywords {
		if strings.Contains(name, kw.keyword) {
			return kw.metric, true
		}
	}
	return "", false
}
