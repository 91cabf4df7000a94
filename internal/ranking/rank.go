// Package ranking provides functionality to rank metrics as causal factors of burnout risk.
package ranking

import (
	"sort"

	"github.com/jonathan/burnout-insights/internal/types"
)

// MaxCauses is the maximum number of causes returned by IdentifyMainCauses.
const MaxCauses = 5

// FactorSpec describes one candidate cause: the metric it reads, where its
// threshold sits, how much it weighs and which side of the threshold is bad.
type FactorSpec struct {
	Name      string
	Metric    types.MetricKey
	Threshold float64
	Weight    float64
	Direction Direction
}

// Cause names produced by DefaultFactors.
const (
	CauseHighStress      = "High Work Stress"
	CausePoorSleep       = "Poor Sleep Quality"
	CauseMeetingOverload = "Excessive Meetings"
	CauseSlowRecovery    = "Prolonged Recovery Time"
	CauseLowHRV          = "Low Heart Rate Variability (HRV)"
	CauseLowFocus        = "Limited Focus Time"
)

// DefaultFactors is the factor table evaluated by the dashboard, in tie-break order.
var DefaultFactors = []FactorSpec{
	{Name: CauseHighStress, Metric: types.MetricHighStressPrevalencePerc, Threshold: 30, Weight: 0.25, Direction: HigherIsWorse},
	{Name: CausePoorSleep, Metric: types.MetricSleepScore, Threshold: 65, Weight: 0.20, Direction: LowerIsWorse},
	{Name: CauseMeetingOverload, Metric: types.MetricWeeklyHoursInMeetings, Threshold: 25, Weight: 0.15, Direction: HigherIsWorse},
	{Name: CauseSlowRecovery, Metric: types.MetricTimeToRecover, Threshold: 35, Weight: 0.15, Direction: HigherIsWorse},
	{Name: CauseLowHRV, Metric: types.MetricMedianHRV, Threshold: 35, Weight: 0.15, Direction: LowerIsWorse},
	{Name: CauseLowFocus, Metric: types.MetricTimeOnFocusBlocks, Threshold: 3, Weight: 0.10, Direction: LowerIsWorse},
}

// IdentifyMainCauses evaluates every spec against the snapshot and returns at most
// MaxCauses problematic factors sorted by impact score, highest first. Ties keep
// the order of specs. Specs with a zero threshold are skipped.
func IdentifyMainCauses(metrics types.MetricSnapshot, specs []FactorSpec) []types.CausalFactor {
	causes := make([]types.CausalFactor, 0, len(specs))
	for _, spec := range specs {
		if spec.Threshold == 0 {
			continue
		}
		value := metrics.Get(spec.Metric)
		if !IsProblematic(value, spec.Threshold, spec.Direction) {
			continue
		}

		impact := Impact(value, spec.Threshold, spec.Direction)
		causes = append(causes, types.CausalFactor{
			Cause:        spec.Name,
			Metric:       spec.Metric,
			ImpactScore:  types.Round(impact*spec.Weight*100, 2),
			CurrentValue: types.Round(value, 2),
			Threshold:    spec.Threshold,
			Severity:     severityForImpact(impact),
		})
	}

	// Sort by impact score (descending), stable so ties keep table order
	sort.SliceStable(causes, func(i, j int) bool {
		return causes[i].ImpactScore > causes[j].ImpactScore
	})

	if len(causes) > MaxCauses {
		causes = causes[:MaxCauses]
	}
	return causes
}
