package alerts

import (
	"fmt"

	"github.com/jonathan/burnout-insights/internal/ranking"
	"github.com/jonathan/burnout-insights/internal/types"
)

// factorRule is a contributing-factor readout: it triggers when the metric crosses
// trigger and is graded high when it also crosses severe.
type factorRule struct {
	name      string
	metric    types.MetricKey
	trigger   float64
	severe    float64
	direction ranking.Direction
	format    string
}

var factorRules = []factorRule{
	{"High stress level", types.MetricHighStressPrevalencePerc, 20, 50, ranking.HigherIsWorse, "%.1f%%"},
	{"Poor sleep quality", types.MetricSleepScore, 70, 50, ranking.LowerIsWorse, "%.1f/100"},
	{"Excessive meetings", types.MetricWeeklyHoursInMeetings, 20, 30, ranking.HigherIsWorse, "%.1f hours/week"},
	{"Prolonged recovery time", types.MetricTimeToRecover, 35, 50, ranking.HigherIsWorse, "%.1f minutes"},
	{"Low heart rate variability (HRV)", types.MetricMedianHRV, 30, 20, ranking.LowerIsWorse, "%.1f ms"},
}

// contributingFactors evaluates every factor rule independently of the alert types.
func contributingFactors(metrics types.MetricSnapshot) []types.Factor {
	factors := make([]types.Factor, 0, len(factorRules))
	for _, rule := range factorRules {
		value := metrics.Get(rule.metric)
		if !ranking.IsProblematic(value, rule.trigger, rule.direction) {
			continue
		}
		tier := types.FactorMedium
		if ranking.IsProblematic(value, rule.severe, rule.direction) {
			tier = types.FactorHigh
		}
		factors = append(factors, types.Factor{
			Name:         rule.name,
			Value:        fmt.Sprintf(rule.format, value),
			SeverityTier: tier,
		})
	}
	return factors
}
