// Package dashboard provides the multi-category summary of a person's burnout state.
package dashboard

import (
	"math"

	"github.com/jonathan/burnout-insights/internal/alerts"
	"github.com/jonathan/burnout-insights/internal/types"
)

// Risk category labels shown in the overview.
const (
	RiskHigh          = "High Risk"
	RiskModerate      = "Moderate Risk"
	RiskLow           = "Low Risk"
	RiskInsignificant = "No Significant Risk"
)

// Score cutoffs shared by the health status and the category scores.
const (
	excellentCutoff = 80.0
	goodCutoff      = 65.0
	fairCutoff      = 50.0
	poorCutoff      = 35.0
)

// Weights of the overall health composite.
const (
	healthSleepWeight       = 0.3
	healthStressWeight      = 0.3
	healthHRVWeight         = 0.2
	healthProbabilityWeight = 0.2
	healthHRVReference      = 50.0
)

// BurnoutLevelFor maps a probability onto the five dashboard levels. The upper
// three boundaries are the alert severity thresholds.
func BurnoutLevelFor(probability float64) types.BurnoutLevel {
	switch {
	case probability >= alerts.ThresholdCritical:
		return types.BurnoutSevere
	case probability >= alerts.ThresholdHigh:
		return types.BurnoutHigh
	case probability >= alerts.ThresholdMedium:
		return types.BurnoutModerate
	case probability >= alerts.ThresholdLow:
		return types.BurnoutLow
	default:
		return types.BurnoutNone
	}
}

// RiskCategoryFor returns the textual risk label for a probability.
func RiskCategoryFor(probability float64) string {
	switch {
	case probability >= alerts.ThresholdHigh:
		return RiskHigh
	case probability >= alerts.ThresholdMedium:
		return RiskModerate
	case probability >= alerts.ThresholdLow:
		return RiskLow
	default:
		return RiskInsignificant
	}
}

// ScoreStatus tiers a 0-100 score.
func ScoreStatus(score float64) types.HealthStatus {
	switch {
	case score >= excellentCutoff:
		return types.HealthExcellent
	case score >= goodCutoff:
		return types.HealthGood
	case score >= fairCutoff:
		return types.HealthFair
	case score >= poorCutoff:
		return types.HealthPoor
	default:
		return types.HealthCritical
	}
}

// healthScore is the overall composite on a 0-100 scale.
func healthScore(probability float64, metrics types.MetricSnapshot) float64 {
	sleep := metrics.Get(types.MetricSleepScore)
	stress := metrics.Get(types.MetricHighStressPrevalencePerc)
	hrv := metrics.Get(types.MetricMedianHRV)

	score := (sleep/100)*healthSleepWeight +
		((100-stress)/100)*healthStressWeight +
		math.Min(hrv/healthHRVReference, 1)*healthHRVWeight +
		(1-probability)*healthProbabilityWeight

	return score * 100
}

// HealthStatusFor classifies the overall health composite.
func HealthStatusFor(probability float64, metrics types.MetricSnapshot) types.HealthStatus {
	return ScoreStatus(healthScore(probability, metrics))
}
