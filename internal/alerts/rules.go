// Package alerts provides the severity classification and alert generation for burnout risk.
package alerts

import (
	"fmt"

	"github.com/jonathan/burnout-insights/internal/types"
)

// Probability thresholds (inclusive lower bounds) for each severity tier.
// ThresholdLow is kept for the severity table only: GenerateAlert never emits
// an alert below ThresholdMedium.
const (
	ThresholdLow      = 0.30
	ThresholdMedium   = 0.50
	ThresholdHigh     = 0.70
	ThresholdCritical = 0.85
)

// Metric thresholds that add a specific alert type.
const (
	stressAlertThreshold   = 30.0
	sleepAlertThreshold    = 60.0
	meetingsAlertThreshold = 25.0
	recoveryAlertThreshold = 40.0
)

// ClassifySeverity maps a probability onto a severity tier. Anything below
// ThresholdMedium is reported as low.
func ClassifySeverity(probability float64) types.Severity {
	switch {
	case probability >= ThresholdCritical:
		return types.SeverityCritical
	case probability >= ThresholdHigh:
		return types.SeverityHigh
	case probability >= ThresholdMedium:
		return types.SeverityMedium
	default:
		return types.SeverityLow
	}
}

// alertMessage renders the tier template for the given probability.
func alertMessage(severity types.Severity, probability float64) string {
	pct := probability * 100
	switch severity {
	case types.SeverityCritical:
		return fmt.Sprintf("CRITICAL ALERT: extreme burnout risk detected (%.1f%%). Immediate intervention required.", pct)
	case types.SeverityHigh:
		return fmt.Sprintf("HIGH ALERT: elevated burnout risk detected (%.1f%%). Urgent intervention recommended.", pct)
	case types.SeverityMedium:
		return fmt.Sprintf("MEDIUM ALERT: moderate burnout risk detected (%.1f%%). Monitoring and preventive actions recommended.", pct)
	case types.SeverityLow:
		return fmt.Sprintf("LOW ALERT: mild burnout risk detected (%.1f%%). Keep monitoring.", pct)
	}
	return "Burnout alert detected"
}

// determineAlertTypes returns burnout_risk plus every metric-specific type that applies,
// in declaration order.
func determineAlertTypes(metrics types.MetricSnapshot) []types.AlertType {
	alertTypes := []types.AlertType{types.AlertBurnoutRisk}

	if metrics.Get(types.MetricHighStressPrevalencePerc) > stressAlertThreshold {
		alertTypes = append(alertTypes, types.AlertHighStress)
	}
	if metrics.Get(types.MetricSleepScore) < sleepAlertThreshold {
		alertTypes = append(alertTypes, types.AlertPoorSleep)
	}
	if metrics.Get(types.MetricWeeklyHoursInMeetings) > meetingsAlertThreshold {
		alertTypes = append(alertTypes, types.AlertHighWorkload)
	}
	if metrics.Get(types.MetricTimeToRecover) > recoveryAlertThreshold {
		alertTypes = append(alertTypes, types.AlertLowRecovery)
	}

	return alertTypes
}

var escalationActions = []string{
	"Contact human resources or the occupational health service",
	"Consider redistributing workload immediately",
	"Schedule a medical or psychological evaluation",
}

// typeActions holds the action block for each metric-specific alert type.
var typeActions = map[types.AlertType][]string{
	types.AlertHighStress: {
		"Apply stress management techniques",
		"Take regular breaks during the workday",
	},
	types.AlertPoorSleep: {
		"Review sleep hygiene and night-time routines",
		"Consider consulting a sleep specialist",
	},
	types.AlertHighWorkload: {
		"Review the agenda and prioritize essential tasks",
		"Delegate tasks whenever possible",
		"Cut non-essential meetings",
	},
	types.AlertLowRecovery: {
		"Increase rest and disconnection time",
		"Practice recovery activities (exercise, mindfulness)",
	},
}

// immediateActions builds the escalation block followed by one block per alert type.
func immediateActions(severity types.Severity, alertTypes []types.AlertType) []string {
	actions := make([]string, 0, len(escalationActions)+2*len(alertTypes))
	if severity.Escalated() {
		actions = append(actions, escalationActions...)
	}
	for _, at := range alertTypes {
		actions = append(actions, typeActions[at]...)
	}
	return actions
}
