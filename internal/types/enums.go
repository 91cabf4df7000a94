// Package types provides type definitions for structured data used throughout the burnout-insights system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// Severity is the ordinal alert tier that drives escalation downstream.
type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// Valid reports whether s is one of the declared tiers.
func (s Severity) Valid() bool {
	switch s {
	case SeverityLow, SeverityMedium, SeverityHigh, SeverityCritical:
		return true
	}
	return false
}

// Escalated reports whether the tier requires intervention (high or critical).
func (s Severity) Escalated() bool {
	return s == SeverityHigh || s == SeverityCritical
}

// AlertType tags the specific problem areas an alert covers.
// Declaration order is the canonical order used for action blocks.
type AlertType string

const (
	AlertBurnoutRisk  AlertType = "burnout_risk"
	AlertHighStress   AlertType = "high_stress"
	AlertPoorSleep    AlertType = "poor_sleep"
	AlertHighWorkload AlertType = "high_workload"
	AlertLowRecovery  AlertType = "low_recovery"
)

// FactorTier grades a contributing factor readout.
type FactorTier string

const (
	FactorMedium FactorTier = "medium"
	FactorHigh   FactorTier = "high"
)

// CauseSeverity grades a ranked causal factor by its raw impact.
type CauseSeverity string

const (
	CauseLow    CauseSeverity = "low"
	CauseMedium CauseSeverity = "medium"
	CauseHigh   CauseSeverity = "high"
)

// BurnoutLevel is the five-tier dashboard classification of the probability.
type BurnoutLevel string

const (
	BurnoutNone     BurnoutLevel = "none"
	BurnoutLow      BurnoutLevel = "low"
	BurnoutModerate BurnoutLevel = "moderate"
	BurnoutHigh     BurnoutLevel = "high"
	BurnoutSevere   BurnoutLevel = "severe"
)

// HealthStatus is used both for the overall health readout and for category scores.
type HealthStatus string

const (
	HealthExcellent HealthStatus = "excellent"
	HealthGood      HealthStatus = "good"
	HealthFair      HealthStatus = "fair"
	HealthPoor      HealthStatus = "poor"
	HealthCritical  HealthStatus = "critical"
)

// MetricStatus classifies a single key metric.
type MetricStatus string

const (
	MetricGood    MetricStatus = "good"
	MetricWarning MetricStatus = "warning"
	MetricBad     MetricStatus = "bad"
)

// Category names one of the four composite dashboard scores.
type Category string

const (
	CategoryPhysiological Category = "physiological"
	CategoryCognitive     Category = "cognitive"
	CategoryWellbeing     Category = "wellbeing"
	CategoryWorkload      Category = "workload"
)

// Categories lists the composite categories in display order.
var Categories = []Category{
	CategoryPhysiological,
	CategoryCognitive,
	CategoryWellbeing,
	CategoryWorkload,
}

// InterventionCategory groups catalogue interventions by theme.
type InterventionCategory string

const (
	InterventionStressManagement   InterventionCategory = "stress_management"
	InterventionSleepImprovement   InterventionCategory = "sleep_improvement"
	InterventionWorkloadAdjustment InterventionCategory = "workload_adjustment"
	InterventionPhysicalActivity   InterventionCategory = "physical_activity"
	InterventionSocialSupport      InterventionCategory = "social_support"
	InterventionProfessionalHelp   InterventionCategory = "professional_help"
	InterventionWorkEnvironment    InterventionCategory = "work_environment"
	InterventionRecovery           InterventionCategory = "recovery_strategies"
)

// Priority orders interventions inside a plan.
type Priority string

const (
	PriorityCritical Priority = "critical"
	PriorityHigh     Priority = "high"
	PriorityMedium   Priority = "medium"
	PriorityLow      Priority = "low"
)

// Rank returns the sort position of p; lower sorts first. Unknown priorities sort last.
func (p Priority) Rank() int {
	switch p {
	case PriorityCritical:
		return 0
	case PriorityHigh:
		return 1
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 3
	}
	return 99
}

// Timeframe is the horizon bucket of an intervention.
type Timeframe string

const (
	TimeframeImmediate  Timeframe = "immediate"
	TimeframeShortTerm  Timeframe = "short_term"
	TimeframeMediumTerm Timeframe = "medium_term"
	TimeframeLongTerm   Timeframe = "long_term"
)

// Timeframes lists the buckets in execution order.
var Timeframes = []Timeframe{
	TimeframeImmediate,
	TimeframeShortTerm,
	TimeframeMediumTerm,
	TimeframeLongTerm,
}

// Valid reports whether t is one of the four buckets.
func (t Timeframe) Valid() bool {
	switch t {
	case TimeframeImmediate, TimeframeShortTerm, TimeframeMediumTerm, TimeframeLongTerm:
		return true
	}
	return false
}
