// Package types provides type definitions for structured data used throughout the burnout-insights system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// Alert is the severity-classified burnout alert for one person.
type Alert struct {
	UserID               int         `json:"user_id"`
	AlertID              string      `json:"alert_id"`
	Severity             Severity    `json:"severity"`
	Probability          float64     `json:"probability"`
	Message              string      `json:"message"`
	AlertTypes           []AlertType `json:"alert_types"`
	ImmediateActions     []string    `json:"immediate_actions"`
	ContributingFactors  []Factor    `json:"contributing_factors"`
	RequiresIntervention bool        `json:"requires_intervention"`
	NotifyManager        bool        `json:"notify_manager"`
	Timestamp            string      `json:"timestamp"`
}

// Factor is a human-readable contributing factor shown alongside an alert.
type Factor struct {
	Name         string     `json:"name"`
	Value        string     `json:"value"`
	SeverityTier FactorTier `json:"severity_tier"`
}
