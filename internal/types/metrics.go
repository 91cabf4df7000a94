// Package types provides type definitions for structured data used throughout the burnout-insights system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import "math"

// MetricKey names one entry of the metric vocabulary shared with the metrics provider.
type MetricKey string

const (
	MetricTimeToRecover              MetricKey = "time_to_recover"
	MetricMedianHRV                  MetricKey = "median_hrv"
	MetricAvgPulse                   MetricKey = "avg_pulse"
	MetricSleepScore                 MetricKey = "sleep_score"
	MetricEDAPeaks                   MetricKey = "eda_peaks"
	MetricTimeToRecoverHRV           MetricKey = "time_to_recover_hrv"
	MetricHighStressPrevalencePerc   MetricKey = "high_stress_prevalence_perc"
	MetricHighStressPrevalence       MetricKey = "high_stress_prevalence"
	MetricWeeklyHoursInMeetings      MetricKey = "weekly_hours_in_meetings"
	MetricTimeOnFocusBlocks          MetricKey = "time_on_focus_blocks"
	MetricAbsenteeismDays            MetricKey = "absenteesim_days" // upstream spelling
	MetricNPSScore                   MetricKey = "nps_score"
	MetricInterventionAcceptanceRate MetricKey = "intervention_acceptance_rate"
)

// MetricKeys lists the vocabulary in a stable order.
var MetricKeys = []MetricKey{
	MetricTimeToRecover,
	MetricMedianHRV,
	MetricAvgPulse,
	MetricSleepScore,
	MetricEDAPeaks,
	MetricTimeToRecoverHRV,
	MetricHighStressPrevalencePerc,
	MetricHighStressPrevalence,
	MetricWeeklyHoursInMeetings,
	MetricTimeOnFocusBlocks,
	MetricAbsenteeismDays,
	MetricNPSScore,
	MetricInterventionAcceptanceRate,
}

// metricDefaults is used whenever a key is absent from a snapshot.
var metricDefaults = map[MetricKey]float64{
	MetricTimeToRecover:              30,
	MetricMedianHRV:                  44,
	MetricAvgPulse:                   72,
	MetricSleepScore:                 75,
	MetricEDAPeaks:                   14,
	MetricTimeToRecoverHRV:           30,
	MetricHighStressPrevalencePerc:   20,
	MetricHighStressPrevalence:       0.2,
	MetricWeeklyHoursInMeetings:      20,
	MetricTimeOnFocusBlocks:          4,
	MetricAbsenteeismDays:            0.5,
	MetricNPSScore:                   7.5,
	MetricInterventionAcceptanceRate: 0.5,
}

// DefaultMetricValue returns the documented fallback for key.
// The second return value is false for keys outside the vocabulary.
func DefaultMetricValue(key MetricKey) (float64, bool) {
	v, ok := metricDefaults[key]
	return v, ok
}

// MetricSnapshot maps metric names to their values for a single person.
// A snapshot is built once per request and only read afterwards.
type MetricSnapshot map[string]float64

// Get returns the value stored under key, falling back to the default table.
// Keys with no default resolve to 0. NaN values are treated as missing.
func (m MetricSnapshot) Get(key MetricKey) float64 {
	if v, ok := m[string(key)]; ok && !math.IsNaN(v) {
		return v
	}
	v, _ := DefaultMetricValue(key)
	return v
}

// Has reports whether key was supplied by the caller.
func (m MetricSnapshot) Has(key MetricKey) bool {
	_, ok := m[string(key)]
	return ok
}

// Resolved returns a copy containing every vocabulary key, defaults included.
// Keys outside the vocabulary are carried over unchanged.
func (m MetricSnapshot) Resolved() MetricSnapshot {
	out := make(MetricSnapshot, len(MetricKeys)+len(m))
	for k, v := range m {
		out[k] = v
	}
	for _, key := range MetricKeys {
		out[string(key)] = m.Get(key)
	}
	return out
}
