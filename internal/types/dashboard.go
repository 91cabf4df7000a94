//nolint:revive // types is a standard Go package name pattern
package types

// CausalFactor is a metric ranked as a driver of burnout risk.
type CausalFactor struct {
	Cause        string        `json:"cause"`
	Metric       MetricKey     `json:"metric,omitempty"`
	ImpactScore  float64       `json:"impact_score"`
	CurrentValue float64       `json:"current_value"`
	Threshold    float64       `json:"threshold"`
	Severity     CauseSeverity `json:"severity"`
}

// KeyMetric is one of the six fixed readouts on the dashboard.
type KeyMetric struct {
	Name        string       `json:"name"`
	Value       string       `json:"value"`
	Status      MetricStatus `json:"status"`
	Description string       `json:"description"`
}

// CategoryScore is a 0-100 composite score for one category.
type CategoryScore struct {
	Category    Category     `json:"category"`
	Score       float64      `json:"score"`
	Status      HealthStatus `json:"status"`
	Description string       `json:"description"`
}

// Overview is the headline block of the dashboard.
type Overview struct {
	BurnoutLevel BurnoutLevel `json:"burnout_level"`
	Probability  float64      `json:"probability"`
	HealthStatus HealthStatus `json:"health_status"`
	RiskCategory string       `json:"risk_category"`
}

// ActiveAlert is the projection of an alert listed in the alerts summary.
type ActiveAlert struct {
	AlertID  string   `json:"alert_id"`
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
}

// AlertsSummary tallies the alerts passed to the dashboard.
type AlertsSummary struct {
	Total        int              `json:"total"`
	BySeverity   map[Severity]int `json:"by_severity"`
	ActiveAlerts []ActiveAlert    `json:"active_alerts"`
}

// TrendUnavailable marks a trend direction that cannot be computed without history.
const TrendUnavailable = "insufficient_data"

// Trends is a placeholder: no historical data source feeds the engines.
type Trends struct {
	BurnoutRisk  string `json:"burnout_risk"`
	StressLevels string `json:"stress_levels"`
	SleepQuality string `json:"sleep_quality"`
	Workload     string `json:"workload"`
	Note         string `json:"note"`
}

// MetricsDetails groups the raw metric values shown on the dashboard.
type MetricsDetails struct {
	Physiological map[MetricKey]float64 `json:"physiological"`
	Cognitive     map[MetricKey]float64 `json:"cognitive"`
	Behavioral    map[MetricKey]float64 `json:"behavioral"`
}

// DashboardSummary is the multi-category summary of one person's state.
type DashboardSummary struct {
	UserID          int                        `json:"user_id"`
	GeneratedAt     string                     `json:"generated_at"`
	Overview        Overview                   `json:"overview"`
	KeyMetrics      []KeyMetric                `json:"key_metrics"`
	CategoryScores  map[Category]CategoryScore `json:"category_scores"`
	MainCauses      []CausalFactor             `json:"main_causes"`
	Trends          Trends                     `json:"trends"`
	AlertsSummary   *AlertsSummary             `json:"alerts_summary"`
	Recommendations []string                   `json:"recommendations"`
	MetricsDetails  MetricsDetails             `json:"metrics_details"`
}
