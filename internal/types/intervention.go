//nolint:revive // types is a standard Go package name pattern
package types

// Intervention is one concrete, catalogued action proposed to a person.
type Intervention struct {
	ID              string               `json:"id"`
	Category        InterventionCategory `json:"category"`
	Priority        Priority             `json:"priority"`
	Timeframe       Timeframe            `json:"timeframe"`
	Title           string               `json:"title"`
	Description     string               `json:"description"`
	ActionSteps     []string             `json:"action_steps"`
	ExpectedBenefit string               `json:"expected_benefit"`
	Duration        string               `json:"duration"`
}

// Phase is one execution window of the action plan.
type Phase struct {
	Description     string         `json:"description"`
	Interventions   []Intervention `json:"interventions"`
	SuccessCriteria string         `json:"success_criteria"`
}

// ActionPlan bundles the four ordered phases.
type ActionPlan struct {
	Immediate  Phase `json:"phase_1_immediate"`
	ShortTerm  Phase `json:"phase_2_short_term"`
	MediumTerm Phase `json:"phase_3_medium_term"`
	LongTerm   Phase `json:"phase_4_long_term"`
}

// FollowUp describes how the plan should be monitored.
type FollowUp struct {
	Frequency            string   `json:"frequency"`
	Duration             string   `json:"duration"`
	MetricsToMonitor     []string `json:"metrics_to_monitor"`
	ReassessmentTriggers []string `json:"reassessment_triggers"`
}

// ExpectedOutcomes projects what the plan should achieve.
type ExpectedOutcomes struct {
	Timeframe                string   `json:"timeframe"`
	ExpectedBurnoutReduction string   `json:"expected_burnout_reduction"`
	KeyImprovements          []string `json:"key_improvements"`
	SuccessIndicators        []string `json:"success_indicators"`
}

// InterventionPlan is the phased, prioritised plan for one person.
type InterventionPlan struct {
	UserID                   int                          `json:"user_id"`
	GeneratedAt              string                       `json:"generated_at"`
	Severity                 Severity                     `json:"severity"`
	TotalInterventions       int                          `json:"total_interventions"`
	InterventionsByTimeframe map[Timeframe][]Intervention `json:"interventions_by_timeframe"`
	ActionPlan               ActionPlan                   `json:"action_plan"`
	FollowUpRecommendations  FollowUp                     `json:"follow_up_recommendations"`
	ExpectedOutcomes         ExpectedOutcomes             `json:"expected_outcomes"`
}

// IDs returns the ids of every intervention in the plan, bucket by bucket.
func (p *InterventionPlan) IDs() []string {
	if p == nil {
		return nil
	}
	var ids []string
	for _, tf := range Timeframes {
		for _, iv := range p.InterventionsByTimeframe[tf] {
			ids = append(ids, iv.ID)
		}
	}
	return ids
}
