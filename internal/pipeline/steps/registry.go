// Package steps provides step definitions and dependency validation
// for the burnout analysis pipeline.
package steps

import (
	"fmt"
	"sort"
)

// Step names.
const (
	StepGenerateAlert         = "generate_alert"
	StepGenerateSummary       = "generate_summary"
	StepGenerateInterventions = "generate_interventions"
	StepPersistAnalysis       = "persist_analysis"
)

// Step categories.
const (
	CategoryAlerting      = "alerting"
	CategoryDashboard     = "dashboard"
	CategoryInterventions = "interventions"
	CategoryStorage       = "storage"
)

// StepDefinition defines metadata for a pipeline step
type StepDefinition struct {
	Name         string
	Category     string
	Dependencies []string
	Optional     []string
}

// StepRegistry holds all step definitions
var StepRegistry = map[string]StepDefinition{
	StepGenerateAlert: {
		Name:         StepGenerateAlert,
		Category:     CategoryAlerting,
		Dependencies: []string{},
		Optional:     []string{},
	},
	StepGenerateSummary: {
		Name:         StepGenerateSummary,
		Category:     CategoryDashboard,
		Dependencies: []string{StepGenerateAlert},
		Optional:     []string{},
	},
	StepGenerateInterventions: {
		Name:         StepGenerateInterventions,
		Category:     CategoryInterventions,
		Dependencies: []string{StepGenerateAlert, StepGenerateSummary},
		Optional:     []string{},
	},
	StepPersistAnalysis: {
		Name:         StepPersistAnalysis,
		Category:     CategoryStorage,
		Dependencies: []string{StepGenerateAlert, StepGenerateSummary, StepGenerateInterventions},
		Optional:     []string{},
	},
}

// DependencyError represents a dependency validation error
type DependencyError struct {
	Step                string
	MissingDependencies []string
}

func (e *DependencyError) Error() string {
	return fmt.Sprintf("step %s: missing dependencies: %v", e.Step, e.MissingDependencies)
}

// CategoryOf returns the category of a registered step, or an empty string.
func CategoryOf(stepName string) string {
	return StepRegistry[stepName].Category
}

// ValidateDependencies checks that every required dependency of a step is in completed
func ValidateDependencies(completed map[string]bool, stepName string) error {
	def, ok := StepRegistry[stepName]
	if !ok {
		return fmt.Errorf("unknown step: %s", stepName)
	}

	var missing []string
	for _, dep := range def.Dependencies {
		if !completed[dep] {
			missing = append(missing, dep)
		}
	}

	if len(missing) > 0 {
		return &DependencyError{
			Step:                stepName,
			MissingDependencies: missing,
		}
	}

	return nil
}

// GetAvailableSteps returns the steps not yet completed whose dependencies are met, sorted by name
func GetAvailableSteps(completed map[string]bool) []string {
	var available []string
	for stepName := range StepRegistry {
		if completed[stepName] {
			continue
		}
		if err := ValidateDependencies(completed, stepName); err != nil {
			continue
		}
		available = append(available, stepName)
	}
	sort.Strings(available)
	return available
}

// GetBlockedSteps returns the steps whose dependencies are not met, sorted by name
func GetBlockedSteps(completed map[string]bool) []string {
	var blocked []string
	for stepName := range StepRegistry {
		if completed[stepName] {
			continue
		}
		if err := ValidateDependencies(completed, stepName); err != nil {
			blocked = append(blocked, stepName)
		}
	}
	sort.Strings(blocked)
	return blocked
}
