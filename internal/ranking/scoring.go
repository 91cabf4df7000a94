// Package ranking provides functionality to rank metrics as causal factors of burnout risk.
package ranking

import (
	"fmt"
	"math"

	"github.com/jonathan/burnout-insights/internal/types"
)

// Direction says which side of a threshold is the bad side for a metric.
type Direction int

const (
	// LowerIsWorse flags values strictly below the threshold (sleep, HRV, focus).
	LowerIsWorse Direction = iota
	// HigherIsWorse flags values strictly above the threshold (stress, meetings, recovery).
	HigherIsWorse
)

// String returns the direction name.
func (d Direction) String() string {
	if d == HigherIsWorse {
		return "higher_is_worse"
	}
	return "lower_is_worse"
}

// ParseDirection converts a direction name back into a Direction.
func ParseDirection(name string) (Direction, error) {
	switch name {
	case "higher_is_worse":
		return HigherIsWorse, nil
	case "lower_is_worse":
		return LowerIsWorse, nil
	}
	return LowerIsWorse, fmt.Errorf("unknown direction %q", name)
}

// Impact cutoffs used to grade a cause.
const (
	highImpactCutoff   = 0.6
	mediumImpactCutoff = 0.3
)

// IsProblematic reports whether value sits on the bad side of threshold.
// Equality is never problematic.
func IsProblematic(value, threshold float64, dir Direction) bool {
	switch dir {
	case HigherIsWorse:
		return value > threshold
	default:
		return value < threshold
	}
}

// Impact returns the relative distance of value from threshold, capped at 1.
// A zero threshold yields 0 instead of dividing by zero.
func Impact(value, threshold float64, dir Direction) float64 {
	if threshold == 0 {
		return 0
	}
	var distance float64
	if dir == HigherIsWorse {
		distance = value - threshold
	} else {
		distance = threshold - value
	}
	return math.Min(math.Abs(distance/threshold), 1.0)
}

// severityForImpact grades a raw impact in [0,1].
func severityForImpact(impact float64) types.CauseSeverity {
	switch {
	case impact > highImpactCutoff:
		return types.CauseHigh
	case impact > mediumImpactCutoff:
		return types.CauseMedium
	default:
		return types.CauseLow
	}
}
