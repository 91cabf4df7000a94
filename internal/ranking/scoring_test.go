package ranking

import (
	"testing"

	"github.com/jonathan/burnout-insights/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsProblematic(t *testing.T) {
	tests := []struct {
		name      string
		value     float64
		threshold float64
		dir       Direction
		want      bool
	}{
		{"higher is worse above", 31, 30, HigherIsWorse, true},
		{"higher is worse equal", 30, 30, HigherIsWorse, false},
		{"higher is worse below", 10, 30, HigherIsWorse, false},
		{"lower is worse below", 60, 65, LowerIsWorse, true},
		{"lower is worse equal", 65, 65, LowerIsWorse, false},
		{"lower is worse above", 80, 65, LowerIsWorse, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsProblematic(tt.value, tt.threshold, tt.dir))
		})
	}
}

func TestImpact(t *testing.T) {
	tests := []struct {
		name      string
		value     float64
		threshold float64
		dir       Direction
		want      float64
	}{
		{"higher is worse partial", 40, 35, HigherIsWorse, 5.0 / 35.0},
		{"lower is worse partial", 60, 65, LowerIsWorse, 5.0 / 65.0},
		{"capped at one", 100, 30, HigherIsWorse, 1.0},
		{"lower is worse floor", 0, 3, LowerIsWorse, 1.0},
		{"zero threshold guarded", 10, 0, HigherIsWorse, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Impact(tt.value, tt.threshold, tt.dir), 1e-9)
		})
	}
}

func TestSeverityForImpact(t *testing.T) {
	assert.Equal(t, types.CauseHigh, severityForImpact(0.61))
	assert.Equal(t, types.CauseMedium, severityForImpact(0.6))
	assert.Equal(t, types.CauseMedium, severityForImpact(0.31))
	assert.Equal(t, types.CauseLow, severityForImpact(0.3))
	assert.Equal(t, types.CauseLow, severityForImpact(0))
}

func TestDirection_String(t *testing.T) {
	assert.Equal(t, "higher_is_worse", HigherIsWorse.String())
	assert.Equal(t, "lower_is_worse", LowerIsWorse.String())
}

func TestParseDirection(t *testing.T) {
	for _, d := range []Direction{HigherIsWorse, LowerIsWorse} {
		got, err := ParseDirection(d.String())
		require.NoError(t, err)
		assert.Equal(t, d, got)
	}

	_, err := ParseDirection("sideways")
	assert.Error(t, err)
}
