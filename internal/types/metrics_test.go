package types

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultMetricValue(t *testing.T) {
	for _, key := range MetricKeys {
		_, ok := DefaultMetricValue(key)
		assert.True(t, ok, "missing default for %s", key)
	}

	v, ok := DefaultMetricValue(MetricSleepScore)
	assert.True(t, ok)
	assert.Equal(t, 75.0, v)

	_, ok = DefaultMetricValue("step_count")
	assert.False(t, ok)
}

func TestMetricSnapshot_Get(t *testing.T) {
	m := MetricSnapshot{
		"sleep_score": 40,
		"median_hrv":  math.NaN(),
	}

	assert.Equal(t, 40.0, m.Get(MetricSleepScore))
	assert.Equal(t, 44.0, m.Get(MetricMedianHRV), "NaN falls back to the default")
	assert.Equal(t, 20.0, m.Get(MetricWeeklyHoursInMeetings))
	assert.Equal(t, 0.0, m.Get("step_count"))

	var empty MetricSnapshot
	assert.Equal(t, 72.0, empty.Get(MetricAvgPulse))
}

func TestMetricSnapshot_Has(t *testing.T) {
	m := MetricSnapshot{"sleep_score": 0}
	assert.True(t, m.Has(MetricSleepScore))
	assert.False(t, m.Has(MetricAvgPulse))
}

func TestMetricSnapshot_Resolved(t *testing.T) {
	m := MetricSnapshot{"sleep_score": 40, "step_count": 9000}

	out := m.Resolved()
	assert.Len(t, out, len(MetricKeys)+1)
	assert.Equal(t, 40.0, out["sleep_score"])
	assert.Equal(t, 9000.0, out["step_count"])
	assert.Equal(t, 0.5, out[string(MetricAbsenteeismDays)])

	_, mutated := m["avg_pulse"]
	assert.False(t, mutated, "Resolved must not modify the receiver")
}
