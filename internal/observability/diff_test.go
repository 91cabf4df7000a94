package observability

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiffAnalyses_IgnoresVolatileFields(t *testing.T) {
	a := []byte(`{"user_id": 1, "generated_at": "2026-01-01T00:00:00Z", "alert": {"alert_id": "ALERT-1-1", "timestamp": "x", "severity": "high"}}`)
	b := []byte(`{"generated_at": "2026-02-02T00:00:00Z", "user_id": 1, "alert": {"alert_id": "ALERT-1-2", "timestamp": "y", "severity": "high"}}`)

	diff, err := DiffAnalyses("a.json", a, "b.json", b)
	require.NoError(t, err)
	assert.Empty(t, diff)
}

func TestDiffAnalyses_ReportsChanges(t *testing.T) {
	a := []byte(`{"user_id": 1, "summary": {"main_causes": [{"cause": "High Work Stress"}]}, "alert": {"severity": "high"}}`)
	b := []byte(`{"user_id": 1, "summary": {"main_causes": [{"cause": "Poor Sleep Quality"}]}, "alert": {"severity": "critical"}}`)

	diff, err := DiffAnalyses("before.json", a, "after.json", b)
	require.NoError(t, err)

	assert.Contains(t, diff, "--- before.json")
	assert.Contains(t, diff, "+++ after.json")
	assert.Contains(t, diff, `-    "severity": "high"`)
	assert.Contains(t, diff, `+    "severity": "critical"`)
	assert.Contains(t, diff, `+        "cause": "Poor Sleep Quality"`)
}

func TestDiffAnalyses_InvalidJSON(t *testing.T) {
	_, err := DiffAnalyses("a.json", []byte("{"), "b.json", []byte("{}"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "a.json")
}

func TestDiffValues(t *testing.T) {
	diff, err := DiffValues("a", map[string]int{"x": 1}, "b", map[string]int{"x": 2})
	require.NoError(t, err)
	assert.Contains(t, diff, `-  "x": 1`)
	assert.Contains(t, diff, `+  "x": 2`)
}
