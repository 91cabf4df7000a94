package observability

import (
	"encoding/json"
	"fmt"

	"github.com/pmezard/go-difflib/difflib"
)

// volatileFields change on every run and are blanked before diffing.
var volatileFields = map[string]bool{
	"alert_id":     true,
	"timestamp":    true,
	"generated_at": true,
	"run_id":       true,
}

// DiffAnalyses returns a unified diff of two JSON documents, ignoring fields that
// differ between otherwise identical runs. An empty string means no differences.
func DiffAnalyses(fromName string, from []byte, toName string, to []byte) (string, error) {
	a, err := normalizedJSON(from)
	if err != nil {
		return "", fmt.Errorf("parse %s: %w", fromName, err)
	}
	b, err := normalizedJSON(to)
	if err != nil {
		return "", fmt.Errorf("parse %s: %w", toName, err)
	}

	diff := difflib.UnifiedDiff{
		A:        difflib.SplitLines(a),
		B:        difflib.SplitLines(b),
		FromFile: fromName,
		ToFile:   toName,
		Context:  3,
	}
	text, err := difflib.GetUnifiedDiffString(diff)
	if err != nil {
		return "", fmt.Errorf("diff %s %s: %w", fromName, toName, err)
	}
	return text, nil
}

// DiffValues marshals two values and diffs them with DiffAnalyses.
func DiffValues(fromName string, from any, toName string, to any) (string, error) {
	a, err := json.Marshal(from)
	if err != nil {
		return "", fmt.Errorf("marshal %s: %w", fromName, err)
	}
	b, err := json.Marshal(to)
	if err != nil {
		return "", fmt.Errorf("marshal %s: %w", toName, err)
	}
	return DiffAnalyses(fromName, a, toName, b)
}

func normalizedJSON(data []byte) (string, error) {
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return "", err
	}
	blankVolatile(doc)
	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", err
	}
	return string(out) + "\n", nil
}

func blankVolatile(v any) {
	switch node := v.(type) {
	case map[string]any:
		for k, child := range node {
			if volatileFields[k] {
				node[k] = "<ignored>"
				continue
			}
			blankVolatile(child)
		}
	case []any:
		for _, child := range node {
			blankVolatile(child)
		}
	}
}
