// Package schemas provides JSON Schema validation for the artifacts produced by the engines.
package schemas

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"

	schemafiles "github.com/jonathan/burnout-insights/schemas"
)

// Kind names a validatable artifact.
type Kind string

const (
	KindAlert            Kind = "alert"
	KindDashboardSummary Kind = "summary"
	KindInterventionPlan Kind = "interventions"
	KindAnalysis         Kind = "analysis"
)

var schemaFiles = map[Kind]string{
	KindAlert:            schemafiles.Alert,
	KindDashboardSummary: schemafiles.DashboardSummary,
	KindInterventionPlan: schemafiles.InterventionPlan,
	KindAnalysis:         schemafiles.Analysis,
}

// ParseKind converts a user supplied name into a Kind.
func ParseKind(name string) (Kind, error) {
	kind := Kind(strings.ToLower(strings.TrimSpace(name)))
	if kind == "dashboard" {
		kind = KindDashboardSummary
	}
	if _, ok := schemaFiles[kind]; !ok {
		return "", fmt.Errorf("unknown artifact kind %q", name)
	}
	return kind, nil
}

// ValidationError represents a schema validation error with field paths
type ValidationError struct {
	Errors []FieldError
}

// FieldError represents a single validation error at a specific field
type FieldError struct {
	Field   string
	Message string
}

// SchemaLoadError represents errors loading or parsing the schema itself
type SchemaLoadError struct {
	Path    string
	Message string
	Cause   error
}

func (e *SchemaLoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("failed to load schema %s: %s: %v", e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("failed to load schema %s: %s", e.Path, e.Message)
}

func (e *SchemaLoadError) Unwrap() error {
	return e.Cause
}

func (ve *ValidationError) Error() string {
	var sb strings.Builder
	sb.WriteString("validation failed:\n")
	for i, err := range ve.Errors {
		sb.WriteString(fmt.Sprintf("  %d. %s: %s\n", i+1, err.Field, err.Message))
	}
	return sb.String()
}

var (
	compiledMu sync.Mutex
	compiled   = map[Kind]*gojsonschema.Schema{}
)

// schemaFor compiles the embedded schema for kind once and caches it.
func schemaFor(kind Kind) (*gojsonschema.Schema, error) {
	file, ok := schemaFiles[kind]
	if !ok {
		return nil, fmt.Errorf("unknown artifact kind %q", kind)
	}

	compiledMu.Lock()
	defer compiledMu.Unlock()
	if s, ok := compiled[kind]; ok {
		return s, nil
	}

	data, err := schemafiles.Files.ReadFile(file)
	if err != nil {
		return nil, &SchemaLoadError{Path: file, Message: "schema not embedded", Cause: err}
	}
	s, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(data))
	if err != nil {
		return nil, &SchemaLoadError{Path: file, Message: "schema validation failed during load", Cause: err}
	}
	compiled[kind] = s
	return s, nil
}

// ValidateArtifact marshals v and validates it against the schema for kind.
// Analyses also have their nested alert, summary and plan validated.
func ValidateArtifact(kind Kind, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", kind, err)
	}
	return ValidateBytes(kind, data)
}

// ValidateBytes validates a JSON document against the schema for kind.
func ValidateBytes(kind Kind, data []byte) error {
	if err := validateDocument(kind, "", data); err != nil {
		return err
	}
	if kind != KindAnalysis {
		return nil
	}

	var envelope struct {
		Alert         json.RawMessage `json:"alert"`
		Summary       json.RawMessage `json:"summary"`
		Interventions json.RawMessage `json:"interventions"`
	}
	if err := json.Unmarshal(data, &envelope); err != nil {
		return fmt.Errorf("failed to decode analysis: %w", err)
	}

	var all []FieldError
	nested := []struct {
		kind   Kind
		prefix string
		raw    json.RawMessage
	}{
		{KindAlert, "alert", envelope.Alert},
		{KindDashboardSummary, "summary", envelope.Summary},
		{KindInterventionPlan, "interventions", envelope.Interventions},
	}
	for _, n := range nested {
		if len(n.raw) == 0 || string(n.raw) == "null" {
			continue
		}
		if err := validateDocument(n.kind, n.prefix, n.raw); err != nil {
			ve, ok := err.(*ValidationError)
			if !ok {
				return err
			}
			all = append(all, ve.Errors...)
		}
	}
	if len(all) > 0 {
		return &ValidationError{Errors: all}
	}
	return nil
}

func validateDocument(kind Kind, prefix string, data []byte) error {
	schema, err := schemaFor(kind)
	if err != nil {
		return err
	}

	result, err := schema.Validate(gojsonschema.NewBytesLoader(data))
	if err != nil {
		return fmt.Errorf("failed to validate %s: %w", kind, err)
	}
	if result.Valid() {
		return nil
	}

	// Build structured error
	validationErr := &ValidationError{
		Errors: make([]FieldError, 0, len(result.Errors())),
	}

	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		if prefix != "" {
			if field == "(root)" {
				field = prefix
			} else {
				field = prefix + "." + field
			}
		}
		validationErr.Errors = append(validationErr.Errors, FieldError{
			Field:   field,
			Message: desc.Description(),
		})
	}

	return validationErr
}

// ValidateFile validates a JSON file against the schema for kind.
func ValidateFile(kind Kind, jsonPath string) error {
	absPath, err := filepath.Abs(jsonPath)
	if err != nil {
		return fmt.Errorf("failed to resolve JSON path: %w", err)
	}

	data, err := os.ReadFile(absPath)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("JSON file not found: %s", absPath)
		}
		return fmt.Errorf("failed to read JSON file: %w", err)
	}
	return ValidateBytes(kind, data)
}
