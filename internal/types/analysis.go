// Package types provides type definitions for structured data used throughout the burnout-insights system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"math"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// PredictionThreshold is the probability at or above which the binary prediction is 1.
const PredictionThreshold = 0.5

// BurnoutAssessment is the externally produced classifier output for one person.
type BurnoutAssessment struct {
	UserID      int     `json:"user_id"`
	Probability float64 `json:"probability"`
	Prediction  int     `json:"prediction"`
}

// AnalyzeRequest is the boundary input: a probability plus a metric snapshot.
// Out-of-range probabilities are accepted here and clamped by the engines.
type AnalyzeRequest struct {
	UserID             int            `json:"user_id" validate:"required,gt=0"`
	BurnoutProbability *float64       `json:"burnout_probability" validate:"required"`
	BurnoutPrediction  *int           `json:"burnout_prediction,omitempty" validate:"omitempty,oneof=0 1"`
	Metrics            MetricSnapshot `json:"metrics"`
}

// validate reports fields by their JSON names.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate validates the AnalyzeRequest using the validator.
func (r *AnalyzeRequest) Validate() error {
	return validate.Struct(r)
}

// Assessment converts the request into a BurnoutAssessment.
// A missing prediction is derived from the probability.
func (r *AnalyzeRequest) Assessment() BurnoutAssessment {
	var p float64
	if r.BurnoutProbability != nil {
		p = *r.BurnoutProbability
	}
	a := BurnoutAssessment{UserID: r.UserID, Probability: p}
	if r.BurnoutPrediction != nil {
		a.Prediction = *r.BurnoutPrediction
	} else if p >= PredictionThreshold {
		a.Prediction = 1
	}
	return a
}

// InterventionsRequest asks for a plan, optionally from externally supplied causes.
type InterventionsRequest struct {
	AnalyzeRequest
	MainCauses []CausalFactor `json:"main_causes,omitempty" validate:"omitempty,max=5,dive"`
}

// Validate validates the InterventionsRequest using the validator.
func (r *InterventionsRequest) Validate() error {
	return validate.Struct(r)
}

// Prediction is the headline prediction block of an analysis.
type Prediction struct {
	BurnoutProbability float64      `json:"burnout_probability"`
	BurnoutPrediction  int          `json:"burnout_prediction"`
	BurnoutLevel       BurnoutLevel `json:"burnout_level"`
	RiskCategory       string       `json:"risk_category"`
}

// Analysis is the full result of one pipeline run: the three artifacts plus context.
type Analysis struct {
	UserID        int               `json:"user_id"`
	GeneratedAt   string            `json:"generated_at"`
	Prediction    Prediction        `json:"prediction"`
	Alert         *Alert            `json:"alert"`
	Summary       *DashboardSummary `json:"summary"`
	Interventions *InterventionPlan `json:"interventions"`
	Metrics       MetricSnapshot    `json:"metrics"`
}

// ClampProbability forces p into [0,1]. NaN becomes 0.
// The boolean reports whether the input had to be changed.
func ClampProbability(p float64) (float64, bool) {
	switch {
	case math.IsNaN(p):
		return 0, true
	case p < 0:
		return 0, true
	case p > 1:
		return 1, true
	}
	return p, false
}

// Round rounds v to the given number of decimal places.
func Round(v float64, places int) float64 {
	pow := math.Pow(10, float64(places))
	return math.Round(v*pow) / pow
}
