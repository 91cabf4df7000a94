// Package schemas embeds the JSON Schemas describing every artifact the engines produce.
package schemas

import "embed"

// Schema file names.
const (
	Alert            = "alert.schema.json"
	DashboardSummary = "dashboard_summary.schema.json"
	InterventionPlan = "intervention_plan.schema.json"
	Analysis         = "analysis.schema.json"
)

// Files holds the schema documents.
//
//go:embed *.schema.json
var Files embed.FS
