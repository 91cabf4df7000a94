// Package observability provides logging setup and formatted output utilities for the CLI.
package observability

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"

	"github.com/jonathan/burnout-insights/internal/db"
	"github.com/jonathan/burnout-insights/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 64
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

var (
	colorGreen  = lipgloss.Color("#10b981")
	colorYellow = lipgloss.Color("#f59e0b")
	colorOrange = lipgloss.Color("#f97316")
	colorRed    = lipgloss.Color("#ef4444")
	colorGray   = lipgloss.Color("#6b7280")
)

var (
	styleBadge = lipgloss.NewStyle().Bold(true)
	styleDim   = lipgloss.NewStyle().Foreground(colorGray)
)

// SeverityBadge renders a severity as a coloured, upper-case label.
func SeverityBadge(s types.Severity) string {
	color := colorGray
	switch s {
	case types.SeverityLow:
		color = colorGreen
	case types.SeverityMedium:
		color = colorYellow
	case types.SeverityHigh:
		color = colorOrange
	case types.SeverityCritical:
		color = colorRed
	}
	return styleBadge.Foreground(color).Render(strings.ToUpper(string(s)))
}

// healthStyle colours overall health and category statuses.
func healthStyle(status types.HealthStatus) lipgloss.Style {
	switch status {
	case types.HealthExcellent, types.HealthGood:
		return lipgloss.NewStyle().Foreground(colorGreen)
	case types.HealthFair:
		return lipgloss.NewStyle().Foreground(colorYellow)
	case types.HealthPoor:
		return lipgloss.NewStyle().Foreground(colorOrange)
	case types.HealthCritical:
		return lipgloss.NewStyle().Foreground(colorRed)
	}
	return styleDim
}

// metricStyle colours key metric statuses.
func metricStyle(status types.MetricStatus) lipgloss.Style {
	switch status {
	case types.MetricGood:
		return lipgloss.NewStyle().Foreground(colorGreen)
	case types.MetricWarning:
		return lipgloss.NewStyle().Foreground(colorYellow)
	case types.MetricBad:
		return lipgloss.NewStyle().Foreground(colorRed)
	}
	return styleDim
}

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// truncate shortens s to at most n characters, cutting on rune boundaries.
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	if n <= 3 {
		return string([]rune(s)[:n])
	}
	return string([]rune(s)[:n-3]) + "..."
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	inner := boxWidth - 4
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %s │\n", pad(title, inner))
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %s │\n", pad(line, inner))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// pad right-pads line to width visible cells, truncating plain text that is too long.
func pad(line string, width int) string {
	w := lipgloss.Width(line)
	if w > width {
		if !strings.Contains(line, "\x1b") {
			return truncate(line, width)
		}
		return line
	}
	return line + strings.Repeat(" ", width-w)
}

// PrintAlert outputs an alert, or a short notice when none was raised.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintAlert(alert *types.Alert) {
	if alert == nil {
		fmt.Fprintf(p.out, "┌%s┐\n", strings.Repeat("─", boxWidth-2))
		fmt.Fprintf(p.out, "│ %s │\n", pad("✅ NO ALERT RAISED", boxWidth-4))
		fmt.Fprintf(p.out, "└%s┘\n", strings.Repeat("─", boxWidth-2))
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("ID:        %s\n", alert.AlertID))
	sb.WriteString(fmt.Sprintf("Severity:  %s (%.1f%%)\n", SeverityBadge(alert.Severity), alert.Probability*100))
	tags := make([]string, 0, len(alert.AlertTypes))
	for _, t := range alert.AlertTypes {
		tags = append(tags, string(t))
	}
	sb.WriteString(fmt.Sprintf("Types:     %s\n", strings.Join(tags, ", ")))
	sb.WriteString(fmt.Sprintf("Escalate:  intervention=%t manager=%t\n", alert.RequiresIntervention, alert.NotifyManager))
	sb.WriteString("\n")
	sb.WriteString(truncate(alert.Message, boxWidth-4))
	sb.WriteString("\n")

	if len(alert.ContributingFactors) > 0 {
		sb.WriteString("\nContributing factors:\n")
		for _, f := range alert.ContributingFactors {
			sb.WriteString(fmt.Sprintf("  • %s: %s [%s]\n", f.Name, f.Value, f.SeverityTier))
		}
	}

	if len(alert.ImmediateActions) > 0 {
		sb.WriteString("\nImmediate actions:\n")
		count := min(len(alert.ImmediateActions), maxItemsToShow)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  • %s\n", truncate(alert.ImmediateActions[i], boxWidth-8)))
		}
		if len(alert.ImmediateActions) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(alert.ImmediateActions)-maxItemsToShow))
		}
	}

	p.printBox("BURNOUT ALERT", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintSummary outputs the headline dashboard readouts.
func (p *Printer) PrintSummary(summary *types.DashboardSummary) {
	if summary == nil {
		return
	}

	var sb strings.Builder
	o := summary.Overview
	sb.WriteString(fmt.Sprintf("Burnout level:  %s (%.1f%%)\n", o.BurnoutLevel, o.Probability*100))
	sb.WriteString(fmt.Sprintf("Health status:  %s\n", healthStyle(o.HealthStatus).Render(string(o.HealthStatus))))
	sb.WriteString(fmt.Sprintf("Risk category:  %s\n", o.RiskCategory))
	sb.WriteString("\n")

	sb.WriteString("Category scores:\n")
	for _, c := range types.Categories {
		score, ok := summary.CategoryScores[c]
		if !ok {
			continue
		}
		sb.WriteString(fmt.Sprintf("  %-14s %6.2f  %s\n", c, score.Score, healthStyle(score.Status).Render(string(score.Status))))
	}

	if len(summary.MainCauses) > 0 {
		sb.WriteString("\nMain causes:\n")
		for i, c := range summary.MainCauses {
			sb.WriteString(fmt.Sprintf("  #%d %s (impact %.2f, %s)\n", i+1, c.Cause, c.ImpactScore, c.Severity))
		}
	}

	if len(summary.KeyMetrics) > 0 {
		sb.WriteString("\nKey metrics:\n")
		for _, m := range summary.KeyMetrics {
			sb.WriteString(fmt.Sprintf("  %-22s %-12s %s\n", m.Name, m.Value, metricStyle(m.Status).Render(string(m.Status))))
		}
	}

	if summary.AlertsSummary != nil {
		sb.WriteString(fmt.Sprintf("\nAlerts: %d\n", summary.AlertsSummary.Total))
	}

	p.printBox("DASHBOARD SUMMARY", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintPlan outputs the intervention plan bucket by bucket.
func (p *Printer) PrintPlan(plan *types.InterventionPlan) {
	if plan == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Severity:       %s\n", SeverityBadge(plan.Severity)))
	sb.WriteString(fmt.Sprintf("Interventions:  %d\n", plan.TotalInterventions))
	sb.WriteString(fmt.Sprintf("Follow-up:      %s, %s\n", plan.FollowUpRecommendations.Frequency, plan.FollowUpRecommendations.Duration))
	sb.WriteString(fmt.Sprintf("Expected:       %s in %s\n", plan.ExpectedOutcomes.ExpectedBurnoutReduction, plan.ExpectedOutcomes.Timeframe))

	for _, tf := range types.Timeframes {
		items := plan.InterventionsByTimeframe[tf]
		if len(items) == 0 {
			continue
		}
		sb.WriteString(fmt.Sprintf("\n%s:\n", tf))
		count := min(len(items), maxItemsToShow)
		for i := 0; i < count; i++ {
			iv := items[i]
			sb.WriteString(fmt.Sprintf("  • [%s] %s (%s)\n", iv.ID, truncate(iv.Title, 34), iv.Priority))
		}
		if len(items) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(items)-maxItemsToShow))
		}
	}

	p.printBox("INTERVENTION PLAN", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintAnalysis outputs every artifact of an analysis.
func (p *Printer) PrintAnalysis(analysis *types.Analysis) {
	if analysis == nil {
		return
	}
	p.PrintAlert(analysis.Alert)
	p.PrintSummary(analysis.Summary)
	p.PrintPlan(analysis.Interventions)
}

// PrintRecords outputs a table of stored analyses.
func (p *Printer) PrintRecords(records []db.Record) {
	if len(records) == 0 {
		p.printBox("STORED ANALYSES", "No analyses found")
		return
	}

	var sb strings.Builder
	for i, rec := range records {
		severity := styleDim.Render("none")
		if rec.AlertSeverity != "" {
			severity = SeverityBadge(types.Severity(rec.AlertSeverity))
		}
		sb.WriteString(fmt.Sprintf("%s  user %d\n", rec.CreatedAt.Format("2006-01-02 15:04:05"), rec.UserID))
		sb.WriteString(fmt.Sprintf("  p=%.3f  level=%s  alert=%s\n", rec.Probability, rec.BurnoutLevel, severity))
		sb.WriteString(fmt.Sprintf("  %s\n", styleDim.Render(rec.ID.String())))
		if i < len(records)-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox(fmt.Sprintf("STORED ANALYSES (%d)", len(records)), sb.String())
}
