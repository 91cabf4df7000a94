package dashboard

import (
	"math"

	"github.com/jonathan/burnout-insights/internal/types"
)

var categoryDescriptions = map[types.Category]string{
	types.CategoryPhysiological: "Physical and biometric indicators",
	types.CategoryCognitive:     "Mental performance and capacity",
	types.CategoryWellbeing:     "General wellbeing and satisfaction",
	types.CategoryWorkload:      "Workload and work-life balance",
}

// normalize maps v/ref onto 0-100, capped at 100.
func normalize(v, ref float64) float64 {
	return math.Min(v/ref, 1) * 100
}

// inverted returns 100 minus v, floored at 0.
func inverted(v float64) float64 {
	return math.Max(0, 100-v)
}

func clampScore(score float64) float64 {
	if math.IsNaN(score) {
		return 0
	}
	return math.Max(0, math.Min(100, score))
}

func physiologicalScore(m types.MetricSnapshot) float64 {
	hrv := normalize(m.Get(types.MetricMedianHRV), 60)
	pulse := inverted(math.Abs(m.Get(types.MetricAvgPulse) - 70))
	sleep := m.Get(types.MetricSleepScore)
	recovery := inverted(normalize(m.Get(types.MetricTimeToRecover), 60))

	return hrv*0.3 + pulse*0.2 + sleep*0.3 + recovery*0.2
}

func cognitiveScore(m types.MetricSnapshot) float64 {
	focus := normalize(m.Get(types.MetricTimeOnFocusBlocks), 6)
	stress := inverted(m.Get(types.MetricHighStressPrevalencePerc))

	return focus*0.5 + stress*0.5
}

func wellbeingScore(m types.MetricSnapshot) float64 {
	nps := m.Get(types.MetricNPSScore) / 10 * 100
	acceptance := m.Get(types.MetricInterventionAcceptanceRate) * 100
	absenteeism := inverted(math.Min(m.Get(types.MetricAbsenteeismDays)*10, 100))

	return nps*0.4 + acceptance*0.3 + absenteeism*0.3
}

func workloadScore(m types.MetricSnapshot) float64 {
	meetings := inverted(normalize(m.Get(types.MetricWeeklyHoursInMeetings), 40))
	focus := normalize(m.Get(types.MetricTimeOnFocusBlocks), 5)
	stress := inverted(m.Get(types.MetricHighStressPrevalencePerc))

	return meetings*0.3 + focus*0.3 + stress*0.4
}

// CategoryScores computes the four composite scores, each clamped to [0,100].
func CategoryScores(metrics types.MetricSnapshot) map[types.Category]types.CategoryScore {
	raw := map[types.Category]float64{
		types.CategoryPhysiological: physiologicalScore(metrics),
		types.CategoryCognitive:     cognitiveScore(metrics),
		types.CategoryWellbeing:     wellbeingScore(metrics),
		types.CategoryWorkload:      workloadScore(metrics),
	}

	scores := make(map[types.Category]types.CategoryScore, len(raw))
	for _, category := range types.Categories {
		score := clampScore(raw[category])
		scores[category] = types.CategoryScore{
			Category:    category,
			Score:       types.Round(score, 2),
			Status:      ScoreStatus(score),
			Description: categoryDescriptions[category],
		}
	}
	return scores
}
