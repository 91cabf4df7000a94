// Package interventions provides the catalogue of interventions and the assembly of phased plans.
package interventions

import (
	"github.com/jonathan/burnout-insights/internal/types"
)

// Metric cutoffs that add or promote catalogue entries.
const (
	severeStressCutoff = 50.0
	poorSleepCutoff    = 60.0
	severeSleepCutoff  = 50.0
)

// generator returns the catalogue entries addressing one cause.
type generator func(metrics types.MetricSnapshot, severity types.Severity) []types.Intervention

// generators maps the metric behind a cause to its catalogue generator.
var generators = map[types.MetricKey]generator{
	types.MetricHighStressPrevalencePerc: stressInterventions,
	types.MetricSleepScore:               sleepInterventions,
	types.MetricWeeklyHoursInMeetings:    meetingInterventions,
	types.MetricTimeToRecover:            recoveryInterventions,
	types.MetricMedianHRV:                hrvInterventions,
	types.MetricTimeOnFocusBlocks:        focusInterventions,
}

func stressInterventions(metrics types.MetricSnapshot, severity types.Severity) []types.Intervention {
	priority := types.PriorityMedium
	if severity.Escalated() {
		priority = types.PriorityHigh
	}

	out := []types.Intervention{
		{
			ID:          "STRESS-001",
			Category:    types.InterventionStressManagement,
			Priority:    priority,
			Timeframe:   types.TimeframeImmediate,
			Title:       "Take conscious breathing breaks",
			Description: "Spend 3-5 minutes on deep breathing for every 2 hours of work",
			ActionSteps: []string{
				"Set reminders every 2 hours",
				"Practice 4-7-8 breathing (inhale 4s, hold 7s, exhale 8s)",
				"Complete 5 full cycles per session",
			},
			ExpectedBenefit: "15-20% reduction in perceived stress",
			Duration:        "15 minutes a day",
		},
		{
			ID:          "STRESS-002",
			Category:    types.InterventionStressManagement,
			Priority:    types.PriorityMedium,
			Timeframe:   types.TimeframeShortTerm,
			Title:       "Start a mindfulness practice",
			Description: "Structured 8-week mindfulness program",
			ActionSteps: []string{
				"Enroll in a corporate mindfulness program or app",
				"Practice 10-15 minutes every day",
				"Keep a progress journal",
			},
			ExpectedBenefit: "Better emotional regulation and lower stress",
			Duration:        "8 weeks",
		},
	}

	if metrics.Get(types.MetricHighStressPrevalencePerc) > severeStressCutoff {
		out = append(out, types.Intervention{
			ID:          "STRESS-003",
			Category:    types.InterventionProfessionalHelp,
			Priority:    types.PriorityHigh,
			Timeframe:   types.TimeframeImmediate,
			Title:       "Consult an organizational psychologist",
			Description: "Professional assessment and personalized coping strategies",
			ActionSteps: []string{
				"Contact HR or the occupational health department",
				"Book an initial assessment",
				"Follow the recommended treatment plan",
			},
			ExpectedBenefit: "Professional stress coping strategies",
			Duration:        "Depends on need",
		})
	}

	return out
}

func sleepInterventions(metrics types.MetricSnapshot, _ types.Severity) []types.Intervention {
	sleep := metrics.Get(types.MetricSleepScore)

	priority := types.PriorityMedium
	if sleep < poorSleepCutoff {
		priority = types.PriorityHigh
	}

	out := []types.Intervention{
		{
			ID:          "SLEEP-001",
			Category:    types.InterventionSleepImprovement,
			Priority:    priority,
			Timeframe:   types.TimeframeImmediate,
			Title:       "Establish a sleep hygiene routine",
			Description: "Adopt a consistent wind-down protocol before bed",
			ActionSteps: []string{
				"Keep fixed sleep and wake times, 7 days a week",
				"Turn off screens 60 minutes before bed",
				"Keep the bedroom between 18 and 20°C",
				"Avoid caffeine after 2 pm",
			},
			ExpectedBenefit: "20-30% better sleep quality within 2-3 weeks",
			Duration:        "Permanent habit",
		},
		{
			ID:          "SLEEP-002",
			Category:    types.InterventionSleepImprovement,
			Priority:    types.PriorityMedium,
			Timeframe:   types.TimeframeShortTerm,
			Title:       "Create an optimal sleep environment",
			Description: "Optimize the rest environment",
			ActionSteps: []string{
				"Install blackout curtains or use an eye mask",
				"Use earplugs or white noise",
				"Check mattress and pillow quality",
				"Limit non-sleep activities in bed",
			},
			ExpectedBenefit: "Shorter time to fall asleep",
			Duration:        "2-4 weeks to adapt",
		},
	}

	if sleep < severeSleepCutoff {
		out = append(out, types.Intervention{
			ID:          "SLEEP-003",
			Category:    types.InterventionProfessionalHelp,
			Priority:    types.PriorityHigh,
			Timeframe:   types.TimeframeShortTerm,
			Title:       "Medical sleep evaluation",
			Description: "Consult a sleep medicine specialist",
			ActionSteps: []string{
				"Book an appointment with a sleep specialist",
				"Keep a 2-week sleep diary",
				"Consider a sleep study (polysomnography) if needed",
			},
			ExpectedBenefit: "Diagnosis and treatment of possible sleep disorders",
			Duration:        "Depends on diagnosis",
		})
	}

	return out
}

func meetingInterventions(_ types.MetricSnapshot, _ types.Severity) []types.Intervention {
	return []types.Intervention{
		{
			ID:          "WORK-001",
			Category:    types.InterventionWorkloadAdjustment,
			Priority:    types.PriorityHigh,
			Timeframe:   types.TimeframeImmediate,
			Title:       "Audit and optimize meetings",
			Description: "Review and cut unnecessary or inefficient meetings",
			ActionSteps: []string{
				"Review last week's calendar",
				"Identify meetings that could be an email or a message",
				"Decline or delegate low-value meetings",
				"Adopt the rule: no meeting without a clear agenda",
			},
			ExpectedBenefit: "30-40% less time in meetings",
			Duration:        "1-2 weeks",
		},
		{
			ID:          "WORK-002",
			Category:    types.InterventionWorkloadAdjustment,
			Priority:    types.PriorityMedium,
			Timeframe:   types.TimeframeShortTerm,
			Title:       "Introduce uninterrupted work blocks",
			Description: "Protect time for deep work",
			ActionSteps: []string{
				"Block at least 2 hours a day for focused work",
				"Set a 'do not disturb' status during these blocks",
				"Share availability with the team",
				"Move meetings that clash with focus blocks",
			},
			ExpectedBenefit: "50% more productivity during focused work",
			Duration:        "Permanent",
		},
		{
			ID:          "WORK-003",
			Category:    types.InterventionWorkEnvironment,
			Priority:    types.PriorityMedium,
			Timeframe:   types.TimeframeMediumTerm,
			Title:       "Negotiate workload adjustments",
			Description: "Discuss redistributing responsibilities with a supervisor",
			ActionSteps: []string{
				"Document the current workload and time spent",
				"Schedule a meeting with the supervisor or manager",
				"Propose redistribution or delegation of tasks",
				"Set realistic and sustainable limits",
			},
			ExpectedBenefit: "A healthier workload balance",
			Duration:        "1-2 months for full implementation",
		},
	}
}

func recoveryInterventions(_ types.MetricSnapshot, _ types.Severity) []types.Intervention {
	return []types.Intervention{
		{
			ID:          "RECOV-001",
			Category:    types.InterventionRecovery,
			Priority:    types.PriorityHigh,
			Timeframe:   types.TimeframeImmediate,
			Title:       "Take micro-breaks",
			Description: "Short but frequent pauses during the workday",
			ActionSteps: []string{
				"Every 25-30 minutes take a 5 minute break (Pomodoro technique)",
				"Stand up, stretch and walk briefly",
				"Do neck and shoulder mobility exercises",
				"Rest your eyes: look at a distant point for 20 seconds",
			},
			ExpectedBenefit: "Less fatigue building up during the day",
			Duration:        "Permanent daily habit",
		},
		{
			ID:          "RECOV-002",
			Category:    types.InterventionRecovery,
			Priority:    types.PriorityMedium,
			Timeframe:   types.TimeframeShortTerm,
			Title:       "Set disconnection rituals",
			Description: "Create a clear boundary between work and personal life",
			ActionSteps: []string{
				"Define an end of the workday and respect it",
				"Create a closing ritual: close apps and tidy the desk",
				"Do not check work email after hours",
				"Do a transition activity (walk, exercise, hobby)",
			},
			ExpectedBenefit: "Better recovery outside work",
			Duration:        "2-3 weeks to build the habit",
		},
	}
}

func hrvInterventions(_ types.MetricSnapshot, _ types.Severity) []types.Intervention {
	return []types.Intervention{
		{
			ID:          "HRV-001",
			Category:    types.InterventionPhysicalActivity,
			Priority:    types.PriorityMedium,
			Timeframe:   types.TimeframeShortTerm,
			Title:       "Moderate cardiovascular exercise program",
			Description: "Regular physical activity to improve cardiovascular health",
			ActionSteps: []string{
				"Do 30 minutes of moderate aerobic exercise, 5 days a week",
				"Options: brisk walking, swimming, cycling, dancing",
				"Keep heart rate at 50-70% of maximum",
				"Increase intensity gradually",
			},
			ExpectedBenefit: "10-15% HRV improvement in 8-12 weeks",
			Duration:        "At least 8 weeks, ideally permanent",
		},
		{
			ID:          "HRV-002",
			Category:    types.InterventionStressManagement,
			Priority:    types.PriorityMedium,
			Timeframe:   types.TimeframeImmediate,
			Title:       "Cardiac coherence training",
			Description: "Breathing technique to improve HRV",
			ActionSteps: []string{
				"Breathe at 6 breaths per minute (5s in, 5s out)",
				"Do 3 sessions of 5 minutes a day",
				"Use a biofeedback app if available",
				"Practice in stressful moments",
			},
			ExpectedBenefit: "Immediate improvement in autonomic nervous system regulation",
			Duration:        "Permanent daily practice",
		},
	}
}

func focusInterventions(_ types.MetricSnapshot, _ types.Severity) []types.Intervention {
	return []types.Intervention{
		{
			ID:          "FOCUS-001",
			Category:    types.InterventionWorkloadAdjustment,
			Priority:    types.PriorityHigh,
			Timeframe:   types.TimeframeImmediate,
			Title:       "Schedule deep work blocks",
			Description: "Periods dedicated only to high-concentration tasks",
			ActionSteps: []string{
				"Block 2-4 hours a day in the calendar for deep work",
				"Remove every distraction: close email, chat and social media",
				"Use noise-cancelling headphones",
				"Work on the most important or complex tasks",
			},
			ExpectedBenefit: "Double the output of high-value work",
			Duration:        "Start now and keep it permanently",
		},
	}
}

// generalInterventions are added regardless of the causes.
func generalInterventions(severity types.Severity) []types.Intervention {
	var out []types.Intervention

	if severity.Escalated() {
		out = append(out, types.Intervention{
			ID:          "GEN-001",
			Category:    types.InterventionProfessionalHelp,
			Priority:    types.PriorityCritical,
			Timeframe:   types.TimeframeImmediate,
			Title:       "Professional mental health evaluation",
			Description: "Urgent consultation with a mental health professional",
			ActionSteps: []string{
				"Contact the employee assistance program (EAP) if available",
				"Book an appointment with a clinical or occupational psychologist",
				"Consider temporary medical leave if needed",
				"Tell the supervisor or HR that support is needed",
			},
			ExpectedBenefit: "Professional assessment and a personalized treatment plan",
			Duration:        "Immediate",
		})
	}

	out = append(out, types.Intervention{
		ID:          "GEN-002",
		Category:    types.InterventionSocialSupport,
		Priority:    types.PriorityMedium,
		Timeframe:   types.TimeframeShortTerm,
		Title:       "Strengthen the social support network",
		Description: "Connect with personal and professional support",
		ActionSteps: []string{
			"Identify trusted people at work and outside it",
			"Share concerns with supportive people",
			"Join support groups or communities",
			"Schedule regular time with friends and family",
		},
		ExpectedBenefit: "Better stress management and a sense of connection",
		Duration:        "Ongoing",
	})

	return out
}
