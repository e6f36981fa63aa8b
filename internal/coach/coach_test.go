package coach

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"guidely/internal/analytics"
)

func sampleProfile() *analytics.UserBehaviorProfile {
	return &analytics.UserBehaviorProfile{
		HabitProfiles: []analytics.HabitProfile{
			{HabitID: "h1", HabitName: "Morning run", CompletionRate: 85, CurrentStreak: 5, IsAutomatic: true},
			{HabitID: "h2", HabitName: "Reading", CompletionRate: 30, AbandonmentRisk: 60},
		},
		AvgMood:              6.5,
		AvgMotivation:        6.0,
		MoodTrend:            -0.5,
		ProductivityScore:    72,
		WeeklyTaskRate:       80,
		PerfectDaysThisMonth: 4,
		PeakDays:             []string{"Monday"},
		Burnout: analytics.BurnoutAnalysis{
			RiskLevel: 40,
			Stage:     analytics.StageStrained,
			Trend:     "stable",
			Factors:   []analytics.BurnoutFactor{{Label: "Low motivation", Impact: 10, Detail: "Motivation scores are below your healthy baseline"}},
			RecoveryActions: []string{
				"Pick your three most important habits and pause the rest for a week",
			},
		},
		Procrastination: analytics.ProcrastinationAnalysis{
			Score:         24,
			RecoverySpeed: "fast",
			Triggers: []analytics.ProcrastinationTrigger{
				{Trigger: "admin", Description: "Paperwork-style tasks keep getting pushed off", Suggestion: "Pair admin work with a reward: coffee first, form second", Emoji: "📋"},
			},
		},
		Focus: analytics.FocusAnalysis{
			TimeOfDaySplit:     analytics.TimeOfDaySplit{Morning: 60, Afternoon: 30, Evening: 10},
			OptimalSlot:        analytics.OptimalSlot{Day: "Monday", Time: "morning", Score: 80},
			AvgProductiveHours: 2.5,
		},
		SuggestedRoutines: []analytics.SuggestedRoutine{
			{ID: "routine-weekly-planning", Name: "Weekly planning session", Emoji: "🗓", Category: "planning", Frequency: "weekly", Description: "20 minutes to lay the week out", Rationale: "This week has no planned tasks yet", Confidence: 70},
		},
	}
}

func TestRespondDeterministic(t *testing.T) {
	profile := sampleProfile()
	questions := []string{"am I burning out?", "why do I procrastinate", "overview", "how are my habits"}

	for _, q := range questions {
		first := Respond(q, profile)
		second := Respond(q, profile)
		assert.Equal(t, first, second, "question %q", q)
		assert.NotEmpty(t, first)
	}
}

func TestRespondRouting(t *testing.T) {
	profile := sampleProfile()

	tests := []struct {
		question string
		contains string
	}{
		{"Am I heading for burnout?", "burnout risk sits at 40/100"},
		{"I feel exhausted lately", "burnout risk"},
		{"Why do I keep putting off things?", "avoidance score is 24/100"},
		{"why do I skip admin tasks", "Paperwork-style tasks"},
		{"When is my best time to work?", "60% morning / 30% afternoon / 10% evening"},
		{"How are my habits doing?", "Morning run"},
		{"How is my mood trending?", "Average mood 6.5/10"},
		{"What routine should I add?", "Weekly planning session"},
		{"tell me something", "productivity score 72/100"},
	}

	for _, tt := range tests {
		answer := Respond(tt.question, profile)
		assert.Contains(t, answer, tt.contains, "question %q", tt.question)
	}
}

func TestRespondHabitsEmpty(t *testing.T) {
	profile := &analytics.UserBehaviorProfile{}
	answer := Respond("how are my habits", profile)
	assert.Contains(t, answer, "aren't tracking any habits")
}

func TestRespondFocusWithoutTimestampedData(t *testing.T) {
	profile := &analytics.UserBehaviorProfile{
		Focus: analytics.FocusAnalysis{OptimalSlot: analytics.OptimalSlot{Day: "Tuesday"}},
	}
	answer := Respond("when should I focus", profile)
	assert.Contains(t, answer, "Tuesday is your strongest day")
}

func TestRespondRoutinesEmpty(t *testing.T) {
	profile := &analytics.UserBehaviorProfile{}
	answer := Respond("suggest a routine", profile)
	assert.Contains(t, answer, "No routine suggestions right now")
}

func TestRespondHabitsAtRiskAnnotation(t *testing.T) {
	answer := Respond("habit check", sampleProfile())
	assert.Contains(t, answer, "automatic at this point")
	assert.Contains(t, answer, "needs a rescue")
}
