package interpret

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInterpretGymTomorrowRoundTrip(t *testing.T) {
	schedule, task := Interpret("Gym workout tomorrow at 7am", scheduleNow)

	require.NotNil(t, schedule.Date)
	assert.Equal(t, "2026-08-24", schedule.FormattedDate)
	assert.Equal(t, "07:00", schedule.FormattedTime)
	assert.Equal(t, "Gym workout", schedule.CleanedText)

	assert.Equal(t, CategoryFitness, task.Category)
	assert.Equal(t, PriorityMedium, task.Priority, "tomorrow bumps to medium")
	assert.Equal(t, 45, task.EstimatedMinutes, "fitness default")
	assert.Contains(t, task.Tags, "gym")
	assert.Greater(t, task.Confidence, 50.0)
	assert.NotEmpty(t, task.Suggestion)
}

func TestInterpretNonsenseDegradesGracefully(t *testing.T) {
	schedule, task := Interpret("xyzzy", scheduleNow)

	assert.Nil(t, schedule.Date)
	assert.Equal(t, CategoryOther, task.Category)
	assert.Equal(t, PriorityMedium, task.Priority)
	assert.Equal(t, 30, task.EstimatedMinutes)
	assert.LessOrEqual(t, task.Confidence, 50.0)
}

func TestClassifyTieBreakPrefersEarlierCategory(t *testing.T) {
	// "meeting" (work) and "gym" (fitness) tie at one hit each; work is
	// declared first.
	cat, hits := classify("meeting then gym")
	assert.Equal(t, CategoryWork, cat)
	assert.Equal(t, 1, hits)
}

func TestClassifyMostHitsWins(t *testing.T) {
	// Two fitness hits beat one work hit.
	cat, hits := classify("gym workout before the meeting")
	assert.Equal(t, CategoryFitness, cat)
	assert.Equal(t, 2, hits)
}

func TestCategorize(t *testing.T) {
	tests := []struct {
		text string
		want Category
	}{
		{"file taxes", CategoryAdmin},
		{"morning run", CategoryFitness},
		{"dinner with friends", CategorySocial},
		{"client presentation", CategoryWork},
		{"buy groceries", CategoryErrand},
		{"meditate for 10 minutes", CategoryWellness},
		{"practice piano music", CategoryCreative},
		{"zzz", CategoryOther},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Categorize(tt.text), "text %q", tt.text)
	}
}

func TestPriorityFromUrgencyWords(t *testing.T) {
	_, task := Interpret("urgent: renew passport", scheduleNow)
	assert.Equal(t, PriorityHigh, task.Priority)

	_, task = Interpret("clean the garage someday", scheduleNow)
	assert.Equal(t, PriorityLow, task.Priority)
}

func TestPriorityFromDeadlineProximity(t *testing.T) {
	_, task := Interpret("buy groceries today", scheduleNow)
	assert.Equal(t, PriorityHigh, task.Priority)

	_, task = Interpret("buy groceries tomorrow", scheduleNow)
	assert.Equal(t, PriorityMedium, task.Priority)
}

func TestExplicitDurationOverridesDefault(t *testing.T) {
	_, task := Interpret("gym session for 30 minutes", scheduleNow)
	assert.Equal(t, 30, task.EstimatedMinutes)

	_, task = Interpret("write for 2 hours", scheduleNow)
	assert.Equal(t, 120, task.EstimatedMinutes)

	_, task = Interpret("write for 1.5 hours", scheduleNow)
	assert.Equal(t, 90, task.EstimatedMinutes)
}

func TestTagsCappedAtThree(t *testing.T) {
	_, task := Interpret("gym run swim yoga bike workout", scheduleNow)
	assert.Len(t, task.Tags, 3)
}

func TestConfidenceBounds(t *testing.T) {
	_, strong := Interpret("urgent gym workout tomorrow at 7am for 45 minutes", scheduleNow)
	_, weak := Interpret("xyzzy", scheduleNow)

	assert.Greater(t, strong.Confidence, weak.Confidence)
	assert.LessOrEqual(t, strong.Confidence, 100.0)
	assert.GreaterOrEqual(t, weak.Confidence, 0.0)
}
