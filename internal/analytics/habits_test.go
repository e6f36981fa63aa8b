package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"guidely/internal/model"
)

// testSnapshot builds a single-month snapshot where completed maps day-of-month
// to the habit ids checked off that day.
func testSnapshot(now time.Time, habitIDs []string, completed map[int][]string) *model.Snapshot {
	month := &model.MonthData{Days: map[int]*model.DayEntry{}}
	for _, id := range habitIDs {
		month.Habits = append(month.Habits, model.HabitRecord{ID: id, Name: "Habit " + id})
	}
	for day, ids := range completed {
		entry := &model.DayEntry{CompletedHabits: map[string]bool{}}
		for _, id := range ids {
			entry.CompletedHabits[id] = true
		}
		month.Days[day] = entry
	}
	return &model.Snapshot{
		Now:    now,
		Months: map[string]*model.MonthData{now.Format("2006-01"): month},
		Weeks:  map[string]*model.WeeklyData{},
	}
}

var testNow = time.Date(2026, time.August, 20, 12, 0, 0, 0, time.UTC)

func TestBuildHabitProfilesZeroElapsedDays(t *testing.T) {
	// A month container with habits but no tracked days at all.
	snap := testSnapshot(testNow, []string{"h1", "h2"}, nil)

	profiles := BuildHabitProfiles(snap)
	require.Len(t, profiles, 2)

	for _, p := range profiles {
		assert.Zero(t, p.CompletionRate)
		assert.Zero(t, p.AbandonmentRisk)
		assert.False(t, p.IsAutomatic)
	}
}

func TestBuildHabitProfilesEmptySnapshot(t *testing.T) {
	snap := &model.Snapshot{Now: testNow, Months: map[string]*model.MonthData{}}
	assert.Nil(t, BuildHabitProfiles(snap))
}

func TestCompletionRate(t *testing.T) {
	completed := map[int][]string{}
	// Done on 10 of the 20 elapsed days.
	for d := 1; d <= 10; d++ {
		completed[d] = []string{"h1"}
	}
	snap := testSnapshot(testNow, []string{"h1"}, completed)

	profiles := BuildHabitProfiles(snap)
	require.Len(t, profiles, 1)
	assert.InDelta(t, 50.0, profiles[0].CompletionRate, 0.01)
}

func TestCurrentStreakMonotonicUnderInjectedMisses(t *testing.T) {
	// Full completion on every elapsed day.
	base := map[int][]string{}
	for d := 1; d <= 20; d++ {
		base[d] = []string{"h1"}
	}

	previous := CurrentStreak(testSnapshot(testNow, []string{"h1"}, base))
	require.Greater(t, previous, 0)

	// Inject misses immediately before today, one day at a time. The streak
	// must never increase.
	for missDay := 19; missDay >= 15; missDay-- {
		base[missDay] = []string{}
		streak := CurrentStreak(testSnapshot(testNow, []string{"h1"}, base))
		assert.LessOrEqual(t, streak, previous, "injecting a miss on day %d must not grow the streak", missDay)
		previous = streak
	}
}

func TestCurrentStreakTodayInProgressDoesNotBreak(t *testing.T) {
	completed := map[int][]string{}
	for d := 15; d <= 19; d++ {
		completed[d] = []string{"h1"}
	}
	// No entry for today (day 20) — still counting yesterday's run.
	snap := testSnapshot(testNow, []string{"h1"}, completed)
	assert.Equal(t, 5, CurrentStreak(snap))

	// An incomplete entry for today must not break it either.
	completed[20] = []string{}
	snap = testSnapshot(testNow, []string{"h1"}, completed)
	assert.Equal(t, 5, CurrentStreak(snap))
}

func TestCurrentStreakMissedDayBreaks(t *testing.T) {
	completed := map[int][]string{
		17: {"h1"},
		18: {},
		19: {"h1"},
		20: {"h1"},
	}
	snap := testSnapshot(testNow, []string{"h1"}, completed)
	assert.Equal(t, 2, CurrentStreak(snap))
}

func TestTrendPositiveWhenRecentWeekStronger(t *testing.T) {
	completed := map[int][]string{}
	// Days 7-13 (previous window): nothing. Days 14-20 (recent): all done.
	for d := 14; d <= 20; d++ {
		completed[d] = []string{"h1"}
	}
	snap := testSnapshot(testNow, []string{"h1"}, completed)

	profiles := BuildHabitProfiles(snap)
	require.Len(t, profiles, 1)
	assert.Greater(t, profiles[0].Trend, 0.0)
}

func TestAbandonmentRiskMonotonicInDaysSince(t *testing.T) {
	risk3 := abandonmentRisk(50, 0, 3)
	risk6 := abandonmentRisk(50, 0, 6)
	risk10 := abandonmentRisk(50, 0, 10)
	assert.Less(t, risk3, risk6)
	assert.LessOrEqual(t, risk6, risk10)

	// Monotonic in incompleteness and negative trend as well.
	assert.Less(t, abandonmentRisk(80, 0, 0), abandonmentRisk(40, 0, 0))
	assert.Less(t, abandonmentRisk(50, 0, 0), abandonmentRisk(50, -30, 0))
}

func TestIsAutomaticRequiresRateAndConsistency(t *testing.T) {
	completed := map[int][]string{}
	for d := 1; d <= 20; d++ {
		completed[d] = []string{"h1"}
	}
	snap := testSnapshot(testNow, []string{"h1"}, completed)

	profiles := BuildHabitProfiles(snap)
	require.Len(t, profiles, 1)
	assert.True(t, profiles[0].IsAutomatic)
	assert.InDelta(t, 100.0, profiles[0].CompletionRate, 0.01)
}

func TestWeekdayExtremes(t *testing.T) {
	// 2026-08-03 is a Monday. Complete h1 on Mondays only, skip Sundays.
	completed := map[int][]string{
		3: {"h1"}, 10: {"h1"}, 17: {"h1"}, // Mondays
		9: {}, 16: {}, // Sundays
	}
	snap := testSnapshot(testNow, []string{"h1"}, completed)

	profiles := BuildHabitProfiles(snap)
	require.Len(t, profiles, 1)
	assert.Equal(t, 0, profiles[0].BestDayOfWeek, "Monday should be the best day")
	assert.Equal(t, 6, profiles[0].WorstDayOfWeek, "Sunday should be the worst day")
}
