package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"guidely/internal/model"
)

func completionAt(id string, at time.Time) model.AttentionEvent {
	return model.AttentionEvent{ID: id, Type: model.EventTaskCompleted, OccurredAt: at}
}

func TestAnalyzeFocusEmptySnapshot(t *testing.T) {
	snap := &model.Snapshot{Now: testNow, Months: map[string]*model.MonthData{}}
	analysis := AnalyzeFocus(snap)

	assert.Equal(t, TimeOfDaySplit{}, analysis.TimeOfDaySplit)
	assert.Empty(t, analysis.PeakFocusWindows)
	assert.Equal(t, OptimalSlot{}, analysis.OptimalSlot)
	assert.Zero(t, analysis.AvgProductiveHours)
}

func TestTimeOfDaySplitSumsToHundred(t *testing.T) {
	snap := testSnapshot(testNow, nil, nil)
	day := time.Date(2026, time.August, 18, 0, 0, 0, 0, time.UTC)
	// 3 morning, 2 afternoon, 2 evening: raw percents 42/28/28 leave a
	// 2-point remainder that must land on the largest bucket.
	hours := []int{7, 8, 11, 13, 15, 18, 20}
	for i, h := range hours {
		snap.Events = append(snap.Events, completionAt(string(rune('a'+i)), day.Add(time.Duration(h)*time.Hour)))
	}

	analysis := AnalyzeFocus(snap)
	split := analysis.TimeOfDaySplit
	assert.Equal(t, 100, split.Morning+split.Afternoon+split.Evening)
	assert.Equal(t, 44, split.Morning)
	assert.Equal(t, 28, split.Afternoon)
	assert.Equal(t, 28, split.Evening)
}

func TestAnalyzeFocusIgnoresOffHoursEvents(t *testing.T) {
	snap := testSnapshot(testNow, nil, nil)
	day := time.Date(2026, time.August, 18, 0, 0, 0, 0, time.UTC)
	snap.Events = []model.AttentionEvent{
		completionAt("night", day.Add(2*time.Hour)),   // 02:00, outside all windows
		completionAt("late", day.Add(23*time.Hour)),   // 23:00, outside all windows
		completionAt("morning", day.Add(9*time.Hour)), // counts
	}

	analysis := AnalyzeFocus(snap)
	assert.Equal(t, 100, analysis.TimeOfDaySplit.Morning)
	assert.Equal(t, 0, analysis.TimeOfDaySplit.Afternoon)
	assert.Equal(t, 0, analysis.TimeOfDaySplit.Evening)
}

func TestPeakWindowsSortedByScore(t *testing.T) {
	snap := testSnapshot(testNow, nil, nil)
	day := time.Date(2026, time.August, 18, 0, 0, 0, 0, time.UTC)
	for i, h := range []int{18, 19, 20, 13, 7} { // evening-heavy
		snap.Events = append(snap.Events, completionAt(string(rune('a'+i)), day.Add(time.Duration(h)*time.Hour)))
	}

	analysis := AnalyzeFocus(snap)
	require.Len(t, analysis.PeakFocusWindows, 3)
	assert.Equal(t, "evening", analysis.PeakFocusWindows[0].Label)
	assert.GreaterOrEqual(t, analysis.PeakFocusWindows[0].Score, analysis.PeakFocusWindows[1].Score)
	assert.GreaterOrEqual(t, analysis.PeakFocusWindows[1].Score, analysis.PeakFocusWindows[2].Score)
}

func TestWeeklyHeatmapMondayFirst(t *testing.T) {
	// Perfect Mondays (Aug 3/10/17), nothing else tracked.
	completed := map[int][]string{
		3: {"h1"}, 10: {"h1"}, 17: {"h1"},
	}
	snap := testSnapshot(testNow, []string{"h1"}, completed)

	analysis := AnalyzeFocus(snap)
	assert.InDelta(t, 100.0, analysis.WeeklyFocusHeatmap[0], 0.01)
	for i := 1; i < 7; i++ {
		assert.Zero(t, analysis.WeeklyFocusHeatmap[i], "weekday index %d", i)
	}
}

func TestOptimalSlotFallsBackToWeekdayOnly(t *testing.T) {
	// Heatmap data but zero timestamped completions.
	completed := map[int][]string{3: {"h1"}, 10: {"h1"}}
	snap := testSnapshot(testNow, []string{"h1"}, completed)

	analysis := AnalyzeFocus(snap)
	assert.Equal(t, "Monday", analysis.OptimalSlot.Day)
	assert.Empty(t, analysis.OptimalSlot.Time)
	assert.Greater(t, analysis.OptimalSlot.Score, 0.0)
}

func TestOptimalSlotCombinesDayAndWindow(t *testing.T) {
	completed := map[int][]string{3: {"h1"}, 10: {"h1"}}
	snap := testSnapshot(testNow, []string{"h1"}, completed)
	day := time.Date(2026, time.August, 18, 0, 0, 0, 0, time.UTC)
	snap.Events = []model.AttentionEvent{
		completionAt("m1", day.Add(8*time.Hour)),
		completionAt("m2", day.Add(9*time.Hour)),
	}

	analysis := AnalyzeFocus(snap)
	assert.Equal(t, "Monday", analysis.OptimalSlot.Day)
	assert.Equal(t, "morning", analysis.OptimalSlot.Time)
	assert.InDelta(t, 100.0, analysis.OptimalSlot.Score, 0.01)
}

func TestAvgProductiveHours(t *testing.T) {
	snap := testSnapshot(testNow, nil, nil)
	d1 := time.Date(2026, time.August, 17, 0, 0, 0, 0, time.UTC)
	d2 := time.Date(2026, time.August, 18, 0, 0, 0, 0, time.UTC)
	snap.Events = []model.AttentionEvent{
		completionAt("a", d1.Add(9*time.Hour)),
		completionAt("b", d1.Add(10*time.Hour)),
		completionAt("c", d1.Add(14*time.Hour)),
		completionAt("d", d2.Add(9*time.Hour)),
	}

	analysis := AnalyzeFocus(snap)
	// 4 completions over 2 active days.
	assert.InDelta(t, 2.0, analysis.AvgProductiveHours, 0.01)
}
