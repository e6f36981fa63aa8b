// Package briefing selects the single most avoided pending task and wraps it
// in the daily briefing payload: summary cards, a vibe tag and templated
// narration. All output is deterministic given the same snapshot — phrase
// selection keys off time-of-day and profile state, never randomness.
package briefing

import (
	"fmt"
	"math"
	"strings"

	"guidely/internal/analytics"
	"guidely/internal/model"
	"guidely/internal/timeutil"
)

// Avoidance scoring coefficients. Skips and deferrals weigh far more than
// plain age; age contribution is capped at two weeks.
const (
	avoidanceEventWeight = 2.2
	avoidanceAgeWeight   = 0.35
	avoidanceAgeCapDays  = 14
)

// Card tone thresholds.
const (
	toneGoodScoreMin     = 70
	toneWarningScoreMax  = 30
	toneWarningAgendaMin = 6
)

// MovedUpTask is the one task surfaced for "now", with its score breakdown.
type MovedUpTask struct {
	Task       model.WeeklyTask `json:"task"`
	Score      float64          `json:"score"`
	SkipCount  int              `json:"skip_count"`
	DeferCount int              `json:"defer_count"`
	AgeInDays  int              `json:"age_in_days"`
	Reason     string           `json:"reason"`
}

// Card is one summary tile with a tone classification.
type Card struct {
	Label string `json:"label"`
	Value string `json:"value"`
	Tone  string `json:"tone"` // good | neutral | warning
}

// DailyBriefing is the full presentation payload.
type DailyBriefing struct {
	MovedUp       *MovedUpTask `json:"moved_up,omitempty"`
	Cards         []Card       `json:"cards"`
	VibeTag       string       `json:"vibe_tag"`
	NarrationText string       `json:"narration_text"`
}

// Build assembles the daily briefing from today's progress, the pending tasks
// up to today's weekday, and the attention-event log.
func Build(snap *model.Snapshot) DailyBriefing {
	todayIdx := timeutil.DayIndex(snap.Now)
	pending := pendingTasks(snap.CurrentWeek(), todayIdx)

	score := todayScorePct(snap)
	streak := analytics.CurrentStreak(snap)

	b := DailyBriefing{
		MovedUp: mostAvoided(pending, snap.Events, todayIdx),
		Cards:   cards(score, len(pending), streak),
		VibeTag: vibeTag(streak, score, len(pending)),
	}
	b.NarrationText = narration(snap.Now.Hour(), score, streak, len(pending), b.MovedUp)
	return b
}

// mostAvoided scores every pending task and returns the maximum, or nil when
// nothing is pending. Earlier tasks win score ties so selection is stable.
func mostAvoided(pending []model.WeeklyTask, events []model.AttentionEvent, todayIdx int) *MovedUpTask {
	var best *MovedUpTask
	for _, task := range pending {
		skips, defers := interactionCounts(events, task.ID)
		age := todayIdx - task.DayIndex
		if age < 0 {
			age = 0
		}

		cappedAge := age
		if cappedAge > avoidanceAgeCapDays {
			cappedAge = avoidanceAgeCapDays
		}
		score := float64(skips+defers)*avoidanceEventWeight + float64(cappedAge)*avoidanceAgeWeight

		if best == nil || score > best.Score {
			best = &MovedUpTask{
				Task:       task,
				Score:      math.Round(score*100) / 100,
				SkipCount:  skips,
				DeferCount: defers,
				AgeInDays:  age,
			}
		}
	}
	if best != nil {
		best.Reason = avoidanceReason(best)
	}
	return best
}

// AvoidanceScore exposes the raw formula for tests and callers that rank
// without building the full briefing.
func AvoidanceScore(skipCount, deferCount, ageInDays int) float64 {
	if ageInDays < 0 {
		ageInDays = 0
	}
	if ageInDays > avoidanceAgeCapDays {
		ageInDays = avoidanceAgeCapDays
	}
	return float64(skipCount+deferCount)*avoidanceEventWeight + float64(ageInDays)*avoidanceAgeWeight
}

func interactionCounts(events []model.AttentionEvent, taskID string) (skips, defers int) {
	for _, ev := range events {
		if ev.TaskID != taskID {
			continue
		}
		switch ev.Type {
		case model.EventTaskSkipped:
			skips++
		case model.EventTaskDeferred:
			defers++
		}
	}
	return skips, defers
}

func avoidanceReason(t *MovedUpTask) string {
	switch {
	case t.SkipCount > 0 || t.DeferCount > 0:
		return fmt.Sprintf("You've pushed this off %d time(s) — it's not getting easier on its own", t.SkipCount+t.DeferCount)
	case t.AgeInDays > 0:
		return fmt.Sprintf("This has been waiting %d day(s). Oldest first", t.AgeInDays)
	default:
		return "A small win to start the day with"
	}
}

func pendingTasks(week *model.WeeklyData, todayIdx int) []model.WeeklyTask {
	if week == nil {
		return nil
	}
	var pending []model.WeeklyTask
	for _, task := range week.Tasks {
		if !task.Completed && task.DayIndex <= todayIdx {
			pending = append(pending, task)
		}
	}
	return pending
}

func todayScorePct(snap *model.Snapshot) int {
	month := snap.CurrentMonth()
	if month == nil || len(month.Habits) == 0 {
		return 0
	}
	entry := month.Days[snap.Now.Day()]
	done := 0
	for _, h := range month.Habits {
		if entry.Completed(h.ID) {
			done++
		}
	}
	return int(math.Round(float64(done) / float64(len(month.Habits)) * 100))
}

func cards(score, agenda, streak int) []Card {
	return []Card{
		{Label: "Today", Value: fmt.Sprintf("%d%%", score), Tone: scoreTone(score)},
		{Label: "Agenda", Value: fmt.Sprintf("%d open", agenda), Tone: agendaTone(agenda)},
		{Label: "Streak", Value: fmt.Sprintf("%d days", streak), Tone: streakTone(streak)},
	}
}

func scoreTone(score int) string {
	switch {
	case score >= toneGoodScoreMin:
		return "good"
	case score <= toneWarningScoreMax:
		return "warning"
	default:
		return "neutral"
	}
}

func agendaTone(agenda int) string {
	switch {
	case agenda == 0:
		return "good"
	case agenda >= toneWarningAgendaMin:
		return "warning"
	default:
		return "neutral"
	}
}

func streakTone(streak int) string {
	switch {
	case streak >= 7:
		return "good"
	case streak == 0:
		return "warning"
	default:
		return "neutral"
	}
}

// vibeTag picks one tag by fixed priority: streak first, then progress, then
// agenda size.
func vibeTag(streak, score, agenda int) string {
	switch {
	case streak >= 7:
		return "on fire"
	case score >= toneGoodScoreMin:
		return "cruising"
	case agenda >= toneWarningAgendaMin:
		return "swamped"
	case score <= toneWarningScoreMax:
		return "slow start"
	default:
		return "steady"
	}
}

// Phrase banks for narration. Fixed text; selection is keyed off time-of-day
// and profile state.
var (
	morningHooks = []string{
		"Morning. Here's the lay of the land.",
		"New day, clean slate.",
	}
	afternoonHooks = []string{
		"Midday check-in.",
		"Halfway through — here's where things stand.",
	}
	eveningHooks = []string{
		"Evening wrap-up.",
		"The day's winding down — quick status.",
	}
)

func narration(hour, score, streak, agenda int, movedUp *MovedUpTask) string {
	var parts []string

	parts = append(parts, hook(hour, score))

	stat := fmt.Sprintf("You're at %d%% for today with %d item(s) still open.", score, agenda)
	if streak > 0 {
		stat = fmt.Sprintf("You're at %d%% for today, %d item(s) open, and a %d-day streak behind you.", score, agenda, streak)
	}
	parts = append(parts, stat)

	if movedUp != nil {
		parts = append(parts, fmt.Sprintf("First up: %q. %s.", movedUp.Task.Text, strings.TrimSuffix(movedUp.Reason, ".")))
	}

	parts = append(parts, coachLine(score, streak))
	return strings.Join(parts, " ")
}

// hook picks the opening phrase: bank by time-of-day, index by whether the
// day is going well.
func hook(hour, score int) string {
	bank := eveningHooks
	switch {
	case hour < 12:
		bank = morningHooks
	case hour < 17:
		bank = afternoonHooks
	}
	if score >= toneGoodScoreMin {
		return bank[1]
	}
	return bank[0]
}

func coachLine(score, streak int) string {
	switch {
	case streak >= 7 && score >= toneGoodScoreMin:
		return "Keep doing exactly what you're doing."
	case score >= toneGoodScoreMin:
		return "Strong pace — close the loop on the rest."
	case score <= toneWarningScoreMax:
		return "Pick the smallest open item and just start."
	default:
		return "Solid middle ground. One push gets you over the line."
	}
}
