// Package insight rule-matches the behavioral profile into ranked,
// user-facing insight and action records, plus the daily plan payload. Rules
// live in a declarative list evaluated in fixed presentation order; every
// rule is independently triggerable and side-effect free. Actions are
// declarative commands for the habit-store collaborator — nothing here
// mutates state.
package insight

import (
	"fmt"

	"guidely/internal/analytics"
	"guidely/internal/model"
)

// Rule thresholds, kept together so tests can pin them.
const (
	almostThereMin = 1
	almostThereMax = 3

	longStreakMin  = 7
	shortStreakMin = 3

	moodDeclineDelta = -2.0
	moodHighAvg      = 7.0

	weakHabitRateMax    = 40.0
	weakHabitMinElapsed = 7

	bestHabitRateMin    = 80.0
	bestHabitMinElapsed = 5

	weekendSlumpGap        = 20.0
	weekendSlumpMinElapsed = 14

	weeklyWinRateMin = 80.0
)

// InsightType classifies an insight for presentation.
type InsightType string

const (
	TypeTip         InsightType = "tip"
	TypeObservation InsightType = "observation"
	TypeSuggestion  InsightType = "suggestion"
	TypeWarning     InsightType = "warning"
)

// ActionType enumerates the declarative commands the habit-store collaborator
// understands.
type ActionType string

const (
	ActionReschedule      ActionType = "reschedule"
	ActionLowerDifficulty ActionType = "lower_difficulty"
	ActionCreateMinimum   ActionType = "create_minimum"
	ActionNavigate        ActionType = "navigate"
	ActionDismissHabit    ActionType = "dismiss_habit"
	ActionFocusMode       ActionType = "focus_mode"
)

// Action is one declarative command attached to an insight.
type Action struct {
	ID      string            `json:"id"`
	Label   string            `json:"label"`
	Emoji   string            `json:"emoji"`
	Type    ActionType        `json:"type"`
	Payload map[string]string `json:"payload,omitempty"`
}

// Insight is one ranked, user-facing record.
type Insight struct {
	ID         string      `json:"id"`
	Type       InsightType `json:"type"`
	Title      string      `json:"title"`
	Message    string      `json:"message"`
	Emoji      string      `json:"emoji"`
	Confidence float64     `json:"confidence"` // 0-100
	Actions    []Action    `json:"actions,omitempty"`
}

// Result is the full UI payload: ordered insights plus the daily plan
// scaffolding.
type Result struct {
	Insights   []Insight `json:"insights"`
	DailyPlan  []string  `json:"daily_plan"`
	Greeting   string    `json:"greeting"`
	Streak     int       `json:"streak"`
	TodayScore int       `json:"today_score"` // rounded % of today's habits done
}

// ruleContext carries everything a rule may inspect: the profile plus today's
// snapshot figures, precomputed once.
type ruleContext struct {
	snap      *model.Snapshot
	profile   *analytics.UserBehaviorProfile
	habits    []model.HabitRecord
	remaining []model.HabitRecord
	elapsed   int
	streak    int
	mood7     float64
}

// rules is the fixed-order rule list; order is presentation priority.
var rules = []struct {
	name  string
	apply func(*ruleContext) *Insight
}{
	{"almost_there", almostThereRule},
	{"streak", streakRule},
	{"mood_shift", moodShiftRule},
	{"weakest_habit", weakestHabitRule},
	{"best_habit", bestHabitRule},
	{"weekend_slump", weekendSlumpRule},
	{"no_habits", noHabitsRule},
	{"unplanned_week", unplannedWeekRule},
	{"weekly_win", weeklyWinRule},
}

// Generate evaluates the rule list against the profile and today's snapshot
// and assembles the daily plan payload. Deterministic for a fixed snapshot.
func Generate(snap *model.Snapshot, profile *analytics.UserBehaviorProfile) Result {
	ctx := newRuleContext(snap, profile)

	var insights []Insight
	for _, rule := range rules {
		if ins := rule.apply(ctx); ins != nil {
			insights = append(insights, *ins)
		}
	}

	return Result{
		Insights:   insights,
		DailyPlan:  dailyPlan(ctx),
		Greeting:   greeting(snap.Now.Hour()),
		Streak:     ctx.streak,
		TodayScore: todayScore(ctx),
	}
}

func newRuleContext(snap *model.Snapshot, profile *analytics.UserBehaviorProfile) *ruleContext {
	ctx := &ruleContext{
		snap:    snap,
		profile: profile,
		elapsed: snap.Now.Day(),
		streak:  analytics.CurrentStreak(snap),
		mood7:   recentMoodAvg(snap, 7),
	}
	if month := snap.CurrentMonth(); month != nil {
		ctx.habits = month.Habits
		today := month.Days[snap.Now.Day()]
		for _, h := range month.Habits {
			if !today.Completed(h.ID) {
				ctx.remaining = append(ctx.remaining, h)
			}
		}
	}
	return ctx
}

func almostThereRule(ctx *ruleContext) *Insight {
	n := len(ctx.remaining)
	if len(ctx.habits) == 0 || n < almostThereMin || n > almostThereMax {
		return nil
	}
	return &Insight{
		ID:         "almost-there",
		Type:       TypeTip,
		Title:      "Almost there",
		Message:    fmt.Sprintf("Only %d habit(s) left today — close it out", n),
		Emoji:      "🏁",
		Confidence: 90,
	}
}

func streakRule(ctx *ruleContext) *Insight {
	streak := ctx.streak
	switch {
	case streak >= longStreakMin:
		return &Insight{
			ID:         "streak-long",
			Type:       TypeObservation,
			Title:      fmt.Sprintf("%d-day streak", streak),
			Message:    fmt.Sprintf("You have kept the chain going %d days — protect it tonight", streak),
			Emoji:      "🔥",
			Confidence: 95,
		}
	case streak >= shortStreakMin:
		return &Insight{
			ID:         "streak-building",
			Type:       TypeObservation,
			Title:      "Streak building",
			Message:    fmt.Sprintf("%d days in a row — three more makes it a week", streak),
			Emoji:      "✨",
			Confidence: 85,
		}
	}
	return nil
}

func moodShiftRule(ctx *ruleContext) *Insight {
	if ctx.profile.MoodTrend <= moodDeclineDelta {
		return &Insight{
			ID:         "mood-decline",
			Type:       TypeWarning,
			Title:      "Mood is sliding",
			Message:    "Your mood has dropped noticeably this week. Lighten the load before it compounds",
			Emoji:      "📉",
			Confidence: 80,
			Actions: []Action{{
				ID:    "mood-decline-lighten",
				Label: "Lower the bar this week",
				Emoji: "🪶",
				Type:  ActionLowerDifficulty,
			}},
		}
	}
	if ctx.mood7 >= moodHighAvg {
		return &Insight{
			ID:         "mood-high",
			Type:       TypeObservation,
			Title:      "Riding high",
			Message:    fmt.Sprintf("Average mood %.1f this week — a good stretch to push something ambitious", ctx.mood7),
			Emoji:      "☀️",
			Confidence: 75,
		}
	}
	return nil
}

func weakestHabitRule(ctx *ruleContext) *Insight {
	if ctx.elapsed < weakHabitMinElapsed {
		return nil
	}
	var weakest *analytics.HabitProfile
	for i := range ctx.profile.HabitProfiles {
		h := &ctx.profile.HabitProfiles[i]
		if h.CompletionRate < weakHabitRateMax && (weakest == nil || h.CompletionRate < weakest.CompletionRate) {
			weakest = h
		}
	}
	if weakest == nil {
		return nil
	}
	return &Insight{
		ID:         "weakest-habit",
		Type:       TypeWarning,
		Title:      fmt.Sprintf("%s is struggling", weakest.HabitName),
		Message:    fmt.Sprintf("%s sits at %.0f%% this month. Shrink it or move it before it dies quietly", weakest.HabitName, weakest.CompletionRate),
		Emoji:      "🚨",
		Confidence: 85,
		Actions: []Action{
			{ID: "weak-reschedule", Label: "Move to a better time", Emoji: "⏰", Type: ActionReschedule, Payload: map[string]string{"habit_id": weakest.HabitID}},
			{ID: "weak-minimum", Label: "Create a 2-minute version", Emoji: "🤏", Type: ActionCreateMinimum, Payload: map[string]string{"habit_id": weakest.HabitID}},
			{ID: "weak-dismiss", Label: "Retire this habit", Emoji: "🗑", Type: ActionDismissHabit, Payload: map[string]string{"habit_id": weakest.HabitID}},
		},
	}
}

func bestHabitRule(ctx *ruleContext) *Insight {
	if ctx.elapsed < bestHabitMinElapsed {
		return nil
	}
	var best *analytics.HabitProfile
	for i := range ctx.profile.HabitProfiles {
		h := &ctx.profile.HabitProfiles[i]
		if h.CompletionRate >= bestHabitRateMin && (best == nil || h.CompletionRate > best.CompletionRate) {
			best = h
		}
	}
	if best == nil {
		return nil
	}
	return &Insight{
		ID:         "best-habit",
		Type:       TypeObservation,
		Title:      fmt.Sprintf("%s is locked in", best.HabitName),
		Message:    fmt.Sprintf("%.0f%% completion on %s — this one is becoming automatic", best.CompletionRate, best.HabitName),
		Emoji:      "🏆",
		Confidence: 90,
	}
}

func weekendSlumpRule(ctx *ruleContext) *Insight {
	if ctx.elapsed < weekendSlumpMinElapsed {
		return nil
	}
	gap, ok := analytics.WeekdayWeekendGap(ctx.snap)
	if !ok || gap <= weekendSlumpGap {
		return nil
	}
	return &Insight{
		ID:         "weekend-slump",
		Type:       TypeTip,
		Title:      "Weekends are your gap",
		Message:    fmt.Sprintf("Weekday completion runs %.0f points ahead of weekends. A light Saturday anchor would close most of it", gap),
		Emoji:      "🌤",
		Confidence: 80,
	}
}

func noHabitsRule(ctx *ruleContext) *Insight {
	if len(ctx.habits) > 0 {
		return nil
	}
	return &Insight{
		ID:         "no-habits",
		Type:       TypeSuggestion,
		Title:      "Start with one habit",
		Message:    "Nothing is being tracked yet. Pick one small daily habit — one is enough to start the data flowing",
		Emoji:      "🌱",
		Confidence: 100,
		Actions: []Action{{
			ID:    "no-habits-add",
			Label: "Add a habit",
			Emoji: "➕",
			Type:  ActionNavigate,
			Payload: map[string]string{
				"target": "habits",
			},
		}},
	}
}

func unplannedWeekRule(ctx *ruleContext) *Insight {
	week := ctx.snap.CurrentWeek()
	if week != nil && len(week.Tasks) > 0 {
		return nil
	}
	return &Insight{
		ID:         "unplanned-week",
		Type:       TypeSuggestion,
		Title:      "This week has no plan",
		Message:    "No tasks are scheduled for this week. Even three pinned tasks beat an open week",
		Emoji:      "🗓",
		Confidence: 85,
		Actions: []Action{{
			ID:      "unplanned-plan",
			Label:   "Plan the week",
			Emoji:   "📝",
			Type:    ActionNavigate,
			Payload: map[string]string{"target": "week"},
		}},
	}
}

func weeklyWinRule(ctx *ruleContext) *Insight {
	if ctx.profile.WeeklyTaskRate < weeklyWinRateMin {
		return nil
	}
	return &Insight{
		ID:         "weekly-win",
		Type:       TypeObservation,
		Title:      "Strong week",
		Message:    fmt.Sprintf("%.0f%% of this week's tasks are done — finish line is in sight", ctx.profile.WeeklyTaskRate),
		Emoji:      "💪",
		Confidence: 90,
	}
}
