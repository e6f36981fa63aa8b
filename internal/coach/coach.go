// Package coach answers free-form questions by keyword-routing to the
// relevant slice of the behavioral profile. Thin consumer: same question plus
// same profile always yields the same text.
package coach

import (
	"fmt"
	"strings"

	"guidely/internal/analytics"
)

// Respond routes a user question to one of the analyses and formats a
// multi-paragraph answer.
func Respond(question string, profile *analytics.UserBehaviorProfile) string {
	q := strings.ToLower(question)

	switch {
	case containsAny(q, "burnout", "burned out", "burn out", "tired", "exhausted", "overwhelmed"):
		return burnoutAnswer(profile)
	case containsAny(q, "procrastinat", "avoid", "putting off", "skip"):
		return procrastinationAnswer(profile)
	case containsAny(q, "focus", "productive time", "best time", "when should"):
		return focusAnswer(profile)
	case containsAny(q, "habit", "streak", "consistent"):
		return habitsAnswer(profile)
	case containsAny(q, "mood", "feel", "motivation"):
		return moodAnswer(profile)
	case containsAny(q, "routine", "schedule", "plan"):
		return routinesAnswer(profile)
	default:
		return overviewAnswer(profile)
	}
}

func containsAny(q string, keywords ...string) bool {
	for _, kw := range keywords {
		if strings.Contains(q, kw) {
			return true
		}
	}
	return false
}

func burnoutAnswer(p *analytics.UserBehaviorProfile) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Your burnout risk sits at %.0f/100, which puts you in the \"%s\" zone, and the trend is %s.\n\n",
		p.Burnout.RiskLevel, p.Burnout.Stage, p.Burnout.Trend)

	if len(p.Burnout.Factors) > 0 {
		b.WriteString("What's driving it:\n")
		for _, f := range p.Burnout.Factors {
			fmt.Fprintf(&b, "• %s (+%.0f): %s\n", f.Label, f.Impact, f.Detail)
		}
		b.WriteString("\n")
	}

	if len(p.Burnout.RecoveryActions) > 0 {
		b.WriteString("Where I'd start:\n")
		for _, a := range p.Burnout.RecoveryActions {
			fmt.Fprintf(&b, "• %s\n", a)
		}
	} else {
		b.WriteString("Nothing alarming right now — keep the load where it is.")
	}
	return strings.TrimSpace(b.String())
}

func procrastinationAnswer(p *analytics.UserBehaviorProfile) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Your avoidance score is %.0f/100 and your recovery speed after a missed day is %s.\n\n",
		p.Procrastination.Score, p.Procrastination.RecoverySpeed)

	if len(p.Procrastination.Triggers) == 0 {
		b.WriteString("No clear avoidance clusters in your recent activity — whatever you're doing, it's working.")
		return b.String()
	}

	b.WriteString("The patterns I can see:\n")
	for _, t := range p.Procrastination.Triggers {
		fmt.Fprintf(&b, "%s %s — %s. Try this: %s\n", t.Emoji, t.Trigger, t.Description, t.Suggestion)
	}
	return strings.TrimSpace(b.String())
}

func focusAnswer(p *analytics.UserBehaviorProfile) string {
	var b strings.Builder
	split := p.Focus.TimeOfDaySplit
	if split.Morning+split.Afternoon+split.Evening == 0 {
		b.WriteString("There isn't enough timestamped activity yet to map your focus windows. ")
		if p.Focus.OptimalSlot.Day != "" {
			fmt.Fprintf(&b, "Going by day-level data alone, %s is your strongest day.", p.Focus.OptimalSlot.Day)
		} else {
			b.WriteString("Keep checking things off and this will sharpen up.")
		}
		return b.String()
	}

	fmt.Fprintf(&b, "Your completions split %d%% morning / %d%% afternoon / %d%% evening.\n\n",
		split.Morning, split.Afternoon, split.Evening)
	if p.Focus.OptimalSlot.Day != "" {
		fmt.Fprintf(&b, "Best slot overall: %s %s. If something matters, put it there.\n\n",
			p.Focus.OptimalSlot.Day, p.Focus.OptimalSlot.Time)
	}
	fmt.Fprintf(&b, "You average about %.1f productive hours on active days.", p.Focus.AvgProductiveHours)
	return strings.TrimSpace(b.String())
}

func habitsAnswer(p *analytics.UserBehaviorProfile) string {
	if len(p.HabitProfiles) == 0 {
		return "You aren't tracking any habits this month yet. Add one and I'll have something to analyze."
	}

	var b strings.Builder
	fmt.Fprintf(&b, "You're tracking %d habit(s) with a current streak of %d day(s).\n\n",
		len(p.HabitProfiles), p.HabitProfiles[0].CurrentStreak)

	for _, h := range p.HabitProfiles {
		fmt.Fprintf(&b, "• %s: %.0f%% completion, trend %+.0f", h.HabitName, h.CompletionRate, h.Trend)
		if h.IsAutomatic {
			b.WriteString(" — automatic at this point")
		} else if h.AbandonmentRisk >= 50 {
			fmt.Fprintf(&b, " — at risk (%.0f/100), needs a rescue", h.AbandonmentRisk)
		}
		b.WriteString("\n")
	}
	return strings.TrimSpace(b.String())
}

func moodAnswer(p *analytics.UserBehaviorProfile) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Average mood %.1f/10, motivation %.1f/10, with a 7-day mood trend of %+.1f.\n\n",
		p.AvgMood, p.AvgMotivation, p.MoodTrend)

	switch {
	case p.MoodProductivityCorrelation >= 0.4:
		b.WriteString("Your mood and your output move together — on good days you get a lot more done. Protect whatever sets up those good days.")
	case p.MoodProductivityCorrelation <= -0.4:
		b.WriteString("Interestingly, your productivity runs opposite to your mood — you grind through low days. Watch that it doesn't tip into burnout.")
	default:
		b.WriteString("Mood and productivity look fairly independent for you — routine seems to carry you through either way.")
	}
	return b.String()
}

func routinesAnswer(p *analytics.UserBehaviorProfile) string {
	if len(p.SuggestedRoutines) == 0 {
		return "No routine suggestions right now — your current setup covers the signals I watch."
	}

	var b strings.Builder
	b.WriteString("Based on your patterns, here's what I'd add:\n\n")
	for _, r := range p.SuggestedRoutines {
		fmt.Fprintf(&b, "%s %s (%s, %s): %s\n", r.Emoji, r.Name, r.Category, r.Frequency, r.Description)
		fmt.Fprintf(&b, "   Why: %s (confidence %.0f%%)\n", r.Rationale, r.Confidence)
	}
	return strings.TrimSpace(b.String())
}

func overviewAnswer(p *analytics.UserBehaviorProfile) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Quick read on where you are: productivity score %.0f/100, weekly tasks %.0f%% done, %d perfect day(s) this month.\n\n",
		p.ProductivityScore, p.WeeklyTaskRate, p.PerfectDaysThisMonth)
	fmt.Fprintf(&b, "Burnout stage: %s. Avoidance score: %.0f/100.", p.Burnout.Stage, p.Procrastination.Score)
	if len(p.PeakDays) > 0 {
		fmt.Fprintf(&b, " Your strongest day(s): %s.", strings.Join(p.PeakDays, ", "))
	}
	b.WriteString("\n\nAsk me about burnout, focus, habits, mood or routines for the detailed view.")
	return b.String()
}
