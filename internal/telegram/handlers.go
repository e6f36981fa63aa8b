package telegram

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"guidely/internal/timeutil"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// handlers.go - Telegram bot command handlers

func (b *Bot) handleStart(msg *tgbotapi.Message) {
	message := `🧭 <b>Guidely</b>

Your behavioral coach is running.

Commands:
/today - today's habits and tasks
/briefing - what to tackle first
/insights - coaching insights
/profile - your behavioral profile
/week - this week's tasks
/mood - log mood and motivation
/add - add a task in plain language
/habit - add a habit
/coach - ask anything about your patterns
/help - command reference

Examples:
/add Gym workout tomorrow at 7am
/mood 7 6
/coach why do I keep skipping admin tasks?`

	b.SendMessageOrLogError(message)
}

func (b *Bot) handleHelp(msg *tgbotapi.Message) {
	b.handleStart(msg)
}

func (b *Bot) handleToday(msg *tgbotapi.Message) {
	now := time.Now()
	result, err := b.services.Engine.Insights(now)
	if err != nil {
		b.SendMessageOrLogError("❌ Failed to load today's plan")
		return
	}

	var out strings.Builder
	out.WriteString(fmt.Sprintf("%s\n\n", result.Greeting))
	out.WriteString(fmt.Sprintf("📊 Today: <b>%d%%</b>  ·  🔥 Streak: <b>%d</b>\n\n", result.TodayScore, result.Streak))

	if len(result.DailyPlan) == 0 {
		out.WriteString("📭 Nothing on the plan — add a habit or a task")
	} else {
		out.WriteString("<b>Plan:</b>\n")
		for _, item := range result.DailyPlan {
			out.WriteString("• " + item + "\n")
		}
	}

	b.SendMessageOrLogError(out.String())
}

func (b *Bot) handleProfile(msg *tgbotapi.Message) {
	now := time.Now()
	profile, err := b.services.Engine.Profile(now)
	if err != nil {
		b.SendMessageOrLogError("❌ Failed to build profile")
		return
	}

	var out strings.Builder
	out.WriteString("🧠 <b>Behavioral profile</b>\n\n")
	out.WriteString(fmt.Sprintf("Productivity: <b>%.0f/100</b>\n", profile.ProductivityScore))
	out.WriteString(fmt.Sprintf("Mood: %.1f  ·  Motivation: %.1f  ·  Trend: %+.1f\n", profile.AvgMood, profile.AvgMotivation, profile.MoodTrend))
	out.WriteString(fmt.Sprintf("Burnout: <b>%s</b> (%.0f/100, %s)\n", profile.Burnout.Stage, profile.Burnout.RiskLevel, profile.Burnout.Trend))
	out.WriteString(fmt.Sprintf("Avoidance: %.0f/100 · recovery %s\n", profile.Procrastination.Score, profile.Procrastination.RecoverySpeed))
	out.WriteString(fmt.Sprintf("Perfect days this month: %d\n", profile.PerfectDaysThisMonth))
	if len(profile.PeakDays) > 0 {
		out.WriteString("Peak days: " + strings.Join(profile.PeakDays, ", ") + "\n")
	}

	if len(profile.HabitProfiles) > 0 {
		out.WriteString("\n<b>Habits:</b>\n")
		for _, h := range profile.HabitProfiles {
			marker := "▫️"
			if h.IsAutomatic {
				marker = "⚙️"
			} else if h.AbandonmentRisk >= 50 {
				marker = "🚨"
			}
			out.WriteString(fmt.Sprintf("%s %s — %.0f%% (trend %+.0f)\n", marker, h.HabitName, h.CompletionRate, h.Trend))
		}
	}

	if len(profile.SuggestedRoutines) > 0 {
		out.WriteString("\n<b>Suggested routines:</b>\n")
		for _, r := range profile.SuggestedRoutines {
			out.WriteString(fmt.Sprintf("%s %s (%s)\n", r.Emoji, r.Name, r.Frequency))
		}
	}

	b.SendMessageOrLogError(out.String())
}

func (b *Bot) handleInsights(msg *tgbotapi.Message) {
	now := time.Now()
	result, err := b.services.Engine.Insights(now)
	if err != nil {
		b.SendMessageOrLogError("❌ Failed to generate insights")
		return
	}

	if len(result.Insights) == 0 {
		b.SendMessageOrLogError("📭 No insights right now — keep tracking and they'll come")
		return
	}

	var out strings.Builder
	out.WriteString("💡 <b>Insights</b>\n\n")
	for _, ins := range result.Insights {
		out.WriteString(fmt.Sprintf("%s <b>%s</b>\n%s\n", ins.Emoji, ins.Title, ins.Message))
		for _, action := range ins.Actions {
			out.WriteString(fmt.Sprintf("   %s %s\n", action.Emoji, action.Label))
		}
		out.WriteString("\n")
	}

	b.SendMessageOrLogError(out.String())
}

func (b *Bot) handleBriefing(msg *tgbotapi.Message) {
	b.services.Notification.SendMorningBriefing()
}

func (b *Bot) handleWeek(msg *tgbotapi.Message) {
	now := time.Now()
	snap, err := b.services.Engine.Snapshot(now)
	if err != nil {
		b.SendMessageOrLogError("❌ Failed to load the week")
		return
	}

	week := snap.CurrentWeek()
	if week == nil || len(week.Tasks) == 0 {
		b.SendMessageOrLogError("📭 No tasks planned this week. Send me one in plain language")
		return
	}

	weekKey := timeutil.WeekKey(now)
	year, weekNum := now.ISOWeek()
	monday, sunday := timeutil.WeekDateRange(year, weekNum)

	var out strings.Builder
	out.WriteString(fmt.Sprintf("📅 <b>Week %s</b> (%s - %s)\n\n", weekKey, monday.Format("Jan 2"), sunday.Format("Jan 2")))
	for _, task := range week.Tasks {
		status := "⬜"
		if task.Completed {
			status = "✅"
		}
		out.WriteString(fmt.Sprintf("%s %s — %s\n", status, timeutil.WeekdayName(task.DayIndex), task.Text))
	}
	b.SendMessageOrLogError(out.String())

	// Pending tasks get their own keyboard messages.
	for _, task := range week.Tasks {
		if !task.Completed {
			b.sendTaskWithKeyboard("👉 <b>"+task.Text+"</b>", weekKey, task.ID)
		}
	}
}

// handleMood expects "/mood <mood> [motivation]", both 0-10.
func (b *Bot) handleMood(msg *tgbotapi.Message) {
	fields := strings.Fields(msg.Text)
	if len(fields) < 2 {
		b.SendMessageOrLogError("Usage: /mood 7 6  (mood, then motivation, 0-10)")
		return
	}

	mood, err := strconv.Atoi(fields[1])
	if err != nil {
		b.SendMessageOrLogError("❌ Mood must be a number 0-10")
		return
	}
	motivation := mood
	if len(fields) >= 3 {
		if m, err := strconv.Atoi(fields[2]); err == nil {
			motivation = m
		}
	}

	if err := b.services.Tracker.LogMood(mood, motivation, time.Now()); err != nil {
		b.SendMessageOrLogError("❌ " + err.Error())
		return
	}
	b.SendMessageOrLogError(fmt.Sprintf("📝 Logged: mood %d, motivation %d", mood, motivation))
}

func (b *Bot) handleAdd(msg *tgbotapi.Message) {
	text := strings.TrimSpace(strings.TrimPrefix(msg.Text, "/add"))
	if text == "" {
		b.SendMessageOrLogError("Usage: /add Gym workout tomorrow at 7am")
		return
	}
	b.addTaskFromText(text)
}

func (b *Bot) handleHabit(msg *tgbotapi.Message) {
	name := strings.TrimSpace(strings.TrimPrefix(msg.Text, "/habit"))
	if name == "" {
		b.SendMessageOrLogError("Usage: /habit Morning run")
		return
	}

	habit, err := b.services.Tracker.AddHabit(name, time.Now())
	if err != nil {
		b.SendMessageOrLogError("❌ Couldn't add the habit")
		return
	}

	msg2 := tgbotapi.NewMessage(b.chatID, fmt.Sprintf("🌱 Tracking <b>%s</b>. Check it off below when done today", habit.Name))
	msg2.ParseMode = "HTML"
	msg2.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✅ Done today", "habit:"+habit.ID),
		),
	)
	if _, err := b.bot.Send(msg2); err != nil {
		b.SendMessageOrLogError("🌱 Tracking " + habit.Name)
	}
}

func (b *Bot) handleCoach(msg *tgbotapi.Message) {
	question := strings.TrimSpace(strings.TrimPrefix(msg.Text, "/coach"))
	if question == "" {
		question = "overview"
	}

	answer, err := b.services.Engine.Coach(question, time.Now())
	if err != nil {
		b.SendMessageOrLogError("❌ Coach is unavailable right now")
		return
	}
	b.SendMessageOrLogError(answer)
}
