package services

import (
	"fmt"
	"log"
	"strings"
	"time"
)

// NotificationSender delivers rendered messages to the user.
type NotificationSender interface {
	SendMessage(text string) error
}

// NotificationService pushes scheduled payloads: the morning briefing, the
// evening summary and the Sunday profile digest.
type NotificationService struct {
	sender NotificationSender
	engine *EngineService
}

func NewNotificationService(sender NotificationSender, engine *EngineService) *NotificationService {
	return &NotificationService{
		sender: sender,
		engine: engine,
	}
}

// SendWelcome announces a successful startup.
func (ns *NotificationService) SendWelcome() {
	msg := "🧭 <b>Guidely is online</b>\n\nSend /today for the plan, /help for commands, or just type a task in plain language"
	if err := ns.sender.SendMessage(msg); err != nil {
		log.Printf("❌ Failed to send welcome message: %v", err)
	}
}

// SendMorningBriefing renders and delivers the daily briefing.
func (ns *NotificationService) SendMorningBriefing() {
	now := time.Now()
	b, err := ns.engine.Briefing(now)
	if err != nil {
		log.Printf("⚠️ Failed to build briefing: %v", err)
		return
	}

	var msg strings.Builder
	msg.WriteString("🌅 <b>Daily briefing</b>\n\n")
	for _, card := range b.Cards {
		msg.WriteString(fmt.Sprintf("%s: <b>%s</b>\n", card.Label, card.Value))
	}
	msg.WriteString(fmt.Sprintf("\nVibe: <i>%s</i>\n", b.VibeTag))
	if b.MovedUp != nil {
		msg.WriteString(fmt.Sprintf("\n⬆️ <b>%s</b>\n%s\n", b.MovedUp.Task.Text, b.MovedUp.Reason))
	}
	msg.WriteString("\n" + b.NarrationText)

	if err := ns.sender.SendMessage(msg.String()); err != nil {
		log.Printf("❌ Failed to send briefing: %v", err)
	}
}

// SendEveningSummary delivers the day's insights and plan wrap-up.
func (ns *NotificationService) SendEveningSummary() {
	now := time.Now()
	result, err := ns.engine.Insights(now)
	if err != nil {
		log.Printf("⚠️ Failed to generate insights: %v", err)
		return
	}

	var msg strings.Builder
	msg.WriteString(fmt.Sprintf("🌙 <b>Day summary</b> — %d%% done, streak %d\n\n", result.TodayScore, result.Streak))
	for _, ins := range result.Insights {
		msg.WriteString(fmt.Sprintf("%s <b>%s</b>\n%s\n\n", ins.Emoji, ins.Title, ins.Message))
	}
	if len(result.Insights) == 0 {
		msg.WriteString("Quiet day on the data front. Tomorrow is a fresh slate 🌅\n")
	}

	if err := ns.sender.SendMessage(msg.String()); err != nil {
		log.Printf("❌ Failed to send summary: %v", err)
	}
}

// SendWeeklyDigest delivers the Sunday profile overview.
func (ns *NotificationService) SendWeeklyDigest() {
	now := time.Now()
	answer, err := ns.engine.Coach("overview", now)
	if err != nil {
		log.Printf("⚠️ Failed to build weekly digest: %v", err)
		return
	}

	if err := ns.sender.SendMessage("📊 <b>Weekly digest</b>\n\n" + answer); err != nil {
		log.Printf("❌ Failed to send weekly digest: %v", err)
	}
}
