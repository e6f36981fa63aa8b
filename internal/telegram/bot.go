package telegram

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"guidely/internal/services"
	"guidely/internal/timeutil"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

type Bot struct {
	bot      *tgbotapi.BotAPI
	chatID   int64
	services *services.ServiceManager
	handlers map[string]func(*tgbotapi.Message)
}

func NewBot(token string, chatID int64, serviceManager *services.ServiceManager) (*Bot, error) {
	botAPI, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("creating bot: %w", err)
	}

	bot := &Bot{
		bot:      botAPI,
		chatID:   chatID,
		services: serviceManager,
		handlers: make(map[string]func(*tgbotapi.Message)),
	}

	bot.registerHandlers()
	log.Printf("🤖 Bot initialized: %s", botAPI.Self.UserName)
	return bot, nil
}

func (b *Bot) registerHandlers() {
	b.handlers["/start"] = b.handleStart
	b.handlers["/today"] = b.handleToday
	b.handlers["/profile"] = b.handleProfile
	b.handlers["/insights"] = b.handleInsights
	b.handlers["/briefing"] = b.handleBriefing
	b.handlers["/week"] = b.handleWeek
	b.handlers["/mood"] = b.handleMood
	b.handlers["/add"] = b.handleAdd
	b.handlers["/habit"] = b.handleHabit
	b.handlers["/coach"] = b.handleCoach
	b.handlers["/help"] = b.handleHelp
}

func (b *Bot) GetUsername() string {
	return b.bot.Self.UserName
}

func (b *Bot) SendMessage(text string) error {
	msg := tgbotapi.NewMessage(b.chatID, text)
	msg.ParseMode = "HTML"
	_, err := b.bot.Send(msg)
	return err
}

func (b *Bot) SendMessageOrLogError(text string) {
	if err := b.SendMessage(text); err != nil {
		log.Printf("❌ Failed to send message: %v", err)
	}
}

func (b *Bot) Start(ctx context.Context) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := b.bot.GetUpdatesChan(u)

	log.Println("📡 Listening for updates...")

	for {
		select {
		case <-ctx.Done():
			log.Println("📡 Bot update loop stopped")
			return
		case update := <-updates:
			b.handleUpdate(update)
		}
	}
}

func (b *Bot) handleUpdate(update tgbotapi.Update) {
	if update.CallbackQuery != nil {
		b.handleCallback(update.CallbackQuery)
		return
	}

	if update.Message == nil || update.Message.Chat.ID != b.chatID {
		return
	}

	text := update.Message.Text
	command := text
	if idx := strings.Index(text, " "); idx > 0 {
		command = text[:idx]
	}

	if handler, ok := b.handlers[command]; ok {
		handler(update.Message)
		return
	}

	if strings.HasPrefix(text, "/") {
		b.SendMessageOrLogError("🤷 Unknown command. Try /help")
		return
	}

	// Bare text is treated as a task to add, same as /add.
	b.addTaskFromText(text)
}

// handleCallback reacts to inline keyboard presses: task life-cycle buttons
// and habit check-offs. Every press lands in the attention-event log through
// the tracker.
func (b *Bot) handleCallback(cb *tgbotapi.CallbackQuery) {
	now := time.Now()
	parts := strings.SplitN(cb.Data, ":", 3)

	var err error
	var ack string

	switch {
	case len(parts) == 3 && parts[0] == "done":
		err = b.services.Tracker.CompleteTask(parts[1], parts[2], now)
		ack = "✅ Done"
	case len(parts) == 3 && parts[0] == "skip":
		err = b.services.Tracker.SkipTask(parts[1], parts[2], now)
		ack = "➖ Skipped"
	case len(parts) == 3 && parts[0] == "defer":
		err = b.services.Tracker.DeferTask(parts[1], parts[2], now)
		ack = "🔄 Deferred"
	case len(parts) == 2 && parts[0] == "habit":
		err = b.services.Tracker.CheckHabit(parts[1], now, true)
		ack = "✅ Habit checked"
	default:
		ack = "🤷 Unknown action"
	}

	if err != nil {
		log.Printf("⚠️ Callback %q failed: %v", cb.Data, err)
		ack = "❌ Something went wrong"
	}

	callback := tgbotapi.NewCallback(cb.ID, ack)
	if _, err := b.bot.Request(callback); err != nil {
		log.Printf("⚠️ Callback ack failed: %v", err)
	}
}

// taskKeyboard builds the done/defer/skip row for one task.
func (b *Bot) taskKeyboard(weekKey, taskID string) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✅ Done", fmt.Sprintf("done:%s:%s", weekKey, taskID)),
			tgbotapi.NewInlineKeyboardButtonData("🔄 Defer", fmt.Sprintf("defer:%s:%s", weekKey, taskID)),
			tgbotapi.NewInlineKeyboardButtonData("➖ Skip", fmt.Sprintf("skip:%s:%s", weekKey, taskID)),
		),
	)
}

func (b *Bot) sendTaskWithKeyboard(text, weekKey, taskID string) {
	msg := tgbotapi.NewMessage(b.chatID, text)
	msg.ParseMode = "HTML"
	msg.ReplyMarkup = b.taskKeyboard(weekKey, taskID)
	if _, err := b.bot.Send(msg); err != nil {
		log.Printf("❌ Failed to send task message: %v", err)
	}
}

func (b *Bot) addTaskFromText(text string) {
	now := time.Now()
	task, interpretation, err := b.services.Tracker.AddTaskFromText(text, now)
	if err != nil {
		log.Printf("⚠️ Failed to add task: %v", err)
		b.SendMessageOrLogError("❌ Couldn't save that task")
		return
	}

	day := timeutil.WeekdayName(task.DayIndex)
	msg := fmt.Sprintf(
		"📝 <b>%s</b>\n\n📅 %s  ·  🏷 %s  ·  ⚡ %s  ·  ⏱ ~%d min",
		task.Text, day, interpretation.Category, interpretation.Priority, interpretation.EstimatedMinutes,
	)
	if interpretation.Suggestion != "" {
		msg += "\n\n💡 " + interpretation.Suggestion
	}
	b.SendMessageOrLogError(msg)
}
