package app

import (
	"context"
	"log"
	"time"

	"guidely/internal/config"
	"guidely/internal/services"
	"guidely/internal/store"
	"guidely/internal/telegram"

	"github.com/robfig/cron/v3"
)

type Application struct {
	config     *config.Config
	store      *store.Store
	bot        *telegram.Bot
	services   *services.ServiceManager
	cron       *cron.Cron
	cancelFunc context.CancelFunc
	ctx        context.Context
}

func New(cfg *config.Config) (*Application, error) {
	st, err := store.Open(cfg.Database.Path)
	if err != nil {
		return nil, err
	}

	serviceManager := services.NewServiceManager(st)
	bot, err := telegram.NewBot(cfg.Telegram.Token, cfg.Telegram.ChatID, serviceManager)
	if err != nil {
		st.Close()
		return nil, err
	}

	serviceManager.SetNotificationSender(bot)
	ctx, cancel := context.WithCancel(context.Background())

	app := &Application{
		config:     cfg,
		store:      st,
		bot:        bot,
		services:   serviceManager,
		cron:       cron.New(),
		cancelFunc: cancel,
		ctx:        ctx,
	}

	app.setupCronJobs()

	return app, nil
}

func (a *Application) Start() error {
	log.Println("🚀 Starting application...")

	go a.bot.Start(a.ctx)

	a.cron.Start()

	if err := a.services.Tracker.RecordAppOpen(time.Now()); err != nil {
		log.Printf("⚠️ Failed to record app open: %v", err)
	}

	a.services.Notification.SendWelcome()

	log.Printf("✅ Application started. Bot: @%s", a.bot.GetUsername())

	return nil
}

func (a *Application) Stop() error {
	log.Println("🛑 Stopping application...")

	a.cancelFunc()
	a.cron.Stop()

	if err := a.store.Close(); err != nil {
		log.Printf("⚠️ Failed to close store: %v", err)
	}

	log.Println("✅ Application stopped")
	return nil
}

func (a *Application) setupCronJobs() {
	// Morning briefing at 07:00.
	_, err := a.cron.AddFunc("0 7 * * *", func() {
		a.services.Notification.SendMorningBriefing()
	})
	if err != nil {
		panic(err)
	}

	// Evening summary at 21:00.
	_, err = a.cron.AddFunc("0 21 * * *", func() {
		a.services.Notification.SendEveningSummary()
	})
	if err != nil {
		panic(err)
	}

	// Weekly digest on Sunday at 18:00.
	a.cron.AddFunc("0 18 * * 0", func() {
		a.services.Notification.SendWeeklyDigest()
	})
}
