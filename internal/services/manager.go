package services

import (
	"guidely/internal/store"
)

type ServiceManager struct {
	Notification *NotificationService
	Engine       *EngineService
	Tracker      *TrackerService
	repository   *store.Repository
}

func NewServiceManager(st *store.Store) *ServiceManager {
	repo := store.NewRepository(st)

	return &ServiceManager{
		Notification: nil,
		Engine:       NewEngineService(repo),
		Tracker:      NewTrackerService(repo),
		repository:   repo,
	}
}

func (sm *ServiceManager) SetNotificationSender(sender NotificationSender) {
	sm.Notification = NewNotificationService(sender, sm.Engine)
}
