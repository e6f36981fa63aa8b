package services

import (
	"time"

	"guidely/internal/analytics"
	"guidely/internal/briefing"
	"guidely/internal/coach"
	"guidely/internal/insight"
	"guidely/internal/model"
	"guidely/internal/store"
)

// How many past months get loaded into a snapshot alongside the current one.
// Streaks and trends only need the current month; weekday and consistency
// stats improve with trailing history.
const defaultTrailingMonths = 2

// EngineService runs the analytics pipeline over snapshots loaded from the
// repository. The service itself is stateless; every call loads a fresh
// snapshot and recomputes.
type EngineService struct {
	repository *store.Repository
}

func NewEngineService(repo *store.Repository) *EngineService {
	return &EngineService{repository: repo}
}

// Snapshot loads the immutable engine input anchored at "now".
func (es *EngineService) Snapshot(now time.Time) (*model.Snapshot, error) {
	return es.repository.LoadSnapshot(now, defaultTrailingMonths)
}

// Profile recomputes the full behavioral profile.
func (es *EngineService) Profile(now time.Time) (*analytics.UserBehaviorProfile, error) {
	snap, err := es.Snapshot(now)
	if err != nil {
		return nil, err
	}
	return analytics.BuildProfile(snap), nil
}

// Insights produces the ranked insight list plus the daily plan payload.
func (es *EngineService) Insights(now time.Time) (insight.Result, error) {
	snap, err := es.Snapshot(now)
	if err != nil {
		return insight.Result{}, err
	}
	return insight.Generate(snap, analytics.BuildProfile(snap)), nil
}

// Briefing builds the daily briefing with the most avoided task surfaced.
func (es *EngineService) Briefing(now time.Time) (briefing.DailyBriefing, error) {
	snap, err := es.Snapshot(now)
	if err != nil {
		return briefing.DailyBriefing{}, err
	}
	return briefing.Build(snap), nil
}

// Coach answers a free-form question against the current profile.
func (es *EngineService) Coach(question string, now time.Time) (string, error) {
	profile, err := es.Profile(now)
	if err != nil {
		return "", err
	}
	return coach.Respond(question, profile), nil
}
