package state

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/nhle/dailykit/internal/model"
	"github.com/nhle/dailykit/internal/repository"
)

// TimerSlice caches focus timers.
type TimerSlice struct {
	*Slice[model.Timer, model.TimerPatch]
	timers repository.TimerRepository
}

// NewTimerSlice returns an empty timer slice over repo.
func NewTimerSlice(repo repository.TimerRepository, opts Options) *TimerSlice {
	return &TimerSlice{
		Slice:  NewSlice[model.Timer, model.TimerPatch]("timer", repo, opts),
		timers: repo,
	}
}

// StartedBetween reads the timers started in [from, to] from the store.
func (s *TimerSlice) StartedBetween(ctx context.Context, from, to time.Time) ([]model.Timer, error) {
	timers, err := s.timers.GetStartedBetween(ctx, from, to)
	if err != nil {
		s.log.Error("range query failed", zap.Error(err))
		return nil, err
	}
	return timers, nil
}

// Start records a running timer starting now.
func (s *TimerSlice) Start(ctx context.Context, label string, d time.Duration) (model.Timer, bool) {
	return s.Add(ctx, model.Timer{
		Label:     label,
		Duration:  d,
		StartedAt: s.now(),
	})
}

// Stop ends a running timer now. Stopping a finished timer is a no-op that reports false.
func (s *TimerSlice) Stop(ctx context.Context, id int64) bool {
	t, ok := s.Find(id)
	if !ok || !t.Running() {
		return false
	}
	end := s.now()
	endedAt := &end
	return s.Update(ctx, id, model.TimerPatch{EndedAt: &endedAt})
}

// Running returns the cached timers without an end.
func (s *TimerSlice) Running() []model.Timer {
	var out []model.Timer
	for _, t := range s.Items() {
		if t.Running() {
			out = append(out, t)
		}
	}
	return out
}
