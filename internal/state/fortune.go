package state

import (
	"context"

	"go.uber.org/zap"

	"github.com/nhle/dailykit/internal/fortune"
	"github.com/nhle/dailykit/internal/model"
	"github.com/nhle/dailykit/internal/repository"
	"github.com/nhle/dailykit/internal/store"
)

// FortuneSlice caches daily fortunes and keeps at most one per day.
type FortuneSlice struct {
	*Slice[model.Fortune, model.FortunePatch]
	repo repository.FortuneRepository
}

func NewFortuneSlice(repo repository.FortuneRepository, opts Options) *FortuneSlice {
	return &FortuneSlice{
		Slice: NewSlice[model.Fortune, model.FortunePatch]("fortune", repo, opts),
		repo:  repo,
	}
}

// Today returns today's fortune, drawing and storing one if the day has none yet.
func (s *FortuneSlice) Today(ctx context.Context) (model.Fortune, bool) {
	key := model.DateKey(s.clock())

	for _, f := range s.Items() {
		if f.DateKey == key {
			return f, true
		}
	}

	f, err := s.repo.GetByDateKey(ctx, key)
	switch {
	case err == nil:
		s.mutate(func(items []model.Fortune) []model.Fortune {
			return append([]model.Fortune{f}, items...)
		})
		return f, true
	case !store.IsNotFound(err):
		s.log.Error("fortune lookup failed", zap.String("date_key", key), zap.Error(err))
		return model.Fortune{}, false
	}

	return s.Add(ctx, model.Fortune{DateKey: key, Text: fortune.Pick(key)})
}
