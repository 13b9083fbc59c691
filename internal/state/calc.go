package state

import (
	"context"

	"go.uber.org/zap"

	"github.com/nhle/dailykit/internal/calc"
	"github.com/nhle/dailykit/internal/model"
	"github.com/nhle/dailykit/internal/repository"
)

// DefaultHistoryLimit is how many calculator entries stay cached.
const DefaultHistoryLimit = 100

// CalcSlice caches the most recent calculator history entries. The store
// keeps every entry; only the cache is capped.
type CalcSlice struct {
	*Slice[model.CalcEntry, model.CalcPatch]
	history repository.CalcRepository
}

// NewCalcSlice returns a history slice. A zero opts.Limit uses DefaultHistoryLimit.
func NewCalcSlice(repo repository.CalcRepository, opts Options) *CalcSlice {
	if opts.Limit <= 0 {
		opts.Limit = DefaultHistoryLimit
	}
	return &CalcSlice{
		Slice:   NewSlice[model.CalcEntry, model.CalcPatch]("calc", repo, opts),
		history: repo,
	}
}

// Evaluate computes expr and records it. An invalid expression returns an
// error and records nothing. If only the write fails, the result is still
// returned with a zero ID.
func (s *CalcSlice) Evaluate(ctx context.Context, expr string) (model.CalcEntry, error) {
	result, err := calc.Evaluate(expr)
	if err != nil {
		return model.CalcEntry{}, err
	}

	entry := model.CalcEntry{Expression: expr, Result: result}
	if saved, ok := s.Add(ctx, entry); ok {
		return saved, nil
	}
	return entry.Stamp(s.now()), nil
}

// Favorites reads every favorite entry from the store, including entries
// older than the cached history.
func (s *CalcSlice) Favorites(ctx context.Context) ([]model.CalcEntry, error) {
	entries, err := s.history.GetFavorites(ctx)
	if err != nil {
		s.log.Error("favorites query failed", zap.Error(err))
		return nil, err
	}
	return entries, nil
}

// ToggleFavorite flips the favorite flag of the cached entry.
func (s *CalcSlice) ToggleFavorite(ctx context.Context, id int64) bool {
	e, ok := s.Find(id)
	if !ok {
		return false
	}
	fav := !e.Favorite
	return s.Update(ctx, id, model.CalcPatch{Favorite: &fav})
}
