package state

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/nhle/dailykit/internal/model"
	"github.com/nhle/dailykit/internal/repository"
)

// MealSlice caches the meal log.
type MealSlice struct {
	*Slice[model.Meal, model.MealPatch]
	meals repository.MealRepository
}

// NewMealSlice returns an empty meal slice over repo.
func NewMealSlice(repo repository.MealRepository, opts Options) *MealSlice {
	return &MealSlice{
		Slice: NewSlice[model.Meal, model.MealPatch]("meal", repo, opts),
		meals: repo,
	}
}

// Between reads the meals eaten in [from, to] from the store.
func (s *MealSlice) Between(ctx context.Context, from, to time.Time) ([]model.Meal, error) {
	meals, err := s.meals.GetBetween(ctx, from, to)
	if err != nil {
		s.log.Error("range query failed", zap.Error(err))
		return nil, err
	}
	return meals, nil
}

// Log records a meal eaten at mealDate.
func (s *MealSlice) Log(ctx context.Context, menu string, mealDate time.Time) (model.Meal, bool) {
	return s.Add(ctx, model.Meal{MenuName: menu, MealDate: mealDate})
}
