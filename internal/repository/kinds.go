package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/nhle/dailykit/internal/model"
	"github.com/nhle/dailykit/internal/store"
)

// TaskRepository stores to-do tasks.
type TaskRepository interface {
	Repository[model.Task, model.TaskPatch]

	// GetPending returns the tasks that are not done.
	GetPending(ctx context.Context) ([]model.Task, error)
}

// TimerRepository stores focus timers.
type TimerRepository interface {
	Repository[model.Timer, model.TimerPatch]

	// GetStartedBetween returns timers whose start lies in [from, to].
	GetStartedBetween(ctx context.Context, from, to time.Time) ([]model.Timer, error)
}

// MealRepository stores the meal log.
type MealRepository interface {
	Repository[model.Meal, model.MealPatch]

	// GetBetween returns meals whose meal date lies in [from, to].
	GetBetween(ctx context.Context, from, to time.Time) ([]model.Meal, error)
}

// FortuneRepository stores daily fortunes.
type FortuneRepository interface {
	Repository[model.Fortune, model.FortunePatch]

	// GetByDateKey returns the latest fortune stored for the day, or store.ErrNotFound.
	GetByDateKey(ctx context.Context, key string) (model.Fortune, error)
}

// CalcRepository stores calculator history.
type CalcRepository interface {
	Repository[model.CalcEntry, model.CalcPatch]

	// GetFavorites returns the entries marked as favorite.
	GetFavorites(ctx context.Context) ([]model.CalcEntry, error)
}

type taskRepository struct {
	*tableRepository[model.Task, model.TaskPatch]
}

// NewTaskRepository returns the task repository backed by s.
func NewTaskRepository(s *store.SQLiteStore) TaskRepository {
	return &taskRepository{newTableRepository[model.Task, model.TaskPatch](s.Tasks())}
}

func (r *taskRepository) GetPending(ctx context.Context) ([]model.Task, error) {
	return r.where(ctx, "is_done = 0")
}

type timerRepository struct {
	*tableRepository[model.Timer, model.TimerPatch]
}

// NewTimerRepository returns the timer repository backed by s.
func NewTimerRepository(s *store.SQLiteStore) TimerRepository {
	return &timerRepository{newTableRepository[model.Timer, model.TimerPatch](s.Timers())}
}

func (r *timerRepository) GetStartedBetween(ctx context.Context, from, to time.Time) ([]model.Timer, error) {
	return r.where(ctx, "started_at BETWEEN ? AND ?", from.UnixMilli(), to.UnixMilli())
}

type mealRepository struct {
	*tableRepository[model.Meal, model.MealPatch]
}

// NewMealRepository returns the meal repository backed by s.
func NewMealRepository(s *store.SQLiteStore) MealRepository {
	return &mealRepository{newTableRepository[model.Meal, model.MealPatch](s.Meals())}
}

func (r *mealRepository) GetBetween(ctx context.Context, from, to time.Time) ([]model.Meal, error) {
	return r.where(ctx, "meal_date BETWEEN ? AND ?", from.UnixMilli(), to.UnixMilli())
}

type fortuneRepository struct {
	*tableRepository[model.Fortune, model.FortunePatch]
}

// NewFortuneRepository returns the fortune repository backed by s.
func NewFortuneRepository(s *store.SQLiteStore) FortuneRepository {
	return &fortuneRepository{newTableRepository[model.Fortune, model.FortunePatch](s.Fortunes())}
}

func (r *fortuneRepository) GetByDateKey(ctx context.Context, key string) (model.Fortune, error) {
	for f, err := range r.table.Where(ctx, "date_key = ?", key) {
		if err != nil {
			return model.Fortune{}, fmt.Errorf("looking up fortune %s: %w", key, err)
		}
		return f, nil
	}
	return model.Fortune{}, fmt.Errorf("fortune %s: %w", key, store.ErrNotFound)
}

type calcRepository struct {
	*tableRepository[model.CalcEntry, model.CalcPatch]
}

// NewCalcRepository returns the calculator history repository backed by s.
func NewCalcRepository(s *store.SQLiteStore) CalcRepository {
	return &calcRepository{newTableRepository[model.CalcEntry, model.CalcPatch](s.CalcHistory())}
}

func (r *calcRepository) GetFavorites(ctx context.Context) ([]model.CalcEntry, error) {
	return r.where(ctx, "favorite = 1")
}
