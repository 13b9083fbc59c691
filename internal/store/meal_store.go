package store

import (
	"fmt"

	"github.com/nhle/dailykit/internal/model"
)

var mealSchema = Schema[model.Meal]{
	Table:   "meals",
	Columns: []string{"menu_name", "meal_date", "created_at"},
	OrderBy: "meal_date DESC, id DESC",
	Bind: func(m model.Meal) ([]any, error) {
		return []any{m.MenuName, toMillis(m.MealDate), toMillis(m.CreatedAt)}, nil
	},
	Scan: scanMeal,
	ID:   func(m model.Meal) int64 { return m.ID },
}

// Meals returns the record store for the meal log.
func (s *SQLiteStore) Meals() *Table[model.Meal] {
	return NewTable(s, mealSchema)
}

func scanMeal(row rowScanner) (model.Meal, error) {
	var (
		meal      model.Meal
		mealDate  int64
		createdAt int64
	)

	if err := row.Scan(&meal.ID, &meal.MenuName, &mealDate, &createdAt); err != nil {
		return model.Meal{}, fmt.Errorf("scanning meal row: %w", err)
	}

	meal.MealDate = fromMillis(mealDate)
	meal.CreatedAt = fromMillis(createdAt)
	return meal, nil
}
