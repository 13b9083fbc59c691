package model

import "time"

// Meal is one entry of the meal log.
type Meal struct {
	ID        int64     `json:"id"`
	MenuName  string    `json:"menu_name"`
	MealDate  time.Time `json:"meal_date"`
	CreatedAt time.Time `json:"created_at"`
}

// MealPatch is a partial update for a Meal.
type MealPatch struct {
	MenuName *string
	MealDate *time.Time
}

// Apply copies the set fields of p onto m.
func (p MealPatch) Apply(m *Meal) {
	if p.MenuName != nil {
		m.MenuName = *p.MenuName
	}
	if p.MealDate != nil {
		m.MealDate = *p.MealDate
	}
}

// Touch returns p unchanged.
func (p MealPatch) Touch(time.Time) MealPatch { return p }

// GetID returns the store-assigned identifier.
func (m Meal) GetID() int64 { return m.ID }

// WithID returns a copy of m carrying id.
func (m Meal) WithID(id int64) Meal {
	m.ID = id
	return m
}

// Stamp sets CreatedAt to now.
func (m Meal) Stamp(now time.Time) Meal {
	m.CreatedAt = now
	return m
}

// Normalize truncates the meal's instants to milliseconds.
func (m Meal) Normalize() Meal {
	m.MealDate = Millis(m.MealDate)
	m.CreatedAt = Millis(m.CreatedAt)
	return m
}
