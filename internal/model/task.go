package model

import "time"

// Priority is the urgency level of a task.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Category groups tasks for the dashboard breakdown.
type Category string

const (
	CategoryWork     Category = "work"
	CategoryHome     Category = "home"
	CategoryPersonal Category = "personal"
)

// Categories lists every category in dashboard order.
var Categories = []Category{CategoryWork, CategoryHome, CategoryPersonal}

// Repeat is the recurrence rule of a task.
type Repeat string

const (
	RepeatNone    Repeat = "none"
	RepeatDaily   Repeat = "daily"
	RepeatWeekly  Repeat = "weekly"
	RepeatMonthly Repeat = "monthly"
)

// Task is a to-do item created and managed by the user.
type Task struct {
	// ID is assigned by the store on insert.
	ID int64 `json:"id"`

	Title    string   `json:"title"`
	IsDone   bool     `json:"is_done"`
	Priority Priority `json:"priority"`
	Category Category `json:"category"`
	Repeat   Repeat   `json:"repeat"`

	// DueDate is optional.
	DueDate *time.Time `json:"due_date,omitempty"`

	CreatedAt time.Time `json:"created_at"`

	// UpdatedAt doubles as the completion time while IsDone is true.
	UpdatedAt time.Time `json:"updated_at"`
}

// TaskPatch is a partial update for a Task. Nil fields are left untouched.
type TaskPatch struct {
	Title     *string
	IsDone    *bool
	Priority  *Priority
	Category  *Category
	Repeat    *Repeat
	DueDate   **time.Time
	UpdatedAt *time.Time
}

// Apply copies the set fields of p onto t.
func (p TaskPatch) Apply(t *Task) {
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.IsDone != nil {
		t.IsDone = *p.IsDone
	}
	if p.Priority != nil {
		t.Priority = *p.Priority
	}
	if p.Category != nil {
		t.Category = *p.Category
	}
	if p.Repeat != nil {
		t.Repeat = *p.Repeat
	}
	if p.DueDate != nil {
		t.DueDate = *p.DueDate
	}
	if p.UpdatedAt != nil {
		t.UpdatedAt = *p.UpdatedAt
	}
}

// Touch sets the patch's UpdatedAt.
func (p TaskPatch) Touch(now time.Time) TaskPatch {
	p.UpdatedAt = &now
	return p
}

// GetID returns the store-assigned identifier, zero before insert.
func (t Task) GetID() int64 { return t.ID }

// WithID returns a copy of t carrying id.
func (t Task) WithID(id int64) Task {
	t.ID = id
	return t
}

// Stamp sets both timestamps to now.
func (t Task) Stamp(now time.Time) Task {
	t.CreatedAt = now
	t.UpdatedAt = now
	return t
}

// Normalize returns t as the store keeps it: unset or unknown enums become
// their defaults and instants are truncated to milliseconds.
func (t Task) Normalize() Task {
	t.Priority = ParsePriority(string(t.Priority))
	t.Category = ParseCategory(string(t.Category))
	t.Repeat = ParseRepeat(string(t.Repeat))
	t.DueDate = millisPtr(t.DueDate)
	t.CreatedAt = Millis(t.CreatedAt)
	t.UpdatedAt = Millis(t.UpdatedAt)
	return t
}

// ParsePriority converts s to a Priority, defaulting to medium.
func ParsePriority(s string) Priority {
	switch Priority(s) {
	case PriorityHigh, PriorityLow:
		return Priority(s)
	default:
		return PriorityMedium
	}
}

// ParseCategory converts s to a Category, defaulting to personal.
func ParseCategory(s string) Category {
	switch Category(s) {
	case CategoryWork, CategoryHome:
		return Category(s)
	default:
		return CategoryPersonal
	}
}

// ParseRepeat converts s to a Repeat, defaulting to none.
func ParseRepeat(s string) Repeat {
	switch Repeat(s) {
	case RepeatDaily, RepeatWeekly, RepeatMonthly:
		return Repeat(s)
	default:
		return RepeatNone
	}
}
