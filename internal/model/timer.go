package model

import "time"

// Timer is one focus session.
type Timer struct {
	ID       int64         `json:"id"`
	Label    string        `json:"label"`
	Duration time.Duration `json:"duration"`

	StartedAt time.Time `json:"started_at"`

	// EndedAt is nil while the timer is running or if it was abandoned.
	EndedAt *time.Time `json:"ended_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

// TimerPatch is a partial update for a Timer. Timers carry no UpdatedAt.
type TimerPatch struct {
	Label     *string
	Duration  *time.Duration
	StartedAt *time.Time
	EndedAt   **time.Time
}

// Apply copies the set fields of p onto t.
func (p TimerPatch) Apply(t *Timer) {
	if p.Label != nil {
		t.Label = *p.Label
	}
	if p.Duration != nil {
		t.Duration = *p.Duration
	}
	if p.StartedAt != nil {
		t.StartedAt = *p.StartedAt
	}
	if p.EndedAt != nil {
		t.EndedAt = *p.EndedAt
	}
}

// Touch returns p unchanged.
func (p TimerPatch) Touch(time.Time) TimerPatch { return p }

// GetID returns the store-assigned identifier.
func (t Timer) GetID() int64 { return t.ID }

// WithID returns a copy of t carrying id.
func (t Timer) WithID(id int64) Timer {
	t.ID = id
	return t
}

// Stamp sets CreatedAt to now.
func (t Timer) Stamp(now time.Time) Timer {
	t.CreatedAt = now
	return t
}

// Normalize returns t as the store keeps it, with the duration and every
// instant truncated to milliseconds.
func (t Timer) Normalize() Timer {
	t.Duration = t.Duration.Truncate(time.Millisecond)
	t.StartedAt = Millis(t.StartedAt)
	t.EndedAt = millisPtr(t.EndedAt)
	t.CreatedAt = Millis(t.CreatedAt)
	return t
}

// Running reports whether the timer has no end yet.
func (t Timer) Running() bool { return t.EndedAt == nil }
