package model

import "time"

// DateKeyLayout is the layout of Fortune.DateKey.
const DateKeyLayout = "2006-01-02"

// DateKey returns the calendar-day key of t in t's location.
func DateKey(t time.Time) string {
	return t.Format(DateKeyLayout)
}

// Fortune is the fortune text shown for one calendar day.
type Fortune struct {
	ID        int64     `json:"id"`
	DateKey   string    `json:"date_key"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

// FortunePatch is a partial update for a Fortune.
type FortunePatch struct {
	Text *string
}

// Apply copies the set fields of p onto f.
func (p FortunePatch) Apply(f *Fortune) {
	if p.Text != nil {
		f.Text = *p.Text
	}
}

// Touch returns p unchanged.
func (p FortunePatch) Touch(time.Time) FortunePatch { return p }

// GetID returns the store-assigned identifier.
func (f Fortune) GetID() int64 { return f.ID }

// WithID returns a copy of f carrying id.
func (f Fortune) WithID(id int64) Fortune {
	f.ID = id
	return f
}

// Stamp sets CreatedAt to now.
func (f Fortune) Stamp(now time.Time) Fortune {
	f.CreatedAt = now
	return f
}

// Normalize truncates CreatedAt to milliseconds.
func (f Fortune) Normalize() Fortune {
	f.CreatedAt = Millis(f.CreatedAt)
	return f
}
