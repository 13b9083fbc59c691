package model

import "time"

// CalcEntry is one evaluated calculator expression.
type CalcEntry struct {
	ID         int64     `json:"id"`
	Expression string    `json:"expression"`
	Result     string    `json:"result"`
	Favorite   bool      `json:"favorite"`
	CreatedAt  time.Time `json:"created_at"`
}

// CalcPatch is a partial update for a CalcEntry.
type CalcPatch struct {
	Favorite *bool
}

// Apply copies the set fields of p onto c.
func (p CalcPatch) Apply(c *CalcEntry) {
	if p.Favorite != nil {
		c.Favorite = *p.Favorite
	}
}

// Touch returns p unchanged.
func (p CalcPatch) Touch(time.Time) CalcPatch { return p }

// GetID returns the store-assigned identifier.
func (c CalcEntry) GetID() int64 { return c.ID }

// WithID returns a copy of c carrying id.
func (c CalcEntry) WithID(id int64) CalcEntry {
	c.ID = id
	return c
}

// Stamp sets CreatedAt to now.
func (c CalcEntry) Stamp(now time.Time) CalcEntry {
	c.CreatedAt = now
	return c
}

// Normalize truncates CreatedAt to milliseconds.
func (c CalcEntry) Normalize() CalcEntry {
	c.CreatedAt = Millis(c.CreatedAt)
	return c
}
