package model

import "time"

// Note is a free-form text note.
type Note struct {
	ID         int64    `json:"id"`
	Title      string   `json:"title"`
	Content    string   `json:"content"`
	Tags       []string `json:"tags,omitempty"`
	IsPinned   bool     `json:"is_pinned"`
	IsArchived bool     `json:"is_archived"`
	IsLocked   bool     `json:"is_locked"`

	// LockPin is kept in the credential vault, never in the database.
	LockPin string `json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NotePatch is a partial update for a Note.
type NotePatch struct {
	Title      *string
	Content    *string
	Tags       *[]string
	IsPinned   *bool
	IsArchived *bool
	IsLocked   *bool
	LockPin    *string
	UpdatedAt  *time.Time
}

// Apply copies the set fields of p onto n.
func (p NotePatch) Apply(n *Note) {
	if p.Title != nil {
		n.Title = *p.Title
	}
	if p.Content != nil {
		n.Content = *p.Content
	}
	if p.Tags != nil {
		n.Tags = append([]string(nil), (*p.Tags)...)
	}
	if p.IsPinned != nil {
		n.IsPinned = *p.IsPinned
	}
	if p.IsArchived != nil {
		n.IsArchived = *p.IsArchived
	}
	if p.IsLocked != nil {
		n.IsLocked = *p.IsLocked
	}
	if p.LockPin != nil {
		n.LockPin = *p.LockPin
	}
	if p.UpdatedAt != nil {
		n.UpdatedAt = *p.UpdatedAt
	}
}

// Touch sets the patch's UpdatedAt.
func (p NotePatch) Touch(now time.Time) NotePatch {
	p.UpdatedAt = &now
	return p
}

// GetID returns the store-assigned identifier.
func (n Note) GetID() int64 { return n.ID }

// WithID returns a copy of n carrying id.
func (n Note) WithID(id int64) Note {
	n.ID = id
	return n
}

// Stamp sets both timestamps to now.
func (n Note) Stamp(now time.Time) Note {
	n.CreatedAt = now
	n.UpdatedAt = now
	return n
}

// Normalize returns n as the store keeps it. An empty tag set reads back as nil.
func (n Note) Normalize() Note {
	if len(n.Tags) == 0 {
		n.Tags = nil
	}
	n.CreatedAt = Millis(n.CreatedAt)
	n.UpdatedAt = Millis(n.UpdatedAt)
	return n
}
