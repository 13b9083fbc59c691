package state

import (
	"context"
	"crypto/subtle"
	"sync"

	"go.uber.org/zap"

	"github.com/nhle/dailykit/internal/model"
	"github.com/nhle/dailykit/internal/repository"
)

// NoteSlice caches notes and tracks the currently selected one.
type NoteSlice struct {
	*Slice[model.Note, model.NotePatch]
	notes repository.NoteRepository

	selMu    sync.Mutex
	selected int64
}

// NewNoteSlice returns an empty note slice over repo with nothing selected.
func NewNoteSlice(repo repository.NoteRepository, opts Options) *NoteSlice {
	return &NoteSlice{
		Slice: NewSlice[model.Note, model.NotePatch]("note", repo, opts),
		notes: repo,
	}
}

// Pinned reads the pinned, unarchived notes from the store.
func (s *NoteSlice) Pinned(ctx context.Context) ([]model.Note, error) {
	notes, err := s.notes.GetPinned(ctx)
	if err != nil {
		s.log.Error("pinned query failed", zap.Error(err))
		return nil, err
	}
	return notes, nil
}

// Select marks the note with the given id as selected. Zero clears the selection.
func (s *NoteSlice) Select(id int64) {
	s.selMu.Lock()
	s.selected = id
	s.selMu.Unlock()
}

// Selected returns the selected note, if it is still cached.
func (s *NoteSlice) Selected() (model.Note, bool) {
	s.selMu.Lock()
	id := s.selected
	s.selMu.Unlock()

	if id == 0 {
		return model.Note{}, false
	}
	return s.Find(id)
}

// Remove deletes the note. When it was selected, the selection moves to the
// first remaining note, or to none.
func (s *NoteSlice) Remove(ctx context.Context, id int64) bool {
	if !s.Slice.Remove(ctx, id) {
		return false
	}

	s.selMu.Lock()
	defer s.selMu.Unlock()
	if s.selected == id {
		s.selected = 0
		if items := s.Items(); len(items) > 0 {
			s.selected = items[0].ID
		}
	}
	return true
}

// SetPinned pins or unpins the note.
func (s *NoteSlice) SetPinned(ctx context.Context, id int64, pinned bool) bool {
	return s.Update(ctx, id, model.NotePatch{IsPinned: &pinned})
}

// Lock protects the note with pin.
func (s *NoteSlice) Lock(ctx context.Context, id int64, pin string) bool {
	locked := true
	return s.Update(ctx, id, model.NotePatch{IsLocked: &locked, LockPin: &pin})
}

// Unlock reports whether pin opens the cached note. Unlocked notes open with
// any pin. A locked note whose PIN is missing never opens.
func (s *NoteSlice) Unlock(id int64, pin string) bool {
	n, ok := s.Find(id)
	if !ok {
		return false
	}
	if !n.IsLocked {
		return true
	}
	if n.LockPin == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(n.LockPin), []byte(pin)) == 1
}
