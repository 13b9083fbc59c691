package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/nhle/dailykit/internal/credential"
	"github.com/nhle/dailykit/internal/model"
	"github.com/nhle/dailykit/internal/store"
)

// NoteRepository stores notes. Lock PINs live in the credential vault.
type NoteRepository interface {
	Repository[model.Note, model.NotePatch]

	// GetPinned returns pinned notes that are not archived.
	GetPinned(ctx context.Context) ([]model.Note, error)
}

type noteRepository struct {
	*tableRepository[model.Note, model.NotePatch]
	vault *credential.Vault
}

// NewNoteRepository returns the note repository backed by s, keeping
// lock PINs in vault.
func NewNoteRepository(s *store.SQLiteStore, vault *credential.Vault) NoteRepository {
	return &noteRepository{
		tableRepository: newTableRepository[model.Note, model.NotePatch](s.Notes()),
		vault:           vault,
	}
}

// Add inserts the note and then stores its PIN. If the PIN cannot be
// stored the inserted row is deleted again.
func (r *noteRepository) Add(ctx context.Context, n model.Note) (int64, error) {
	id, err := r.tableRepository.Add(ctx, n)
	if err != nil {
		return 0, err
	}
	if n.LockPin == "" {
		return id, nil
	}
	if err := r.savePin(id, n.LockPin); err != nil {
		if delErr := r.table.Delete(ctx, id); delErr != nil {
			return 0, errors.Join(err, fmt.Errorf("rolling back note %d: %w", id, delErr))
		}
		return 0, err
	}
	return id, nil
}

// Update writes the row and, when the patch carries a PIN, the vault entry.
// If the vault write fails the previous row is put back, so a note is never
// stored as locked without its PIN.
func (r *noteRepository) Update(ctx context.Context, id int64, patch model.NotePatch) error {
	if patch.LockPin == nil {
		return r.tableRepository.Update(ctx, id, patch)
	}

	prev, err := r.table.Get(ctx, id)
	if err != nil {
		return fmt.Errorf("updating notes %d: %w", id, err)
	}
	if err := r.tableRepository.Update(ctx, id, patch); err != nil {
		return err
	}
	if err := r.savePin(id, *patch.LockPin); err != nil {
		if putErr := r.table.Put(ctx, prev); putErr != nil {
			return errors.Join(err, fmt.Errorf("rolling back note %d: %w", id, putErr))
		}
		return err
	}
	return nil
}

func (r *noteRepository) Remove(ctx context.Context, id int64) error {
	if err := r.tableRepository.Remove(ctx, id); err != nil {
		return err
	}
	return r.vault.Delete(credential.NotePinKey(id))
}

func (r *noteRepository) GetByID(ctx context.Context, id int64) (model.Note, error) {
	n, err := r.tableRepository.GetByID(ctx, id)
	if err != nil {
		return model.Note{}, err
	}
	return r.withPin(n)
}

func (r *noteRepository) GetAll(ctx context.Context) ([]model.Note, error) {
	notes, err := r.tableRepository.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	return r.withPins(notes)
}

func (r *noteRepository) Clear(ctx context.Context) error {
	notes, err := r.tableRepository.GetAll(ctx)
	if err != nil {
		return err
	}
	if err := r.tableRepository.Clear(ctx); err != nil {
		return err
	}
	for _, n := range notes {
		if err := r.vault.Delete(credential.NotePinKey(n.ID)); err != nil {
			return err
		}
	}
	return nil
}

func (r *noteRepository) GetPinned(ctx context.Context) ([]model.Note, error) {
	notes, err := r.where(ctx, "is_pinned = 1 AND is_archived = 0")
	if err != nil {
		return nil, err
	}
	return r.withPins(notes)
}

// savePin stores pin for the note, or removes it when pin is empty.
func (r *noteRepository) savePin(id int64, pin string) error {
	key := credential.NotePinKey(id)
	if pin == "" {
		if err := r.vault.Delete(key); err != nil {
			return fmt.Errorf("removing pin for note %d: %w", id, err)
		}
		return nil
	}
	if err := r.vault.Set(key, pin); err != nil {
		return fmt.Errorf("saving pin for note %d: %w", id, err)
	}
	return nil
}

func (r *noteRepository) withPin(n model.Note) (model.Note, error) {
	pin, err := r.vault.Get(credential.NotePinKey(n.ID))
	switch {
	case errors.Is(err, credential.ErrNotFound):
		return n, nil
	case err != nil:
		return model.Note{}, fmt.Errorf("loading pin for note %d: %w", n.ID, err)
	}
	n.LockPin = pin
	return n, nil
}

func (r *noteRepository) withPins(notes []model.Note) ([]model.Note, error) {
	for i := range notes {
		n, err := r.withPin(notes[i])
		if err != nil {
			return nil, err
		}
		notes[i] = n
	}
	return notes, nil
}
