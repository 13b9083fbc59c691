// Package repository exposes one CRUD façade per entity kind over the
// record store.
package repository

import (
	"context"
	"fmt"

	"github.com/nhle/dailykit/internal/store"
)

// Patch is a partial update of T. Fields the patch does not set are left untouched.
type Patch[T any] interface {
	Apply(v *T)
}

// Repository is the capability shared by every entity kind.
type Repository[T any, P Patch[T]] interface {
	// Add stores v and returns the store-assigned id. v's own id is ignored.
	Add(ctx context.Context, v T) (int64, error)

	// Update applies patch to the stored entity. Returns store.ErrNotFound
	// when no entity has the id.
	Update(ctx context.Context, id int64, patch P) error

	// Remove deletes the entity. Removing an absent id is not an error.
	Remove(ctx context.Context, id int64) error

	// GetByID returns store.ErrNotFound when no entity has the id.
	GetByID(ctx context.Context, id int64) (T, error)

	// GetAll returns the whole table in the store's declared order.
	GetAll(ctx context.Context) ([]T, error)

	Clear(ctx context.Context) error
}

// tableRepository implements Repository over a single store.Table.
type tableRepository[T any, P Patch[T]] struct {
	table *store.Table[T]
}

func newTableRepository[T any, P Patch[T]](table *store.Table[T]) *tableRepository[T, P] {
	return &tableRepository[T, P]{table: table}
}

func (r *tableRepository[T, P]) Add(ctx context.Context, v T) (int64, error) {
	id, err := r.table.Insert(ctx, v)
	if err != nil {
		return 0, fmt.Errorf("adding to %s: %w", r.table.Name(), err)
	}
	return id, nil
}

func (r *tableRepository[T, P]) Update(ctx context.Context, id int64, patch P) error {
	current, err := r.table.Get(ctx, id)
	if err != nil {
		return fmt.Errorf("updating %s %d: %w", r.table.Name(), id, err)
	}

	patch.Apply(&current)

	if err := r.table.Put(ctx, current); err != nil {
		return fmt.Errorf("updating %s %d: %w", r.table.Name(), id, err)
	}
	return nil
}

func (r *tableRepository[T, P]) Remove(ctx context.Context, id int64) error {
	if err := r.table.Delete(ctx, id); err != nil {
		return fmt.Errorf("removing %s %d: %w", r.table.Name(), id, err)
	}
	return nil
}

func (r *tableRepository[T, P]) GetByID(ctx context.Context, id int64) (T, error) {
	return r.table.Get(ctx, id)
}

func (r *tableRepository[T, P]) GetAll(ctx context.Context) ([]T, error) {
	items, err := store.Collect(r.table.ScanAll(ctx))
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", r.table.Name(), err)
	}
	return items, nil
}

func (r *tableRepository[T, P]) Clear(ctx context.Context) error {
	if err := r.table.ClearAll(ctx); err != nil {
		return fmt.Errorf("clearing %s: %w", r.table.Name(), err)
	}
	return nil
}

// where collects the rows matching cond.
func (r *tableRepository[T, P]) where(ctx context.Context, cond string, args ...any) ([]T, error) {
	items, err := store.Collect(r.table.Where(ctx, cond, args...))
	if err != nil {
		return nil, fmt.Errorf("querying %s: %w", r.table.Name(), err)
	}
	return items, nil
}
