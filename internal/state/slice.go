// Package state holds the in-memory cache slices that mirror each
// repository for synchronous reads.
//
// A slice patches its list only after the repository call succeeds, so the
// cache and the store diverge only when a write fails. Load re-reads the
// store and is the way to reconcile after a suspected divergence.
package state

import (
	"context"
	"slices"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/nhle/dailykit/internal/model"
	"github.com/nhle/dailykit/internal/repository"
)

// Entity is implemented by every model type held in a slice.
type Entity[T any] interface {
	GetID() int64
	WithID(id int64) T

	// Stamp sets the creation (and, when present, update) timestamps.
	Stamp(now time.Time) T

	// Normalize returns the value as the store would read it back.
	Normalize() T
}

// Patch is a repository patch that can carry its own update timestamp.
type Patch[T any, P any] interface {
	repository.Patch[T]
	Touch(now time.Time) P
}

// Options configures a slice.
type Options struct {
	Logger *zap.Logger

	// Clock defaults to time.Now.
	Clock func() time.Time

	// Limit caps the in-memory list to the most recent entries. Zero means no cap.
	Limit int
}

func (o Options) withDefaults() Options {
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	if o.Clock == nil {
		o.Clock = time.Now
	}
	return o
}

// Slice is the in-memory mirror of one repository.
type Slice[T Entity[T], P Patch[T, P]] struct {
	kind  string
	repo  repository.Repository[T, P]
	log   *zap.Logger
	clock func() time.Time
	limit int

	mu      sync.RWMutex
	items   []T
	loading bool
	subs    map[int]func([]T)
	nextSub int
}

// NewSlice returns an empty slice over repo. kind names the entity in logs.
func NewSlice[T Entity[T], P Patch[T, P]](kind string, repo repository.Repository[T, P], opts Options) *Slice[T, P] {
	opts = opts.withDefaults()
	return &Slice[T, P]{
		kind:  kind,
		repo:  repo,
		log:   opts.Logger.With(zap.String("kind", kind)),
		clock: opts.Clock,
		limit: opts.Limit,
		subs:  make(map[int]func([]T)),
	}
}

// Items returns a snapshot of the cached list.
func (s *Slice[T, P]) Items() []T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.items)
}

// Loading reports whether a Load is in flight.
func (s *Slice[T, P]) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// Find returns the cached entity with the given id.
func (s *Slice[T, P]) Find(id int64) (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, v := range s.items {
		if v.GetID() == id {
			return v, true
		}
	}
	var zero T
	return zero, false
}

// Subscribe registers fn to receive a snapshot after every change of the
// list. The returned function unregisters it.
func (s *Slice[T, P]) Subscribe(fn func([]T)) func() {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

// Load replaces the cached list with the repository contents. On failure
// the previous list is kept.
func (s *Slice[T, P]) Load(ctx context.Context) {
	s.mu.Lock()
	s.loading = true
	s.mu.Unlock()

	items, err := s.repo.GetAll(ctx)
	if err != nil {
		s.log.Error("load failed, keeping cached list", zap.Error(err))
		s.mu.Lock()
		s.loading = false
		s.mu.Unlock()
		return
	}

	s.mutate(func([]T) []T {
		s.loading = false
		return s.capped(items)
	})
	s.log.Debug("loaded", zap.Int("count", len(items)))
}

// Add stamps v, stores it and prepends the stored entity to the list.
// The returned entity equals what GetByID reads back. ok is false when the
// store rejected the write.
func (s *Slice[T, P]) Add(ctx context.Context, v T) (T, bool) {
	v = v.Stamp(s.now()).Normalize()

	id, err := s.repo.Add(ctx, v)
	if err != nil {
		s.log.Error("add failed", zap.Error(err))
		var zero T
		return zero, false
	}
	v = v.WithID(id)

	s.mutate(func(items []T) []T {
		out := make([]T, 0, len(items)+1)
		out = append(out, v)
		out = append(out, items...)
		return s.capped(out)
	})
	return v, true
}

// Update stamps patch, stores it and merges it into the cached entity.
func (s *Slice[T, P]) Update(ctx context.Context, id int64, patch P) bool {
	patch = patch.Touch(s.now())

	if err := s.repo.Update(ctx, id, patch); err != nil {
		s.log.Error("update failed", zap.Int64("id", id), zap.Error(err))
		return false
	}

	s.mutate(func(items []T) []T {
		out := make([]T, len(items))
		for i, v := range items {
			if v.GetID() == id {
				patch.Apply(&v)
				v = v.Normalize()
			}
			out[i] = v
		}
		return out
	})
	return true
}

// Remove deletes the entity from the store and the list.
func (s *Slice[T, P]) Remove(ctx context.Context, id int64) bool {
	if err := s.repo.Remove(ctx, id); err != nil {
		s.log.Error("remove failed", zap.Int64("id", id), zap.Error(err))
		return false
	}

	s.mutate(func(items []T) []T {
		return slices.DeleteFunc(slices.Clone(items), func(v T) bool {
			return v.GetID() == id
		})
	})
	return true
}

// Clear empties the table and the list. Unlike the other actions it
// returns the storage error to the caller.
func (s *Slice[T, P]) Clear(ctx context.Context) error {
	if err := s.repo.Clear(ctx); err != nil {
		s.log.Error("clear failed", zap.Error(err))
		return err
	}

	s.mutate(func([]T) []T { return nil })
	return nil
}

// mutate replaces the list under the lock and notifies subscribers outside it.
// fn must not modify its argument in place.
func (s *Slice[T, P]) mutate(fn func(items []T) []T) {
	s.mu.Lock()
	s.items = fn(s.items)
	snapshot := slices.Clone(s.items)
	subs := make([]func([]T), 0, len(s.subs))
	for _, sub := range s.subs {
		subs = append(subs, sub)
	}
	s.mu.Unlock()

	for _, sub := range subs {
		sub(snapshot)
	}
}

// now reads the clock at store precision.
func (s *Slice[T, P]) now() time.Time {
	return model.Millis(s.clock())
}

func (s *Slice[T, P]) capped(items []T) []T {
	if s.limit > 0 && len(items) > s.limit {
		return items[:s.limit]
	}
	return items
}
