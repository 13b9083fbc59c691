package state

import (
	"context"
	"fmt"
	"sync/atomic"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/nhle/dailykit/internal/model"
	"github.com/nhle/dailykit/internal/repository"
)

// clearConcurrency bounds the removes ClearCompleted keeps in flight.
const clearConcurrency = 4

// TaskSlice caches to-do tasks.
type TaskSlice struct {
	*Slice[model.Task, model.TaskPatch]
	tasks repository.TaskRepository
}

// NewTaskSlice returns an empty task slice over repo.
func NewTaskSlice(repo repository.TaskRepository, opts Options) *TaskSlice {
	return &TaskSlice{
		Slice: NewSlice[model.Task, model.TaskPatch]("task", repo, opts),
		tasks: repo,
	}
}

// Toggle flips IsDone of the cached task.
func (s *TaskSlice) Toggle(ctx context.Context, id int64) bool {
	t, ok := s.Find(id)
	if !ok {
		return false
	}
	done := !t.IsDone
	return s.Update(ctx, id, model.TaskPatch{IsDone: &done})
}

// Pending reads the tasks that are not done from the store.
func (s *TaskSlice) Pending(ctx context.Context) ([]model.Task, error) {
	tasks, err := s.tasks.GetPending(ctx)
	if err != nil {
		s.log.Error("pending query failed", zap.Error(err))
		return nil, err
	}
	return tasks, nil
}

// ClearCompleted removes every done task, one Remove per task, and waits
// for all of them. It returns how many were removed and an error naming
// the first task the store refused to delete.
func (s *TaskSlice) ClearCompleted(ctx context.Context) (int, error) {
	var done []int64
	for _, t := range s.Items() {
		if t.IsDone {
			done = append(done, t.ID)
		}
	}

	var removed atomic.Int64
	var g errgroup.Group
	g.SetLimit(clearConcurrency)
	for _, id := range done {
		g.Go(func() error {
			if !s.Remove(ctx, id) {
				return fmt.Errorf("removing task %d", id)
			}
			removed.Add(1)
			return nil
		})
	}
	err := g.Wait()
	return int(removed.Load()), err
}
