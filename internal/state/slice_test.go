package state_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/dailykit/internal/model"
	"github.com/nhle/dailykit/internal/repository"
	"github.com/nhle/dailykit/internal/state"
	"github.com/nhle/dailykit/internal/store"
	"github.com/nhle/dailykit/tests/testutil"
)

var base = time.Date(2026, 6, 15, 10, 0, 0, 0, time.Local)

func newTaskSlice(t *testing.T) (*state.TaskSlice, *testutil.Clock) {
	t.Helper()
	clock := testutil.NewClock(base)
	repo := repository.NewTaskRepository(testutil.NewTestStore(t))
	return state.NewTaskSlice(repo, state.Options{Clock: clock.Func()}), clock
}

func TestTaskSlice_AddPrependsStoredTask(t *testing.T) {
	ctx := context.Background()
	tasks, clock := newTaskSlice(t)

	first, ok := tasks.Add(ctx, model.Task{Title: "first"})
	require.True(t, ok)
	clock.Advance(time.Minute)
	second, ok := tasks.Add(ctx, model.Task{Title: "second"})
	require.True(t, ok)

	assert.NotZero(t, first.ID)
	assert.True(t, second.CreatedAt.Equal(base.Add(time.Minute)))

	items := tasks.Items()
	require.Len(t, items, 2)
	assert.Equal(t, second.ID, items[0].ID)
	assert.Equal(t, first.ID, items[1].ID)
}

func TestTaskSlice_Toggle(t *testing.T) {
	ctx := context.Background()
	tasks, clock := newTaskSlice(t)

	task, ok := tasks.Add(ctx, model.Task{Title: "water plants"})
	require.True(t, ok)

	clock.Advance(time.Hour)
	require.True(t, tasks.Toggle(ctx, task.ID))

	got, ok := tasks.Find(task.ID)
	require.True(t, ok)
	assert.True(t, got.IsDone)
	assert.True(t, got.UpdatedAt.Equal(base.Add(time.Hour)))
	assert.True(t, got.CreatedAt.Equal(base))

	// A reload reads the same state back from the store.
	tasks.Load(ctx)
	got, ok = tasks.Find(task.ID)
	require.True(t, ok)
	assert.True(t, got.IsDone)

	require.True(t, tasks.Toggle(ctx, task.ID))
	got, _ = tasks.Find(task.ID)
	assert.False(t, got.IsDone)

	assert.False(t, tasks.Toggle(ctx, 9999))
}

func TestTaskSlice_ClearCompleted(t *testing.T) {
	ctx := context.Background()
	tasks, _ := newTaskSlice(t)

	for _, title := range []string{"a", "b", "c", "d"} {
		task, ok := tasks.Add(ctx, model.Task{Title: title})
		require.True(t, ok)
		if title != "d" {
			require.True(t, tasks.Toggle(ctx, task.ID))
		}
	}

	n, err := tasks.ClearCompleted(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	items := tasks.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "d", items[0].Title)

	tasks.Load(ctx)
	assert.Len(t, tasks.Items(), 1)
}

func TestSlice_Subscribe(t *testing.T) {
	ctx := context.Background()
	tasks, _ := newTaskSlice(t)

	var (
		mu    sync.Mutex
		sizes []int
	)
	unsubscribe := tasks.Subscribe(func(items []model.Task) {
		mu.Lock()
		sizes = append(sizes, len(items))
		mu.Unlock()
	})

	_, ok := tasks.Add(ctx, model.Task{Title: "one"})
	require.True(t, ok)
	_, ok = tasks.Add(ctx, model.Task{Title: "two"})
	require.True(t, ok)

	unsubscribe()
	_, ok = tasks.Add(ctx, model.Task{Title: "three"})
	require.True(t, ok)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []int{1, 2}, sizes)
}

func TestSlice_LoadFailureKeepsList(t *testing.T) {
	ctx := context.Background()
	s, err := store.NewSQLiteStore(":memory:")
	require.NoError(t, err)

	tasks := state.NewTaskSlice(repository.NewTaskRepository(s), state.Options{})
	_, ok := tasks.Add(ctx, model.Task{Title: "kept"})
	require.True(t, ok)

	require.NoError(t, s.Close())

	tasks.Load(ctx)
	assert.False(t, tasks.Loading())
	require.Len(t, tasks.Items(), 1)
	assert.Equal(t, "kept", tasks.Items()[0].Title)

	// Failed writes leave the cache alone as well.
	_, ok = tasks.Add(ctx, model.Task{Title: "lost"})
	assert.False(t, ok)
	assert.Len(t, tasks.Items(), 1)
}

func TestSlice_ClearReturnsStorageError(t *testing.T) {
	ctx := context.Background()
	s, err := store.NewSQLiteStore(":memory:")
	require.NoError(t, err)

	meals := state.NewMealSlice(repository.NewMealRepository(s), state.Options{})
	_, ok := meals.Log(ctx, "김밥", base)
	require.True(t, ok)

	require.NoError(t, s.Close())

	err = meals.Clear(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, store.ErrStorage)
	assert.Len(t, meals.Items(), 1)
}

func TestSlice_Clear(t *testing.T) {
	ctx := context.Background()
	tasks, _ := newTaskSlice(t)

	_, ok := tasks.Add(ctx, model.Task{Title: "x"})
	require.True(t, ok)

	require.NoError(t, tasks.Clear(ctx))
	assert.Empty(t, tasks.Items())

	tasks.Load(ctx)
	assert.Empty(t, tasks.Items())
}

func TestSlice_ItemsIsASnapshot(t *testing.T) {
	ctx := context.Background()
	tasks, _ := newTaskSlice(t)

	_, ok := tasks.Add(ctx, model.Task{Title: "original"})
	require.True(t, ok)

	items := tasks.Items()
	items[0].Title = "changed"

	assert.Equal(t, "original", tasks.Items()[0].Title)
}
