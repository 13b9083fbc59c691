package state_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/dailykit/internal/model"
	"github.com/nhle/dailykit/internal/repository"
	"github.com/nhle/dailykit/internal/state"
	"github.com/nhle/dailykit/internal/stats"
	"github.com/nhle/dailykit/internal/store"
	"github.com/nhle/dailykit/tests/testutil"
)

// lastInstant lies in the final sub-millisecond of base's day.
var lastInstant = time.Date(2026, 6, 15, 23, 59, 59, 999_600_000, time.Local)

// openClosable opens a store the test closes itself to simulate a broken database.
func openClosable(t *testing.T) *store.SQLiteStore {
	t.Helper()
	s, err := store.NewSQLiteStore(":memory:")
	require.NoError(t, err)
	return s
}

func TestTaskSlice_AddEchoMatchesStore(t *testing.T) {
	ctx := context.Background()
	clock := testutil.NewClock(lastInstant)
	repo := repository.NewTaskRepository(testutil.NewTestStore(t))
	tasks := state.NewTaskSlice(repo, state.Options{Clock: clock.Func()})

	due := lastInstant
	added, ok := tasks.Add(ctx, model.Task{Title: "no enums", DueDate: &due})
	require.True(t, ok)

	stored, err := repo.GetByID(ctx, added.ID)
	require.NoError(t, err)
	if diff := cmp.Diff(stored, added); diff != "" {
		t.Errorf("echo differs from the store (-store +echo):\n%s", diff)
	}
	cached, ok := tasks.Find(added.ID)
	require.True(t, ok)
	assert.Empty(t, cmp.Diff(stored, cached))

	// The cache alone places the task in today's personal bucket.
	sum := stats.Todos(tasks.Items(), stats.Today(lastInstant), false)
	assert.Equal(t, 1, sum.Total)
	assert.Equal(t, stats.CategoryCount{Total: 1}, sum.ByCategory[model.CategoryPersonal])

	clock.Advance(300 * time.Microsecond)
	require.True(t, tasks.Toggle(ctx, added.ID))
	stored, err = repo.GetByID(ctx, added.ID)
	require.NoError(t, err)
	cached, _ = tasks.Find(added.ID)
	assert.Empty(t, cmp.Diff(stored, cached))
}

func TestTimerSlice_CacheMatchesStoreAfterStop(t *testing.T) {
	ctx := context.Background()
	clock := testutil.NewClock(lastInstant)
	repo := repository.NewTimerRepository(testutil.NewTestStore(t))
	timers := state.NewTimerSlice(repo, state.Options{Clock: clock.Func()})

	tm, ok := timers.Start(ctx, "focus", 25*time.Minute+1500*time.Microsecond)
	require.True(t, ok)
	clock.Advance(1234567 * time.Microsecond)
	require.True(t, timers.Stop(ctx, tm.ID))

	stored, err := repo.GetByID(ctx, tm.ID)
	require.NoError(t, err)
	cached, _ := timers.Find(tm.ID)
	if diff := cmp.Diff(stored, cached); diff != "" {
		t.Errorf("cache differs from the store (-store +cache):\n%s", diff)
	}
}

func TestSlice_FailedWritesLeaveListUnchanged(t *testing.T) {
	ctx := context.Background()
	s := openClosable(t)
	tasks := state.NewTaskSlice(repository.NewTaskRepository(s), state.Options{})

	task, ok := tasks.Add(ctx, model.Task{Title: "kept"})
	require.True(t, ok)
	before := tasks.Items()
	require.NoError(t, s.Close())

	title := "renamed"
	assert.False(t, tasks.Update(ctx, task.ID, model.TaskPatch{Title: &title}))
	assert.Empty(t, cmp.Diff(before, tasks.Items()), "update")

	assert.False(t, tasks.Toggle(ctx, task.ID))
	assert.Empty(t, cmp.Diff(before, tasks.Items()), "toggle")

	assert.False(t, tasks.Remove(ctx, task.ID))
	assert.Empty(t, cmp.Diff(before, tasks.Items()), "remove")
}

func TestTaskSlice_ClearCompletedReportsFailure(t *testing.T) {
	ctx := context.Background()
	s := openClosable(t)
	tasks := state.NewTaskSlice(repository.NewTaskRepository(s), state.Options{})

	for _, title := range []string{"a", "b"} {
		task, ok := tasks.Add(ctx, model.Task{Title: title})
		require.True(t, ok)
		require.True(t, tasks.Toggle(ctx, task.ID))
	}
	require.NoError(t, s.Close())

	n, err := tasks.ClearCompleted(ctx)
	assert.Error(t, err)
	assert.Zero(t, n)
	assert.Len(t, tasks.Items(), 2)
}

func TestNoteSlice_FailedRemoveKeepsSelection(t *testing.T) {
	ctx := context.Background()
	s := openClosable(t)
	notes := state.NewNoteSlice(repository.NewNoteRepository(s, testutil.NewTestVault(t)), state.Options{})

	a, ok := notes.Add(ctx, model.Note{Title: "a"})
	require.True(t, ok)
	_, ok = notes.Add(ctx, model.Note{Title: "b"})
	require.True(t, ok)
	notes.Select(a.ID)
	before := notes.Items()
	require.NoError(t, s.Close())

	assert.False(t, notes.Remove(ctx, a.ID))
	assert.Empty(t, cmp.Diff(before, notes.Items()))
	sel, ok := notes.Selected()
	require.True(t, ok)
	assert.Equal(t, a.ID, sel.ID)
}

func TestNoteSlice_LockFailsWithoutVault(t *testing.T) {
	ctx := context.Background()
	notes := state.NewNoteSlice(
		repository.NewNoteRepository(testutil.NewTestStore(t), testutil.NewFailingVault(t)),
		state.Options{},
	)

	n, ok := notes.Add(ctx, model.Note{Title: "diary"})
	require.True(t, ok)

	assert.False(t, notes.Lock(ctx, n.ID, "2580"))
	got, _ := notes.Find(n.ID)
	assert.False(t, got.IsLocked)

	// The store agrees: the failed lock left nothing behind.
	notes.Load(ctx)
	got, ok = notes.Find(n.ID)
	require.True(t, ok)
	assert.False(t, got.IsLocked)

	_, ok = notes.Add(ctx, model.Note{Title: "secret", IsLocked: true, LockPin: "1111"})
	assert.False(t, ok)
	notes.Load(ctx)
	assert.Len(t, notes.Items(), 1)
}

func TestNoteSlice_UnlockRefusesMissingPin(t *testing.T) {
	ctx := context.Background()
	s := testutil.NewTestStore(t)
	notes := state.NewNoteSlice(repository.NewNoteRepository(s, testutil.NewTestVault(t)), state.Options{})

	// A locked row whose PIN never reached the vault.
	id, err := s.Notes().Insert(ctx, model.Note{Title: "orphan", IsLocked: true, CreatedAt: base, UpdatedAt: base})
	require.NoError(t, err)
	notes.Load(ctx)

	assert.False(t, notes.Unlock(id, ""))
	assert.False(t, notes.Unlock(id, "0000"))
}

func TestSlices_NamedQueries(t *testing.T) {
	ctx := context.Background()
	s := testutil.NewTestStore(t)
	clock := testutil.NewClock(base)
	opts := state.Options{Clock: clock.Func()}

	tasks := state.NewTaskSlice(repository.NewTaskRepository(s), opts)
	open, _ := tasks.Add(ctx, model.Task{Title: "open"})
	done, _ := tasks.Add(ctx, model.Task{Title: "done"})
	require.True(t, tasks.Toggle(ctx, done.ID))
	pending, err := tasks.Pending(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, open.ID, pending[0].ID)

	notes := state.NewNoteSlice(repository.NewNoteRepository(s, testutil.NewTestVault(t)), opts)
	pinned, _ := notes.Add(ctx, model.Note{Title: "pinned", IsPinned: true})
	_, _ = notes.Add(ctx, model.Note{Title: "plain"})
	gotNotes, err := notes.Pinned(ctx)
	require.NoError(t, err)
	require.Len(t, gotNotes, 1)
	assert.Equal(t, pinned.ID, gotNotes[0].ID)

	history := state.NewCalcSlice(repository.NewCalcRepository(s), state.Options{Limit: 1})
	starred, err := history.Evaluate(ctx, "1+1")
	require.NoError(t, err)
	require.True(t, history.ToggleFavorite(ctx, starred.ID))
	_, err = history.Evaluate(ctx, "2+2")
	require.NoError(t, err)
	_, cached := history.Find(starred.ID)
	require.False(t, cached, "evicted from the capped cache")
	favorites, err := history.Favorites(ctx)
	require.NoError(t, err)
	require.Len(t, favorites, 1)
	assert.Equal(t, starred.ID, favorites[0].ID)

	timers := state.NewTimerSlice(repository.NewTimerRepository(s), opts)
	today, _ := timers.Start(ctx, "today", time.Minute)
	clock.Advance(24 * time.Hour)
	_, _ = timers.Start(ctx, "tomorrow", time.Minute)
	w := stats.Today(base)
	gotTimers, err := timers.StartedBetween(ctx, w.Start, w.End)
	require.NoError(t, err)
	require.Len(t, gotTimers, 1)
	assert.Equal(t, today.ID, gotTimers[0].ID)

	meals := state.NewMealSlice(repository.NewMealRepository(s), opts)
	lunch, _ := meals.Log(ctx, "비빔밥", base)
	_, _ = meals.Log(ctx, "라면", base.AddDate(0, 0, -2))
	gotMeals, err := meals.Between(ctx, w.Start, w.End)
	require.NoError(t, err)
	require.Len(t, gotMeals, 1)
	assert.Equal(t, lunch.ID, gotMeals[0].ID)
}

func TestSlices_NamedQueriesReportStorageErrors(t *testing.T) {
	ctx := context.Background()
	s := openClosable(t)
	tasks := state.NewTaskSlice(repository.NewTaskRepository(s), state.Options{})
	require.NoError(t, s.Close())

	_, err := tasks.Pending(ctx)
	assert.ErrorIs(t, err, store.ErrStorage)
}
