package stats

import (
	"slices"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"

	"github.com/nhle/dailykit/internal/model"
)

var now = time.Date(2026, 6, 17, 18, 0, 0, 0, time.Local) // Wednesday

func at(day, hour, minute int) time.Time {
	return time.Date(2026, 6, day, hour, minute, 0, 0, time.Local)
}

func ptr[T any](v T) *T { return &v }

func TestCompletionRate(t *testing.T) {
	assert.Equal(t, 0, CompletionRate(0, 0))
	assert.Equal(t, 100, CompletionRate(3, 3))
	assert.Equal(t, 33, CompletionRate(1, 3))
	assert.Equal(t, 67, CompletionRate(2, 3))
	assert.Equal(t, 50, CompletionRate(1, 2))

	for total := 1; total <= 20; total++ {
		for done := 0; done <= total; done++ {
			r := CompletionRate(done, total)
			assert.GreaterOrEqual(t, r, 0)
			assert.LessOrEqual(t, r, 100)
		}
	}
}

func TestTodos_ToggleScenario(t *testing.T) {
	task := model.Task{
		ID:        1,
		Priority:  model.PriorityHigh,
		Category:  model.CategoryPersonal,
		CreatedAt: at(17, 9, 0),
		UpdatedAt: at(17, 9, 0),
	}
	assert.Equal(t, 1, HighPriorityPending([]model.Task{task}))

	task.IsDone = true
	task.UpdatedAt = at(17, 10, 0)
	tasks := []model.Task{task}

	sum := Todos(tasks, Today(now), false)
	assert.Equal(t, 1, sum.Completed)
	assert.Equal(t, 1, sum.Total)
	assert.Equal(t, 100, sum.Rate)
	assert.Equal(t, CategoryCount{Completed: 1, Total: 1}, sum.ByCategory[model.CategoryPersonal])
	assert.Equal(t, 0, HighPriorityPending(tasks))
}

func TestTodos_EmptyHasAllCategories(t *testing.T) {
	sum := Todos(nil, Today(now), true)

	assert.Zero(t, sum.Rate)
	assert.Len(t, sum.ByCategory, 3)
	for _, c := range model.Categories {
		assert.Zero(t, sum.ByCategory[c].Rate())
	}
}

func TestTodos_RangeAndWeekdays(t *testing.T) {
	tasks := []model.Task{
		// created last week, finished Monday
		{IsDone: true, Category: model.CategoryWork, CreatedAt: at(10, 9, 0), UpdatedAt: at(15, 11, 0)},
		// finished Wednesday
		{IsDone: true, Category: model.CategoryWork, CreatedAt: at(16, 9, 0), UpdatedAt: at(17, 8, 0)},
		{IsDone: true, Category: model.CategoryHome, CreatedAt: at(17, 9, 0), UpdatedAt: at(17, 9, 30)},
		{Category: model.CategoryHome, CreatedAt: at(16, 9, 0), UpdatedAt: at(16, 9, 0)},
		// outside the week entirely
		{IsDone: true, Category: model.CategoryWork, CreatedAt: at(1, 9, 0), UpdatedAt: at(2, 9, 0)},
	}

	sum := Todos(tasks, ThisWeek(now), true)
	assert.Equal(t, 3, sum.Completed)
	assert.Equal(t, 4, sum.Total)
	assert.Equal(t, 75, sum.Rate)
	assert.Equal(t, CategoryCount{Completed: 2, Total: 2}, sum.ByCategory[model.CategoryWork])
	assert.Equal(t, CategoryCount{Completed: 1, Total: 2}, sum.ByCategory[model.CategoryHome])
	assert.Equal(t, [7]int{1, 0, 2, 0, 0, 0, 0}, sum.Weekdays)

	today := Todos(tasks, Today(now), false)
	assert.Equal(t, 2, today.Completed)
	assert.Equal(t, [7]int{}, today.Weekdays)
}

func TestDueIn(t *testing.T) {
	tasks := []model.Task{
		{DueDate: ptr(at(17, 23, 0))},
		{DueDate: ptr(at(18, 9, 0))},
		{IsDone: true, DueDate: ptr(at(17, 12, 0))},
		{},
	}
	assert.Equal(t, 1, DueIn(tasks, Today(now)))
	assert.Equal(t, 2, DueIn(tasks, ThisWeek(now)))
}

func TestTimers_OnlyFinishedCount(t *testing.T) {
	timers := []model.Timer{
		{StartedAt: at(17, 9, 0), EndedAt: ptr(at(17, 9, 25))},
		{StartedAt: at(17, 11, 0)},
	}

	assert.Equal(t, 25*time.Minute, FocusTime(timers, now))
	assert.Equal(t, TimerSummary{Focus: 25 * time.Minute, Sessions: 1}, Timers(timers, Today(now)))
}

func TestTopMenus(t *testing.T) {
	meals := []model.Meal{
		{MenuName: "김밥", MealDate: at(17, 8, 0)},
		{MenuName: "라면", MealDate: at(17, 12, 0)},
		{MenuName: "김밥", MealDate: at(17, 19, 0)},
	}

	got := TopMenus(meals, Today(now), 3)
	want := []MenuCount{{"김밥", 2}, {"라면", 1}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("TopMenus() mismatch (-want +got):\n%s", diff)
	}
}

func TestTopMenus_TiesKeepFirstSeenOrderAndLimit(t *testing.T) {
	meals := []model.Meal{
		{MenuName: "우동", MealDate: at(16, 12, 0)},
		{MenuName: "국밥", MealDate: at(16, 19, 0)},
		{MenuName: "비빔밥", MealDate: at(17, 12, 0)},
		{MenuName: "국밥", MealDate: at(17, 19, 0)},
		{MenuName: "라면", MealDate: at(10, 12, 0)},
	}

	got := TopMenus(meals, ThisWeek(now), 2)
	assert.Equal(t, []MenuCount{{"국밥", 2}, {"우동", 1}}, got)
	assert.Len(t, TopMenus(meals, ThisWeek(now), 0), 3)
	assert.Empty(t, TopMenus(meals, Today(at(20, 0, 0)), 3))
}

func TestNotesAndCalculations(t *testing.T) {
	notes := []model.Note{
		{IsPinned: true, CreatedAt: at(17, 9, 0), UpdatedAt: at(17, 9, 0)},
		{IsPinned: true, IsArchived: true, CreatedAt: at(1, 9, 0), UpdatedAt: at(1, 9, 0)},
		{IsLocked: true, CreatedAt: at(1, 9, 0), UpdatedAt: at(17, 7, 0)},
	}
	assert.Equal(t, NoteSummary{Active: 2, Pinned: 1, Locked: 1, Archived: 1}, Notes(notes, Today(now)))

	entries := []model.CalcEntry{
		{Favorite: true, CreatedAt: at(3, 9, 0)},
		{CreatedAt: at(17, 9, 0)},
	}
	assert.Equal(t, CalcSummary{Count: 1, Favorites: 1}, Calculations(entries, Today(now)))
	assert.Equal(t, CalcSummary{Count: 2, Favorites: 1}, Calculations(entries, ThisMonth(now)))
}

func TestSummarize_IsPureAndIdempotent(t *testing.T) {
	snap := Snapshot{
		Tasks: []model.Task{
			{ID: 1, Priority: model.PriorityHigh, Category: model.CategoryWork, CreatedAt: at(17, 9, 0), UpdatedAt: at(17, 9, 0)},
			{ID: 2, IsDone: true, Category: model.CategoryHome, CreatedAt: at(15, 9, 0), UpdatedAt: at(16, 9, 0)},
		},
		Timers:   []model.Timer{{StartedAt: at(17, 9, 0), EndedAt: ptr(at(17, 9, 50))}},
		Meals:    []model.Meal{{MenuName: "김밥", MealDate: at(17, 12, 0)}},
		Fortunes: []model.Fortune{{DateKey: "2026-06-17", Text: "luck"}},
	}
	before := slices.Clone(snap.Tasks)

	first := Summarize(snap, PeriodWeek, now)
	second := Summarize(snap, PeriodWeek, now)

	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("Summarize() not idempotent (-first +second):\n%s", diff)
	}
	assert.Equal(t, before, snap.Tasks)

	assert.Equal(t, 2, first.Todos.Total)
	assert.Equal(t, 50, first.Todos.Rate)
	assert.Equal(t, 1, first.HighPriorityPending)
	assert.Equal(t, 50*time.Minute, first.FocusToday)
	assert.Equal(t, 1, first.Meals)
	assert.True(t, first.HasFortune)
	assert.Equal(t, "luck", first.Fortune.Text)

	today := Summarize(snap, PeriodToday, now)
	assert.Equal(t, 1, today.Todos.Total)
	assert.Equal(t, 0, today.Todos.Rate)
}
