package app

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/dailykit/internal/model"
	"github.com/nhle/dailykit/internal/stats"
	"github.com/nhle/dailykit/tests/testutil"
)

type stubFetcher struct {
	queries []model.WeatherQuery
}

func (f *stubFetcher) Fetch(_ context.Context, q model.WeatherQuery) (model.Weather, error) {
	f.queries = append(f.queries, q)
	return model.Weather{Location: q.City}, nil
}

func newTestApp(t *testing.T, clock *testutil.Clock, fetcher *stubFetcher) *App {
	t.Helper()
	cfg := &model.AppConfig{
		History: model.HistoryConfig{Limit: 100},
		Weather: model.WeatherConfig{City: "Seoul", FreshnessMinutes: 10},
	}
	return New(cfg, Deps{
		Store:   testutil.NewTestStore(t),
		Vault:   testutil.NewTestVault(t),
		Fetcher: fetcher,
		Clock:   clock.Func(),
	})
}

func TestApp_ToggleShowsInTodaySummary(t *testing.T) {
	ctx := context.Background()
	clock := testutil.NewClock(time.Date(2026, 6, 17, 9, 0, 0, 0, time.Local))
	a := newTestApp(t, clock, &stubFetcher{})

	task, ok := a.Tasks.Add(ctx, model.Task{Title: "call mom", Priority: model.PriorityHigh, Category: model.CategoryPersonal})
	require.True(t, ok)
	assert.Equal(t, 1, a.Summary(stats.PeriodToday).HighPriorityPending)

	clock.Advance(time.Hour)
	require.True(t, a.Tasks.Toggle(ctx, task.ID))

	sum := a.Summary(stats.PeriodToday)
	assert.Equal(t, 1, sum.Todos.Completed)
	assert.Equal(t, 1, sum.Todos.Total)
	assert.Equal(t, 100, sum.Todos.Rate)
	assert.Equal(t, 0, sum.HighPriorityPending)
}

func TestApp_LoadAllRestoresCaches(t *testing.T) {
	ctx := context.Background()
	clock := testutil.NewClock(time.Date(2026, 6, 17, 9, 0, 0, 0, time.Local))
	a := newTestApp(t, clock, &stubFetcher{})

	_, ok := a.Meals.Log(ctx, "김밥", clock.Now)
	require.True(t, ok)
	_, err := a.Calc.Evaluate(ctx, "2*21")
	require.NoError(t, err)
	_, ok = a.Fortunes.Today(ctx)
	require.True(t, ok)

	// A second app over the same store starts empty until loaded.
	b := New(&model.AppConfig{}, Deps{Store: a.store, Vault: testutil.NewTestVault(t), Fetcher: &stubFetcher{}, Clock: clock.Func()})
	assert.Empty(t, b.Meals.Items())

	b.LoadAll(ctx)
	snap := b.Snapshot()
	assert.Len(t, snap.Meals, 1)
	assert.Len(t, snap.Calc, 1)
	assert.Len(t, snap.Fortunes, 1)
	assert.True(t, b.Summary(stats.PeriodToday).HasFortune)
}

func TestApp_RefreshWeatherUsesConfiguredLocation(t *testing.T) {
	ctx := context.Background()
	clock := testutil.NewClock(time.Date(2026, 6, 17, 9, 0, 0, 0, time.Local))
	fetcher := &stubFetcher{}
	a := newTestApp(t, clock, fetcher)

	st := a.RefreshWeather(ctx, model.WeatherQuery{})
	require.NotNil(t, st.Data)
	assert.Equal(t, "Seoul", st.Data.Location)

	a.RefreshWeather(ctx, model.WeatherQuery{City: "Busan"})
	assert.Equal(t, []model.WeatherQuery{{City: "Seoul"}, {City: "Busan"}}, fetcher.queries)
}
