// Package app wires the store, repositories and cache slices together.
package app

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/nhle/dailykit/internal/credential"
	"github.com/nhle/dailykit/internal/model"
	"github.com/nhle/dailykit/internal/repository"
	"github.com/nhle/dailykit/internal/state"
	"github.com/nhle/dailykit/internal/stats"
	"github.com/nhle/dailykit/internal/store"
	"github.com/nhle/dailykit/internal/weather"
)

// App owns one slice per entity kind plus the weather cache.
type App struct {
	store *store.SQLiteStore
	log   *zap.Logger
	clock func() time.Time

	Tasks    *state.TaskSlice
	Notes    *state.NoteSlice
	Timers   *state.TimerSlice
	Meals    *state.MealSlice
	Calc     *state.CalcSlice
	Fortunes *state.FortuneSlice
	Weather  *state.WeatherSlice

	weatherQuery model.WeatherQuery
}

// Deps are the collaborators New does not build itself.
type Deps struct {
	Store   *store.SQLiteStore
	Vault   *credential.Vault
	Logger  *zap.Logger
	Fetcher state.WeatherFetcher

	// Clock defaults to time.Now.
	Clock func() time.Time
}

// New builds the application from cfg. When deps.Fetcher is nil a weather
// client for the configured endpoints is used.
func New(cfg *model.AppConfig, deps Deps) *App {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	if deps.Clock == nil {
		deps.Clock = time.Now
	}
	if deps.Fetcher == nil {
		deps.Fetcher = weather.NewClient(cfg.Weather.BaseURL, cfg.Weather.GeocodingURL)
	}

	opts := state.Options{Logger: deps.Logger, Clock: deps.Clock}
	calcOpts := opts
	calcOpts.Limit = cfg.History.Limit

	s := deps.Store
	return &App{
		store:        s,
		log:          deps.Logger,
		clock:        deps.Clock,
		Tasks:        state.NewTaskSlice(repository.NewTaskRepository(s), opts),
		Notes:        state.NewNoteSlice(repository.NewNoteRepository(s, deps.Vault), opts),
		Timers:       state.NewTimerSlice(repository.NewTimerRepository(s), opts),
		Meals:        state.NewMealSlice(repository.NewMealRepository(s), opts),
		Calc:         state.NewCalcSlice(repository.NewCalcRepository(s), calcOpts),
		Fortunes:     state.NewFortuneSlice(repository.NewFortuneRepository(s), opts),
		Weather:      state.NewWeatherSlice(deps.Fetcher, time.Duration(cfg.Weather.FreshnessMinutes)*time.Minute, opts),
		weatherQuery: cfg.Weather.Query(),
	}
}

// Open opens the database and credential vault named by cfg and builds the app.
func Open(cfg *model.AppConfig, logger *zap.Logger) (*App, error) {
	s, err := store.NewSQLiteStore(cfg.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("opening store: %w", err)
	}

	vault, err := credential.Open(model.DefaultCredentialsDir())
	if err != nil {
		s.Close()
		return nil, err
	}

	return New(cfg, Deps{Store: s, Vault: vault, Logger: logger}), nil
}

// Close closes the database.
func (a *App) Close() error {
	return a.store.Close()
}

// LoadAll loads every slice. Slices are independent, so they load concurrently.
func (a *App) LoadAll(ctx context.Context) {
	var wg sync.WaitGroup
	for _, load := range []func(context.Context){
		a.Tasks.Load,
		a.Notes.Load,
		a.Timers.Load,
		a.Meals.Load,
		a.Calc.Load,
		a.Fortunes.Load,
	} {
		wg.Go(func() { load(ctx) })
	}
	wg.Wait()
}

// RefreshWeather fetches weather for q, or for the configured location when q is zero.
func (a *App) RefreshWeather(ctx context.Context, q model.WeatherQuery) state.WeatherState {
	if q == (model.WeatherQuery{}) {
		q = a.weatherQuery
	}
	a.Weather.Fetch(ctx, q)
	return a.Weather.State()
}

// Snapshot captures the cached lists for the statistics engine.
func (a *App) Snapshot() stats.Snapshot {
	return stats.Snapshot{
		Tasks:    a.Tasks.Items(),
		Notes:    a.Notes.Items(),
		Timers:   a.Timers.Items(),
		Meals:    a.Meals.Items(),
		Calc:     a.Calc.Items(),
		Fortunes: a.Fortunes.Items(),
	}
}

// Summary computes the dashboard of period p from the current caches.
func (a *App) Summary(p stats.Period) stats.Summary {
	return stats.Summarize(a.Snapshot(), p, a.clock())
}
