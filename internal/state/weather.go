package state

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/nhle/dailykit/internal/model"
)

// DefaultWeatherFreshness is how long fetched weather is reused.
const DefaultWeatherFreshness = 10 * time.Minute

// WeatherFetcher is the external weather source.
type WeatherFetcher interface {
	Fetch(ctx context.Context, q model.WeatherQuery) (model.Weather, error)
}

// WeatherState is a snapshot of the weather slice.
type WeatherState struct {
	Data        *model.Weather
	Query       model.WeatherQuery
	LastUpdated time.Time
	Loading     bool

	// Error is a user-facing message from the last failed fetch. Data keeps
	// the previous successful result.
	Error string
}

// WeatherSlice caches the last fetched weather.
type WeatherSlice struct {
	fetcher   WeatherFetcher
	freshness time.Duration
	log       *zap.Logger
	clock     func() time.Time

	mu    sync.RWMutex
	state WeatherState
}

// NewWeatherSlice returns a weather cache. A zero freshness uses DefaultWeatherFreshness.
func NewWeatherSlice(fetcher WeatherFetcher, freshness time.Duration, opts Options) *WeatherSlice {
	opts = opts.withDefaults()
	if freshness <= 0 {
		freshness = DefaultWeatherFreshness
	}
	return &WeatherSlice{
		fetcher:   fetcher,
		freshness: freshness,
		log:       opts.Logger.With(zap.String("kind", "weather")),
		clock:     opts.Clock,
	}
}

// State returns a snapshot.
func (s *WeatherSlice) State() WeatherState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st := s.state
	if st.Data != nil {
		data := *st.Data
		st.Data = &data
	}
	return st
}

// Fetch refreshes the weather for q unless the cached data is for the same
// query and younger than the freshness window. The check takes no lock
// across the fetch, so two callers racing past it both fetch.
func (s *WeatherSlice) Fetch(ctx context.Context, q model.WeatherQuery) {
	if s.fresh(q) {
		return
	}

	s.mu.Lock()
	s.state.Loading = true
	s.mu.Unlock()

	w, err := s.fetcher.Fetch(ctx, q)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Loading = false
	if err != nil {
		s.log.Warn("weather fetch failed", zap.String("city", q.City), zap.Error(err))
		s.state.Error = "Could not load the weather. Showing the last known data."
		return
	}
	s.state.Data = &w
	s.state.Query = q
	s.state.LastUpdated = s.clock()
	s.state.Error = ""
}

func (s *WeatherSlice) fresh(q model.WeatherQuery) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Data != nil &&
		s.state.Query == q &&
		s.clock().Sub(s.state.LastUpdated) < s.freshness
}
