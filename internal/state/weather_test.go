package state_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/dailykit/internal/model"
	"github.com/nhle/dailykit/internal/state"
	"github.com/nhle/dailykit/tests/testutil"
)

type fakeFetcher struct {
	calls int
	err   error
	temp  float64
}

func (f *fakeFetcher) Fetch(_ context.Context, q model.WeatherQuery) (model.Weather, error) {
	f.calls++
	if f.err != nil {
		return model.Weather{}, f.err
	}
	return model.Weather{Location: q.City, TemperatureC: f.temp}, nil
}

func TestWeatherSlice_Freshness(t *testing.T) {
	ctx := context.Background()
	clock := testutil.NewClock(base)
	fetcher := &fakeFetcher{temp: 21}
	weather := state.NewWeatherSlice(fetcher, 0, state.Options{Clock: clock.Func()})
	seoul := model.WeatherQuery{City: "Seoul"}

	weather.Fetch(ctx, seoul)
	require.Equal(t, 1, fetcher.calls)

	clock.Advance(9 * time.Minute)
	weather.Fetch(ctx, seoul)
	assert.Equal(t, 1, fetcher.calls, "data younger than the window is reused")

	weather.Fetch(ctx, model.WeatherQuery{City: "Busan"})
	assert.Equal(t, 2, fetcher.calls, "a different query always fetches")

	clock.Advance(state.DefaultWeatherFreshness)
	weather.Fetch(ctx, model.WeatherQuery{City: "Busan"})
	assert.Equal(t, 3, fetcher.calls)

	st := weather.State()
	require.NotNil(t, st.Data)
	assert.Equal(t, "Busan", st.Data.Location)
	assert.True(t, st.LastUpdated.Equal(clock.Now))
	assert.False(t, st.Loading)
	assert.Empty(t, st.Error)
}

func TestWeatherSlice_FailureKeepsLastData(t *testing.T) {
	ctx := context.Background()
	clock := testutil.NewClock(base)
	fetcher := &fakeFetcher{temp: 18}
	weather := state.NewWeatherSlice(fetcher, 10*time.Minute, state.Options{Clock: clock.Func()})
	q := model.WeatherQuery{City: "Seoul"}

	weather.Fetch(ctx, q)
	fetched := weather.State().LastUpdated

	clock.Advance(11 * time.Minute)
	fetcher.err = errors.New("connection refused")
	weather.Fetch(ctx, q)

	st := weather.State()
	require.NotNil(t, st.Data)
	assert.Equal(t, 18.0, st.Data.TemperatureC)
	assert.NotEmpty(t, st.Error)
	assert.True(t, st.LastUpdated.Equal(fetched))

	fetcher.err = nil
	fetcher.temp = 20
	weather.Fetch(ctx, q)
	st = weather.State()
	assert.Empty(t, st.Error)
	assert.Equal(t, 20.0, st.Data.TemperatureC)
}

func TestWeatherSlice_StateIsACopy(t *testing.T) {
	weather := state.NewWeatherSlice(&fakeFetcher{temp: 5}, 0, state.Options{})
	weather.Fetch(context.Background(), model.WeatherQuery{City: "Seoul"})

	st := weather.State()
	st.Data.TemperatureC = 99

	assert.Equal(t, 5.0, weather.State().Data.TemperatureC)
}
