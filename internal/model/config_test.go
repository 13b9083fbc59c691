package model

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)

	assert.Equal(t, defaultAppConfig(), cfg)
	assert.Equal(t, 100, cfg.History.Limit)
	assert.Equal(t, 10, cfg.Weather.FreshnessMinutes)
}

func TestLoadConfig_FileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
database:
  path: /tmp/kit.db
log:
  level: debug
history:
  limit: 0
weather:
  city: Busan
`), 0o644))

	t.Setenv("DAILYKIT_WEATHER_CITY", "Jeju")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "/tmp/kit.db", cfg.Database.Path)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, 100, cfg.History.Limit, "non-positive limits fall back to the default")
	assert.Equal(t, "Jeju", cfg.Weather.City)
	assert.Equal(t, WeatherQuery{City: "Jeju"}, cfg.Weather.Query())
}

func TestLoadConfig_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("database: [unclosed"), 0o644))

	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestSaveConfig_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := defaultAppConfig()
	cfg.Weather.City = "Daegu"
	cfg.History.Limit = 50
	require.NoError(t, SaveConfig(path, cfg))

	got, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "Daegu", got.Weather.City)
	assert.Equal(t, 50, got.History.Limit)
}

func TestParseEnums(t *testing.T) {
	assert.Equal(t, PriorityHigh, ParsePriority("high"))
	assert.Equal(t, PriorityMedium, ParsePriority("urgent"))
	assert.Equal(t, CategoryWork, ParseCategory("work"))
	assert.Equal(t, CategoryPersonal, ParseCategory(""))
	assert.Equal(t, RepeatMonthly, ParseRepeat("monthly"))
	assert.Equal(t, RepeatNone, ParseRepeat("yearly"))
}
