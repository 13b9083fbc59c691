package model

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// DatabaseConfig locates the SQLite file.
type DatabaseConfig struct {
	Path string `mapstructure:"path" yaml:"path"`
}

// LogConfig controls the zap logger.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level       string `mapstructure:"level" yaml:"level"`
	Development bool   `mapstructure:"development" yaml:"development"`
}

// HistoryConfig controls the calculator history cache.
type HistoryConfig struct {
	// Limit is how many entries stay cached in memory.
	Limit int `mapstructure:"limit" yaml:"limit"`
}

// WeatherConfig holds the weather endpoints and the default location.
type WeatherConfig struct {
	BaseURL          string  `mapstructure:"base_url" yaml:"base_url"`
	GeocodingURL     string  `mapstructure:"geocoding_url" yaml:"geocoding_url"`
	City             string  `mapstructure:"city" yaml:"city"`
	Latitude         float64 `mapstructure:"latitude" yaml:"latitude"`
	Longitude        float64 `mapstructure:"longitude" yaml:"longitude"`
	FreshnessMinutes int     `mapstructure:"freshness_minutes" yaml:"freshness_minutes"`
}

// Query returns the configured default location.
func (w WeatherConfig) Query() WeatherQuery {
	return WeatherQuery{City: w.City, Latitude: w.Latitude, Longitude: w.Longitude}
}

// AppConfig is the top-level application configuration.
type AppConfig struct {
	Database DatabaseConfig `mapstructure:"database" yaml:"database"`
	Log      LogConfig      `mapstructure:"log" yaml:"log"`
	History  HistoryConfig  `mapstructure:"history" yaml:"history"`
	Weather  WeatherConfig  `mapstructure:"weather" yaml:"weather"`
}

// configDir returns ~/.config/dailykit, or the working directory when the
// home directory is unknown.
func configDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".config", "dailykit")
}

// DefaultConfigPath returns the default path for the configuration file,
// located at ~/.config/dailykit/config.yaml.
func DefaultConfigPath() string {
	return filepath.Join(configDir(), "config.yaml")
}

// DefaultCredentialsDir is where the file keyring backend keeps note PINs.
func DefaultCredentialsDir() string {
	return filepath.Join(configDir(), "credentials")
}

// defaultAppConfig returns a sensible default configuration.
func defaultAppConfig() *AppConfig {
	return &AppConfig{
		Database: DatabaseConfig{
			Path: filepath.Join(configDir(), "dailykit.db"),
		},
		Log: LogConfig{
			Level: "info",
		},
		History: HistoryConfig{
			Limit: 100,
		},
		Weather: WeatherConfig{
			City:             "Seoul",
			FreshnessMinutes: 10,
		},
	}
}

// LoadConfig reads configuration from the given YAML file path using Viper.
// A missing file leaves the defaults in place. Environment variables
// override both.
func LoadConfig(path string) (*AppConfig, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	def := defaultAppConfig()
	v.SetDefault("database.path", def.Database.Path)
	v.SetDefault("log.level", def.Log.Level)
	v.SetDefault("log.development", def.Log.Development)
	v.SetDefault("history.limit", def.History.Limit)
	v.SetDefault("weather.base_url", def.Weather.BaseURL)
	v.SetDefault("weather.geocoding_url", def.Weather.GeocodingURL)
	v.SetDefault("weather.city", def.Weather.City)
	v.SetDefault("weather.latitude", def.Weather.Latitude)
	v.SetDefault("weather.longitude", def.Weather.Longitude)
	v.SetDefault("weather.freshness_minutes", def.Weather.FreshnessMinutes)

	// DAILYKIT_DATABASE_PATH and friends override the file.
	v.SetEnvPrefix("DAILYKIT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil && !missingFile(err) {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	cfg := defaultAppConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if cfg.History.Limit <= 0 {
		cfg.History.Limit = def.History.Limit
	}
	if cfg.Weather.FreshnessMinutes <= 0 {
		cfg.Weather.FreshnessMinutes = def.Weather.FreshnessMinutes
	}

	return cfg, nil
}

func missingFile(err error) bool {
	var notFound viper.ConfigFileNotFoundError
	return errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist)
}

// SaveConfig writes the given configuration to a YAML file at path,
// creating parent directories if needed.
func SaveConfig(path string, cfg *AppConfig) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.Set("database", cfg.Database)
	v.Set("log", cfg.Log)
	v.Set("history", cfg.History)
	v.Set("weather", cfg.Weather)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}

	return nil
}
