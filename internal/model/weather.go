package model

import "time"

// WeatherQuery selects a location either by city name or by coordinates.
// City takes precedence when set.
type WeatherQuery struct {
	City      string
	Latitude  float64
	Longitude float64
}

// Weather is the current observation plus a short daily forecast.
type Weather struct {
	Location     string          `json:"location"`
	TemperatureC float64         `json:"temperature_c"`
	WindSpeedKmh float64         `json:"wind_speed_kmh"`
	WeatherCode  int             `json:"weather_code"`
	Description  string          `json:"description"`
	ObservedAt   time.Time       `json:"observed_at"`
	Forecast     []DailyForecast `json:"forecast,omitempty"`
}

// DailyForecast is one day of the forecast.
type DailyForecast struct {
	Date        string  `json:"date"`
	MinC        float64 `json:"min_c"`
	MaxC        float64 `json:"max_c"`
	WeatherCode int     `json:"weather_code"`
}
