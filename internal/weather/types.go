package weather

import (
	"fmt"
	"time"

	"github.com/nhle/dailykit/internal/model"
)

type geocodingResponse struct {
	Results []geoResult `json:"results"`
}

type geoResult struct {
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Country   string  `json:"country"`
}

type forecastResponse struct {
	UTCOffsetSeconds int `json:"utc_offset_seconds"`
	Current          struct {
		Time        string  `json:"time"`
		Temperature float64 `json:"temperature_2m"`
		WindSpeed   float64 `json:"wind_speed_10m"`
		WeatherCode int     `json:"weather_code"`
	} `json:"current"`
	Daily struct {
		Time        []string  `json:"time"`
		WeatherCode []int     `json:"weather_code"`
		MaxC        []float64 `json:"temperature_2m_max"`
		MinC        []float64 `json:"temperature_2m_min"`
	} `json:"daily"`
}

// timeLayout is the ISO 8601 minute-precision layout used by the API.
const timeLayout = "2006-01-02T15:04"

func (r forecastResponse) toModel(location string) (model.Weather, error) {
	zone := time.FixedZone("", r.UTCOffsetSeconds)
	observed, err := time.ParseInLocation(timeLayout, r.Current.Time, zone)
	if err != nil {
		return model.Weather{}, fmt.Errorf("parsing observation time %q: %w", r.Current.Time, err)
	}

	w := model.Weather{
		Location:     location,
		TemperatureC: r.Current.Temperature,
		WindSpeedKmh: r.Current.WindSpeed,
		WeatherCode:  r.Current.WeatherCode,
		Description:  Describe(r.Current.WeatherCode),
		ObservedAt:   observed,
	}

	d := r.Daily
	n := min(len(d.Time), len(d.WeatherCode), len(d.MaxC), len(d.MinC))
	for i := range n {
		w.Forecast = append(w.Forecast, model.DailyForecast{
			Date:        d.Time[i],
			MinC:        d.MinC[i],
			MaxC:        d.MaxC[i],
			WeatherCode: d.WeatherCode[i],
		})
	}
	return w, nil
}

// Describe returns a short label for a WMO weather interpretation code.
func Describe(code int) string {
	switch {
	case code == 0:
		return "clear sky"
	case code <= 2:
		return "partly cloudy"
	case code == 3:
		return "overcast"
	case code == 45 || code == 48:
		return "fog"
	case code >= 51 && code <= 57:
		return "drizzle"
	case code >= 61 && code <= 67:
		return "rain"
	case code >= 71 && code <= 77:
		return "snow"
	case code >= 80 && code <= 82:
		return "rain showers"
	case code == 85 || code == 86:
		return "snow showers"
	case code >= 95:
		return "thunderstorm"
	default:
		return "unknown"
	}
}
