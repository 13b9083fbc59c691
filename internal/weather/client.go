// Package weather fetches current conditions and a daily forecast from an
// Open-Meteo compatible HTTP API.
package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/nhle/dailykit/internal/model"
)

const (
	DefaultBaseURL      = "https://api.open-meteo.com"
	DefaultGeocodingURL = "https://geocoding-api.open-meteo.com"
)

// Client is a thin HTTP client for the forecast and geocoding endpoints.
// Every call is attempted once.
type Client struct {
	baseURL      string
	geocodingURL string
	httpClient   *http.Client
}

// NewClient creates a weather client. Empty URLs fall back to the public
// Open-Meteo endpoints.
func NewClient(baseURL, geocodingURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if geocodingURL == "" {
		geocodingURL = DefaultGeocodingURL
	}
	return &Client{
		baseURL:      strings.TrimRight(baseURL, "/"),
		geocodingURL: strings.TrimRight(geocodingURL, "/"),
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// Fetch resolves q to coordinates (geocoding a city name when set) and
// returns the current weather with the daily forecast.
func (c *Client) Fetch(ctx context.Context, q model.WeatherQuery) (model.Weather, error) {
	lat, lon, name := q.Latitude, q.Longitude, ""
	if q.City != "" {
		place, err := c.geocode(ctx, q.City)
		if err != nil {
			return model.Weather{}, err
		}
		lat, lon = place.Latitude, place.Longitude
		name = place.Name
		if place.Country != "" {
			name += ", " + place.Country
		}
	}
	if name == "" {
		name = fmt.Sprintf("%.2f, %.2f", lat, lon)
	}

	params := url.Values{}
	params.Set("latitude", strconv.FormatFloat(lat, 'f', 4, 64))
	params.Set("longitude", strconv.FormatFloat(lon, 'f', 4, 64))
	params.Set("current", "temperature_2m,wind_speed_10m,weather_code")
	params.Set("daily", "weather_code,temperature_2m_max,temperature_2m_min")
	params.Set("timezone", "auto")

	var resp forecastResponse
	if err := c.get(ctx, c.baseURL+"/v1/forecast?"+params.Encode(), &resp); err != nil {
		return model.Weather{}, err
	}

	return resp.toModel(name)
}

func (c *Client) geocode(ctx context.Context, city string) (geoResult, error) {
	params := url.Values{}
	params.Set("name", city)
	params.Set("count", "1")

	var resp geocodingResponse
	if err := c.get(ctx, c.geocodingURL+"/v1/search?"+params.Encode(), &resp); err != nil {
		return geoResult{}, err
	}
	if len(resp.Results) == 0 {
		return geoResult{}, fmt.Errorf("no location found for %q", city)
	}
	return resp.Results[0], nil
}

// get performs an HTTP GET request and unmarshals the JSON response.
func (c *Client) get(ctx context.Context, rawURL string, result any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("executing request GET %s: %w", req.URL.Path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("GET %s: HTTP %d: %s", req.URL.Path, resp.StatusCode, truncate(string(body), 200))
	}

	if err := json.Unmarshal(body, result); err != nil {
		return fmt.Errorf("unmarshaling response: %w", err)
	}
	return nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
