package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"
)

const DefaultBaseURL = "https://api.open-meteo.com/v1"

// City is a fixed forecast location.
type City struct {
	Name string  `json:"name"`
	Lat  float64 `json:"lat"`
	Lng  float64 `json:"lng"`
}

// Cities is the fixed set of NZ centres shown on the weather panel.
var Cities = []City{
	{Name: "Auckland", Lat: -36.85, Lng: 174.76},
	{Name: "Wellington", Lat: -41.29, Lng: 174.78},
	{Name: "Christchurch", Lat: -43.53, Lng: 172.64},
	{Name: "Queenstown", Lat: -45.03, Lng: 168.66},
}

// Current holds the current-conditions block of a forecast response.
type Current struct {
	Temperature      float64 `json:"temperature_2m"`
	RelativeHumidity float64 `json:"relative_humidity_2m"`
	ApparentTemp     float64 `json:"apparent_temperature"`
	Precipitation    float64 `json:"precipitation"`
	WeatherCode      int     `json:"weather_code"`
	WindSpeed        float64 `json:"wind_speed_10m"`
	WindGusts        float64 `json:"wind_gusts_10m"`
}

// Daily holds the parallel daily forecast arrays.
type Daily struct {
	Time             []string  `json:"time"`
	TempMax          []float64 `json:"temperature_2m_max"`
	TempMin          []float64 `json:"temperature_2m_min"`
	PrecipitationSum []float64 `json:"precipitation_sum"`
	PrecipProbMax    []float64 `json:"precipitation_probability_max"`
	WindSpeedMax     []float64 `json:"wind_speed_10m_max"`
	WeatherCode      []int     `json:"weather_code"`
}

type Forecast struct {
	Current Current `json:"current"`
	Daily   Daily   `json:"daily"`
}

// CityWeather is one city's forecast ready for the weather panel.
type CityWeather struct {
	City        string  `json:"city"`
	Lat         float64 `json:"lat"`
	Lng         float64 `json:"lng"`
	Current     Current `json:"current"`
	Daily       Daily   `json:"daily"`
	Description string  `json:"description"`
	IsExtreme   bool    `json:"isExtreme"`
}

// Client fetches forecasts from Open-Meteo.
type Client struct {
	baseURL    string
	httpClient *http.Client
	userAgent  string
}

func NewClient(baseURL string, httpClient *http.Client, userAgent string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	return &Client{baseURL: baseURL, httpClient: httpClient, userAgent: userAgent}
}

// AllCities fetches the forecast for every configured city. A failing
// city is skipped so the rest of the panel still renders; only a fully
// empty result is an error.
func (c *Client) AllCities(ctx context.Context) ([]CityWeather, error) {
	results := make([]CityWeather, 0, len(Cities))
	var lastErr error

	for _, city := range Cities {
		forecast, err := c.FetchForecast(ctx, city.Lat, city.Lng)
		if err != nil {
			lastErr = err
			slog.Warn("City weather fetch failed", "city", city.Name, "error", err)
			continue
		}
		results = append(results, CityWeather{
			City:        city.Name,
			Lat:         city.Lat,
			Lng:         city.Lng,
			Current:     forecast.Current,
			Daily:       forecast.Daily,
			Description: CodeText(forecast.Current.WeatherCode),
			IsExtreme:   IsExtreme(forecast.Current),
		})
	}

	if len(results) == 0 && lastErr != nil {
		return nil, fmt.Errorf("all city forecasts failed: %w", lastErr)
	}
	return results, nil
}

// FetchForecast fetches current conditions and a 3-day daily forecast.
func (c *Client) FetchForecast(ctx context.Context, lat, lng float64) (*Forecast, error) {
	params := url.Values{}
	params.Set("latitude", fmt.Sprintf("%g", lat))
	params.Set("longitude", fmt.Sprintf("%g", lng))
	params.Set("current", "temperature_2m,relative_humidity_2m,apparent_temperature,precipitation,weather_code,wind_speed_10m,wind_gusts_10m")
	params.Set("daily", "temperature_2m_max,temperature_2m_min,precipitation_sum,precipitation_probability_max,wind_speed_10m_max,weather_code")
	params.Set("timezone", "Pacific/Auckland")
	params.Set("forecast_days", "3")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/forecast?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch forecast: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP error: %d %s", resp.StatusCode, resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	var forecast Forecast
	if err := json.Unmarshal(body, &forecast); err != nil {
		return nil, fmt.Errorf("failed to parse forecast: %w", err)
	}
	return &forecast, nil
}

// IsExtreme flags conditions worth a severity highlight on the panel.
func IsExtreme(current Current) bool {
	return current.WindGusts > 80 ||
		current.Temperature > 30 ||
		current.Temperature < 0 ||
		current.Precipitation > 10 ||
		current.WeatherCode >= 95
}
