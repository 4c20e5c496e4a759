package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"weather-search/internal/models"
	"weather-search/pkg/observe"
)

const (
	ForecastBaseURL = "https://api.open-meteo.com/v1/forecast"
)

type ForecastRepository struct {
	BaseURL    string
	httpClient HTTPClient
	l          *observe.Logger
}

func NewForecastRepository(baseURL string, l *observe.Logger, httpClient HTTPClient) *ForecastRepository {
	if baseURL == "" {
		baseURL = ForecastBaseURL
	}
	return &ForecastRepository{
		BaseURL:    baseURL,
		httpClient: httpClient,
		l:          l,
	}
}

type forecastResponse struct {
	Current json.RawMessage `json:"current"`
	Hourly  struct {
		Time          []string  `json:"time"`
		Temperature2m []float64 `json:"temperature_2m"`
		WeatherCode   []int     `json:"weather_code"`
	} `json:"hourly"`
}

// Fetch requests current conditions (temperature, humidity, wind speed,
// weather code) and the hourly temperature/weather-code series with
// automatic timezone resolution. The current block is kept as raw JSON.
func (f *ForecastRepository) Fetch(ctx context.Context, lat, lon float64) (*models.Forecast, error) {
	reqURL := fmt.Sprintf(
		"%s?latitude=%f&longitude=%f&current=temperature_2m,relative_humidity_2m,wind_speed_10m,weather_code&hourly=temperature_2m,weather_code&timezone=auto",
		f.BaseURL, lat, lon,
	)

	f.l.Info("making forecast API request", map[string]any{
		"lat": lat,
		"lon": lon,
	})

	req, err := http.NewRequestWithContext(ctx, "GET", reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to do request: %w", err)
	}
	defer resp.Body.Close()

	f.l.Info("received forecast API response", map[string]any{
		"status":     resp.StatusCode,
		"statusText": resp.Status,
	})

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP error (status %d): %s", resp.StatusCode, resp.Status)
	}

	var response forecastResponse
	if err = json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("failed to parse JSON response: %w", err)
	}

	f.l.Debug("parsed forecast response", map[string]any{
		"hours": len(response.Hourly.Time),
	})

	return &models.Forecast{
		Current: response.Current,
		Hourly: models.HourlySeries{
			Time:        response.Hourly.Time,
			Temperature: response.Hourly.Temperature2m,
			WeatherCode: response.Hourly.WeatherCode,
		},
	}, nil
}
