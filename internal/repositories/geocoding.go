package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"weather-search/internal/models"
	"weather-search/pkg/observe"
)

const (
	GeocodingBaseURL = "https://geocoding-api.open-meteo.com/v1/search"
)

type GeocodingRepository struct {
	BaseURL    string
	httpClient HTTPClient
	l          *observe.Logger
}

func NewGeocodingRepository(baseURL string, l *observe.Logger, httpClient HTTPClient) *GeocodingRepository {
	if baseURL == "" {
		baseURL = GeocodingBaseURL
	}
	return &GeocodingRepository{
		BaseURL:    baseURL,
		httpClient: httpClient,
		l:          l,
	}
}

type geocodingResponse struct {
	Results []models.Location `json:"results"`
}

// Search resolves a free-text place name to at most count locations. Zero
// matches is a normal outcome and yields an empty slice, not an error.
func (g *GeocodingRepository) Search(ctx context.Context, name string, count int) ([]models.Location, error) {
	reqURL := fmt.Sprintf("%s?name=%s&count=%d", g.BaseURL, url.QueryEscape(name), count)

	g.l.Info("making geocoding API request", map[string]any{
		"name":  name,
		"count": count,
	})

	req, err := http.NewRequestWithContext(ctx, "GET", reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to do request: %w", err)
	}
	defer resp.Body.Close()

	g.l.Info("received geocoding API response", map[string]any{
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

	var response geocodingResponse
	if err = json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("failed to parse JSON response: %w", err)
	}

	g.l.Debug("parsed geocoding response", map[string]any{
		"results": len(response.Results),
	})

	return response.Results, nil
}
