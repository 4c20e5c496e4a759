package repositories

import (
	"context"
	"net/http"

	"weather-search/internal/models"
)

// HTTPClient is the part of *http.Client the upstream repositories use.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Geocoder resolves free-text place names to coordinates.
type Geocoder interface {
	Search(ctx context.Context, name string, count int) ([]models.Location, error)
}

// Forecaster fetches current conditions and the hourly series for a
// coordinate pair.
type Forecaster interface {
	Fetch(ctx context.Context, lat, lon float64) (*models.Forecast, error)
}

// SearchHistory is the append-only log of successful lookups.
type SearchHistory interface {
	Record(ctx context.Context, city, userID string) error
	AggregateCounts(ctx context.Context) ([]models.CityCount, error)
}
