package weather

import (
	"context"
	"unicode/utf8"

	"github.com/pkg/errors"

	"weather-search/internal/models"
	"weather-search/internal/repositories"
	"weather-search/pkg/observe"
)

const (
	// hourlyWindow is how many leading hourly entries a report keeps.
	hourlyWindow = 24

	suggestionLimit = 5
	minQueryLength  = 2
)

// ErrCityNotFound is the domain outcome for a name the geocoding provider
// cannot resolve. It is not a transport fault.
var ErrCityNotFound = errors.New("city not found")

// WeatherService turns a city name into a weather report and serves
// autocomplete suggestions, both via the geocoding provider.
type WeatherService struct {
	geo      repositories.Geocoder
	forecast repositories.Forecaster
	l        *observe.Logger
}

func NewWeatherService(geo repositories.Geocoder, forecast repositories.Forecaster, l *observe.Logger) *WeatherService {
	return &WeatherService{
		geo:      geo,
		forecast: forecast,
		l:        l,
	}
}

// Lookup resolves a city name and fetches its forecast. The two upstream
// calls are strictly sequential: the forecast needs the geocoded coordinates.
func (s *WeatherService) Lookup(ctx context.Context, city string) (*models.WeatherReport, error) {
	locations, err := s.geo.Search(ctx, city, 1)
	if err != nil {
		return nil, errors.Wrap(err, "geocoding lookup")
	}
	if len(locations) == 0 {
		s.l.Info("city not resolved", map[string]any{"city": city})
		return nil, ErrCityNotFound
	}

	location := locations[0]

	forecast, err := s.forecast.Fetch(ctx, location.Latitude, location.Longitude)
	if err != nil {
		return nil, errors.Wrap(err, "forecast fetch")
	}

	s.l.Info("completed weather lookup", map[string]any{
		"city":    location.Name,
		"country": location.Country,
		"hours":   len(forecast.Hourly.Time),
	})

	return &models.WeatherReport{
		City:    location.Name,
		Country: location.Country,
		Current: forecast.Current,
		Hourly:  forecast.Hourly.Truncate(hourlyWindow),
	}, nil
}

// Suggest returns up to five autocomplete entries in provider order.
// Queries under two characters never reach the provider.
func (s *WeatherService) Suggest(ctx context.Context, query string) ([]models.Suggestion, error) {
	if utf8.RuneCountInString(query) < minQueryLength {
		return []models.Suggestion{}, nil
	}

	locations, err := s.geo.Search(ctx, query, suggestionLimit)
	if err != nil {
		return nil, errors.Wrap(err, "autocomplete search")
	}

	suggestions := make([]models.Suggestion, 0, len(locations))
	for _, location := range locations {
		suggestions = append(suggestions, models.Suggestion{
			// The separator stays even when the country is empty.
			Name:      location.Name + ", " + location.Country,
			Latitude:  location.Latitude,
			Longitude: location.Longitude,
		})
	}

	return suggestions, nil
}
