package history

import (
	"context"

	"github.com/pkg/errors"

	"weather-search/internal/models"
	"weather-search/internal/repositories"
	"weather-search/pkg/observe"
)

// HistoryService records successful searches and exposes aggregate usage.
type HistoryService struct {
	repo repositories.SearchHistory
	l    *observe.Logger
}

func NewHistoryService(repo repositories.SearchHistory, l *observe.Logger) *HistoryService {
	return &HistoryService{
		repo: repo,
		l:    l,
	}
}

// Record appends one event for a successful search. One durable write, no
// retry.
func (s *HistoryService) Record(ctx context.Context, city, visitorID string) error {
	if err := s.repo.Record(ctx, city, visitorID); err != nil {
		return errors.Wrap(err, "record search")
	}

	s.l.Info("search recorded", map[string]any{
		"city":    city,
		"visitor": visitorID,
	})

	return nil
}

// Stats returns per-city search counts, most searched first.
func (s *HistoryService) Stats(ctx context.Context) ([]models.CityCount, error) {
	counts, err := s.repo.AggregateCounts(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "load search stats")
	}

	if counts == nil {
		counts = []models.CityCount{}
	}

	return counts, nil
}
