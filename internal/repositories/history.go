package repositories

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"weather-search/internal/models"
	"weather-search/pkg/observe"
)

// OpenSQLite opens the embedded database at path. The path comes from config
// at startup; tests pass a temp file.
func OpenSQLite(path string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, errors.Wrap(err, "open sqlite database")
	}
	return db, nil
}

// HistoryRepository persists the append-only search log. Rows are only ever
// inserted; there is no update or delete path.
type HistoryRepository struct {
	db *gorm.DB
	l  *observe.Logger
}

func NewHistoryRepository(db *gorm.DB, l *observe.Logger) *HistoryRepository {
	return &HistoryRepository{
		db: db,
		l:  l,
	}
}

// Init ensures the search_history table exists. Safe to call on every start.
func (r *HistoryRepository) Init() error {
	if err := r.db.AutoMigrate(&models.SearchEvent{}); err != nil {
		return errors.Wrap(err, "migrate search history")
	}
	return nil
}

// Record appends one search event stamped with the insert time.
func (r *HistoryRepository) Record(ctx context.Context, city, userID string) error {
	event := models.SearchEvent{
		City:   city,
		UserID: userID,
	}
	if err := r.db.WithContext(ctx).Create(&event).Error; err != nil {
		return errors.Wrap(err, "insert search event")
	}

	r.l.Debug("recorded search event", map[string]any{
		"id":   event.ID,
		"city": city,
	})

	return nil
}

// AggregateCounts returns per-city search totals, most searched first.
// Ties are broken by city name ascending so the order is deterministic.
func (r *HistoryRepository) AggregateCounts(ctx context.Context) ([]models.CityCount, error) {
	var counts []models.CityCount
	err := r.db.WithContext(ctx).
		Model(&models.SearchEvent{}).
		Select("city, COUNT(*) AS count").
		Group("city").
		Order("count DESC, city ASC").
		Scan(&counts).Error
	if err != nil {
		return nil, errors.Wrap(err, "aggregate search counts")
	}

	return counts, nil
}
