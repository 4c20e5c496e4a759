package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"

	"weather-search/internal/services/history"
	"weather-search/internal/services/session"
	"weather-search/internal/services/weather"
	"weather-search/pkg/observe"
)

type routes struct {
	weather  *weather.WeatherService
	history  *history.HistoryService
	sessions *session.Policy
	l        *observe.Logger
}

func NewRouter(
	app *fiber.App,
	weatherService *weather.WeatherService,
	historyService *history.HistoryService,
	sessions *session.Policy,
	l *observe.Logger,
) {
	r := &routes{
		weather:  weatherService,
		history:  historyService,
		sessions: sessions,
		l:        l,
	}

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	// API routes
	app.Get("/", r.handleLanding)
	app.Post("/search", r.handleSearch)
	app.Get("/cities/autocomplete", r.handleAutocomplete)
	app.Get("/stats", r.handleStats)
}
