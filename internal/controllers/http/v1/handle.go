package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"

	"weather-search/internal/models"
	"weather-search/internal/services/session"
	"weather-search/internal/services/weather"
)

// notFoundMessage is the localized body for an unresolvable city.
const notFoundMessage = "Город не найден"

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error" example:"Город не найден"`
}

// StatsResponse wraps the aggregate search counts
type StatsResponse struct {
	Stats []models.CityCount `json:"stats"`
}

// handleLanding renders the landing page, passing through the last searched
// city cookie when the visitor has one.
func (r *routes) handleLanding(c *fiber.Ctx) error {
	return c.Render("index", fiber.Map{
		"LastCity": c.Cookies(session.LastCityCookie),
	})
}

// handleSearch godoc
// @Summary Search weather by city name
// @Description Resolves a city name to coordinates, fetches the current conditions and a 24-hour forecast, and records the search
// @Tags Weather
// @Accept x-www-form-urlencoded
// @Produce json
// @Param city formData string true "City name" example(London)
// @Success 200 {object} models.WeatherReport "Successful response"
// @Failure 400 {object} ErrorResponse "Missing city field"
// @Failure 404 {object} ErrorResponse "City not found"
// @Failure 502 {object} ErrorResponse "Upstream provider failure"
// @Failure 500 {object} ErrorResponse "Storage failure"
// @Router /search [post]
func (r *routes) handleSearch(c *fiber.Ctx) error {
	city := c.FormValue("city")
	if city == "" {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error: "Missing required field: city",
		})
	}

	visitorID, err := r.sessions.VisitorID(c.Cookies(session.VisitorCookie))
	if err != nil {
		r.l.Error(err)
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
			Error: "Failed to process request",
		})
	}

	report, err := r.weather.Lookup(c.Context(), city)
	if err != nil {
		if errors.Is(err, weather.ErrCityNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{
				Error: notFoundMessage,
			})
		}

		r.l.Error(err, map[string]any{"city": city})
		return c.Status(fiber.StatusBadGateway).JSON(ErrorResponse{
			Error: "Failed to fetch weather data",
		})
	}

	// The event is only recorded for successful lookups.
	if err := r.history.Record(c.Context(), city, visitorID); err != nil {
		r.l.Error(err, map[string]any{"city": city})
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
			Error: "Failed to record search",
		})
	}

	c.Cookie(&fiber.Cookie{
		Name:   session.LastCityCookie,
		Value:  city,
		MaxAge: int(session.LastCityTTL.Seconds()),
	})
	c.Cookie(&fiber.Cookie{
		Name:   session.VisitorCookie,
		Value:  visitorID,
		MaxAge: int(session.VisitorTTL.Seconds()),
	})

	return c.JSON(report)
}

// handleAutocomplete godoc
// @Summary Autocomplete city names
// @Description Returns up to five place suggestions for a partial query; queries under two characters yield an empty list without an upstream call
// @Tags Weather
// @Produce json
// @Param q query string false "Partial city name" example(Lo)
// @Success 200 {array} models.Suggestion "Suggestions, possibly empty"
// @Failure 502 {object} ErrorResponse "Upstream provider failure"
// @Router /cities/autocomplete [get]
func (r *routes) handleAutocomplete(c *fiber.Ctx) error {
	q := c.Query("q")

	suggestions, err := r.weather.Suggest(c.Context(), q)
	if err != nil {
		r.l.Error(err, map[string]any{"q": q})
		return c.Status(fiber.StatusBadGateway).JSON(ErrorResponse{
			Error: "Failed to fetch suggestions",
		})
	}

	return c.JSON(suggestions)
}

// handleStats godoc
// @Summary Aggregate search statistics
// @Description Returns per-city search counts, most searched first
// @Tags Weather
// @Produce json
// @Success 200 {object} StatsResponse "Successful response"
// @Failure 500 {object} ErrorResponse "Storage failure"
// @Router /stats [get]
func (r *routes) handleStats(c *fiber.Ctx) error {
	counts, err := r.history.Stats(c.Context())
	if err != nil {
		r.l.Error(err)
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
			Error: "Failed to load search stats",
		})
	}

	return c.JSON(StatsResponse{Stats: counts})
}
