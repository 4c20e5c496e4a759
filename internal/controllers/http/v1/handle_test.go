package http_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	v1 "weather-search/internal/controllers/http/v1"
	"weather-search/internal/models"
	"weather-search/internal/repositories"
	"weather-search/internal/services/history"
	"weather-search/internal/services/session"
	"weather-search/internal/services/weather"
	"weather-search/pkg/httpserver"
	"weather-search/pkg/observe"
)

var hexToken = regexp.MustCompile(`^[0-9a-f]{32}$`)

type testEnv struct {
	app *fiber.App
	db  *gorm.DB
}

func newTestEnv(t *testing.T, geoHandler, forecastHandler http.HandlerFunc) *testEnv {
	t.Helper()

	logger := observe.NewZapLogger("test-app")

	geoServer := httptest.NewServer(geoHandler)
	t.Cleanup(geoServer.Close)
	forecastServer := httptest.NewServer(forecastHandler)
	t.Cleanup(forecastServer.Close)

	db, err := repositories.OpenSQLite(filepath.Join(t.TempDir(), "test_weather.db"))
	require.NoError(t, err)

	historyRepo := repositories.NewHistoryRepository(db, logger)
	require.NoError(t, historyRepo.Init())

	geoRepo := repositories.NewGeocodingRepository(geoServer.URL, logger, http.DefaultClient)
	forecastRepo := repositories.NewForecastRepository(forecastServer.URL, logger, http.DefaultClient)

	weatherService := weather.NewWeatherService(geoRepo, forecastRepo, logger)
	historyService := history.NewHistoryService(historyRepo, logger)

	viewsDir := t.TempDir()
	page := []byte(`<html><body><h1>Прогноз погоды</h1><span id="last">{{.LastCity}}</span></body></html>`)
	require.NoError(t, os.WriteFile(filepath.Join(viewsDir, "index.html"), page, 0o644))

	app := httpserver.InitFiberServer("test-app", viewsDir, t.TempDir())
	v1.NewRouter(app, weatherService, historyService, session.NewPolicy(), logger)

	return &testEnv{app: app, db: db}
}

func (e *testEnv) events(t *testing.T) []models.SearchEvent {
	t.Helper()
	var events []models.SearchEvent
	require.NoError(t, e.db.Order("id ASC").Find(&events).Error)
	return events
}

func londonGeoHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"results": [{"name": "London", "country": "United Kingdom", "latitude": 51.50853, "longitude": -0.12574}]}`))
}

func emptyGeoHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"results": []}`))
}

func forecastHandler(hours int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		times := make([]string, hours)
		temps := make([]float64, hours)
		codes := make([]int, hours)
		for i := 0; i < hours; i++ {
			times[i] = "2024-02-20T00:00"
			temps[i] = float64(i)
			codes[i] = i % 4
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"current": map[string]any{
				"temperature_2m":       15.5,
				"relative_humidity_2m": 75,
				"wind_speed_10m":       10.5,
				"weather_code":         1,
			},
			"hourly": map[string]any{
				"time":           times,
				"temperature_2m": temps,
				"weather_code":   codes,
			},
		})
	}
}

func searchRequest(city string, cookies ...*http.Cookie) *http.Request {
	form := url.Values{}
	if city != "" {
		form.Set("city", city)
	}
	req := httptest.NewRequest(http.MethodPost, "/search", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	return req
}

func cookieByName(resp *http.Response, name string) *http.Cookie {
	for _, c := range resp.Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func TestSearch_Success(t *testing.T) {
	env := newTestEnv(t, londonGeoHandler, forecastHandler(30))

	resp, err := env.app.Test(searchRequest("london"), 5000)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var report struct {
		City    string          `json:"city"`
		Country string          `json:"country"`
		Current json.RawMessage `json:"current"`
		Hourly  struct {
			Time        []string  `json:"time"`
			Temperature []float64 `json:"temperature"`
			WeatherCode []int     `json:"weather_code"`
		} `json:"hourly"`
	}
	require.NoError(t, json.Unmarshal(body, &report))

	assert.Equal(t, "London", report.City)
	assert.Equal(t, "United Kingdom", report.Country)
	assert.JSONEq(t,
		`{"temperature_2m": 15.5, "relative_humidity_2m": 75, "wind_speed_10m": 10.5, "weather_code": 1}`,
		string(report.Current),
	)

	// Hourly series is cut to the first 24 entries
	assert.Len(t, report.Hourly.Time, 24)
	assert.Len(t, report.Hourly.Temperature, 24)
	assert.Len(t, report.Hourly.WeatherCode, 24)
	assert.Equal(t, 0.0, report.Hourly.Temperature[0])
	assert.Equal(t, 23.0, report.Hourly.Temperature[23])

	userCookie := cookieByName(resp, session.VisitorCookie)
	require.NotNil(t, userCookie)
	assert.Regexp(t, hexToken, userCookie.Value)
	assert.Equal(t, 31536000, userCookie.MaxAge)

	lastCityCookie := cookieByName(resp, session.LastCityCookie)
	require.NotNil(t, lastCityCookie)
	assert.Equal(t, "london", lastCityCookie.Value)
	assert.Equal(t, 2592000, lastCityCookie.MaxAge)

	// Exactly one row, holding the submitted value and the issued token
	events := env.events(t)
	require.Len(t, events, 1)
	assert.Equal(t, "london", events[0].City)
	assert.Equal(t, userCookie.Value, events[0].UserID)
}

func TestSearch_CityNotFound(t *testing.T) {
	env := newTestEnv(t, emptyGeoHandler, forecastHandler(24))

	resp, err := env.app.Test(searchRequest("NonExistentCity12345"), 5000)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.JSONEq(t, `{"error": "Город не найден"}`, string(body))

	// Nothing is recorded and no cookies are issued
	assert.Empty(t, env.events(t))
	assert.Nil(t, cookieByName(resp, session.VisitorCookie))
	assert.Nil(t, cookieByName(resp, session.LastCityCookie))
}

func TestSearch_MissingCity(t *testing.T) {
	env := newTestEnv(t, londonGeoHandler, forecastHandler(24))

	resp, err := env.app.Test(searchRequest(""), 5000)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	assert.Empty(t, env.events(t))
}

func TestSearch_UpstreamFailure(t *testing.T) {
	env := newTestEnv(t, londonGeoHandler, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	resp, err := env.app.Test(searchRequest("London"), 5000)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)

	assert.Empty(t, env.events(t))
}

func TestSearch_GeocodingFailure(t *testing.T) {
	env := newTestEnv(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}, forecastHandler(24))

	resp, err := env.app.Test(searchRequest("London"), 5000)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)

	assert.Empty(t, env.events(t))
}

func TestSearch_ReusesVisitorCookie(t *testing.T) {
	env := newTestEnv(t, londonGeoHandler, forecastHandler(24))

	visitor := &http.Cookie{Name: session.VisitorCookie, Value: "deadbeefdeadbeefdeadbeefdeadbeef"}

	for i := 0; i < 2; i++ {
		resp, err := env.app.Test(searchRequest("London", visitor), 5000)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		returned := cookieByName(resp, session.VisitorCookie)
		require.NotNil(t, returned)
		assert.Equal(t, visitor.Value, returned.Value)
	}

	events := env.events(t)
	require.Len(t, events, 2)
	assert.Equal(t, visitor.Value, events[0].UserID)
	assert.Equal(t, visitor.Value, events[1].UserID)
}

func TestSearch_NewVisitorsGetDistinctTokens(t *testing.T) {
	env := newTestEnv(t, londonGeoHandler, forecastHandler(24))

	tokens := make(map[string]bool)
	for i := 0; i < 2; i++ {
		resp, err := env.app.Test(searchRequest("London"), 5000)
		require.NoError(t, err)

		cookie := cookieByName(resp, session.VisitorCookie)
		require.NotNil(t, cookie)
		assert.Regexp(t, hexToken, cookie.Value)
		tokens[cookie.Value] = true
	}

	assert.Len(t, tokens, 2)
}

func TestAutocomplete_ShortCircuit(t *testing.T) {
	var geoCalls atomic.Int32
	env := newTestEnv(t, func(w http.ResponseWriter, r *http.Request) {
		geoCalls.Add(1)
		londonGeoHandler(w, r)
	}, forecastHandler(24))

	resp, err := env.app.Test(httptest.NewRequest(http.MethodGet, "/cities/autocomplete?q=L", nil), 5000)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(body))

	// The provider is never contacted for a one-character query
	assert.Equal(t, int32(0), geoCalls.Load())
}

func TestAutocomplete_Suggestions(t *testing.T) {
	var geoCalls atomic.Int32
	env := newTestEnv(t, func(w http.ResponseWriter, r *http.Request) {
		geoCalls.Add(1)
		assert.Equal(t, "5", r.URL.Query().Get("count"))
		londonGeoHandler(w, r)
	}, forecastHandler(24))

	resp, err := env.app.Test(httptest.NewRequest(http.MethodGet, "/cities/autocomplete?q=Lo", nil), 5000)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var suggestions []models.Suggestion
	require.NoError(t, json.Unmarshal(body, &suggestions))
	require.Len(t, suggestions, 1)
	assert.Equal(t, "London, United Kingdom", suggestions[0].Name)
	assert.InDelta(t, 51.50853, suggestions[0].Latitude, 1e-9)

	assert.Equal(t, int32(1), geoCalls.Load())
}

func TestAutocomplete_NoMatches(t *testing.T) {
	env := newTestEnv(t, emptyGeoHandler, forecastHandler(24))

	resp, err := env.app.Test(httptest.NewRequest(http.MethodGet, "/cities/autocomplete?q=Zz", nil), 5000)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(body))
}

func TestStats(t *testing.T) {
	env := newTestEnv(t, londonGeoHandler, forecastHandler(24))

	visitor := &http.Cookie{Name: session.VisitorCookie, Value: "deadbeefdeadbeefdeadbeefdeadbeef"}
	for _, city := range []string{"London", "Paris", "London", "New York"} {
		// The stub always resolves; the submitted city is what gets stored
		resp, err := env.app.Test(searchRequest(city, visitor), 5000)
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)
	}

	resp, err := env.app.Test(httptest.NewRequest(http.MethodGet, "/stats", nil), 5000)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var stats struct {
		Stats []models.CityCount `json:"stats"`
	}
	require.NoError(t, json.Unmarshal(body, &stats))
	require.Len(t, stats.Stats, 3)

	assert.Equal(t, models.CityCount{City: "London", Count: 2}, stats.Stats[0])
	assert.Equal(t, int64(1), stats.Stats[1].Count)
	assert.Equal(t, int64(1), stats.Stats[2].Count)
}

func TestStats_Empty(t *testing.T) {
	env := newTestEnv(t, londonGeoHandler, forecastHandler(24))

	resp, err := env.app.Test(httptest.NewRequest(http.MethodGet, "/stats", nil), 5000)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.JSONEq(t, `{"stats": []}`, string(body))
}

func TestLanding_PassesLastCity(t *testing.T) {
	env := newTestEnv(t, londonGeoHandler, forecastHandler(24))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: session.LastCityCookie, Value: "Paris"})

	resp, err := env.app.Test(req, 5000)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "Paris")
}

func TestLanding_WithoutCookie(t *testing.T) {
	env := newTestEnv(t, londonGeoHandler, forecastHandler(24))

	resp, err := env.app.Test(httptest.NewRequest(http.MethodGet, "/", nil), 5000)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
