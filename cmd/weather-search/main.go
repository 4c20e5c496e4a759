package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap/zapcore"

	"weather-search/config"
	_ "weather-search/docs"
	v1 "weather-search/internal/controllers/http/v1"
	"weather-search/internal/repositories"
	"weather-search/internal/services/history"
	"weather-search/internal/services/session"
	"weather-search/internal/services/weather"
	"weather-search/pkg/httpserver"
	"weather-search/pkg/observe"
)

// @title Weather Search API
// @version 1.0.0
// @description City weather lookup service. Resolves a city name to coordinates, fetches current conditions and a 24-hour forecast, and keeps an append-only history of successful searches.

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /

// @tag.name Weather
// @tag.description Weather lookup, autocomplete and usage statistics
func main() {
	ctx, cancel := context.WithCancel(context.Background())

	_ = godotenv.Load()

	cnf, err := config.NewConfig()
	if err != nil {
		panic(fmt.Errorf("cannot load config: %w", err))
	}

	level, err := zapcore.ParseLevel(cnf.Log.Level)
	if err != nil {
		level = zapcore.DebugLevel
	}

	var l *observe.Logger
	if cnf.Sentry.DSN != "" {
		hook := observe.NewSentryHook(cnf.App.Env, cnf.App.Name, cnf.IsDevelopment(), cnf.Sentry.DSN)
		l = observe.NewZapLoggerWithLevel(cnf.App.Name, cnf.App.Env, level, os.Stdout, hook)
		hook.SetLogger(l)
	} else {
		l = observe.NewZapLoggerWithLevel(cnf.App.Name, cnf.App.Env, level, os.Stdout)
	}

	db, err := repositories.OpenSQLite(cnf.Database.Path)
	if err != nil {
		l.Fatal("cannot open database", map[string]any{"err": err, "path": cnf.Database.Path})
	}

	historyRepo := repositories.NewHistoryRepository(db, l)
	if err := historyRepo.Init(); err != nil {
		l.Fatal("cannot initialize search history", map[string]any{"err": err})
	}

	httpClient := &http.Client{
		Timeout: time.Duration(cnf.Upstream.Timeout) * time.Second,
	}

	geoRepo := repositories.NewGeocodingRepository(cnf.Upstream.GeocodingURL, l, httpClient)
	forecastRepo := repositories.NewForecastRepository(cnf.Upstream.ForecastURL, l, httpClient)

	weatherService := weather.NewWeatherService(geoRepo, forecastRepo, l)
	historyService := history.NewHistoryService(historyRepo, l)
	sessions := session.NewPolicy()

	app := httpserver.InitFiberServer(cnf.App.Name, cnf.Server.ViewsDir, cnf.Server.StaticDir)

	v1.NewRouter(
		app,
		weatherService,
		historyService,
		sessions,
		l,
	)

	go func() {
		if err := app.Listen(":" + cnf.Server.Port); err != nil {
			l.Fatal("cannot run the server", map[string]any{"err": err})
		}
	}()

	l.Info("application started successfully", map[string]any{"port": cnf.Server.Port})

	sigCh := make(chan os.Signal, 2)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer func() {
		l.Warning("stopping application services")
		signal.Stop(sigCh)
		close(sigCh)

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		_ = app.ShutdownWithContext(shutdownCtx)
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
		_ = l.Stop()
		cancel()
	}()

	select {
	case <-sigCh:
		fmt.Println("received shutdown signal")
	case <-ctx.Done():
		fmt.Println("context cancelled")
	}
}
