package config

import (
	"fmt"
	"os"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

type Config struct {
	App      AppConfig      `yaml:"app"`
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Upstream UpstreamConfig `yaml:"upstream"`
	Log      LogConfig      `yaml:"log"`
	Sentry   SentryConfig   `yaml:"sentry"`
}

type AppConfig struct {
	Name    string `yaml:"name" envconfig:"APP_NAME"`
	Version string `yaml:"version" envconfig:"APP_VERSION"`
	Env     string `yaml:"env" envconfig:"APP_ENV"`
}

type ServerConfig struct {
	Port      string `yaml:"port" envconfig:"SERVER_PORT"`
	ViewsDir  string `yaml:"views_dir" envconfig:"SERVER_VIEWS_DIR"`
	StaticDir string `yaml:"static_dir" envconfig:"SERVER_STATIC_DIR"`
}

// DatabaseConfig carries the sqlite file path. The path is handed to the
// store constructor at startup; nothing else reads it.
type DatabaseConfig struct {
	Path string `yaml:"path" envconfig:"DATABASE_PATH"`
}

type UpstreamConfig struct {
	GeocodingURL string `yaml:"geocoding_url" envconfig:"UPSTREAM_GEOCODING_URL"`
	ForecastURL  string `yaml:"forecast_url" envconfig:"UPSTREAM_FORECAST_URL"`
	// Timeout bounds each upstream HTTP call, in seconds.
	Timeout int `yaml:"timeout" envconfig:"UPSTREAM_TIMEOUT"`
}

type LogConfig struct {
	Level string `yaml:"level" envconfig:"LOG_LEVEL"`
}

type SentryConfig struct {
	DSN string `yaml:"dsn" envconfig:"SENTRY_DSN"`
}

// defaultConfig seeds the values a bare process starts with. The YAML file
// overlays these, and environment variables override both.
func defaultConfig() *Config {
	return &Config{
		App: AppConfig{
			Name:    "weather-search",
			Version: "1.0.0",
			Env:     "development",
		},
		Server: ServerConfig{
			Port:      "8080",
			ViewsDir:  "./views",
			StaticDir: "./static",
		},
		Database: DatabaseConfig{
			Path: "weather.db",
		},
		Upstream: UpstreamConfig{
			GeocodingURL: "https://geocoding-api.open-meteo.com/v1/search",
			ForecastURL:  "https://api.open-meteo.com/v1/forecast",
			Timeout:      10,
		},
		Log: LogConfig{
			Level: "debug",
		},
	}
}

// ConfigProvider loads and validates a Config from some source.
type ConfigProvider interface {
	Load() (*Config, error)
	Validate(config *Config) error
}

// FileConfigProvider reads an optional YAML file and overrides it with
// environment variables.
type FileConfigProvider struct {
	path string
}

func NewFileConfigProvider(path string) *FileConfigProvider {
	return &FileConfigProvider{path: path}
}

func (p *FileConfigProvider) Load() (*Config, error) {
	cnf := defaultConfig()

	if err := p.loadFromFile(cnf); err != nil {
		return nil, fmt.Errorf("failed to load config file: %w", err)
	}

	if err := envconfig.Process("", cnf); err != nil {
		return nil, fmt.Errorf("error environment variable parsing: %w", err)
	}

	return cnf, nil
}

// loadFromFile is a no-op when the file does not exist, so the defaults and
// environment variables alone can configure the app.
func (p *FileConfigProvider) loadFromFile(cnf *Config) error {
	yamlData, err := os.ReadFile(p.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	if err := yaml.Unmarshal(yamlData, cnf); err != nil {
		return fmt.Errorf("failed to parse YAML config: %w", err)
	}

	return nil
}

func (p *FileConfigProvider) Validate(config *Config) error {
	if config.App.Name == "" {
		return fmt.Errorf("app.name is required")
	}
	if config.Server.Port == "" {
		return fmt.Errorf("server.port is required")
	}
	if config.Database.Path == "" {
		return fmt.Errorf("database.path is required")
	}
	if config.Upstream.GeocodingURL == "" {
		return fmt.Errorf("upstream.geocoding_url is required")
	}
	if config.Upstream.ForecastURL == "" {
		return fmt.Errorf("upstream.forecast_url is required")
	}
	if config.Upstream.Timeout <= 0 {
		return fmt.Errorf("upstream.timeout must be positive")
	}
	return nil
}

func NewConfig() (*Config, error) {
	return NewConfigWithProvider(NewFileConfigProvider("config/config.yaml"))
}

func NewConfigWithProvider(provider ConfigProvider) (*Config, error) {
	cnf, err := provider.Load()
	if err != nil {
		return nil, err
	}

	if err := provider.Validate(cnf); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cnf, nil
}

func (c *Config) IsDevelopment() bool {
	return c.App.Env == "development"
}

func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}
