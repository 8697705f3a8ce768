package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	GeocoderOpenMeteo = "openmeteo"
	GeocoderGoogle    = "google"
)

type AppConfig struct {
	Port string `validate:"required,numeric"`

	// HTTPTimeout bounds every outbound request.
	HTTPTimeout time.Duration `validate:"gt=0"`

	GeocodingBaseURL string `validate:"required,url"`
	ForecastBaseURL  string `validate:"required,url"`

	// GeocoderProvider selects the place-name resolver.
	GeocoderProvider     string `validate:"oneof=openmeteo google"`
	GoogleGeocoderAPIKey string `validate:"required_if=GeocoderProvider google"`

	// DefaultPlace is shown on page load when the user's position is unknown.
	DefaultPlace string `validate:"required"`

	// RefreshInterval controls how often live widgets are refreshed (0 = never).
	RefreshInterval time.Duration `validate:"gte=0"`

	// Widget retention.
	WidgetMax    int           `validate:"gte=0"` // max number of live widgets (0 = unlimited)
	WidgetMaxAge time.Duration `validate:"gte=0"` // idle widgets are dropped after this (0 = never)

	// Circuit breaker shared by both upstreams' settings.
	BreakerMaxFailures uint32        // consecutive transport failures that open a circuit (0 = never)
	BreakerTimeout     time.Duration `validate:"gte=0"`

	LogLevel  string `validate:"oneof=debug info warn warning error"`
	LogFormat string `validate:"oneof=text json"`
}

// Load reads configuration from .env, an optional config.yaml and the environment,
// in increasing order of precedence.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	setDefaults(v)
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &AppConfig{
		Port:                 v.GetString("PORT"),
		HTTPTimeout:          v.GetDuration("HTTP_TIMEOUT"),
		GeocodingBaseURL:     v.GetString("GEOCODING_BASE_URL"),
		ForecastBaseURL:      v.GetString("FORECAST_BASE_URL"),
		GeocoderProvider:     strings.ToLower(v.GetString("GEOCODER_PROVIDER")),
		GoogleGeocoderAPIKey: v.GetString("GOOGLE_GEOCODER_API_KEY"),
		DefaultPlace:         v.GetString("DEFAULT_PLACE"),
		RefreshInterval:      v.GetDuration("REFRESH_INTERVAL"),
		WidgetMax:            v.GetInt("WIDGET_MAX"),
		WidgetMaxAge:         v.GetDuration("WIDGET_MAX_AGE"),
		BreakerMaxFailures:   v.GetUint32("BREAKER_MAX_FAILURES"),
		BreakerTimeout:       v.GetDuration("BREAKER_TIMEOUT"),
		LogLevel:             strings.ToLower(v.GetString("LOG_LEVEL")),
		LogFormat:            strings.ToLower(v.GetString("LOG_FORMAT")),
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PORT", "8080")
	v.SetDefault("HTTP_TIMEOUT", "10s")
	v.SetDefault("GEOCODING_BASE_URL", "https://geocoding-api.open-meteo.com")
	v.SetDefault("FORECAST_BASE_URL", "https://api.open-meteo.com")
	v.SetDefault("GEOCODER_PROVIDER", GeocoderOpenMeteo)
	v.SetDefault("GOOGLE_GEOCODER_API_KEY", "")
	v.SetDefault("DEFAULT_PLACE", "Moscow")
	v.SetDefault("REFRESH_INTERVAL", "15m")
	v.SetDefault("WIDGET_MAX", 1000)
	v.SetDefault("WIDGET_MAX_AGE", "24h")
	v.SetDefault("BREAKER_MAX_FAILURES", 5)
	v.SetDefault("BREAKER_TIMEOUT", "1m")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "text")
}

// Addr returns the listen address in the format ":port".
func (c *AppConfig) Addr() string {
	return ":" + c.Port
}

// NewLogger creates a slog.Logger writing to stdout.
func (c *AppConfig) NewLogger() *slog.Logger {
	return c.newLogger(os.Stdout)
}

func (c *AppConfig) newLogger(w io.Writer) *slog.Logger {
	var level slog.Level
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		level = slog.LevelDebug
	case "warn", "warning":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	switch strings.ToLower(c.LogFormat) {
	case "json":
		handler = slog.NewJSONHandler(w, opts)
	default:
		handler = slog.NewTextHandler(w, opts)
	}

	return slog.New(handler).With("service", "weather-app")
}
