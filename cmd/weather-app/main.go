package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	httpapi "github.com/triowp/weather-app/internal/api/http"
	"github.com/triowp/weather-app/internal/config"
	"github.com/triowp/weather-app/internal/scheduler"
	"github.com/triowp/weather-app/internal/store"
	"github.com/triowp/weather-app/internal/weather"
	"github.com/triowp/weather-app/internal/weather/providers"
	"github.com/triowp/weather-app/internal/widget"
)

func main() {
	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	appLogger := cfg.NewLogger()
	slog.SetDefault(appLogger)

	// Shared HTTP client for outbound upstream calls.
	httpCfg := providers.HTTPClientConfig{
		Client: &http.Client{Timeout: cfg.HTTPTimeout},
		Breaker: providers.BreakerConfig{
			MaxFailures: cfg.BreakerMaxFailures,
			Timeout:     cfg.BreakerTimeout,
		},
	}

	var geocoder weather.Geocoder
	switch cfg.GeocoderProvider {
	case config.GeocoderGoogle:
		geocoder = providers.NewGoogleGeocoder(cfg.GoogleGeocoderAPIKey)
	default:
		geocoder = providers.NewOpenMeteoGeocoder(cfg.GeocodingBaseURL, httpCfg, appLogger)
	}
	forecast := providers.NewOpenMeteoProvider(cfg.ForecastBaseURL, httpCfg, appLogger)

	// Core lookup pipeline and the widget layer on top of it.
	service := weather.NewService(geocoder, forecast, appLogger)
	controller := widget.NewController(service, cfg.DefaultPlace, appLogger)
	widgets := store.NewMemoryStore(cfg.WidgetMax, cfg.WidgetMaxAge)

	// Each lookup makes at most two sequential upstream calls.
	lookupTimeout := 2*cfg.HTTPTimeout + time.Second

	sched := scheduler.New(widgets, controller, cfg.RefreshInterval, lookupTimeout, appLogger)
	if err := sched.Start(); err != nil {
		log.Fatalf("failed to start scheduler: %v", err)
	}
	defer sched.Stop()

	app := fiber.New(fiber.Config{
		AppName:               "weather-app",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          lookupTimeout + 5*time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			// Centralized error response
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error":   true,
				"message": err.Error(),
			})
		},
	})

	// Global middleware
	app.Use(logger.New())
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":   "ok",
			"service":  "weather-app",
			"geocoder": geocoder.Name(),
			"forecast": forecast.Name(),
		})
	})

	httpapi.RegisterRoutes(app, httpapi.Deps{
		Service:        service,
		Controller:     controller,
		Widgets:        widgets,
		Logger:         appLogger,
		TriggerTimeout: lookupTimeout,
	})

	go func() {
		appLogger.Info("starting server", "addr", cfg.Addr())
		if err := app.Listen(cfg.Addr()); err != nil {
			appLogger.Error("fiber server stopped", "error", err)
		}
	}()

	// Wait for termination signal
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		appLogger.Error("error during shutdown", "error", err)
	}
}
