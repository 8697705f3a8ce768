package weather

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
)

// Service runs the lookup pipeline: alias substitution, geocoding, forecast.
type Service struct {
	geocoder Geocoder
	forecast ForecastProvider
	logger   *slog.Logger
}

// NewService creates a new Service.
func NewService(geocoder Geocoder, forecast ForecastProvider, logger *slog.Logger) *Service {
	return &Service{
		geocoder: geocoder,
		forecast: forecast,
		logger:   logger.With("component", "weather-service"),
	}
}

// Lookup resolves q to a location and fetches its current conditions. The first failing
// stage aborts the lookup and its *LookupError is returned unchanged.
func (s *Service) Lookup(ctx context.Context, q PlaceQuery) (WeatherResult, error) {
	if q.Kind == QueryByCountryAlias {
		city := CapitalOf(q.Name)
		s.logger.Debug("resolved country alias", "country", q.Name, "city", city)
		q = ByName(city)
	}

	var loc ResolvedLocation
	switch q.Kind {
	case QueryByName:
		resolved, err := s.geocoder.Resolve(ctx, q.Name)
		if err != nil {
			s.logger.Info("geocoding failed",
				"geocoder", s.geocoder.Name(),
				"place", strings.TrimSpace(q.Name),
				"error", err,
			)
			return WeatherResult{}, err
		}
		loc = resolved
	case QueryByCoordinates:
		loc = ResolvedLocation{
			Name:      q.Name,
			Country:   q.Country,
			Latitude:  q.Latitude,
			Longitude: q.Longitude,
		}
	default:
		return WeatherResult{}, NewLookupError(KindEmptyInput, fmt.Errorf("unsupported query kind %q", q.Kind))
	}

	conditions, err := s.forecast.FetchCurrent(ctx, loc.Latitude, loc.Longitude)
	if err != nil {
		s.logger.Warn("forecast failed",
			"provider", s.forecast.Name(),
			"latitude", loc.Latitude,
			"longitude", loc.Longitude,
			"error", err,
		)
		return WeatherResult{}, err
	}

	return WeatherResult{Location: loc, Conditions: conditions}, nil
}
