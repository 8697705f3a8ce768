package weather

import (
	"context"
)

// Geocoder resolves a free-text place name to a location. Implementations return a
// *LookupError on failure.
type Geocoder interface {
	Name() string
	Resolve(ctx context.Context, placeName string) (ResolvedLocation, error)
}

// ForecastProvider fetches current conditions for coordinates. Implementations return a
// *LookupError on failure.
type ForecastProvider interface {
	Name() string
	FetchCurrent(ctx context.Context, lat, lon float64) (CurrentConditions, error)
}
