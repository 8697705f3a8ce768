package providers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"
	"sync"

	"github.com/kelvins/geocoder"

	"github.com/triowp/weather-app/internal/weather"
)

const defaultGoogleAPIURL = "https://maps.googleapis.com/maps/api/geocode/json?"

// geocoder keeps its API key and URL in package variables, so calls are serialized.
var googleMu sync.Mutex

// GoogleGeocoder implements weather.Geocoder with the Google Geocoding API.
// It is used instead of Open-Meteo when an API key is configured.
type GoogleGeocoder struct {
	name   string
	apiKey string
	apiURL string
}

func NewGoogleGeocoder(apiKey string) *GoogleGeocoder {
	return &GoogleGeocoder{
		name:   "google-geocoding",
		apiKey: apiKey,
		apiURL: defaultGoogleAPIURL,
	}
}

func (g *GoogleGeocoder) Name() string {
	return g.name
}

type googleOutcome struct {
	location weather.ResolvedLocation
	err      error
}

// Resolve geocodes placeName as a city, then reverse-geocodes the point to learn its
// country. The library has no timeout or context, so the calls run in their own
// goroutine and Resolve returns as soon as ctx is done.
func (g *GoogleGeocoder) Resolve(ctx context.Context, placeName string) (weather.ResolvedLocation, error) {
	name := strings.TrimSpace(placeName)
	if name == "" {
		return weather.ResolvedLocation{}, weather.NewLookupError(weather.KindEmptyInput, nil)
	}
	if g.apiKey == "" {
		return weather.ResolvedLocation{}, weather.NewLookupError(weather.KindUpstreamFailure, errors.New("google geocoder api key is not configured"))
	}
	if err := ctx.Err(); err != nil {
		return weather.ResolvedLocation{}, weather.NewLookupError(weather.KindNetworkFailure, err)
	}

	done := make(chan googleOutcome, 1)
	go func() {
		done <- g.resolve(name)
	}()

	select {
	case out := <-done:
		return out.location, out.err
	case <-ctx.Done():
		return weather.ResolvedLocation{}, weather.NewLookupError(weather.KindNetworkFailure, fmt.Errorf("google geocoding: %w", ctx.Err()))
	}
}

func (g *GoogleGeocoder) resolve(name string) (out googleOutcome) {
	// Geocoding indexes the first result without checking for statuses it does not know.
	defer func() {
		if r := recover(); r != nil {
			out = googleOutcome{err: weather.NewLookupError(weather.KindUpstreamFailure, fmt.Errorf("google geocoding: %v", r))}
		}
	}()

	googleMu.Lock()
	defer googleMu.Unlock()
	geocoder.ApiKey = g.apiKey
	geocoder.ApiUrl = g.apiURL

	loc, err := geocoder.Geocoding(geocoder.Address{City: name})
	if err != nil {
		return googleOutcome{err: classifyGoogleError(err)}
	}

	resolved := weather.ResolvedLocation{
		Name:      name,
		Latitude:  loc.Latitude,
		Longitude: loc.Longitude,
	}

	// Country is best effort; a failed reverse lookup still leaves usable coordinates.
	if addresses := reverseAddresses(loc); len(addresses) > 0 {
		if addresses[0].City != "" {
			resolved.Name = addresses[0].City
		}
		resolved.Country = addresses[0].Country
	}

	return googleOutcome{location: resolved}
}

// reverseAddresses returns nil on any failure. The library panics on results without types.
func reverseAddresses(loc geocoder.Location) (addresses []geocoder.Address) {
	defer func() {
		if recover() != nil {
			addresses = nil
		}
	}()

	found, err := geocoder.GeocodingReverse(loc)
	if err != nil {
		return nil
	}
	return found
}

func classifyGoogleError(err error) *weather.LookupError {
	var (
		urlErr    *url.Error
		syntaxErr *json.SyntaxError
		typeErr   *json.UnmarshalTypeError
	)
	switch {
	case errors.As(err, &urlErr), errors.As(err, &syntaxErr), errors.As(err, &typeErr), errors.Is(err, io.ErrUnexpectedEOF), errors.Is(err, io.EOF):
		return weather.NewLookupError(weather.KindNetworkFailure, fmt.Errorf("google geocoding request: %w", err))
	default:
		return weather.NewLookupError(weather.KindNotFound, fmt.Errorf("google geocoding: %w", err))
	}
}
