package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/sony/gobreaker"

	"github.com/triowp/weather-app/internal/weather"
)

// API Docs: https://open-meteo.com/en/docs/geocoding-api
// Sample request: https://geocoding-api.open-meteo.com/v1/search?name=Berlin&count=1&language=ru&format=json
const defaultGeocodingBaseURL = "https://geocoding-api.open-meteo.com"

// OpenMeteoGeocoder implements weather.Geocoder against the Open-Meteo geocoding API.
type OpenMeteoGeocoder struct {
	name    string
	baseURL string
	httpCfg HTTPClientConfig
	circuit *gobreaker.CircuitBreaker
}

func NewOpenMeteoGeocoder(baseURL string, httpCfg HTTPClientConfig, logger *slog.Logger) *OpenMeteoGeocoder {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = defaultGeocodingBaseURL
	}
	return &OpenMeteoGeocoder{
		name:    "openmeteo-geocoding",
		baseURL: strings.TrimRight(baseURL, "/"),
		httpCfg: httpCfg,
		circuit: newCircuitBreaker("openmeteo-geocoding", httpCfg.Breaker, logger),
	}
}

func (g *OpenMeteoGeocoder) Name() string {
	return g.name
}

type geocodingResponse struct {
	Results []geocodingResult `json:"results"`
}

type geocodingResult struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	Country     string  `json:"country"`
	CountryCode string  `json:"country_code"`
	Timezone    string  `json:"timezone"`
}

// Resolve returns the first match for placeName. Blank input fails before any request.
func (g *OpenMeteoGeocoder) Resolve(ctx context.Context, placeName string) (weather.ResolvedLocation, error) {
	name := strings.TrimSpace(placeName)
	if name == "" {
		return weather.ResolvedLocation{}, weather.NewLookupError(weather.KindEmptyInput, nil)
	}

	buildRequest := func() (*http.Request, error) {
		values := url.Values{}
		values.Set("name", name)
		values.Set("count", "1")
		values.Set("language", "ru")
		values.Set("format", "json")

		u := fmt.Sprintf("%s/v1/search?%s", g.baseURL, values.Encode())
		return http.NewRequest(http.MethodGet, u, nil)
	}

	resp, err := doRequest(ctx, g.httpCfg, g.circuit, buildRequest)
	if err != nil {
		return weather.ResolvedLocation{}, weather.NewLookupError(weather.KindNetworkFailure, fmt.Errorf("geocoding request: %w", err))
	}
	defer resp.Body.Close()

	// The geocoding API answers bad queries with 4xx, so any failure status reads as "not found".
	if !isSuccess(resp.StatusCode) {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return weather.ResolvedLocation{}, weather.NewLookupError(weather.KindNotFound,
			fmt.Errorf("geocoding returned status %d: %s", resp.StatusCode, string(body)))
	}

	// An unreadable body is reported like a broken connection.
	var payload geocodingResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return weather.ResolvedLocation{}, weather.NewLookupError(weather.KindNetworkFailure, fmt.Errorf("decode geocoding response: %w", err))
	}

	if len(payload.Results) == 0 {
		return weather.ResolvedLocation{}, weather.NewLookupError(weather.KindNotFound, fmt.Errorf("no results for %q", name))
	}

	first := payload.Results[0]
	return weather.ResolvedLocation{
		Name:      first.Name,
		Country:   first.Country,
		Latitude:  first.Latitude,
		Longitude: first.Longitude,
	}, nil
}
