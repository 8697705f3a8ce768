package providers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/sony/gobreaker"

	"github.com/triowp/weather-app/internal/weather"
)

// API Docs: https://open-meteo.com/en/docs
// Sample request: https://api.open-meteo.com/v1/forecast?latitude=52.52&longitude=13.4&current=temperature_2m,weather_code&timezone=auto
const defaultForecastBaseURL = "https://api.open-meteo.com"

var currentVars = []string{
	"temperature_2m",
	"relative_humidity_2m",
	"apparent_temperature",
	"precipitation",
	"weather_code",
	"wind_speed_10m",
	"pressure_msl",
	"visibility",
}

// OpenMeteoProvider implements weather.ForecastProvider for the Open-Meteo forecast API.
type OpenMeteoProvider struct {
	name    string
	baseURL string
	httpCfg HTTPClientConfig
	circuit *gobreaker.CircuitBreaker
}

func NewOpenMeteoProvider(baseURL string, httpCfg HTTPClientConfig, logger *slog.Logger) *OpenMeteoProvider {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = defaultForecastBaseURL
	}
	return &OpenMeteoProvider{
		name:    "openmeteo",
		baseURL: strings.TrimRight(baseURL, "/"),
		httpCfg: httpCfg,
		circuit: newCircuitBreaker("openmeteo-forecast", httpCfg.Breaker, logger),
	}
}

func (p *OpenMeteoProvider) Name() string {
	return p.name
}

type forecastResponse struct {
	Timezone string           `json:"timezone"`
	Current  *currentResponse `json:"current"`
}

type currentResponse struct {
	Time                string  `json:"time"`
	Temperature2M       float64 `json:"temperature_2m"`
	RelativeHumidity2M  int     `json:"relative_humidity_2m"`
	ApparentTemperature float64 `json:"apparent_temperature"`
	Precipitation       float64 `json:"precipitation"`
	WeatherCode         int     `json:"weather_code"`
	WindSpeed10M        float64 `json:"wind_speed_10m"`
	PressureMsl         float64 `json:"pressure_msl"`
	Visibility          float64 `json:"visibility"`
}

// FetchCurrent returns the current conditions block for the coordinates as reported by the API.
func (p *OpenMeteoProvider) FetchCurrent(ctx context.Context, lat, lon float64) (weather.CurrentConditions, error) {
	buildRequest := func() (*http.Request, error) {
		values := url.Values{}
		values.Set("latitude", strconv.FormatFloat(lat, 'f', -1, 64))
		values.Set("longitude", strconv.FormatFloat(lon, 'f', -1, 64))
		values.Set("current", strings.Join(currentVars, ","))
		values.Set("timezone", "auto")

		u := fmt.Sprintf("%s/v1/forecast?%s", p.baseURL, values.Encode())
		return http.NewRequest(http.MethodGet, u, nil)
	}

	resp, err := doRequest(ctx, p.httpCfg, p.circuit, buildRequest)
	if err != nil {
		return weather.CurrentConditions{}, weather.NewLookupError(weather.KindNetworkFailure, fmt.Errorf("forecast request: %w", err))
	}
	defer resp.Body.Close()

	if !isSuccess(resp.StatusCode) {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return weather.CurrentConditions{}, weather.NewLookupError(weather.KindUpstreamFailure,
			fmt.Errorf("forecast returned status %d: %s", resp.StatusCode, string(body)))
	}

	var payload forecastResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return weather.CurrentConditions{}, weather.NewLookupError(weather.KindNetworkFailure, fmt.Errorf("decode forecast response: %w", err))
	}
	if payload.Current == nil {
		return weather.CurrentConditions{}, weather.NewLookupError(weather.KindNetworkFailure, errors.New("forecast response has no current block"))
	}

	cur := payload.Current
	return weather.CurrentConditions{
		TemperatureC:         cur.Temperature2M,
		ApparentTemperatureC: cur.ApparentTemperature,
		HumidityPct:          cur.RelativeHumidity2M,
		PrecipitationMm:      cur.Precipitation,
		WindSpeedKmh:         cur.WindSpeed10M,
		PressureHpa:          cur.PressureMsl,
		VisibilityM:          cur.Visibility,
		WeatherCode:          cur.WeatherCode,
	}, nil
}
