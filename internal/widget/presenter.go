package widget

import (
	"github.com/triowp/weather-app/internal/weather"
)

// Presenter receives the outcome of a lookup. ShowLoading is called when a lookup starts,
// followed by exactly one of ShowWeather or ShowError.
type Presenter interface {
	ShowLoading(query weather.PlaceQuery)
	ShowWeather(query weather.PlaceQuery, result weather.WeatherResult)
	ShowError(query weather.PlaceQuery, err *weather.LookupError)
}

// State is the visible state of a display region.
type State string

const (
	StateLoading State = "loading"
	StateReady   State = "ready"
	StateError   State = "error"
)

// LoadingMessage is shown while a lookup is in flight.
const LoadingMessage = "⏳ Загрузка данных..."

// Banner is the error region content.
type Banner struct {
	Kind    weather.ErrorKind `json:"kind"`
	Message string            `json:"message"`
}

// NewBanner builds the banner for a lookup failure.
func NewBanner(err *weather.LookupError) *Banner {
	return &Banner{Kind: err.Kind, Message: err.Message}
}
