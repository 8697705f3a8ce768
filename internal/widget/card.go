package widget

import (
	"fmt"
	"math"
	"strconv"

	"github.com/triowp/weather-app/internal/weather"
)

// Detail is one tile in the card's details grid.
type Detail struct {
	Icon  string `json:"icon"`
	Label string `json:"label"`
	Value string `json:"value"`
}

// Card is a WeatherResult formatted for display.
type Card struct {
	City        string   `json:"city"`
	Country     string   `json:"country"`
	Icon        string   `json:"icon"`
	Temperature string   `json:"temperature"`
	Description string   `json:"description"`
	Details     []Detail `json:"details"`
	Coordinates string   `json:"coordinates"`

	Result weather.WeatherResult `json:"result"`
}

// NewCard formats result for display. Rounding happens here and nowhere else.
func NewCard(result weather.WeatherResult) Card {
	cond := result.Conditions
	loc := result.Location

	return Card{
		City:        loc.Name,
		Country:     loc.Country,
		Icon:        weather.Icon(cond.WeatherCode),
		Temperature: fmt.Sprintf("%d°C", roundHalfUp(cond.TemperatureC)),
		Description: weather.Description(cond.WeatherCode),
		Details: []Detail{
			{Icon: "💧", Label: "Влажность", Value: fmt.Sprintf("%d%%", cond.HumidityPct)},
			{Icon: "💨", Label: "Ветер", Value: fmt.Sprintf("%d км/ч", roundHalfUp(cond.WindSpeedKmh))},
			{Icon: "🌡️", Label: "Ощущается", Value: fmt.Sprintf("%d°C", roundHalfUp(cond.ApparentTemperatureC))},
			{Icon: "🔽", Label: "Давление", Value: fmt.Sprintf("%d мб", roundHalfUp(cond.PressureHpa))},
			{Icon: "👁️", Label: "Видимость", Value: fmt.Sprintf("%d км", roundHalfUp(cond.VisibilityM/1000))},
			{Icon: "💧", Label: "Осадки", Value: strconv.FormatFloat(cond.PrecipitationMm, 'f', -1, 64) + " мм"},
		},
		Coordinates: fmt.Sprintf("Координаты: %.2f°, %.2f°", loc.Latitude, loc.Longitude),
		Result:      result,
	}
}

// roundHalfUp rounds .5 towards positive infinity, so -2.5 becomes -2.
func roundHalfUp(v float64) int {
	return int(math.Floor(v + 0.5))
}
