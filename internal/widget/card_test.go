package widget

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/triowp/weather-app/internal/weather"
)

func TestNewCard(t *testing.T) {
	result := weather.WeatherResult{
		Location: weather.ResolvedLocation{Name: "Берлин", Country: "Германия", Latitude: 52.52, Longitude: 13.4},
		Conditions: weather.CurrentConditions{
			TemperatureC:         17.5,
			ApparentTemperatureC: 16.2,
			HumidityPct:          64,
			PrecipitationMm:      0.2,
			WindSpeedKmh:         12.6,
			PressureHpa:          1013.2,
			VisibilityM:          24140,
			WeatherCode:          61,
		},
	}

	card := NewCard(result)

	require.Equal(t, "Берлин", card.City)
	require.Equal(t, "Германия", card.Country)
	require.Equal(t, "🌧️", card.Icon)
	require.Equal(t, "18°C", card.Temperature)
	require.Equal(t, "Небольшой дождь", card.Description)
	require.Equal(t, "Координаты: 52.52°, 13.40°", card.Coordinates)
	require.Equal(t, []Detail{
		{Icon: "💧", Label: "Влажность", Value: "64%"},
		{Icon: "💨", Label: "Ветер", Value: "13 км/ч"},
		{Icon: "🌡️", Label: "Ощущается", Value: "16°C"},
		{Icon: "🔽", Label: "Давление", Value: "1013 мб"},
		{Icon: "👁️", Label: "Видимость", Value: "24 км"},
		{Icon: "💧", Label: "Осадки", Value: "0.2 мм"},
	}, card.Details)
	require.Equal(t, result, card.Result)
}

func TestNewCard_UnknownCode(t *testing.T) {
	card := NewCard(weather.WeatherResult{Conditions: weather.CurrentConditions{WeatherCode: 42}})

	require.Equal(t, weather.DefaultIcon, card.Icon)
	require.Equal(t, weather.UnknownDescription, card.Description)
	require.Equal(t, "0 мм", card.Details[5].Value)
}

func TestRoundHalfUp(t *testing.T) {
	tests := []struct {
		in   float64
		want int
	}{
		{in: 17.5, want: 18},
		{in: 17.49, want: 17},
		{in: -2.5, want: -2},
		{in: -2.51, want: -3},
		{in: -0.4, want: 0},
		{in: 0, want: 0},
		{in: 1013.5, want: 1014},
	}

	for _, tt := range tests {
		require.Equal(t, tt.want, roundHalfUp(tt.in), "round(%v)", tt.in)
	}
}
