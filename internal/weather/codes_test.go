package weather

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIcon(t *testing.T) {
	tests := []struct {
		name  string
		codes []int
		want  string
	}{
		{name: "clear", codes: []int{0}, want: "☀️"},
		{name: "partly cloudy", codes: []int{1, 2}, want: "⛅"},
		{name: "overcast", codes: []int{3}, want: "☁️"},
		{name: "fog", codes: []int{45, 48}, want: "🌫️"},
		{name: "drizzle", codes: []int{51, 53, 55}, want: "🌧️"},
		{name: "rain", codes: []int{61, 63, 65}, want: "🌧️"},
		{name: "snow", codes: []int{71, 73, 75, 77}, want: "❄️"},
		{name: "rain showers", codes: []int{80, 81, 82}, want: "🌧️"},
		{name: "snow showers", codes: []int{85, 86}, want: "🌨️"},
		{name: "thunderstorm", codes: []int{95, 96, 99}, want: "⛈️"},
		{name: "outside table", codes: []int{12, -1, 1000, 56, 67}, want: DefaultIcon},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, code := range tt.codes {
				require.Equal(t, tt.want, Icon(code), "code %d", code)
			}
		})
	}
}

func TestDescription(t *testing.T) {
	known := []int{0, 1, 2, 3, 45, 48, 51, 53, 55, 61, 63, 65, 71, 73, 75, 77, 80, 81, 82, 85, 86, 95, 96, 99}
	seen := make(map[string]int)
	for _, code := range known {
		desc := Description(code)
		require.NotEqual(t, UnknownDescription, desc, "code %d", code)
		require.NotEmpty(t, desc)
		if prev, ok := seen[desc]; ok {
			t.Errorf("codes %d and %d share description %q", prev, code, desc)
		}
		seen[desc] = code
	}

	require.Equal(t, "Ясно", Description(0))
	require.Equal(t, "Грозовой дождь с сильным градом", Description(99))

	for _, code := range []int{12, -1, 1000} {
		require.Equal(t, UnknownDescription, Description(code), "code %d", code)
	}
}

func TestIconAndDescriptionCoverSameCodes(t *testing.T) {
	require.Len(t, weatherIcons, len(weatherDescriptions))
	for code := range weatherDescriptions {
		_, ok := weatherIcons[code]
		require.True(t, ok, "code %d has a description but no icon", code)
	}
}
