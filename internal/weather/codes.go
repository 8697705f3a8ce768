package weather

// WeatherCode represents a WMO weather interpretation code.
type WeatherCode int

const (
	ClearSky                     WeatherCode = 0
	MainlyClear                  WeatherCode = 1
	PartlyCloudy                 WeatherCode = 2
	Overcast                     WeatherCode = 3
	Fog                          WeatherCode = 45
	DepositingRimeFog            WeatherCode = 48
	DrizzleLight                 WeatherCode = 51
	DrizzleModerate              WeatherCode = 53
	DrizzleDense                 WeatherCode = 55
	RainSlight                   WeatherCode = 61
	RainModerate                 WeatherCode = 63
	RainHeavy                    WeatherCode = 65
	SnowFallSlight               WeatherCode = 71
	SnowFallModerate             WeatherCode = 73
	SnowFallHeavy                WeatherCode = 75
	SnowGrains                   WeatherCode = 77
	RainShowersSlight            WeatherCode = 80
	RainShowersModerate          WeatherCode = 81
	RainShowersViolent           WeatherCode = 82
	SnowShowersSlight            WeatherCode = 85
	SnowShowersHeavy             WeatherCode = 86
	ThunderstormSlightOrModerate WeatherCode = 95
	ThunderstormWithSlightHail   WeatherCode = 96
	ThunderstormWithHeavyHail    WeatherCode = 99
)

const (
	// DefaultIcon is shown for codes outside the table.
	DefaultIcon = "🌤️"

	// UnknownDescription is returned for codes outside the table.
	UnknownDescription = "Неизвестная погода"
)

var weatherIcons = map[WeatherCode]string{
	ClearSky:                     "☀️",
	MainlyClear:                  "⛅",
	PartlyCloudy:                 "⛅",
	Overcast:                     "☁️",
	Fog:                          "🌫️",
	DepositingRimeFog:            "🌫️",
	DrizzleLight:                 "🌧️",
	DrizzleModerate:              "🌧️",
	DrizzleDense:                 "🌧️",
	RainSlight:                   "🌧️",
	RainModerate:                 "🌧️",
	RainHeavy:                    "🌧️",
	SnowFallSlight:               "❄️",
	SnowFallModerate:             "❄️",
	SnowFallHeavy:                "❄️",
	SnowGrains:                   "❄️",
	RainShowersSlight:            "🌧️",
	RainShowersModerate:          "🌧️",
	RainShowersViolent:           "🌧️",
	SnowShowersSlight:            "🌨️",
	SnowShowersHeavy:             "🌨️",
	ThunderstormSlightOrModerate: "⛈️",
	ThunderstormWithSlightHail:   "⛈️",
	ThunderstormWithHeavyHail:    "⛈️",
}

var weatherDescriptions = map[WeatherCode]string{
	ClearSky:                     "Ясно",
	MainlyClear:                  "Преимущественно ясно",
	PartlyCloudy:                 "Частично облачно",
	Overcast:                     "Облачно",
	Fog:                          "Туман",
	DepositingRimeFog:            "Иней",
	DrizzleLight:                 "Легкая морось",
	DrizzleModerate:              "Морось",
	DrizzleDense:                 "Сильная морось",
	RainSlight:                   "Небольшой дождь",
	RainModerate:                 "Дождь",
	RainHeavy:                    "Сильный дождь",
	SnowFallSlight:               "Небольшой снег",
	SnowFallModerate:             "Снег",
	SnowFallHeavy:                "Сильный снег",
	SnowGrains:                   "Снежная крупа",
	RainShowersSlight:            "Небольшие дождевые ливни",
	RainShowersModerate:          "Дождевые ливни",
	RainShowersViolent:           "Сильные дождевые ливни",
	SnowShowersSlight:            "Небольшие ливни со снегом",
	SnowShowersHeavy:             "Ливни со снегом",
	ThunderstormSlightOrModerate: "Грозовой дождь",
	ThunderstormWithSlightHail:   "Грозовой дождь с градом",
	ThunderstormWithHeavyHail:    "Грозовой дождь с сильным градом",
}

// Icon returns the emoji glyph for a weather code.
func Icon(code int) string {
	if icon, ok := weatherIcons[WeatherCode(code)]; ok {
		return icon
	}
	return DefaultIcon
}

// Description returns the display text for a weather code.
func Description(code int) string {
	if desc, ok := weatherDescriptions[WeatherCode(code)]; ok {
		return desc
	}
	return UnknownDescription
}
