package weather

// QueryKind selects which variant of a PlaceQuery is active.
type QueryKind string

const (
	QueryByName         QueryKind = "name"
	QueryByCountryAlias QueryKind = "country"
	QueryByCoordinates  QueryKind = "coordinates"
)

// Placeholder labels shown for a lookup that starts from the user's own coordinates.
const (
	PlaceholderName    = "Ваше местоположение"
	PlaceholderCountry = "Определяется..."
)

// PlaceQuery is a request for weather at one place. Exactly one variant is active,
// selected by Kind; build values with ByName, ByCountryAlias or ByCoordinates.
type PlaceQuery struct {
	Kind QueryKind `json:"kind"`

	// Name holds the place name for QueryByName, the country for QueryByCountryAlias
	// and the display label for QueryByCoordinates.
	Name string `json:"name,omitempty"`

	// Country is the display country for QueryByCoordinates.
	Country string `json:"country,omitempty"`

	Latitude  float64 `json:"latitude,omitempty"`
	Longitude float64 `json:"longitude,omitempty"`
}

// ByName builds a query for a free-text place name.
func ByName(name string) PlaceQuery {
	return PlaceQuery{Kind: QueryByName, Name: name}
}

// ByCountryAlias builds a query for a country, resolved to its capital before geocoding.
func ByCountryAlias(country string) PlaceQuery {
	return PlaceQuery{Kind: QueryByCountryAlias, Name: country}
}

// ByCoordinates builds a query for raw coordinates. name and country are displayed as-is;
// empty values fall back to the "your location" placeholders.
func ByCoordinates(lat, lon float64, name, country string) PlaceQuery {
	if name == "" {
		name = PlaceholderName
	}
	if country == "" {
		country = PlaceholderCountry
	}
	return PlaceQuery{
		Kind:      QueryByCoordinates,
		Name:      name,
		Country:   country,
		Latitude:  lat,
		Longitude: lon,
	}
}

// ResolvedLocation is a canonical place with coordinates.
type ResolvedLocation struct {
	Name      string  `json:"name"`
	Country   string  `json:"country"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// CurrentConditions is a snapshot of the forecast API's current block, in the units the
// API returns them.
type CurrentConditions struct {
	TemperatureC         float64 `json:"temperatureC"`
	ApparentTemperatureC float64 `json:"apparentTemperatureC"`
	HumidityPct          int     `json:"humidityPct"`
	PrecipitationMm      float64 `json:"precipitationMm"`
	WindSpeedKmh         float64 `json:"windSpeedKmh"`
	PressureHpa          float64 `json:"pressureHpa"`
	VisibilityM          float64 `json:"visibilityM"`
	WeatherCode          int     `json:"weatherCode"`
}

// WeatherResult is what a successful lookup hands to the presenter.
type WeatherResult struct {
	Location   ResolvedLocation  `json:"location"`
	Conditions CurrentConditions `json:"conditions"`
}
