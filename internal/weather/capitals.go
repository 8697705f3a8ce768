package weather

// Capital pairs a quick-select country with the city looked up for it.
type Capital struct {
	Country string `json:"country"`
	City    string `json:"city"`
}

// Capitals is the quick-select list, in display order.
var Capitals = []Capital{
	{Country: "Russia", City: "Moscow"},
	{Country: "USA", City: "Washington"},
	{Country: "China", City: "Beijing"},
	{Country: "Japan", City: "Tokyo"},
	{Country: "Germany", City: "Berlin"},
	{Country: "France", City: "Paris"},
	{Country: "Canada", City: "Ottawa"},
	{Country: "Australia", City: "Canberra"},
	{Country: "India", City: "New Delhi"},
	{Country: "Brazil", City: "Brasília"},
}

var capitalByCountry = func() map[string]string {
	m := make(map[string]string, len(Capitals))
	for _, c := range Capitals {
		m[c.Country] = c.City
	}
	return m
}()

// CapitalOf returns the capital for a known country. Unknown countries are returned
// unchanged so they can be geocoded as place names.
func CapitalOf(country string) string {
	if city, ok := capitalByCountry[country]; ok {
		return city
	}
	return country
}
