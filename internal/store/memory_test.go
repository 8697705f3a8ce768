package store

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/triowp/weather-app/internal/weather"
	"github.com/triowp/weather-app/internal/widget"
)

// fakeClock advances by one second on every call.
type fakeClock struct {
	t time.Time
}

func (c *fakeClock) now() time.Time {
	c.t = c.t.Add(time.Second)
	return c.t
}

func newTestStore(maxWidgets int, maxAge time.Duration) (*MemoryStore, *fakeClock) {
	s := NewMemoryStore(maxWidgets, maxAge)
	clock := &fakeClock{t: time.Date(2025, 1, 15, 10, 0, 0, 0, time.UTC)}
	s.now = clock.now
	return s, clock
}

var berlin = weather.WeatherResult{
	Location:   weather.ResolvedLocation{Name: "Berlin", Country: "Germany", Latitude: 52.52, Longitude: 13.4},
	Conditions: weather.CurrentConditions{TemperatureC: 18, WeatherCode: 1},
}

func TestMemoryStore_CreateAndGet(t *testing.T) {
	s, _ := newTestStore(0, 0)

	id := s.Create()
	require.NotEmpty(t, id)

	v, err := s.Get(id)
	require.NoError(t, err)
	require.Equal(t, id, v.ID)
	require.Empty(t, v.State)
	require.Nil(t, v.Card)
	require.Nil(t, v.Error)

	_, err = s.Get("missing")
	require.True(t, errors.Is(err, ErrNotFound))
}

func TestMemoryStore_PresenterTransitions(t *testing.T) {
	s, _ := newTestStore(0, 0)
	id := s.Create()
	p := s.Presenter(id)
	q := weather.ByName("Berlin")

	p.ShowLoading(q)
	v, _ := s.Get(id)
	require.Equal(t, widget.StateLoading, v.State)
	require.Equal(t, widget.LoadingMessage, v.Loading)
	require.Equal(t, q, v.Query)

	p.ShowWeather(q, berlin)
	v, _ = s.Get(id)
	require.Equal(t, widget.StateReady, v.State)
	require.Empty(t, v.Loading)
	require.NotNil(t, v.Card)
	require.Equal(t, "Berlin", v.Card.City)
	require.Equal(t, "18°C", v.Card.Temperature)
	require.Nil(t, v.Error)

	p.ShowError(q, weather.NewLookupError(weather.KindNotFound, nil))
	v, _ = s.Get(id)
	require.Equal(t, widget.StateError, v.State)
	require.Nil(t, v.Card, "error clears the previous card")
	require.Equal(t, &widget.Banner{Kind: weather.KindNotFound, Message: weather.KindNotFound.Message()}, v.Error)

	p.ShowLoading(q)
	v, _ = s.Get(id)
	require.Nil(t, v.Error)
	require.Nil(t, v.Card)
}

func TestMemoryStore_LastWriteWins(t *testing.T) {
	s, _ := newTestStore(0, 0)
	id := s.Create()
	p := s.Presenter(id)

	paris := weather.ByName("Paris")
	tokyo := weather.ByName("Tokyo")
	p.ShowLoading(paris)
	p.ShowLoading(tokyo)

	// The Tokyo response lands first, then the slower Paris one.
	p.ShowWeather(tokyo, weather.WeatherResult{Location: weather.ResolvedLocation{Name: "Tokyo"}})
	p.ShowWeather(paris, weather.WeatherResult{Location: weather.ResolvedLocation{Name: "Paris"}})

	v, _ := s.Get(id)
	require.Equal(t, "Paris", v.Card.City)
	require.Equal(t, paris, v.Query)
}

func TestMemoryStore_PresenterForUnknownWidget(t *testing.T) {
	s, _ := newTestStore(0, 0)

	s.Presenter("gone").ShowWeather(weather.ByName("Berlin"), berlin)

	require.Empty(t, s.IDs())
}

func TestMemoryStore_RetentionByCount(t *testing.T) {
	s, _ := newTestStore(2, 0)

	first := s.Create()
	second := s.Create()
	third := s.Create()

	_, err := s.Get(first)
	require.ErrorIs(t, err, ErrNotFound)
	require.Equal(t, []string{second, third}, s.IDs())

	// Touching second makes third the oldest.
	s.Presenter(second).ShowLoading(weather.ByName("Oslo"))
	fourth := s.Create()
	require.Equal(t, []string{second, fourth}, s.IDs())
}

func TestMemoryStore_RetentionByAge(t *testing.T) {
	s, clock := newTestStore(0, time.Minute)

	stale := s.Create()
	clock.t = clock.t.Add(2 * time.Minute)
	fresh := s.Create()

	_, err := s.Get(stale)
	require.ErrorIs(t, err, ErrNotFound)
	require.Equal(t, []string{fresh}, s.IDs())
}

func TestMemoryStore_RefreshYieldsToNewerQuery(t *testing.T) {
	s, _ := newTestStore(0, 0)
	id := s.Create()

	berlinQuery := weather.ByName("Berlin")
	s.Presenter(id).ShowWeather(berlinQuery, berlin)

	refresh := s.RefreshPresenter(id, berlinQuery)
	refresh.ShowLoading(berlinQuery)

	// The user searches Tokyo while the Berlin refresh is still in flight.
	tokyo := weather.ByName("Tokyo")
	s.Presenter(id).ShowLoading(tokyo)
	s.Presenter(id).ShowWeather(tokyo, weather.WeatherResult{Location: weather.ResolvedLocation{Name: "Tokyo"}})

	refresh.ShowWeather(berlinQuery, berlin)
	refresh.ShowError(berlinQuery, weather.NewLookupError(weather.KindNetworkFailure, nil))

	v, _ := s.Get(id)
	require.Equal(t, widget.StateReady, v.State)
	require.Equal(t, tokyo, v.Query)
	require.Equal(t, "Tokyo", v.Card.City)
}

func TestMemoryStore_RefreshWritesWhenQueryUnchanged(t *testing.T) {
	s, _ := newTestStore(0, 0)
	id := s.Create()

	q := weather.ByCountryAlias("Germany")
	s.Presenter(id).ShowError(q, weather.NewLookupError(weather.KindNetworkFailure, nil))

	refresh := s.RefreshPresenter(id, q)
	refresh.ShowLoading(q)
	refresh.ShowWeather(q, berlin)

	v, _ := s.Get(id)
	require.Equal(t, widget.StateReady, v.State)
	require.Equal(t, "Berlin", v.Card.City)
}
