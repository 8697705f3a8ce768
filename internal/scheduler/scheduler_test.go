package scheduler

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/triowp/weather-app/internal/store"
	"github.com/triowp/weather-app/internal/weather"
	"github.com/triowp/weather-app/internal/widget"
)

type countingLookup struct {
	mu      sync.Mutex
	queries []weather.PlaceQuery
}

func (l *countingLookup) Lookup(ctx context.Context, q weather.PlaceQuery) (weather.WeatherResult, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.queries = append(l.queries, q)
	return weather.WeatherResult{Location: weather.ResolvedLocation{Name: q.Name}}, nil
}

func (l *countingLookup) seen() []weather.PlaceQuery {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]weather.PlaceQuery(nil), l.queries...)
}

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestScheduler_RefreshAll(t *testing.T) {
	views := store.NewMemoryStore(0, 0)
	lookup := &countingLookup{}
	controller := widget.NewController(lookup, "", newTestLogger())

	ready := views.Create()
	views.Presenter(ready).ShowWeather(weather.ByName("Berlin"), weather.WeatherResult{})

	failed := views.Create()
	views.Presenter(failed).ShowError(weather.ByCountryAlias("Japan"), weather.NewLookupError(weather.KindNetworkFailure, nil))

	empty := views.Create()
	views.Presenter(empty).ShowError(weather.ByName(""), weather.NewLookupError(weather.KindEmptyInput, nil))

	inFlight := views.Create()
	views.Presenter(inFlight).ShowLoading(weather.ByName("Paris"))

	views.Create() // never loaded

	s := New(views, controller, 0, 0, newTestLogger())
	s.RefreshAll()

	require.ElementsMatch(t, []weather.PlaceQuery{
		weather.ByName("Berlin"),
		weather.ByCountryAlias("Japan"),
	}, lookup.seen())

	v, err := views.Get(failed)
	require.NoError(t, err)
	require.Equal(t, widget.StateReady, v.State)
	require.Nil(t, v.Error)
}

func TestScheduler_StartDisabled(t *testing.T) {
	views := store.NewMemoryStore(0, 0)
	s := New(views, widget.NewController(&countingLookup{}, "", newTestLogger()), 0, 0, newTestLogger())

	require.NoError(t, s.Start())
	s.Stop()
}
