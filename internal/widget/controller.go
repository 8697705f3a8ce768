package widget

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/triowp/weather-app/internal/weather"
)

// DefaultPlace is looked up on page load when the user's position is unknown.
const DefaultPlace = "Moscow"

// Lookuper is the part of weather.Service the controller needs.
type Lookuper interface {
	Lookup(ctx context.Context, q weather.PlaceQuery) (weather.WeatherResult, error)
}

// Position is the outcome of asking the browser for the user's location. Available is
// false when geolocation is unsupported or the user denied it.
type Position struct {
	Available bool
	Latitude  float64
	Longitude float64
}

// Controller turns user actions into lookups and hands each outcome to a presenter.
type Controller struct {
	lookup       Lookuper
	defaultPlace string
	logger       *slog.Logger
}

// NewController creates a Controller. An empty defaultPlace means DefaultPlace.
func NewController(lookup Lookuper, defaultPlace string, logger *slog.Logger) *Controller {
	if strings.TrimSpace(defaultPlace) == "" {
		defaultPlace = DefaultPlace
	}
	return &Controller{
		lookup:       lookup,
		defaultPlace: defaultPlace,
		logger:       logger.With("component", "widget-controller"),
	}
}

// Search handles the search button and the Enter key.
func (c *Controller) Search(ctx context.Context, p Presenter, input string) {
	q := weather.ByName(input)
	if strings.TrimSpace(input) == "" {
		p.ShowError(q, weather.NewLookupError(weather.KindEmptyInput, nil))
		return
	}
	c.run(ctx, p, q)
}

// QuickSelect handles a country quick-select button.
func (c *Controller) QuickSelect(ctx context.Context, p Presenter, country string) {
	c.run(ctx, p, weather.ByCountryAlias(country))
}

// PageLoad shows weather for the user's position, or for the default place when the
// position is not available.
func (c *Controller) PageLoad(ctx context.Context, p Presenter, pos Position) {
	if !pos.Available {
		c.logger.Debug("geolocation unavailable, using default place", "place", c.defaultPlace)
		c.run(ctx, p, weather.ByName(c.defaultPlace))
		return
	}
	c.run(ctx, p, weather.ByCoordinates(pos.Latitude, pos.Longitude, "", ""))
}

// Refresh re-runs a previous query.
func (c *Controller) Refresh(ctx context.Context, p Presenter, q weather.PlaceQuery) {
	c.run(ctx, p, q)
}

func (c *Controller) run(ctx context.Context, p Presenter, q weather.PlaceQuery) {
	p.ShowLoading(q)

	result, err := c.lookup.Lookup(ctx, q)
	if err != nil {
		lookupErr := weather.AsLookupError(err)
		if errors.Is(err, context.Canceled) {
			c.logger.Debug("lookup canceled", "kind", q.Kind, "query", q.Name)
		}
		p.ShowError(q, lookupErr)
		return
	}
	p.ShowWeather(q, result)
}
