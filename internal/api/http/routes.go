package httpapi

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"

	"github.com/triowp/weather-app/internal/store"
	"github.com/triowp/weather-app/internal/weather"
	"github.com/triowp/weather-app/internal/widget"
)

var validate = validator.New()

// Deps is what the routes need from the rest of the app.
type Deps struct {
	Service    widget.Lookuper
	Controller *widget.Controller
	Widgets    *store.MemoryStore
	Logger     *slog.Logger

	// TriggerTimeout bounds each asynchronous widget lookup.
	TriggerTimeout time.Duration
}

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, deps Deps) {
	h := &handlers{deps: deps}
	if h.deps.TriggerTimeout <= 0 {
		h.deps.TriggerTimeout = 30 * time.Second
	}
	if h.deps.Logger == nil {
		h.deps.Logger = slog.Default()
	}

	v1 := app.Group("/api/v1")

	v1.Get("/capitals", h.capitals)

	v1.Get("/weather", h.weatherByName)
	v1.Get("/weather/capital", h.weatherByCountry)
	v1.Get("/weather/coordinates", h.weatherByCoordinates)

	v1.Post("/widgets", h.createWidget)
	v1.Get("/widgets/:id", h.getWidget)
	v1.Post("/widgets/:id/search", h.searchWidget)
	v1.Post("/widgets/:id/quick", h.quickSelectWidget)
}

type handlers struct {
	deps Deps
}

func (h *handlers) capitals(c *fiber.Ctx) error {
	return c.JSON(weather.Capitals)
}

func (h *handlers) weatherByName(c *fiber.Ctx) error {
	return h.lookup(c, weather.ByName(c.Query("city")))
}

func (h *handlers) weatherByCountry(c *fiber.Ctx) error {
	return h.lookup(c, weather.ByCountryAlias(c.Query("country")))
}

// coordinatesQuery holds query parameters for a coordinates lookup.
type coordinatesQuery struct {
	Lat     *float64 `query:"lat" validate:"required,gte=-90,lte=90"`
	Lon     *float64 `query:"lon" validate:"required,gte=-180,lte=180"`
	Name    string   `query:"name"`
	Country string   `query:"country"`
}

func (h *handlers) weatherByCoordinates(c *fiber.Ctx) error {
	var q coordinatesQuery
	if err := c.QueryParser(&q); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	if err := validate.Struct(q); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	return h.lookup(c, weather.ByCoordinates(*q.Lat, *q.Lon, q.Name, q.Country))
}

// lookup runs a synchronous lookup and renders the card or the error banner.
func (h *handlers) lookup(c *fiber.Ctx, q weather.PlaceQuery) error {
	result, err := h.deps.Service.Lookup(c.UserContext(), q)
	if err != nil {
		return renderLookupError(c, weather.AsLookupError(err))
	}
	return c.JSON(widget.NewCard(result))
}

func renderLookupError(c *fiber.Ctx, err *weather.LookupError) error {
	return c.Status(statusForKind(err.Kind)).JSON(fiber.Map{
		"error":   true,
		"kind":    err.Kind,
		"message": err.Message,
	})
}

func statusForKind(kind weather.ErrorKind) int {
	switch kind {
	case weather.KindEmptyInput:
		return fiber.StatusBadRequest
	case weather.KindNotFound:
		return fiber.StatusNotFound
	case weather.KindNetworkFailure:
		return fiber.StatusServiceUnavailable
	default:
		return fiber.StatusBadGateway
	}
}

// pageLoadRequest is the browser's geolocation outcome. Missing coordinates or
// denied=true mean the position is unavailable.
type pageLoadRequest struct {
	Latitude  *float64 `json:"latitude" validate:"omitempty,gte=-90,lte=90"`
	Longitude *float64 `json:"longitude" validate:"omitempty,gte=-180,lte=180"`
	Denied    bool     `json:"denied"`
}

func (r pageLoadRequest) position() widget.Position {
	if r.Denied || r.Latitude == nil || r.Longitude == nil {
		return widget.Position{}
	}
	return widget.Position{Available: true, Latitude: *r.Latitude, Longitude: *r.Longitude}
}

func (h *handlers) createWidget(c *fiber.Ctx) error {
	var req pageLoadRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
	}
	if err := validate.Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	id := h.deps.Widgets.Create()
	pos := req.position()
	h.trigger(id, func(ctx context.Context, p widget.Presenter) {
		h.deps.Controller.PageLoad(ctx, p, pos)
	})

	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{"id": id})
}

func (h *handlers) getWidget(c *fiber.Ctx) error {
	view, err := h.deps.Widgets.Get(c.Params("id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "widget not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "failed to load widget")
	}
	return c.JSON(view)
}

type searchRequest struct {
	Query string `json:"query"`
}

func (h *handlers) searchWidget(c *fiber.Ctx) error {
	id, err := h.existingWidget(c)
	if err != nil {
		return err
	}

	var req searchRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	h.trigger(id, func(ctx context.Context, p widget.Presenter) {
		h.deps.Controller.Search(ctx, p, req.Query)
	})
	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{"id": id})
}

type quickSelectRequest struct {
	Country string `json:"country" validate:"required"`
}

func (h *handlers) quickSelectWidget(c *fiber.Ctx) error {
	id, err := h.existingWidget(c)
	if err != nil {
		return err
	}

	var req quickSelectRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	if err := validate.Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	h.trigger(id, func(ctx context.Context, p widget.Presenter) {
		h.deps.Controller.QuickSelect(ctx, p, req.Country)
	})
	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{"id": id})
}

func (h *handlers) existingWidget(c *fiber.Ctx) (string, error) {
	// Params are only valid during the handler; the id outlives it in trigger.
	id := utils.CopyString(c.Params("id"))
	if _, err := h.deps.Widgets.Get(id); err != nil {
		return "", fiber.NewError(fiber.StatusNotFound, "widget not found")
	}
	return id, nil
}

// trigger runs a widget action in the background. Earlier actions on the same widget are
// not canceled, so overlapping lookups race and the last response wins.
func (h *handlers) trigger(id string, action func(ctx context.Context, p widget.Presenter)) {
	presenter := h.deps.Widgets.Presenter(id)
	h.deps.Logger.Debug("widget action triggered", "widget", id)
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), h.deps.TriggerTimeout)
		defer cancel()
		action(ctx, presenter)
	}()
}
