package store

import (
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/triowp/weather-app/internal/weather"
	"github.com/triowp/weather-app/internal/widget"
)

var (
	// ErrNotFound is returned when no widget exists for a given id.
	ErrNotFound = errors.New("widget not found")
)

// View is the display region of one widget.
type View struct {
	ID        string             `json:"id"`
	State     widget.State       `json:"state"`
	Loading   string             `json:"loading,omitempty"`
	Card      *widget.Card       `json:"card,omitempty"`
	Error     *widget.Banner     `json:"error,omitempty"`
	Query     weather.PlaceQuery `json:"query"`
	UpdatedAt time.Time          `json:"updatedAt"` // always UTC
}

// MemoryStore is a concurrency-safe in-memory set of widget views.
type MemoryStore struct {
	mu sync.RWMutex

	// key: widget id
	views map[string]*View

	// retention configuration
	maxWidgets int           // max number of live widgets
	maxAge     time.Duration // idle widgets older than this are dropped

	now func() time.Time
}

// NewMemoryStore creates a new MemoryStore with optional limits.
// Limits <= 0 are treated as unlimited.
func NewMemoryStore(maxWidgets int, maxAge time.Duration) *MemoryStore {
	return &MemoryStore{
		views:      make(map[string]*View),
		maxWidgets: maxWidgets,
		maxAge:     maxAge,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// Create registers an empty widget and returns its id.
func (s *MemoryStore) Create() string {
	id := uuid.NewString()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.views[id] = &View{ID: id, UpdatedAt: s.now()}
	s.enforceRetention()
	return id
}

// Get returns a copy of a widget's current view.
func (s *MemoryStore) Get(id string) (View, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.views[id]
	if !ok {
		return View{}, ErrNotFound
	}
	return *v, nil
}

// IDs returns the ids of all live widgets, oldest update first.
func (s *MemoryStore) IDs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	views := make([]*View, 0, len(s.views))
	for _, v := range s.views {
		views = append(views, v)
	}
	sort.Slice(views, func(i, j int) bool {
		return views[i].UpdatedAt.Before(views[j].UpdatedAt)
	})

	ids := make([]string, 0, len(views))
	for _, v := range views {
		ids = append(ids, v.ID)
	}
	return ids
}

// Presenter returns a presenter writing into the widget's view. Updates for a widget
// that has been evicted are dropped.
func (s *MemoryStore) Presenter(id string) widget.Presenter {
	return &viewPresenter{store: s, id: id}
}

// RefreshPresenter returns a presenter for a background re-run of query. Its writes are
// dropped once the widget has moved on to a different query.
func (s *MemoryStore) RefreshPresenter(id string, query weather.PlaceQuery) widget.Presenter {
	return &viewPresenter{store: s, id: id, only: &query}
}

// update applies fn to the widget's view. Writes are not ordered against the request
// that caused them: whichever response lands last is what the widget shows. A non-nil
// only skips the write unless the view still shows that query.
func (s *MemoryStore) update(id string, only *weather.PlaceQuery, fn func(v *View)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, ok := s.views[id]
	if !ok {
		return
	}
	if only != nil && v.Query != *only {
		return
	}
	fn(v)
	v.UpdatedAt = s.now()
	s.enforceRetention()
}

// enforceRetention drops idle and surplus widgets. Callers hold the write lock.
func (s *MemoryStore) enforceRetention() {
	if s.maxAge > 0 {
		cutoff := s.now().Add(-s.maxAge)
		for id, v := range s.views {
			if v.UpdatedAt.Before(cutoff) {
				delete(s.views, id)
			}
		}
	}

	if s.maxWidgets > 0 && len(s.views) > s.maxWidgets {
		views := make([]*View, 0, len(s.views))
		for _, v := range s.views {
			views = append(views, v)
		}
		sort.Slice(views, func(i, j int) bool {
			return views[i].UpdatedAt.Before(views[j].UpdatedAt)
		})
		over := len(views) - s.maxWidgets
		for _, v := range views[:over] {
			delete(s.views, v.ID)
		}
	}
}

type viewPresenter struct {
	store *MemoryStore
	id    string
	only  *weather.PlaceQuery // nil writes unconditionally
}

func (p *viewPresenter) ShowLoading(query weather.PlaceQuery) {
	p.store.update(p.id, p.only, func(v *View) {
		v.State = widget.StateLoading
		v.Loading = widget.LoadingMessage
		v.Card = nil
		v.Error = nil
		v.Query = query
	})
}

func (p *viewPresenter) ShowWeather(query weather.PlaceQuery, result weather.WeatherResult) {
	card := widget.NewCard(result)
	p.store.update(p.id, p.only, func(v *View) {
		v.State = widget.StateReady
		v.Loading = ""
		v.Card = &card
		v.Error = nil
		v.Query = query
	})
}

// ShowError clears the card so stale weather is never shown next to an error.
func (p *viewPresenter) ShowError(query weather.PlaceQuery, err *weather.LookupError) {
	p.store.update(p.id, p.only, func(v *View) {
		v.State = widget.StateError
		v.Loading = ""
		v.Card = nil
		v.Error = widget.NewBanner(err)
		v.Query = query
	})
}
