package scheduler

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/triowp/weather-app/internal/store"
	"github.com/triowp/weather-app/internal/weather"
	"github.com/triowp/weather-app/internal/widget"
)

// Scheduler periodically re-runs the last query of every live widget.
type Scheduler struct {
	scheduler  *gocron.Scheduler
	store      *store.MemoryStore
	controller *widget.Controller
	interval   time.Duration
	timeout    time.Duration
	logger     *slog.Logger
}

// New creates a new Scheduler. timeout bounds each widget's refresh.
func New(views *store.MemoryStore, controller *widget.Controller, interval, timeout time.Duration, logger *slog.Logger) *Scheduler {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	s := gocron.NewScheduler(time.UTC)
	s.SingletonModeAll()
	return &Scheduler{
		scheduler:  s,
		store:      views,
		controller: controller,
		interval:   interval,
		timeout:    timeout,
		logger:     logger.With("component", "scheduler"),
	}
}

// Start schedules the refresh job and starts the underlying scheduler. A non-positive
// interval disables refreshing.
func (s *Scheduler) Start() error {
	if s.interval <= 0 {
		s.logger.Info("widget refresh disabled")
		return nil
	}

	_, err := s.scheduler.Every(s.interval).WaitForSchedule().Do(s.RefreshAll)
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	s.logger.Info("widget refresh scheduled", "interval", s.interval.String())
	return nil
}

// RefreshAll re-runs the last lookup of each widget that has finished one.
func (s *Scheduler) RefreshAll() {
	var (
		wg        sync.WaitGroup
		refreshed int
	)

	for _, id := range s.store.IDs() {
		view, err := s.store.Get(id)
		if err != nil {
			continue
		}
		if !refreshable(view) {
			continue
		}

		refreshed++
		wg.Add(1)
		go func(id string, view store.View) {
			defer wg.Done()

			ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
			defer cancel()

			s.controller.Refresh(ctx, s.store.RefreshPresenter(id, view.Query), view.Query)
		}(id, view)
	}
	wg.Wait()

	s.logger.Debug("widget refresh completed", "widgets", refreshed)
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}

func refreshable(view store.View) bool {
	if view.Query.Kind == "" || view.State == widget.StateLoading {
		return false
	}
	// An empty search never reached the pipeline; repeating it only repeats the error.
	if view.Error != nil && view.Error.Kind == weather.KindEmptyInput {
		return false
	}
	return true
}
