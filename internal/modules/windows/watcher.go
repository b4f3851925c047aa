package windows

import (
	"context"
	"sync"
	"time"

	"kitchen-orders/internal/models"

	"go.uber.org/zap"
)

// Watcher re-runs the window evaluator on a fixed one-second cadence and
// keeps the latest status available to the HTTP layer. The per-tick work is
// purely Evaluate over a cached window list; the list itself is refreshed
// from the repository on a slower interval, so a tick never does I/O.
type Watcher struct {
	repo    RepositoryInterface
	logger  *zap.SugaredLogger
	tick    time.Duration
	refresh time.Duration

	mu      sync.RWMutex
	windows []models.OrderingWindow
	status  models.WindowStatus

	stop chan struct{}
	done chan struct{}
}

// NewWatcher creates a watcher with the standard one-second evaluation tick.
func NewWatcher(repo RepositoryInterface, logger *zap.SugaredLogger, refresh time.Duration) *Watcher {
	return &Watcher{
		repo:    repo,
		logger:  logger,
		tick:    time.Second,
		refresh: refresh,
		status:  models.WindowStatus{Label: "No upcoming windows"},
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}
}

// Start loads the initial window list and launches the tick loop.
func (w *Watcher) Start() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := w.Refresh(ctx); err != nil {
		return err
	}
	w.Reevaluate(time.Now())

	go w.run()
	return nil
}

// Stop cancels the tick loop and waits for it to exit.
func (w *Watcher) Stop() {
	close(w.stop)
	<-w.done
}

// Current returns the most recently evaluated status.
func (w *Watcher) Current() models.WindowStatus {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.status
}

// Refresh reloads the cached window list. On failure the previous list is
// kept so evaluation keeps running on stale data.
func (w *Watcher) Refresh(ctx context.Context) error {
	ws, err := w.repo.ListUpcoming(ctx, time.Now())
	if err != nil {
		return err
	}
	w.mu.Lock()
	w.windows = ws
	w.mu.Unlock()
	return nil
}

// Reevaluate recomputes the status for the given instant from the cached
// window list.
func (w *Watcher) Reevaluate(now time.Time) {
	w.mu.RLock()
	ws := w.windows
	w.mu.RUnlock()

	status := Evaluate(ws, now)

	w.mu.Lock()
	w.status = status
	w.mu.Unlock()
}

func (w *Watcher) run() {
	defer close(w.done)

	ticker := time.NewTicker(w.tick)
	defer ticker.Stop()
	refresher := time.NewTicker(w.refresh)
	defer refresher.Stop()

	for {
		select {
		case <-w.stop:
			return
		case now := <-ticker.C:
			w.Reevaluate(now)
		case <-refresher.C:
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			if err := w.Refresh(ctx); err != nil {
				w.logger.Warnw("window refresh failed, keeping cached list", "error", err)
			}
			cancel()
		}
	}
}
