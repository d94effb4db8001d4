package service

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// manualDebounce is the quiet period applied to manual refresh triggers.
const manualDebounce = 300 * time.Millisecond

// Refresher drives the periodic fetch cycle and funnels manual refresh
// requests through the same pipeline. Fetch cycles are serialized with a
// mutex so concurrent triggers cannot interleave partial writes.
type Refresher struct {
	fetcher  *Fetcher
	interval time.Duration
	logger   *zap.Logger

	debouncer *Debouncer
	stopChan  chan struct{}
	wg        sync.WaitGroup
	runMu     sync.Mutex

	mu      sync.Mutex
	running bool
}

// NewRefresher creates a refresher polling at the given interval.
func NewRefresher(fetcher *Fetcher, interval time.Duration, logger *zap.Logger) *Refresher {
	return &Refresher{
		fetcher:   fetcher,
		interval:  interval,
		logger:    logger,
		debouncer: NewDebouncer(manualDebounce),
		stopChan:  make(chan struct{}),
	}
}

// Start begins periodic refreshing. Non-blocking; the initial fetch runs
// immediately in the background.
func (r *Refresher) Start() {
	r.mu.Lock()
	if r.running {
		r.mu.Unlock()
		return
	}
	r.running = true
	r.mu.Unlock()

	r.logger.Info("refresher starting", zap.Duration("interval", r.interval))

	r.wg.Add(1)
	go r.refreshLoop()
}

// Stop gracefully stops the periodic refresh.
func (r *Refresher) Stop() {
	r.mu.Lock()
	if !r.running {
		r.mu.Unlock()
		return
	}
	r.running = false
	r.mu.Unlock()

	close(r.stopChan)
	r.debouncer.Cancel()
	r.wg.Wait()
	r.logger.Info("refresher stopped")
}

// TriggerManual requests an out-of-band refresh. Rapid triggers coalesce
// into a single fetch cycle.
func (r *Refresher) TriggerManual() {
	r.debouncer.Trigger(func() {
		r.logger.Info("manual refresh")
		r.runOnce()
	})
}

func (r *Refresher) refreshLoop() {
	defer r.wg.Done()

	r.runOnce()

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			r.runOnce()
		case <-r.stopChan:
			return
		}
	}
}

// runOnce executes one serialized fetch cycle.
func (r *Refresher) runOnce() {
	r.runMu.Lock()
	defer r.runMu.Unlock()
	r.fetcher.Refresh(context.Background())
}
