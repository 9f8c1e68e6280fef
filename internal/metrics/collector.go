package metrics

import (
	"context"
	"sync"
	"time"

	"ffmpeg-gui/internal/logging"
)

// RefreshFunc recomputes gauges that are derived from state on disk.
type RefreshFunc func(ctx context.Context) error

// Collector periodically refreshes the config store gauges while guictl
// serve is running, so a scrape reflects edits made inside the GUI.
type Collector struct {
	refresh  RefreshFunc
	interval time.Duration
	stopChan chan struct{}
	stopOnce sync.Once
	done     chan struct{}
}

// NewCollector creates a new metrics collector
func NewCollector(refresh RefreshFunc, interval time.Duration) *Collector {
	return &Collector{
		refresh:  refresh,
		interval: interval,
		stopChan: make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Start begins the collection loop
func (c *Collector) Start() {
	go c.collectLoop()
}

// Stop stops the collection loop and waits for it to exit. It is safe to
// call more than once, but only after Start.
func (c *Collector) Stop() {
	c.stopOnce.Do(func() { close(c.stopChan) })
	<-c.done
}

func (c *Collector) collectLoop() {
	defer close(c.done)

	// Collect immediately on start
	c.collect()

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.collect()
		case <-c.stopChan:
			return
		}
	}
}

func (c *Collector) collect() {
	if c.refresh == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), c.interval)
	defer cancel()

	start := time.Now()
	if err := c.refresh(ctx); err != nil {
		logging.Warn("Metrics refresh failed: %v", err)
		return
	}
	logging.Debug("Metrics refreshed in %v", time.Since(start))
}
