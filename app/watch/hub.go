package watch

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/lysyi3m/market-comb/app/listing"
	"github.com/lysyi3m/market-comb/app/marketplace"
)

// Hub owns all active monitors, one per watch name. Monitors are not
// resumable, so restarting a watch replaces its stopped monitor with a
// fresh instance.
type Hub struct {
	client     marketplace.Client
	normalizer *listing.Normalizer
	store      *listing.Store
	window     time.Duration

	mu       sync.Mutex
	monitors map[string]*Monitor
}

func NewHub(client marketplace.Client, normalizer *listing.Normalizer,
	store *listing.Store, window time.Duration) *Hub {
	return &Hub{
		client:     client,
		normalizer: normalizer,
		store:      store,
		window:     window,
		monitors:   make(map[string]*Monitor),
	}
}

// Start creates and starts a monitor for the watch, replacing a previously
// stopped one. Starting a watch whose monitor is still running is an error.
func (h *Hub) Start(config *Config) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if existing, ok := h.monitors[config.Name]; ok {
		if existing.Status().State == StateRunning {
			return fmt.Errorf("watch '%s' is already running", config.Name)
		}
	}

	monitor := NewMonitor(config, h.client, h.normalizer, h.store, h.window)
	if err := monitor.Start(); err != nil {
		return fmt.Errorf("failed to start watch '%s': %w", config.Name, err)
	}

	h.monitors[config.Name] = monitor
	return nil
}

// Stop terminates the monitor for the watch. The stopped monitor stays
// registered so its final status remains visible.
func (h *Hub) Stop(name string) error {
	h.mu.Lock()
	monitor, ok := h.monitors[name]
	h.mu.Unlock()

	if !ok {
		return fmt.Errorf("watch '%s' has no monitor", name)
	}

	monitor.Stop()
	return nil
}

// StopAll stops every running monitor. Used during graceful shutdown.
func (h *Hub) StopAll() {
	h.mu.Lock()
	monitors := make([]*Monitor, 0, len(h.monitors))
	for _, monitor := range h.monitors {
		monitors = append(monitors, monitor)
	}
	h.mu.Unlock()

	for _, monitor := range monitors {
		monitor.Stop()
	}
}

// Statuses returns the status of every known monitor, sorted by watch name.
func (h *Hub) Statuses() []Status {
	h.mu.Lock()
	defer h.mu.Unlock()

	statuses := make([]Status, 0, len(h.monitors))
	for _, monitor := range h.monitors {
		statuses = append(statuses, monitor.Status())
	}

	sort.Slice(statuses, func(i, j int) bool {
		return statuses[i].Name < statuses[j].Name
	})

	return statuses
}

// Count returns the number of registered monitors.
func (h *Hub) Count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.monitors)
}
