package watch

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/lysyi3m/market-comb/app/listing"
	"github.com/lysyi3m/market-comb/app/marketplace"
)

// State is the monitor lifecycle stage. A stopped monitor is not resumable;
// restarting a watch means constructing a fresh Monitor.
type State string

const (
	StateIdle    State = "idle"
	StateRunning State = "running"
	StateStopped State = "stopped"
)

var (
	ErrAlreadyStarted = errors.New("monitor already started")
	ErrStopped        = errors.New("monitor is stopped and cannot be restarted")
)

// IdleStatus describes a configured watch that has never been started.
func IdleStatus(config *Config) Status {
	return Status{
		Name:     config.Name,
		Keywords: config.Keywords,
		MaxPrice: config.MaxPrice,
		Interval: (time.Duration(config.Settings.Interval) * time.Second).String(),
		State:    StateIdle,
	}
}

// Status is a point-in-time view of a monitor, served by the watches endpoint.
type Status struct {
	Name          string     `json:"name"`
	Keywords      string     `json:"keywords"`
	MaxPrice      *float64   `json:"max_price,omitempty"`
	Interval      string     `json:"interval"`
	State         State      `json:"state"`
	SeenCount     int        `json:"seen_count"`
	LastTickAt    *time.Time `json:"last_tick_at,omitempty"`
	LastSuccessAt *time.Time `json:"last_success_at,omitempty"`
	LastError     string     `json:"last_error,omitempty"`
}

// Monitor polls the marketplace for one watch on a fixed interval, merging
// newly discovered listings into the shared store. One goroutine owns the poll
// loop, so ticks never overlap; each tick runs search, normalization of the
// not-yet-seen subset, merge, prune and persist, and any tick failure is
// logged without terminating the loop.
type Monitor struct {
	config     *Config
	client     marketplace.Client
	normalizer *listing.Normalizer
	store      *listing.Store
	interval   time.Duration
	window     time.Duration

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu            sync.Mutex
	state         State
	seen          map[string]struct{}
	lastTickAt    *time.Time
	lastSuccessAt *time.Time
	lastError     string
}

func NewMonitor(config *Config, client marketplace.Client, normalizer *listing.Normalizer,
	store *listing.Store, window time.Duration) *Monitor {
	ctx, cancel := context.WithCancel(context.Background())

	return &Monitor{
		config:     config,
		client:     client,
		normalizer: normalizer,
		store:      store,
		interval:   time.Duration(config.Settings.Interval) * time.Second,
		window:     window,
		ctx:        ctx,
		cancel:     cancel,
		state:      StateIdle,
		seen:       make(map[string]struct{}),
	}
}

// Start spawns the poll loop. The first tick runs immediately, subsequent
// ticks at least interval apart.
func (m *Monitor) Start() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	switch m.state {
	case StateRunning:
		return ErrAlreadyStarted
	case StateStopped:
		return ErrStopped
	}
	m.state = StateRunning

	m.wg.Add(1)
	go func() {
		defer m.wg.Done()

		ticker := time.NewTicker(m.interval)
		defer ticker.Stop()

		for {
			m.runTick()

			select {
			case <-m.ctx.Done():
				return
			case <-ticker.C:
			}
		}
	}()

	slog.Info("Monitor started", "watch", m.config.Name, "keywords", m.config.Keywords, "interval", m.interval.String())
	return nil
}

// Stop signals cancellation and waits for the in-flight tick, if any, to
// finish. Cooperative only: no mid-tick interruption.
func (m *Monitor) Stop() {
	m.mu.Lock()
	if m.state != StateRunning {
		m.mu.Unlock()
		return
	}
	m.state = StateStopped
	m.mu.Unlock()

	m.cancel()
	m.wg.Wait()

	slog.Info("Monitor stopped", "watch", m.config.Name)
}

func (m *Monitor) Status() Status {
	m.mu.Lock()
	defer m.mu.Unlock()

	return Status{
		Name:          m.config.Name,
		Keywords:      m.config.Keywords,
		MaxPrice:      m.config.MaxPrice,
		Interval:      m.interval.String(),
		State:         m.state,
		SeenCount:     len(m.seen),
		LastTickAt:    m.lastTickAt,
		LastSuccessAt: m.lastSuccessAt,
		LastError:     m.lastError,
	}
}

// runTick executes one poll cycle. A failed search counts as an empty batch;
// the loop always continues to the next interval.
func (m *Monitor) runTick() {
	started := time.Now().UTC()
	m.mu.Lock()
	m.lastTickAt = &started
	m.mu.Unlock()

	query := marketplace.SearchQuery{
		Keywords: m.config.Keywords,
		MaxPrice: m.config.MaxPrice,
	}

	// Tick work runs on its own context: Stop only gates the inter-tick
	// select, it never aborts an in-flight call. The client's per-request
	// timeout bounds how long the tick can take.
	ctx := context.Background()

	rawListings, err := m.client.Search(ctx, query)
	if err != nil {
		slog.Error("Search failed, skipping tick", "watch", m.config.Name, "error", err)
		m.mu.Lock()
		m.lastError = err.Error()
		m.mu.Unlock()
		return
	}

	// Skip identities merged by an earlier tick before normalization, so
	// already-tracked listings cost no enrichment calls.
	fresh := m.filterUnseen(rawListings)

	batch := m.normalizer.RunBatch(ctx, fresh)
	added := m.store.Merge(batch)

	m.mu.Lock()
	for _, url := range added {
		m.seen[url] = struct{}{}
	}
	m.mu.Unlock()

	pruned := m.store.Prune(time.Now().UTC(), m.window)

	finished := time.Now().UTC()
	m.mu.Lock()
	m.lastSuccessAt = &finished
	m.lastError = ""
	m.mu.Unlock()

	slog.Info("Tick completed",
		"watch", m.config.Name,
		"duration", finished.Sub(started).String(),
		"total", len(rawListings),
		"new", len(added),
		"pruned", pruned)
}

func (m *Monitor) filterUnseen(rawListings []marketplace.RawListing) []marketplace.RawListing {
	m.mu.Lock()
	defer m.mu.Unlock()

	fresh := make([]marketplace.RawListing, 0, len(rawListings))
	for _, raw := range rawListings {
		if raw.URL == "" {
			continue
		}
		if _, ok := m.seen[raw.URL]; ok {
			continue
		}
		fresh = append(fresh, raw)
	}
	return fresh
}
