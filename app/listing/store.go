package listing

import (
	"log/slog"
	"sync"
	"time"
)

// Store holds every listing seen within the retention window, keyed by URL.
// It is the only shared mutable state between the polling monitors (writers)
// and the query endpoints (readers): Merge and Prune take the write lock,
// Snapshot the read lock, so no reader ever observes a partially merged batch.
type Store struct {
	mu          sync.RWMutex
	items       map[string]Listing
	persistence Persistence
}

// NewStore creates a store backed by the given persistence adapter. A failed
// load is logged and yields an empty store; startup never fails on bad data.
func NewStore(persistence Persistence) *Store {
	items, err := persistence.Load()
	if err != nil {
		slog.Warn("Failed to load persisted products, starting empty", "error", err)
		items = make(map[string]Listing)
	}

	return &Store{
		items:       items,
		persistence: persistence,
	}
}

// Merge inserts every listing of the batch whose URL is not already tracked,
// stamping it with the current UTC time, and returns the newly added URLs.
// Listings with an already-known URL are left untouched: re-appearance does
// not refresh fields or reset the retention clock.
func (s *Store) Merge(batch []Listing) []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC().Format(time.RFC3339)

	var added []string
	for _, item := range batch {
		if item.URL == "" {
			continue
		}
		if _, exists := s.items[item.URL]; exists {
			continue
		}
		item.Timestamp = now
		s.items[item.URL] = item
		added = append(added, item.URL)
	}

	if len(added) > 0 {
		s.save()
	}

	return added
}

// Snapshot returns a consistent point-in-time copy of all tracked listings.
func (s *Store) Snapshot() []Listing {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]Listing, 0, len(s.items))
	for _, item := range s.items {
		items = append(items, item)
	}
	return items
}

// Len returns the number of tracked listings.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// Prune removes every listing ingested before now - window and returns how
// many were removed. Entries with an unparseable timestamp are treated as
// expired immediately: losing corrupt data beats unbounded growth.
func (s *Store) Prune(now time.Time, window time.Duration) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := now.Add(-window)

	removed := 0
	for url, item := range s.items {
		ingested, err := time.Parse(time.RFC3339, item.Timestamp)
		if err != nil || ingested.Before(cutoff) {
			delete(s.items, url)
			removed++
		}
	}

	if removed > 0 {
		s.save()
	}

	return removed
}

// save shadows the current mapping through the persistence adapter. Failures
// are logged and swallowed: the in-memory store stays authoritative for the
// process lifetime. Callers must hold the write lock.
func (s *Store) save() {
	if err := s.persistence.Save(s.items); err != nil {
		slog.Error("Failed to persist products", "error", err)
	}
}
