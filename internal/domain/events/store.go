// Package events holds the in-memory event catalog. The catalog is seeded
// exactly once on first access and afterwards only mutated by registration
// count increments.
package events

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Store is the canonical owner of the event catalog. A single store-wide
// mutex guards compound check-then-act updates; contention is expected to be
// low so per-event locking is not worth the complexity.
type Store struct {
	mu       sync.RWMutex
	seedOnce sync.Once
	byID     map[int]*Event
	order    []int

	// lookup caches immutable snapshots by id for repeat lookups. Snapshots
	// are refreshed under the store mutex when a count changes.
	lookup sync.Map // int -> Event

	searchMu    sync.Mutex
	searchCache map[string][]Event

	logger zerolog.Logger
	now    func() time.Time
}

func NewStore(logger zerolog.Logger) *Store {
	return &Store{
		byID:        make(map[int]*Event),
		searchCache: make(map[string][]Event),
		logger:      logger.With().Str("component", "events").Logger(),
		now:         time.Now,
	}
}

// seed fills the catalog on first use. sync.Once guarantees exactly-once
// initialization even when the first accesses are concurrent.
func (s *Store) seed() {
	s.seedOnce.Do(func() {
		catalog := seedCatalog(s.now())
		s.mu.Lock()
		defer s.mu.Unlock()
		for i := range catalog {
			event := catalog[i]
			s.byID[event.ID] = &event
			s.order = append(s.order, event.ID)
		}
		s.logger.Info().Int("events", len(catalog)).Msg("catalog seeded")
	})
}

// List returns a snapshot of the full catalog in seed order.
func (s *Store) List(_ context.Context) []Event {
	s.seed()
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Event, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.byID[id].clone())
	}
	return out
}

// Get returns the event with the given id or ErrNotFound.
func (s *Store) Get(_ context.Context, id int) (Event, error) {
	s.seed()
	if cached, ok := s.lookup.Load(id); ok {
		return cached.(Event), nil
	}

	s.mu.RLock()
	event, ok := s.byID[id]
	if !ok {
		s.mu.RUnlock()
		return Event{}, ErrNotFound
	}
	snapshot := event.clone()
	s.mu.RUnlock()

	s.lookup.LoadOrStore(id, snapshot)
	return snapshot, nil
}

// IncrementRegistration bumps the registered count for an event if it exists
// and is not full. The capacity check and the increment happen as one step
// under the store mutex.
func (s *Store) IncrementRegistration(_ context.Context, id int) error {
	s.seed()
	s.mu.Lock()
	defer s.mu.Unlock()

	event, ok := s.byID[id]
	if !ok {
		return ErrNotFound
	}
	if event.IsFull() {
		return ErrEventFull
	}
	event.RegisteredCount++

	// Keep the cached snapshot current for readers that hit the lookup path.
	if _, ok := s.lookup.Load(id); ok {
		s.lookup.Store(id, event.clone())
	}
	return nil
}

// Search returns events whose name, location, or tags contain the query,
// case-insensitively. An empty query returns the full catalog. Results are
// cached per normalized query until ClearCache.
func (s *Store) Search(ctx context.Context, query string) []Event {
	s.seed()
	key := strings.ToLower(strings.TrimSpace(query))
	if key == "" {
		return s.List(ctx)
	}

	s.searchMu.Lock()
	if cached, ok := s.searchCache[key]; ok {
		s.searchMu.Unlock()
		return append([]Event(nil), cached...)
	}
	s.searchMu.Unlock()

	var matches []Event
	for _, event := range s.List(ctx) {
		if eventMatches(event, key) {
			matches = append(matches, event)
		}
	}

	s.searchMu.Lock()
	s.searchCache[key] = append([]Event(nil), matches...)
	s.searchMu.Unlock()
	return matches
}

func eventMatches(event Event, key string) bool {
	if strings.Contains(strings.ToLower(event.Name), key) {
		return true
	}
	if strings.Contains(strings.ToLower(event.Location), key) {
		return true
	}
	for _, tag := range event.Tags {
		if strings.Contains(strings.ToLower(tag), key) {
			return true
		}
	}
	return false
}

// ClearCache drops the lookup and search caches. Canonical catalog data is
// untouched.
func (s *Store) ClearCache() {
	s.lookup.Range(func(key, _ any) bool {
		s.lookup.Delete(key)
		return true
	})
	s.searchMu.Lock()
	s.searchCache = make(map[string][]Event)
	s.searchMu.Unlock()
}
