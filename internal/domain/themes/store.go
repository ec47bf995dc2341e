// Package themes keeps each user's light/dark preference. The browser half
// of theming (applying the attribute, media queries) belongs to the client;
// the server only remembers the choice.
package themes

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/eventease/server/internal/notify"
)

// Mode is a UI theme name.
type Mode string

const (
	Light Mode = "light"
	Dark  Mode = "dark"
)

// ChangeNotice is the payload published on theme.changed.
type ChangeNotice struct {
	UserID string
	Mode   Mode
}

// Store holds per-user theme preferences with a process-wide default for
// users who never chose.
type Store struct {
	mu          sync.RWMutex
	preferences map[string]Mode
	defaultMode Mode
	bus         *notify.Bus
	logger      zerolog.Logger
}

func NewStore(defaultMode Mode, bus *notify.Bus, logger zerolog.Logger) *Store {
	if defaultMode != Dark {
		defaultMode = Light
	}
	return &Store{
		preferences: make(map[string]Mode),
		defaultMode: defaultMode,
		bus:         bus,
		logger:      logger.With().Str("component", "themes").Logger(),
	}
}

// Get returns the user's preference, or the process default when unset.
func (s *Store) Get(_ context.Context, userID string) Mode {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if mode, ok := s.preferences[userID]; ok {
		return mode
	}
	return s.defaultMode
}

// Set stores an explicit preference and notifies subscribers.
func (s *Store) Set(_ context.Context, userID string, mode Mode) {
	if mode != Dark {
		mode = Light
	}
	s.mu.Lock()
	s.preferences[userID] = mode
	s.mu.Unlock()

	s.bus.Publish(notify.TopicThemeChanged, ChangeNotice{UserID: userID, Mode: mode})
}

// Toggle flips the user's preference and returns the new mode. The read and
// the write are one step under the store mutex.
func (s *Store) Toggle(_ context.Context, userID string) Mode {
	s.mu.Lock()
	current, ok := s.preferences[userID]
	if !ok {
		current = s.defaultMode
	}
	next := Dark
	if current == Dark {
		next = Light
	}
	s.preferences[userID] = next
	s.mu.Unlock()

	s.bus.Publish(notify.TopicThemeChanged, ChangeNotice{UserID: userID, Mode: next})
	return next
}
