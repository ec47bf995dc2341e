// Package attendance tracks who registered, checked in, or failed to show
// for each event. Records reference users and events by id only; nothing
// cascades.
package attendance

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/eventease/server/internal/domain/events"
	"github.com/eventease/server/internal/domain/ids"
	"github.com/eventease/server/internal/notify"
)

var (
	ErrNotFound               = errors.New("registration not found")
	ErrAlreadyRegistered      = errors.New("user is already registered for this event")
	ErrInvalidStateTransition = errors.New("registration is not in a transitionable state")
)

// Status is the attendance state of one registration. Transitions move
// forward only: registered may become checked_in or no_show, both terminal.
type Status string

const (
	StatusRegistered Status = "registered"
	StatusCheckedIn  Status = "checked_in"
	StatusNoShow     Status = "no_show"
)

// Registration is one user's attendance record for one event.
type Registration struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	EventID      int       `json:"event_id"`
	Status       Status    `json:"status"`
	RegisteredAt time.Time `json:"registered_at"`
	Notes        string    `json:"notes,omitempty"`
}

// Stats aggregates the ledger by status.
type Stats struct {
	Total          int `json:"total"`
	CheckedIn      int `json:"checked_in"`
	NoShows        int `json:"no_shows"`
	PendingCheckIn int `json:"pending_check_in"`
}

type pairKey struct {
	userID  string
	eventID int
}

// Ledger stores attendance records. The (user, event) uniqueness check and
// record insert run under one mutex; the event-count increment that follows
// is best-effort (capacity was checked first, there is no rollback), a
// documented gap rather than a hidden transaction.
type Ledger struct {
	mu     sync.RWMutex
	byID   map[string]*Registration
	byPair map[pairKey]string // (user, event) -> registration id

	catalog *events.Store
	bus     *notify.Bus
	logger  zerolog.Logger
}

func NewLedger(catalog *events.Store, bus *notify.Bus, logger zerolog.Logger) *Ledger {
	return &Ledger{
		byID:    make(map[string]*Registration),
		byPair:  make(map[pairKey]string),
		catalog: catalog,
		bus:     bus,
		logger:  logger.With().Str("component", "attendance").Logger(),
	}
}

// ChangeNotice is the payload published on registration.changed.
type ChangeNotice struct {
	UserID  string
	EventID int
	Status  Status
}

// Register records a user for an event. It fails when the pair is already
// registered, the event is unknown, or the event is full.
func (l *Ledger) Register(ctx context.Context, userID string, eventID int) (Registration, error) {
	key := pairKey{userID: userID, eventID: eventID}

	l.mu.Lock()
	if _, exists := l.byPair[key]; exists {
		l.mu.Unlock()
		return Registration{}, ErrAlreadyRegistered
	}

	event, err := l.catalog.Get(ctx, eventID)
	if err != nil {
		l.mu.Unlock()
		return Registration{}, fmt.Errorf("look up event %d: %w", eventID, err)
	}
	if event.IsFull() {
		l.mu.Unlock()
		return Registration{}, events.ErrEventFull
	}

	record := &Registration{
		ID:           ids.NewUUID(),
		UserID:       userID,
		EventID:      eventID,
		Status:       StatusRegistered,
		RegisteredAt: time.Now(),
	}
	l.byID[record.ID] = record
	l.byPair[key] = record.ID
	stored := *record
	l.mu.Unlock()

	// Count increment is best-effort after the record exists; a failure here
	// (a racing registration filled the last spot) leaves the record in
	// place. Capacity was checked above, so the window is narrow.
	if err := l.catalog.IncrementRegistration(ctx, eventID); err != nil {
		l.logger.Warn().Err(err).Int("event_id", eventID).Str("user_id", userID).
			Msg("registration stored but count increment failed")
	}

	l.bus.Publish(notify.TopicRegistrationChange, ChangeNotice{
		UserID:  userID,
		EventID: eventID,
		Status:  StatusRegistered,
	})
	return stored, nil
}

// CheckIn moves a registration from registered to checked_in.
func (l *Ledger) CheckIn(ctx context.Context, userID string, eventID int) error {
	return l.transition(ctx, userID, eventID, StatusCheckedIn)
}

// MarkNoShow moves a registration from registered to no_show.
func (l *Ledger) MarkNoShow(ctx context.Context, userID string, eventID int) error {
	return l.transition(ctx, userID, eventID, StatusNoShow)
}

func (l *Ledger) transition(_ context.Context, userID string, eventID int, to Status) error {
	l.mu.Lock()
	id, ok := l.byPair[pairKey{userID: userID, eventID: eventID}]
	if !ok {
		l.mu.Unlock()
		return ErrNotFound
	}
	record := l.byID[id]
	if record.Status != StatusRegistered {
		l.mu.Unlock()
		return ErrInvalidStateTransition
	}
	record.Status = to
	l.mu.Unlock()

	l.bus.Publish(notify.TopicRegistrationChange, ChangeNotice{
		UserID:  userID,
		EventID: eventID,
		Status:  to,
	})
	return nil
}

// GetRegistration returns the record for a (user, event) pair.
func (l *Ledger) GetRegistration(_ context.Context, userID string, eventID int) (Registration, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	id, ok := l.byPair[pairKey{userID: userID, eventID: eventID}]
	if !ok {
		return Registration{}, ErrNotFound
	}
	return *l.byID[id], nil
}

// UserRegistrations returns a user's records, newest first.
func (l *Ledger) UserRegistrations(_ context.Context, userID string) []Registration {
	l.mu.RLock()
	var out []Registration
	for _, record := range l.byID {
		if record.UserID == userID {
			out = append(out, *record)
		}
	}
	l.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		return out[i].RegisteredAt.After(out[j].RegisteredAt)
	})
	return out
}

// EventRegistrations returns an event's records, oldest first.
func (l *Ledger) EventRegistrations(_ context.Context, eventID int) []Registration {
	l.mu.RLock()
	var out []Registration
	for _, record := range l.byID {
		if record.EventID == eventID {
			out = append(out, *record)
		}
	}
	l.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		return out[i].RegisteredAt.Before(out[j].RegisteredAt)
	})
	return out
}

// EventAttendanceCount counts checked-in registrations for an event.
func (l *Ledger) EventAttendanceCount(_ context.Context, eventID int) int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	count := 0
	for _, record := range l.byID {
		if record.EventID == eventID && record.Status == StatusCheckedIn {
			count++
		}
	}
	return count
}

// ListAll returns every record in the ledger.
func (l *Ledger) ListAll(_ context.Context) []Registration {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]Registration, 0, len(l.byID))
	for _, record := range l.byID {
		out = append(out, *record)
	}
	return out
}

// Stats aggregates counts by status.
func (l *Ledger) Stats(_ context.Context) Stats {
	l.mu.RLock()
	defer l.mu.RUnlock()
	stats := Stats{Total: len(l.byID)}
	for _, record := range l.byID {
		switch record.Status {
		case StatusCheckedIn:
			stats.CheckedIn++
		case StatusNoShow:
			stats.NoShows++
		case StatusRegistered:
			stats.PendingCheckIn++
		}
	}
	return stats
}
