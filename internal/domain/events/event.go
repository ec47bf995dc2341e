package events

import (
	"errors"
	"time"
)

var (
	ErrNotFound  = errors.New("event not found")
	ErrEventFull = errors.New("event is full")
)

// Event is a catalog entry. Identity is immutable; only RegisteredCount
// changes after seeding, and only through Store.IncrementRegistration.
type Event struct {
	ID               int       `json:"id"`
	Name             string    `json:"name"`
	Date             time.Time `json:"date"`
	Location         string    `json:"location"`
	Description      string    `json:"description"`
	Price            float64   `json:"price"`
	Capacity         int       `json:"capacity"`
	RegisteredCount  int       `json:"registered_count"`
	ImageURL         string    `json:"image_url,omitempty"`
	Tags             []string  `json:"tags"`
	OrganizerName    string    `json:"organizer_name"`
	OrganizerContact string    `json:"organizer_contact"`
}

// IsFull reports whether the event has reached capacity.
func (e Event) IsFull() bool {
	return e.RegisteredCount >= e.Capacity
}

// AvailableSpots returns the remaining capacity, never negative.
func (e Event) AvailableSpots() int {
	if spots := e.Capacity - e.RegisteredCount; spots > 0 {
		return spots
	}
	return 0
}

// IsUpcoming reports whether the event date is in the future.
func (e Event) IsUpcoming() bool {
	return e.Date.After(time.Now())
}

// clone returns a copy with its own tags slice so callers cannot mutate
// store state through a returned event.
func (e Event) clone() Event {
	e.Tags = append([]string(nil), e.Tags...)
	return e
}
