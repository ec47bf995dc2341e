// Package notify provides the in-process publish/subscribe bus used for
// session and registration change notifications. Delivery is synchronous and
// in subscription order; a failing subscriber never disturbs the publisher.
package notify

import (
	"sync"

	"github.com/rs/zerolog"
)

// Topic names published by the domain stores.
const (
	TopicSessionCreated     = "session.created"
	TopicSessionEnded       = "session.ended"
	TopicRegistrationChange = "registration.changed"
	TopicThemeChanged       = "theme.changed"
)

// Handler receives the payload published for a topic.
type Handler func(payload any)

// Bus is a callback registry keyed by topic. Handlers run on the publisher's
// goroutine, in subscription order, best-effort.
type Bus struct {
	mu     sync.RWMutex
	nextID int
	topics map[string][]subscription
	logger zerolog.Logger
}

type subscription struct {
	id      int
	handler Handler
}

func NewBus(logger zerolog.Logger) *Bus {
	return &Bus{
		topics: make(map[string][]subscription),
		logger: logger.With().Str("component", "notify").Logger(),
	}
}

// Subscribe registers a handler for a topic and returns a token for
// Unsubscribe.
func (b *Bus) Subscribe(topic string, handler Handler) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.nextID++
	b.topics[topic] = append(b.topics[topic], subscription{id: b.nextID, handler: handler})
	return b.nextID
}

// Unsubscribe removes a handler; unknown tokens are ignored.
func (b *Bus) Unsubscribe(topic string, id int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	subs := b.topics[topic]
	for i, sub := range subs {
		if sub.id == id {
			b.topics[topic] = append(subs[:i:i], subs[i+1:]...)
			return
		}
	}
}

// Publish delivers payload to every subscriber of topic. A panicking
// subscriber is recovered and logged; remaining subscribers still run.
func (b *Bus) Publish(topic string, payload any) {
	b.mu.RLock()
	subs := append([]subscription(nil), b.topics[topic]...)
	b.mu.RUnlock()

	for _, sub := range subs {
		b.deliver(topic, sub, payload)
	}
}

func (b *Bus) deliver(topic string, sub subscription, payload any) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error().
				Str("topic", topic).
				Int("subscriber", sub.id).
				Interface("panic", r).
				Msg("subscriber panicked")
		}
	}()
	sub.handler(payload)
}
