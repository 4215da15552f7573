package events

import (
	"strconv"
	"sync"

	"github.com/rs/zerolog"
)

type subscription struct {
	id      string
	sub     Subscriber
	handler EventHandler
	types   map[string]struct{} // empty accepts every type
}

func (s subscription) wants(eventType string) bool {
	if s.sub != nil {
		return s.sub.InterestedIn(eventType)
	}
	if len(s.types) == 0 {
		return true
	}
	_, ok := s.types[eventType]
	return ok
}

// EventBus delivers every event synchronously to its subscriptions in the order they
// were registered. Delivery happens outside the bus lock, so handlers may subscribe.
// A panicking handler is logged and skipped.
type EventBus struct {
	mu       sync.RWMutex
	subs     []subscription
	nextFunc int
	logger   zerolog.Logger
}

// NewEventBus creates a bus with no subscriptions
func NewEventBus(logger zerolog.Logger) *EventBus {
	return &EventBus{
		logger: logger.With().Str("component", "event_bus").Logger(),
	}
}

// Subscribe registers s. A subscriber already registered under the same ID is replaced
// in place.
func (eb *EventBus) Subscribe(s Subscriber) {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	entry := subscription{id: s.ID(), sub: s}
	for i := range eb.subs {
		if eb.subs[i].id == entry.id {
			eb.subs[i] = entry
			eb.logger.Debug().Str("subscriber_id", entry.id).Msg("Subscriber replaced")
			return
		}
	}
	eb.subs = append(eb.subs, entry)
	eb.logger.Debug().Str("subscriber_id", entry.id).Msg("Subscriber added")
}

// SubscribeFunc registers handler for the given event types, every type when none are
// given, and returns the generated subscription ID
func (eb *EventBus) SubscribeFunc(handler EventHandler, eventTypes ...string) string {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	eb.nextFunc++
	entry := subscription{
		id:      "func-" + strconv.Itoa(eb.nextFunc),
		handler: handler,
		types:   make(map[string]struct{}, len(eventTypes)),
	}
	for _, t := range eventTypes {
		entry.types[t] = struct{}{}
	}
	eb.subs = append(eb.subs, entry)
	eb.logger.Debug().Str("subscriber_id", entry.id).Strs("event_types", eventTypes).Msg("Handler added")
	return entry.id
}

// Publish hands event to every interested subscription
func (eb *EventBus) Publish(event Event) {
	eb.mu.RLock()
	subs := make([]subscription, len(eb.subs))
	copy(subs, eb.subs)
	eb.mu.RUnlock()

	eventType := event.Type()
	eb.logger.Debug().
		Str("event_type", eventType).
		Str("game_id", event.GameID()).
		Int("subscriptions", len(subs)).
		Msg("Publishing event")

	for _, s := range subs {
		if s.wants(eventType) {
			eb.deliver(s, event)
		}
	}
}

func (eb *EventBus) deliver(s subscription, event Event) {
	defer func() {
		if r := recover(); r != nil {
			eb.logger.Error().
				Str("subscriber_id", s.id).
				Str("event_type", event.Type()).
				Interface("panic", r).
				Msg("Subscriber panicked while handling event")
		}
	}()
	if s.sub != nil {
		s.sub.HandleEvent(event)
		return
	}
	s.handler(event)
}
