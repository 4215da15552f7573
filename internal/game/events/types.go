package events

import "time"

// Event is implemented by everything published on the bus
type Event interface {
	Type() string
	Timestamp() time.Time
	GameID() string
}

// Header holds the fields every event carries. Event structs embed it.
type Header struct {
	Kind string    `json:"type"`
	At   time.Time `json:"timestamp"`
	Game string    `json:"game_id"`
}

func newHeader(kind, gameID string) Header {
	return Header{Kind: kind, At: time.Now(), Game: gameID}
}

func (h Header) Type() string { return h.Kind }
func (h Header) Timestamp() time.Time { return h.At }
func (h Header) GameID() string { return h.Game }

// EventHandler receives events from a function subscription
type EventHandler func(Event)

// Subscriber receives the events it declares interest in
type Subscriber interface {
	// ID names the subscriber; subscribing the same ID again replaces it
	ID() string
	HandleEvent(Event)
	InterestedIn(eventType string) bool
}

// Publisher accepts events for delivery
type Publisher interface {
	Publish(Event)
}

// Discard is a Publisher that drops every event
var Discard Publisher = discard{}

type discard struct{}

func (discard) Publish(Event) {}
