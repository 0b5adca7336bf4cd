package event

import (
	"context"
	"encoding/json"
)

// Event names pushed to live channels.
const (
	NewMessage    = "newMessage"
	UpdateMessage = "updateMessage"
	DeleteMessage = "deleteMessage"
)

// Event is a named notification emitted after a successful mutation.
// Payload is the full record for create/update and the bare id for delete.
type Event struct {
	Name    string `json:"event"`
	Payload any    `json:"payload"`
}

func (e Event) Marshal() ([]byte, error) {
	return json.Marshal(e)
}

// Sink receives events after the originating write has committed.
// Delivery is best effort: a sink failure must never fail the request
// that produced the event.
type Sink interface {
	Publish(ctx context.Context, evt Event)
}

// Multi fans one event out to several sinks.
type Multi []Sink

func (m Multi) Publish(ctx context.Context, evt Event) {
	for _, s := range m {
		s.Publish(ctx, evt)
	}
}
