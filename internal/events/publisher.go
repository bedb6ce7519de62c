// Package events carries contact lifecycle notifications out of the
// request path: to Kafka for the notifier worker and to the WebSocket hub
// for connected clients.
package events

import "context"

const (
	TypeRequestCreated  = "contact.request.created"
	TypeRequestAccepted = "contact.request.accepted"
	TypeRequestRejected = "contact.request.rejected"
	TypeContactRemoved  = "contact.removed"
)

// Event notifies UserID about something ActorID did. At is epoch millis.
type Event struct {
	Type      string `json:"type"`
	UserID    string `json:"userId"`
	ActorID   string `json:"actorId"`
	RequestID string `json:"requestId,omitempty"`
	ContactID string `json:"contactId,omitempty"`
	At        int64  `json:"at"`
}

type Publisher interface {
	Publish(ctx context.Context, event Event) error
	Close() error
}

// NopPublisher drops every event. Used when no brokers are configured and
// in tests.
type NopPublisher struct{}

func (NopPublisher) Publish(ctx context.Context, event Event) error { return nil }
func (NopPublisher) Close() error                                   { return nil }
