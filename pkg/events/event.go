package events

import (
	"context"
	"time"
)

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "SESSION_EXPIRED").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// BaseEvent helps embed common logic if needed,
// strictly creating valid implementations is preferred though.
type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

// Publisher abstracts the bus events are emitted on.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

// Session lifecycle event codes.
const (
	SessionRegistered = "SESSION_REGISTERED"
	SessionRemoved    = "SESSION_REMOVED"
	SessionExpired    = "SESSION_EXPIRED"
	SessionRolledBack = "SESSION_ROLLED_BACK"
)
