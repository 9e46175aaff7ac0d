package interfaces

import (
	"context"
)

// Event is something that happened to a media request.
type Event interface {
	// EventID returns the unique id of this occurrence
	EventID() string

	// EventType returns the type of the event, e.g. "request.created"
	EventType() string

	// Timestamp returns when the event occurred (unix nanoseconds)
	Timestamp() int64

	// AggregateID returns the upstream id of the media the event is about
	AggregateID() string
}

// EventHandler handles events of a specific type.
type EventHandler interface {
	// Handle processes an event
	Handle(ctx context.Context, event Event) error

	// EventType returns the type of events this handler processes
	EventType() string
}

// EventPublisher is the producer side of an EventBus.
type EventPublisher interface {
	// PublishAsync publishes an event without blocking the caller
	PublishAsync(ctx context.Context, event Event)
}

// EventBus provides pub/sub functionality for request lifecycle events.
type EventBus interface {
	EventPublisher

	// Publish publishes an event to all subscribers
	Publish(ctx context.Context, event Event) error

	// Subscribe registers a handler for a specific event type
	Subscribe(eventType string, handler EventHandler) error

	// Start starts the event bus
	Start(ctx context.Context) error

	// Stop stops the event bus, waiting for async publishes
	Stop() error
}
