package nats

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/nats-io/nats.go"
	"go.uber.org/zap"

	"github.com/narwhalmedia/requestbot/pkg/events"
	"github.com/narwhalmedia/requestbot/pkg/interfaces"
)

// Conn is satisfied by *Client.
type Conn interface {
	PublishMsg(msg *nats.Msg) error
}

// Publisher forwards every bus event to NATS. Subscribe it to the
// in-memory bus under events.Wildcard.
type Publisher struct {
	conn   Conn
	prefix string
	logger *zap.Logger
}

// NewPublisher creates a new NATS event publisher
func NewPublisher(conn Conn, subjectPrefix string, logger *zap.Logger) *Publisher {
	return &Publisher{
		conn:   conn,
		prefix: strings.TrimSuffix(subjectPrefix, "."),
		logger: logger.Named("publisher"),
	}
}

// Handle publishes event to "<prefix>.<event type>".
func (p *Publisher) Handle(ctx context.Context, event interfaces.Event) error {
	subject := p.Subject(event)

	envelope := EventEnvelope{
		ID:          event.EventID(),
		AggregateID: event.AggregateID(),
		EventType:   event.EventType(),
		OccurredAt:  time.Unix(0, event.Timestamp()).UTC(),
		Data:        event,
	}

	data, err := json.Marshal(envelope)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	msg := nats.NewMsg(subject)
	msg.Data = data
	msg.Header.Set(nats.MsgIdHdr, event.EventID())

	if err := p.conn.PublishMsg(msg); err != nil {
		p.logger.Error("failed to publish event",
			zap.Error(err),
			zap.String("event_id", event.EventID()),
			zap.String("event_type", event.EventType()),
			zap.String("subject", subject),
		)
		return fmt.Errorf("failed to publish event: %w", err)
	}

	p.logger.Debug("event published",
		zap.String("event_id", event.EventID()),
		zap.String("event_type", event.EventType()),
		zap.String("subject", subject),
	)
	return nil
}

// EventType subscribes the publisher to every event.
func (p *Publisher) EventType() string {
	return events.Wildcard
}

// Subject returns the NATS subject for event.
func (p *Publisher) Subject(event interfaces.Event) string {
	if p.prefix == "" {
		return event.EventType()
	}
	return p.prefix + "." + event.EventType()
}

// EventEnvelope wraps an event with metadata for transport
type EventEnvelope struct {
	ID          string           `json:"id"`
	AggregateID string           `json:"aggregate_id"`
	EventType   string           `json:"event_type"`
	OccurredAt  time.Time        `json:"occurred_at"`
	Data        interfaces.Event `json:"data"`
}
