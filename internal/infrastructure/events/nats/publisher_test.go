package nats_test

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	natsgo "github.com/nats-io/nats.go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/narwhalmedia/requestbot/internal/infrastructure/events/nats"
	"github.com/narwhalmedia/requestbot/pkg/config"
	"github.com/narwhalmedia/requestbot/pkg/events"
	"github.com/narwhalmedia/requestbot/pkg/logger"
)

type fakeConn struct {
	mu   sync.Mutex
	msgs []*natsgo.Msg
	err  error
}

func (f *fakeConn) PublishMsg(msg *natsgo.Msg) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.msgs = append(f.msgs, msg)
	return nil
}

func TestPublisher_Handle(t *testing.T) {
	conn := &fakeConn{}
	publisher := nats.NewPublisher(conn, "requestbot.", zaptest.NewLogger(t))

	event := events.NewRequestEvent(events.RequestApproved, "movie", 438631)
	event.RequestID = 12

	require.NoError(t, publisher.Handle(context.Background(), event))
	require.Len(t, conn.msgs, 1)

	msg := conn.msgs[0]
	assert.Equal(t, "requestbot.request.approved", msg.Subject)
	assert.Equal(t, event.ID, msg.Header.Get(natsgo.MsgIdHdr))

	var envelope struct {
		ID          string          `json:"id"`
		AggregateID string          `json:"aggregate_id"`
		EventType   string          `json:"event_type"`
		OccurredAt  time.Time       `json:"occurred_at"`
		Data        json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(msg.Data, &envelope))
	assert.Equal(t, event.ID, envelope.ID)
	assert.Equal(t, "movie/438631", envelope.AggregateID)
	assert.Equal(t, events.RequestApproved, envelope.EventType)
	assert.WithinDuration(t, time.Now(), envelope.OccurredAt, time.Minute)

	var data events.RequestEvent
	require.NoError(t, json.Unmarshal(envelope.Data, &data))
	assert.Equal(t, 12, data.RequestID)
}

func TestPublisher_HandleError(t *testing.T) {
	conn := &fakeConn{err: errors.New("nats: connection closed")}
	publisher := nats.NewPublisher(conn, "requestbot", zaptest.NewLogger(t))

	err := publisher.Handle(context.Background(), events.NewRequestEvent(events.RequestCreated, "tv", 1))
	assert.ErrorContains(t, err, "connection closed")
}

func TestPublisher_SubscribesToEverything(t *testing.T) {
	conn := &fakeConn{}
	publisher := nats.NewPublisher(conn, "", zaptest.NewLogger(t))
	assert.Equal(t, events.Wildcard, publisher.EventType())

	bus := events.NewInMemoryEventBus(logger.NewNoop())
	require.NoError(t, bus.Subscribe(publisher.EventType(), publisher))
	bus.PublishAsync(context.Background(), events.NewRequestEvent(events.RequestCreated, "movie", 1))
	bus.PublishAsync(context.Background(), events.NewRequestEvent(events.RequestApproveFailed, "movie", 1))
	require.NoError(t, bus.Stop())

	conn.mu.Lock()
	defer conn.mu.Unlock()
	subjects := []string{conn.msgs[0].Subject, conn.msgs[1].Subject}
	assert.ElementsMatch(t, []string{"request.created", "request.approve_failed"}, subjects)
}

func TestNewClient(t *testing.T) {
	cfg := config.NATSConfig{
		URL:           "nats://localhost:4222",
		MaxReconnect:  1,
		ReconnectWait: 100 * time.Millisecond,
	}

	client, cleanup, err := nats.NewClient(cfg, "requestbot-test", zaptest.NewLogger(t))
	if err != nil {
		t.Skip("NATS not available:", err)
	}
	defer cleanup()

	assert.True(t, client.IsConnected())
	publisher := nats.NewPublisher(client, "requestbot-test", zaptest.NewLogger(t))
	require.NoError(t, publisher.Handle(context.Background(), events.NewRequestEvent(events.RequestCreated, "movie", 1)))
}
