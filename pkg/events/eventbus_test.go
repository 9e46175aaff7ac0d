package events_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/narwhalmedia/requestbot/pkg/events"
	"github.com/narwhalmedia/requestbot/pkg/interfaces"
	"github.com/narwhalmedia/requestbot/pkg/logger"
)

type recordingHandler struct {
	name string
	err  error

	mu   sync.Mutex
	seen []string
}

func (h *recordingHandler) Handle(ctx context.Context, event interfaces.Event) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.seen = append(h.seen, event.EventType())
	return h.err
}

func (h *recordingHandler) EventType() string { return h.name }

func (h *recordingHandler) types() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]string(nil), h.seen...)
}

func TestPublishRoutesByTypeAndWildcard(t *testing.T) {
	bus := events.NewInMemoryEventBus(logger.NewNoop())
	created := &recordingHandler{name: "created"}
	all := &recordingHandler{name: "all", err: errors.New("sink down")}

	require.NoError(t, bus.Subscribe(events.RequestCreated, created))
	require.NoError(t, bus.Subscribe(events.Wildcard, all))

	ctx := context.Background()
	require.NoError(t, bus.Publish(ctx, events.NewRequestEvent(events.RequestCreated, "movie", 1)))
	require.NoError(t, bus.Publish(ctx, events.NewRequestEvent(events.RequestApproved, "movie", 1)))

	assert.Equal(t, []string{events.RequestCreated}, created.types())
	assert.Equal(t, []string{events.RequestCreated, events.RequestApproved}, all.types())
}

func TestPublishAsyncDrainsOnStop(t *testing.T) {
	bus := events.NewInMemoryEventBus(logger.NewNoop())
	h := &recordingHandler{name: "h"}
	require.NoError(t, bus.Subscribe(events.RequestFailed, h))

	ctx, cancel := context.WithCancel(context.Background())
	bus.PublishAsync(ctx, events.NewRequestEvent(events.RequestFailed, "tv", 9))
	cancel()

	require.NoError(t, bus.Stop())
	assert.Equal(t, []string{events.RequestFailed}, h.types())
}

func TestAggregateID(t *testing.T) {
	ev := events.NewRequestEvent(events.RequestCreated, "tv", 1399)
	assert.Equal(t, "tv/1399", ev.AggregateID())
	assert.NotEmpty(t, ev.ID)
}
