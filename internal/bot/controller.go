// Package bot holds the conversation logic: search, present, act, confirm.
package bot

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/narwhalmedia/requestbot/internal/action"
	"github.com/narwhalmedia/requestbot/internal/overseerr"
	"github.com/narwhalmedia/requestbot/internal/presenter"
	apperrors "github.com/narwhalmedia/requestbot/pkg/errors"
	"github.com/narwhalmedia/requestbot/pkg/events"
	"github.com/narwhalmedia/requestbot/pkg/interfaces"
	"github.com/narwhalmedia/requestbot/pkg/logger"
)

const (
	// MaxCards bounds how many results a single reply renders.
	MaxCards = 10

	defaultEnrichWorkers = 4
)

// Settings tunes the controller.
type Settings struct {
	ImageBase     string
	Request4K     bool
	EnrichWorkers int
}

// Controller handles one update at a time; it is safe to call from many
// goroutines.
type Controller struct {
	catalog   Catalog
	guard     Authorizer
	publisher interfaces.EventPublisher
	logger    interfaces.Logger

	imageBase string
	request4K bool
	workers   int
}

// NewController creates a new controller
func NewController(
	catalog Catalog,
	guard Authorizer,
	publisher interfaces.EventPublisher,
	logger interfaces.Logger,
	settings Settings,
) *Controller {
	workers := settings.EnrichWorkers
	if workers < 1 {
		workers = defaultEnrichWorkers
	}
	return &Controller{
		catalog:   catalog,
		guard:     guard,
		publisher: publisher,
		logger:    logger,
		imageBase: strings.TrimRight(settings.ImageBase, "/"),
		request4K: settings.Request4K,
		workers:   workers,
	}
}

// beginTurn tags ctx with a fresh turn logger.
func (c *Controller) beginTurn(ctx context.Context, userID int64, kind string) (context.Context, interfaces.Logger) {
	ctx = logger.WithFields(ctx, c.logger,
		interfaces.String("turn_id", uuid.NewString()),
		interfaces.String("turn", kind),
		interfaces.Int64("user_id", userID))
	return ctx, logger.FromContext(ctx, c.logger)
}

// HandleStart answers /start and /help.
func (c *Controller) HandleStart(ctx context.Context, userID int64, m Messenger) error {
	ctx, log := c.beginTurn(ctx, userID, "start")
	if !c.guard.Allowed(userID) {
		log.Info("refusing unauthorized user")
		return m.SendText(ctx, MsgRestricted)
	}
	return m.SendText(ctx, MsgWelcome)
}

// HandleText treats text as a search query.
func (c *Controller) HandleText(ctx context.Context, userID int64, text string, m Messenger) error {
	ctx, log := c.beginTurn(ctx, userID, "search")
	if !c.guard.Allowed(userID) {
		log.Info("refusing unauthorized user")
		return m.SendText(ctx, MsgRestricted)
	}

	query := strings.TrimSpace(text)
	if query == "" {
		return m.SendText(ctx, MsgEmptyQuery)
	}

	result, err := c.catalog.Search(ctx, query)
	if err != nil {
		logFailure(log, "Search failed", err, interfaces.String("query", query))
		return m.SendText(ctx, prefixSearchError+apperrors.Message(err))
	}

	items := selectResults(result.Results)
	if len(items) == 0 {
		return m.SendText(ctx, MsgNoResults)
	}

	log.Debug("Search answered",
		interfaces.String("query", query),
		interfaces.Int("results", len(result.Results)),
		interfaces.Int("rendered", len(items)))
	return c.sendCards(ctx, m, c.enrichAll(ctx, items))
}

// HandleAction dispatches a button tap. Taps from unauthorized users and
// foreign payloads are dropped without a reply.
func (c *Controller) HandleAction(ctx context.Context, userID int64, token string, m Messenger) error {
	ctx, log := c.beginTurn(ctx, userID, "action")
	if !c.guard.Allowed(userID) {
		log.Info("ignoring tap from unauthorized user")
		return nil
	}

	act, err := action.Parse(token)
	if errors.Is(err, action.ErrUnknownAction) {
		log.Debug("ignoring unknown action", interfaces.String("token", token))
		return nil
	}
	invalid := errors.Is(err, action.ErrInvalidID)

	switch a := act.(type) {
	case action.Request:
		if invalid {
			c.clearButtons(ctx, m, log)
			return m.SendText(ctx, MsgInvalidID)
		}
		return c.request(ctx, userID, a, m, log)
	case action.Recommend:
		if invalid {
			return m.SendText(ctx, MsgInvalidID)
		}
		return c.recommend(ctx, a, m, log)
	default:
		return nil
	}
}

// request creates the media request and approves it when the service
// returned a request id. A failed approval never undoes the creation.
func (c *Controller) request(ctx context.Context, userID int64, a action.Request, m Messenger, log interfaces.Logger) error {
	log = log.WithFields(
		interfaces.String("media_type", string(a.MediaType)),
		interfaces.Int("media_id", a.MediaID))

	record, err := c.catalog.CreateRequest(ctx, overseerr.CreateRequest{
		MediaID:   a.MediaID,
		MediaType: a.MediaType,
		Is4K:      c.request4K,
	})
	if err != nil {
		logFailure(log, "Request failed", err)
		c.publish(ctx, c.requestEvent(events.RequestFailed, userID, a, 0, err))
		return m.SendText(ctx, prefixRequestError+apperrors.Message(err))
	}

	requestID, hasID := presenter.RequestID(record)
	c.publish(ctx, c.requestEvent(events.RequestCreated, userID, a, requestID, nil))
	log.Info("Request created", interfaces.Int("request_id", requestID), interfaces.Bool("is_4k", c.request4K))

	reply := MsgRequestSubmitted
	if hasID {
		if _, err := c.catalog.ApproveRequest(ctx, requestID, c.request4K); err != nil {
			logFailure(log, "Approve failed", err, interfaces.Int("request_id", requestID))
			c.publish(ctx, c.requestEvent(events.RequestApproveFailed, userID, a, requestID, err))
			reply = MsgRequestSubmitted + "\n" + prefixApproveFailed + apperrors.Message(err)
		} else {
			c.publish(ctx, c.requestEvent(events.RequestApproved, userID, a, requestID, nil))
			reply = MsgRequestApproved
		}
	}

	c.clearButtons(ctx, m, log)
	return m.SendText(ctx, reply)
}

// recommend renders titles related to a. Recommendations carry no media
// type of their own, so they inherit a's.
func (c *Controller) recommend(ctx context.Context, a action.Recommend, m Messenger, log interfaces.Logger) error {
	result, err := c.catalog.Recommendations(ctx, a.MediaType, a.MediaID, 1)
	if err != nil {
		logFailure(log, "Recommendations failed", err,
			interfaces.String("media_type", string(a.MediaType)),
			interfaces.Int("media_id", a.MediaID))
		return m.SendText(ctx, prefixRecsError+apperrors.Message(err))
	}
	if len(result.Results) == 0 {
		return m.SendText(ctx, MsgNoRecommendation)
	}

	items := result.Results
	if len(items) > MaxCards {
		items = items[:MaxCards]
	}
	tagged := make([]overseerr.Item, len(items))
	for i, item := range items {
		tagged[i] = presenter.WithMediaType(item, a.MediaType)
	}
	return c.sendCards(ctx, m, c.enrichAll(ctx, tagged))
}

// logFailure logs at warn when the media-request service reported the
// failure and at error for anything raised on our side.
func logFailure(log interfaces.Logger, msg string, err error, fields ...interfaces.Field) {
	fields = append(fields, interfaces.Error(err))
	if apperrors.IsUpstream(err) {
		log.Warn(msg, fields...)
		return
	}
	log.Error(msg, fields...)
}

func (c *Controller) clearButtons(ctx context.Context, m Messenger, log interfaces.Logger) {
	if err := m.ClearButtons(ctx); err != nil {
		log.Warn("Failed to clear buttons", interfaces.Error(err))
	}
}

// selectResults prefers movies and series, falling back to the raw list,
// and caps the result.
func selectResults(results []overseerr.Item) []overseerr.Item {
	picked := make([]overseerr.Item, 0, len(results))
	for _, item := range results {
		if declaredType(item).IsKnown() {
			picked = append(picked, item)
		}
	}
	if len(picked) == 0 {
		picked = results
	}
	if len(picked) > MaxCards {
		picked = picked[:MaxCards]
	}
	return picked
}

// declaredType is the media type the payload states, without defaulting.
func declaredType(item overseerr.Item) overseerr.MediaType {
	t, _ := item["mediaType"].(string)
	if t == "" {
		t, _ = item["media_type"].(string)
	}
	return overseerr.MediaType(t)
}

// sendCards delivers cards in order. The first delivery error ends the turn.
func (c *Controller) sendCards(ctx context.Context, m Messenger, cards []presenter.Card) error {
	log := logger.FromContext(ctx, c.logger)
	for _, card := range cards {
		if card.PosterPath != "" {
			err := m.SendPhoto(ctx, c.imageBase+card.PosterPath, card)
			if err == nil {
				continue
			}
			log.Warn("Photo delivery failed, sending text", interfaces.Error(err))
		}
		if err := m.SendCard(ctx, card); err != nil {
			return err
		}
	}
	return nil
}

func (c *Controller) requestEvent(eventType string, userID int64, a action.Request, requestID int, err error) *events.RequestEvent {
	ev := events.NewRequestEvent(eventType, string(a.MediaType), a.MediaID)
	ev.RequestID = requestID
	ev.Is4K = c.request4K
	ev.UserID = userID
	if err != nil {
		ev.Error = apperrors.Message(err)
	}
	return ev
}

func (c *Controller) publish(ctx context.Context, ev *events.RequestEvent) {
	if c.publisher == nil {
		return
	}
	c.publisher.PublishAsync(ctx, ev)
}
