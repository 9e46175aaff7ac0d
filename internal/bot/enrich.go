package bot

import (
	"context"

	"github.com/sourcegraph/conc/pool"

	"github.com/narwhalmedia/requestbot/internal/overseerr"
	"github.com/narwhalmedia/requestbot/internal/presenter"
	"github.com/narwhalmedia/requestbot/pkg/interfaces"
	"github.com/narwhalmedia/requestbot/pkg/logger"
)

// enrichAll renders every item concurrently on a bounded pool. Each worker
// writes its own slot, so the output keeps the input order.
func (c *Controller) enrichAll(ctx context.Context, items []overseerr.Item) []presenter.Card {
	cards := make([]presenter.Card, len(items))
	p := pool.New().WithMaxGoroutines(c.workers)
	for i, item := range items {
		p.Go(func() {
			cards[i] = c.enrich(ctx, item)
		})
	}
	p.Wait()
	return cards
}

// enrich fetches details and ratings for one item. A failed ratings call
// keeps the details; failed details fall back to the base caption.
func (c *Controller) enrich(ctx context.Context, item overseerr.Item) presenter.Card {
	id, ok := presenter.MediaID(item)
	mediaType := presenter.MediaType(item)
	if !ok || !mediaType.IsKnown() {
		return presenter.BuildCard(item, nil)
	}

	log := logger.FromContext(ctx, c.logger).WithFields(
		interfaces.String("media_type", string(mediaType)),
		interfaces.Int("media_id", id))

	details, err := c.catalog.Details(ctx, mediaType, id)
	if err != nil {
		log.Warn("Details unavailable", interfaces.Error(err))
		return presenter.BuildCard(item, nil)
	}

	ratings, err := c.catalog.Ratings(ctx, mediaType, id)
	if err != nil {
		log.Debug("Ratings unavailable", interfaces.Error(err))
	} else {
		details = presenter.MergeRatings(details, ratings)
	}
	return presenter.BuildCard(item, details)
}
