package bot

import (
	"context"

	"github.com/narwhalmedia/requestbot/internal/overseerr"
	"github.com/narwhalmedia/requestbot/internal/presenter"
)

// Catalog is the media-request service as seen by the controller.
// *overseerr.Client implements it.
type Catalog interface {
	Search(ctx context.Context, query string) (*overseerr.SearchResult, error)
	Details(ctx context.Context, mediaType overseerr.MediaType, id int) (overseerr.Details, error)
	Ratings(ctx context.Context, mediaType overseerr.MediaType, id int) (overseerr.Ratings, error)
	Recommendations(ctx context.Context, mediaType overseerr.MediaType, id, page int) (*overseerr.SearchResult, error)
	CreateRequest(ctx context.Context, req overseerr.CreateRequest) (overseerr.RequestRecord, error)
	ApproveRequest(ctx context.Context, requestID int, is4k bool) (overseerr.RequestRecord, error)
}

// Messenger replies inside one conversation. The transport binds it to
// the chat and, for button taps, to the message that carried the button.
type Messenger interface {
	// SendText sends a plain text message.
	SendText(ctx context.Context, text string) error
	// SendCard sends the card as an HTML text message.
	SendCard(ctx context.Context, card presenter.Card) error
	// SendPhoto sends the card as a photo with the caption attached.
	SendPhoto(ctx context.Context, photoURL string, card presenter.Card) error
	// ClearButtons removes the inline keyboard of the tapped message.
	ClearButtons(ctx context.Context) error
}

// Authorizer decides who may use the bot. *access.Guard implements it.
type Authorizer interface {
	Allowed(userID int64) bool
}
