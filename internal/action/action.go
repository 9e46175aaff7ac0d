// Package action encodes the button payloads attached to result cards.
//
// A token is "<kind>|<mediaType>|<mediaID>", e.g. "req|movie|438631". Tokens
// are only built and parsed at the transport boundary; everything inside the
// bot works with the typed Request and Recommend values.
package action

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/narwhalmedia/requestbot/internal/overseerr"
)

const (
	kindRequest   = "req"
	kindRecommend = "rec"
	separator     = "|"

	// maxTokenLen is the Telegram callback_data limit.
	maxTokenLen = 64
)

var (
	// ErrUnknownAction is returned for payloads that are not ours.
	ErrUnknownAction = errors.New("unknown action")
	// ErrInvalidID is returned when the media id is not an integer.
	ErrInvalidID = errors.New("invalid identifier")
)

// Action is a button payload. It is either Request or Recommend.
type Action interface {
	// Token renders the wire form.
	Token() string
	isAction()
}

// Request asks for a media item to be requested and approved.
type Request struct {
	MediaType overseerr.MediaType
	MediaID   int
}

// Recommend asks for titles related to a media item.
type Recommend struct {
	MediaType overseerr.MediaType
	MediaID   int
}

func (r Request) Token() string   { return encode(kindRequest, r.MediaType, r.MediaID) }
func (r Recommend) Token() string { return encode(kindRecommend, r.MediaType, r.MediaID) }

func (Request) isAction()   {}
func (Recommend) isAction() {}

func encode(kind string, mediaType overseerr.MediaType, id int) string {
	return kind + separator + string(mediaType) + separator + strconv.Itoa(id)
}

// Parse decodes a token.
//
// When the kind and media type are readable but the id is not an integer,
// Parse returns the typed action with a zero MediaID together with
// ErrInvalidID, so callers can still react per kind.
func Parse(token string) (Action, error) {
	if len(token) > maxTokenLen {
		return nil, fmt.Errorf("%w: token too long", ErrUnknownAction)
	}
	parts := strings.SplitN(token, separator, 3)
	if len(parts) != 3 {
		return nil, fmt.Errorf("%w: %q", ErrUnknownAction, token)
	}
	mediaType := overseerr.MediaType(parts[1])
	id, idErr := strconv.Atoi(parts[2])
	if idErr != nil {
		id = 0
		idErr = fmt.Errorf("%w: %q", ErrInvalidID, parts[2])
	}

	switch parts[0] {
	case kindRequest:
		return Request{MediaType: mediaType, MediaID: id}, idErr
	case kindRecommend:
		return Recommend{MediaType: mediaType, MediaID: id}, idErr
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownAction, parts[0])
	}
}
