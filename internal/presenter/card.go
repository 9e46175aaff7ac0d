// Package presenter turns raw catalog payloads into chat cards.
//
// Every function here is pure and total: unknown or malformed shapes degrade
// to empty fields instead of errors.
package presenter

import (
	"github.com/narwhalmedia/requestbot/internal/action"
	"github.com/narwhalmedia/requestbot/internal/overseerr"
)

const (
	labelDownload        = "⏬ Download"
	labelRecommendations = "👀 Recommendations"
)

// Button is one inline button.
type Button struct {
	Label  string
	Action action.Action
}

// Card is a rendered result: an HTML caption, an optional poster and a
// single row of buttons.
type Card struct {
	Caption    string
	PosterPath string
	Buttons    []Button
}

// BuildCard renders item, enriched with details when they are non-empty.
func BuildCard(item overseerr.Item, details overseerr.Details) Card {
	return Card{
		Caption:    Caption(item, details),
		PosterPath: PosterPath(item),
		Buttons:    Buttons(item),
	}
}

// Buttons offers Download while the item is not in the library and
// Recommendations for movies and series. Items without an id get none.
func Buttons(item overseerr.Item) []Button {
	id, ok := MediaID(item)
	if !ok {
		return nil
	}
	mediaType := MediaType(item)

	var buttons []Button
	if !IsAvailable(item) {
		buttons = append(buttons, Button{
			Label:  labelDownload,
			Action: action.Request{MediaType: mediaType, MediaID: id},
		})
	}
	if mediaType.IsKnown() {
		buttons = append(buttons, Button{
			Label:  labelRecommendations,
			Action: action.Recommend{MediaType: mediaType, MediaID: id},
		})
	}
	return buttons
}

// RequestID finds the request id in a create response: top-level id first,
// then request.id.
func RequestID(record overseerr.RequestRecord) (int, bool) {
	if id, ok := asID(record["id"]); ok {
		return id, true
	}
	return asID(asMap(record["request"])["id"])
}
