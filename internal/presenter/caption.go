package presenter

import (
	"fmt"
	"html"
	"strings"

	"github.com/narwhalmedia/requestbot/internal/overseerr"
)

const rottenTomatoesHome = "https://www.rottentomatoes.com/"

// BaseCaption renders the title, year and library status blocks.
func BaseCaption(item overseerr.Item) string {
	lines := []string{
		fmt.Sprintf("<b>%s</b> - (%s)", html.EscapeString(Title(item)), TypeLabel(item)),
	}
	if year, ok := Year(item); ok {
		lines = append(lines, "Year - "+html.EscapeString(year))
	}
	lines = append(lines, "")
	if IsAvailable(item) {
		lines = append(lines, "✅ Status: in library")
	} else {
		lines = append(lines, "❌ Status: not in library")
	}
	return strings.Join(lines, "\n")
}

// Caption renders the full caption. Empty details leave the base caption
// untouched; the ratings and trailer blocks appear only when they have
// content.
func Caption(item overseerr.Item, details overseerr.Details) string {
	base := BaseCaption(item)
	if len(details) == 0 {
		return base
	}

	var ratings []string
	r := ExtractRatings(details)
	if r.IMDbURL != "" {
		label := "IMDb"
		if r.IMDbRating != "" {
			label = "IMDb: " + r.IMDbRating
		}
		ratings = append(ratings, link(r.IMDbURL, label))
	}

	rtURL := r.RTURL
	if rtURL == "" {
		rtURL = rottenTomatoesHome
	}
	if r.RTTomato != "" {
		ratings = append(ratings, link(rtURL, "🍅 Tomatometer : "+r.RTTomato+"%"))
	}
	if r.RTPopcorn != "" {
		ratings = append(ratings, link(rtURL, "🍿 Popcorn: "+r.RTPopcorn+"%"))
	}

	lines := []string{base}
	if len(ratings) > 0 {
		lines = append(lines, "")
		lines = append(lines, ratings...)
	}
	if trailer, ok := TrailerURL(details); ok {
		lines = append(lines, "", link(trailer, "🎬 Trailer"))
	}
	return strings.Join(lines, "\n")
}

func link(href, label string) string {
	return fmt.Sprintf(`<a href="%s">%s</a>`, html.EscapeString(href), html.EscapeString(label))
}
