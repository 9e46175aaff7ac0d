package presenter

import (
	"strings"

	"github.com/narwhalmedia/requestbot/internal/overseerr"
)

const untitled = "(untitled)"

// MediaType returns the item's media type, defaulting to movie.
func MediaType(item overseerr.Item) overseerr.MediaType {
	if s, ok := asString(first(item, "mediaType", "media_type")); ok {
		return overseerr.MediaType(s)
	}
	return overseerr.MediaTypeMovie
}

// Title returns title, then name, then a placeholder.
func Title(item overseerr.Item) string {
	if s, ok := asString(first(item, "title", "name")); ok {
		return s
	}
	return untitled
}

// Year returns the first four characters of the release or first-air date.
func Year(item overseerr.Item) (string, bool) {
	date, ok := asString(first(item, "releaseDate", "firstAirDate", "release_date", "first_air_date"))
	runes := []rune(date)
	if !ok || len(runes) < 4 {
		return "", false
	}
	return string(runes[:4]), true
}

// TypeLabel is "movie" for movies and "tv series" for anything else.
func TypeLabel(item overseerr.Item) string {
	if MediaType(item) == overseerr.MediaTypeMovie {
		return "movie"
	}
	return "tv series"
}

// MediaID returns the integral catalog id.
func MediaID(item overseerr.Item) (int, bool) {
	v, ok := item["id"]
	if !ok || v == nil {
		return 0, false
	}
	return asID(v)
}

// PosterPath returns the relative poster path, if any.
func PosterPath(item overseerr.Item) string {
	s, _ := asString(first(item, "posterPath", "poster_path"))
	return s
}

// IsAvailable derives library presence from mediaInfo.status. A string
// status must read AVAILABLE; an integer status counts from 4 (partially
// available) upwards. Anything else is not available.
func IsAvailable(item overseerr.Item) bool {
	info := asMap(item["mediaInfo"])
	if info == nil {
		return false
	}
	switch status := info["status"].(type) {
	case string:
		return strings.EqualFold(status, "AVAILABLE")
	case nil, bool:
		return false
	default:
		n, ok := asInt(status)
		return ok && n >= 4
	}
}

// WithMediaType returns a copy of item tagged with mediaType. Recommendation
// payloads omit the type, so they inherit the originating one.
func WithMediaType(item overseerr.Item, mediaType overseerr.MediaType) overseerr.Item {
	out := make(overseerr.Item, len(item)+1)
	for k, v := range item {
		out[k] = v
	}
	out["mediaType"] = string(mediaType)
	return out
}
