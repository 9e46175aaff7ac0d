package presenter

import (
	"strings"

	"github.com/narwhalmedia/requestbot/internal/overseerr"
)

const imdbTitleURL = "https://www.imdb.com/title/"

// RatingsSummary is the display-ready view of every ratings shape the
// service has produced. Empty fields mean unknown.
type RatingsSummary struct {
	IMDbID     string
	IMDbRating string
	IMDbURL    string
	RTTomato   string
	RTPopcorn  string
	RTURL      string
}

// ExtractRatings reads IMDb and Rotten Tomatoes data from merged details.
// Nested blocks win over the flat /ratings shape; missing or odd shapes
// yield empty fields.
func ExtractRatings(details overseerr.Details) RatingsSummary {
	var s RatingsSummary

	ext := asMap(first(details, "externalIds", "external_ids"))
	if id, ok := asString(first(ext, "imdbId", "imdb_id")); ok {
		s.IMDbID = id
	}

	ratings := asMap(details["ratings"])
	if ratings != nil {
		s.readIMDb(ratings)
		s.readRottenTomatoes(ratings)
		if s.RTTomato == "" && s.RTPopcorn == "" {
			s.readFlatRatings(ratings)
		}
	}

	if s.IMDbID != "" {
		s.IMDbURL = imdbTitleURL + s.IMDbID
	}
	return s
}

func (s *RatingsSummary) readIMDb(ratings map[string]any) {
	block := first(ratings, "imdb", "IMDb", "imdbRating")
	if m := asMap(block); m != nil {
		s.IMDbRating = firstScalar(m, "value", "rating", "score")
		if s.IMDbID == "" {
			if u, ok := asString(m["url"]); ok && strings.HasPrefix(u, "http") {
				s.IMDbID = lastSegment(u)
			}
		}
		return
	}
	s.IMDbRating = scalar(block)
}

func (s *RatingsSummary) readRottenTomatoes(ratings map[string]any) {
	block := asMap(first(ratings, "rottenTomatoes", "rotten_tomatoes", "rotten"))
	if block == nil {
		return
	}
	if critics := asMap(block["critics"]); critics != nil {
		s.RTTomato = firstScalar(critics, "score", "rating", "value")
		s.takeRTURL(critics["url"])
	}
	if audience := asMap(block["audience"]); audience != nil {
		s.RTPopcorn = firstScalar(audience, "score", "rating", "value")
		s.takeRTURL(audience["url"])
	}
	if s.RTTomato == "" {
		s.RTTomato = firstScalar(block, "tomatometer", "tomatoMeter", "criticsScore")
	}
	if s.RTPopcorn == "" {
		s.RTPopcorn = firstScalar(block, "audienceScore", "popcornMeter")
	}
	s.takeRTURL(block["url"])
}

// readFlatRatings handles the /{movie|tv}/{id}/ratings payload, which is a
// bare Rotten Tomatoes object.
func (s *RatingsSummary) readFlatRatings(ratings map[string]any) {
	s.RTTomato = scalar(ratings["criticsScore"])
	s.RTPopcorn = scalar(ratings["audienceScore"])
	s.takeRTURL(ratings["url"])
}

func (s *RatingsSummary) takeRTURL(v any) {
	if s.RTURL != "" {
		return
	}
	if u, ok := asString(v); ok {
		s.RTURL = u
	}
}

func lastSegment(u string) string {
	u = strings.TrimRight(u, "/")
	if i := strings.LastIndex(u, "/"); i >= 0 {
		return u[i+1:]
	}
	return u
}

// MergeRatings folds a /ratings payload into details["ratings"]. Keys from
// ratings override keys of the same name. Neither input is modified.
func MergeRatings(details overseerr.Details, ratings overseerr.Ratings) overseerr.Details {
	out := make(overseerr.Details, len(details)+1)
	for k, v := range details {
		out[k] = v
	}
	if len(ratings) == 0 {
		return out
	}

	merged := make(map[string]any, len(ratings))
	if existing := asMap(details["ratings"]); existing != nil {
		for k, v := range existing {
			merged[k] = v
		}
	}
	for k, v := range ratings {
		merged[k] = v
	}
	out["ratings"] = merged
	return out
}
