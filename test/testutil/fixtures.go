package testutil

import (
	"encoding/json"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/narwhalmedia/requestbot/internal/overseerr"
)

// CreateTestMovie creates a search result for a movie that is not in the
// library.
func CreateTestMovie(id int, title string) overseerr.Item {
	return overseerr.Item{
		"id":          json.Number(strconv.Itoa(id)),
		"mediaType":   "movie",
		"title":       title,
		"releaseDate": "2021-09-15",
		"posterPath":  "/" + slug(title) + ".jpg",
	}
}

// CreateTestSeries creates a search result for a series that is not in
// the library.
func CreateTestSeries(id int, name string) overseerr.Item {
	return overseerr.Item{
		"id":           json.Number(strconv.Itoa(id)),
		"mediaType":    "tv",
		"name":         name,
		"firstAirDate": "2017-12-01",
	}
}

// CreateTestPerson creates a person search result.
func CreateTestPerson(id int, name string) overseerr.Item {
	return overseerr.Item{
		"id":        json.Number(strconv.Itoa(id)),
		"mediaType": "person",
		"name":      name,
	}
}

// WithStatus returns item with mediaInfo.status set.
func WithStatus(item overseerr.Item, status any) overseerr.Item {
	item["mediaInfo"] = map[string]any{"status": status}
	return item
}

// CreateTestDetails creates a details payload with an IMDb id and rating.
func CreateTestDetails(imdbID string, rating float64) overseerr.Details {
	return overseerr.Details{
		"externalIds": map[string]any{"imdbId": imdbID},
		"ratings": map[string]any{
			"imdb": map[string]any{"value": json.Number(strconv.FormatFloat(rating, 'f', -1, 64))},
		},
	}
}

// CreateTestRTRatings creates a /ratings payload.
func CreateTestRTRatings(critics, audience int) overseerr.Ratings {
	return overseerr.Ratings{
		"criticsScore":  json.Number(strconv.Itoa(critics)),
		"audienceScore": json.Number(strconv.Itoa(audience)),
		"url":           "https://www.rottentomatoes.com/m/test",
	}
}

// DecodeJSON decodes raw the way the client does, numbers kept as
// json.Number.
func DecodeJSON(t testing.TB, raw string) map[string]any {
	t.Helper()
	dec := json.NewDecoder(strings.NewReader(raw))
	dec.UseNumber()
	var out map[string]any
	require.NoError(t, dec.Decode(&out))
	return out
}

func slug(s string) string {
	return strings.ReplaceAll(strings.ToLower(s), " ", "-")
}
