package presenter

import "github.com/narwhalmedia/requestbot/internal/overseerr"

const youtubeShortURL = "https://youtu.be/"

var trailerPreference = []string{"Trailer", "Teaser"}

// TrailerURL picks a YouTube trailer: relatedVideos first, then the TMDb
// videos.results shape. Trailers beat teasers, which beat any other video.
func TrailerURL(details overseerr.Details) (string, bool) {
	related := videos(asList(details["relatedVideos"]), func(v map[string]any) (string, bool) {
		return asString(v["url"])
	})
	if u, ok := pickVideo(related); ok {
		return u, true
	}

	results := videos(asList(asMap(details["videos"])["results"]), func(v map[string]any) (string, bool) {
		key := scalar(v["key"])
		if key == "" {
			return "", false
		}
		return youtubeShortURL + key, true
	})
	return pickVideo(results)
}

type video struct {
	kind string
	url  string
}

// videos keeps the YouTube entries for which link yields a URL.
func videos(list []any, link func(map[string]any) (string, bool)) []video {
	var out []video
	for _, raw := range list {
		v := asMap(raw)
		if v == nil {
			continue
		}
		if site, _ := asString(v["site"]); site != "YouTube" {
			continue
		}
		u, ok := link(v)
		if !ok {
			continue
		}
		kind, _ := asString(v["type"])
		out = append(out, video{kind: kind, url: u})
	}
	return out
}

func pickVideo(list []video) (string, bool) {
	for _, kind := range trailerPreference {
		for _, v := range list {
			if v.kind == kind {
				return v.url, true
			}
		}
	}
	if len(list) > 0 {
		return list[0].url, true
	}
	return "", false
}
