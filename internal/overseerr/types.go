package overseerr

// MediaType selects the endpoint family.
type MediaType string

const (
	MediaTypeMovie MediaType = "movie"
	MediaTypeTV    MediaType = "tv"
)

// IsKnown reports whether t is movie or tv.
func (t MediaType) IsKnown() bool {
	return t == MediaTypeMovie || t == MediaTypeTV
}

// Item is one search or recommendation result. It is kept as decoded JSON
// (numbers as json.Number) because the service has shipped both camelCase
// and snake_case shapes; internal/presenter reads it.
type Item map[string]any

// Details is the /movie/{id} or /tv/{id} payload.
type Details map[string]any

// Ratings is the /{movie|tv}/{id}/ratings payload.
type Ratings map[string]any

// RequestRecord is the payload returned by create and approve.
type RequestRecord map[string]any

// SearchResult is the paged list returned by search and recommendations.
type SearchResult struct {
	Page         int    `json:"page"`
	TotalPages   int    `json:"totalPages"`
	TotalResults int    `json:"totalResults"`
	Results      []Item `json:"results"`
}

// CreateRequest is the body of POST /request.
type CreateRequest struct {
	MediaID   int       `json:"mediaId"`
	MediaType MediaType `json:"mediaType"`
	Seasons   []int     `json:"seasons,omitempty"`
	Is4K      bool      `json:"is4k,omitempty"`
}

type approveBody struct {
	Is4K bool `json:"is4k"`
}
