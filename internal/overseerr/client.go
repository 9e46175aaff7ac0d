package overseerr

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	apperrors "github.com/narwhalmedia/requestbot/pkg/errors"
)

const defaultTimeout = 15 * time.Second

// Client is an Overseerr/Jellyseerr API client. It is safe for concurrent use.
type Client struct {
	baseURL string
	apiKey  string
	timeout time.Duration

	mu         sync.Mutex
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout bounds every upstream call.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// NewClient creates a new client. No connection is opened until first use.
func NewClient(baseURL, apiKey string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		timeout: defaultTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// session returns the shared http.Client, creating it on first use or
// after Close.
func (c *Client) session() *http.Client {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.httpClient == nil {
		c.httpClient = &http.Client{Transport: http.DefaultTransport.(*http.Transport).Clone()}
	}
	return c.httpClient
}

// Close releases the pooled connections. The client stays usable.
func (c *Client) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.httpClient != nil {
		c.httpClient.CloseIdleConnections()
		c.httpClient = nil
	}
}

// Search runs a catalog search.
func (c *Client) Search(ctx context.Context, query string) (*SearchResult, error) {
	var out SearchResult
	rawQuery := "query=" + escapeQuery(strings.TrimSpace(query))
	if _, err := c.do(ctx, "search", http.MethodGet, "/api/v1/search", rawQuery, nil, &out, false); err != nil {
		return nil, err
	}
	return &out, nil
}

// Details fetches the movie or tv details. A 404 or an unknown media type
// yields empty details.
func (c *Client) Details(ctx context.Context, mediaType MediaType, id int) (Details, error) {
	if !mediaType.IsKnown() {
		return Details{}, nil
	}
	out := Details{}
	path := fmt.Sprintf("/api/v1/%s/%d", mediaType, id)
	found, err := c.do(ctx, "details", http.MethodGet, path, "", nil, &out, true)
	if err != nil {
		return nil, err
	}
	if !found {
		return Details{}, nil
	}
	return out, nil
}

// Ratings fetches the dedicated ratings payload. A 404 yields empty ratings.
func (c *Client) Ratings(ctx context.Context, mediaType MediaType, id int) (Ratings, error) {
	out := Ratings{}
	path := fmt.Sprintf("/api/v1/%s/%d/ratings", endpointFamily(mediaType, MediaTypeTV), id)
	found, err := c.do(ctx, "ratings", http.MethodGet, path, "", nil, &out, true)
	if err != nil {
		return nil, err
	}
	if !found {
		return Ratings{}, nil
	}
	return out, nil
}

// Recommendations lists titles related to id. A 404 yields an empty list.
func (c *Client) Recommendations(ctx context.Context, mediaType MediaType, id, page int) (*SearchResult, error) {
	if page < 1 {
		page = 1
	}
	var out SearchResult
	path := fmt.Sprintf("/api/v1/%s/%d/recommendations", endpointFamily(mediaType, MediaTypeMovie), id)
	found, err := c.do(ctx, "recommendations", http.MethodGet, path, "page="+strconv.Itoa(page), nil, &out, true)
	if err != nil {
		return nil, err
	}
	if !found || out.Results == nil {
		out.Results = []Item{}
	}
	return &out, nil
}

// CreateRequest files a new media request.
func (c *Client) CreateRequest(ctx context.Context, req CreateRequest) (RequestRecord, error) {
	out := RequestRecord{}
	if _, err := c.do(ctx, "create request", http.MethodPost, "/api/v1/request", "", req, &out, false); err != nil {
		return nil, err
	}
	return out, nil
}

// ApproveRequest approves a pending request.
func (c *Client) ApproveRequest(ctx context.Context, requestID int, is4k bool) (RequestRecord, error) {
	out := RequestRecord{}
	path := fmt.Sprintf("/api/v1/request/%d/approve", requestID)
	if _, err := c.do(ctx, "approve request", http.MethodPost, path, "", approveBody{Is4K: is4k}, &out, false); err != nil {
		return nil, err
	}
	return out, nil
}

// do performs one call. found is false only for a tolerated 404.
func (c *Client) do(ctx context.Context, op, method, path, rawQuery string, body, out any, allowNotFound bool) (found bool, err error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	endpoint := c.baseURL + path
	if rawQuery != "" {
		endpoint += "?" + rawQuery
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return false, apperrors.Wrap(apperrors.ErrorTypeInternal, op, fmt.Errorf("encoding body: %w", err))
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return false, apperrors.Wrap(apperrors.ErrorTypeInternal, op, fmt.Errorf("creating request: %w", err))
	}
	req.Header.Set("X-Api-Key", c.apiKey)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.session().Do(req)
	if err != nil {
		return false, apperrors.Upstream(op, fmt.Errorf("executing request: %w", unwrapURLError(err)))
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound && allowNotFound {
		_, _ = io.Copy(io.Discard, resp.Body)
		return false, nil
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		// The cut can split a multi-byte character.
		body := strings.ToValidUTF8(string(raw), "")
		return false, apperrors.Upstream(op, &UpstreamError{Op: op, StatusCode: resp.StatusCode, Body: body})
	}

	dec := json.NewDecoder(resp.Body)
	dec.UseNumber()
	if err := dec.Decode(out); err != nil && !errors.Is(err, io.EOF) {
		return false, apperrors.Upstream(op, fmt.Errorf("decoding response: %w", err))
	}
	return true, nil
}

// escapeQuery percent-encodes every byte outside the unreserved set; a
// space becomes %20, never '+'.
func escapeQuery(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

// endpointFamily maps an unknown media type onto fallback.
func endpointFamily(t, fallback MediaType) MediaType {
	if t.IsKnown() {
		return t
	}
	return fallback
}

// unwrapURLError drops the "Get \"http://...\":" prefix net/http adds, which
// would otherwise leak the API host into chat replies.
func unwrapURLError(err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return urlErr.Err
	}
	return err
}
