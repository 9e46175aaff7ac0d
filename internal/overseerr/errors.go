package overseerr

import (
	"fmt"
	"strings"
)

// maxErrorBody bounds how much of a failed response is kept.
const maxErrorBody = 512

// UpstreamError is a non-2xx answer other than a tolerated 404.
type UpstreamError struct {
	Op         string
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	if e == nil {
		return "upstream error"
	}
	// Replies to the chat are single lines.
	body := strings.Join(strings.Fields(strings.ToValidUTF8(e.Body, "")), " ")
	if body == "" {
		return fmt.Sprintf("HTTP %d", e.StatusCode)
	}
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, body)
}
