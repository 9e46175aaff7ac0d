package events

import (
	"strconv"
	"time"

	"github.com/google/uuid"
)

// Request lifecycle event types.
const (
	RequestCreated       = "request.created"
	RequestApproved      = "request.approved"
	RequestApproveFailed = "request.approve_failed"
	RequestFailed        = "request.failed"
)

// RequestEvent records one step of the create → approve workflow.
type RequestEvent struct {
	ID        string `json:"id"`
	Type      string `json:"type"`
	Time      int64  `json:"timestamp"`
	MediaID   int    `json:"media_id"`
	MediaType string `json:"media_type"`
	RequestID int    `json:"request_id,omitempty"`
	Is4K      bool   `json:"is_4k"`
	UserID    int64  `json:"user_id,omitempty"`
	Error     string `json:"error,omitempty"`
}

// NewRequestEvent creates a new event stamped with a fresh id and time.
func NewRequestEvent(eventType, mediaType string, mediaID int) *RequestEvent {
	return &RequestEvent{
		ID:        uuid.NewString(),
		Type:      eventType,
		Time:      time.Now().UnixNano(),
		MediaID:   mediaID,
		MediaType: mediaType,
	}
}

// EventID returns the unique id of the event
func (e *RequestEvent) EventID() string {
	return e.ID
}

// EventType returns the type of the event
func (e *RequestEvent) EventType() string {
	return e.Type
}

// Timestamp returns when the event occurred
func (e *RequestEvent) Timestamp() int64 {
	return e.Time
}

// AggregateID returns "<mediaType>/<mediaId>"
func (e *RequestEvent) AggregateID() string {
	return e.MediaType + "/" + strconv.Itoa(e.MediaID)
}
