package events

import (
	"time"

	"github.com/spec-kit/feedback-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventFeedbackCreated       EventType = "feedback_created"
	EventFeedbackUpdated       EventType = "feedback_updated"
	EventFeedbackStatusChanged EventType = "feedback_status_changed"
	EventFeedbackDeleted       EventType = "feedback_deleted"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID         string      `json:"id"`
	Type       EventType   `json:"type"`
	FeedbackID string      `json:"feedback_id"`
	Timestamp  time.Time   `json:"timestamp"`
	Payload    interface{} `json:"payload"`
}

// FeedbackCreatedPayload payload.
type FeedbackCreatedPayload struct {
	Title    string                  `json:"title"`
	Category string                  `json:"category"`
	Priority domain.FeedbackPriority `json:"priority"`
}

// FeedbackUpdatedPayload payload.
type FeedbackUpdatedPayload struct {
	OldPriority domain.FeedbackPriority `json:"old_priority"`
	NewPriority domain.FeedbackPriority `json:"new_priority"`
	Category    string                  `json:"category"`
}

// FeedbackStatusChangedPayload payload.
type FeedbackStatusChangedPayload struct {
	OldStatus domain.FeedbackStatus `json:"old_status"`
	NewStatus domain.FeedbackStatus `json:"new_status"`
}
