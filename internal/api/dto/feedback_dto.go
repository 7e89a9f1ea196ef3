package dto

import (
	"github.com/spec-kit/feedback-service/internal/domain"
)

// FeedbackRequest payload for create and update.
type FeedbackRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Priority    string `json:"priority"`
}

// StatusRequest payload for status changes.
type StatusRequest struct {
	Status string `json:"status"`
}

// FeedbackResponse is the wire shape of a feedback item.
type FeedbackResponse struct {
	ID          string                  `json:"id"`
	Title       string                  `json:"title"`
	Description string                  `json:"description"`
	Category    string                  `json:"category"`
	Status      domain.FeedbackStatus   `json:"status"`
	Priority    domain.FeedbackPriority `json:"priority"`
	CreatedAt   int64                   `json:"createdAt"`
}

// Fields converts the request into domain input.
func (r FeedbackRequest) Fields() domain.FeedbackFields {
	return domain.FeedbackFields{
		Title:       r.Title,
		Description: r.Description,
		Category:    r.Category,
		Priority:    domain.FeedbackPriority(r.Priority),
	}
}

// NewFeedbackResponse maps a domain item to its response.
func NewFeedbackResponse(fb *domain.Feedback) FeedbackResponse {
	return FeedbackResponse{
		ID:          fb.ID,
		Title:       fb.Title,
		Description: fb.Description,
		Category:    fb.Category,
		Status:      fb.Status,
		Priority:    fb.Priority,
		CreatedAt:   fb.CreatedAt,
	}
}
