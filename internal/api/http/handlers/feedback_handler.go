package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/spec-kit/feedback-service/internal/api/dto"
	"github.com/spec-kit/feedback-service/internal/service"
	apperrors "github.com/spec-kit/feedback-service/pkg/util/errorutil"
)

// FeedbackHandler serves the /api/feedback endpoints.
type FeedbackHandler struct {
	service *service.FeedbackService
}

// NewFeedbackHandler constructs handler.
func NewFeedbackHandler(feedbackService *service.FeedbackService) *FeedbackHandler {
	return &FeedbackHandler{service: feedbackService}
}

// ListFeedback GET /api/feedback.
func (h *FeedbackHandler) ListFeedback(c *fiber.Ctx) error {
	items, err := h.service.List(c.UserContext())
	if err != nil {
		return err
	}
	resp := make([]dto.FeedbackResponse, 0, len(items))
	for i := range items {
		resp = append(resp, dto.NewFeedbackResponse(&items[i]))
	}
	return c.JSON(resp)
}

// CreateFeedback POST /api/feedback.
func (h *FeedbackHandler) CreateFeedback(c *fiber.Ctx) error {
	var req dto.FeedbackRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	fb, err := h.service.Create(c.UserContext(), req.Fields())
	if err != nil {
		return err
	}
	return c.JSON(dto.NewFeedbackResponse(fb))
}

// UpdateFeedback PUT /api/feedback/:id.
func (h *FeedbackHandler) UpdateFeedback(c *fiber.Ctx) error {
	id, err := feedbackID(c)
	if err != nil {
		return err
	}
	var req dto.FeedbackRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	fb, err := h.service.Update(c.UserContext(), id, req.Fields())
	if err != nil {
		return err
	}
	return c.JSON(dto.NewFeedbackResponse(fb))
}

// UpdateFeedbackStatus PATCH /api/feedback/:id/status.
func (h *FeedbackHandler) UpdateFeedbackStatus(c *fiber.Ctx) error {
	id, err := feedbackID(c)
	if err != nil {
		return err
	}
	var req dto.StatusRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	fb, err := h.service.UpdateStatus(c.UserContext(), id, req.Status)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewFeedbackResponse(fb))
}

// DeleteFeedback DELETE /api/feedback/:id.
func (h *FeedbackHandler) DeleteFeedback(c *fiber.Ctx) error {
	id, err := feedbackID(c)
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.UserContext(), id); err != nil {
		return err
	}
	return c.Status(http.StatusNoContent).Send(nil)
}

// feedbackID returns the canonical form of the :id path parameter.
func feedbackID(c *fiber.Ctx) (string, error) {
	raw := c.Params("id")
	id, err := uuid.Parse(raw)
	if err != nil {
		return "", apperrors.NewValidationError("invalid feedback id", map[string]any{"id": raw})
	}
	return id.String(), nil
}
