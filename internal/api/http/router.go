package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/feedback-service/internal/api/http/handlers"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health   *handlers.HealthHandler
	Feedback *handlers.FeedbackHandler
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	app.Get("/metrics", cfg.Health.Metrics)

	feedback := app.Group("/api/feedback")
	feedback.Get("", cfg.Feedback.ListFeedback)
	feedback.Post("", cfg.Feedback.CreateFeedback)
	feedback.Put("/:id", cfg.Feedback.UpdateFeedback)
	feedback.Patch("/:id/status", cfg.Feedback.UpdateFeedbackStatus)
	feedback.Delete("/:id", cfg.Feedback.DeleteFeedback)
}
