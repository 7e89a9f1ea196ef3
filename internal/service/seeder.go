package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/spec-kit/feedback-service/internal/domain"
	"github.com/spec-kit/feedback-service/internal/repository"
)

// SeedFeedback is inserted, in order, into an empty store on startup.
var SeedFeedback = []domain.FeedbackFields{
	{Title: "Add dark mode", Description: "Support system-wide dark theme.", Category: "UI", Priority: domain.FeedbackPriorityHigh},
	{Title: "Export to CSV", Description: "Allow exporting feedback table.", Category: "Data", Priority: domain.FeedbackPriorityMedium},
	{Title: "Keyboard shortcuts", Description: "Create shortcuts for power users.", Category: "UX", Priority: domain.FeedbackPriorityLow},
}

// Seeder fills an empty store with the starter feedback items.
type Seeder struct {
	feedback repository.FeedbackRepository
	clock    *Clock
	logger   *zap.Logger
}

// NewSeeder constructs a seeder. The clock should be the one shared with FeedbackService.
func NewSeeder(repo repository.FeedbackRepository, clock *Clock, logger *zap.Logger) *Seeder {
	return &Seeder{feedback: repo, clock: clock, logger: logger}
}

// Seed inserts SeedFeedback when the store is empty and returns how many rows it wrote.
func (s *Seeder) Seed(ctx context.Context) (int, error) {
	count, err := s.feedback.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("count feedback: %w", err)
	}
	if count > 0 {
		s.logger.Info("feedback store not empty; skipping seed", zap.Int64("count", count))
		return 0, nil
	}

	inserted := 0
	for _, fields := range SeedFeedback {
		fb, err := domain.NewFeedback(fields, s.clock.NowMillis())
		if err != nil {
			return inserted, err
		}
		if _, err := s.feedback.Save(ctx, fb); err != nil {
			return inserted, fmt.Errorf("seed %q: %w", fields.Title, err)
		}
		inserted++
	}
	s.logger.Info("seeded feedback store", zap.Int("count", inserted))
	return inserted, nil
}
