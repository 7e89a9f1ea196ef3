package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/feedback-service/internal/domain"
	"github.com/spec-kit/feedback-service/internal/events"
	"github.com/spec-kit/feedback-service/internal/repository"
	apperrors "github.com/spec-kit/feedback-service/pkg/util/errorutil"
)

// FeedbackService coordinates feedback workflows.
type FeedbackService struct {
	feedback   repository.FeedbackRepository
	dispatcher events.Dispatcher
	clock      *Clock
	logger     *zap.Logger
}

// FeedbackDependencies bundles collaborators for the feedback service.
type FeedbackDependencies struct {
	FeedbackRepo repository.FeedbackRepository
	Dispatcher   events.Dispatcher
	Clock        *Clock
	Logger       *zap.Logger
}

// NewFeedbackService constructs the service.
func NewFeedbackService(deps FeedbackDependencies) *FeedbackService {
	clock := deps.Clock
	if clock == nil {
		clock = NewClock(nil)
	}
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FeedbackService{
		feedback:   deps.FeedbackRepo,
		dispatcher: deps.Dispatcher,
		clock:      clock,
		logger:     logger,
	}
}

// List returns every feedback item, newest first.
func (s *FeedbackService) List(ctx context.Context) ([]domain.Feedback, error) {
	items, err := s.feedback.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list feedback: %w", err)
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].CreatedAt > items[j].CreatedAt
	})
	return items, nil
}

// Create validates fields and stores a new OPEN item.
func (s *FeedbackService) Create(ctx context.Context, fields domain.FeedbackFields) (*domain.Feedback, error) {
	fb, err := domain.NewFeedback(fields, s.clock.NowMillis())
	if err != nil {
		return nil, err
	}
	saved, err := s.feedback.Save(ctx, fb)
	if err != nil {
		return nil, fmt.Errorf("create feedback: %w", err)
	}
	s.publishEvent(ctx, events.Event{
		Type:       events.EventFeedbackCreated,
		FeedbackID: saved.ID,
		Payload: events.FeedbackCreatedPayload{
			Title:    saved.Title,
			Category: saved.Category,
			Priority: saved.Priority,
		},
	})
	return saved, nil
}

// Update overwrites title, description, category and priority of an existing item.
func (s *FeedbackService) Update(ctx context.Context, id string, fields domain.FeedbackFields) (*domain.Feedback, error) {
	existing, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	oldPriority := existing.Priority
	if err := existing.ApplyUpdate(fields); err != nil {
		return nil, err
	}
	saved, err := s.feedback.Save(ctx, existing)
	if err != nil {
		return nil, fmt.Errorf("update feedback %s: %w", id, err)
	}
	s.publishEvent(ctx, events.Event{
		Type:       events.EventFeedbackUpdated,
		FeedbackID: saved.ID,
		Payload: events.FeedbackUpdatedPayload{
			OldPriority: oldPriority,
			NewPriority: saved.Priority,
			Category:    saved.Category,
		},
	})
	return saved, nil
}

// UpdateStatus changes only the status of an existing item.
func (s *FeedbackService) UpdateStatus(ctx context.Context, id string, rawStatus string) (*domain.Feedback, error) {
	status, err := domain.ParseStatus(rawStatus)
	if err != nil {
		return nil, err
	}
	existing, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	oldStatus := existing.Status
	existing.Status = status
	saved, err := s.feedback.Save(ctx, existing)
	if err != nil {
		return nil, fmt.Errorf("update feedback status %s: %w", id, err)
	}
	s.publishEvent(ctx, events.Event{
		Type:       events.EventFeedbackStatusChanged,
		FeedbackID: saved.ID,
		Payload: events.FeedbackStatusChangedPayload{
			OldStatus: oldStatus,
			NewStatus: saved.Status,
		},
	})
	return saved, nil
}

// Delete removes an item, reporting not found for unknown ids.
func (s *FeedbackService) Delete(ctx context.Context, id string) error {
	exists, err := s.feedback.ExistsByID(ctx, id)
	if err != nil {
		return fmt.Errorf("delete feedback %s: %w", id, err)
	}
	if !exists {
		return notFound(id)
	}
	if err := s.feedback.DeleteByID(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(id)
		}
		return fmt.Errorf("delete feedback %s: %w", id, err)
	}
	s.publishEvent(ctx, events.Event{Type: events.EventFeedbackDeleted, FeedbackID: id})
	return nil
}

func (s *FeedbackService) find(ctx context.Context, id string) (*domain.Feedback, error) {
	fb, err := s.feedback.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, notFound(id)
		}
		return nil, fmt.Errorf("find feedback %s: %w", id, err)
	}
	return fb, nil
}

func (s *FeedbackService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	if err := s.dispatcher.Publish(ctx, event); err != nil {
		s.logger.Warn("feedback event handler failed",
			zap.String("event_type", string(event.Type)),
			zap.String("feedback_id", event.FeedbackID),
			zap.Error(err),
		)
	}
}

func notFound(id string) error {
	return apperrors.NewNotFound("feedback", map[string]any{"id": id})
}

// Clock hands out creation timestamps in epoch milliseconds that never repeat or go backwards.
type Clock struct {
	mu   sync.Mutex
	now  func() time.Time
	last int64
}

// NewClock wraps a time source; nil means time.Now.
func NewClock(now func() time.Time) *Clock {
	if now == nil {
		now = time.Now
	}
	return &Clock{now: now}
}

// NowMillis returns the current time, bumped past the previous value when needed.
func (c *Clock) NowMillis() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	ms := c.now().UnixMilli()
	if ms <= c.last {
		ms = c.last + 1
	}
	c.last = ms
	return ms
}
