package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/feedback-service/internal/config"
	"github.com/spec-kit/feedback-service/internal/events"
)

// NotificationService handles emitting notifications for feedback events.
type NotificationService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
	cfg        config.NotificationConfig
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, logger *zap.Logger, cfg config.NotificationConfig) *NotificationService {
	return &NotificationService{
		dispatcher: dispatcher,
		logger:     logger,
		cfg:        cfg,
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventFeedbackCreated, n.handleFeedbackCreated)
	n.dispatcher.Subscribe(events.EventFeedbackUpdated, n.handleFeedbackUpdated)
	n.dispatcher.Subscribe(events.EventFeedbackStatusChanged, n.handleFeedbackStatusChanged)
	n.dispatcher.Subscribe(events.EventFeedbackDeleted, n.handleFeedbackDeleted)
}

func (n *NotificationService) handleFeedbackCreated(ctx context.Context, event events.Event) error {
	n.logger.Info("FeedbackCreated", zap.String("feedback_id", event.FeedbackID), zap.Any("payload", event.Payload))
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handleFeedbackUpdated(ctx context.Context, event events.Event) error {
	n.logger.Info("FeedbackUpdated", zap.String("feedback_id", event.FeedbackID), zap.Any("payload", event.Payload))
	return nil
}

func (n *NotificationService) handleFeedbackStatusChanged(ctx context.Context, event events.Event) error {
	n.logger.Info("FeedbackStatusChanged", zap.String("feedback_id", event.FeedbackID), zap.Any("payload", event.Payload))
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handleFeedbackDeleted(ctx context.Context, event events.Event) error {
	n.logger.Info("FeedbackDeleted", zap.String("feedback_id", event.FeedbackID))
	return nil
}

func (n *NotificationService) sendWebhookNotificationStub(_ context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.WebhookURL) == "" {
		return
	}
	n.logger.Debug("sendWebhookNotificationStub",
		zap.String("url", n.cfg.WebhookURL),
		zap.String("feedback_id", event.FeedbackID),
		zap.String("event_type", string(event.Type)))
}
