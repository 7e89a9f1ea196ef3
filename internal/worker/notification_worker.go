package worker

import (
	"github.com/spec-kit/feedback-service/internal/service"
)

// StartNotificationWorker registers notification handlers on the feedback event dispatcher.
func StartNotificationWorker(notificationService *service.NotificationService) {
	if notificationService == nil {
		return
	}
	notificationService.RegisterHandlers()
}
