package worker

import (
	"go.uber.org/zap"

	"github.com/accumanage/portal/internal/service"
)

// StartNotificationWorker subscribes the audit and webhook handlers to session
// and account events.
func StartNotificationWorker(notificationService *service.NotificationService, logger *zap.Logger) {
	if notificationService == nil {
		return
	}
	notificationService.RegisterHandlers()
	if logger != nil {
		logger.Info("notification handlers registered")
	}
}
