package worker

import (
	"github.com/spec-kit/tutor-marketplace/internal/events"
	"github.com/spec-kit/tutor-marketplace/internal/service"
)

// StartEventWorkers subscribes the advisory event consumers: outbound
// notifications and ads cache invalidation.
func StartEventWorkers(notifications *service.NotificationService, ads *service.AdsService, dispatcher events.Dispatcher) {
	if notifications != nil {
		notifications.RegisterHandlers()
	}
	if ads != nil {
		ads.RegisterInvalidation(dispatcher)
	}
}
