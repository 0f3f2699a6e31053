package worker

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/medikita/platform/internal/service"
)

// reconcileBatchSize caps how many pending orders one sweep pulls.
const reconcileBatchSize = 50

// StartNotificationWorker registers notification handlers.
func StartNotificationWorker(notificationService *service.NotificationService) {
	if notificationService == nil {
		return
	}
	notificationService.RegisterHandlers()
}

// StartInvoiceReconciler periodically syncs AWAITING_PAYMENT orders with
// the payment provider. The provider pushes nothing to us, so a paid or
// expired invoice is only noticed by polling. Stops when ctx is cancelled.
func StartInvoiceReconciler(ctx context.Context, orders *service.OrderService, interval time.Duration, logger *zap.Logger) {
	if orders == nil || interval <= 0 {
		return
	}

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := orders.ReconcilePending(ctx, reconcileBatchSize); err != nil {
					logger.Warn("invoice reconcile sweep failed", zap.Error(err))
				}
			}
		}
	}()
}
