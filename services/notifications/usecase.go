package notifications

import (
	"context"

	"github.com/piresc/smartlocker/internal/pkg/models"
)

// NotificationUC defines the notification delivery operations
// go:generate mockgen -destination=mocks/mock_usecase.go -package=mocks github.com/piresc/smartlocker/services/notifications NotificationUC
type NotificationUC interface {
	// Deliver stores one row per distinct recipient and pushes it to connected sockets
	Deliver(ctx context.Context, cmd models.NotificationCommand) error
	ListNotifications(ctx context.Context, actor models.Actor, limit, offset int) ([]*models.Notification, error)
}
