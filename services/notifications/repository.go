package notifications

import (
	"context"

	"github.com/google/uuid"
	"github.com/piresc/smartlocker/internal/pkg/models"
)

// NotificationRepo defines persistence for delivered notifications
// go:generate mockgen -destination=mocks/mock_repository.go -package=mocks github.com/piresc/smartlocker/services/notifications NotificationRepo
type NotificationRepo interface {
	// InsertNotifications appends rows, skipping ids already stored, and returns the rows written
	InsertNotifications(ctx context.Context, rows []*models.Notification) ([]*models.Notification, error)
	ListNotifications(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*models.Notification, error)
}
