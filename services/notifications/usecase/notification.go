package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/piresc/smartlocker/internal/pkg/apperror"
	"github.com/piresc/smartlocker/internal/pkg/constants"
	"github.com/piresc/smartlocker/internal/pkg/logger"
	"github.com/piresc/smartlocker/internal/pkg/models"
	"github.com/piresc/smartlocker/services/notifications"
)

// NotificationUC implements notifications.NotificationUC
type NotificationUC struct {
	repo         notifications.NotificationRepo
	pusher       notifications.Pusher
	defaultTitle string
	now          func() time.Time
}

// NewNotificationUC creates a new notification use case
func NewNotificationUC(cfg models.NotificationsConfig, repo notifications.NotificationRepo, pusher notifications.Pusher) *NotificationUC {
	title := strings.TrimSpace(cfg.DefaultTitle)
	if title == "" {
		title = "SmartLocker Update"
	}
	return &NotificationUC{
		repo:         repo,
		pusher:       pusher,
		defaultTitle: title,
		now:          time.Now,
	}
}

// Deliver stores one row per distinct recipient. Row ids derive from the command id,
// so a redelivered command neither duplicates rows nor pushes twice.
func (uc *NotificationUC) Deliver(ctx context.Context, cmd models.NotificationCommand) error {
	recipients := cmd.Recipients()
	if len(recipients) == 0 {
		logger.WarnCtx(ctx, "Notification command without recipients dropped",
			logger.String("command_id", cmd.ID.String()))
		return nil
	}

	title := strings.TrimSpace(cmd.Title)
	if title == "" {
		title = uc.defaultTitle
	}
	createdAt := cmd.CreatedAt
	if createdAt.IsZero() {
		createdAt = uc.now()
	}
	commandID := cmd.ID
	if commandID == uuid.Nil {
		commandID = uuid.New()
	}

	rows := make([]*models.Notification, 0, len(recipients))
	for _, userID := range recipients {
		rows = append(rows, &models.Notification{
			ID:        uuid.NewSHA1(commandID, userID[:]),
			UserID:    userID,
			Title:     title,
			Body:      cmd.Body,
			CreatedAt: createdAt,
		})
	}

	written, err := uc.repo.InsertNotifications(ctx, rows)
	if err != nil {
		return err
	}

	for _, n := range written {
		delivered := uc.pusher.NotifyUser(n.UserID.String(), constants.EventNotification, n)
		logger.DebugCtx(ctx, "Notification pushed",
			logger.String("user_id", n.UserID.String()),
			logger.Int("sockets", delivered))
	}
	logger.InfoCtx(ctx, "Notification delivered",
		logger.String("command_id", commandID.String()),
		logger.Int("recipients", len(recipients)),
		logger.Int("written", len(written)))
	return nil
}

// ListNotifications returns the caller's own notifications
func (uc *NotificationUC) ListNotifications(ctx context.Context, actor models.Actor, limit, offset int) ([]*models.Notification, error) {
	if actor.UserID == uuid.Nil {
		return nil, apperror.Authorization("missing caller identity")
	}
	return uc.repo.ListNotifications(ctx, actor.UserID, limit, offset)
}
