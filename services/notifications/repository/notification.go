package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/piresc/smartlocker/internal/pkg/models"
)

const (
	defaultListLimit = 50
	maxListLimit     = 100
)

// NotificationRepo implements notifications.NotificationRepo on PostgreSQL
type NotificationRepo struct {
	db *sqlx.DB
}

// NewNotificationRepository creates a new notification repository
func NewNotificationRepository(db *sqlx.DB) *NotificationRepo {
	return &NotificationRepo{db: db}
}

// InsertNotifications writes rows in one transaction. Redelivered rows hit the primary key and are skipped.
func (r *NotificationRepo) InsertNotifications(ctx context.Context, rows []*models.Notification) ([]*models.Notification, error) {
	if len(rows) == 0 {
		return nil, nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO notifications (id, user_id, title, body, created_at)
		VALUES (:id, :user_id, :title, :body, :created_at)
		ON CONFLICT (id) DO NOTHING
	`
	written := make([]*models.Notification, 0, len(rows))
	for _, row := range rows {
		res, err := tx.NamedExecContext(ctx, query, row)
		if err != nil {
			return nil, fmt.Errorf("failed to insert notification: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return nil, fmt.Errorf("failed to get rows affected: %w", err)
		}
		if n > 0 {
			written = append(written, row)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return written, nil
}

// ListNotifications returns the user's notifications, newest first
func (r *NotificationRepo) ListNotifications(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*models.Notification, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	if offset < 0 {
		offset = 0
	}

	query := `
		SELECT id, user_id, title, body, created_at
		FROM notifications
		WHERE user_id = $1
		ORDER BY created_at DESC, id
		LIMIT $2 OFFSET $3
	`
	var out []*models.Notification
	if err := r.db.SelectContext(ctx, &out, query, userID, limit, offset); err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	return out, nil
}
