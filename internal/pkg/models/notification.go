package models

import (
	"time"

	"github.com/google/uuid"
)

// Notification is one delivered message for one user
type Notification struct {
	ID        uuid.UUID `json:"id" db:"id"`
	UserID    uuid.UUID `json:"user_id" db:"user_id"`
	Title     string    `json:"title" db:"title"`
	Body      string    `json:"body" db:"body"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// NotificationCommand is the queued request to notify a set of users
type NotificationCommand struct {
	ID           uuid.UUID         `json:"id"`
	RecipientIDs []uuid.UUID       `json:"recipient_ids"`
	Title        string            `json:"title"`
	Body         string            `json:"body"`
	Metadata     map[string]string `json:"metadata,omitempty"`
	CreatedAt    time.Time         `json:"created_at"`
}

// Recipients returns the non-nil recipients with duplicates removed, preserving order
func (c *NotificationCommand) Recipients() []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(c.RecipientIDs))
	out := make([]uuid.UUID, 0, len(c.RecipientIDs))
	for _, id := range c.RecipientIDs {
		if id == uuid.Nil {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
