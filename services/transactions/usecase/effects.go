package usecase

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/piresc/smartlocker/internal/pkg/logger"
	"github.com/piresc/smartlocker/internal/pkg/models"
)

// effects are the notifications and events emitted once a transition commits
type effects struct {
	events        []models.TransactionEvent
	notifications []models.NotificationCommand
	resetOTP      *uuid.UUID
	staleProof    string
}

// transition moves txn to status and records the event for publishing after commit
func (uc *TransactionUC) transition(fx *effects, txn *models.Transaction, to models.TransactionStatus, actorID string) {
	from := txn.Status
	txn.Status = to
	txn.UpdatedAt = uc.now()
	fx.events = append(fx.events, models.TransactionEvent{
		EventID:       uuid.New(),
		TransactionID: txn.ID,
		FromStatus:    from,
		ToStatus:      to,
		ActorID:       actorID,
		OccurredAt:    txn.UpdatedAt,
	})
}

func (uc *TransactionUC) notify(fx *effects, txn *models.Transaction, title, body string, recipients ...uuid.UUID) {
	fx.notifications = append(fx.notifications, models.NotificationCommand{
		ID:           uuid.New(),
		RecipientIDs: recipients,
		Title:        title,
		Body:         body,
		Metadata: map[string]string{
			"transaction_id": txn.ID.String(),
			"status":         string(txn.Status),
		},
		CreatedAt: uc.now(),
	})
}

// flush runs the post-commit side effects. Failures are logged and never undo the transition.
func (uc *TransactionUC) flush(ctx context.Context, fx *effects) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), effectTimeout)
	defer cancel()

	if fx.resetOTP != nil && uc.cache != nil {
		if err := uc.cache.ResetOTPFailures(ctx, *fx.resetOTP); err != nil {
			logger.WarnCtx(ctx, "Failed to reset OTP attempts",
				logger.String("transaction_id", fx.resetOTP.String()),
				logger.Err(err))
		}
	}

	if fx.staleProof != "" && uc.proofs != nil {
		if err := uc.proofs.Delete(ctx, fx.staleProof); err != nil {
			logger.WarnCtx(ctx, "Failed to delete replaced payment proof",
				logger.String("ref", fx.staleProof),
				logger.Err(err))
		}
	}

	for _, cmd := range fx.notifications {
		if uc.notifier == nil {
			break
		}
		if err := uc.notifier.Notify(ctx, cmd); err != nil {
			logger.WarnCtx(ctx, "Failed to enqueue notification",
				logger.String("notification_id", cmd.ID.String()),
				logger.String("transaction_id", cmd.Metadata["transaction_id"]),
				logger.Err(err))
		}
	}

	for _, ev := range fx.events {
		if uc.events == nil {
			break
		}
		if err := uc.events.PublishTransactionEvent(ctx, ev); err != nil {
			logger.WarnCtx(ctx, "Failed to publish transaction event",
				logger.String("transaction_id", ev.TransactionID.String()),
				logger.String("to_status", string(ev.ToStatus)),
				logger.Err(err))
		}
	}
}

func actorID(actor models.Actor) string {
	return actor.UserID.String()
}

func formatPrice(txn *models.Transaction) string {
	return fmt.Sprintf("Rp %s", txn.TotalPrice.StringFixed(2))
}
