package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/piresc/smartlocker/internal/pkg/logger"
	"github.com/piresc/smartlocker/internal/pkg/models"
	"github.com/piresc/smartlocker/services/transactions"
)

const systemActor = "system"

// ExpirePickups fails AWAITING_PICKUP transactions whose pickup window closed before now.
// Each transaction is expired in its own unit of work; one failure does not stop the batch.
func (uc *TransactionUC) ExpirePickups(ctx context.Context, now time.Time) (int, error) {
	ids, err := uc.repo.ListExpiredPickups(ctx, now, uc.cfg.SweepBatchSize)
	if err != nil {
		return 0, err
	}

	expired := 0
	for _, id := range ids {
		if ctx.Err() != nil {
			return expired, ctx.Err()
		}
		ok, err := uc.expirePickup(ctx, id, now)
		if err != nil {
			logger.ErrorCtx(ctx, "Failed to expire pickup",
				logger.String("transaction_id", id.String()),
				logger.Err(err))
			continue
		}
		if ok {
			expired++
		}
	}
	return expired, nil
}

func (uc *TransactionUC) expirePickup(ctx context.Context, id uuid.UUID, now time.Time) (bool, error) {
	var (
		expired bool
		fx      effects
	)
	err := uc.repo.WithinTx(ctx, func(ctx context.Context, tx transactions.TxRepo) error {
		txn, err := tx.GetTransactionForUpdate(ctx, id)
		if err != nil {
			return err
		}
		// re-checked under the row lock; a pickup may have completed since the listing
		if txn.Status != models.TransactionStatusAwaitingPickup || !txn.PickupExpired(now) {
			return nil
		}

		if txn.LockerID != nil {
			if err := tx.UpdateLockerStatus(ctx, *txn.LockerID, models.LockerStatusAvailable, nil); err != nil {
				return err
			}
		}
		if err := tx.AdjustProductStock(ctx, txn.ProductID, txn.Quantity); err != nil {
			return err
		}
		txn.OTP = nil
		uc.transition(&fx, txn, models.TransactionStatusFailed, systemActor)
		fx.resetOTP = &txn.ID
		if err := tx.UpdateTransaction(ctx, txn); err != nil {
			return err
		}

		uc.notify(&fx, txn, "Pickup expired",
			fmt.Sprintf("The pickup window for %s has expired and the order was cancelled.", txn.ProductName),
			txn.BuyerID, txn.SellerID)
		expired = true
		return nil
	})
	if err != nil {
		return false, err
	}

	uc.flush(ctx, &fx)
	return expired, nil
}
