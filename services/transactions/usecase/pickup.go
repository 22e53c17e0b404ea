package usecase

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/piresc/smartlocker/internal/pkg/apperror"
	"github.com/piresc/smartlocker/internal/pkg/logger"
	"github.com/piresc/smartlocker/internal/pkg/models"
	"github.com/piresc/smartlocker/services/transactions"
)

const deviceActor = "device"

// GenerateOTP issues the pickup code for an escrowed transaction
func (uc *TransactionUC) GenerateOTP(ctx context.Context, actor models.Actor, id uuid.UUID) (*models.GenerateOTPResponse, error) {
	var (
		txn *models.Transaction
		fx  effects
	)
	err := uc.repo.WithinTx(ctx, func(ctx context.Context, tx transactions.TxRepo) error {
		var err error
		txn, err = tx.GetTransactionForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if err := authorize(actor, txn, transactions.CapabilitySeller); err != nil {
			return err
		}
		if txn.Status.Canonical() != models.TransactionStatusEscrow {
			return apperror.StateConflict("transaction is %s, expected %s", txn.Status, models.TransactionStatusEscrow)
		}
		if !txn.HasShippingInfo() {
			return apperror.Validation("buyer name, shipping address and phone number are required")
		}
		if err := uc.issuePickup(&fx, txn, actorID(actor)); err != nil {
			return err
		}
		return tx.UpdateTransaction(ctx, txn)
	})
	if err != nil {
		return nil, err
	}

	uc.flush(ctx, &fx)
	return &models.GenerateOTPResponse{
		TransactionID: txn.ID,
		OTP:           *txn.OTP,
		ExpiresAt:     *txn.PaymentExpiresAt,
	}, nil
}

// issuePickup sets a pickup code, reusing one already issued, and opens the pickup window
func (uc *TransactionUC) issuePickup(fx *effects, txn *models.Transaction, actor string) error {
	if txn.OTP == nil || *txn.OTP == "" {
		code, err := uc.generateOTP()
		if err != nil {
			return err
		}
		txn.OTP = &code
	}
	expires := uc.now().Add(uc.cfg.PickupWindow)
	txn.PaymentExpiresAt = &expires
	uc.transition(fx, txn, models.TransactionStatusAwaitingPickup, actor)

	fx.resetOTP = &txn.ID
	uc.notify(fx, txn, "Item ready for pickup",
		fmt.Sprintf("Your pickup code for %s is %s. It expires at %s.", txn.ProductName, *txn.OTP, expires.Format("2006-01-02 15:04 MST")),
		txn.BuyerID)
	return nil
}

// DepositItem opens a marketplace locker for the seller to drop the item in
func (uc *TransactionUC) DepositItem(ctx context.Context, actor models.Actor, req models.DepositItemRequest) (*models.DepositItemResponse, error) {
	var locker *models.Locker
	err := uc.repo.WithinTx(ctx, func(ctx context.Context, tx transactions.TxRepo) error {
		txn, err := tx.GetTransactionForUpdate(ctx, req.TransactionID)
		if err != nil {
			return err
		}
		if err := authorize(actor, txn, transactions.CapabilitySeller); err != nil {
			return err
		}
		switch {
		case txn.Status.Canonical() == models.TransactionStatusEscrow:
		case txn.Status == models.TransactionStatusAwaitingPickup && txn.LockerID == nil:
		default:
			return apperror.StateConflict("transaction is %s, item cannot be deposited", txn.Status)
		}

		if txn.LockerID != nil {
			locker, err = tx.GetLockerForUpdate(ctx, *txn.LockerID)
		} else {
			locker, err = tx.ClaimAvailableLocker(ctx, models.LockerTypeMarketplace)
			if errors.Is(err, apperror.ErrNotFound) {
				return apperror.Dependency(nil, "no marketplace locker available")
			}
		}
		if err != nil {
			return err
		}

		if err := uc.locker.TriggerOpen(ctx, locker); err != nil {
			return asDependency(err, "locker hardware unavailable")
		}

		if err := tx.UpdateLockerStatus(ctx, locker.ID, models.LockerStatusOccupied, &actor.UserID); err != nil {
			return err
		}
		locker.Status = models.LockerStatusOccupied
		txn.LockerID = &locker.ID
		txn.UpdatedAt = uc.now()
		return tx.UpdateTransaction(ctx, txn)
	})
	if err != nil {
		return nil, err
	}

	logger.InfoCtx(ctx, "Locker opened for deposit",
		logger.String("transaction_id", req.TransactionID.String()),
		logger.String("locker_number", locker.Number))
	return &models.DepositItemResponse{
		TransactionID: req.TransactionID,
		LockerID:      locker.ID,
		LockerNumber:  locker.Number,
	}, nil
}

// ConfirmDeposit is reported by the locker once the seller closed the door on the item
func (uc *TransactionUC) ConfirmDeposit(ctx context.Context, id uuid.UUID) (*models.Transaction, bool, error) {
	var (
		txn     *models.Transaction
		changed bool
		fx      effects
	)
	err := uc.repo.WithinTx(ctx, func(ctx context.Context, tx transactions.TxRepo) error {
		var err error
		txn, err = tx.GetTransactionForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if txn.Status.Canonical() != models.TransactionStatusEscrow {
			return nil
		}
		if txn.LockerID == nil {
			return apperror.StateConflict("no locker is bound to this transaction")
		}
		if err := uc.issuePickup(&fx, txn, deviceActor); err != nil {
			return err
		}
		changed = true
		return tx.UpdateTransaction(ctx, txn)
	})
	if err != nil {
		return nil, false, err
	}

	uc.flush(ctx, &fx)
	return txn, changed, nil
}

// RetrieveItem checks the buyer's pickup code and opens the bound locker
func (uc *TransactionUC) RetrieveItem(ctx context.Context, actor models.Actor, req models.RetrieveItemRequest) (*models.RetrieveItemResponse, error) {
	var locker *models.Locker
	err := uc.repo.WithinTx(ctx, func(ctx context.Context, tx transactions.TxRepo) error {
		txn, err := tx.GetTransactionForUpdate(ctx, req.TransactionID)
		if err != nil {
			return err
		}
		if err := authorize(actor, txn, transactions.CapabilityBuyer); err != nil {
			return err
		}
		if txn.Status != models.TransactionStatusAwaitingPickup {
			return apperror.StateConflict("transaction is %s, expected %s", txn.Status, models.TransactionStatusAwaitingPickup)
		}
		if txn.PickupExpired(uc.now()) {
			return apperror.StateConflict("pickup window has expired")
		}
		if txn.LockerID == nil {
			return apperror.StateConflict("item has not been deposited yet")
		}

		failures, err := uc.cache.GetOTPFailures(ctx, txn.ID)
		if err != nil {
			return apperror.Dependency(err, "otp attempt store unavailable")
		}
		if failures >= int64(uc.cfg.MaxOTPAttempts) {
			return apperror.Authorization("too many failed OTP attempts")
		}
		if !otpMatches(txn.OTP, req.OTP) {
			if _, err := uc.cache.IncrementOTPFailures(ctx, txn.ID, uc.cfg.PickupWindow); err != nil {
				logger.WarnCtx(ctx, "Failed to record OTP failure",
					logger.String("transaction_id", txn.ID.String()),
					logger.Err(err))
			}
			return apperror.Authorization("invalid OTP")
		}

		locker, err = tx.GetLockerForUpdate(ctx, *txn.LockerID)
		if err != nil {
			return err
		}
		if err := uc.locker.TriggerOpen(ctx, locker); err != nil {
			return asDependency(err, "locker hardware unavailable")
		}
		return tx.UpdateLockerStatus(ctx, locker.ID, locker.Status, &actor.UserID)
	})
	if err != nil {
		return nil, err
	}

	uc.flush(ctx, &effects{resetOTP: &req.TransactionID})
	return &models.RetrieveItemResponse{
		TransactionID: req.TransactionID,
		LockerNumber:  locker.Number,
	}, nil
}

func otpMatches(stored *string, supplied string) bool {
	if stored == nil || *stored == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(*stored), []byte(supplied)) == 1
}

// ConfirmRetrieval is reported by the locker once the buyer took the item. It releases escrow and frees the locker.
func (uc *TransactionUC) ConfirmRetrieval(ctx context.Context, id uuid.UUID) (*models.Transaction, bool, error) {
	var (
		txn     *models.Transaction
		changed bool
		fx      effects
	)
	err := uc.repo.WithinTx(ctx, func(ctx context.Context, tx transactions.TxRepo) error {
		var err error
		txn, err = tx.GetTransactionForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if txn.Status != models.TransactionStatusAwaitingPickup {
			return nil
		}

		if _, err := uc.payment.ReleaseEscrow(ctx, txn.ID); err != nil {
			return asDependency(err, "escrow release failed")
		}

		if txn.LockerID != nil {
			if err := tx.UpdateLockerStatus(ctx, *txn.LockerID, models.LockerStatusAvailable, nil); err != nil {
				return err
			}
		}
		txn.OTP = nil
		uc.transition(&fx, txn, models.TransactionStatusReleased, deviceActor)
		fx.resetOTP = &txn.ID
		changed = true

		if err := tx.UpdateTransaction(ctx, txn); err != nil {
			return err
		}
		uc.notify(&fx, txn, "Funds released",
			fmt.Sprintf("The buyer picked up %s. %s has been released to you.", txn.ProductName, formatPrice(txn)),
			txn.SellerID)
		return nil
	})
	if err != nil {
		return nil, false, err
	}

	uc.flush(ctx, &fx)
	return txn, changed, nil
}

var settledPaymentStatuses = map[string]bool{
	"":           true,
	"success":    true,
	"paid":       true,
	"settlement": true,
	"settled":    true,
}

// ConfirmPayment is reported by the payment provider when the QRIS payment settles
func (uc *TransactionUC) ConfirmPayment(ctx context.Context, req models.PaymentWebhookRequest) (*models.Transaction, bool, error) {
	if req.PaymentReference == "" {
		return nil, false, apperror.Validation("payment_reference is required")
	}

	var (
		txn     *models.Transaction
		changed bool
		fx      effects
	)
	err := uc.repo.WithinTx(ctx, func(ctx context.Context, tx transactions.TxRepo) error {
		var err error
		txn, err = tx.GetTransactionByPaymentReferenceForUpdate(ctx, req.PaymentReference)
		if err != nil {
			return err
		}
		if !settledPaymentStatuses[normalizePaymentStatus(req.Status)] {
			return nil
		}
		switch txn.Status {
		case models.TransactionStatusPending, models.TransactionStatusNeedVerification:
		default:
			return nil
		}

		now := uc.now()
		txn.PaidAt = &now
		uc.transition(&fx, txn, models.TransactionStatusEscrow, "payment-gateway")
		changed = true
		if err := tx.UpdateTransaction(ctx, txn); err != nil {
			return err
		}
		uc.notify(&fx, txn, "Payment received",
			fmt.Sprintf("Payment for %s was received. Please prepare the item for the locker.", txn.ProductName),
			txn.SellerID)
		return nil
	})
	if err != nil {
		return nil, false, err
	}

	uc.flush(ctx, &fx)
	return txn, changed, nil
}

func normalizePaymentStatus(v string) string {
	return strings.ToLower(strings.TrimSpace(v))
}
