package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/piresc/smartlocker/internal/pkg/apperror"
	"github.com/piresc/smartlocker/internal/pkg/logger"
	"github.com/piresc/smartlocker/internal/pkg/models"
	"github.com/piresc/smartlocker/services/transactions"
	"github.com/shopspring/decimal"
)

// CreateTransaction reserves stock and opens a payment session as one unit of work
func (uc *TransactionUC) CreateTransaction(ctx context.Context, actor models.Actor, req models.CreateTransactionRequest) (*models.CreateTransactionResponse, error) {
	if err := authorize(actor, nil, transactions.CapabilityPurchase); err != nil {
		return nil, err
	}
	if req.ProductID == uuid.Nil {
		return nil, apperror.Validation("product_id is required")
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}
	if req.Quantity < 0 {
		return nil, apperror.Validation("quantity must be positive")
	}

	var (
		txn     *models.Transaction
		session *models.PaymentSession
		fx      effects
	)
	err := uc.repo.WithinTx(ctx, func(ctx context.Context, tx transactions.TxRepo) error {
		product, err := tx.GetProductForUpdate(ctx, req.ProductID)
		if err != nil {
			return err
		}
		if !product.IsActive {
			return apperror.NotFound("product not found")
		}
		if product.SellerID == actor.UserID {
			return apperror.Validation("cannot purchase your own product")
		}
		if product.Stock < req.Quantity {
			return apperror.Validation("not enough stock")
		}
		if err := tx.AdjustProductStock(ctx, product.ID, -req.Quantity); err != nil {
			return err
		}

		now := uc.now()
		txn = &models.Transaction{
			ID:               uuid.New(),
			BuyerID:          actor.UserID,
			SellerID:         product.SellerID,
			ProductID:        product.ID,
			ProductName:      product.Name,
			Quantity:         req.Quantity,
			TotalPrice:       product.Price.Mul(decimal.NewFromInt(int64(req.Quantity))),
			Status:           models.TransactionStatusPending,
			BuyerFullName:    strings.TrimSpace(req.BuyerFullName),
			ShippingAddress:  strings.TrimSpace(req.ShippingAddress),
			BuyerPhoneNumber: strings.TrimSpace(req.BuyerPhoneNumber),
			CreatedAt:        now,
			UpdatedAt:        now,
		}

		session, err = uc.payment.CreatePayment(ctx, models.PaymentIntent{
			TransactionID: txn.ID,
			Amount:        txn.TotalPrice,
			Description:   fmt.Sprintf("%d x %s", txn.Quantity, txn.ProductName),
			Customer: models.PaymentCustomer{
				UserID: actor.UserID,
				Name:   actor.Name,
				Email:  actor.Email,
				Phone:  txn.BuyerPhoneNumber,
			},
		})
		if err != nil {
			return asDependency(err, "failed to create payment session")
		}
		txn.PaymentGatewayReference = &session.Reference
		txn.QRISPayload = &session.QRISPayload
		txn.PaymentURL = &session.PaymentURL
		txn.PaymentExpiresAt = &session.ExpiresAt

		if err := tx.InsertTransaction(ctx, txn); err != nil {
			return err
		}

		fx.events = append(fx.events, models.TransactionEvent{
			EventID:       uuid.New(),
			TransactionID: txn.ID,
			ToStatus:      txn.Status,
			ActorID:       actorID(actor),
			OccurredAt:    now,
		})
		uc.notify(&fx, txn, "New order",
			fmt.Sprintf("New order for %d x %s (%s) is awaiting payment.", txn.Quantity, txn.ProductName, formatPrice(txn)),
			txn.SellerID)
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.flush(ctx, &fx)
	logger.InfoCtx(ctx, "Transaction created",
		logger.String("transaction_id", txn.ID.String()),
		logger.String("product_id", txn.ProductID.String()),
		logger.Int("quantity", txn.Quantity))

	return &models.CreateTransactionResponse{
		Transaction: txn,
		PaymentURL:  session.PaymentURL,
		QRISPayload: session.QRISPayload,
		ExpiresAt:   session.ExpiresAt,
	}, nil
}

// UploadPaymentProof stores the buyer's transfer receipt and queues the order for seller verification
func (uc *TransactionUC) UploadPaymentProof(ctx context.Context, actor models.Actor, id uuid.UUID, upload models.PaymentProofUpload) (*models.Transaction, error) {
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
		if err := authorize(actor, txn, transactions.CapabilityBuyer); err != nil {
			return err
		}
		switch txn.Status.Canonical() {
		case models.TransactionStatusPending, models.TransactionStatusNeedVerification:
		default:
			return apperror.StateConflict("payment proof already processed")
		}
		if err := uc.validateProof(&upload); err != nil {
			return err
		}

		ref, err := uc.proofs.Save(ctx, txn.ID, upload)
		if err != nil {
			return fmt.Errorf("failed to store payment proof: %w", err)
		}
		if txn.PaymentProof != nil {
			fx.staleProof = *txn.PaymentProof
		}

		now := uc.now()
		txn.PaymentProof = &ref
		txn.PaymentProofUploadedAt = &now
		txn.UpdatedAt = now
		if txn.Status != models.TransactionStatusNeedVerification {
			uc.transition(&fx, txn, models.TransactionStatusNeedVerification, actorID(actor))
		}

		if err := tx.UpdateTransaction(ctx, txn); err != nil {
			if delErr := uc.proofs.Delete(ctx, ref); delErr != nil {
				logger.WarnCtx(ctx, "Failed to remove orphaned payment proof", logger.String("ref", ref), logger.Err(delErr))
			}
			return err
		}

		uc.notify(&fx, txn, "Payment proof uploaded",
			fmt.Sprintf("The buyer uploaded a payment proof for %s. Please verify it.", txn.ProductName),
			txn.SellerID)
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.flush(ctx, &fx)
	return txn, nil
}

// validateProof checks size and sniffs the content, normalising upload.ContentType
func (uc *TransactionUC) validateProof(upload *models.PaymentProofUpload) error {
	if len(upload.Data) == 0 {
		return apperror.Validation("payment_proof is required")
	}
	if int64(len(upload.Data)) > uc.cfg.MaxProofBytes {
		return apperror.Validation("file exceeds %d bytes", uc.cfg.MaxProofBytes)
	}
	mtype := mimetype.Detect(upload.Data)
	switch {
	case mtype.Is("image/jpeg"):
		upload.ContentType = "image/jpeg"
	case mtype.Is("image/png"):
		upload.ContentType = "image/png"
	default:
		return apperror.Validation("invalid file type, allowed types: JPG, JPEG, PNG")
	}
	upload.Size = int64(len(upload.Data))
	return nil
}

// Approve confirms the buyer's payment proof and moves funds into escrow
func (uc *TransactionUC) Approve(ctx context.Context, actor models.Actor, id uuid.UUID) (*models.Transaction, error) {
	return uc.sellerDecision(ctx, actor, id, func(ctx context.Context, fx *effects, tx transactions.TxRepo, txn *models.Transaction) error {
		if txn.PaymentProof == nil {
			return apperror.Validation("payment proof is required before approval")
		}
		now := uc.now()
		txn.PaidAt = &now
		uc.transition(fx, txn, models.TransactionStatusEscrow, actorID(actor))
		uc.notify(fx, txn, "Payment approved",
			fmt.Sprintf("Your payment for %s was approved. The seller will prepare your item.", txn.ProductName),
			txn.BuyerID)
		return nil
	})
}

// Reject refuses the buyer's payment proof and returns the reserved stock
func (uc *TransactionUC) Reject(ctx context.Context, actor models.Actor, id uuid.UUID) (*models.Transaction, error) {
	return uc.sellerDecision(ctx, actor, id, func(ctx context.Context, fx *effects, tx transactions.TxRepo, txn *models.Transaction) error {
		if err := tx.AdjustProductStock(ctx, txn.ProductID, txn.Quantity); err != nil {
			return err
		}
		txn.OTP = nil
		uc.transition(fx, txn, models.TransactionStatusRejected, actorID(actor))
		uc.notify(fx, txn, "Payment rejected",
			fmt.Sprintf("Your payment proof for %s was rejected by the seller.", txn.ProductName),
			txn.BuyerID)
		return nil
	})
}

func (uc *TransactionUC) sellerDecision(
	ctx context.Context,
	actor models.Actor,
	id uuid.UUID,
	decide func(ctx context.Context, fx *effects, tx transactions.TxRepo, txn *models.Transaction) error,
) (*models.Transaction, error) {
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
		if txn.Status != models.TransactionStatusNeedVerification {
			return apperror.StateConflict("transaction is %s, expected %s", txn.Status, models.TransactionStatusNeedVerification)
		}
		if err := decide(ctx, &fx, tx, txn); err != nil {
			return err
		}
		return tx.UpdateTransaction(ctx, txn)
	})
	if err != nil {
		return nil, err
	}

	uc.flush(ctx, &fx)
	return txn, nil
}

// UpdateShipping overwrites the buyer contact details on behalf of the buyer or the seller
func (uc *TransactionUC) UpdateShipping(ctx context.Context, actor models.Actor, id uuid.UUID, req models.ShippingUpdateRequest, capability transactions.Capability) (*models.Transaction, error) {
	if capability != transactions.CapabilityBuyer && capability != transactions.CapabilitySeller {
		return nil, apperror.Authorization("unsupported capability %q for shipping update", capability)
	}

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
		if err := authorize(actor, txn, capability); err != nil {
			return err
		}
		if txn.Status.IsTerminal() || txn.Status == models.TransactionStatusReleased {
			return apperror.StateConflict("shipping details can no longer be changed")
		}

		req.Normalize()
		if req.BuyerFullName == "" || req.ShippingAddress == "" || req.BuyerPhoneNumber == "" {
			return apperror.Validation("buyer_full_name, shipping_address and buyer_phone_number are required")
		}
		txn.BuyerFullName = req.BuyerFullName
		txn.ShippingAddress = req.ShippingAddress
		txn.BuyerPhoneNumber = req.BuyerPhoneNumber
		txn.UpdatedAt = uc.now()

		if err := tx.UpdateTransaction(ctx, txn); err != nil {
			return err
		}

		counterpart := txn.SellerID
		if capability == transactions.CapabilitySeller {
			counterpart = txn.BuyerID
		}
		uc.notify(&fx, txn, "Shipping details updated",
			fmt.Sprintf("Shipping details for %s were updated.", txn.ProductName),
			counterpart)
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.flush(ctx, &fx)
	return txn, nil
}

// Complete lets the buyer close a released transaction
func (uc *TransactionUC) Complete(ctx context.Context, actor models.Actor, id uuid.UUID) (*models.Transaction, error) {
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
		if err := authorize(actor, txn, transactions.CapabilityBuyer); err != nil {
			return err
		}
		if txn.Status != models.TransactionStatusReleased {
			return apperror.StateConflict("transaction is %s, expected %s", txn.Status, models.TransactionStatusReleased)
		}
		uc.transition(&fx, txn, models.TransactionStatusCompleted, actorID(actor))
		if err := tx.UpdateTransaction(ctx, txn); err != nil {
			return err
		}
		uc.notify(&fx, txn, "Order completed",
			fmt.Sprintf("The buyer marked the order for %s as completed.", txn.ProductName),
			txn.SellerID)
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.flush(ctx, &fx)
	return txn, nil
}

// GetTransaction returns one transaction to a participant
func (uc *TransactionUC) GetTransaction(ctx context.Context, actor models.Actor, id uuid.UUID) (*models.Transaction, error) {
	txn, err := uc.repo.GetTransaction(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := authorize(actor, txn, transactions.CapabilityParticipant); err != nil {
		return nil, err
	}
	return txn, nil
}

// ListTransactions scopes the listing to the actor's purchases or sales
func (uc *TransactionUC) ListTransactions(ctx context.Context, actor models.Actor, filter models.TransactionFilter) ([]*models.Transaction, error) {
	filter.BuyerID, filter.SellerID = nil, nil
	switch {
	case actor.Role == models.RoleBuyer:
		filter.BuyerID = &actor.UserID
	case actor.Role.IsSeller():
		filter.SellerID = &actor.UserID
	case actor.Role == models.RoleAdmin:
	default:
		return nil, apperror.Authorization("role %s cannot list transactions", actor.Role)
	}
	return uc.repo.ListTransactions(ctx, filter)
}

// asDependency keeps an existing dependency error and wraps anything else as one
func asDependency(err error, msg string) error {
	if errors.Is(err, apperror.ErrDependency) {
		return err
	}
	return apperror.Dependency(err, msg)
}
