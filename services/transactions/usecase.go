package transactions

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/piresc/smartlocker/internal/pkg/models"
)

// Capability is a permission checked against an actor and a transaction
type Capability string

const (
	CapabilityPurchase    Capability = "purchase"
	CapabilityBuyer       Capability = "buyer"
	CapabilitySeller      Capability = "seller"
	CapabilityParticipant Capability = "participant"
)

// TransactionUC defines the lifecycle operations
// go:generate mockgen -destination=../mocks/mock_usecase.go -package=mocks github.com/piresc/smartlocker/services/transactions TransactionUC
type TransactionUC interface {
	CreateTransaction(ctx context.Context, actor models.Actor, req models.CreateTransactionRequest) (*models.CreateTransactionResponse, error)
	UploadPaymentProof(ctx context.Context, actor models.Actor, id uuid.UUID, upload models.PaymentProofUpload) (*models.Transaction, error)
	Approve(ctx context.Context, actor models.Actor, id uuid.UUID) (*models.Transaction, error)
	Reject(ctx context.Context, actor models.Actor, id uuid.UUID) (*models.Transaction, error)
	GenerateOTP(ctx context.Context, actor models.Actor, id uuid.UUID) (*models.GenerateOTPResponse, error)
	DepositItem(ctx context.Context, actor models.Actor, req models.DepositItemRequest) (*models.DepositItemResponse, error)
	RetrieveItem(ctx context.Context, actor models.Actor, req models.RetrieveItemRequest) (*models.RetrieveItemResponse, error)
	UpdateShipping(ctx context.Context, actor models.Actor, id uuid.UUID, req models.ShippingUpdateRequest, capability Capability) (*models.Transaction, error)
	Complete(ctx context.Context, actor models.Actor, id uuid.UUID) (*models.Transaction, error)

	// Webhook transitions report changed=false when the transaction is not in the expected status
	ConfirmDeposit(ctx context.Context, id uuid.UUID) (*models.Transaction, bool, error)
	ConfirmRetrieval(ctx context.Context, id uuid.UUID) (*models.Transaction, bool, error)
	ConfirmPayment(ctx context.Context, req models.PaymentWebhookRequest) (*models.Transaction, bool, error)

	ExpirePickups(ctx context.Context, now time.Time) (int, error)

	GetTransaction(ctx context.Context, actor models.Actor, id uuid.UUID) (*models.Transaction, error)
	ListTransactions(ctx context.Context, actor models.Actor, filter models.TransactionFilter) ([]*models.Transaction, error)
	ListProducts(ctx context.Context, actor models.Actor, filter models.ProductFilter) ([]*models.Product, error)
	GetProduct(ctx context.Context, actor models.Actor, id uuid.UUID) (*models.Product, error)
}
