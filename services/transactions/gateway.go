package transactions

import (
	"context"

	"github.com/google/uuid"
	"github.com/piresc/smartlocker/internal/pkg/models"
)

// PaymentGW opens payment sessions and releases escrowed funds
// go:generate mockgen -destination=../mocks/mock_gateway.go -package=mocks github.com/piresc/smartlocker/services/transactions PaymentGW,LockerGW,NotificationGW,EventGW,ProofStore
type PaymentGW interface {
	CreatePayment(ctx context.Context, intent models.PaymentIntent) (*models.PaymentSession, error)
	ReleaseEscrow(ctx context.Context, txnID uuid.UUID) (*models.EscrowRelease, error)
}

// LockerGW drives the physical locker hardware
type LockerGW interface {
	TriggerOpen(ctx context.Context, locker *models.Locker) error
}

// NotificationGW enqueues notification commands for the notifications service
type NotificationGW interface {
	Notify(ctx context.Context, cmd models.NotificationCommand) error
}

// EventGW publishes committed lifecycle transitions
type EventGW interface {
	PublishTransactionEvent(ctx context.Context, event models.TransactionEvent) error
}

// ProofStore persists uploaded payment proof images
type ProofStore interface {
	Save(ctx context.Context, txnID uuid.UUID, upload models.PaymentProofUpload) (string, error)
	Delete(ctx context.Context, ref string) error
}
