package transactions

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/piresc/smartlocker/internal/pkg/models"
)

// TransactionRepo defines read access and the unit of work for the lifecycle engine
// go:generate mockgen -destination=../mocks/mock_repository.go -package=mocks github.com/piresc/smartlocker/services/transactions TransactionRepo,TxRepo,CacheRepo
type TransactionRepo interface {
	// WithinTx runs fn in one database transaction, committing when fn returns nil
	WithinTx(ctx context.Context, fn func(ctx context.Context, tx TxRepo) error) error

	GetTransaction(ctx context.Context, id uuid.UUID) (*models.Transaction, error)
	ListTransactions(ctx context.Context, filter models.TransactionFilter) ([]*models.Transaction, error)
	ListExpiredPickups(ctx context.Context, now time.Time, limit int) ([]uuid.UUID, error)

	GetProduct(ctx context.Context, id uuid.UUID) (*models.Product, error)
	ListProducts(ctx context.Context, filter models.ProductFilter) ([]*models.Product, error)

	GetLocker(ctx context.Context, id uuid.UUID) (*models.Locker, error)
	UpsertLocker(ctx context.Context, locker *models.Locker) error
}

// TxRepo is the set of row-locking operations available inside WithinTx
type TxRepo interface {
	GetTransactionForUpdate(ctx context.Context, id uuid.UUID) (*models.Transaction, error)
	GetTransactionByPaymentReferenceForUpdate(ctx context.Context, reference string) (*models.Transaction, error)
	InsertTransaction(ctx context.Context, txn *models.Transaction) error
	UpdateTransaction(ctx context.Context, txn *models.Transaction) error

	GetProductForUpdate(ctx context.Context, id uuid.UUID) (*models.Product, error)
	AdjustProductStock(ctx context.Context, id uuid.UUID, delta int) error

	// ClaimAvailableLocker locks the lowest numbered AVAILABLE locker of the type, skipping rows held by others
	ClaimAvailableLocker(ctx context.Context, lockerType models.LockerType) (*models.Locker, error)
	GetLockerForUpdate(ctx context.Context, id uuid.UUID) (*models.Locker, error)
	UpdateLockerStatus(ctx context.Context, id uuid.UUID, status models.LockerStatus, openedBy *uuid.UUID) error
}

// CacheRepo holds the short-lived counters and leases kept in Redis
type CacheRepo interface {
	IncrementOTPFailures(ctx context.Context, txnID uuid.UUID, ttl time.Duration) (int64, error)
	GetOTPFailures(ctx context.Context, txnID uuid.UUID) (int64, error)
	ResetOTPFailures(ctx context.Context, txnID uuid.UUID) error

	AcquireSweepLease(ctx context.Context, name, holder string, ttl time.Duration) (bool, error)
	ReleaseSweepLease(ctx context.Context, name, holder string) error
}
