package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/piresc/smartlocker/internal/pkg/apperror"
	"github.com/piresc/smartlocker/internal/pkg/models"
	"github.com/piresc/smartlocker/services/transactions"
)

const transactionColumns = `id, buyer_id, seller_id, product_id, product_name, quantity, total_price, status,
	buyer_full_name, shipping_address, buyer_phone_number,
	payment_gateway_reference, qris_payload, payment_url, payment_proof, payment_proof_uploaded_at,
	paid_at, payment_expires_at, otp, locker_id, created_at, updated_at`

// TransactionRepo implements transactions.TransactionRepo on PostgreSQL
type TransactionRepo struct {
	db *sqlx.DB
}

// NewTransactionRepository creates a new transaction repository
func NewTransactionRepository(db *sqlx.DB) *TransactionRepo {
	return &TransactionRepo{db: db}
}

// WithinTx runs fn inside one database transaction. Any error from fn rolls back.
func (r *TransactionRepo) WithinTx(ctx context.Context, fn func(ctx context.Context, tx transactions.TxRepo) error) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := fn(ctx, &lockingRepo{tx: tx}); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// GetTransaction retrieves a transaction without locking it
func (r *TransactionRepo) GetTransaction(ctx context.Context, id uuid.UUID) (*models.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE id = $1`

	var txn models.Transaction
	if err := r.db.GetContext(ctx, &txn, query, id); err != nil {
		return nil, notFound(err, "transaction")
	}
	return &txn, nil
}

// ListTransactions returns transactions matching filter, newest first
func (r *TransactionRepo) ListTransactions(ctx context.Context, filter models.TransactionFilter) ([]*models.Transaction, error) {
	var (
		conds []string
		args  []interface{}
	)
	if filter.BuyerID != nil {
		args = append(args, *filter.BuyerID)
		conds = append(conds, fmt.Sprintf("buyer_id = $%d", len(args)))
	}
	if filter.SellerID != nil {
		args = append(args, *filter.SellerID)
		conds = append(conds, fmt.Sprintf("seller_id = $%d", len(args)))
	}
	if len(filter.Statuses) > 0 {
		statuses := make([]string, len(filter.Statuses))
		for i, s := range filter.Statuses {
			statuses[i] = string(s)
		}
		args = append(args, pq.Array(statuses))
		conds = append(conds, fmt.Sprintf("status = ANY($%d)", len(args)))
	}

	query := `SELECT ` + transactionColumns + ` FROM transactions`
	if len(conds) > 0 {
		query += ` WHERE ` + strings.Join(conds, " AND ")
	}
	query += ` ORDER BY created_at DESC`
	query, args = paginate(query, args, filter.Limit, filter.Offset)

	txns := []*models.Transaction{}
	if err := r.db.SelectContext(ctx, &txns, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	return txns, nil
}

// ListExpiredPickups returns ids of AWAITING_PICKUP transactions whose pickup window closed before now
func (r *TransactionRepo) ListExpiredPickups(ctx context.Context, now time.Time, limit int) ([]uuid.UUID, error) {
	query := `
		SELECT id FROM transactions
		WHERE status = $1 AND payment_expires_at < $2
		ORDER BY payment_expires_at
		LIMIT $3
	`

	ids := []uuid.UUID{}
	if err := r.db.SelectContext(ctx, &ids, query, models.TransactionStatusAwaitingPickup, now, limit); err != nil {
		return nil, fmt.Errorf("failed to list expired pickups: %w", err)
	}
	return ids, nil
}

// lockingRepo runs statements on an open transaction
type lockingRepo struct {
	tx *sqlx.Tx
}

func (r *lockingRepo) GetTransactionForUpdate(ctx context.Context, id uuid.UUID) (*models.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE id = $1 FOR UPDATE`

	var txn models.Transaction
	if err := r.tx.GetContext(ctx, &txn, query, id); err != nil {
		return nil, notFound(err, "transaction")
	}
	return &txn, nil
}

func (r *lockingRepo) GetTransactionByPaymentReferenceForUpdate(ctx context.Context, reference string) (*models.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE payment_gateway_reference = $1 FOR UPDATE`

	var txn models.Transaction
	if err := r.tx.GetContext(ctx, &txn, query, reference); err != nil {
		return nil, notFound(err, "transaction")
	}
	return &txn, nil
}

func (r *lockingRepo) InsertTransaction(ctx context.Context, txn *models.Transaction) error {
	query := `
		INSERT INTO transactions (` + transactionColumns + `)
		VALUES (:id, :buyer_id, :seller_id, :product_id, :product_name, :quantity, :total_price, :status,
			:buyer_full_name, :shipping_address, :buyer_phone_number,
			:payment_gateway_reference, :qris_payload, :payment_url, :payment_proof, :payment_proof_uploaded_at,
			:paid_at, :payment_expires_at, :otp, :locker_id, :created_at, :updated_at)
	`
	if _, err := r.tx.NamedExecContext(ctx, query, txn); err != nil {
		return fmt.Errorf("failed to insert transaction: %w", err)
	}
	return nil
}

func (r *lockingRepo) UpdateTransaction(ctx context.Context, txn *models.Transaction) error {
	query := `
		UPDATE transactions SET
			status = :status,
			buyer_full_name = :buyer_full_name,
			shipping_address = :shipping_address,
			buyer_phone_number = :buyer_phone_number,
			payment_proof = :payment_proof,
			payment_proof_uploaded_at = :payment_proof_uploaded_at,
			paid_at = :paid_at,
			payment_expires_at = :payment_expires_at,
			otp = :otp,
			locker_id = :locker_id,
			updated_at = :updated_at
		WHERE id = :id
	`
	res, err := r.tx.NamedExecContext(ctx, query, txn)
	if err != nil {
		return fmt.Errorf("failed to update transaction: %w", err)
	}
	return expectOneRow(res, "transaction")
}

func (r *lockingRepo) GetProductForUpdate(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1 FOR UPDATE`

	var product models.Product
	if err := r.tx.GetContext(ctx, &product, query, id); err != nil {
		return nil, notFound(err, "product")
	}
	return &product, nil
}

// AdjustProductStock adds delta to stock, refusing to go below zero
func (r *lockingRepo) AdjustProductStock(ctx context.Context, id uuid.UUID, delta int) error {
	query := `
		UPDATE products SET stock = stock + $2, updated_at = NOW()
		WHERE id = $1 AND stock + $2 >= 0
	`
	res, err := r.tx.ExecContext(ctx, query, id, delta)
	if err != nil {
		return fmt.Errorf("failed to adjust product stock: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return apperror.Validation("insufficient stock")
	}
	return nil
}

func (r *lockingRepo) ClaimAvailableLocker(ctx context.Context, lockerType models.LockerType) (*models.Locker, error) {
	query := `
		SELECT ` + lockerColumns + ` FROM lockers
		WHERE type = $1 AND status = $2
		ORDER BY number
		LIMIT 1
		FOR UPDATE SKIP LOCKED
	`

	var locker models.Locker
	if err := r.tx.GetContext(ctx, &locker, query, lockerType, models.LockerStatusAvailable); err != nil {
		return nil, notFound(err, "available locker")
	}
	return &locker, nil
}

func (r *lockingRepo) GetLockerForUpdate(ctx context.Context, id uuid.UUID) (*models.Locker, error) {
	query := `SELECT ` + lockerColumns + ` FROM lockers WHERE id = $1 FOR UPDATE`

	var locker models.Locker
	if err := r.tx.GetContext(ctx, &locker, query, id); err != nil {
		return nil, notFound(err, "locker")
	}
	return &locker, nil
}

func (r *lockingRepo) UpdateLockerStatus(ctx context.Context, id uuid.UUID, status models.LockerStatus, openedBy *uuid.UUID) error {
	query := `
		UPDATE lockers SET status = $2, last_opened_by = COALESCE($3::uuid, last_opened_by), updated_at = NOW()
		WHERE id = $1
	`
	res, err := r.tx.ExecContext(ctx, query, id, status, openedBy)
	if err != nil {
		return fmt.Errorf("failed to update locker status: %w", err)
	}
	return expectOneRow(res, "locker")
}

func notFound(err error, what string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return apperror.NotFound("%s not found", what)
	}
	return fmt.Errorf("failed to get %s: %w", what, err)
}

func expectOneRow(res sql.Result, what string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return apperror.NotFound("%s not found", what)
	}
	return nil
}

func paginate(query string, args []interface{}, limit, offset int) (string, []interface{}) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	args = append(args, limit, offset)
	return query + fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)-1, len(args)), args
}
