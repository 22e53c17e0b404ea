package repository

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/piresc/smartlocker/internal/pkg/apperror"
	"github.com/piresc/smartlocker/internal/pkg/models"
	"github.com/piresc/smartlocker/services/transactions"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	db := sqlx.NewDb(mockDB, "sqlmock")
	return db, mock
}

var transactionColumnNames = []string{
	"id", "buyer_id", "seller_id", "product_id", "product_name", "quantity", "total_price", "status",
	"buyer_full_name", "shipping_address", "buyer_phone_number",
	"payment_gateway_reference", "qris_payload", "payment_url", "payment_proof", "payment_proof_uploaded_at",
	"paid_at", "payment_expires_at", "otp", "locker_id", "created_at", "updated_at",
}

func transactionRow(id uuid.UUID, status models.TransactionStatus) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows(transactionColumnNames).AddRow(
		id.String(), uuid.NewString(), uuid.NewString(), uuid.NewString(), "Keyboard", 2, "20000.00", string(status),
		"Budi", "Jl. Sudirman 1", "08123456789",
		"ref-1", "000201", "https://mock-payment.com/pay/1", nil, nil,
		nil, nil, nil, nil, now, now,
	)
}

func TestWithinTx_CommitsOnSuccess(t *testing.T) {
	// Arrange
	db, mock := setupMockDB(t)
	repo := NewTransactionRepository(db)
	id := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT .* FROM transactions WHERE id = .* FOR UPDATE`).
		WithArgs(id.String()).
		WillReturnRows(transactionRow(id, models.TransactionStatusEscrow))
	mock.ExpectCommit()

	// Act
	var got *models.Transaction
	err := repo.WithinTx(context.Background(), func(ctx context.Context, tx transactions.TxRepo) error {
		var err error
		got, err = tx.GetTransactionForUpdate(ctx, id)
		return err
	})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, id, got.ID)
	assert.Equal(t, models.TransactionStatusEscrow, got.Status)
	assert.Equal(t, "20000", got.TotalPrice.String())
	assert.Nil(t, got.OTP)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWithinTx_RollsBackOnError(t *testing.T) {
	// Arrange
	db, mock := setupMockDB(t)
	repo := NewTransactionRepository(db)
	boom := errors.New("boom")

	mock.ExpectBegin()
	mock.ExpectRollback()

	// Act
	err := repo.WithinTx(context.Background(), func(ctx context.Context, tx transactions.TxRepo) error {
		return boom
	})

	// Assert
	assert.ErrorIs(t, err, boom)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWithinTx_BeginError(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewTransactionRepository(db)

	mock.ExpectBegin().WillReturnError(errors.New("connection refused"))

	called := false
	err := repo.WithinTx(context.Background(), func(ctx context.Context, tx transactions.TxRepo) error {
		called = true
		return nil
	})

	assert.Error(t, err)
	assert.False(t, called)
	assert.Contains(t, err.Error(), "failed to begin transaction")
}

func TestGetTransaction_NotFound(t *testing.T) {
	// Arrange
	db, mock := setupMockDB(t)
	repo := NewTransactionRepository(db)
	id := uuid.New()

	mock.ExpectQuery(`SELECT .* FROM transactions WHERE id = \$1`).
		WithArgs(id.String()).
		WillReturnError(sql.ErrNoRows)

	// Act
	txn, err := repo.GetTransaction(context.Background(), id)

	// Assert
	assert.Nil(t, txn)
	assert.ErrorIs(t, err, apperror.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetTransaction_DatabaseError(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewTransactionRepository(db)

	mock.ExpectQuery(`SELECT .* FROM transactions`).WillReturnError(errors.New("timeout"))

	_, err := repo.GetTransaction(context.Background(), uuid.New())

	assert.Error(t, err)
	assert.Equal(t, apperror.KindInternal, apperror.KindOf(err))
}

func TestListTransactions_FiltersByBuyerAndStatus(t *testing.T) {
	// Arrange
	db, mock := setupMockDB(t)
	repo := NewTransactionRepository(db)
	buyerID := uuid.New()
	id := uuid.New()

	mock.ExpectQuery(`SELECT .* FROM transactions WHERE buyer_id = \$1 AND status = ANY\(\$2\) ORDER BY created_at DESC LIMIT \$3 OFFSET \$4`).
		WithArgs(buyerID.String(), sqlmock.AnyArg(), int64(50), int64(0)).
		WillReturnRows(transactionRow(id, models.TransactionStatusPending))

	// Act
	txns, err := repo.ListTransactions(context.Background(), models.TransactionFilter{
		BuyerID:  &buyerID,
		Statuses: []models.TransactionStatus{models.TransactionStatusPending},
	})

	// Assert
	require.NoError(t, err)
	require.Len(t, txns, 1)
	assert.Equal(t, id, txns[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListExpiredPickups(t *testing.T) {
	// Arrange
	db, mock := setupMockDB(t)
	repo := NewTransactionRepository(db)
	now := time.Now()
	first, second := uuid.New(), uuid.New()

	mock.ExpectQuery(`SELECT id FROM transactions\s+WHERE status = \$1 AND payment_expires_at < \$2`).
		WithArgs(string(models.TransactionStatusAwaitingPickup), now, int64(10)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(first.String()).AddRow(second.String()))

	// Act
	ids, err := repo.ListExpiredPickups(context.Background(), now, 10)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{first, second}, ids)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAdjustProductStock_Insufficient(t *testing.T) {
	// Arrange
	db, mock := setupMockDB(t)
	repo := NewTransactionRepository(db)
	productID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE products SET stock = stock \+ \$2`).
		WithArgs(productID.String(), int64(-3)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	// Act
	err := repo.WithinTx(context.Background(), func(ctx context.Context, tx transactions.TxRepo) error {
		return tx.AdjustProductStock(ctx, productID, -3)
	})

	// Assert
	assert.ErrorIs(t, err, apperror.ErrValidation)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestClaimAvailableLocker_NoneFree(t *testing.T) {
	// Arrange
	db, mock := setupMockDB(t)
	repo := NewTransactionRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT .* FROM lockers\s+WHERE type = \$1 AND status = \$2\s+ORDER BY number\s+LIMIT 1\s+FOR UPDATE SKIP LOCKED`).
		WithArgs(string(models.LockerTypeMarketplace), string(models.LockerStatusAvailable)).
		WillReturnError(sql.ErrNoRows)
	mock.ExpectRollback()

	// Act
	err := repo.WithinTx(context.Background(), func(ctx context.Context, tx transactions.TxRepo) error {
		_, err := tx.ClaimAvailableLocker(ctx, models.LockerTypeMarketplace)
		return err
	})

	// Assert
	assert.ErrorIs(t, err, apperror.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestClaimAvailableLocker_Success(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewTransactionRepository(db)
	lockerID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery(`FOR UPDATE SKIP LOCKED`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "number", "type", "status", "device_token", "control_pin", "last_opened_by", "updated_at"}).
			AddRow(lockerID.String(), "M-01", "MARKETPLACE", "AVAILABLE", "tok", "V1", nil, time.Now()))
	mock.ExpectCommit()

	var locker *models.Locker
	err := repo.WithinTx(context.Background(), func(ctx context.Context, tx transactions.TxRepo) error {
		var err error
		locker, err = tx.ClaimAvailableLocker(ctx, models.LockerTypeMarketplace)
		return err
	})

	require.NoError(t, err)
	assert.Equal(t, lockerID, locker.ID)
	assert.Equal(t, "V1", locker.ControlPin)
	assert.Nil(t, locker.LastOpenedBy)
}

func TestUpdateTransaction_NoRows(t *testing.T) {
	// Arrange
	db, mock := setupMockDB(t)
	repo := NewTransactionRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE transactions SET`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	// Act
	err := repo.WithinTx(context.Background(), func(ctx context.Context, tx transactions.TxRepo) error {
		return tx.UpdateTransaction(ctx, &models.Transaction{ID: uuid.New(), Status: models.TransactionStatusEscrow})
	})

	// Assert
	assert.ErrorIs(t, err, apperror.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInsertTransaction_Error(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewTransactionRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO transactions`).WillReturnError(errors.New("duplicate key"))
	mock.ExpectRollback()

	err := repo.WithinTx(context.Background(), func(ctx context.Context, tx transactions.TxRepo) error {
		return tx.InsertTransaction(ctx, &models.Transaction{ID: uuid.New()})
	})

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to insert transaction")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateLockerStatus(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewTransactionRepository(db)
	lockerID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE lockers SET status = \$2`).
		WithArgs(lockerID.String(), string(models.LockerStatusAvailable), nil).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.WithinTx(context.Background(), func(ctx context.Context, tx transactions.TxRepo) error {
		return tx.UpdateLockerStatus(ctx, lockerID, models.LockerStatusAvailable, nil)
	})

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpsertLocker_AssignsID(t *testing.T) {
	// Arrange
	db, mock := setupMockDB(t)
	repo := NewTransactionRepository(db)
	locker := &models.Locker{Number: "M-02", Type: models.LockerTypeMarketplace, DeviceToken: "tok", ControlPin: "V2"}

	mock.ExpectExec(`INSERT INTO lockers .* ON CONFLICT \(number\) DO UPDATE`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	// Act
	err := repo.UpsertLocker(context.Background(), locker)

	// Assert
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, locker.ID)
	assert.Equal(t, models.LockerStatusAvailable, locker.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListProducts_OnlyActive(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewTransactionRepository(db)
	now := time.Now()

	mock.ExpectQuery(`SELECT .* FROM products WHERE is_active = TRUE ORDER BY created_at DESC LIMIT \$1 OFFSET \$2`).
		WithArgs(int64(20), int64(40)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "store_id", "seller_id", "name", "description", "price", "stock", "is_active", "created_at", "updated_at"}).
			AddRow(uuid.NewString(), uuid.NewString(), uuid.NewString(), "Keyboard", "", "10000", 5, true, now, now))

	products, err := repo.ListProducts(context.Background(), models.ProductFilter{OnlyActive: true, Limit: 20, Offset: 40})

	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, 5, products[0].Stock)
	assert.NoError(t, mock.ExpectationsWereMet())
}
