package usecase

import (
	"context"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/piresc/smartlocker/internal/pkg/apperror"
	"github.com/piresc/smartlocker/internal/pkg/database"
	"github.com/piresc/smartlocker/internal/pkg/models"
	"github.com/piresc/smartlocker/services/transactions"
	"github.com/piresc/smartlocker/services/transactions/repository"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

// memStore is an in-memory unit of work. WithinTx serialises callers and restores a snapshot on error.
type memStore struct {
	mu       sync.Mutex
	txns     map[uuid.UUID]models.Transaction
	products map[uuid.UUID]models.Product
	lockers  map[uuid.UUID]models.Locker
}

func newMemStore() *memStore {
	return &memStore{
		txns:     map[uuid.UUID]models.Transaction{},
		products: map[uuid.UUID]models.Product{},
		lockers:  map[uuid.UUID]models.Locker{},
	}
}

func (s *memStore) WithinTx(ctx context.Context, fn func(ctx context.Context, tx transactions.TxRepo) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	txns, products, lockers := copyMap(s.txns), copyMap(s.products), copyMap(s.lockers)
	if err := fn(ctx, (*memTx)(s)); err != nil {
		s.txns, s.products, s.lockers = txns, products, lockers
		return err
	}
	return nil
}

func copyMap[T any](m map[uuid.UUID]T) map[uuid.UUID]T {
	out := make(map[uuid.UUID]T, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func (s *memStore) GetTransaction(ctx context.Context, id uuid.UUID) (*models.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return (*memTx)(s).GetTransactionForUpdate(ctx, id)
}

func (s *memStore) ListTransactions(ctx context.Context, filter models.TransactionFilter) ([]*models.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*models.Transaction
	for _, t := range s.txns {
		t := t
		if filter.BuyerID != nil && t.BuyerID != *filter.BuyerID {
			continue
		}
		if filter.SellerID != nil && t.SellerID != *filter.SellerID {
			continue
		}
		out = append(out, &t)
	}
	return out, nil
}

func (s *memStore) ListExpiredPickups(ctx context.Context, now time.Time, limit int) ([]uuid.UUID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var ids []uuid.UUID
	for id, t := range s.txns {
		if t.Status == models.TransactionStatusAwaitingPickup && t.PickupExpired(now) {
			ids = append(ids, id)
		}
	}
	if len(ids) > limit {
		ids = ids[:limit]
	}
	return ids, nil
}

func (s *memStore) GetProduct(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return (*memTx)(s).GetProductForUpdate(ctx, id)
}

func (s *memStore) ListProducts(ctx context.Context, filter models.ProductFilter) ([]*models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*models.Product
	for _, p := range s.products {
		p := p
		out = append(out, &p)
	}
	return out, nil
}

func (s *memStore) GetLocker(ctx context.Context, id uuid.UUID) (*models.Locker, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return (*memTx)(s).GetLockerForUpdate(ctx, id)
}

func (s *memStore) UpsertLocker(ctx context.Context, locker *models.Locker) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lockers[locker.ID] = *locker
	return nil
}

func (s *memStore) txn(id uuid.UUID) models.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.txns[id]
}

func (s *memStore) product(id uuid.UUID) models.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.products[id]
}

func (s *memStore) locker(id uuid.UUID) models.Locker {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lockers[id]
}

// memTx runs inside WithinTx with the store lock already held
type memTx memStore

func (s *memTx) GetTransactionForUpdate(ctx context.Context, id uuid.UUID) (*models.Transaction, error) {
	t, ok := s.txns[id]
	if !ok {
		return nil, apperror.NotFound("transaction not found")
	}
	return &t, nil
}

func (s *memTx) GetTransactionByPaymentReferenceForUpdate(ctx context.Context, reference string) (*models.Transaction, error) {
	for _, t := range s.txns {
		if t.PaymentGatewayReference != nil && *t.PaymentGatewayReference == reference {
			t := t
			return &t, nil
		}
	}
	return nil, apperror.NotFound("transaction not found")
}

func (s *memTx) InsertTransaction(ctx context.Context, txn *models.Transaction) error {
	s.txns[txn.ID] = *txn
	return nil
}

func (s *memTx) UpdateTransaction(ctx context.Context, txn *models.Transaction) error {
	if _, ok := s.txns[txn.ID]; !ok {
		return apperror.NotFound("transaction not found")
	}
	s.txns[txn.ID] = *txn
	return nil
}

func (s *memTx) GetProductForUpdate(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	p, ok := s.products[id]
	if !ok {
		return nil, apperror.NotFound("product not found")
	}
	return &p, nil
}

func (s *memTx) AdjustProductStock(ctx context.Context, id uuid.UUID, delta int) error {
	p, ok := s.products[id]
	if !ok {
		return apperror.NotFound("product not found")
	}
	if p.Stock+delta < 0 {
		return apperror.Validation("insufficient stock")
	}
	p.Stock += delta
	s.products[id] = p
	return nil
}

func (s *memTx) ClaimAvailableLocker(ctx context.Context, lockerType models.LockerType) (*models.Locker, error) {
	var free []models.Locker
	for _, l := range s.lockers {
		if l.Type == lockerType && l.Status == models.LockerStatusAvailable {
			free = append(free, l)
		}
	}
	if len(free) == 0 {
		return nil, apperror.NotFound("available locker not found")
	}
	sort.Slice(free, func(i, j int) bool { return free[i].Number < free[j].Number })
	return &free[0], nil
}

func (s *memTx) GetLockerForUpdate(ctx context.Context, id uuid.UUID) (*models.Locker, error) {
	l, ok := s.lockers[id]
	if !ok {
		return nil, apperror.NotFound("locker not found")
	}
	return &l, nil
}

func (s *memTx) UpdateLockerStatus(ctx context.Context, id uuid.UUID, status models.LockerStatus, openedBy *uuid.UUID) error {
	l, ok := s.lockers[id]
	if !ok {
		return apperror.NotFound("locker not found")
	}
	l.Status = status
	if openedBy != nil {
		by := *openedBy
		l.LastOpenedBy = &by
	}
	s.lockers[id] = l
	return nil
}

type stubPayment struct {
	mu         sync.Mutex
	createErr  error
	releaseErr error
	released   []uuid.UUID
}

func (p *stubPayment) CreatePayment(ctx context.Context, intent models.PaymentIntent) (*models.PaymentSession, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.createErr != nil {
		return nil, p.createErr
	}
	return &models.PaymentSession{
		Reference:   "ref-" + intent.TransactionID.String(),
		QRISPayload: "000201",
		PaymentURL:  "https://mock-payment.com/pay/" + intent.TransactionID.String(),
		ExpiresAt:   time.Now().Add(30 * time.Minute),
	}, nil
}

func (p *stubPayment) ReleaseEscrow(ctx context.Context, txnID uuid.UUID) (*models.EscrowRelease, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.releaseErr != nil {
		return nil, p.releaseErr
	}
	p.released = append(p.released, txnID)
	return &models.EscrowRelease{TransactionID: txnID, Detail: "released"}, nil
}

type recordingLocker struct {
	mu     sync.Mutex
	err    error
	opened []string
}

func (l *recordingLocker) TriggerOpen(ctx context.Context, locker *models.Locker) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.err != nil {
		return l.err
	}
	l.opened = append(l.opened, locker.Number)
	return nil
}

func (l *recordingLocker) opens() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.opened)
}

type recordingNotifier struct {
	mu   sync.Mutex
	err  error
	cmds []models.NotificationCommand
}

func (n *recordingNotifier) Notify(ctx context.Context, cmd models.NotificationCommand) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.cmds = append(n.cmds, cmd)
	return n.err
}

func (n *recordingNotifier) last() models.NotificationCommand {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.cmds) == 0 {
		return models.NotificationCommand{}
	}
	return n.cmds[len(n.cmds)-1]
}

type recordingEvents struct {
	mu     sync.Mutex
	events []models.TransactionEvent
}

func (e *recordingEvents) PublishTransactionEvent(ctx context.Context, ev models.TransactionEvent) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.events = append(e.events, ev)
	return nil
}

type memProofs struct {
	mu    sync.Mutex
	files map[string][]byte
}

func (p *memProofs) Save(ctx context.Context, txnID uuid.UUID, upload models.PaymentProofUpload) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	ref := txnID.String() + "/" + uuid.NewString()
	p.files[ref] = upload.Data
	return ref, nil
}

func (p *memProofs) Delete(ctx context.Context, ref string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.files, ref)
	return nil
}

var pngProof = append([]byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR"), make([]byte, 64)...)

type harness struct {
	uc       *TransactionUC
	store    *memStore
	payment  *stubPayment
	locker   *recordingLocker
	notifier *recordingNotifier
	events   *recordingEvents
	proofs   *memProofs
	redis    *miniredis.Miniredis
	clock    time.Time

	buyer     models.Actor
	seller    models.Actor
	stranger  models.Actor
	productID uuid.UUID
	lockerID  uuid.UUID
}

func newHarness(t *testing.T, stock int) *harness {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)
	redisClient := &database.RedisClient{Client: redis.NewClient(&redis.Options{Addr: mr.Addr()})}

	h := &harness{
		store:    newMemStore(),
		payment:  &stubPayment{},
		locker:   &recordingLocker{},
		notifier: &recordingNotifier{},
		events:   &recordingEvents{},
		proofs:   &memProofs{files: map[string][]byte{}},
		redis:    mr,
		clock:    time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),

		buyer:     models.Actor{UserID: uuid.New(), Role: models.RoleBuyer, Name: "Budi", Email: "budi@example.com"},
		seller:    models.Actor{UserID: uuid.New(), Role: models.RoleOwner, Name: "Sari"},
		stranger:  models.Actor{UserID: uuid.New(), Role: models.RoleBuyer, Name: "Eko"},
		productID: uuid.New(),
		lockerID:  uuid.New(),
	}

	h.store.products[h.productID] = models.Product{
		ID:       h.productID,
		StoreID:  uuid.New(),
		SellerID: h.seller.UserID,
		Name:     "Mechanical Keyboard",
		Price:    decimal.NewFromInt(10000),
		Stock:    stock,
		IsActive: true,
	}
	h.store.lockers[h.lockerID] = models.Locker{
		ID:          h.lockerID,
		Number:      "M-01",
		Type:        models.LockerTypeMarketplace,
		Status:      models.LockerStatusAvailable,
		DeviceToken: "tok",
		ControlPin:  "V1",
	}

	h.uc = NewTransactionUC(models.TransactionsConfig{
		PickupWindow:   2 * time.Hour,
		MaxOTPAttempts: 3,
		SweepBatchSize: 10,
	}, h.store, repository.NewCacheRepository(redisClient), Gateways{
		Payment:  h.payment,
		Locker:   h.locker,
		Notifier: h.notifier,
		Events:   h.events,
		Proofs:   h.proofs,
	})
	h.uc.now = func() time.Time { return h.clock }
	return h
}

func (h *harness) advance(d time.Duration) {
	h.clock = h.clock.Add(d)
}

// purchase creates a two item transaction and drives it to status
func (h *harness) purchase(t *testing.T, status models.TransactionStatus) uuid.UUID {
	t.Helper()
	ctx := context.Background()

	resp, err := h.uc.CreateTransaction(ctx, h.buyer, models.CreateTransactionRequest{
		ProductID:        h.productID,
		Quantity:         2,
		BuyerFullName:    "Budi Santoso",
		ShippingAddress:  "Jl. Sudirman 1, Jakarta",
		BuyerPhoneNumber: "08123456789",
	})
	require.NoError(t, err)
	id := resp.Transaction.ID
	if status == models.TransactionStatusPending {
		return id
	}

	_, err = h.uc.UploadPaymentProof(ctx, h.buyer, id, models.PaymentProofUpload{Filename: "proof.png", Data: pngProof})
	require.NoError(t, err)
	if status == models.TransactionStatusNeedVerification {
		return id
	}

	_, err = h.uc.Approve(ctx, h.seller, id)
	require.NoError(t, err)
	if status == models.TransactionStatusEscrow {
		return id
	}

	_, err = h.uc.GenerateOTP(ctx, h.seller, id)
	require.NoError(t, err)
	_, err = h.uc.DepositItem(ctx, h.seller, models.DepositItemRequest{TransactionID: id})
	require.NoError(t, err)
	require.Equal(t, models.TransactionStatusAwaitingPickup, status)
	return id
}

func (h *harness) otp(id uuid.UUID) string {
	txn := h.store.txn(id)
	if txn.OTP == nil {
		return ""
	}
	return *txn.OTP
}
