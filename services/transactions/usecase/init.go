package usecase

import (
	"time"

	"github.com/piresc/smartlocker/internal/pkg/models"
	"github.com/piresc/smartlocker/services/transactions"
)

const (
	defaultPickupWindow   = 24 * time.Hour
	defaultMaxOTPAttempts = 5
	defaultSweepBatchSize = 100
	defaultMaxProofBytes  = 5 * 1024 * 1024

	effectTimeout = 5 * time.Second
)

// Gateways groups the external collaborators of the lifecycle engine
type Gateways struct {
	Payment  transactions.PaymentGW
	Locker   transactions.LockerGW
	Notifier transactions.NotificationGW
	Events   transactions.EventGW
	Proofs   transactions.ProofStore
}

// TransactionUC implements the transaction lifecycle
type TransactionUC struct {
	cfg      models.TransactionsConfig
	repo     transactions.TransactionRepo
	cache    transactions.CacheRepo
	payment  transactions.PaymentGW
	locker   transactions.LockerGW
	notifier transactions.NotificationGW
	events   transactions.EventGW
	proofs   transactions.ProofStore

	now         func() time.Time
	generateOTP func() (string, error)
}

// NewTransactionUC creates a new transaction use case
func NewTransactionUC(
	cfg models.TransactionsConfig,
	repo transactions.TransactionRepo,
	cache transactions.CacheRepo,
	gw Gateways,
) *TransactionUC {
	if cfg.PickupWindow <= 0 {
		cfg.PickupWindow = defaultPickupWindow
	}
	if cfg.MaxOTPAttempts <= 0 {
		cfg.MaxOTPAttempts = defaultMaxOTPAttempts
	}
	if cfg.SweepBatchSize <= 0 {
		cfg.SweepBatchSize = defaultSweepBatchSize
	}
	if cfg.MaxProofBytes <= 0 {
		cfg.MaxProofBytes = defaultMaxProofBytes
	}

	return &TransactionUC{
		cfg:         cfg,
		repo:        repo,
		cache:       cache,
		payment:     gw.Payment,
		locker:      gw.Locker,
		notifier:    gw.Notifier,
		events:      gw.Events,
		proofs:      gw.Proofs,
		now:         time.Now,
		generateOTP: GenerateOTP,
	}
}
