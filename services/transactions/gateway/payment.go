package gateway

import (
	"context"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/piresc/smartlocker/internal/pkg/apperror"
	httpclient "github.com/piresc/smartlocker/internal/pkg/http"
	"github.com/piresc/smartlocker/internal/pkg/logger"
	"github.com/piresc/smartlocker/internal/pkg/models"
	"github.com/piresc/smartlocker/services/transactions"
)

const (
	PaymentModeMock = "mock"
	PaymentModeHTTP = "http"

	defaultPaymentExpiry = 30 * time.Minute
	mockPaymentURL       = "https://mock-payment.com/pay/%s"
)

// NewPaymentGateway selects the payment provider adapter for cfg.Mode
func NewPaymentGateway(cfg models.PaymentConfig, log *logger.ZapLogger) (transactions.PaymentGW, error) {
	switch strings.ToLower(cfg.Mode) {
	case "", PaymentModeMock:
		return NewMockPaymentGateway(cfg.Expiry, log), nil
	case PaymentModeHTTP:
		if cfg.BaseURL == "" {
			return nil, fmt.Errorf("PAYMENT_BASE_URL is required in http mode")
		}
		client := httpclient.NewClient(httpclient.Config{
			Name:    "payment-gateway",
			BaseURL: cfg.BaseURL,
			APIKey:  cfg.APIKey,
			Timeout: cfg.Timeout,
		}, log)
		return NewHTTPPaymentGateway(client), nil
	default:
		return nil, fmt.Errorf("unknown payment mode %q", cfg.Mode)
	}
}

// HTTPPaymentGateway talks to the payment provider's REST API
type HTTPPaymentGateway struct {
	client *httpclient.Client
}

// NewHTTPPaymentGateway creates a payment gateway over client
func NewHTTPPaymentGateway(client *httpclient.Client) *HTTPPaymentGateway {
	return &HTTPPaymentGateway{client: client}
}

// Client exposes the underlying HTTP client for health reporting
func (g *HTTPPaymentGateway) Client() *httpclient.Client {
	return g.client
}

// CreatePayment opens a QRIS session. The transaction id is the idempotency key.
func (g *HTTPPaymentGateway) CreatePayment(ctx context.Context, intent models.PaymentIntent) (*models.PaymentSession, error) {
	var session models.PaymentSession
	if err := g.client.PostJSON(ctx, "/payments", intent, intent.TransactionID.String(), &session); err != nil {
		return nil, apperror.Dependency(err, "payment gateway unavailable")
	}
	if session.Reference == "" {
		return nil, apperror.Dependency(nil, "payment gateway returned no reference")
	}
	return &session, nil
}

// ReleaseEscrow asks the provider to pay the held funds out to the seller
func (g *HTTPPaymentGateway) ReleaseEscrow(ctx context.Context, txnID uuid.UUID) (*models.EscrowRelease, error) {
	var release models.EscrowRelease
	path := fmt.Sprintf("/payments/%s/release", txnID)
	if err := g.client.PostJSON(ctx, path, map[string]string{"transaction_id": txnID.String()}, "release-"+txnID.String(), &release); err != nil {
		return nil, apperror.Dependency(err, "escrow release failed")
	}
	release.TransactionID = txnID
	return &release, nil
}

// MockPaymentGateway fabricates QRIS sessions locally for development
type MockPaymentGateway struct {
	expiry time.Duration
	now    func() time.Time
	logger *logger.ZapLogger
}

// NewMockPaymentGateway creates the local payment simulator
func NewMockPaymentGateway(expiry time.Duration, log *logger.ZapLogger) *MockPaymentGateway {
	if expiry <= 0 {
		expiry = defaultPaymentExpiry
	}
	if log == nil {
		log = logger.NewNopLogger()
	}
	return &MockPaymentGateway{expiry: expiry, now: time.Now, logger: log}
}

func (g *MockPaymentGateway) CreatePayment(ctx context.Context, intent models.PaymentIntent) (*models.PaymentSession, error) {
	g.logger.Info("Mock payment created",
		logger.String("transaction_id", intent.TransactionID.String()),
		logger.String("amount", intent.Amount.StringFixed(2)),
		logger.String("customer", intent.Customer.Email))

	return &models.PaymentSession{
		Reference:   strings.ReplaceAll(uuid.NewString(), "-", ""),
		QRISPayload: MockQRISPayload(intent),
		PaymentURL:  fmt.Sprintf(mockPaymentURL, intent.TransactionID),
		ExpiresAt:   g.now().Add(g.expiry),
	}, nil
}

func (g *MockPaymentGateway) ReleaseEscrow(ctx context.Context, txnID uuid.UUID) (*models.EscrowRelease, error) {
	g.logger.Info("Mock escrow released", logger.String("transaction_id", txnID.String()))
	return &models.EscrowRelease{TransactionID: txnID, Detail: "Escrow released successfully."}, nil
}

// MockQRISPayload renders the static QRIS string used by the simulator
func MockQRISPayload(intent models.PaymentIntent) string {
	cents := intent.Amount.Shift(2).IntPart()
	return fmt.Sprintf(
		"0002010102120216COM.SMARTLOCKER0115TRX%s5204000053033605408%012d5802ID5907SMARTLK6009JAKARTA62070503QRIS6304",
		hex.EncodeToString(intent.TransactionID[:6]), cents,
	)
}
