package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/piresc/smartlocker/internal/pkg/apperror"
	httpclient "github.com/piresc/smartlocker/internal/pkg/http"
	"github.com/piresc/smartlocker/internal/pkg/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockPaymentGateway_CreatePayment(t *testing.T) {
	// Arrange
	gw := NewMockPaymentGateway(0, nil)
	fixed := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	gw.now = func() time.Time { return fixed }
	txnID := uuid.MustParse("0a1b2c3d-4e5f-6071-8293-a4b5c6d7e8f9")

	// Act
	session, err := gw.CreatePayment(context.Background(), models.PaymentIntent{
		TransactionID: txnID,
		Amount:        decimal.RequireFromString("20000.50"),
	})

	// Assert
	require.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`^[0-9a-f]{32}$`), session.Reference)
	assert.Equal(t, fixed.Add(30*time.Minute), session.ExpiresAt)
	assert.Equal(t, "https://mock-payment.com/pay/"+txnID.String(), session.PaymentURL)
	assert.Equal(t,
		"0002010102120216COM.SMARTLOCKER0115TRX0a1b2c3d4e5f5204000053033605408000002000050"+
			"5802ID5907SMARTLK6009JAKARTA62070503QRIS6304",
		session.QRISPayload)
}

func TestMockPaymentGateway_ReleaseEscrow(t *testing.T) {
	gw := NewMockPaymentGateway(time.Minute, nil)
	txnID := uuid.New()

	release, err := gw.ReleaseEscrow(context.Background(), txnID)

	require.NoError(t, err)
	assert.Equal(t, txnID, release.TransactionID)
	assert.NotEmpty(t, release.Detail)
}

func TestHTTPPaymentGateway_CreatePayment(t *testing.T) {
	// Arrange
	txnID := uuid.New()
	expires := time.Now().Add(time.Hour).UTC().Truncate(time.Second)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/payments", r.URL.Path)
		assert.Equal(t, "secret", r.Header.Get(httpclient.APIKeyHeader))
		assert.Equal(t, txnID.String(), r.Header.Get(httpclient.IdempotencyKeyHeader))

		var intent models.PaymentIntent
		require.NoError(t, json.NewDecoder(r.Body).Decode(&intent))
		assert.Equal(t, txnID, intent.TransactionID)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(models.PaymentSession{
			Reference:   "ref-123",
			QRISPayload: "000201",
			PaymentURL:  "https://pay.example/ref-123",
			ExpiresAt:   expires,
		})
	}))
	defer server.Close()

	gw, err := NewPaymentGateway(models.PaymentConfig{Mode: "http", BaseURL: server.URL, APIKey: "secret"}, nil)
	require.NoError(t, err)

	// Act
	session, err := gw.CreatePayment(context.Background(), models.PaymentIntent{TransactionID: txnID, Amount: decimal.NewFromInt(10)})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "ref-123", session.Reference)
	assert.True(t, expires.Equal(session.ExpiresAt))
}

func TestHTTPPaymentGateway_UpstreamFailureIsDependency(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	gw := NewHTTPPaymentGateway(httpclient.NewClient(httpclient.Config{BaseURL: server.URL}, nil))

	_, err := gw.ReleaseEscrow(context.Background(), uuid.New())

	assert.ErrorIs(t, err, apperror.ErrDependency)
}

func TestHTTPPaymentGateway_ReleaseEscrow(t *testing.T) {
	txnID := uuid.New()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/payments/"+txnID.String()+"/release", r.URL.Path)
		w.Write([]byte(`{"detail":"released"}`))
	}))
	defer server.Close()

	gw := NewHTTPPaymentGateway(httpclient.NewClient(httpclient.Config{BaseURL: server.URL}, nil))

	release, err := gw.ReleaseEscrow(context.Background(), txnID)

	require.NoError(t, err)
	assert.Equal(t, "released", release.Detail)
	assert.Equal(t, txnID, release.TransactionID)
}

func TestNewPaymentGateway_Modes(t *testing.T) {
	gw, err := NewPaymentGateway(models.PaymentConfig{}, nil)
	require.NoError(t, err)
	assert.IsType(t, &MockPaymentGateway{}, gw)

	_, err = NewPaymentGateway(models.PaymentConfig{Mode: "http"}, nil)
	assert.Error(t, err)

	_, err = NewPaymentGateway(models.PaymentConfig{Mode: "stripe"}, nil)
	assert.Error(t, err)
}
