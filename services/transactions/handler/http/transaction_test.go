package http

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/piresc/smartlocker/internal/pkg/apperror"
	"github.com/piresc/smartlocker/internal/pkg/middleware"
	"github.com/piresc/smartlocker/internal/pkg/models"
	"github.com/piresc/smartlocker/internal/utils"
	"github.com/piresc/smartlocker/services/transactions"
	"github.com/piresc/smartlocker/services/transactions/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngBytes = append([]byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR"), make([]byte, 32)...)

func newContext(method, target string, body []byte, actor *models.Actor) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = utils.NewRequestValidator()
	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if actor != nil {
		c.Set(middleware.ContextKeyActor, *actor)
	}
	return c, rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func TestTransactionHandler_CreateTransaction(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockUC := mocks.NewMockTransactionUC(ctrl)
	handler := NewTransactionHandler(mockUC, 0)
	buyer := models.Actor{UserID: uuid.New(), Role: models.RoleBuyer}
	productID := uuid.New()

	mockUC.EXPECT().
		CreateTransaction(gomock.Any(), buyer, models.CreateTransactionRequest{ProductID: productID, Quantity: 2}).
		Return(&models.CreateTransactionResponse{
			Transaction: &models.Transaction{ID: uuid.New(), Status: models.TransactionStatusPending},
			QRISPayload: "000201",
		}, nil)

	body, _ := json.Marshal(map[string]interface{}{"product_id": productID, "quantity": 2})
	c, rec := newContext(http.MethodPost, "/api/v1/transactions/create", body, &buyer)

	err := handler.CreateTransaction(c)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusCreated, rec.Code)
	resp := decode(t, rec)
	assert.Equal(t, true, resp["success"])
}

func TestTransactionHandler_CreateTransaction_MissingProduct(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	handler := NewTransactionHandler(mocks.NewMockTransactionUC(ctrl), 0)
	buyer := models.Actor{UserID: uuid.New(), Role: models.RoleBuyer}
	c, rec := newContext(http.MethodPost, "/", []byte(`{"quantity":1}`), &buyer)

	err := handler.CreateTransaction(c)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decode(t, rec)["error"], "product_id is required")
}

func TestTransactionHandler_ErrorKinds(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		kind   string
	}{
		{name: "authorization", err: apperror.Authorization("only the seller can approve"), status: http.StatusForbidden, kind: "AUTHORIZATION"},
		{name: "state conflict", err: apperror.StateConflict("transaction is PENDING"), status: http.StatusConflict, kind: "STATE_CONFLICT"},
		{name: "not found", err: apperror.NotFound("transaction not found"), status: http.StatusNotFound, kind: "NOT_FOUND"},
		{name: "dependency", err: apperror.Dependency(nil, "payment provider unavailable"), status: http.StatusServiceUnavailable, kind: "DEPENDENCY"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockUC := mocks.NewMockTransactionUC(ctrl)
			handler := NewTransactionHandler(mockUC, 0)
			seller := models.Actor{UserID: uuid.New(), Role: models.RoleOwner}
			id := uuid.New()
			mockUC.EXPECT().Approve(gomock.Any(), seller, id).Return(nil, tt.err)

			c, rec := newContext(http.MethodPost, "/", nil, &seller)
			c.SetParamNames("id")
			c.SetParamValues(id.String())

			err := handler.Approve(c)

			assert.NoError(t, err)
			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, tt.kind, decode(t, rec)["kind"])
		})
	}
}

func TestTransactionHandler_InvalidID(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	handler := NewTransactionHandler(mocks.NewMockTransactionUC(ctrl), 0)
	seller := models.Actor{UserID: uuid.New(), Role: models.RoleOwner}
	c, rec := newContext(http.MethodPost, "/", nil, &seller)
	c.SetParamNames("id")
	c.SetParamValues("not-a-uuid")

	err := handler.GenerateOTP(c)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestTransactionHandler_MissingActor(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	handler := NewTransactionHandler(mocks.NewMockTransactionUC(ctrl), 0)
	c, rec := newContext(http.MethodGet, "/", nil, nil)

	err := handler.ListTransactions(c)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestTransactionHandler_ListTransactions_StatusFilter(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockUC := mocks.NewMockTransactionUC(ctrl)
	handler := NewTransactionHandler(mockUC, 0)
	buyer := models.Actor{UserID: uuid.New(), Role: models.RoleBuyer}

	mockUC.EXPECT().ListTransactions(gomock.Any(), buyer, models.TransactionFilter{
		Statuses: []models.TransactionStatus{models.TransactionStatusEscrow, models.TransactionStatusAwaitingPickup},
		Limit:    20,
	}).Return([]*models.Transaction{}, nil)

	c, rec := newContext(http.MethodGet, "/?status=paid,awaiting_pickup&limit=20", nil, &buyer)
	err := handler.ListTransactions(c)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)

	c, rec = newContext(http.MethodGet, "/?status=SHIPPED", nil, &buyer)
	err = handler.ListTransactions(c)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestTransactionHandler_Shipping(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockUC := mocks.NewMockTransactionUC(ctrl)
	handler := NewTransactionHandler(mockUC, 0)
	buyer := models.Actor{UserID: uuid.New(), Role: models.RoleBuyer}
	id := uuid.New()
	req := models.ShippingUpdateRequest{BuyerFullName: "Budi", ShippingAddress: "Jl. Sudirman 1", BuyerPhoneNumber: "0812"}

	mockUC.EXPECT().UpdateShipping(gomock.Any(), buyer, id, req, transactions.CapabilityBuyer).
		Return(&models.Transaction{ID: id}, nil)

	body, _ := json.Marshal(req)
	c, rec := newContext(http.MethodPost, "/", body, &buyer)
	c.SetParamNames("id")
	c.SetParamValues(id.String())

	err := handler.BuyerShipping(c)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func multipartProof(t *testing.T, data []byte) (*bytes.Buffer, string) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fw, err := w.CreateFormFile("payment_proof", "proof.png")
	require.NoError(t, err)
	_, err = fw.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func proofContext(t *testing.T, data []byte, actor models.Actor, id uuid.UUID) (echo.Context, *httptest.ResponseRecorder) {
	body, contentType := multipartProof(t, data)
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", body)
	req.Header.Set(echo.HeaderContentType, contentType)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(middleware.ContextKeyActor, actor)
	c.SetParamNames("id")
	c.SetParamValues(id.String())
	return c, rec
}

func TestTransactionHandler_UploadPaymentProof(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockUC := mocks.NewMockTransactionUC(ctrl)
	handler := NewTransactionHandler(mockUC, 1024)
	buyer := models.Actor{UserID: uuid.New(), Role: models.RoleBuyer}
	id := uuid.New()

	mockUC.EXPECT().UploadPaymentProof(gomock.Any(), buyer, id, gomock.Any()).DoAndReturn(
		func(_ context.Context, _ models.Actor, _ uuid.UUID, upload models.PaymentProofUpload) (*models.Transaction, error) {
			assert.Equal(t, "image/png", upload.ContentType)
			assert.Equal(t, "proof.png", upload.Filename)
			return &models.Transaction{ID: id, Status: models.TransactionStatusNeedVerification}, nil
		})

	c, rec := proofContext(t, pngBytes, buyer, id)
	err := handler.UploadPaymentProof(c)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)

	c, rec = proofContext(t, []byte(strings.Repeat("plain text ", 10)), buyer, id)
	err = handler.UploadPaymentProof(c)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)

	c, rec = proofContext(t, append(pngBytes, make([]byte, 2048)...), buyer, id)
	err = handler.UploadPaymentProof(c)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}

func TestTransactionHandler_ConfirmRetrievalWebhook(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockUC := mocks.NewMockTransactionUC(ctrl)
	handler := NewTransactionHandler(mockUC, 0)
	id := uuid.New()

	gomock.InOrder(
		mockUC.EXPECT().ConfirmRetrieval(gomock.Any(), id).Return(&models.Transaction{ID: id, Status: models.TransactionStatusReleased}, true, nil),
		mockUC.EXPECT().ConfirmRetrieval(gomock.Any(), id).Return(&models.Transaction{ID: id, Status: models.TransactionStatusReleased}, false, nil),
	)

	body, _ := json.Marshal(models.DeviceWebhookRequest{TransactionID: id})

	c, rec := newContext(http.MethodPost, "/", body, nil)
	assert.NoError(t, handler.ConfirmRetrieval(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	c, rec = newContext(http.MethodPost, "/", body, nil)
	assert.NoError(t, handler.ConfirmRetrieval(c))
	assert.Equal(t, http.StatusNoContent, rec.Code)

	c, rec = newContext(http.MethodPost, "/", []byte(`{}`), nil)
	assert.NoError(t, handler.ConfirmRetrieval(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestTransactionHandler_RetrieveItemWrongOTP(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockUC := mocks.NewMockTransactionUC(ctrl)
	handler := NewTransactionHandler(mockUC, 0)
	buyer := models.Actor{UserID: uuid.New(), Role: models.RoleBuyer}
	req := models.RetrieveItemRequest{TransactionID: uuid.New(), OTP: "000000"}

	mockUC.EXPECT().RetrieveItem(gomock.Any(), buyer, req).Return(nil, apperror.Authorization("invalid OTP"))

	body, _ := json.Marshal(req)
	c, rec := newContext(http.MethodPost, "/", body, &buyer)

	err := handler.RetrieveItem(c)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "invalid OTP", decode(t, rec)["error"])
}
