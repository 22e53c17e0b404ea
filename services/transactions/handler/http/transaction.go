package http

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/piresc/smartlocker/internal/pkg/logger"
	"github.com/piresc/smartlocker/internal/pkg/middleware"
	"github.com/piresc/smartlocker/internal/pkg/models"
	nrpkg "github.com/piresc/smartlocker/internal/pkg/newrelic"
	"github.com/piresc/smartlocker/internal/utils"
	"github.com/piresc/smartlocker/services/transactions"
)

// TransactionHandler handles HTTP requests for the transaction lifecycle
type TransactionHandler struct {
	transactionUC transactions.TransactionUC
	maxProofBytes int64
}

// NewTransactionHandler creates a new transaction HTTP handler
func NewTransactionHandler(transactionUC transactions.TransactionUC, maxProofBytes int64) *TransactionHandler {
	if maxProofBytes <= 0 {
		maxProofBytes = 5 << 20
	}
	return &TransactionHandler{
		transactionUC: transactionUC,
		maxProofBytes: maxProofBytes,
	}
}

// ListTransactions returns the caller's purchases or sales
func (h *TransactionHandler) ListTransactions(c echo.Context) error {
	txn := nrpkg.FromEchoContext(c)
	nrpkg.SetTransactionName(txn, "Transactions.List")

	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		return utils.UnauthorizedResponse(c, "")
	}

	filter := models.TransactionFilter{
		Limit:  queryInt(c, "limit"),
		Offset: queryInt(c, "offset"),
	}
	if raw := c.QueryParam("status"); raw != "" {
		for _, part := range strings.Split(raw, ",") {
			status, ok := models.ParseTransactionStatus(part)
			if !ok {
				return utils.BadRequestResponse(c, "Unknown status: "+part)
			}
			filter.Statuses = append(filter.Statuses, status)
		}
	}

	result, err := h.transactionUC.ListTransactions(c.Request().Context(), actor, filter)
	if err != nil {
		nrpkg.NoticeTransactionError(txn, err)
		return utils.HandleError(c, err)
	}
	return utils.SuccessResponse(c, http.StatusOK, "", result)
}

// GetTransaction returns one transaction to a participant
func (h *TransactionHandler) GetTransaction(c echo.Context) error {
	txn := nrpkg.FromEchoContext(c)
	nrpkg.SetTransactionName(txn, "Transactions.Get")

	return h.withTransaction(c, func(actor models.Actor, id uuid.UUID) (interface{}, error) {
		return h.transactionUC.GetTransaction(c.Request().Context(), actor, id)
	}, "")
}

// CreateTransaction starts a purchase and returns its payment session
func (h *TransactionHandler) CreateTransaction(c echo.Context) error {
	txn := nrpkg.FromEchoContext(c)
	nrpkg.SetTransactionName(txn, "Transactions.Create")

	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		return utils.UnauthorizedResponse(c, "")
	}

	var req models.CreateTransactionRequest
	if err := c.Bind(&req); err != nil {
		return utils.BadRequestResponse(c, "Invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return utils.BadRequestResponse(c, err.Error())
	}

	resp, err := h.transactionUC.CreateTransaction(c.Request().Context(), actor, req)
	if err != nil {
		logger.WarnCtx(c.Request().Context(), "Failed to create transaction",
			logger.String("product_id", req.ProductID.String()),
			logger.String("buyer_id", actor.UserID.String()),
			logger.Err(err))
		nrpkg.NoticeTransactionError(txn, err)
		return utils.HandleError(c, err)
	}

	nrpkg.AddTransactionAttribute(txn, "transaction.id", resp.Transaction.ID.String())
	return utils.SuccessResponse(c, http.StatusCreated, "Transaction created", resp)
}

// UploadPaymentProof accepts the multipart payment_proof image
func (h *TransactionHandler) UploadPaymentProof(c echo.Context) error {
	txn := nrpkg.FromEchoContext(c)
	nrpkg.SetTransactionName(txn, "Transactions.UploadPaymentProof")

	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		return utils.UnauthorizedResponse(c, "")
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return utils.BadRequestResponse(c, "Invalid transaction ID")
	}

	upload, status, msg := readProof(c, h.maxProofBytes)
	if status != 0 {
		return utils.ErrorResponseHandler(c, status, msg)
	}

	result, err := h.transactionUC.UploadPaymentProof(c.Request().Context(), actor, id, upload)
	if err != nil {
		nrpkg.NoticeTransactionError(txn, err)
		return utils.HandleError(c, err)
	}
	return utils.SuccessResponse(c, http.StatusOK, "Payment proof uploaded", result)
}

// Approve moves a verified payment into escrow
func (h *TransactionHandler) Approve(c echo.Context) error {
	nrpkg.SetTransactionName(nrpkg.FromEchoContext(c), "Transactions.Approve")
	return h.withTransaction(c, func(actor models.Actor, id uuid.UUID) (interface{}, error) {
		return h.transactionUC.Approve(c.Request().Context(), actor, id)
	}, "Payment approved")
}

// Reject declines the uploaded payment proof
func (h *TransactionHandler) Reject(c echo.Context) error {
	nrpkg.SetTransactionName(nrpkg.FromEchoContext(c), "Transactions.Reject")
	return h.withTransaction(c, func(actor models.Actor, id uuid.UUID) (interface{}, error) {
		return h.transactionUC.Reject(c.Request().Context(), actor, id)
	}, "Payment rejected")
}

// GenerateOTP issues the pickup code
func (h *TransactionHandler) GenerateOTP(c echo.Context) error {
	nrpkg.SetTransactionName(nrpkg.FromEchoContext(c), "Transactions.GenerateOTP")
	return h.withTransaction(c, func(actor models.Actor, id uuid.UUID) (interface{}, error) {
		return h.transactionUC.GenerateOTP(c.Request().Context(), actor, id)
	}, "OTP generated")
}

// Complete closes a released transaction
func (h *TransactionHandler) Complete(c echo.Context) error {
	nrpkg.SetTransactionName(nrpkg.FromEchoContext(c), "Transactions.Complete")
	return h.withTransaction(c, func(actor models.Actor, id uuid.UUID) (interface{}, error) {
		return h.transactionUC.Complete(c.Request().Context(), actor, id)
	}, "Transaction completed")
}

// SellerShipping lets the seller correct the buyer contact fields
func (h *TransactionHandler) SellerShipping(c echo.Context) error {
	nrpkg.SetTransactionName(nrpkg.FromEchoContext(c), "Transactions.SellerShipping")
	return h.updateShipping(c, transactions.CapabilitySeller)
}

// BuyerShipping lets the buyer edit their own contact fields
func (h *TransactionHandler) BuyerShipping(c echo.Context) error {
	nrpkg.SetTransactionName(nrpkg.FromEchoContext(c), "Transactions.BuyerShipping")
	return h.updateShipping(c, transactions.CapabilityBuyer)
}

func (h *TransactionHandler) updateShipping(c echo.Context, capability transactions.Capability) error {
	var req models.ShippingUpdateRequest
	if err := c.Bind(&req); err != nil {
		return utils.BadRequestResponse(c, "Invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return utils.BadRequestResponse(c, err.Error())
	}
	return h.withTransaction(c, func(actor models.Actor, id uuid.UUID) (interface{}, error) {
		return h.transactionUC.UpdateShipping(c.Request().Context(), actor, id, req, capability)
	}, "Shipping details updated")
}

// DepositItem opens a marketplace locker for the seller
func (h *TransactionHandler) DepositItem(c echo.Context) error {
	txn := nrpkg.FromEchoContext(c)
	nrpkg.SetTransactionName(txn, "Transactions.DepositItem")

	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		return utils.UnauthorizedResponse(c, "")
	}

	var req models.DepositItemRequest
	if err := c.Bind(&req); err != nil {
		return utils.BadRequestResponse(c, "Invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return utils.BadRequestResponse(c, err.Error())
	}

	resp, err := h.transactionUC.DepositItem(c.Request().Context(), actor, req)
	if err != nil {
		nrpkg.NoticeTransactionError(txn, err)
		return utils.HandleError(c, err)
	}
	return utils.SuccessResponse(c, http.StatusOK, "Locker opened for deposit", resp)
}

// RetrieveItem opens the locker for a buyer presenting the pickup code
func (h *TransactionHandler) RetrieveItem(c echo.Context) error {
	txn := nrpkg.FromEchoContext(c)
	nrpkg.SetTransactionName(txn, "Transactions.RetrieveItem")

	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		return utils.UnauthorizedResponse(c, "")
	}

	var req models.RetrieveItemRequest
	if err := c.Bind(&req); err != nil {
		return utils.BadRequestResponse(c, "Invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return utils.BadRequestResponse(c, err.Error())
	}

	resp, err := h.transactionUC.RetrieveItem(c.Request().Context(), actor, req)
	if err != nil {
		logger.WarnCtx(c.Request().Context(), "Pickup attempt refused",
			logger.String("transaction_id", req.TransactionID.String()),
			logger.String("buyer_id", actor.UserID.String()),
			logger.Err(err))
		nrpkg.NoticeTransactionError(txn, err)
		return utils.HandleError(c, err)
	}
	return utils.SuccessResponse(c, http.StatusOK, "Locker opened for pickup", resp)
}

// withTransaction resolves the actor and :id path parameter, then renders fn's result
func (h *TransactionHandler) withTransaction(c echo.Context, fn func(actor models.Actor, id uuid.UUID) (interface{}, error), message string) error {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		return utils.UnauthorizedResponse(c, "")
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return utils.BadRequestResponse(c, "Invalid transaction ID")
	}

	result, err := fn(actor, id)
	if err != nil {
		nrpkg.NoticeTransactionError(nrpkg.FromEchoContext(c), err)
		return utils.HandleError(c, err)
	}
	return utils.SuccessResponse(c, http.StatusOK, message, result)
}

func queryInt(c echo.Context, name string) int {
	v, err := strconv.Atoi(c.QueryParam(name))
	if err != nil {
		return 0
	}
	return v
}
