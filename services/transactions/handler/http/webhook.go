package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/piresc/smartlocker/internal/pkg/logger"
	"github.com/piresc/smartlocker/internal/pkg/models"
	nrpkg "github.com/piresc/smartlocker/internal/pkg/newrelic"
	"github.com/piresc/smartlocker/internal/utils"
)

// ConfirmDeposit is called by the locker device once the seller closed the door
func (h *TransactionHandler) ConfirmDeposit(c echo.Context) error {
	txn := nrpkg.FromEchoContext(c)
	nrpkg.SetTransactionName(txn, "Webhooks.ConfirmDeposit")

	var req models.DeviceWebhookRequest
	if err := c.Bind(&req); err != nil {
		return utils.BadRequestResponse(c, "Invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return utils.BadRequestResponse(c, err.Error())
	}

	result, changed, err := h.transactionUC.ConfirmDeposit(c.Request().Context(), req.TransactionID)
	return h.webhookReply(c, "deposit", result, changed, err)
}

// ConfirmRetrieval is called by the locker device once the buyer took the item
func (h *TransactionHandler) ConfirmRetrieval(c echo.Context) error {
	txn := nrpkg.FromEchoContext(c)
	nrpkg.SetTransactionName(txn, "Webhooks.ConfirmRetrieval")

	var req models.DeviceWebhookRequest
	if err := c.Bind(&req); err != nil {
		return utils.BadRequestResponse(c, "Invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return utils.BadRequestResponse(c, err.Error())
	}

	result, changed, err := h.transactionUC.ConfirmRetrieval(c.Request().Context(), req.TransactionID)
	return h.webhookReply(c, "retrieval", result, changed, err)
}

// ConfirmPayment is called by the payment provider when a QRIS payment settles
func (h *TransactionHandler) ConfirmPayment(c echo.Context) error {
	txn := nrpkg.FromEchoContext(c)
	nrpkg.SetTransactionName(txn, "Webhooks.ConfirmPayment")

	var req models.PaymentWebhookRequest
	if err := c.Bind(&req); err != nil {
		return utils.BadRequestResponse(c, "Invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return utils.BadRequestResponse(c, err.Error())
	}

	result, changed, err := h.transactionUC.ConfirmPayment(c.Request().Context(), req)
	return h.webhookReply(c, "payment", result, changed, err)
}

// webhookReply answers 204 when the event did not apply to the current status
func (h *TransactionHandler) webhookReply(c echo.Context, event string, result *models.Transaction, changed bool, err error) error {
	ctx := c.Request().Context()
	if err != nil {
		logger.WarnCtx(ctx, "Webhook rejected",
			logger.String("event", event),
			logger.Err(err))
		nrpkg.NoticeTransactionError(nrpkg.FromEchoContext(c), err)
		return utils.HandleError(c, err)
	}
	if !changed {
		logger.InfoCtx(ctx, "Webhook ignored for current status", logger.String("event", event))
		return utils.NoContentResponse(c)
	}
	return utils.SuccessResponse(c, http.StatusOK, "Webhook processed", result)
}
