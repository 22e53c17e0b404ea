package handler

import (
	"time"

	"github.com/labstack/echo/v4"
	"github.com/piresc/smartlocker/internal/pkg/database"
	"github.com/piresc/smartlocker/internal/pkg/middleware"
	"github.com/piresc/smartlocker/internal/pkg/models"
	"github.com/piresc/smartlocker/services/transactions"
	httpHandler "github.com/piresc/smartlocker/services/transactions/handler/http"
)

const (
	retrieveRateLimit  = 10
	retrieveRatePeriod = time.Minute
)

// Handler combines all handlers for the transactions service
type Handler struct {
	transactionHTTP *httpHandler.TransactionHandler
	cfg             *models.Config
	redis           *database.RedisClient
}

// NewHandler creates a new combined handler
func NewHandler(transactionUC transactions.TransactionUC, cfg *models.Config, redis *database.RedisClient) *Handler {
	return &Handler{
		transactionHTTP: httpHandler.NewTransactionHandler(transactionUC, cfg.Transactions.MaxProofBytes),
		cfg:             cfg,
		redis:           redis,
	}
}

// RegisterRoutes registers all HTTP routes
func (h *Handler) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1", middleware.JWTAuthMiddleware(h.cfg.JWT), middleware.RequireActor)

	products := api.Group("/products")
	products.GET("", h.transactionHTTP.ListProducts)
	products.GET("/:id", h.transactionHTTP.GetProduct)

	txns := api.Group("/transactions")
	txns.GET("", h.transactionHTTP.ListTransactions)
	txns.POST("/create", h.transactionHTTP.CreateTransaction)
	txns.POST("/deposit-item", h.transactionHTTP.DepositItem)
	if h.redis != nil {
		txns.POST("/retrieve-item", h.transactionHTTP.RetrieveItem,
			middleware.UserRateLimiter(retrieveRateLimit, retrieveRatePeriod, h.redis))
	} else {
		txns.POST("/retrieve-item", h.transactionHTTP.RetrieveItem)
	}
	txns.GET("/:id", h.transactionHTTP.GetTransaction)
	txns.POST("/:id/payment-proof", h.transactionHTTP.UploadPaymentProof)
	txns.POST("/:id/approve", h.transactionHTTP.Approve)
	txns.POST("/:id/reject", h.transactionHTTP.Reject)
	txns.POST("/:id/generate-otp", h.transactionHTTP.GenerateOTP)
	txns.POST("/:id/shipping", h.transactionHTTP.SellerShipping)
	txns.POST("/:id/buyer-shipping", h.transactionHTTP.BuyerShipping)
	txns.POST("/:id/complete", h.transactionHTTP.Complete)

	// Device and provider callbacks authenticate with shared secrets instead of user tokens
	webhooks := e.Group("/webhooks")
	device := middleware.DeviceTokenMiddleware(h.cfg.Webhook.DeviceToken)
	webhooks.POST("/confirm-deposit", h.transactionHTTP.ConfirmDeposit, device)
	webhooks.POST("/confirm-retrieval", h.transactionHTTP.ConfirmRetrieval, device)
	webhooks.POST("/payment", h.transactionHTTP.ConfirmPayment,
		middleware.PaymentSignatureMiddleware(h.cfg.Webhook.PaymentSecret))
}
