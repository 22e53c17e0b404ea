package handler

import (
	"github.com/labstack/echo/v4"
	"github.com/piresc/smartlocker/internal/pkg/middleware"
	"github.com/piresc/smartlocker/internal/pkg/models"
	"github.com/piresc/smartlocker/internal/pkg/websocket"
	"github.com/piresc/smartlocker/services/notifications"
	httpHandler "github.com/piresc/smartlocker/services/notifications/handler/http"
)

// Handler combines all handlers for the notifications service
type Handler struct {
	notificationHTTP *httpHandler.NotificationHandler
	socketHTTP       *httpHandler.SocketHandler
	cfg              *models.Config
}

// NewHandler creates a new combined handler
func NewHandler(notificationUC notifications.NotificationUC, manager *websocket.Manager, cfg *models.Config) *Handler {
	return &Handler{
		notificationHTTP: httpHandler.NewNotificationHandler(notificationUC),
		socketHTTP:       httpHandler.NewSocketHandler(manager),
		cfg:              cfg,
	}
}

// RegisterRoutes registers all HTTP routes
func (h *Handler) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1", middleware.JWTAuthMiddleware(h.cfg.JWT), middleware.RequireActor)
	api.GET("/notifications", h.notificationHTTP.ListNotifications)

	// The socket authenticates itself so browsers can pass the token as a query parameter
	e.GET("/ws/notifications", h.socketHTTP.HandleWebSocket)
}
