package http

import (
	"encoding/json"

	gorillaws "github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/piresc/smartlocker/internal/pkg/constants"
	"github.com/piresc/smartlocker/internal/pkg/logger"
	"github.com/piresc/smartlocker/internal/pkg/models"
	"github.com/piresc/smartlocker/internal/pkg/websocket"
)

// SocketHandler keeps notification sockets open; pushes come from the queue consumer
type SocketHandler struct {
	manager *websocket.Manager
}

// NewSocketHandler creates a new WebSocket handler
func NewSocketHandler(manager *websocket.Manager) *SocketHandler {
	return &SocketHandler{manager: manager}
}

// HandleWebSocket upgrades the request and answers pings until the client leaves
func (h *SocketHandler) HandleWebSocket(c echo.Context) error {
	return h.manager.HandleConnection(c, func(client *models.WebSocketClient) error {
		logger.Info("WebSocket client connected",
			logger.String("user_id", client.UserID),
			logger.String("role", client.Role))

		for {
			var msg models.WSMessage
			if err := client.Conn.ReadJSON(&msg); err != nil {
				if gorillaws.IsUnexpectedCloseError(err, gorillaws.CloseGoingAway, gorillaws.CloseNormalClosure) {
					logger.Warn("WebSocket read error",
						logger.String("user_id", client.UserID),
						logger.Err(err))
				}
				logger.Info("WebSocket client disconnected", logger.String("user_id", client.UserID))
				return nil
			}

			switch msg.Event {
			case constants.EventPing:
				if err := h.manager.SendMessage(client, constants.EventPong, json.RawMessage(`{}`)); err != nil {
					return nil
				}
			default:
				_ = h.manager.SendErrorMessage(client, "unsupported_event", "notification sockets are push only")
			}
		}
	})
}
