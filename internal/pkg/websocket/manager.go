package websocket

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/piresc/smartlocker/internal/pkg/constants"
	jwtpkg "github.com/piresc/smartlocker/internal/pkg/jwt"
	"github.com/piresc/smartlocker/internal/pkg/logger"
	"github.com/piresc/smartlocker/internal/pkg/models"
)

const writeWait = 10 * time.Second

// Manager tracks live notification sockets per user. A user may hold several.
type Manager struct {
	sync.RWMutex
	clients  map[string]map[string]*models.WebSocketClient
	cfg      models.JWTConfig
	upgrader websocket.Upgrader
}

// NewManager creates a new WebSocket manager
func NewManager(jwtConfig models.JWTConfig) *Manager {
	return &Manager{
		clients: make(map[string]map[string]*models.WebSocketClient),
		cfg:     jwtConfig,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// HandleConnection authenticates, upgrades and registers the socket until handleClient returns
func (m *Manager) HandleConnection(c echo.Context, handleClient func(*models.WebSocketClient) error) error {
	client, err := m.authenticateClient(c)
	if err != nil {
		return err
	}

	ws, err := m.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return err
	}
	defer ws.Close()

	client.Conn = ws
	m.AddClient(client)
	defer m.RemoveClient(client)

	return handleClient(client)
}

// authenticateClient accepts the bearer token from the Authorization header or the token query parameter
func (m *Manager) authenticateClient(c echo.Context) (*models.WebSocketClient, error) {
	tokenString := c.QueryParam("token")
	if authHeader := c.Request().Header.Get(echo.HeaderAuthorization); authHeader != "" {
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			return nil, echo.NewHTTPError(http.StatusUnauthorized, "Invalid authorization format")
		}
		tokenString = parts[1]
	}
	if tokenString == "" {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "Authorization header is required")
	}

	claims, err := jwtpkg.ValidateToken(tokenString, m.cfg.Secret)
	if err != nil {
		logger.Warn("Token validation failed", logger.Err(err))
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "Invalid token")
	}
	actor, err := jwtpkg.ActorFromClaims(claims)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "Invalid token claims")
	}

	return &models.WebSocketClient{
		ID:     uuid.NewString(),
		UserID: actor.UserID.String(),
		Role:   string(actor.Role),
	}, nil
}

// AddClient safely adds a client to the manager
func (m *Manager) AddClient(client *models.WebSocketClient) {
	m.Lock()
	defer m.Unlock()
	sockets, ok := m.clients[client.UserID]
	if !ok {
		sockets = make(map[string]*models.WebSocketClient)
		m.clients[client.UserID] = sockets
	}
	sockets[client.ID] = client
}

// RemoveClient safely removes one socket of a user
func (m *Manager) RemoveClient(client *models.WebSocketClient) {
	m.Lock()
	defer m.Unlock()
	sockets, ok := m.clients[client.UserID]
	if !ok {
		return
	}
	delete(sockets, client.ID)
	if len(sockets) == 0 {
		delete(m.clients, client.UserID)
	}
}

// ConnectionCount returns the number of live sockets held by userID
func (m *Manager) ConnectionCount(userID string) int {
	m.RLock()
	defer m.RUnlock()
	return len(m.clients[userID])
}

// SendMessage writes one event to a client, serialising concurrent writers
func (m *Manager) SendMessage(client *models.WebSocketClient, event string, data interface{}) error {
	if client == nil || client.Conn == nil {
		return nil
	}

	rawData, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("error marshaling message data: %w", err)
	}

	client.WriteMu.Lock()
	defer client.WriteMu.Unlock()
	_ = client.Conn.SetWriteDeadline(time.Now().Add(writeWait))
	return client.Conn.WriteJSON(models.WSMessage{
		Event: event,
		Data:  rawData,
	})
}

// SendErrorMessage sends an error message to a WebSocket client
func (m *Manager) SendErrorMessage(client *models.WebSocketClient, code string, message string) error {
	return m.SendMessage(client, constants.EventError, models.WSErrorMessage{
		Code:    code,
		Message: message,
	})
}

// NotifyUser pushes an event to every socket of userID and returns how many writes succeeded
func (m *Manager) NotifyUser(userID string, event string, data interface{}) int {
	m.RLock()
	sockets := make([]*models.WebSocketClient, 0, len(m.clients[userID]))
	for _, client := range m.clients[userID] {
		sockets = append(sockets, client)
	}
	m.RUnlock()

	delivered := 0
	for _, client := range sockets {
		if err := m.SendMessage(client, event, data); err != nil {
			logger.Warn("Error sending message to client",
				logger.String("user_id", userID),
				logger.String("socket_id", client.ID),
				logger.Err(err))
			continue
		}
		delivered++
	}
	return delivered
}
