package models

import (
	"encoding/json"
	"sync"

	"github.com/golang-jwt/jwt/v5"
	"github.com/gorilla/websocket"
)

// WSMessage represents a WebSocket message structure
type WSMessage struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// WSErrorMessage represents an error message sent over WebSocket
type WSErrorMessage struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// WebSocketClient is one authenticated socket held by a user
type WebSocketClient struct {
	ID     string
	UserID string
	Role   string
	Conn   *websocket.Conn

	// gorilla connections allow one concurrent writer
	WriteMu sync.Mutex
}

// AccessClaims are the JWT claims issued to marketplace users
type AccessClaims struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
	Name   string `json:"name,omitempty"`
	Email  string `json:"email,omitempty"`
	jwt.RegisteredClaims
}
