package jwt

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/piresc/smartlocker/internal/pkg/models"
)

// GenerateToken signs an access token for the given actor
func GenerateToken(actor models.Actor, cfg models.JWTConfig) (string, int64, error) {
	expirationTime := time.Now().Add(time.Duration(cfg.Expiration) * time.Minute)

	claims := &models.AccessClaims{
		UserID: actor.UserID.String(),
		Role:   string(actor.Role),
		Name:   actor.Name,
		Email:  actor.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expirationTime),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    cfg.Issuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(cfg.Secret))
	if err != nil {
		return "", 0, err
	}

	return tokenString, expirationTime.Unix(), nil
}

// ValidateToken parses a signed access token and returns its claims
func ValidateToken(tokenString string, secret string) (*models.AccessClaims, error) {
	claims := &models.AccessClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	return claims, nil
}

// ActorFromClaims converts verified claims into the lifecycle actor
func ActorFromClaims(claims *models.AccessClaims) (models.Actor, error) {
	if claims == nil {
		return models.Actor{}, fmt.Errorf("missing claims")
	}
	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return models.Actor{}, fmt.Errorf("user_id is not a valid UUID: %w", err)
	}
	role := models.NormalizeRole(claims.Role)
	if role == "" {
		return models.Actor{}, fmt.Errorf("missing role claim")
	}
	return models.Actor{
		UserID: userID,
		Role:   role,
		Name:   claims.Name,
		Email:  claims.Email,
	}, nil
}
