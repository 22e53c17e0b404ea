package middleware

import (
	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	jwtpkg "github.com/piresc/smartlocker/internal/pkg/jwt"
	"github.com/piresc/smartlocker/internal/pkg/models"
	"github.com/piresc/smartlocker/internal/utils"
)

const (
	ContextKeyUserID   = "user_id"
	ContextKeyUserRole = "user_role"
	ContextKeyActor    = "actor"

	tokenContextKey = "token"
)

// JWTAuthMiddleware verifies the bearer token and stores the caller as an actor
func JWTAuthMiddleware(config models.JWTConfig) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		SigningKey:    []byte(config.Secret),
		SigningMethod: echojwt.AlgorithmHS256,
		ContextKey:    tokenContextKey,
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return &models.AccessClaims{}
		},
		SuccessHandler: func(c echo.Context) {
			token, ok := c.Get(tokenContextKey).(*jwt.Token)
			if !ok {
				return
			}
			claims, ok := token.Claims.(*models.AccessClaims)
			if !ok {
				return
			}
			actor, err := jwtpkg.ActorFromClaims(claims)
			if err != nil {
				return
			}
			c.Set(ContextKeyUserID, actor.UserID)
			c.Set(ContextKeyUserRole, actor.Role)
			c.Set(ContextKeyActor, actor)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return utils.UnauthorizedResponse(c, "Invalid or missing token")
		},
	})
}

// RequireActor rejects requests whose token carried unusable claims
func RequireActor(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if _, ok := ActorFromContext(c); !ok {
			return utils.UnauthorizedResponse(c, "Invalid token claims")
		}
		return next(c)
	}
}

// ActorFromContext returns the authenticated actor set by JWTAuthMiddleware
func ActorFromContext(c echo.Context) (models.Actor, bool) {
	actor, ok := c.Get(ContextKeyActor).(models.Actor)
	return actor, ok
}
