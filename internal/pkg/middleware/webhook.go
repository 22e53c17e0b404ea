package middleware

import (
	"crypto/subtle"

	"github.com/labstack/echo/v4"
	"github.com/piresc/smartlocker/internal/pkg/logger"
	"github.com/piresc/smartlocker/internal/utils"
)

const (
	DeviceTokenHeader      = "X-Device-Token"
	PaymentSignatureHeader = "X-Qris-Signature"
)

// SharedSecretMiddleware admits requests whose header carries the expected secret.
// An empty expected secret rejects every request.
func SharedSecretMiddleware(header, expected string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if expected == "" {
				logger.Warn("Webhook secret not configured, rejecting request",
					logger.String("header", header),
					logger.String("path", c.Path()))
				return utils.ForbiddenResponse(c, "Webhook authentication is not configured")
			}

			provided := c.Request().Header.Get(header)
			if provided == "" {
				return utils.ForbiddenResponse(c, header+" header is required")
			}
			if subtle.ConstantTimeCompare([]byte(provided), []byte(expected)) != 1 {
				return utils.ForbiddenResponse(c, "Invalid "+header)
			}

			return next(c)
		}
	}
}

// DeviceTokenMiddleware guards the locker device webhooks
func DeviceTokenMiddleware(expected string) echo.MiddlewareFunc {
	return SharedSecretMiddleware(DeviceTokenHeader, expected)
}

// PaymentSignatureMiddleware guards the payment provider webhook
func PaymentSignatureMiddleware(expected string) echo.MiddlewareFunc {
	return SharedSecretMiddleware(PaymentSignatureHeader, expected)
}
