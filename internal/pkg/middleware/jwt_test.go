package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	jwtpkg "github.com/piresc/smartlocker/internal/pkg/jwt"
	"github.com/piresc/smartlocker/internal/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTAuthMiddleware(t *testing.T) {
	cfg := models.JWTConfig{Secret: "test-secret", Expiration: 60, Issuer: "smartlocker"}
	sellerID := uuid.New()
	validToken, _, err := jwtpkg.GenerateToken(models.Actor{UserID: sellerID, Role: models.RoleSeller}, cfg)
	require.NoError(t, err)
	foreignToken, _, err := jwtpkg.GenerateToken(models.Actor{UserID: sellerID, Role: models.RoleOwner},
		models.JWTConfig{Secret: "other-secret", Expiration: 60})
	require.NoError(t, err)

	tests := []struct {
		name         string
		header       string
		expectStatus int
	}{
		{name: "valid token", header: "Bearer " + validToken, expectStatus: http.StatusOK},
		{name: "missing header", header: "", expectStatus: http.StatusUnauthorized},
		{name: "wrong scheme", header: "Basic " + validToken, expectStatus: http.StatusUnauthorized},
		{name: "wrong secret", header: "Bearer " + foreignToken, expectStatus: http.StatusUnauthorized},
		{name: "garbage", header: "Bearer not-a-jwt", expectStatus: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			var got models.Actor
			e.GET("/me", func(c echo.Context) error {
				got, _ = ActorFromContext(c)
				return c.NoContent(http.StatusOK)
			}, JWTAuthMiddleware(cfg), RequireActor)
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set(echo.HeaderAuthorization, tt.header)
			}
			rec := httptest.NewRecorder()

			e.ServeHTTP(rec, req)

			assert.Equal(t, tt.expectStatus, rec.Code)
			if tt.expectStatus == http.StatusOK {
				assert.Equal(t, sellerID, got.UserID)
				assert.Equal(t, models.RoleOwner, got.Role)
			}
		})
	}
}

func TestRequireActor_MissingActor(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

	err := RequireActor(func(c echo.Context) error { return c.NoContent(http.StatusOK) })(c)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
