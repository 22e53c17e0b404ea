package middleware

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/piresc/smartlocker/internal/pkg/logger"
	"github.com/piresc/smartlocker/internal/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func bufferedLogger(buf *bytes.Buffer) *logger.ZapLogger {
	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(zap.NewDevelopmentEncoderConfig()),
		zapcore.AddSync(buf),
		zapcore.DebugLevel,
	)
	return &logger.ZapLogger{Logger: zap.New(core)}
}

func TestPanicRecoveryWithZapMiddleware(t *testing.T) {
	var logBuffer bytes.Buffer
	zapLogger := bufferedLogger(&logBuffer)
	buyerID := uuid.New()

	tests := []struct {
		name         string
		panicValue   interface{}
		setupContext func(c echo.Context)
		expectInLogs []string
	}{
		{
			name:         "string panic",
			panicValue:   "locker bridge exploded",
			expectInLogs: []string{"locker bridge exploded", "stack_trace", "anonymous"},
		},
		{
			name:         "error panic",
			panicValue:   fmt.Errorf("nil transaction"),
			expectInLogs: []string{"nil transaction", "*errors.errorString"},
		},
		{
			name:       "panic with actor",
			panicValue: "actor panic",
			setupContext: func(c echo.Context) {
				c.Set(ContextKeyActor, models.Actor{UserID: buyerID, Role: models.RoleBuyer})
			},
			expectInLogs: []string{"actor panic", buyerID.String()},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logBuffer.Reset()
			e := echo.New()
			handler := PanicRecoveryWithZapMiddleware(zapLogger)(func(c echo.Context) error {
				if tt.setupContext != nil {
					tt.setupContext(c)
				}
				panic(tt.panicValue)
			})
			req := httptest.NewRequest(http.MethodPost, "/api/v1/transactions/create", nil)
			req.Header.Set(echo.HeaderXRequestID, "req-1")
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			err := handler(c)

			assert.NoError(t, err)
			assert.Equal(t, http.StatusInternalServerError, rec.Code)
			var response map[string]interface{}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
			assert.Equal(t, "internal server error", response["error"])
			assert.Equal(t, "req-1", response["request_id"])

			logOutput := logBuffer.String()
			assert.Contains(t, logOutput, "Panic recovered during request processing")
			assert.Contains(t, logOutput, "/api/v1/transactions/create")
			for _, expected := range tt.expectInLogs {
				assert.Contains(t, logOutput, expected)
			}
		})
	}
}

func TestPanicRecovery_WithNewRelicTransaction(t *testing.T) {
	var logBuffer bytes.Buffer
	zapLogger := bufferedLogger(&logBuffer)
	app, err := newrelic.NewApplication(
		newrelic.ConfigAppName("test-app"),
		newrelic.ConfigLicense("0000000000000000000000000000000000000000"),
		newrelic.ConfigEnabled(false),
	)
	require.NoError(t, err)

	e := echo.New()
	handler := PanicRecoveryWithZapMiddleware(zapLogger)(func(c echo.Context) error {
		panic("new relic panic test")
	})
	txn := app.StartTransaction("test-transaction")
	req := httptest.NewRequest(http.MethodGet, "/api/v1/products", nil)
	req = req.WithContext(newrelic.NewContext(req.Context(), txn))
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err = handler(c)
	txn.End()

	assert.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, logBuffer.String(), "new relic panic test")
}

func TestPanicRecovery_CommittedResponseUntouched(t *testing.T) {
	var logBuffer bytes.Buffer
	e := echo.New()
	handler := PanicRecoveryWithZapMiddleware(bufferedLogger(&logBuffer))(func(c echo.Context) error {
		_ = c.NoContent(http.StatusAccepted)
		panic("late panic")
	})
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

	assert.NoError(t, handler(c))

	assert.Equal(t, http.StatusAccepted, rec.Code)
	assert.Contains(t, logBuffer.String(), "late panic")
}

func TestPanicRecovery_RequiresLogger(t *testing.T) {
	assert.Panics(t, func() {
		PanicRecoveryWithZapMiddleware(nil)
	})
}

func TestGetCaller(t *testing.T) {
	caller := getCaller(1)

	assert.Contains(t, caller, "panic_recovery_test.go")
	assert.Contains(t, caller, "TestGetCaller")
}
