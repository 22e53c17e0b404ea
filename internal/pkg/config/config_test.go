package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/piresc/smartlocker/internal/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigFromEnv_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", "test")

	cfg := loadConfigFromEnv()

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "mock", cfg.Payment.Mode)
	assert.Equal(t, 30*time.Minute, cfg.Payment.Expiry)
	assert.Equal(t, 24*time.Hour, cfg.Transactions.PickupWindow)
	assert.Equal(t, 5, cfg.Transactions.MaxOTPAttempts)
	assert.Equal(t, int64(5*1024*1024), cfg.Transactions.MaxProofBytes)
	assert.Equal(t, "nats", cfg.Notifications.Broker)
	assert.Equal(t, "SmartLocker Update", cfg.Notifications.DefaultTitle)
	assert.False(t, cfg.Kafka.Enabled)
}

func TestLoadConfigFromEnv_Overrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9001")
	t.Setenv("PICKUP_WINDOW", "2h")
	t.Setenv("KAFKA_ENABLED", "true")
	t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092,")
	t.Setenv("SMARTLOCKER_DEVICE_TOKEN", "device-secret")
	t.Setenv("QRIS_WEBHOOK_SECRET", "qris-secret")

	cfg := loadConfigFromEnv()

	assert.Equal(t, 9001, cfg.Server.Port)
	assert.Equal(t, 2*time.Hour, cfg.Transactions.PickupWindow)
	assert.True(t, cfg.Kafka.Enabled)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, "device-secret", cfg.Webhook.DeviceToken)
	assert.Equal(t, "qris-secret", cfg.Webhook.PaymentSecret)
}

func TestTypedGetters_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("TEST_BAD_INT", "abc")
	t.Setenv("TEST_BAD_BOOL", "maybe")
	t.Setenv("TEST_BAD_DURATION", "ten minutes")

	assert.Equal(t, 7, GetEnvAsInt("TEST_BAD_INT", 7))
	assert.Equal(t, int64(7), GetEnvAsInt64("TEST_BAD_INT", 7))
	assert.True(t, GetEnvAsBool("TEST_BAD_BOOL", true))
	assert.Equal(t, time.Second, GetEnvAsDuration("TEST_BAD_DURATION", time.Second))
	assert.Equal(t, "fallback", GetEnv("TEST_UNSET_KEY", "fallback"))
}

func TestParseLockerRegistry(t *testing.T) {
	data := []byte(`
lockers:
  - number: "M-01"
    type: marketplace
    device_token: tok-1
    control_pin: V1
  - number: "M-02"
    type: MARKETPLACE
    status: maintenance
    control_pin: V2
  - number: "S-01"
    type: storage
`)

	registry, err := ParseLockerRegistry(data)
	require.NoError(t, err)
	require.Len(t, registry.Lockers, 3)

	first := registry.Lockers[0]
	assert.Equal(t, models.LockerTypeMarketplace, first.Type)
	assert.Equal(t, models.LockerStatusAvailable, first.Status)
	assert.Equal(t, "tok-1", first.DeviceToken)
	assert.Equal(t, "V1", first.ControlPin)
	assert.NotEqual(t, first.ID, registry.Lockers[1].ID)
	assert.Equal(t, models.LockerStatusMaintenance, registry.Lockers[1].Status)
	assert.Equal(t, models.LockerTypeStorage, registry.Lockers[2].Type)

	again, err := ParseLockerRegistry(data)
	require.NoError(t, err)
	assert.Equal(t, first.ID, again.Lockers[0].ID, "ids derived from numbers are stable")
}

func TestParseLockerRegistry_Errors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"missing number", "lockers:\n  - type: marketplace\n"},
		{"duplicate number", "lockers:\n  - number: A\n  - number: A\n"},
		{"unknown type", "lockers:\n  - number: A\n    type: fridge\n"},
		{"unknown status", "lockers:\n  - number: A\n    status: broken\n"},
		{"malformed yaml", "lockers: [\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseLockerRegistry([]byte(tt.data))
			assert.Error(t, err)
		})
	}
}

func TestLoadLockerRegistry_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lockers.yaml")
	require.NoError(t, os.WriteFile(path, []byte("lockers:\n  - number: M-07\n"), 0o600))

	registry, err := LoadLockerRegistry(path)
	require.NoError(t, err)
	require.Len(t, registry.Lockers, 1)
	assert.Equal(t, "M-07", registry.Lockers[0].Number)

	_, err = LoadLockerRegistry(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
