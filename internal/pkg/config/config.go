package config

import (
	"log"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"github.com/piresc/smartlocker/internal/pkg/models"
	"github.com/spf13/viper"
)

var (
	vp     *viper.Viper
	vpOnce sync.Once
)

func source() *viper.Viper {
	vpOnce.Do(func() {
		vp = viper.New()
		vp.AutomaticEnv()
	})
	return vp
}

// InitConfig loads the env file for local runs, overlays an optional CONFIG_FILE and reads every section
func InitConfig(configPath string) *models.Config {
	local := GetEnv("APP_ENV", "local")
	if local == "local" {
		err := godotenv.Load(configPath)
		if err != nil {
			log.Println("error loading config from file", err)
		}
	}

	if file := GetEnv("CONFIG_FILE", ""); file != "" {
		v := source()
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			log.Println("error reading config overlay", err)
		}
	}

	return loadConfigFromEnv()
}

func loadConfigFromEnv() *models.Config {
	configs := &models.Config{}

	// App config
	configs.App.Name = GetEnv("APP_NAME", "smartlocker")
	configs.App.Environment = GetEnv("APP_ENV", "")
	configs.App.Debug = GetEnvAsBool("APP_DEBUG", true)
	configs.App.Version = GetEnv("APP_VERSION", "")

	// Server config
	configs.Server.Host = GetEnv("SERVER_HOST", "")
	configs.Server.Port = GetEnvAsInt("SERVER_PORT", 8080)
	configs.Server.ReadTimeout = GetEnvAsInt("SERVER_READ_TIMEOUT", 30)
	configs.Server.WriteTimeout = GetEnvAsInt("SERVER_WRITE_TIMEOUT", 30)
	configs.Server.ShutdownTimeout = GetEnvAsInt("SERVER_SHUTDOWN_TIMEOUT", 30)

	// Database config
	configs.Database.Driver = GetEnv("DB_DRIVER", "pgx")
	configs.Database.Host = GetEnv("DB_HOST", "")
	configs.Database.Port = GetEnvAsInt("DB_PORT", 5432)
	configs.Database.Username = GetEnv("DB_USERNAME", "")
	configs.Database.Password = GetEnv("DB_PASSWORD", "")
	configs.Database.Database = GetEnv("DB_DATABASE", "")
	configs.Database.SSLMode = GetEnv("DB_SSL_MODE", "disable")
	configs.Database.MaxConns = GetEnvAsInt("DB_MAX_CONNS", 10)
	configs.Database.IdleConns = GetEnvAsInt("DB_IDLE_CONNS", 5)

	// Redis config
	configs.Redis.Host = GetEnv("REDIS_HOST", "")
	configs.Redis.Port = GetEnvAsInt("REDIS_PORT", 6379)
	configs.Redis.Password = GetEnv("REDIS_PASSWORD", "")
	configs.Redis.DB = GetEnvAsInt("REDIS_DB", 0)
	configs.Redis.PoolSize = GetEnvAsInt("REDIS_POOL_SIZE", 10)

	// NATS config
	configs.NATS.URL = GetEnv("NATS_URL", "")

	// NSQ config
	configs.NSQ.NSQDAddress = GetEnv("NSQD_ADDRESS", "127.0.0.1:4150")
	configs.NSQ.LookupdAddress = GetEnv("NSQ_LOOKUPD_ADDRESS", "")
	configs.NSQ.MaxInFlight = GetEnvAsInt("NSQ_MAX_IN_FLIGHT", 10)
	configs.NSQ.MaxAttempts = GetEnvAsInt("NSQ_MAX_ATTEMPTS", 5)
	configs.NSQ.NotificationTopic = GetEnv("NSQ_NOTIFICATION_TOPIC", "notifications.push")
	configs.NSQ.Channel = GetEnv("NSQ_CHANNEL", "notifications-service")

	// Kafka config
	configs.Kafka.Enabled = GetEnvAsBool("KAFKA_ENABLED", false)
	configs.Kafka.Brokers = GetEnvAsSlice("KAFKA_BROKERS", []string{"localhost:9092"})
	configs.Kafka.Topic = GetEnv("KAFKA_TRANSACTION_TOPIC", "transaction.events")
	configs.Kafka.ClientID = GetEnv("KAFKA_CLIENT_ID", "smartlocker-transactions")

	// JWT config
	configs.JWT.Secret = GetEnv("JWT_SECRET", "")
	configs.JWT.Expiration = GetEnvAsInt("JWT_EXPIRATION", 60)
	configs.JWT.Issuer = GetEnv("JWT_ISSUER", "")

	// NewRelic config
	configs.NewRelic.LicenseKey = GetEnv("NEW_RELIC_LICENSE_KEY", "")
	configs.NewRelic.AppName = GetEnv("NEW_RELIC_APP_NAME", "")
	configs.NewRelic.Enabled = GetEnvAsBool("NEW_RELIC_ENABLED", false)
	configs.NewRelic.LogsEnabled = GetEnvAsBool("NEW_RELIC_LOGS_ENABLED", false)
	configs.NewRelic.LogsEndpoint = GetEnv("NEW_RELIC_LOGS_ENDPOINT", "")
	configs.NewRelic.LogsAPIKey = GetEnv("NEW_RELIC_LOGS_API_KEY", "")
	configs.NewRelic.ForwardLogs = GetEnvAsBool("NEW_RELIC_FORWARD_LOGS", false)

	// Logger config
	configs.Logger.Level = GetEnv("LOG_LEVEL", "info")
	configs.Logger.FilePath = GetEnv("LOG_FILE_PATH", "")
	configs.Logger.MaxSize = GetEnvAsInt64("LOG_MAX_SIZE", 100)
	configs.Logger.MaxAge = GetEnvAsInt("LOG_MAX_AGE", 7)
	configs.Logger.MaxBackups = GetEnvAsInt("LOG_MAX_BACKUPS", 3)
	configs.Logger.Compress = GetEnvAsBool("LOG_COMPRESS", true)
	configs.Logger.Type = GetEnv("LOG_TYPE", "stdout")

	// Payment gateway config
	configs.Payment.Mode = GetEnv("PAYMENT_MODE", "mock")
	configs.Payment.BaseURL = GetEnv("PAYMENT_BASE_URL", "")
	configs.Payment.APIKey = GetEnv("PAYMENT_API_KEY", "")
	configs.Payment.Expiry = GetEnvAsDuration("PAYMENT_EXPIRY", 30*time.Minute)
	configs.Payment.Timeout = GetEnvAsDuration("PAYMENT_TIMEOUT", 10*time.Second)

	// Locker hardware config
	configs.Locker.Mode = GetEnv("LOCKER_MODE", "simulate")
	configs.Locker.BaseURL = GetEnv("LOCKER_BASE_URL", "")
	configs.Locker.Timeout = GetEnvAsDuration("LOCKER_TIMEOUT", 5*time.Second)
	configs.Locker.RegistryFile = GetEnv("LOCKER_REGISTRY_FILE", "")

	// Webhook config
	configs.Webhook.DeviceToken = GetEnv("SMARTLOCKER_DEVICE_TOKEN", "")
	configs.Webhook.PaymentSecret = GetEnv("QRIS_WEBHOOK_SECRET", "")

	// Transactions config
	configs.Transactions.PickupWindow = GetEnvAsDuration("PICKUP_WINDOW", 24*time.Hour)
	configs.Transactions.MaxOTPAttempts = GetEnvAsInt("OTP_MAX_ATTEMPTS", 5)
	configs.Transactions.SweepInterval = GetEnvAsDuration("SWEEP_INTERVAL", time.Minute)
	configs.Transactions.SweepBatchSize = GetEnvAsInt("SWEEP_BATCH_SIZE", 100)
	configs.Transactions.ProofDir = GetEnv("PAYMENT_PROOF_DIR", "data/payment-proofs")
	configs.Transactions.MaxProofBytes = GetEnvAsInt64("PAYMENT_PROOF_MAX_BYTES", 5*1024*1024)

	// Notifications config
	configs.Notifications.Broker = GetEnv("NOTIFICATION_BROKER", "nats")
	configs.Notifications.DefaultTitle = GetEnv("NOTIFICATION_DEFAULT_TITLE", "SmartLocker Update")

	return configs
}

// Helper functions to get environment variables with different types
func GetEnv(key, defaultValue string) string {
	value := source().GetString(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func GetEnvAsInt(key string, defaultValue int) int {
	valueStr := GetEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid integer value for %s, using default: %d", key, defaultValue)
		return defaultValue
	}

	return value
}

func GetEnvAsInt64(key string, defaultValue int64) int64 {
	valueStr := GetEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseInt(valueStr, 10, 64)
	if err != nil {
		log.Printf("Warning: Invalid int64 value for %s, using default: %d", key, defaultValue)
		return defaultValue
	}

	return value
}

func GetEnvAsBool(key string, defaultValue bool) bool {
	valueStr := GetEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid boolean value for %s, using default: %v", key, defaultValue)
		return defaultValue
	}

	return value
}

// GetEnvAsDuration accepts Go duration strings such as 30m or 24h
func GetEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := GetEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	value, err := time.ParseDuration(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid duration value for %s, using default: %s", key, defaultValue)
		return defaultValue
	}

	return value
}

// GetEnvAsSlice splits a comma separated value, dropping empty entries
func GetEnvAsSlice(key string, defaultValue []string) []string {
	valueStr := GetEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	var out []string
	for _, part := range strings.Split(valueStr, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
