package models

import "time"

// Config represents application configuration
type Config struct {
	App           AppConfig
	Server        ServerConfig
	Database      DatabaseConfig
	Redis         RedisConfig
	NATS          NATSConfig
	NSQ           NSQConfig
	Kafka         KafkaConfig
	JWT           JWTConfig
	NewRelic      NewRelicConfig
	Logger        LoggerConfig
	Payment       PaymentConfig
	Locker        LockerConfig
	Webhook       WebhookConfig
	Transactions  TransactionsConfig
	Notifications NotificationsConfig
}

// AppConfig contains application-specific configuration
type AppConfig struct {
	Name        string
	Environment string
	Debug       bool
	Version     string
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Host            string
	Port            int
	ReadTimeout     int
	WriteTimeout    int
	ShutdownTimeout int
}

// DatabaseConfig contains database connection configuration
type DatabaseConfig struct {
	Driver    string
	Host      string
	Port      int
	Username  string
	Password  string
	Database  string
	SSLMode   string
	MaxConns  int
	IdleConns int
}

// RedisConfig contains Redis connection configuration
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
	PoolSize int
}

// NATSConfig contains NATS connection configuration
type NATSConfig struct {
	URL string
}

// NSQConfig contains NSQ producer and lookup addresses
type NSQConfig struct {
	NSQDAddress       string
	LookupdAddress    string
	MaxInFlight       int
	MaxAttempts       int
	NotificationTopic string
	Channel           string
}

// KafkaConfig contains the lifecycle event stream settings
type KafkaConfig struct {
	Enabled  bool
	Brokers  []string
	Topic    string
	ClientID string
}

// JWTConfig contains JWT authentication configuration
type JWTConfig struct {
	Secret     string
	Expiration int // in minutes
	Issuer     string
}

// NewRelicConfig contains New Relic APM settings
type NewRelicConfig struct {
	LicenseKey   string
	AppName      string
	Enabled      bool
	LogsEnabled  bool
	LogsEndpoint string
	LogsAPIKey   string
	ForwardLogs  bool
}

// LoggerConfig contains logger output settings
type LoggerConfig struct {
	Level      string
	FilePath   string
	MaxSize    int64
	MaxAge     int
	MaxBackups int
	Compress   bool
	Type       string
}

// PaymentConfig selects and configures the payment provider
type PaymentConfig struct {
	Mode    string // mock or http
	BaseURL string
	APIKey  string
	Expiry  time.Duration
	Timeout time.Duration
}

// LockerConfig selects and configures the locker hardware bridge
type LockerConfig struct {
	Mode         string // simulate or http
	BaseURL      string
	Timeout      time.Duration
	RegistryFile string
}

// WebhookConfig holds the shared secrets expected from locker devices and the payment provider
type WebhookConfig struct {
	DeviceToken   string
	PaymentSecret string
}

// TransactionsConfig contains lifecycle engine tunables
type TransactionsConfig struct {
	PickupWindow   time.Duration
	MaxOTPAttempts int
	SweepInterval  time.Duration
	SweepBatchSize int
	ProofDir       string
	MaxProofBytes  int64
}

// NotificationsConfig selects the notification queue backend
type NotificationsConfig struct {
	Broker       string // nats or nsq
	DefaultTitle string
}
