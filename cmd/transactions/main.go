package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/nats-io/nats.go/jetstream"
	"github.com/newrelic/go-agent/v3/integrations/nrecho-v4"
	"github.com/piresc/smartlocker/internal/pkg/config"
	"github.com/piresc/smartlocker/internal/pkg/database"
	"github.com/piresc/smartlocker/internal/pkg/health"
	httpclient "github.com/piresc/smartlocker/internal/pkg/http"
	"github.com/piresc/smartlocker/internal/pkg/kafka"
	"github.com/piresc/smartlocker/internal/pkg/logger"
	"github.com/piresc/smartlocker/internal/pkg/middleware"
	natspkg "github.com/piresc/smartlocker/internal/pkg/nats"
	nrpkg "github.com/piresc/smartlocker/internal/pkg/newrelic"
	nsqpkg "github.com/piresc/smartlocker/internal/pkg/nsq"
	"github.com/piresc/smartlocker/internal/pkg/server"
	"github.com/piresc/smartlocker/internal/utils"
	"github.com/piresc/smartlocker/services/transactions"
	"github.com/piresc/smartlocker/services/transactions/gateway"
	"github.com/piresc/smartlocker/services/transactions/handler"
	"github.com/piresc/smartlocker/services/transactions/repository"
	"github.com/piresc/smartlocker/services/transactions/usecase"
	"github.com/piresc/smartlocker/services/transactions/worker"
	"go.uber.org/zap"
)

func main() {
	appName := "transactions-service"
	configPath := "config/transactions.env"
	configs := config.InitConfig(configPath)

	// Initialize New Relic and Zap logger
	nrApp := nrpkg.InitNewRelic(configs)
	if nrApp != nil {
		if err := nrApp.WaitForConnection(10 * time.Second); err != nil {
			log.Printf("Warning: New Relic connection timeout: %v", err)
		} else {
			log.Println("New Relic connection established")
		}
	}

	zapLogger, err := logger.InitZapLoggerFromConfig(configs, nrApp)
	if err != nil {
		log.Fatalf("Failed to create Zap logger: %v", err)
	}
	defer zapLogger.Close()

	zapLogger.Info("Starting application",
		zap.String("app", appName),
		zap.String("version", configs.App.Version),
		zap.String("environment", configs.App.Environment),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Initialize PostgreSQL database connection
	postgresClient, err := database.NewPostgresClient(configs.Database)
	if err != nil {
		zapLogger.Fatal("Failed to connect to PostgreSQL", zap.Error(err))
	}

	// Initialize Redis client
	redisClient, err := database.NewRedisClient(configs.Redis)
	if err != nil {
		zapLogger.Fatal("Failed to connect to Redis", zap.Error(err))
	}

	healthService := health.NewHealthService(zapLogger)
	healthService.AddChecker("postgres", health.NewPostgresHealthChecker(postgresClient))
	healthService.AddChecker("redis", health.NewRedisHealthChecker(redisClient))

	// Initialize the notification broker
	broker, err := gateway.NormalizeBroker(configs.Notifications.Broker)
	if err != nil {
		zapLogger.Fatal("Invalid notification broker", zap.Error(err))
	}

	var (
		notifier    transactions.NotificationGW
		natsClient  *natspkg.Client
		nsqProducer *nsqpkg.Producer
	)
	switch broker {
	case gateway.BrokerNSQ:
		nsqProducer, err = nsqpkg.NewProducer(configs.NSQ.NSQDAddress)
		if err != nil {
			zapLogger.Fatal("Failed to connect to NSQ", zap.Error(err))
		}
		notifier = gateway.NewNSQNotificationGateway(nsqProducer, configs.NSQ.NotificationTopic, zapLogger)
		healthService.AddChecker("nsq", health.NewPingChecker(nsqProducer))
	default:
		natsClient, err = natspkg.NewClient(configs.NATS.URL)
		if err != nil {
			zapLogger.Fatal("Failed to connect to NATS", zap.Error(err))
		}
		_, err = natsClient.CreateStream(ctx, natspkg.NotificationStream(jetstream.FileStorage))
		if err != nil {
			zapLogger.Fatal("Failed to ensure notification stream", zap.Error(err))
		}
		notifier = gateway.NewNATSNotificationGateway(natsClient, zapLogger)
		healthService.AddChecker("nats", health.NewNATSHealthChecker(natsClient))
	}

	// Transaction event stream
	var (
		events        transactions.EventGW = gateway.NoopEventGateway{}
		kafkaProducer *kafka.Producer
	)
	if configs.Kafka.Enabled {
		kafkaProducer, err = kafka.NewProducer(configs.Kafka)
		if err != nil {
			zapLogger.Fatal("Failed to connect to Kafka", zap.Error(err))
		}
		events = gateway.NewKafkaEventGateway(kafkaProducer, configs.Kafka.Topic)
	}

	// Initialize repository
	transactionRepo := repository.NewTransactionRepository(postgresClient.GetDB())
	cacheRepo := repository.NewCacheRepository(redisClient)

	if err := seedLockers(ctx, configs.Locker.RegistryFile, transactionRepo); err != nil {
		zapLogger.Fatal("Failed to seed locker registry", zap.Error(err))
	}

	// Initialize gateways
	paymentGW, err := gateway.NewPaymentGateway(configs.Payment, zapLogger)
	if err != nil {
		zapLogger.Fatal("Failed to initialize payment gateway", zap.Error(err))
	}
	lockerGW, err := gateway.NewLockerGateway(configs.Locker, zapLogger)
	if err != nil {
		zapLogger.Fatal("Failed to initialize locker gateway", zap.Error(err))
	}
	// Open breakers on the HTTP adapters fail readiness
	for name, gw := range map[string]interface{}{"payment-gateway": paymentGW, "locker-hardware": lockerGW} {
		if hc, ok := gw.(interface{ Client() *httpclient.Client }); ok {
			healthService.AddChecker(name, hc.Client().Breaker())
		}
	}
	proofStore, err := gateway.NewFileProofStore(configs.Transactions.ProofDir)
	if err != nil {
		zapLogger.Fatal("Failed to initialize payment proof store", zap.Error(err))
	}

	// Initialize UseCase
	transactionUC := usecase.NewTransactionUC(configs.Transactions, transactionRepo, cacheRepo, usecase.Gateways{
		Payment:  paymentGW,
		Locker:   lockerGW,
		Notifier: notifier,
		Events:   events,
		Proofs:   proofStore,
	})

	// Initialize Echo router
	e := echo.New()
	e.HideBanner = true
	e.Validator = utils.NewRequestValidator()

	e.Use(middleware.PanicRecoveryWithZapMiddleware(zapLogger))
	e.Use(echomw.RequestID())
	if nrApp != nil {
		e.Use(nrecho.Middleware(nrApp))
	}
	e.Use(logger.ZapEchoMiddleware(zapLogger))

	health.RegisterEnhancedHealthEndpoints(e, appName, configs.App.Version, healthService)

	handler.NewHandler(transactionUC, configs, redisClient).RegisterRoutes(e)

	// Pickup expiry sweep
	sweeper := worker.NewPickupSweeper(transactionUC, cacheRepo, nrApp, configs.Transactions.SweepInterval)
	go sweeper.Run(ctx)

	srv := server.NewGracefulServer(e, zapLogger, configs.Server.Port, time.Duration(configs.Server.ShutdownTimeout)*time.Second)
	// Cleanup runs in reverse order, so the stores close last
	srv.OnShutdown("postgres", func(context.Context) error { return postgresClient.Close() })
	srv.OnShutdown("redis", func(context.Context) error { return redisClient.Close() })
	if natsClient != nil {
		srv.OnShutdown("nats", func(context.Context) error { natsClient.Close(); return nil })
	}
	if nsqProducer != nil {
		srv.OnShutdown("nsq", func(context.Context) error { nsqProducer.Stop(); return nil })
	}
	if kafkaProducer != nil {
		srv.OnShutdown("kafka", func(context.Context) error { return kafkaProducer.Close() })
	}

	if err := srv.Run(ctx); err != nil {
		zapLogger.Fatal("Server stopped with error",
			zap.String("app", appName),
			zap.Error(err),
		)
	}
}

// seedLockers upserts every locker listed in the registry file
func seedLockers(ctx context.Context, path string, repo *repository.TransactionRepo) error {
	if path == "" {
		logger.Warn("No locker registry file configured, skipping seed")
		return nil
	}
	registry, err := config.LoadLockerRegistry(path)
	if err != nil {
		return err
	}
	for i := range registry.Lockers {
		locker := registry.Lockers[i]
		if err := repo.UpsertLocker(ctx, &locker); err != nil {
			return err
		}
	}
	logger.Info("Locker registry seeded", logger.Int("lockers", len(registry.Lockers)))
	return nil
}
