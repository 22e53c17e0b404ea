package main

import (
	"context"
	"log"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/nats-io/nats.go/jetstream"
	"github.com/newrelic/go-agent/v3/integrations/nrecho-v4"
	"github.com/piresc/smartlocker/internal/pkg/config"
	"github.com/piresc/smartlocker/internal/pkg/database"
	"github.com/piresc/smartlocker/internal/pkg/health"
	"github.com/piresc/smartlocker/internal/pkg/logger"
	"github.com/piresc/smartlocker/internal/pkg/middleware"
	natspkg "github.com/piresc/smartlocker/internal/pkg/nats"
	nrpkg "github.com/piresc/smartlocker/internal/pkg/newrelic"
	"github.com/piresc/smartlocker/internal/pkg/server"
	wspkg "github.com/piresc/smartlocker/internal/pkg/websocket"
	"github.com/piresc/smartlocker/services/notifications/handler"
	"github.com/piresc/smartlocker/services/notifications/handler/queue"
	"github.com/piresc/smartlocker/services/notifications/repository"
	"github.com/piresc/smartlocker/services/notifications/usecase"
	"go.uber.org/zap"
)

func main() {
	appName := "notifications-service"
	configPath := "config/notifications.env"
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

	healthService := health.NewHealthService(zapLogger)
	healthService.AddChecker("postgres", health.NewPostgresHealthChecker(postgresClient))

	// Initialize repository, websocket fan-out and UseCase
	notificationRepo := repository.NewNotificationRepository(postgresClient.GetDB())
	manager := wspkg.NewManager(configs.JWT)
	notificationUC := usecase.NewNotificationUC(configs.Notifications, notificationRepo, manager)

	// Attach to the queue the transactions service publishes on
	consumer := queue.NewConsumer(notificationUC, nrApp)
	var natsClient *natspkg.Client
	switch strings.ToLower(strings.TrimSpace(configs.Notifications.Broker)) {
	case "nsq":
		if err := consumer.StartNSQ(configs.NSQ); err != nil {
			zapLogger.Fatal("Failed to start NSQ consumer", zap.Error(err))
		}
	default:
		natsClient, err = natspkg.NewClient(configs.NATS.URL)
		if err != nil {
			zapLogger.Fatal("Failed to connect to NATS", zap.Error(err))
		}
		if err := consumer.StartJetStream(ctx, natsClient, jetstream.FileStorage); err != nil {
			zapLogger.Fatal("Failed to start JetStream consumer", zap.Error(err))
		}
		healthService.AddChecker("nats", health.NewNATSHealthChecker(natsClient))
	}

	// Initialize Echo router
	e := echo.New()
	e.HideBanner = true

	e.Use(middleware.PanicRecoveryWithZapMiddleware(zapLogger))
	e.Use(echomw.RequestID())
	if nrApp != nil {
		e.Use(nrecho.Middleware(nrApp))
	}
	e.Use(logger.ZapEchoMiddleware(zapLogger))

	health.RegisterEnhancedHealthEndpoints(e, appName, configs.App.Version, healthService)

	handler.NewHandler(notificationUC, manager, configs).RegisterRoutes(e)

	srv := server.NewGracefulServer(e, zapLogger, configs.Server.Port, time.Duration(configs.Server.ShutdownTimeout)*time.Second)
	// Cleanup runs in reverse order: stop consuming, drop the broker, close the store
	srv.OnShutdown("postgres", func(context.Context) error { return postgresClient.Close() })
	if natsClient != nil {
		srv.OnShutdown("nats", func(context.Context) error { natsClient.Close(); return nil })
	}
	srv.OnShutdown("consumer", func(context.Context) error { consumer.Stop(); return nil })

	if err := srv.Run(ctx); err != nil {
		zapLogger.Fatal("Server stopped with error",
			zap.String("app", appName),
			zap.Error(err),
		)
	}
}
