package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/nats-io/nats.go/jetstream"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/piresc/smartlocker/internal/pkg/logger"
	"github.com/piresc/smartlocker/internal/pkg/models"
	natspkg "github.com/piresc/smartlocker/internal/pkg/nats"
	nrpkg "github.com/piresc/smartlocker/internal/pkg/newrelic"
	nsqpkg "github.com/piresc/smartlocker/internal/pkg/nsq"
	"github.com/piresc/smartlocker/services/notifications"
)

// Consumer feeds queued notification commands into the use case
type Consumer struct {
	notificationUC notifications.NotificationUC
	nrApp          *newrelic.Application
	jsConsumer     *natspkg.Consumer
	nsqConsumer    *nsqpkg.Consumer
}

// NewConsumer creates a new notification queue consumer
func NewConsumer(notificationUC notifications.NotificationUC, nrApp *newrelic.Application) *Consumer {
	return &Consumer{
		notificationUC: notificationUC,
		nrApp:          nrApp,
	}
}

// StartJetStream ensures the notification stream exists and attaches the durable writer
func (c *Consumer) StartJetStream(ctx context.Context, client *natspkg.Client, storage jetstream.StorageType) error {
	_, err := client.CreateStream(ctx, natspkg.NotificationStream(storage))
	if err != nil {
		return fmt.Errorf("failed to ensure notification stream: %w", err)
	}

	consumer, err := natspkg.NewJetStreamConsumer(ctx, client, natspkg.NotificationWriter(), func(ctx context.Context, msg jetstream.Msg) error {
		return c.Handle(ctx, msg.Data())
	})
	if err != nil {
		return fmt.Errorf("failed to start notification consumer: %w", err)
	}
	c.jsConsumer = consumer
	return nil
}

// StartNSQ subscribes to the notification topic on NSQ
func (c *Consumer) StartNSQ(cfg models.NSQConfig) error {
	consumer, err := nsqpkg.NewConsumer(cfg, cfg.NotificationTopic, cfg.Channel, c.Handle)
	if err != nil {
		return err
	}
	c.nsqConsumer = consumer
	logger.Info("NSQ notification consumer started",
		logger.String("topic", cfg.NotificationTopic),
		logger.String("channel", cfg.Channel))
	return nil
}

// Handle decodes one command and delivers it. Undecodable payloads are dropped, not redelivered.
func (c *Consumer) Handle(ctx context.Context, body []byte) error {
	ctx, end := nrpkg.StartBackgroundTransaction(ctx, c.nrApp, "Notifications.Deliver")
	defer end()

	var cmd models.NotificationCommand
	if err := json.Unmarshal(body, &cmd); err != nil {
		logger.ErrorCtx(ctx, "Dropping malformed notification command", logger.Err(err))
		return nil
	}

	if err := c.notificationUC.Deliver(ctx, cmd); err != nil {
		if errors.Is(err, context.Canceled) {
			return err
		}
		logger.ErrorCtx(ctx, "Failed to deliver notification",
			logger.String("command_id", cmd.ID.String()),
			logger.Err(err))
		nrpkg.NoticeTransactionError(nrpkg.FromContext(ctx), err)
		return err
	}
	return nil
}

// Stop detaches from whichever broker was started
func (c *Consumer) Stop() {
	if c.jsConsumer != nil {
		c.jsConsumer.Stop()
	}
	if c.nsqConsumer != nil {
		c.nsqConsumer.Stop()
	}
}
