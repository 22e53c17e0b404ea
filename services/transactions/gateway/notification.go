package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/piresc/smartlocker/internal/pkg/constants"
	"github.com/piresc/smartlocker/internal/pkg/logger"
	"github.com/piresc/smartlocker/internal/pkg/models"
	natspkg "github.com/piresc/smartlocker/internal/pkg/nats"
	nsqpkg "github.com/piresc/smartlocker/internal/pkg/nsq"
	"github.com/piresc/smartlocker/internal/pkg/retry"
)

const (
	BrokerNATS = "nats"
	BrokerNSQ  = "nsq"

	publishTimeout = 5 * time.Second
)

func publishRetrier(log *logger.ZapLogger) *retry.Retrier {
	cfg := retry.DefaultConfig()
	cfg.RetryableFunc = func(err error) bool {
		return !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded)
	}
	return retry.New(cfg, log)
}

// NATSNotificationGateway enqueues notification commands on JetStream
type NATSNotificationGateway struct {
	client  *natspkg.Client
	subject string
	retrier *retry.Retrier
}

// NewNATSNotificationGateway creates a JetStream backed notification publisher
func NewNATSNotificationGateway(client *natspkg.Client, log *logger.ZapLogger) *NATSNotificationGateway {
	return &NATSNotificationGateway{
		client:  client,
		subject: constants.SubjectNotificationPush,
		retrier: publishRetrier(log),
	}
}

// Notify publishes cmd keyed by its id so JetStream drops duplicate publishes
func (g *NATSNotificationGateway) Notify(ctx context.Context, cmd models.NotificationCommand) error {
	data, err := json.Marshal(cmd)
	if err != nil {
		return fmt.Errorf("failed to marshal notification: %w", err)
	}

	return g.retrier.Execute(ctx, func(ctx context.Context) error {
		_, err := g.client.PublishWithOptions(ctx, natspkg.PublishOptions{
			Subject: g.subject,
			Data:    data,
			MsgID:   cmd.ID.String(),
			Timeout: publishTimeout,
		})
		return err
	})
}

// NSQNotificationGateway enqueues notification commands on an NSQ topic
type NSQNotificationGateway struct {
	producer *nsqpkg.Producer
	topic    string
	retrier  *retry.Retrier
}

// NewNSQNotificationGateway creates an NSQ backed notification publisher
func NewNSQNotificationGateway(producer *nsqpkg.Producer, topic string, log *logger.ZapLogger) *NSQNotificationGateway {
	if topic == "" {
		topic = constants.SubjectNotificationPush
	}
	return &NSQNotificationGateway{
		producer: producer,
		topic:    topic,
		retrier:  publishRetrier(log),
	}
}

// Notify publishes cmd on the topic. NSQ has no publish dedup; the consumer's row ids absorb duplicates.
func (g *NSQNotificationGateway) Notify(ctx context.Context, cmd models.NotificationCommand) error {
	return g.retrier.Execute(ctx, func(ctx context.Context) error {
		return g.producer.Publish(ctx, g.topic, cmd)
	})
}

// NormalizeBroker maps a configured broker name onto a supported backend
func NormalizeBroker(v string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "", BrokerNATS:
		return BrokerNATS, nil
	case BrokerNSQ:
		return BrokerNSQ, nil
	}
	return "", fmt.Errorf("unknown notification broker %q", v)
}
