package nats

import (
	"context"
	"fmt"
	"sync"

	"github.com/nats-io/nats.go/jetstream"
	"github.com/piresc/smartlocker/internal/pkg/logger"
)

// JetStreamMessageHandler processes one message. A returned error naks it for redelivery.
type JetStreamMessageHandler func(ctx context.Context, msg jetstream.Msg) error

// Consumer drives a durable JetStream consumer with explicit acks
type Consumer struct {
	consumer   jetstream.Consumer
	consumeCtx jetstream.ConsumeContext
	ctx        context.Context
	cancelFunc context.CancelFunc
	mu         sync.Mutex
}

// NewJetStreamConsumer creates the durable consumer and starts delivering to handler
func NewJetStreamConsumer(ctx context.Context, client *Client, config ConsumerConfig, handler JetStreamMessageHandler) (*Consumer, error) {
	if client == nil {
		return nil, fmt.Errorf("client cannot be nil")
	}

	consumer, err := client.CreateConsumer(ctx, config)
	if err != nil {
		return nil, err
	}

	cctx, cancel := context.WithCancel(ctx)
	c := &Consumer{
		consumer:   consumer,
		ctx:        cctx,
		cancelFunc: cancel,
	}

	if err := c.start(handler); err != nil {
		cancel()
		return nil, err
	}

	logger.Info("JetStream consumer started",
		logger.String("stream", config.StreamName),
		logger.String("consumer", config.ConsumerName))
	return c, nil
}

func (c *Consumer) start(handler JetStreamMessageHandler) error {
	consumeCtx, err := c.consumer.Consume(func(msg jetstream.Msg) {
		if err := handler(c.ctx, msg); err != nil {
			logger.Error("Error processing JetStream message",
				logger.String("subject", msg.Subject()),
				logger.Err(err))

			if nakErr := msg.Nak(); nakErr != nil {
				logger.Error("Failed to NAK message", logger.Err(nakErr))
			}
			return
		}

		if ackErr := msg.Ack(); ackErr != nil {
			logger.Error("Failed to ACK message", logger.Err(ackErr))
		}
	})
	if err != nil {
		return fmt.Errorf("failed to start consuming: %w", err)
	}

	c.mu.Lock()
	c.consumeCtx = consumeCtx
	c.mu.Unlock()

	go func() {
		<-c.ctx.Done()
		c.Stop()
	}()

	return nil
}

// IsActive reports whether messages are still being delivered
func (c *Consumer) IsActive() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.consumeCtx != nil
}

// Stop stops delivery; unacked messages are redelivered after AckWait
func (c *Consumer) Stop() {
	c.mu.Lock()
	if c.consumeCtx != nil {
		c.consumeCtx.Stop()
		c.consumeCtx = nil
	}
	c.mu.Unlock()

	if c.cancelFunc != nil {
		c.cancelFunc()
	}
}
