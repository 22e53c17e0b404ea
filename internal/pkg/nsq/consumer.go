package nsq

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/nsqio/go-nsq"
	"github.com/piresc/smartlocker/internal/pkg/logger"
	"github.com/piresc/smartlocker/internal/pkg/models"
)

// MessageHandler processes one message body. A returned error requeues the message.
type MessageHandler func(ctx context.Context, body []byte) error

// Consumer handles consuming messages from an NSQ topic/channel
type Consumer struct {
	consumer *nsq.Consumer
	ctx      context.Context
	cancel   context.CancelFunc
}

// NewConsumer subscribes handler to topic/channel and connects to lookupd or nsqd
func NewConsumer(cfg models.NSQConfig, topic, channel string, handler MessageHandler) (*Consumer, error) {
	config := nsq.NewConfig()
	if cfg.MaxInFlight > 0 {
		config.MaxInFlight = cfg.MaxInFlight
	}
	if cfg.MaxAttempts > 0 {
		config.MaxAttempts = uint16(cfg.MaxAttempts)
	}

	consumer, err := nsq.NewConsumer(topic, channel, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create NSQ consumer: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	c := &Consumer{consumer: consumer, ctx: ctx, cancel: cancel}
	consumer.AddHandler(c.wrap(topic, handler))

	if cfg.LookupdAddress != "" {
		err = consumer.ConnectToNSQLookupd(cfg.LookupdAddress)
	} else {
		err = consumer.ConnectToNSQD(cfg.NSQDAddress)
	}
	if err != nil {
		cancel()
		consumer.Stop()
		return nil, fmt.Errorf("failed to connect NSQ consumer: %w", err)
	}

	return c, nil
}

func (c *Consumer) wrap(topic string, handler MessageHandler) nsq.HandlerFunc {
	return func(message *nsq.Message) error {
		if len(message.Body) == 0 {
			return nil
		}
		if err := handler(c.ctx, message.Body); err != nil {
			logger.Warn("Error processing NSQ message, requeueing",
				logger.String("topic", topic),
				logger.Int("attempts", int(message.Attempts)),
				logger.Err(err))
			return err
		}
		return nil
	}
}

// UnmarshalMessage deserializes a JSON message into the provided struct
func UnmarshalMessage(messageBody []byte, v interface{}) error {
	if err := json.Unmarshal(messageBody, v); err != nil {
		return fmt.Errorf("failed to unmarshal message: %w", err)
	}
	return nil
}

// Stop gracefully stops the consumer and waits for in-flight handlers
func (c *Consumer) Stop() {
	c.cancel()
	c.consumer.Stop()
	<-c.consumer.StopChan
}
