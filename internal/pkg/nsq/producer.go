package nsq

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/nsqio/go-nsq"
	"github.com/piresc/smartlocker/internal/pkg/logger"
	nrpkg "github.com/piresc/smartlocker/internal/pkg/newrelic"
)

// Producer publishes JSON messages to one nsqd
type Producer struct {
	producer *nsq.Producer
	address  string
}

// NewProducer connects to nsqd and fails fast when it does not answer a ping
func NewProducer(address string) (*Producer, error) {
	cfg := nsq.NewConfig()
	producer, err := nsq.NewProducer(address, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create NSQ producer: %w", err)
	}
	producer.SetLoggerLevel(nsq.LogLevelWarning)

	if err := producer.Ping(); err != nil {
		producer.Stop()
		return nil, fmt.Errorf("failed to ping nsqd at %s: %w", address, err)
	}

	return &Producer{producer: producer, address: address}, nil
}

// Publish marshals message and waits for nsqd's ack or ctx, whichever comes first.
// A publish abandoned on ctx may still land; callers must tolerate duplicates.
func (p *Producer) Publish(ctx context.Context, topic string, message interface{}) error {
	body, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	return nrpkg.WithExternalSegment(ctx, "nsq", "publish", topic, func() error {
		done := make(chan *nsq.ProducerTransaction, 1)
		if err := p.producer.PublishAsync(topic, body, done); err != nil {
			return fmt.Errorf("failed to publish to %s: %w", topic, err)
		}

		select {
		case res := <-done:
			if res.Error != nil {
				return fmt.Errorf("nsqd rejected publish to %s: %w", topic, res.Error)
			}
		case <-ctx.Done():
			return ctx.Err()
		}

		logger.DebugCtx(ctx, "Published NSQ message",
			logger.String("topic", topic),
			logger.Int("bytes", len(body)))
		return nil
	})
}

// Ping checks the nsqd connection
func (p *Producer) Ping() error {
	if err := p.producer.Ping(); err != nil {
		return fmt.Errorf("nsqd %s: %w", p.address, err)
	}
	return nil
}

// Stop flushes in-flight publishes and closes the connection
func (p *Producer) Stop() {
	p.producer.Stop()
}
