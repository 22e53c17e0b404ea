package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/IBM/sarama"
	"github.com/piresc/smartlocker/internal/pkg/models"
	nrpkg "github.com/piresc/smartlocker/internal/pkg/newrelic"
)

// Producer publishes keyed JSON records and waits for broker acks
type Producer struct {
	producer sarama.SyncProducer
	brokers  []string
}

// NewProducer connects a sync producer to the configured brokers
func NewProducer(cfg models.KafkaConfig) (*Producer, error) {
	config := sarama.NewConfig()
	config.ClientID = cfg.ClientID
	config.Producer.Return.Successes = true
	config.Producer.RequiredAcks = sarama.WaitForAll
	config.Producer.Idempotent = true
	config.Producer.Retry.Max = 5
	config.Producer.Retry.Backoff = 200 * time.Millisecond
	config.Net.MaxOpenRequests = 1

	producer, err := sarama.NewSyncProducer(cfg.Brokers, config)
	if err != nil {
		return nil, fmt.Errorf("failed to start Kafka producer: %w", err)
	}

	return &Producer{producer: producer, brokers: cfg.Brokers}, nil
}

// NewProducerWithSync wraps an existing sync producer
func NewProducerWithSync(producer sarama.SyncProducer) *Producer {
	return &Producer{producer: producer}
}

// PublishJSON writes v to topic partitioned by key
func (p *Producer) PublishJSON(ctx context.Context, topic, key string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	msg := &sarama.ProducerMessage{
		Topic: topic,
		Key:   sarama.StringEncoder(key),
		Value: sarama.ByteEncoder(data),
	}

	return nrpkg.WithExternalSegment(ctx, "kafka", "produce", topic, func() error {
		if _, _, err := p.producer.SendMessage(msg); err != nil {
			return fmt.Errorf("failed to send Kafka message: %w", err)
		}
		return nil
	})
}

// Close flushes and closes the producer
func (p *Producer) Close() error {
	return p.producer.Close()
}
