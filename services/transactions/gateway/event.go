package gateway

import (
	"context"

	"github.com/piresc/smartlocker/internal/pkg/kafka"
	"github.com/piresc/smartlocker/internal/pkg/models"
)

// KafkaEventGateway publishes lifecycle transitions keyed by transaction id
type KafkaEventGateway struct {
	producer *kafka.Producer
	topic    string
}

// NewKafkaEventGateway creates an event publisher on topic
func NewKafkaEventGateway(producer *kafka.Producer, topic string) *KafkaEventGateway {
	return &KafkaEventGateway{producer: producer, topic: topic}
}

func (g *KafkaEventGateway) PublishTransactionEvent(ctx context.Context, event models.TransactionEvent) error {
	return g.producer.PublishJSON(ctx, g.topic, event.TransactionID.String(), event)
}

// NoopEventGateway discards events when the stream is disabled
type NoopEventGateway struct{}

func (NoopEventGateway) PublishTransactionEvent(ctx context.Context, event models.TransactionEvent) error {
	return nil
}
