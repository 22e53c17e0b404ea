package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	"github.com/google/uuid"
	"github.com/piresc/smartlocker/internal/pkg/kafka"
	"github.com/piresc/smartlocker/internal/pkg/models"
	"github.com/stretchr/testify/assert"
)

func TestKafkaEventGateway_Publish(t *testing.T) {
	// Arrange
	mock := mocks.NewSyncProducer(t, nil)
	gw := NewKafkaEventGateway(kafka.NewProducerWithSync(mock), "transaction.events")
	event := models.TransactionEvent{
		EventID:       uuid.New(),
		TransactionID: uuid.New(),
		FromStatus:    models.TransactionStatusAwaitingPickup,
		ToStatus:      models.TransactionStatusReleased,
		ActorID:       "device",
		OccurredAt:    time.Now(),
	}
	mock.ExpectSendMessageWithCheckerFunctionAndSucceed(func(val []byte) error {
		var got models.TransactionEvent
		if err := json.Unmarshal(val, &got); err != nil {
			return err
		}
		if got.ToStatus != models.TransactionStatusReleased {
			return fmt.Errorf("unexpected status %s", got.ToStatus)
		}
		return nil
	})

	// Act
	err := gw.PublishTransactionEvent(context.Background(), event)

	// Assert
	assert.NoError(t, err)
	assert.NoError(t, mock.Close())
}

func TestKafkaEventGateway_BrokerError(t *testing.T) {
	mock := mocks.NewSyncProducer(t, nil)
	gw := NewKafkaEventGateway(kafka.NewProducerWithSync(mock), "transaction.events")
	mock.ExpectSendMessageAndFail(sarama.ErrOutOfBrokers)

	err := gw.PublishTransactionEvent(context.Background(), models.TransactionEvent{TransactionID: uuid.New()})

	assert.Error(t, err)
}

func TestNoopEventGateway(t *testing.T) {
	assert.NoError(t, NoopEventGateway{}.PublishTransactionEvent(context.Background(), models.TransactionEvent{}))
}
