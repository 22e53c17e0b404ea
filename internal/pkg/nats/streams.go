package nats

import (
	"time"

	"github.com/nats-io/nats.go/jetstream"
	"github.com/piresc/smartlocker/internal/pkg/constants"
)

// NotificationStream is declared by both the publisher and the writer; the two must agree or CreateOrUpdate fails.
// Work-queue retention drops a command once the writer acks it.
func NotificationStream(storage jetstream.StorageType) StreamConfig {
	return NewStreamConfigBuilder(constants.StreamNotifications).
		WithSubjects(constants.SubjectNotificationPush).
		WithRetention(jetstream.WorkQueuePolicy).
		WithStorage(storage).
		WithMaxAge(72 * time.Hour).
		Build()
}

// NotificationWriter redelivers a failed command four more times with growing gaps
func NotificationWriter() ConsumerConfig {
	return NewConsumerConfigBuilder(constants.StreamNotifications, constants.ConsumerNotificationWriter).
		WithSubject(constants.SubjectNotificationPush).
		WithAckWait(15*time.Second).
		WithMaxDeliver(5).
		WithBackOff(time.Second, 5*time.Second, 30*time.Second, 2*time.Minute).
		Build()
}
