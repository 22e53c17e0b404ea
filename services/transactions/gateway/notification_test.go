package gateway

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats-server/v2/server"
	natsserver "github.com/nats-io/nats-server/v2/test"
	"github.com/nats-io/nats.go/jetstream"
	"github.com/piresc/smartlocker/internal/pkg/constants"
	"github.com/piresc/smartlocker/internal/pkg/models"
	natspkg "github.com/piresc/smartlocker/internal/pkg/nats"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runJetStream(t *testing.T) *server.Server {
	t.Helper()
	opts := natsserver.DefaultTestOptions
	opts.Port = -1
	opts.JetStream = true
	opts.StoreDir = t.TempDir()
	s := natsserver.RunServer(&opts)
	t.Cleanup(s.Shutdown)
	return s
}

func TestNATSNotificationGateway_NotifyDeduplicates(t *testing.T) {
	// Arrange
	s := runJetStream(t)
	client, err := natspkg.NewClient(s.ClientURL())
	require.NoError(t, err)
	defer client.Close()

	ctx := context.Background()
	stream, err := client.CreateStream(ctx, natspkg.NotificationStream(jetstream.MemoryStorage))
	require.NoError(t, err)

	gw := NewNATSNotificationGateway(client, nil)
	cmd := models.NotificationCommand{
		ID:           uuid.New(),
		RecipientIDs: []uuid.UUID{uuid.New()},
		Title:        "SmartLocker Update",
		Body:         "Your item is ready for pickup",
		CreatedAt:    time.Now(),
	}

	// Act
	require.NoError(t, gw.Notify(ctx, cmd))
	require.NoError(t, gw.Notify(ctx, cmd))

	// Assert
	info, err := stream.Info(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), info.State.Msgs)

	msg, err := stream.GetLastMsgForSubject(ctx, constants.SubjectNotificationPush)
	require.NoError(t, err)
	var got models.NotificationCommand
	require.NoError(t, json.Unmarshal(msg.Data, &got))
	assert.Equal(t, cmd.ID, got.ID)
	assert.Equal(t, cmd.Body, got.Body)
}

func TestNATSNotificationGateway_NoStream(t *testing.T) {
	s := runJetStream(t)
	client, err := natspkg.NewClient(s.ClientURL())
	require.NoError(t, err)
	defer client.Close()

	gw := NewNATSNotificationGateway(client, nil)
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	err = gw.Notify(ctx, models.NotificationCommand{ID: uuid.New()})

	assert.Error(t, err)
}

func TestNormalizeBroker(t *testing.T) {
	b, err := NormalizeBroker("")
	require.NoError(t, err)
	assert.Equal(t, BrokerNATS, b)

	b, err = NormalizeBroker(" NSQ ")
	require.NoError(t, err)
	assert.Equal(t, BrokerNSQ, b)

	_, err = NormalizeBroker("rabbitmq")
	assert.Error(t, err)
}
