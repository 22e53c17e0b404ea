package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/piresc/smartlocker/internal/pkg/apperror"
	"github.com/piresc/smartlocker/internal/pkg/constants"
	"github.com/piresc/smartlocker/internal/pkg/models"
	"github.com/piresc/smartlocker/services/notifications/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeliver_DedupesRecipientsAndDefaultsTitle(t *testing.T) {
	// Arrange
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mocks.NewMockNotificationRepo(ctrl)
	pusher := mocks.NewMockPusher(ctrl)
	uc := NewNotificationUC(models.NotificationsConfig{DefaultTitle: "SmartLocker Update"}, repo, pusher)

	buyer, seller := uuid.New(), uuid.New()
	cmd := models.NotificationCommand{
		ID:           uuid.New(),
		RecipientIDs: []uuid.UUID{buyer, seller, buyer, uuid.Nil},
		Body:         "Pickup window closed",
		CreatedAt:    time.Date(2026, 3, 1, 11, 0, 0, 0, time.UTC),
	}

	repo.EXPECT().InsertNotifications(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, rows []*models.Notification) ([]*models.Notification, error) {
			require.Len(t, rows, 2)
			assert.Equal(t, buyer, rows[0].UserID)
			assert.Equal(t, seller, rows[1].UserID)
			for _, r := range rows {
				assert.Equal(t, "SmartLocker Update", r.Title)
				assert.Equal(t, cmd.CreatedAt, r.CreatedAt)
			}
			return rows, nil
		})
	pusher.EXPECT().NotifyUser(buyer.String(), constants.EventNotification, gomock.Any()).Return(1)
	pusher.EXPECT().NotifyUser(seller.String(), constants.EventNotification, gomock.Any()).Return(0)

	// Act
	err := uc.Deliver(context.Background(), cmd)

	// Assert
	assert.NoError(t, err)
}

func TestDeliver_StableRowIDs(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mocks.NewMockNotificationRepo(ctrl)
	pusher := mocks.NewMockPusher(ctrl)
	uc := NewNotificationUC(models.NotificationsConfig{}, repo, pusher)
	cmd := models.NotificationCommand{ID: uuid.New(), RecipientIDs: []uuid.UUID{uuid.New()}, Title: "Funds released"}

	var first, second uuid.UUID
	gomock.InOrder(
		repo.EXPECT().InsertNotifications(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, rows []*models.Notification) ([]*models.Notification, error) {
				first = rows[0].ID
				return rows, nil
			}),
		repo.EXPECT().InsertNotifications(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, rows []*models.Notification) ([]*models.Notification, error) {
				second = rows[0].ID
				return nil, nil
			}),
	)
	pusher.EXPECT().NotifyUser(gomock.Any(), gomock.Any(), gomock.Any()).Return(1).Times(1)

	require.NoError(t, uc.Deliver(context.Background(), cmd))
	require.NoError(t, uc.Deliver(context.Background(), cmd))

	assert.Equal(t, first, second)
}

func TestDeliver_NoRecipients(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	uc := NewNotificationUC(models.NotificationsConfig{}, mocks.NewMockNotificationRepo(ctrl), mocks.NewMockPusher(ctrl))

	err := uc.Deliver(context.Background(), models.NotificationCommand{ID: uuid.New(), RecipientIDs: []uuid.UUID{uuid.Nil}})

	assert.NoError(t, err)
}

func TestDeliver_StoreFailureIsReturned(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mocks.NewMockNotificationRepo(ctrl)
	uc := NewNotificationUC(models.NotificationsConfig{}, repo, mocks.NewMockPusher(ctrl))
	repo.EXPECT().InsertNotifications(gomock.Any(), gomock.Any()).Return(nil, errors.New("connection refused"))

	err := uc.Deliver(context.Background(), models.NotificationCommand{ID: uuid.New(), RecipientIDs: []uuid.UUID{uuid.New()}})

	assert.Error(t, err)
}

func TestListNotifications(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mocks.NewMockNotificationRepo(ctrl)
	uc := NewNotificationUC(models.NotificationsConfig{}, repo, mocks.NewMockPusher(ctrl))
	actor := models.Actor{UserID: uuid.New(), Role: models.RoleBuyer}
	repo.EXPECT().ListNotifications(gomock.Any(), actor.UserID, 20, 0).Return([]*models.Notification{}, nil)

	_, err := uc.ListNotifications(context.Background(), actor, 20, 0)
	assert.NoError(t, err)

	_, err = uc.ListNotifications(context.Background(), models.Actor{}, 20, 0)
	assert.ErrorIs(t, err, apperror.ErrAuthorization)
}
