package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pawsit/pawsit-server/internal/domains/notifications/adapters/memory"
	"github.com/pawsit/pawsit-server/internal/domains/notifications/domain"
	"github.com/pawsit/pawsit-server/internal/domains/notifications/ports"
)

func TestCreate_StoresAndDispatches(t *testing.T) {
	dispatcher := memory.NewDispatcher()
	svc := NewService(memory.NewRepository(), dispatcher)

	notification, err := domain.NewNotification(0, 10, domain.TypeBookingRequest, "You have a new booking request")
	require.NoError(t, err)
	saved, err := svc.Create(context.Background(), notification)
	require.NoError(t, err)

	assert.NotZero(t, saved.Entity.ID)
	assert.False(t, saved.Entity.IsRead)

	delivered := dispatcher.Dispatched()
	require.Len(t, delivered, 1)
	assert.Equal(t, saved.Entity.ID, delivered[0].ID)
}

func TestCreate_RejectsInvalidNotification(t *testing.T) {
	svc := NewService(memory.NewRepository(), memory.NewDispatcher())

	_, err := svc.Create(context.Background(), &domain.Notification{UserID: 10})
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Create(context.Background(), nil)
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestPublish_DerivesMessageFromKind(t *testing.T) {
	svc := NewService(memory.NewRepository(), memory.NewDispatcher())

	err := svc.Publish(context.Background(), 10, domain.TypePaymentReceived, map[string]any{"amount": "120.00"})
	require.NoError(t, err)

	inbox, err := svc.FindByUser(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, inbox, 1)
	assert.Equal(t, "A payment has been received", inbox[0].Entity.Message)
	assert.Equal(t, "120.00", inbox[0].Entity.Data["amount"])
}

func TestMarkRead_FlipsOnce(t *testing.T) {
	svc := NewService(memory.NewRepository(), memory.NewDispatcher())
	err := svc.Publish(context.Background(), 10, domain.TypeNewReview, nil)
	require.NoError(t, err)
	inbox, err := svc.FindByUser(context.Background(), 10)
	require.NoError(t, err)
	id := inbox[0].Entity.ID

	read, err := svc.MarkRead(context.Background(), id)
	require.NoError(t, err)
	assert.True(t, read.Entity.IsRead)

	_, err = svc.MarkRead(context.Background(), id)
	require.ErrorIs(t, err, domain.ErrAlreadyRead)
}

func TestFindUnreadByUser_SkipsReadNotifications(t *testing.T) {
	svc := NewService(memory.NewRepository(), memory.NewDispatcher())
	for range 3 {
		require.NoError(t, svc.Publish(context.Background(), 10, domain.TypeBookingConfirmed, nil))
	}
	inbox, err := svc.FindByUser(context.Background(), 10)
	require.NoError(t, err)
	_, err = svc.MarkRead(context.Background(), inbox[0].Entity.ID)
	require.NoError(t, err)

	unread, err := svc.FindUnreadByUser(context.Background(), 10)
	require.NoError(t, err)
	assert.Len(t, unread, 2)
}

func TestDelete_RemovesNotification(t *testing.T) {
	svc := NewService(memory.NewRepository(), memory.NewDispatcher())
	require.NoError(t, svc.Publish(context.Background(), 10, domain.TypeBookingCancelled, nil))
	inbox, err := svc.FindByUser(context.Background(), 10)
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), inbox[0].Entity.ID))
	_, err = svc.GetByID(context.Background(), inbox[0].Entity.ID)
	require.ErrorIs(t, err, ports.ErrNotFound)
}
