package notifications

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMB-BookingService/internal/domain"
	"github.com/m04kA/SMB-BookingService/internal/infra/storage/memory"
	"github.com/m04kA/SMB-BookingService/pkg/logger"
)

type mockSender struct {
	mock.Mock
}

func (m *mockSender) Send(ctx context.Context, n domain.Notification) error {
	return m.Called(ctx, n).Error(0)
}

func (m *mockSender) Channel() domain.NotificationChannel {
	return domain.ChannelWhatsApp
}

type mockMetrics struct {
	mock.Mock
}

func (m *mockMetrics) IncNotification(notificationType string, sent bool) {
	m.Called(notificationType, sent)
}

type failingLog struct{}

func (failingLog) Create(context.Context, *domain.NotificationLog) error {
	return errors.New("insert failed")
}

func confirmation() domain.Notification {
	bookingID := uuid.New()
	return domain.Notification{
		BusinessID:   uuid.New(),
		BookingID:    &bookingID,
		Recipient:    "+27821234567",
		Type:         domain.NotificationConfirmation,
		CustomerName: "Thabo",
		BusinessName: "Kasi Cuts",
		ServiceName:  "Haircut",
		Date:         "2025-10-15",
		Time:         "10:00",
	}
}

func TestSend_DeliveredAndLogged(t *testing.T) {
	store := memory.NewStore()
	sender := &mockSender{}
	metrics := &mockMetrics{}
	n := confirmation()

	sender.On("Send", mock.Anything, n).Return(nil).Once()
	metrics.On("IncNotification", "confirmation", true).Once()

	svc := NewService(sender, store.NotificationLogs(), metrics, logger.Nop())
	assert.True(t, svc.Send(context.Background(), n))

	entries := store.NotificationLogEntries()
	require.Len(t, entries, 1)
	assert.Equal(t, domain.ChannelWhatsApp, entries[0].Channel)
	assert.Equal(t, domain.NotificationConfirmation, entries[0].Type)
	assert.Equal(t, n.Recipient, entries[0].Recipient)
	assert.Equal(t, n.Text(), entries[0].Content)
	assert.Equal(t, domain.NotificationLogSent, entries[0].Status)
	assert.Equal(t, n.BookingID, entries[0].BookingID)

	sender.AssertExpectations(t)
	metrics.AssertExpectations(t)
}

func TestSend_ProviderFailure(t *testing.T) {
	store := memory.NewStore()
	sender := &mockSender{}
	metrics := &mockMetrics{}
	n := confirmation()

	sender.On("Send", mock.Anything, n).Return(errors.New("502 bad gateway")).Once()
	metrics.On("IncNotification", "confirmation", false).Once()

	svc := NewService(sender, store.NotificationLogs(), metrics, logger.Nop())
	assert.False(t, svc.Send(context.Background(), n))
	assert.Empty(t, store.NotificationLogEntries())

	metrics.AssertExpectations(t)
}

func TestSend_LogFailureStillDelivered(t *testing.T) {
	sender := &mockSender{}
	sender.On("Send", mock.Anything, mock.Anything).Return(nil).Once()

	svc := NewService(sender, failingLog{}, nil, logger.Nop())
	assert.True(t, svc.Send(context.Background(), confirmation()))
}

func TestSend_NoRecipient(t *testing.T) {
	sender := &mockSender{}
	n := confirmation()
	n.Recipient = ""

	svc := NewService(sender, memory.NewStore().NotificationLogs(), nil, logger.Nop())
	assert.False(t, svc.Send(context.Background(), n))
	sender.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
}
