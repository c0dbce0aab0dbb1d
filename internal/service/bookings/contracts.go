package bookings

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SMB-BookingService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error)
	ListByBusiness(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error)
	// UpdateStatus меняет статус, только если текущий равен from (иначе ErrStatusChanged)
	UpdateStatus(ctx context.Context, id uuid.UUID, from, to domain.BookingStatus) (*domain.Booking, error)
}

// ProfileRepository интерфейс репозитория профилей бизнеса
type ProfileRepository interface {
	Get(ctx context.Context, businessID uuid.UUID) (*domain.BusinessProfile, error)
}

// Notifier отправка уведомлений
type Notifier interface {
	Send(ctx context.Context, n domain.Notification) bool
}

// MetricsRecorder интерфейс для учета отмен
type MetricsRecorder interface {
	IncBookingCancelled()
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
