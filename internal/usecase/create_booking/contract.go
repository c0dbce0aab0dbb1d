package create_booking

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SMB-BookingService/internal/domain"
	getAvailableSlots "github.com/m04kA/SMB-BookingService/internal/usecase/get_available_slots"
)

// AvailabilityQuery свежий расчет свободных слотов для повторной проверки
type AvailabilityQuery interface {
	Execute(ctx context.Context, req *getAvailableSlots.Request) (*getAvailableSlots.Response, error)
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
}

// ServiceRepository интерфейс репозитория услуг
type ServiceRepository interface {
	Get(ctx context.Context, businessID, serviceID uuid.UUID) (*domain.Service, error)
}

// ClientRepository интерфейс репозитория клиентов
type ClientRepository interface {
	Upsert(ctx context.Context, visit domain.ClientVisit) (*domain.Client, error)
}

// ProfileRepository интерфейс репозитория профилей бизнеса
type ProfileRepository interface {
	Get(ctx context.Context, businessID uuid.UUID) (*domain.BusinessProfile, error)
}

// Notifier отправка уведомлений, никогда не возвращает ошибку
type Notifier interface {
	Send(ctx context.Context, n domain.Notification) bool
}

// MetricsRecorder интерфейс для учета результатов бронирования
type MetricsRecorder interface {
	IncBookingCommitted()
	IncBookingRejected(reason string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
