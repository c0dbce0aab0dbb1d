package get_available_slots

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMB-BookingService/internal/domain"
	"github.com/m04kA/SMB-BookingService/pkg/types"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	// ListActiveTimes возвращает время начала активных бронирований бизнеса на дату
	ListActiveTimes(ctx context.Context, businessID uuid.UUID, date time.Time) ([]types.TimeString, error)
}

// ScheduleRepository интерфейс репозитория недельного расписания
type ScheduleRepository interface {
	Get(ctx context.Context, businessID uuid.UUID) (*domain.WeeklySchedule, error)
}

// SubscriptionOracle проверяет, может ли бизнес принимать бронирования
type SubscriptionOracle interface {
	IsBookingAllowed(ctx context.Context, businessID uuid.UUID) (bool, error)
}

// MetricsRecorder интерфейс для учета запросов доступности
type MetricsRecorder interface {
	ObserveAvailabilityQuery(status string)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
