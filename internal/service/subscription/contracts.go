package subscription

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMB-BookingService/internal/domain"
)

// SubscriptionRepository интерфейс репозитория подписок
type SubscriptionRepository interface {
	GetByBusiness(ctx context.Context, businessID uuid.UUID) (*domain.Subscription, error)
	Create(ctx context.Context, sub *domain.Subscription) (*domain.Subscription, error)
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

type realTimeProvider struct{}

func (realTimeProvider) Now() time.Time {
	return time.Now()
}
