package schedule

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SMB-BookingService/internal/domain"
	subscriptionModels "github.com/m04kA/SMB-BookingService/internal/service/subscription/models"
)

// ScheduleRepository интерфейс репозитория расписаний
type ScheduleRepository interface {
	Get(ctx context.Context, businessID uuid.UUID) (*domain.WeeklySchedule, error)
	Upsert(ctx context.Context, schedule *domain.WeeklySchedule) (*domain.WeeklySchedule, error)
}

// ProfileRepository интерфейс репозитория профилей бизнеса
type ProfileRepository interface {
	Get(ctx context.Context, businessID uuid.UUID) (*domain.BusinessProfile, error)
	Upsert(ctx context.Context, profile *domain.BusinessProfile) (*domain.BusinessProfile, error)
}

// TrialStarter запуск пробной подписки при онбординге
type TrialStarter interface {
	StartTrial(ctx context.Context, businessID uuid.UUID) (*subscriptionModels.SubscriptionResponse, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
