package get_schedule

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SMB-BookingService/internal/service/schedule/models"
)

type ScheduleService interface {
	Get(ctx context.Context, businessID uuid.UUID) (*models.ScheduleResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
