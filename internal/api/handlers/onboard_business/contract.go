package onboard_business

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SMB-BookingService/internal/service/schedule/models"
)

type OnboardingService interface {
	Onboard(ctx context.Context, businessID uuid.UUID, req *models.OnboardRequest) (*models.OnboardResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
