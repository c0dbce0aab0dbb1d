package send_reminder

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SMB-BookingService/internal/service/bookings/models"
)

type BookingService interface {
	SendReminder(ctx context.Context, bookingID, businessID uuid.UUID) (*models.ReminderResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
