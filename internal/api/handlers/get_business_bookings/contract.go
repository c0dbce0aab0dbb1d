package get_business_bookings

import (
	"context"

	"github.com/m04kA/SMB-BookingService/internal/service/bookings/models"
)

type BookingService interface {
	ListByDate(ctx context.Context, req *models.ListBookingsRequest) (*models.BookingListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
