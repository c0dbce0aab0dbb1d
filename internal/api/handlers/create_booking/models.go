package create_booking

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMB-BookingService/internal/domain"
	bookingModels "github.com/m04kA/SMB-BookingService/internal/service/bookings/models"
	createBooking "github.com/m04kA/SMB-BookingService/internal/usecase/create_booking"
	"github.com/m04kA/SMB-BookingService/pkg/ptr"
	"github.com/m04kA/SMB-BookingService/pkg/types"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	ServiceID   string  `json:"serviceId"`
	ClientName  string  `json:"clientName"`
	ClientPhone string  `json:"clientPhone"`
	ClientEmail *string `json:"clientEmail,omitempty"`
	Date        string  `json:"date"` // "2025-10-15"
	Time        string  `json:"time"` // "10:00"
	Notes       *string `json:"notes,omitempty"`
}

// CreateBookingResponse HTTP response model
type CreateBookingResponse struct {
	State            string                         `json:"state"`
	Booking          *bookingModels.BookingResponse `json:"booking"`
	NotificationSent bool                           `json:"notificationSent"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(businessID uuid.UUID) (*createBooking.Request, error) {
	serviceID, err := uuid.Parse(r.ServiceID)
	if err != nil {
		return nil, fmt.Errorf("serviceId: %w", err)
	}

	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, fmt.Errorf("date: %w", err)
	}

	slot, err := types.NewTimeStringFromString(r.Time)
	if err != nil {
		return nil, fmt.Errorf("time: %w", err)
	}

	return &createBooking.Request{
		BusinessID:  businessID,
		ServiceID:   serviceID,
		ClientName:  r.ClientName,
		ClientPhone: r.ClientPhone,
		ClientEmail: optionalText(r.ClientEmail),
		Date:        date,
		Time:        slot,
		Notes:       optionalText(r.Notes),
	}, nil
}

// optionalText обрезает пробелы; пустое значение считается отсутствующим
func optionalText(s *string) *string {
	v := strings.TrimSpace(ptr.Value(s))
	if v == "" {
		return nil
	}
	return ptr.Ptr(v)
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *CreateBookingResponse {
	return &CreateBookingResponse{
		State:            string(resp.State),
		Booking:          bookingModels.FromDomainBooking(resp.Booking),
		NotificationSent: resp.NotificationSent,
	}
}
