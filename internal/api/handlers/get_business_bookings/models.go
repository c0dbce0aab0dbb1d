package get_business_bookings

import (
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMB-BookingService/internal/domain"
	"github.com/m04kA/SMB-BookingService/internal/service/bookings/models"
)

// ToServiceRequest формирует запрос к сервису из query параметров
func ToServiceRequest(businessID uuid.UUID, dateStr, includeInactiveStr string) (*models.ListBookingsRequest, error) {
	req := &models.ListBookingsRequest{
		BusinessID:      businessID,
		IncludeInactive: false, // По умолчанию только активные
	}

	if dateStr != "" {
		date, err := time.Parse(domain.DateFormat, dateStr)
		if err != nil {
			return nil, fmt.Errorf("invalid date value: %w", err)
		}
		req.Date = &date
	}

	if includeInactiveStr != "" {
		includeInactive, err := strconv.ParseBool(includeInactiveStr)
		if err != nil {
			return nil, fmt.Errorf("invalid includeInactive value: %w", err)
		}
		req.IncludeInactive = includeInactive
	}

	return req, nil
}
