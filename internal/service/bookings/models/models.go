package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMB-BookingService/internal/domain"
)

// Request модели

// ListBookingsRequest запрос списка бронирований бизнеса
type ListBookingsRequest struct {
	BusinessID      uuid.UUID
	Date            *time.Time // если nil - все даты
	IncludeInactive bool       // включить завершенные и отмененные
}

// UpdateStatusRequest запрос на смену статуса бронирования
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID          string  `json:"id"`
	BusinessID  string  `json:"businessId"`
	ServiceID   string  `json:"serviceId"`
	ServiceName string  `json:"serviceName"`
	ClientName  string  `json:"clientName"`
	ClientPhone string  `json:"clientPhone"`
	ClientEmail *string `json:"clientEmail,omitempty"`
	Date        string  `json:"date"` // "2025-10-15"
	Time        string  `json:"time"` // "10:00"
	Status      string  `json:"status"`
	Price       float64 `json:"price"`
	Notes       *string `json:"notes,omitempty"`
	CreatedAt   string  `json:"createdAt"`
	UpdatedAt   string  `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
	Total    int               `json:"total"`
}

// ReminderResponse результат отправки напоминания
type ReminderResponse struct {
	BookingID string `json:"bookingId"`
	Sent      bool   `json:"sent"`
}

// FromDomainBooking конвертирует domain.Booking в BookingResponse
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	return &BookingResponse{
		ID:          b.ID.String(),
		BusinessID:  b.BusinessID.String(),
		ServiceID:   b.ServiceID.String(),
		ServiceName: b.ServiceName,
		ClientName:  b.ClientName,
		ClientPhone: b.ClientPhone,
		ClientEmail: b.ClientEmail,
		Date:        b.DateString(),
		Time:        b.Time.String(),
		Status:      string(b.Status),
		Price:       b.Price,
		Notes:       b.Notes,
		CreatedAt:   b.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   b.UpdatedAt.Format(time.RFC3339),
	}
}

// FromDomainBookingList конвертирует список бронирований
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	out := make([]BookingResponse, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, *FromDomainBooking(b))
	}
	return &BookingListResponse{
		Bookings: out,
		Total:    len(out),
	}
}
