package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMB-BookingService/pkg/types"
)

// BookingStatus статус бронирования
type BookingStatus string

const (
	StatusScheduled BookingStatus = "scheduled"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCompleted BookingStatus = "completed"
	StatusCancelled BookingStatus = "cancelled"
)

// ActiveStatuses статусы, которые занимают слот
var ActiveStatuses = []BookingStatus{
	StatusScheduled,
	StatusConfirmed,
}

// ParseBookingStatus конвертирует строку в статус
func ParseBookingStatus(s string) (BookingStatus, error) {
	switch status := BookingStatus(s); status {
	case StatusScheduled, StatusConfirmed, StatusCompleted, StatusCancelled:
		return status, nil
	default:
		return "", fmt.Errorf("unknown booking status %q", s)
	}
}

// IsActive возвращает true для статусов, которые блокируют слот
func (s BookingStatus) IsActive() bool {
	return s == StatusScheduled || s == StatusConfirmed
}

// Booking бронирование клиента
type Booking struct {
	ID          uuid.UUID
	BusinessID  uuid.UUID
	ServiceID   uuid.UUID
	ServiceName string
	ClientName  string
	ClientPhone string
	ClientEmail *string
	Date        time.Time        // календарная дата без времени
	Time        types.TimeString // HH:MM
	Status      BookingStatus
	Price       float64
	Notes       *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive возвращает true, если бронирование занимает слот
func (b *Booking) IsActive() bool {
	return b.Status.IsActive()
}

// IsTerminal возвращает true для завершенных и отмененных бронирований
func (b *Booking) IsTerminal() bool {
	return !b.Status.IsActive()
}

// CanBeCancelled возвращает true, если бронирование можно отменить
func (b *Booking) CanBeCancelled() bool {
	return b.Status.IsActive()
}

// CanTransitionTo проверяет допустимость перехода статуса
// scheduled -> confirmed -> completed, любой активный -> cancelled
func (b *Booking) CanTransitionTo(next BookingStatus) bool {
	switch b.Status {
	case StatusScheduled:
		return next == StatusConfirmed || next == StatusCompleted || next == StatusCancelled
	case StatusConfirmed:
		return next == StatusCompleted || next == StatusCancelled
	default:
		return false
	}
}

// DateString дата бронирования в формате YYYY-MM-DD
func (b *Booking) DateString() string {
	return b.Date.Format(DateFormat)
}

// DateOnly обрезает время, оставляя календарную дату
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// BookingsFilter фильтр списка бронирований бизнеса
type BookingsFilter struct {
	BusinessID      uuid.UUID
	Date            *time.Time // если nil - без ограничения по дате
	IncludeInactive bool       // включать завершенные и отмененные
}
