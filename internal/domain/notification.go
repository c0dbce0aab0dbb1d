package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// NotificationType тип уведомления
type NotificationType string

const (
	NotificationConfirmation NotificationType = "confirmation"
	NotificationReminder     NotificationType = "reminder"
	NotificationCancellation NotificationType = "cancellation"
)

// NotificationChannel канал доставки
type NotificationChannel string

const (
	ChannelEmail    NotificationChannel = "email"
	ChannelSMS      NotificationChannel = "sms"
	ChannelWhatsApp NotificationChannel = "whatsapp"
)

// Notification данные уведомления клиенту
type Notification struct {
	BusinessID   uuid.UUID
	BookingID    *uuid.UUID
	Recipient    string
	Type         NotificationType
	CustomerName string
	BusinessName string
	ServiceName  string
	Date         string // YYYY-MM-DD
	Time         string // HH:MM
}

// NewBookingNotification собирает уведомление по бронированию
func NewBookingNotification(t NotificationType, booking *Booking, businessName string) Notification {
	id := booking.ID
	return Notification{
		BusinessID:   booking.BusinessID,
		BookingID:    &id,
		Recipient:    booking.ClientPhone,
		Type:         t,
		CustomerName: booking.ClientName,
		BusinessName: businessName,
		ServiceName:  booking.ServiceName,
		Date:         booking.DateString(),
		Time:         booking.Time.String(),
	}
}

// Text текст сообщения клиенту
func (n Notification) Text() string {
	switch n.Type {
	case NotificationCancellation:
		return fmt.Sprintf("Hi %s, your booking at %s for %s on %s at %s is CANCELLED.",
			n.CustomerName, n.BusinessName, n.ServiceName, n.Date, n.Time)
	case NotificationReminder:
		return fmt.Sprintf("Hi %s, this is a reminder of your booking at %s for %s on %s at %s.",
			n.CustomerName, n.BusinessName, n.ServiceName, n.Date, n.Time)
	default:
		return fmt.Sprintf("Hi %s, your booking at %s for %s on %s at %s is CONFIRMED.",
			n.CustomerName, n.BusinessName, n.ServiceName, n.Date, n.Time)
	}
}

// NotificationLogSent статус записи журнала для доставленного сообщения
const NotificationLogSent = "sent"

// NotificationLog запись журнала отправленных уведомлений
type NotificationLog struct {
	ID         uuid.UUID
	BusinessID uuid.UUID
	BookingID  *uuid.UUID
	Channel    NotificationChannel
	Type       NotificationType
	Recipient  string
	Content    string
	Status     string
	CreatedAt  time.Time
}
