package notifier

import "github.com/m04kA/SMB-BookingService/internal/domain"

// Message сообщение, отправляемое во внешние системы (webhook, kafka)
type Message struct {
	BusinessID   string `json:"businessId"`
	BookingID    string `json:"bookingId,omitempty"`
	Channel      string `json:"channel"`
	Type         string `json:"type"`
	Recipient    string `json:"recipient"`
	CustomerName string `json:"customerName"`
	BusinessName string `json:"businessName"`
	ServiceName  string `json:"serviceName"`
	Date         string `json:"date"`
	Time         string `json:"time"`
	Text         string `json:"text"`
}

// NewMessage собирает сообщение из уведомления
func NewMessage(n domain.Notification, channel domain.NotificationChannel) Message {
	m := Message{
		BusinessID:   n.BusinessID.String(),
		Channel:      string(channel),
		Type:         string(n.Type),
		Recipient:    n.Recipient,
		CustomerName: n.CustomerName,
		BusinessName: n.BusinessName,
		ServiceName:  n.ServiceName,
		Date:         n.Date,
		Time:         n.Time,
		Text:         n.Text(),
	}
	if n.BookingID != nil {
		m.BookingID = n.BookingID.String()
	}
	return m
}
