package notifications

import (
	"context"

	"github.com/m04kA/SMB-BookingService/internal/domain"
)

// Sender провайдер доставки
type Sender interface {
	Send(ctx context.Context, n domain.Notification) error
	Channel() domain.NotificationChannel
}

// LogRepository журнал отправленных уведомлений
type LogRepository interface {
	Create(ctx context.Context, entry *domain.NotificationLog) error
}

// MetricsRecorder интерфейс для учета уведомлений
type MetricsRecorder interface {
	IncNotification(notificationType string, sent bool)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
