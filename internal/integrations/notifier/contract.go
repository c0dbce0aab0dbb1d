package notifier

import (
	"context"

	"github.com/segmentio/kafka-go"

	"github.com/m04kA/SMB-BookingService/internal/domain"
)

// Sender провайдер доставки уведомлений
type Sender interface {
	Send(ctx context.Context, n domain.Notification) error
	Channel() domain.NotificationChannel
}

// MessageWriter интерфейс writer'а Kafka (реализуется *kafka.Writer)
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
