package notifier

import (
	"context"

	"github.com/m04kA/SMB-BookingService/internal/domain"
)

// LogSender пишет уведомления в лог вместо реальной отправки (демо и разработка)
type LogSender struct {
	log Logger
}

func NewLogSender(log Logger) *LogSender {
	return &LogSender{log: log}
}

func (s *LogSender) Send(_ context.Context, n domain.Notification) error {
	s.log.Info("Notification [%s] to %s: %s", n.Type, n.Recipient, n.Text())
	return nil
}

func (s *LogSender) Channel() domain.NotificationChannel {
	return domain.ChannelSMS
}
