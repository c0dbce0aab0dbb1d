package notifications

import (
	"context"

	"github.com/m04kA/SMB-BookingService/internal/domain"
)

// Service отправляет уведомления клиентам и ведет журнал доставки
// Ошибки доставки и журнала только логируются
type Service struct {
	sender  Sender
	logRepo LogRepository
	metrics MetricsRecorder
	logger  Logger
}

// NewService создает сервис уведомлений
func NewService(sender Sender, logRepo LogRepository, metrics MetricsRecorder, logger Logger) *Service {
	return &Service{
		sender:  sender,
		logRepo: logRepo,
		metrics: metrics,
		logger:  logger,
	}
}

// Send отправляет уведомление и возвращает true при успешной доставке
func (s *Service) Send(ctx context.Context, n domain.Notification) bool {
	if n.Recipient == "" {
		s.logger.Warn("Send: %s notification for business=%s has no recipient", n.Type, n.BusinessID)
		s.observe(n.Type, false)
		return false
	}

	if err := s.sender.Send(ctx, n); err != nil {
		s.logger.Error("Send: failed to deliver %s notification to %s via %s: %v",
			n.Type, n.Recipient, s.sender.Channel(), err)
		s.observe(n.Type, false)
		return false
	}
	s.observe(n.Type, true)

	entry := &domain.NotificationLog{
		BusinessID: n.BusinessID,
		BookingID:  n.BookingID,
		Channel:    s.sender.Channel(),
		Type:       n.Type,
		Recipient:  n.Recipient,
		Content:    n.Text(),
		Status:     domain.NotificationLogSent,
	}
	if err := s.logRepo.Create(ctx, entry); err != nil {
		s.logger.Error("Send: %s notification delivered to %s but log entry failed: %v", n.Type, n.Recipient, err)
	}

	s.logger.Info("Send: %s notification delivered to %s via %s", n.Type, n.Recipient, s.sender.Channel())
	return true
}

func (s *Service) observe(t domain.NotificationType, sent bool) {
	if s.metrics != nil {
		s.metrics.IncNotification(string(t), sent)
	}
}
