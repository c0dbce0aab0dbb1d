package notifier

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/segmentio/kafka-go"

	"github.com/m04kA/SMB-BookingService/internal/domain"
)

// KafkaSender публикует уведомления в топик Kafka для внешнего сервиса доставки
type KafkaSender struct {
	writer MessageWriter
	log    Logger
}

// NewKafkaSender создает провайдер с writer'ом на указанные брокеры
// Ключ сообщения - ID бизнеса, поэтому уведомления одного бизнеса попадают в одну партицию
func NewKafkaSender(brokers []string, topic string, log Logger) *KafkaSender {
	writer := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		AllowAutoTopicCreation: true,
	}
	return NewKafkaSenderWithWriter(writer, log)
}

// NewKafkaSenderWithWriter создает провайдер с переданным writer'ом
func NewKafkaSenderWithWriter(writer MessageWriter, log Logger) *KafkaSender {
	return &KafkaSender{writer: writer, log: log}
}

func (s *KafkaSender) Send(ctx context.Context, n domain.Notification) error {
	value, err := json.Marshal(NewMessage(n, s.Channel()))
	if err != nil {
		return fmt.Errorf("%w: failed to encode message: %v", ErrInternal, err)
	}

	msg := kafka.Message{
		Key:   []byte(n.BusinessID.String()),
		Value: value,
		Headers: []kafka.Header{
			{Key: "notification_type", Value: []byte(n.Type)},
		},
	}

	if err := s.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("%w: failed to write message: %v", ErrDeliveryFailed, err)
	}

	return nil
}

func (s *KafkaSender) Channel() domain.NotificationChannel {
	return domain.ChannelSMS
}

// Close закрывает writer
func (s *KafkaSender) Close() error {
	return s.writer.Close()
}
