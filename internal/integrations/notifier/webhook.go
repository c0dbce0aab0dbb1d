package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/m04kA/SMB-BookingService/internal/domain"
)

// WebhookSender отправляет уведомления JSON POST запросом на внешний шлюз (SMS/WhatsApp)
type WebhookSender struct {
	url        string
	token      string
	httpClient *http.Client
	log        Logger
}

// NewWebhookSender создает новый экземпляр webhook провайдера
func NewWebhookSender(url, token string, timeout time.Duration, log Logger) *WebhookSender {
	return &WebhookSender{
		url:   url,
		token: token,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// Send отправляет уведомление, любой ответ кроме 2xx считается неудачей
func (s *WebhookSender) Send(ctx context.Context, n domain.Notification) error {
	body, err := json.Marshal(NewMessage(n, s.Channel()))
	if err != nil {
		return fmt.Errorf("%w: failed to encode message: %v", ErrInternal, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")
	if s.token != "" {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrDeliveryFailed, resp.StatusCode, string(respBody))
	}

	s.log.Info("Webhook notification [%s] delivered to %s", n.Type, n.Recipient)
	return nil
}

func (s *WebhookSender) Channel() domain.NotificationChannel {
	return domain.ChannelWhatsApp
}
