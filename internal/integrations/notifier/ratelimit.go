package notifier

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"

	"github.com/m04kA/SMB-BookingService/internal/domain"
)

// RateLimited ограничивает частоту отправки через провайдер
// Вызов ждет свободного токена, пока контекст не отменен
type RateLimited struct {
	next    Sender
	limiter *rate.Limiter
}

// NewRateLimited оборачивает провайдер лимитом perSecond отправок в секунду с burst
func NewRateLimited(next Sender, perSecond float64, burst int) *RateLimited {
	if burst <= 0 {
		burst = 1
	}
	return &RateLimited{
		next:    next,
		limiter: rate.NewLimiter(rate.Limit(perSecond), burst),
	}
}

func (r *RateLimited) Send(ctx context.Context, n domain.Notification) error {
	if err := r.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("%w: %v", ErrRateLimited, err)
	}
	return r.next.Send(ctx, n)
}

func (r *RateLimited) Channel() domain.NotificationChannel {
	return r.next.Channel()
}
