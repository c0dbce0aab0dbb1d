package subscription

import "errors"

var (
	// ErrSubscriptionNotFound возвращается, когда у бизнеса нет подписки
	ErrSubscriptionNotFound = errors.New("subscription: subscription not found")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("subscription: internal error")
)
