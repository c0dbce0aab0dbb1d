package notifier

import "errors"

var (
	// ErrInternal возвращается при внутренних ошибках провайдера
	ErrInternal = errors.New("notifier: internal error")

	// ErrDeliveryFailed возвращается, когда получатель отклонил уведомление
	ErrDeliveryFailed = errors.New("notifier: delivery failed")

	// ErrRateLimited возвращается, когда лимит отправки не дождался слота до отмены контекста
	ErrRateLimited = errors.New("notifier: rate limit wait aborted")
)
