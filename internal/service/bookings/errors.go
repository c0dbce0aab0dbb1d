package bookings

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("bookings: booking not found")

	// ErrAccessDenied возвращается, когда бронирование принадлежит другому бизнесу
	ErrAccessDenied = errors.New("bookings: access denied")

	// ErrCannotCancel возвращается при отмене завершенного бронирования
	ErrCannotCancel = errors.New("bookings: booking cannot be cancelled")

	// ErrInvalidTransition возвращается при недопустимой смене статуса
	ErrInvalidTransition = errors.New("bookings: invalid status transition")

	// ErrStatusConflict возвращается, когда статус меняется параллельно быстрее, чем удается записать
	ErrStatusConflict = errors.New("bookings: booking status changed concurrently")

	// ErrNotActive возвращается при напоминании о неактивном бронировании
	ErrNotActive = errors.New("bookings: booking is not active")

	// ErrNotificationFailed возвращается, когда напоминание не удалось отправить
	ErrNotificationFailed = errors.New("bookings: notification failed")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("bookings: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("bookings: internal error")
)
