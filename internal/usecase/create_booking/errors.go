package create_booking

import (
	"errors"

	"github.com/m04kA/SMB-BookingService/internal/domain"
)

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrServiceNotFound возвращается, когда услуга не найдена у бизнеса
	ErrServiceNotFound = errors.New("create_booking: service not found")

	// ErrServiceInactive возвращается, когда услуга отключена
	ErrServiceInactive = errors.New("create_booking: service is not active")

	// ErrBusinessUnavailable возвращается, когда подписка бизнеса не позволяет принимать бронирования
	ErrBusinessUnavailable = errors.New("create_booking: business is not accepting bookings")

	// ErrNoSchedule возвращается, когда у бизнеса не настроено расписание
	ErrNoSchedule = errors.New("create_booking: business has no schedule")

	// ErrDateOutOfRange возвращается для даты в прошлом или за горизонтом бронирования
	ErrDateOutOfRange = errors.New("create_booking: date is out of booking range")

	// ErrDayClosed возвращается, когда бизнес не работает в этот день
	ErrDayClosed = errors.New("create_booking: business is closed on this date")

	// ErrSlotTaken возвращается, когда выбранное время больше не свободно
	// Клиент должен обновить список слотов и выбрать заново
	ErrSlotTaken = errors.New("create_booking: slot is no longer available")

	// ErrInternal возвращается при внутренних ошибках usecase (временных, можно повторить)
	ErrInternal = errors.New("create_booking: internal error")
)

// RejectedError отказ в бронировании с этапом, на котором он произошел
// Итоговое состояние попытки всегда domain.StateRejected, Stage - где именно отказали.
// Внутренние ошибки (ErrInternal) не считаются отказом и так не оборачиваются
type RejectedError struct {
	Stage domain.CommitState
	Err   error
}

func (e *RejectedError) Error() string {
	return e.Err.Error()
}

func (e *RejectedError) Unwrap() error {
	return e.Err
}

// State итоговое состояние попытки
func (e *RejectedError) State() domain.CommitState {
	return domain.StateRejected
}

// RejectionStage возвращает этап отказа, если err - отказ в бронировании
func RejectionStage(err error) (domain.CommitState, bool) {
	var rejected *RejectedError
	if errors.As(err, &rejected) {
		return rejected.Stage, true
	}
	return "", false
}
