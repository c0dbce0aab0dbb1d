package schedule

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("schedule: invalid input data")

	// ErrInvalidSchedule возвращается, когда расписание нарушает инварианты
	ErrInvalidSchedule = errors.New("schedule: invalid schedule")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("schedule: internal error")
)
