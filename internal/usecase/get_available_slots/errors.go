package get_available_slots

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_available_slots: invalid input data")

	// ErrInternal возвращается при сбое хранилища или поврежденных данных
	// Ошибка временная, клиент может повторить запрос
	ErrInternal = errors.New("get_available_slots: internal error")
)
