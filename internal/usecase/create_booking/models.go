package create_booking

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMB-BookingService/internal/domain"
	"github.com/m04kA/SMB-BookingService/pkg/types"
)

// Request модель запроса на создание бронирования с публичной страницы
type Request struct {
	BusinessID  uuid.UUID
	ServiceID   uuid.UUID
	ClientName  string
	ClientPhone string
	ClientEmail *string
	Date        time.Time        // Дата бронирования (без времени)
	Time        types.TimeString // Выбранный слот, например "10:00"
	Notes       *string
}

// Response модель ответа с созданным бронированием
type Response struct {
	State   domain.CommitState
	Booking *domain.Booking

	// NotificationSent false, если подтверждение не удалось отправить (бронирование при этом создано)
	NotificationSent bool
}
