package get_available_slots

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMB-BookingService/internal/domain"
	"github.com/m04kA/SMB-BookingService/pkg/types"
)

// Request модель запроса на получение доступных слотов
type Request struct {
	BusinessID uuid.UUID
	Date       time.Time // Календарная дата, время игнорируется
}

// Response модель ответа со списком свободных слотов
// Status отличает закрытый день от полностью занятого и от недоступного бизнеса
type Response struct {
	BusinessID          uuid.UUID
	Date                time.Time
	Status              domain.AvailabilityStatus
	Slots               []types.TimeString // по возрастанию, пустой если Status != open
	SlotDurationMinutes int
}
