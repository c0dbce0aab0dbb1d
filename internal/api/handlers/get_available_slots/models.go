package get_available_slots

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMB-BookingService/internal/domain"
	getAvailableSlots "github.com/m04kA/SMB-BookingService/internal/usecase/get_available_slots"
)

// AvailableSlotsResponse HTTP response model
// Status всегда заполнен, чтобы UI различал закрытый день и полностью занятый
type AvailableSlotsResponse struct {
	BusinessID          string   `json:"businessId"`
	Date                string   `json:"date"`
	Status              string   `json:"status"`
	Slots               []string `json:"slots"`
	SlotDurationMinutes int      `json:"slotDurationMinutes,omitempty"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make([]string, len(resp.Slots))
	for i, slot := range resp.Slots {
		slots[i] = slot.String()
	}

	return &AvailableSlotsResponse{
		BusinessID:          resp.BusinessID.String(),
		Date:                resp.Date.Format(domain.DateFormat),
		Status:              string(resp.Status),
		Slots:               slots,
		SlotDurationMinutes: resp.SlotDurationMinutes,
	}
}

// ToUseCaseRequest создает запрос use case из параметров
func ToUseCaseRequest(businessID uuid.UUID, dateStr string) (*getAvailableSlots.Request, error) {
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, err
	}

	return &getAvailableSlots.Request{
		BusinessID: businessID,
		Date:       date,
	}, nil
}
