package domain

// AvailabilityStatus классификация ответа о доступности
// Позволяет UI различать закрытый день, полностью занятый день и недоступный бизнес
type AvailabilityStatus string

const (
	AvailabilityOpen                AvailabilityStatus = "open"
	AvailabilityFullyBooked         AvailabilityStatus = "fully_booked"
	AvailabilityDayClosed           AvailabilityStatus = "day_closed"
	AvailabilityNoSchedule          AvailabilityStatus = "no_schedule"
	AvailabilityDateOutOfRange      AvailabilityStatus = "date_out_of_range"
	AvailabilityBusinessUnavailable AvailabilityStatus = "business_unavailable"
)

// CommitState состояние попытки бронирования
type CommitState string

const (
	StateSelectingService  CommitState = "selecting_service"
	StateSelectingSlot     CommitState = "selecting_slot"
	StateConfirmingDetails CommitState = "confirming_details"
	StateCommitting        CommitState = "committing"
	StateCommitted         CommitState = "committed"
	StateRejected          CommitState = "rejected"
)
