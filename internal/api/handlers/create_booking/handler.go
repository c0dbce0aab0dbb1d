package create_booking

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/m04kA/SMB-BookingService/internal/api/handlers"
	createBooking "github.com/m04kA/SMB-BookingService/internal/usecase/create_booking"
)

const (
	msgInvalidBusinessID   = "некорректный ID бизнеса"
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgServiceNotFound     = "услуга не найдена"
	msgServiceInactive     = "услуга временно недоступна"
	msgBusinessUnavailable = "бизнес сейчас не принимает бронирования"
	msgNoSchedule          = "бизнес еще не настроил расписание"
	msgDateOutOfRange      = "дата вне допустимого диапазона бронирования"
	msgDayClosed           = "бизнес не работает в выбранную дату"
	msgSlotTaken           = "выбранное время уже занято, обновите список слотов"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/businesses/{businessId}/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	businessID, err := uuid.Parse(mux.Vars(r)["businessId"])
	if err != nil {
		h.logger.Warn("POST /businesses/{id}/bookings - Invalid business ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBusinessID)
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /businesses/{id}/bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(businessID)
	if err != nil {
		h.logger.Warn("POST /businesses/{id}/bookings - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, err.Error())
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		if stage, ok := createBooking.RejectionStage(err); ok {
			h.logger.Info("POST /businesses/{id}/bookings - Booking rejected: business_id=%s, stage=%s", businessID, stage)
		}

		switch {
		case errors.Is(err, createBooking.ErrSlotTaken):
			h.logger.Warn("POST /businesses/{id}/bookings - Slot taken: business_id=%s, date=%s, time=%s",
				businessID, req.Date, req.Time)
			handlers.RespondConflict(w, handlers.CodeSlotTaken, msgSlotTaken)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /businesses/{id}/bookings - Invalid input: business_id=%s, error=%v", businessID, err)
			handlers.RespondBadRequest(w, err.Error())

		case errors.Is(err, createBooking.ErrServiceNotFound):
			h.logger.Warn("POST /businesses/{id}/bookings - Service not found: business_id=%s, service_id=%s",
				businessID, req.ServiceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, createBooking.ErrServiceInactive):
			handlers.RespondErrorCode(w, http.StatusUnprocessableEntity, handlers.CodeServiceInactive, msgServiceInactive)

		case errors.Is(err, createBooking.ErrBusinessUnavailable):
			h.logger.Warn("POST /businesses/{id}/bookings - Business unavailable: business_id=%s", businessID)
			handlers.RespondErrorCode(w, http.StatusForbidden, handlers.CodeBusinessLocked, msgBusinessUnavailable)

		case errors.Is(err, createBooking.ErrNoSchedule):
			handlers.RespondErrorCode(w, http.StatusUnprocessableEntity, handlers.CodeNoSchedule, msgNoSchedule)

		case errors.Is(err, createBooking.ErrDateOutOfRange):
			handlers.RespondErrorCode(w, http.StatusUnprocessableEntity, handlers.CodeDateOutOfRange, msgDateOutOfRange)

		case errors.Is(err, createBooking.ErrDayClosed):
			handlers.RespondErrorCode(w, http.StatusUnprocessableEntity, handlers.CodeDayClosed, msgDayClosed)

		default:
			h.logger.Error("POST /businesses/{id}/bookings - Failed to create booking: business_id=%s, error=%v",
				businessID, err)
			handlers.RespondServiceUnavailable(w)
		}
		return
	}

	h.logger.Info("POST /businesses/{id}/bookings - Booking created: booking_id=%s, business_id=%s, notification_sent=%t",
		result.Booking.ID, businessID, result.NotificationSent)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
