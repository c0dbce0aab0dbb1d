package send_reminder

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/m04kA/SMB-BookingService/internal/api/handlers"
	"github.com/m04kA/SMB-BookingService/internal/api/middleware"
	"github.com/m04kA/SMB-BookingService/internal/service/bookings"
)

const (
	msgInvalidBookingID   = "некорректный ID бронирования"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgNotFound           = "бронирование не найдено"
	msgForbidden          = "доступ запрещен"
	msgNotActive          = "напоминание можно отправить только по активному бронированию"
	msgNotificationFailed = "не удалось отправить напоминание"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings/{bookingId}/reminder
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID, err := uuid.Parse(mux.Vars(r)["bookingId"])
	if err != nil {
		h.logger.Warn("POST /bookings/{id}/reminder - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	result, err := h.service.SendReminder(r.Context(), bookingID, userID)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrBookingNotFound):
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, bookings.ErrAccessDenied):
			h.logger.Warn("POST /bookings/{id}/reminder - Access denied: booking_id=%s, user_id=%s", bookingID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, bookings.ErrNotActive):
			handlers.RespondErrorCode(w, http.StatusConflict, handlers.CodeInvalidTransition, msgNotActive)

		case errors.Is(err, bookings.ErrNotificationFailed):
			h.logger.Warn("POST /bookings/{id}/reminder - Delivery failed: booking_id=%s", bookingID)
			handlers.RespondErrorCode(w, http.StatusBadGateway, handlers.CodeNotificationFailed, msgNotificationFailed)

		default:
			h.logger.Error("POST /bookings/{id}/reminder - Failed to send reminder: booking_id=%s, error=%v",
				bookingID, err)
			handlers.RespondServiceUnavailable(w)
		}
		return
	}

	h.logger.Info("POST /bookings/{id}/reminder - Reminder sent: booking_id=%s", bookingID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
