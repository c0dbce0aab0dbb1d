package update_schedule

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/m04kA/SMB-BookingService/internal/api/handlers"
	"github.com/m04kA/SMB-BookingService/internal/api/middleware"
	"github.com/m04kA/SMB-BookingService/internal/service/schedule"
	"github.com/m04kA/SMB-BookingService/internal/service/schedule/models"
)

const (
	msgInvalidBusinessID  = "некорректный ID бизнеса"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgForbidden          = "доступ запрещен"
)

type Handler struct {
	service ScheduleService
	logger  Logger
}

func NewHandler(service ScheduleService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/businesses/{businessId}/schedule
// Обновляются только переданные поля, остальные берутся из текущего расписания
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	businessID, err := uuid.Parse(mux.Vars(r)["businessId"])
	if err != nil {
		h.logger.Warn("PUT /businesses/{id}/schedule - Invalid business ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBusinessID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}
	if userID != businessID {
		h.logger.Warn("PUT /businesses/{id}/schedule - Access denied: business_id=%s, user_id=%s", businessID, userID)
		handlers.RespondForbidden(w, msgForbidden)
		return
	}

	var req models.UpdateScheduleRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /businesses/{id}/schedule - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Upsert(r.Context(), businessID, &req)
	if err != nil {
		switch {
		case errors.Is(err, schedule.ErrInvalidInput), errors.Is(err, schedule.ErrInvalidSchedule):
			h.logger.Warn("PUT /businesses/{id}/schedule - Invalid schedule: business_id=%s, error=%v", businessID, err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("PUT /businesses/{id}/schedule - Failed to update schedule: business_id=%s, error=%v",
				businessID, err)
			handlers.RespondServiceUnavailable(w)
		}
		return
	}

	h.logger.Info("PUT /businesses/{id}/schedule - Schedule updated: business_id=%s", businessID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
