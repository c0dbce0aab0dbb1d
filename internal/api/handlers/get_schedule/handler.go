package get_schedule

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/m04kA/SMB-BookingService/internal/api/handlers"
)

const msgInvalidBusinessID = "некорректный ID бизнеса"

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

// Handle GET /api/v1/businesses/{businessId}/schedule
// Публичный endpoint - без авторизации
// Если расписание не сохранено, возвращаются значения по умолчанию с isDefault=true
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	businessID, err := uuid.Parse(mux.Vars(r)["businessId"])
	if err != nil {
		h.logger.Warn("GET /businesses/{id}/schedule - Invalid business ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBusinessID)
		return
	}

	result, err := h.service.Get(r.Context(), businessID)
	if err != nil {
		h.logger.Error("GET /businesses/{id}/schedule - Failed to get schedule: business_id=%s, error=%v",
			businessID, err)
		handlers.RespondServiceUnavailable(w)
		return
	}

	h.logger.Info("GET /businesses/{id}/schedule - business_id=%s, is_default=%t", businessID, result.IsDefault)
	handlers.RespondJSON(w, http.StatusOK, result)
}
