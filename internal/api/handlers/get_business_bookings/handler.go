package get_business_bookings

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/m04kA/SMB-BookingService/internal/api/handlers"
	"github.com/m04kA/SMB-BookingService/internal/api/middleware"
)

const (
	msgInvalidBusinessID = "некорректный ID бизнеса"
	msgMissingUserID     = "отсутствует ID пользователя"
	msgInvalidParams     = "некорректные параметры запроса"
	msgForbidden         = "доступ запрещен"
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

// Handle GET /api/v1/businesses/{businessId}/bookings
// Query params: date, includeInactive (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	businessID, err := uuid.Parse(mux.Vars(r)["businessId"])
	if err != nil {
		h.logger.Warn("GET /businesses/{id}/bookings - Invalid business ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBusinessID)
		return
	}

	// Получаем userID из контекста (через middleware Auth)
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /businesses/{id}/bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}
	if userID != businessID {
		h.logger.Warn("GET /businesses/{id}/bookings - Access denied: business_id=%s, user_id=%s", businessID, userID)
		handlers.RespondForbidden(w, msgForbidden)
		return
	}

	serviceReq, err := ToServiceRequest(businessID, r.URL.Query().Get("date"), r.URL.Query().Get("includeInactive"))
	if err != nil {
		h.logger.Warn("GET /businesses/{id}/bookings - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := h.service.ListByDate(r.Context(), serviceReq)
	if err != nil {
		h.logger.Error("GET /businesses/{id}/bookings - Failed to get bookings: business_id=%s, error=%v",
			businessID, err)
		handlers.RespondServiceUnavailable(w)
		return
	}

	h.logger.Info("GET /businesses/{id}/bookings - Bookings retrieved: business_id=%s, count=%d",
		businessID, result.Total)
	handlers.RespondJSON(w, http.StatusOK, result)
}
