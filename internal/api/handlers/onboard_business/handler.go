package onboard_business

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
	service OnboardingService
	logger  Logger
}

func NewHandler(service OnboardingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/businesses/{businessId}/onboarding
// Создает профиль, расписание по умолчанию и пробную подписку; повторный вызов безопасен
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	businessID, err := uuid.Parse(mux.Vars(r)["businessId"])
	if err != nil {
		h.logger.Warn("POST /businesses/{id}/onboarding - Invalid business ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBusinessID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}
	if userID != businessID {
		h.logger.Warn("POST /businesses/{id}/onboarding - Access denied: business_id=%s, user_id=%s", businessID, userID)
		handlers.RespondForbidden(w, msgForbidden)
		return
	}

	var req models.OnboardRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /businesses/{id}/onboarding - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Onboard(r.Context(), businessID, &req)
	if err != nil {
		switch {
		case errors.Is(err, schedule.ErrInvalidInput):
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("POST /businesses/{id}/onboarding - Failed to onboard: business_id=%s, error=%v",
				businessID, err)
			handlers.RespondServiceUnavailable(w)
		}
		return
	}

	h.logger.Info("POST /businesses/{id}/onboarding - Business onboarded: business_id=%s, subscription=%s",
		businessID, result.Subscription.Status)
	handlers.RespondJSON(w, http.StatusOK, result)
}
