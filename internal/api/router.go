package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMB-BookingService/internal/api/handlers"
	"github.com/m04kA/SMB-BookingService/internal/api/middleware"
)

// Handler обработчик одного маршрута
type Handler interface {
	Handle(w http.ResponseWriter, r *http.Request)
}

// Handlers обработчики всех маршрутов API
type Handlers struct {
	// Публичные
	GetAvailableSlots Handler
	CreateBooking     Handler
	GetSchedule       Handler

	// Владелец бизнеса
	UpdateSchedule      Handler
	OnboardBusiness     Handler
	GetBusinessBookings Handler
	GetBooking          Handler
	UpdateBookingStatus Handler
	CancelBooking       Handler
	SendReminder        Handler
}

// Options инфраструктурные части роутера, все опциональны
type Options struct {
	Metrics        middleware.HTTPMetrics
	MetricsPath    string
	MetricsHandler http.Handler
	RateLimiter    *middleware.RateLimiter // только для публичных маршрутов
	Health         http.HandlerFunc
	Logger         middleware.Logger
}

// NewRouter собирает маршруты /api/v1
func NewRouter(h Handlers, opts Options) *mux.Router {
	r := mux.NewRouter()
	r.Use(middleware.RequestID)
	if opts.Logger != nil {
		r.Use(middleware.AccessLog(opts.Logger))
	}
	if opts.Metrics != nil {
		r.Use(middleware.MetricsMiddleware(opts.Metrics))
	}

	if opts.MetricsHandler != nil && opts.MetricsPath != "" {
		r.Handle(opts.MetricsPath, opts.MetricsHandler).Methods(http.MethodGet)
	}

	health := opts.Health
	if health == nil {
		health = func(w http.ResponseWriter, _ *http.Request) {
			handlers.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
		}
	}
	r.HandleFunc("/health", health).Methods(http.MethodGet)

	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации, с ограничением частоты)
	// ============================================================

	public := api.PathPrefix("").Subrouter()
	if opts.RateLimiter != nil {
		public.Use(opts.RateLimiter.Middleware)
	}

	// Свободные слоты на дату
	public.HandleFunc("/businesses/{businessId}/available-slots", h.GetAvailableSlots.Handle).Methods(http.MethodGet)

	// Создание бронирования клиентом
	public.HandleFunc("/businesses/{businessId}/bookings", h.CreateBooking.Handle).Methods(http.MethodPost)

	// Расписание бизнеса
	public.HandleFunc("/businesses/{businessId}/schedule", h.GetSchedule.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Настройки бизнеса ---
	protected.HandleFunc("/businesses/{businessId}/schedule", h.UpdateSchedule.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/businesses/{businessId}/onboarding", h.OnboardBusiness.Handle).Methods(http.MethodPost)

	// --- Бронирования бизнеса ---
	protected.HandleFunc("/businesses/{businessId}/bookings", h.GetBusinessBookings.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}", h.GetBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}/status", h.UpdateBookingStatus.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/{bookingId}/cancel", h.CancelBooking.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/{bookingId}/reminder", h.SendReminder.Handle).Methods(http.MethodPost)

	return r
}
