package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMB-BookingService/internal/domain"
	subscriptionModels "github.com/m04kA/SMB-BookingService/internal/service/subscription/models"
	"github.com/m04kA/SMB-BookingService/pkg/ptr"
	"github.com/m04kA/SMB-BookingService/pkg/types"
)

// Request модели

// DayRequest расписание одного дня
// Перерыв задается обоими полями или не задается вовсе
type DayRequest struct {
	Enabled    bool    `json:"enabled"`
	Start      string  `json:"start"`                // "09:00"
	End        string  `json:"end"`                  // "17:00"
	BreakStart *string `json:"breakStart,omitempty"` // "12:00"
	BreakEnd   *string `json:"breakEnd,omitempty"`   // "13:00"
}

// UpdateScheduleRequest запрос на обновление расписания
// Все поля опциональны - обновляются только переданные значения, дни ключуются по имени ("monday")
type UpdateScheduleRequest struct {
	Days                map[string]DayRequest `json:"days,omitempty"`
	SlotDurationMinutes *int                  `json:"slotDurationMinutes,omitempty"`
	BufferMinutes       *int                  `json:"bufferMinutes,omitempty"`
	AdvanceBookingDays  *int                  `json:"advanceBookingDays,omitempty"`
}

// OnboardRequest запрос на подключение бизнеса
type OnboardRequest struct {
	BusinessName string `json:"businessName"`
}

// Response модели

// DayResponse расписание одного дня
type DayResponse struct {
	Enabled    bool    `json:"enabled"`
	Start      string  `json:"start"`
	End        string  `json:"end"`
	BreakStart *string `json:"breakStart,omitempty"`
	BreakEnd   *string `json:"breakEnd,omitempty"`
}

// ScheduleResponse недельное расписание бизнеса
type ScheduleResponse struct {
	BusinessID          string                 `json:"businessId"`
	BusinessName        string                 `json:"businessName,omitempty"`
	Days                map[string]DayResponse `json:"days"`
	SlotDurationMinutes int                    `json:"slotDurationMinutes"`
	BufferMinutes       int                    `json:"bufferMinutes"`
	AdvanceBookingDays  int                    `json:"advanceBookingDays"`
	IsDefault           bool                   `json:"isDefault"` // расписание еще не сохранено
	UpdatedAt           *string                `json:"updatedAt,omitempty"`
}

// ProfileResponse профиль бизнеса
type ProfileResponse struct {
	BusinessID   string `json:"businessId"`
	BusinessName string `json:"businessName"`
}

// OnboardResponse результат онбординга
type OnboardResponse struct {
	Profile      ProfileResponse                          `json:"profile"`
	Schedule     *ScheduleResponse                        `json:"schedule"`
	Subscription *subscriptionModels.SubscriptionResponse `json:"subscription"`
}

// Методы конвертации

// FromDomainSchedule конвертирует domain.WeeklySchedule в DTO
func FromDomainSchedule(s *domain.WeeklySchedule, isDefault bool) *ScheduleResponse {
	if s == nil {
		return nil
	}

	days := make(map[string]DayResponse, domain.DaysPerWeek)
	for day := domain.Monday; day <= domain.Sunday; day++ {
		d := s.Days[day]
		days[day.String()] = DayResponse{
			Enabled:    d.Enabled,
			Start:      d.Start.String(),
			End:        d.End.String(),
			BreakStart: timePtrString(d.BreakStart),
			BreakEnd:   timePtrString(d.BreakEnd),
		}
	}

	resp := &ScheduleResponse{
		BusinessID:          s.BusinessID.String(),
		Days:                days,
		SlotDurationMinutes: s.SlotDurationMinutes,
		BufferMinutes:       s.BufferMinutes,
		AdvanceBookingDays:  s.AdvanceBookingDays,
		IsDefault:           isDefault,
	}
	if !isDefault && !s.UpdatedAt.IsZero() {
		updated := s.UpdatedAt.Format(time.RFC3339)
		resp.UpdatedAt = &updated
	}
	return resp
}

// ApplyToSchedule применяет обновления к существующему расписанию
// Обновляются только непустые (not nil) поля из request
func (r *UpdateScheduleRequest) ApplyToSchedule(s *domain.WeeklySchedule) error {
	if r.SlotDurationMinutes != nil {
		s.SlotDurationMinutes = *r.SlotDurationMinutes
	}
	if r.BufferMinutes != nil {
		s.BufferMinutes = *r.BufferMinutes
	}
	if r.AdvanceBookingDays != nil {
		s.AdvanceBookingDays = *r.AdvanceBookingDays
	}

	for name, req := range r.Days {
		day, ok := domain.ParseWeekday(strings.ToLower(strings.TrimSpace(name)))
		if !ok {
			return fmt.Errorf("unknown weekday %q", name)
		}
		parsed, err := req.toDomain()
		if err != nil {
			return fmt.Errorf("%s: %w", day, err)
		}
		s.Days[day] = parsed
	}

	return nil
}

func (r DayRequest) toDomain() (domain.DaySchedule, error) {
	start, err := types.NewTimeStringFromString(r.Start)
	if err != nil {
		return domain.DaySchedule{}, fmt.Errorf("start: %w", err)
	}
	end, err := types.NewTimeStringFromString(r.End)
	if err != nil {
		return domain.DaySchedule{}, fmt.Errorf("end: %w", err)
	}

	day := domain.DaySchedule{
		Enabled: r.Enabled,
		Start:   start,
		End:     end,
	}

	if r.BreakStart != nil {
		bs, err := types.NewTimeStringFromString(*r.BreakStart)
		if err != nil {
			return domain.DaySchedule{}, fmt.Errorf("breakStart: %w", err)
		}
		day.BreakStart = &bs
	}
	if r.BreakEnd != nil {
		be, err := types.NewTimeStringFromString(*r.BreakEnd)
		if err != nil {
			return domain.DaySchedule{}, fmt.Errorf("breakEnd: %w", err)
		}
		day.BreakEnd = &be
	}

	return day, nil
}

func timePtrString(t *types.TimeString) *string {
	if t == nil {
		return nil
	}
	return ptr.Ptr(t.String())
}
