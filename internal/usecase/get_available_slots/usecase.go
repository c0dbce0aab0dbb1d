package get_available_slots

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMB-BookingService/internal/domain"
	scheduleRepo "github.com/m04kA/SMB-BookingService/internal/infra/storage/schedule"
	"github.com/m04kA/SMB-BookingService/pkg/types"
)

// UseCase use case для получения свободных слотов бизнеса на дату
type UseCase struct {
	bookingRepo  BookingRepository
	scheduleRepo ScheduleRepository
	oracle       SubscriptionOracle
	metrics      MetricsRecorder
	location     *time.Location
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
// location - часовой пояс бизнеса, в нем вычисляется "сегодня"
func NewUseCase(
	bookingRepo BookingRepository,
	scheduleRepo ScheduleRepository,
	oracle SubscriptionOracle,
	metrics MetricsRecorder,
	location *time.Location,
	logger Logger,
) *UseCase {
	if location == nil {
		location = time.UTC
	}
	return &UseCase{
		bookingRepo:  bookingRepo,
		scheduleRepo: scheduleRepo,
		oracle:       oracle,
		metrics:      metrics,
		location:     location,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// WithTimeProvider подменяет источник текущего времени
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute выполняет use case получения свободных слотов
// Каждый вызов заново читает подписку, расписание и бронирования, кэша нет
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: business=%s, date=%s", req.BusinessID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if req.BusinessID == uuid.Nil {
		return nil, fmt.Errorf("%w: businessID is required", ErrInvalidInput)
	}
	if req.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	date := time.Date(req.Date.Year(), req.Date.Month(), req.Date.Day(), 0, 0, 0, 0, uc.location)
	resp := &Response{
		BusinessID: req.BusinessID,
		Date:       date,
		Slots:      []types.TimeString{},
	}

	// 2. Подписка проверяется до любых вычислений
	allowed, err := uc.oracle.IsBookingAllowed(ctx, req.BusinessID)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to check subscription for business=%s: %v", req.BusinessID, err)
		return nil, fmt.Errorf("%w: failed to check subscription: %v", ErrInternal, err)
	}
	if !allowed {
		uc.logger.Info("GetAvailableSlots: business=%s is not allowed to accept bookings", req.BusinessID)
		return uc.finish(resp, domain.AvailabilityBusinessUnavailable), nil
	}

	// 3. Получаем расписание, отсутствие расписания - закрыто, не ошибка
	schedule, err := uc.scheduleRepo.Get(ctx, req.BusinessID)
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrScheduleNotFound) {
			uc.logger.Info("GetAvailableSlots: business=%s has no schedule", req.BusinessID)
			return uc.finish(resp, domain.AvailabilityNoSchedule), nil
		}
		uc.logger.Error("GetAvailableSlots: failed to get schedule for business=%s: %v", req.BusinessID, err)
		return nil, fmt.Errorf("%w: failed to get schedule: %v", ErrInternal, err)
	}
	resp.SlotDurationMinutes = schedule.SlotDurationMinutes

	// 4. Проверяем горизонт бронирования [сегодня, сегодня + advanceBookingDays]
	now := uc.timeProvider.Now().In(uc.location)
	today := domain.DateOnly(now)
	if date.Before(today) || date.After(today.AddDate(0, 0, schedule.AdvanceBookingDays)) {
		uc.logger.Info("GetAvailableSlots: date=%s is out of range (today=%s, advance=%d days)",
			date.Format(domain.DateFormat), today.Format(domain.DateFormat), schedule.AdvanceBookingDays)
		return uc.finish(resp, domain.AvailabilityDateOutOfRange), nil
	}

	// 5. Выключенный день - бронирования не запрашиваем
	day := schedule.ForDate(date)
	if !day.Enabled {
		uc.logger.Info("GetAvailableSlots: %s is closed for business=%s", domain.WeekdayOf(date), req.BusinessID)
		return uc.finish(resp, domain.AvailabilityDayClosed), nil
	}

	// 6. Генерируем кандидатов
	candidates, err := uc.candidates(day, schedule, date, now)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: invalid stored schedule for business=%s: %v", req.BusinessID, err)
		return nil, fmt.Errorf("%w: invalid stored schedule: %v", ErrInternal, err)
	}

	// 7. Занятые времена (только scheduled и confirmed)
	reserved, err := uc.bookingRepo.ListActiveTimes(ctx, req.BusinessID, date)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get bookings for business=%s: %v", req.BusinessID, err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	// 8. Фильтруем
	resp.Slots = FreeSlots(candidates, ReservedSet(reserved))

	status := domain.AvailabilityOpen
	if len(resp.Slots) == 0 {
		status = domain.AvailabilityFullyBooked
	}

	uc.logger.Info("GetAvailableSlots: %d free slots for business=%s, date=%s (%d reserved)",
		len(resp.Slots), req.BusinessID, date.Format(domain.DateFormat), len(reserved))

	return uc.finish(resp, status), nil
}

// candidates собирает последовательность слотов дня: генерация, исключение перерыва,
// для сегодняшней даты - только слоты, начинающиеся не раньше текущего времени
func (uc *UseCase) candidates(
	day domain.DaySchedule,
	schedule *domain.WeeklySchedule,
	date time.Time,
	now time.Time,
) (iter.Seq[types.TimeString], error) {
	if err := day.Validate(); err != nil {
		return nil, err
	}

	slots := GenerateSlots(day.Start, day.End, schedule.SlotDurationMinutes, schedule.BufferMinutes)

	if day.HasBreak() {
		// Формат перерыва проверен в Validate
		breakStart, _ := day.BreakStart.Minutes()
		breakEnd, _ := day.BreakEnd.Minutes()
		slots = withoutBreak(slots, schedule.SlotDurationMinutes, breakStart, breakEnd)
	}

	if date.Equal(domain.DateOnly(now)) {
		slots = notBefore(slots, now.Hour()*60+now.Minute())
	}

	return slots, nil
}

func (uc *UseCase) finish(resp *Response, status domain.AvailabilityStatus) *Response {
	resp.Status = status
	if uc.metrics != nil {
		uc.metrics.ObserveAvailabilityQuery(string(status))
	}
	return resp
}
