package create_booking

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/m04kA/SMB-BookingService/internal/domain"
	bookingRepo "github.com/m04kA/SMB-BookingService/internal/infra/storage/booking"
	businessRepo "github.com/m04kA/SMB-BookingService/internal/infra/storage/business"
	offeringRepo "github.com/m04kA/SMB-BookingService/internal/infra/storage/offering"
	getAvailableSlots "github.com/m04kA/SMB-BookingService/internal/usecase/get_available_slots"
)

// Причины отказа для метрик
const (
	rejectSlotTaken   = "slot_taken"
	rejectUnavailable = "business_unavailable"
	rejectOutOfRange  = "date_out_of_range"
	rejectClosed      = "day_closed"
	rejectNoSchedule  = "no_schedule"
	rejectService     = "service"
	rejectInvalid     = "invalid_input"
)

// UseCase use case для создания бронирования с публичной страницы
// Последовательность без транзакций и блокировок: повторная проверка слота,
// вставка (уникальный индекс - вторая линия защиты), upsert клиента, уведомление
type UseCase struct {
	availability AvailabilityQuery
	bookingRepo  BookingRepository
	serviceRepo  ServiceRepository
	clientRepo   ClientRepository
	profileRepo  ProfileRepository
	notifier     Notifier
	metrics      MetricsRecorder
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	availability AvailabilityQuery,
	bookingRepo BookingRepository,
	serviceRepo ServiceRepository,
	clientRepo ClientRepository,
	profileRepo ProfileRepository,
	notifier Notifier,
	metrics MetricsRecorder,
	logger Logger,
) *UseCase {
	return &UseCase{
		availability: availability,
		bookingRepo:  bookingRepo,
		serviceRepo:  serviceRepo,
		clientRepo:   clientRepo,
		profileRepo:  profileRepo,
		notifier:     notifier,
		metrics:      metrics,
		logger:       logger,
	}
}

// Execute выполняет use case создания бронирования
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: business=%s, service=%s, date=%s, time=%s",
		req.BusinessID, req.ServiceID, req.Date.Format(domain.DateFormat), req.Time)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, uc.reject(domain.StateConfirmingDetails, rejectInvalid, err)
	}

	// 2. Услуга должна существовать и быть активной
	service, err := uc.serviceRepo.Get(ctx, req.BusinessID, req.ServiceID)
	if err != nil {
		if errors.Is(err, offeringRepo.ErrServiceNotFound) {
			uc.logger.Warn("CreateBooking: service id=%s not found for business=%s", req.ServiceID, req.BusinessID)
			return nil, uc.reject(domain.StateSelectingService, rejectService, ErrServiceNotFound)
		}
		uc.logger.Error("CreateBooking: failed to get service id=%s: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}
	if !service.Active {
		uc.logger.Warn("CreateBooking: service id=%s is inactive", req.ServiceID)
		return nil, uc.reject(domain.StateSelectingService, rejectService, ErrServiceInactive)
	}

	// 3. Повторная проверка: выбранное время должно быть в свежем списке слотов
	if err := uc.revalidate(ctx, req); err != nil {
		return nil, err
	}

	// 4. Вставка. Конфликт уникальности означает, что параллельный запрос успел раньше
	booking := &domain.Booking{
		BusinessID:  req.BusinessID,
		ServiceID:   service.ID,
		ServiceName: service.Name,
		ClientName:  req.ClientName,
		ClientPhone: req.ClientPhone,
		ClientEmail: req.ClientEmail,
		Date:        domain.DateOnly(req.Date),
		Time:        req.Time,
		Status:      domain.StatusScheduled,
		Price:       service.Price,
		Notes:       req.Notes,
	}

	created, err := uc.bookingRepo.Create(ctx, booking)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrSlotConflict) {
			uc.logger.Warn("CreateBooking: slot %s %s taken by a concurrent booking (business=%s)",
				booking.DateString(), req.Time, req.BusinessID)
			return nil, uc.reject(domain.StateCommitting, rejectSlotTaken, ErrSlotTaken)
		}
		uc.logger.Error("CreateBooking: failed to create booking: %v", err)
		return nil, fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
	}

	uc.logger.Info("CreateBooking: booking id=%s committed for business=%s at %s %s",
		created.ID, created.BusinessID, created.DateString(), created.Time)
	if uc.metrics != nil {
		uc.metrics.IncBookingCommitted()
	}

	// 5. Клиент - побочный эффект, бронирование уже создано
	_, err = uc.clientRepo.Upsert(ctx, domain.ClientVisit{
		BusinessID: created.BusinessID,
		Name:       created.ClientName,
		Phone:      created.ClientPhone,
		Email:      created.ClientEmail,
		VisitDate:  created.Date,
	})
	if err != nil {
		uc.logger.Error("CreateBooking: failed to upsert client phone=%s for booking id=%s: %v",
			created.ClientPhone, created.ID, err)
	}

	// 6. Подтверждение клиенту, ошибки не влияют на результат
	sent := uc.notifier.Send(ctx, domain.NewBookingNotification(
		domain.NotificationConfirmation,
		created,
		uc.businessName(ctx, created),
	))

	return &Response{
		State:            domain.StateCommitted,
		Booking:          created,
		NotificationSent: sent,
	}, nil
}

// revalidate пересчитывает доступность и проверяет, что время все еще свободно
func (uc *UseCase) revalidate(ctx context.Context, req *Request) error {
	availability, err := uc.availability.Execute(ctx, &getAvailableSlots.Request{
		BusinessID: req.BusinessID,
		Date:       req.Date,
	})
	if err != nil {
		uc.logger.Error("CreateBooking: failed to re-validate availability: %v", err)
		return fmt.Errorf("%w: failed to re-validate availability: %v", ErrInternal, err)
	}

	switch availability.Status {
	case domain.AvailabilityBusinessUnavailable:
		return uc.reject(domain.StateSelectingSlot, rejectUnavailable, ErrBusinessUnavailable)
	case domain.AvailabilityNoSchedule:
		return uc.reject(domain.StateSelectingSlot, rejectNoSchedule, ErrNoSchedule)
	case domain.AvailabilityDateOutOfRange:
		return uc.reject(domain.StateSelectingSlot, rejectOutOfRange, ErrDateOutOfRange)
	case domain.AvailabilityDayClosed:
		return uc.reject(domain.StateSelectingSlot, rejectClosed, ErrDayClosed)
	}

	if !slices.Contains(availability.Slots, req.Time) {
		uc.logger.Warn("CreateBooking: slot %s %s is no longer free for business=%s",
			req.Date.Format(domain.DateFormat), req.Time, req.BusinessID)
		return uc.reject(domain.StateSelectingSlot, rejectSlotTaken, ErrSlotTaken)
	}

	return nil
}

// businessName имя бизнеса для уведомления, при ошибке используется запасное значение
func (uc *UseCase) businessName(ctx context.Context, booking *domain.Booking) string {
	profile, err := uc.profileRepo.Get(ctx, booking.BusinessID)
	if err != nil {
		if !errors.Is(err, businessRepo.ErrProfileNotFound) {
			uc.logger.Warn("CreateBooking: failed to get business profile for business=%s: %v", booking.BusinessID, err)
		}
		return domain.DefaultBusinessName
	}
	return profile.DisplayName()
}

// reject учитывает отказ в метриках и оборачивает ошибку этапом
func (uc *UseCase) reject(stage domain.CommitState, reason string, err error) error {
	if uc.metrics != nil {
		uc.metrics.IncBookingRejected(reason)
	}
	return &RejectedError{Stage: stage, Err: err}
}
