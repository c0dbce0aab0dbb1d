package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/SMB-BookingService/internal/domain"
	bookingRepo "github.com/m04kA/SMB-BookingService/internal/infra/storage/booking"
	businessRepo "github.com/m04kA/SMB-BookingService/internal/infra/storage/business"
	"github.com/m04kA/SMB-BookingService/internal/service/bookings/models"
)

// maxTransitionAttempts сколько раз переход перечитывает бронирование после гонки
const maxTransitionAttempts = 3

// Service сервис управления бронированиями для владельца бизнеса
type Service struct {
	bookingRepo BookingRepository
	profileRepo ProfileRepository
	notifier    Notifier
	metrics     MetricsRecorder
	logger      Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	profileRepo ProfileRepository,
	notifier Notifier,
	metrics MetricsRecorder,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		profileRepo: profileRepo,
		notifier:    notifier,
		metrics:     metrics,
		logger:      logger,
	}
}

// GetByID получает бронирование по ID
// Бизнес видит только свои бронирования
func (s *Service) GetByID(ctx context.Context, bookingID, businessID uuid.UUID) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%s for business=%s", bookingID, businessID)

	booking, err := s.load(ctx, "GetByID", bookingID, businessID)
	if err != nil {
		return nil, err
	}

	return models.FromDomainBooking(booking), nil
}

// ListByDate получает бронирования бизнеса, по умолчанию только активные
func (s *Service) ListByDate(ctx context.Context, req *models.ListBookingsRequest) (*models.BookingListResponse, error) {
	if req.BusinessID == uuid.Nil {
		return nil, fmt.Errorf("%w: businessID is required", ErrInvalidInput)
	}

	date := "all"
	if req.Date != nil {
		date = req.Date.Format(domain.DateFormat)
	}
	s.logger.Info("ListByDate: fetching bookings for business=%s, date=%s, includeInactive=%t",
		req.BusinessID, date, req.IncludeInactive)

	bookings, err := s.bookingRepo.ListByBusiness(ctx, domain.BookingsFilter{
		BusinessID:      req.BusinessID,
		Date:            req.Date,
		IncludeInactive: req.IncludeInactive,
	})
	if err != nil {
		s.logger.Error("ListByDate: repository error for business=%s: %v", req.BusinessID, err)
		return nil, fmt.Errorf("%w: ListByDate - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListByDate: fetched %d bookings for business=%s", len(bookings), req.BusinessID)
	return models.FromDomainBookingList(bookings), nil
}

// UpdateStatus меняет статус бронирования
// Переход в cancelled выполняется через Cancel (с уведомлением клиента)
func (s *Service) UpdateStatus(
	ctx context.Context,
	bookingID, businessID uuid.UUID,
	req *models.UpdateStatusRequest,
) (*models.BookingResponse, error) {
	status, err := domain.ParseBookingStatus(req.Status)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if status == domain.StatusCancelled {
		return s.Cancel(ctx, bookingID, businessID)
	}

	s.logger.Info("UpdateStatus: booking id=%s -> %s (business=%s)", bookingID, status, businessID)

	updated, _, err := s.transition(ctx, "UpdateStatus", bookingID, businessID, status, ErrInvalidTransition)
	if err != nil {
		return nil, err
	}

	return models.FromDomainBooking(updated), nil
}

// Cancel отменяет бронирование и освобождает слот
// Повторная отмена не меняет состояние и не отправляет второе уведомление
func (s *Service) Cancel(ctx context.Context, bookingID, businessID uuid.UUID) (*models.BookingResponse, error) {
	s.logger.Info("Cancel: cancelling booking id=%s (business=%s)", bookingID, businessID)

	cancelled, changed, err := s.transition(ctx, "Cancel", bookingID, businessID, domain.StatusCancelled, ErrCannotCancel)
	if err != nil {
		return nil, err
	}

	if !changed {
		s.logger.Info("Cancel: booking id=%s is already cancelled", bookingID)
		return models.FromDomainBooking(cancelled), nil
	}

	if s.metrics != nil {
		s.metrics.IncBookingCancelled()
	}

	// Уведомление best-effort, отмена уже выполнена
	s.notifier.Send(ctx, domain.NewBookingNotification(
		domain.NotificationCancellation,
		cancelled,
		s.businessName(ctx, businessID),
	))

	s.logger.Info("Cancel: booking id=%s cancelled, slot %s %s released", bookingID, cancelled.DateString(), cancelled.Time)
	return models.FromDomainBooking(cancelled), nil
}

// SendReminder отправляет клиенту напоминание об активном бронировании
// Ошибка отправки возвращается владельцу, бронирование не меняется
func (s *Service) SendReminder(ctx context.Context, bookingID, businessID uuid.UUID) (*models.ReminderResponse, error) {
	s.logger.Info("SendReminder: booking id=%s (business=%s)", bookingID, businessID)

	booking, err := s.load(ctx, "SendReminder", bookingID, businessID)
	if err != nil {
		return nil, err
	}

	if !booking.IsActive() {
		return nil, ErrNotActive
	}

	sent := s.notifier.Send(ctx, domain.NewBookingNotification(
		domain.NotificationReminder,
		booking,
		s.businessName(ctx, businessID),
	))
	if !sent {
		return nil, ErrNotificationFailed
	}

	return &models.ReminderResponse{BookingID: bookingID.String(), Sent: true}, nil
}

// transition переводит бронирование в статус target условной записью
// Запись проходит, только если статус не изменился с момента чтения.
// При гонке бронирование перечитывается и переход проверяется заново.
// changed=false, если бронирование уже было в статусе target
func (s *Service) transition(
	ctx context.Context,
	op string,
	bookingID, businessID uuid.UUID,
	target domain.BookingStatus,
	rejectErr error,
) (*domain.Booking, bool, error) {
	for attempt := 1; attempt <= maxTransitionAttempts; attempt++ {
		current, err := s.load(ctx, op, bookingID, businessID)
		if err != nil {
			return nil, false, err
		}

		if current.Status == target {
			return current, false, nil
		}

		if !current.CanTransitionTo(target) {
			s.logger.Warn("%s: transition %s -> %s not allowed for booking id=%s", op, current.Status, target, bookingID)
			return nil, false, fmt.Errorf("%w: %s -> %s", rejectErr, current.Status, target)
		}

		updated, err := s.bookingRepo.UpdateStatus(ctx, bookingID, current.Status, target)
		if errors.Is(err, bookingRepo.ErrStatusChanged) {
			s.logger.Warn("%s: booking id=%s changed status concurrently (attempt %d)", op, bookingID, attempt)
			continue
		}
		if err != nil {
			s.logger.Error("%s: repository error for booking id=%s: %v", op, bookingID, err)
			return nil, false, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
		}

		return updated, true, nil
	}

	s.logger.Error("%s: booking id=%s kept changing status, giving up", op, bookingID)
	return nil, false, fmt.Errorf("%w: booking id=%s", ErrStatusConflict, bookingID)
}

// load получает бронирование и проверяет, что оно принадлежит бизнесу
func (s *Service) load(ctx context.Context, op string, bookingID, businessID uuid.UUID) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("%s: booking id=%s not found", op, bookingID)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("%s: repository error for booking id=%s: %v", op, bookingID, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}

	if booking.BusinessID != businessID {
		s.logger.Warn("%s: access denied for business=%s to booking id=%s", op, businessID, bookingID)
		return nil, ErrAccessDenied
	}

	return booking, nil
}

func (s *Service) businessName(ctx context.Context, businessID uuid.UUID) string {
	profile, err := s.profileRepo.Get(ctx, businessID)
	if err != nil {
		if !errors.Is(err, businessRepo.ErrProfileNotFound) {
			s.logger.Warn("failed to get business profile for business=%s: %v", businessID, err)
		}
		return domain.DefaultBusinessName
	}
	return profile.DisplayName()
}
