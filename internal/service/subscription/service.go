package subscription

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/SMB-BookingService/internal/domain"
	subscriptionRepo "github.com/m04kA/SMB-BookingService/internal/infra/storage/subscription"
	"github.com/m04kA/SMB-BookingService/internal/service/subscription/models"
)

// Service оракул подписки: решает, может ли бизнес принимать бронирования
type Service struct {
	repo         SubscriptionRepository
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает сервис подписок
func NewService(repo SubscriptionRepository, logger Logger) *Service {
	return &Service{
		repo:         repo,
		timeProvider: realTimeProvider{},
		logger:       logger,
	}
}

// WithTimeProvider подменяет источник времени
func (s *Service) WithTimeProvider(tp TimeProvider) *Service {
	s.timeProvider = tp
	return s
}

// IsBookingAllowed возвращает false, если подписки нет или она заблокирована
// Ошибка хранилища возвращается вызывающему
func (s *Service) IsBookingAllowed(ctx context.Context, businessID uuid.UUID) (bool, error) {
	sub, err := s.repo.GetByBusiness(ctx, businessID)
	if err != nil {
		if errors.Is(err, subscriptionRepo.ErrSubscriptionNotFound) {
			s.logger.Info("IsBookingAllowed: business=%s has no subscription", businessID)
			return false, nil
		}
		s.logger.Error("IsBookingAllowed: repository error for business=%s: %v", businessID, err)
		return false, fmt.Errorf("%w: IsBookingAllowed - repository error: %v", ErrInternal, err)
	}

	if sub.IsLocked(s.timeProvider.Now()) {
		s.logger.Info("IsBookingAllowed: business=%s is locked (status=%s, periodEnd=%s)",
			businessID, sub.Status, sub.CurrentPeriodEnd.Format(domain.DateFormat))
		return false, nil
	}

	return true, nil
}

// Get возвращает состояние подписки бизнеса
func (s *Service) Get(ctx context.Context, businessID uuid.UUID) (*models.SubscriptionResponse, error) {
	sub, err := s.repo.GetByBusiness(ctx, businessID)
	if err != nil {
		if errors.Is(err, subscriptionRepo.ErrSubscriptionNotFound) {
			return nil, ErrSubscriptionNotFound
		}
		s.logger.Error("Get: repository error for business=%s: %v", businessID, err)
		return nil, fmt.Errorf("%w: Get - repository error: %v", ErrInternal, err)
	}
	return models.FromDomainSubscription(sub, s.timeProvider.Now()), nil
}

// StartTrial создает пробную подписку, если у бизнеса ее еще нет
// Существующая подписка возвращается без изменений
func (s *Service) StartTrial(ctx context.Context, businessID uuid.UUID) (*models.SubscriptionResponse, error) {
	now := s.timeProvider.Now()

	// 1. Проверяем существующую подписку
	existing, err := s.repo.GetByBusiness(ctx, businessID)
	switch {
	case err == nil:
		s.logger.Info("StartTrial: business=%s already has %s subscription", businessID, existing.Status)
		return models.FromDomainSubscription(existing, now), nil
	case !errors.Is(err, subscriptionRepo.ErrSubscriptionNotFound):
		s.logger.Error("StartTrial: repository error for business=%s: %v", businessID, err)
		return nil, fmt.Errorf("%w: StartTrial - repository error: %v", ErrInternal, err)
	}

	// 2. Создаем пробный период
	created, err := s.repo.Create(ctx, domain.NewTrialSubscription(businessID, now))
	if err != nil {
		if errors.Is(err, subscriptionRepo.ErrSubscriptionExists) {
			// параллельный онбординг успел создать подписку
			existing, getErr := s.repo.GetByBusiness(ctx, businessID)
			if getErr == nil {
				return models.FromDomainSubscription(existing, now), nil
			}
			err = getErr
		}
		s.logger.Error("StartTrial: failed to create trial for business=%s: %v", businessID, err)
		return nil, fmt.Errorf("%w: StartTrial - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("StartTrial: trial started for business=%s until %s",
		businessID, created.CurrentPeriodEnd.Format(domain.DateFormat))
	return models.FromDomainSubscription(created, now), nil
}
