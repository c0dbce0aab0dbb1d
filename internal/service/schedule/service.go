package schedule

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/m04kA/SMB-BookingService/internal/domain"
	businessRepo "github.com/m04kA/SMB-BookingService/internal/infra/storage/business"
	scheduleRepo "github.com/m04kA/SMB-BookingService/internal/infra/storage/schedule"
	"github.com/m04kA/SMB-BookingService/internal/service/schedule/models"
)

// Service сервис настроек расписания и онбординга бизнеса
type Service struct {
	scheduleRepo ScheduleRepository
	profileRepo  ProfileRepository
	trials       TrialStarter
	logger       Logger
}

// NewService создает новый экземпляр сервиса расписаний
func NewService(
	scheduleRepo ScheduleRepository,
	profileRepo ProfileRepository,
	trials TrialStarter,
	logger Logger,
) *Service {
	return &Service{
		scheduleRepo: scheduleRepo,
		profileRepo:  profileRepo,
		trials:       trials,
		logger:       logger,
	}
}

// Get возвращает сохраненное расписание или расписание по умолчанию с IsDefault=true
func (s *Service) Get(ctx context.Context, businessID uuid.UUID) (*models.ScheduleResponse, error) {
	s.logger.Info("Get: fetching schedule for business=%s", businessID)

	sched, isDefault, err := s.current(ctx, "Get", businessID)
	if err != nil {
		return nil, err
	}

	resp := models.FromDomainSchedule(sched, isDefault)
	resp.BusinessName = s.businessName(ctx, businessID)
	return resp, nil
}

// Upsert применяет изменения к текущему расписанию и сохраняет его
// Доступно только владельцу бизнеса
func (s *Service) Upsert(ctx context.Context, businessID uuid.UUID, req *models.UpdateScheduleRequest) (*models.ScheduleResponse, error) {
	s.logger.Info("Upsert: updating schedule for business=%s", businessID)

	// 1. Получаем текущее расписание (или значения по умолчанию)
	sched, _, err := s.current(ctx, "Upsert", businessID)
	if err != nil {
		return nil, err
	}

	// 2. Применяем изменения
	if err := req.ApplyToSchedule(sched); err != nil {
		s.logger.Warn("Upsert: invalid request for business=%s: %v", businessID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	// 3. Проверяем инварианты
	if err := sched.Validate(); err != nil {
		s.logger.Warn("Upsert: validation failed for business=%s: %v", businessID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidSchedule, err)
	}

	// 4. Сохраняем
	saved, err := s.scheduleRepo.Upsert(ctx, sched)
	if err != nil {
		s.logger.Error("Upsert: repository error for business=%s: %v", businessID, err)
		return nil, fmt.Errorf("%w: Upsert - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Upsert: schedule saved for business=%s", businessID)
	return models.FromDomainSchedule(saved, false), nil
}

// Onboard подключает бизнес: профиль, расписание по умолчанию и пробная подписка
// Повторный вызов обновляет имя и не трогает существующие расписание и подписку
func (s *Service) Onboard(ctx context.Context, businessID uuid.UUID, req *models.OnboardRequest) (*models.OnboardResponse, error) {
	name := strings.TrimSpace(req.BusinessName)
	if name == "" {
		return nil, fmt.Errorf("%w: businessName is required", ErrInvalidInput)
	}
	if len([]rune(name)) > domain.MaxBusinessNameLength {
		return nil, fmt.Errorf("%w: businessName is longer than %d characters", ErrInvalidInput, domain.MaxBusinessNameLength)
	}

	s.logger.Info("Onboard: onboarding business=%s name=%q", businessID, name)

	// 1. Профиль
	profile, err := s.profileRepo.Upsert(ctx, &domain.BusinessProfile{BusinessID: businessID, Name: name})
	if err != nil {
		s.logger.Error("Onboard: failed to save profile for business=%s: %v", businessID, err)
		return nil, fmt.Errorf("%w: Onboard - profile repository error: %v", ErrInternal, err)
	}

	// 2. Расписание по умолчанию, если его еще нет
	sched, isDefault, err := s.current(ctx, "Onboard", businessID)
	if err != nil {
		return nil, err
	}
	if isDefault {
		sched, err = s.scheduleRepo.Upsert(ctx, sched)
		if err != nil {
			s.logger.Error("Onboard: failed to save default schedule for business=%s: %v", businessID, err)
			return nil, fmt.Errorf("%w: Onboard - schedule repository error: %v", ErrInternal, err)
		}
	}

	// 3. Пробная подписка
	sub, err := s.trials.StartTrial(ctx, businessID)
	if err != nil {
		s.logger.Error("Onboard: failed to start trial for business=%s: %v", businessID, err)
		return nil, fmt.Errorf("%w: Onboard - subscription error: %v", ErrInternal, err)
	}

	return &models.OnboardResponse{
		Profile: models.ProfileResponse{
			BusinessID:   businessID.String(),
			BusinessName: profile.Name,
		},
		Schedule:     models.FromDomainSchedule(sched, false),
		Subscription: sub,
	}, nil
}

// current возвращает сохраненное расписание или значения по умолчанию
func (s *Service) current(ctx context.Context, op string, businessID uuid.UUID) (*domain.WeeklySchedule, bool, error) {
	sched, err := s.scheduleRepo.Get(ctx, businessID)
	if err == nil {
		return sched, false, nil
	}
	if errors.Is(err, scheduleRepo.ErrScheduleNotFound) {
		return domain.DefaultWeeklySchedule(businessID), true, nil
	}
	s.logger.Error("%s: repository error for business=%s: %v", op, businessID, err)
	return nil, false, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
}

// businessName имя бизнеса для публичной страницы
func (s *Service) businessName(ctx context.Context, businessID uuid.UUID) string {
	profile, err := s.profileRepo.Get(ctx, businessID)
	if err != nil {
		if !errors.Is(err, businessRepo.ErrProfileNotFound) {
			s.logger.Warn("Get: failed to get profile for business=%s: %v", businessID, err)
		}
		return domain.DefaultBusinessName
	}
	return profile.DisplayName()
}
