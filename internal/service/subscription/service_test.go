package subscription

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMB-BookingService/internal/domain"
	"github.com/m04kA/SMB-BookingService/internal/infra/storage/memory"
	subscriptionRepo "github.com/m04kA/SMB-BookingService/internal/infra/storage/subscription"
	"github.com/m04kA/SMB-BookingService/pkg/logger"
)

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type mockRepo struct {
	mock.Mock
}

func (m *mockRepo) GetByBusiness(ctx context.Context, businessID uuid.UUID) (*domain.Subscription, error) {
	args := m.Called(ctx, businessID)
	sub, _ := args.Get(0).(*domain.Subscription)
	return sub, args.Error(1)
}

func (m *mockRepo) Create(ctx context.Context, sub *domain.Subscription) (*domain.Subscription, error) {
	args := m.Called(ctx, sub)
	out, _ := args.Get(0).(*domain.Subscription)
	return out, args.Error(1)
}

func TestIsBookingAllowed(t *testing.T) {
	now := time.Date(2025, 10, 15, 12, 0, 0, 0, time.UTC)
	future := now.Add(72 * time.Hour)
	past := now.Add(-time.Hour)

	tests := []struct {
		name    string
		sub     *domain.Subscription
		allowed bool
	}{
		{
			name:    "no subscription",
			allowed: false,
		},
		{
			name:    "trial within period",
			sub:     &domain.Subscription{Status: domain.SubscriptionTrial, CurrentPeriodEnd: future},
			allowed: true,
		},
		{
			name:    "trial expired by date",
			sub:     &domain.Subscription{Status: domain.SubscriptionTrial, CurrentPeriodEnd: past},
			allowed: false,
		},
		{
			name:    "active within period",
			sub:     &domain.Subscription{Status: domain.SubscriptionActive, CurrentPeriodEnd: future},
			allowed: true,
		},
		{
			name:    "past due within grace period",
			sub:     &domain.Subscription{Status: domain.SubscriptionPastDue, CurrentPeriodEnd: future},
			allowed: true,
		},
		{
			name:    "canceled after period end",
			sub:     &domain.Subscription{Status: domain.SubscriptionCanceled, CurrentPeriodEnd: past},
			allowed: false,
		},
		{
			name:    "expired is always locked",
			sub:     &domain.Subscription{Status: domain.SubscriptionExpired, CurrentPeriodEnd: future},
			allowed: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := memory.NewStore()
			businessID := uuid.New()
			if tt.sub != nil {
				sub := *tt.sub
				sub.BusinessID = businessID
				store.SetSubscription(sub)
			}

			svc := NewService(store.Subscriptions(), logger.Nop()).WithTimeProvider(fixedTime{now})

			allowed, err := svc.IsBookingAllowed(context.Background(), businessID)
			require.NoError(t, err)
			assert.Equal(t, tt.allowed, allowed)
		})
	}
}

func TestIsBookingAllowed_StoreFailure(t *testing.T) {
	repo := &mockRepo{}
	repo.On("GetByBusiness", mock.Anything, mock.Anything).Return(nil, errors.New("timeout"))

	svc := NewService(repo, logger.Nop())

	allowed, err := svc.IsBookingAllowed(context.Background(), uuid.New())
	assert.False(t, allowed)
	assert.ErrorIs(t, err, ErrInternal)
}

func TestStartTrial(t *testing.T) {
	now := time.Date(2025, 10, 15, 12, 0, 0, 0, time.UTC)
	store := memory.NewStore()
	svc := NewService(store.Subscriptions(), logger.Nop()).WithTimeProvider(fixedTime{now})
	businessID := uuid.New()

	got, err := svc.StartTrial(context.Background(), businessID)
	require.NoError(t, err)
	assert.Equal(t, "trial", got.Status)
	assert.Equal(t, "free_trial", got.Plan)
	assert.Equal(t, domain.TrialDays, got.DaysRemaining)
	assert.False(t, got.Locked)

	// повторный вызов не продлевает пробный период
	later := NewService(store.Subscriptions(), logger.Nop()).WithTimeProvider(fixedTime{now.AddDate(0, 0, 10)})
	again, err := later.StartTrial(context.Background(), businessID)
	require.NoError(t, err)
	assert.Equal(t, got.CurrentPeriodEnd, again.CurrentPeriodEnd)
	assert.Equal(t, domain.TrialDays-10, again.DaysRemaining)
}

func TestStartTrial_Concurrent(t *testing.T) {
	store := memory.NewStore()
	svc := NewService(store.Subscriptions(), logger.Nop())
	businessID := uuid.New()

	var wg sync.WaitGroup
	errs := make([]error, 10)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.StartTrial(context.Background(), businessID)
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		assert.NoError(t, err)
	}
}

func TestStartTrial_CreateFailure(t *testing.T) {
	repo := &mockRepo{}
	repo.On("GetByBusiness", mock.Anything, mock.Anything).Return(nil, subscriptionRepo.ErrSubscriptionNotFound)
	repo.On("Create", mock.Anything, mock.Anything).Return(nil, errors.New("disk full"))

	svc := NewService(repo, logger.Nop())

	_, err := svc.StartTrial(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrInternal)
	repo.AssertExpectations(t)
}

func TestGet(t *testing.T) {
	store := memory.NewStore()
	svc := NewService(store.Subscriptions(), logger.Nop())

	_, err := svc.Get(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrSubscriptionNotFound)
}
