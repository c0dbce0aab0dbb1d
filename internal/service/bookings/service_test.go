package bookings

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
	bookingRepo "github.com/m04kA/SMB-BookingService/internal/infra/storage/booking"
	"github.com/m04kA/SMB-BookingService/internal/infra/storage/memory"
	"github.com/m04kA/SMB-BookingService/internal/service/bookings/models"
	"github.com/m04kA/SMB-BookingService/pkg/logger"
	"github.com/m04kA/SMB-BookingService/pkg/types"
)

type mockNotifier struct {
	mock.Mock
}

func (m *mockNotifier) Send(ctx context.Context, n domain.Notification) bool {
	args := m.Called(ctx, n)
	return args.Bool(0)
}

type cancelCounter struct{ n int }

func (c *cancelCounter) IncBookingCancelled() { c.n++ }

type brokenRepo struct{}

func (brokenRepo) GetByID(context.Context, uuid.UUID) (*domain.Booking, error) {
	return nil, errors.New("connection reset")
}

func (brokenRepo) ListByBusiness(context.Context, domain.BookingsFilter) ([]*domain.Booking, error) {
	return nil, errors.New("connection reset")
}

func (brokenRepo) UpdateStatus(context.Context, uuid.UUID, domain.BookingStatus, domain.BookingStatus) (*domain.Booking, error) {
	return nil, errors.New("connection reset")
}

// racingRepo выполняет race сразу после первого чтения бронирования,
// как будто между чтением и записью прошел параллельный запрос владельца
type racingRepo struct {
	*memory.BookingRepository
	once sync.Once
	race func()
}

func (r *racingRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error) {
	b, err := r.BookingRepository.GetByID(ctx, id)
	r.once.Do(r.race)
	return b, err
}

// flappingRepo статус меняется при каждой попытке записи
type flappingRepo struct {
	*memory.BookingRepository
	writes int
}

func (r *flappingRepo) UpdateStatus(context.Context, uuid.UUID, domain.BookingStatus, domain.BookingStatus) (*domain.Booking, error) {
	r.writes++
	return nil, bookingRepo.ErrStatusChanged
}

type fixture struct {
	store    *memory.Store
	notifier *mockNotifier
	metrics  *cancelCounter
	svc      *Service
	business uuid.UUID
	date     time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	store := memory.NewStore()
	notifier := &mockNotifier{}
	metrics := &cancelCounter{}
	businessID := uuid.New()

	_, err := store.Profiles().Upsert(context.Background(), &domain.BusinessProfile{
		BusinessID: businessID,
		Name:       "Kasi Cuts",
	})
	require.NoError(t, err)

	return &fixture{
		store:    store,
		notifier: notifier,
		metrics:  metrics,
		svc:      NewService(store.Bookings(), store.Profiles(), notifier, metrics, logger.Nop()),
		business: businessID,
		date:     time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC),
	}
}

func (f *fixture) book(t *testing.T, at string, status domain.BookingStatus) *domain.Booking {
	t.Helper()
	b, err := f.store.Bookings().Create(context.Background(), &domain.Booking{
		BusinessID:  f.business,
		ServiceID:   uuid.New(),
		ServiceName: "Haircut",
		ClientName:  "Thabo",
		ClientPhone: "+27821234567",
		Date:        f.date,
		Time:        types.TimeString(at),
		Status:      status,
		Price:       150,
	})
	require.NoError(t, err)
	return b
}

func TestGetByID(t *testing.T) {
	f := newFixture(t)
	b := f.book(t, "10:00", domain.StatusScheduled)

	got, err := f.svc.GetByID(context.Background(), b.ID, f.business)
	require.NoError(t, err)
	assert.Equal(t, b.ID.String(), got.ID)
	assert.Equal(t, "2025-10-15", got.Date)
	assert.Equal(t, "10:00", got.Time)
	assert.Equal(t, "scheduled", got.Status)

	_, err = f.svc.GetByID(context.Background(), b.ID, uuid.New())
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = f.svc.GetByID(context.Background(), uuid.New(), f.business)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestListByDate(t *testing.T) {
	f := newFixture(t)
	f.book(t, "11:00", domain.StatusScheduled)
	f.book(t, "09:00", domain.StatusConfirmed)
	f.book(t, "10:00", domain.StatusCompleted)

	active, err := f.svc.ListByDate(context.Background(), &models.ListBookingsRequest{
		BusinessID: f.business,
		Date:       &f.date,
	})
	require.NoError(t, err)
	require.Equal(t, 2, active.Total)
	assert.Equal(t, "09:00", active.Bookings[0].Time)
	assert.Equal(t, "11:00", active.Bookings[1].Time)

	all, err := f.svc.ListByDate(context.Background(), &models.ListBookingsRequest{
		BusinessID:      f.business,
		Date:            &f.date,
		IncludeInactive: true,
	})
	require.NoError(t, err)
	assert.Equal(t, 3, all.Total)

	_, err = f.svc.ListByDate(context.Background(), &models.ListBookingsRequest{})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestUpdateStatus(t *testing.T) {
	f := newFixture(t)
	b := f.book(t, "10:00", domain.StatusScheduled)
	ctx := context.Background()

	got, err := f.svc.UpdateStatus(ctx, b.ID, f.business, &models.UpdateStatusRequest{Status: "confirmed"})
	require.NoError(t, err)
	assert.Equal(t, "confirmed", got.Status)

	got, err = f.svc.UpdateStatus(ctx, b.ID, f.business, &models.UpdateStatusRequest{Status: "completed"})
	require.NoError(t, err)
	assert.Equal(t, "completed", got.Status)

	_, err = f.svc.UpdateStatus(ctx, b.ID, f.business, &models.UpdateStatusRequest{Status: "scheduled"})
	assert.ErrorIs(t, err, ErrInvalidTransition)

	_, err = f.svc.UpdateStatus(ctx, b.ID, f.business, &models.UpdateStatusRequest{Status: "pending"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestUpdateStatus_CancelledGoesThroughCancel(t *testing.T) {
	f := newFixture(t)
	b := f.book(t, "10:00", domain.StatusConfirmed)

	f.notifier.On("Send", mock.Anything, mock.MatchedBy(func(n domain.Notification) bool {
		return n.Type == domain.NotificationCancellation
	})).Return(true).Once()

	got, err := f.svc.UpdateStatus(context.Background(), b.ID, f.business, &models.UpdateStatusRequest{Status: "cancelled"})
	require.NoError(t, err)
	assert.Equal(t, "cancelled", got.Status)
	assert.Equal(t, 1, f.metrics.n)
	f.notifier.AssertExpectations(t)
}

func TestCancel_ReleasesSlotAndNotifies(t *testing.T) {
	f := newFixture(t)
	b := f.book(t, "10:00", domain.StatusScheduled)

	f.notifier.On("Send", mock.Anything, mock.MatchedBy(func(n domain.Notification) bool {
		return n.Type == domain.NotificationCancellation &&
			n.BusinessName == "Kasi Cuts" &&
			n.Recipient == "+27821234567" &&
			n.Time == "10:00"
	})).Return(true).Once()

	got, err := f.svc.Cancel(context.Background(), b.ID, f.business)
	require.NoError(t, err)
	assert.Equal(t, "cancelled", got.Status)

	times, err := f.store.Bookings().ListActiveTimes(context.Background(), f.business, f.date)
	require.NoError(t, err)
	assert.Empty(t, times)

	// слот снова можно забронировать
	f.book(t, "10:00", domain.StatusScheduled)
	f.notifier.AssertExpectations(t)
}

func TestCancel_Idempotent(t *testing.T) {
	f := newFixture(t)
	b := f.book(t, "10:00", domain.StatusScheduled)

	f.notifier.On("Send", mock.Anything, mock.Anything).Return(true).Once()

	first, err := f.svc.Cancel(context.Background(), b.ID, f.business)
	require.NoError(t, err)

	second, err := f.svc.Cancel(context.Background(), b.ID, f.business)
	require.NoError(t, err)

	assert.Equal(t, first.Status, second.Status)
	assert.Equal(t, first.UpdatedAt, second.UpdatedAt)
	assert.Equal(t, 1, f.metrics.n)
	f.notifier.AssertNumberOfCalls(t, "Send", 1)
}

func TestCancel_CompletedRejected(t *testing.T) {
	f := newFixture(t)
	b := f.book(t, "10:00", domain.StatusCompleted)

	_, err := f.svc.Cancel(context.Background(), b.ID, f.business)
	assert.ErrorIs(t, err, ErrCannotCancel)
	f.notifier.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
}

func TestCancel_NotificationFailureDoesNotFail(t *testing.T) {
	f := newFixture(t)
	b := f.book(t, "10:00", domain.StatusScheduled)

	f.notifier.On("Send", mock.Anything, mock.Anything).Return(false).Once()

	got, err := f.svc.Cancel(context.Background(), b.ID, f.business)
	require.NoError(t, err)
	assert.Equal(t, "cancelled", got.Status)
}

func TestCancel_WithoutProfileUsesDefaultName(t *testing.T) {
	store := memory.NewStore()
	notifier := &mockNotifier{}
	svc := NewService(store.Bookings(), store.Profiles(), notifier, nil, logger.Nop())

	businessID := uuid.New()
	b, err := store.Bookings().Create(context.Background(), &domain.Booking{
		BusinessID:  businessID,
		ServiceName: "Nails",
		ClientName:  "Lerato",
		ClientPhone: "+27830000000",
		Date:        time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC),
		Time:        "14:00",
		Status:      domain.StatusScheduled,
	})
	require.NoError(t, err)

	notifier.On("Send", mock.Anything, mock.MatchedBy(func(n domain.Notification) bool {
		return n.BusinessName == domain.DefaultBusinessName
	})).Return(true).Once()

	_, err = svc.Cancel(context.Background(), b.ID, businessID)
	require.NoError(t, err)
	notifier.AssertExpectations(t)
}

func TestSendReminder(t *testing.T) {
	f := newFixture(t)
	active := f.book(t, "10:00", domain.StatusConfirmed)
	done := f.book(t, "11:00", domain.StatusCompleted)

	f.notifier.On("Send", mock.Anything, mock.MatchedBy(func(n domain.Notification) bool {
		return n.Type == domain.NotificationReminder
	})).Return(true).Once()

	got, err := f.svc.SendReminder(context.Background(), active.ID, f.business)
	require.NoError(t, err)
	assert.True(t, got.Sent)

	_, err = f.svc.SendReminder(context.Background(), done.ID, f.business)
	assert.ErrorIs(t, err, ErrNotActive)
	f.notifier.AssertExpectations(t)
}

func TestSendReminder_DeliveryFailure(t *testing.T) {
	f := newFixture(t)
	b := f.book(t, "10:00", domain.StatusScheduled)

	f.notifier.On("Send", mock.Anything, mock.Anything).Return(false).Once()

	_, err := f.svc.SendReminder(context.Background(), b.ID, f.business)
	assert.ErrorIs(t, err, ErrNotificationFailed)

	stored, err := f.store.Bookings().GetByID(context.Background(), b.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusScheduled, stored.Status)
}

func TestRepositoryErrors(t *testing.T) {
	svc := NewService(brokenRepo{}, memory.NewStore().Profiles(), &mockNotifier{}, nil, logger.Nop())
	ctx := context.Background()
	id, business := uuid.New(), uuid.New()

	_, err := svc.GetByID(ctx, id, business)
	assert.ErrorIs(t, err, ErrInternal)

	_, err = svc.ListByDate(ctx, &models.ListBookingsRequest{BusinessID: business})
	assert.ErrorIs(t, err, ErrInternal)

	_, err = svc.Cancel(ctx, id, business)
	assert.ErrorIs(t, err, ErrInternal)
}

func TestCancel_CompletedBetweenReadAndWrite(t *testing.T) {
	f := newFixture(t)
	b := f.book(t, "10:00", domain.StatusScheduled)
	ctx := context.Background()

	repo := &racingRepo{BookingRepository: f.store.Bookings(), race: func() {
		_, err := f.store.Bookings().UpdateStatus(ctx, b.ID, domain.StatusScheduled, domain.StatusCompleted)
		require.NoError(t, err)
	}}
	svc := NewService(repo, f.store.Profiles(), f.notifier, f.metrics, logger.Nop())

	_, err := svc.Cancel(ctx, b.ID, f.business)
	assert.ErrorIs(t, err, ErrCannotCancel)

	stored, err := f.store.Bookings().GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCompleted, stored.Status)
	assert.Equal(t, 0, f.metrics.n)
	f.notifier.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
}

func TestCancel_CancelledBetweenReadAndWrite(t *testing.T) {
	f := newFixture(t)
	b := f.book(t, "10:00", domain.StatusConfirmed)
	ctx := context.Background()

	repo := &racingRepo{BookingRepository: f.store.Bookings(), race: func() {
		_, err := f.store.Bookings().UpdateStatus(ctx, b.ID, domain.StatusConfirmed, domain.StatusCancelled)
		require.NoError(t, err)
	}}
	svc := NewService(repo, f.store.Profiles(), f.notifier, f.metrics, logger.Nop())

	// Параллельная отмена уже выполнена: повтор ничего не меняет и не уведомляет
	got, err := svc.Cancel(ctx, b.ID, f.business)
	require.NoError(t, err)
	assert.Equal(t, "cancelled", got.Status)
	assert.Equal(t, 0, f.metrics.n)
	f.notifier.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
}

func TestCancel_ConfirmedBetweenReadAndWriteStillCancels(t *testing.T) {
	f := newFixture(t)
	b := f.book(t, "10:00", domain.StatusScheduled)
	ctx := context.Background()

	repo := &racingRepo{BookingRepository: f.store.Bookings(), race: func() {
		_, err := f.store.Bookings().UpdateStatus(ctx, b.ID, domain.StatusScheduled, domain.StatusConfirmed)
		require.NoError(t, err)
	}}
	svc := NewService(repo, f.store.Profiles(), f.notifier, f.metrics, logger.Nop())
	f.notifier.On("Send", mock.Anything, mock.Anything).Return(true).Once()

	got, err := svc.Cancel(ctx, b.ID, f.business)
	require.NoError(t, err)
	assert.Equal(t, "cancelled", got.Status)
	assert.Equal(t, 1, f.metrics.n)
	f.notifier.AssertNumberOfCalls(t, "Send", 1)
}

func TestUpdateStatus_ConfirmRacingCancelKeepsCancelled(t *testing.T) {
	f := newFixture(t)
	b := f.book(t, "10:00", domain.StatusScheduled)
	ctx := context.Background()

	repo := &racingRepo{BookingRepository: f.store.Bookings(), race: func() {
		_, err := f.store.Bookings().UpdateStatus(ctx, b.ID, domain.StatusScheduled, domain.StatusCancelled)
		require.NoError(t, err)
	}}
	svc := NewService(repo, f.store.Profiles(), f.notifier, f.metrics, logger.Nop())

	_, err := svc.UpdateStatus(ctx, b.ID, f.business, &models.UpdateStatusRequest{Status: "confirmed"})
	assert.ErrorIs(t, err, ErrInvalidTransition)

	stored, err := f.store.Bookings().GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelled, stored.Status)

	times, err := f.store.Bookings().ListActiveTimes(ctx, f.business, f.date)
	require.NoError(t, err)
	assert.Empty(t, times)
}

func TestCancel_ConcurrentCancelsNotifyOnce(t *testing.T) {
	f := newFixture(t)
	b := f.book(t, "10:00", domain.StatusScheduled)
	f.notifier.On("Send", mock.Anything, mock.Anything).Return(true)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := f.svc.Cancel(context.Background(), b.ID, f.business)
			if assert.NoError(t, err) {
				assert.Equal(t, "cancelled", got.Status)
			}
		}()
	}
	wg.Wait()

	f.notifier.AssertNumberOfCalls(t, "Send", 1)
}

func TestCancel_GivesUpWhenStatusKeepsChanging(t *testing.T) {
	f := newFixture(t)
	b := f.book(t, "10:00", domain.StatusScheduled)

	repo := &flappingRepo{BookingRepository: f.store.Bookings()}
	svc := NewService(repo, f.store.Profiles(), f.notifier, f.metrics, logger.Nop())

	_, err := svc.Cancel(context.Background(), b.ID, f.business)
	assert.ErrorIs(t, err, ErrStatusConflict)
	assert.Equal(t, maxTransitionAttempts, repo.writes)
	f.notifier.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
}
