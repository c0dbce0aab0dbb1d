package schedule

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMB-BookingService/internal/domain"
	"github.com/m04kA/SMB-BookingService/internal/infra/storage/memory"
	"github.com/m04kA/SMB-BookingService/internal/service/schedule/models"
	"github.com/m04kA/SMB-BookingService/internal/service/subscription"
	"github.com/m04kA/SMB-BookingService/pkg/logger"
	"github.com/m04kA/SMB-BookingService/pkg/ptr"
)

type brokenSchedules struct{}

func (brokenSchedules) Get(context.Context, uuid.UUID) (*domain.WeeklySchedule, error) {
	return nil, errors.New("relation does not exist")
}

func (brokenSchedules) Upsert(context.Context, *domain.WeeklySchedule) (*domain.WeeklySchedule, error) {
	return nil, errors.New("relation does not exist")
}

func newService(store *memory.Store) *Service {
	trials := subscription.NewService(store.Subscriptions(), logger.Nop())
	return NewService(store.Schedules(), store.Profiles(), trials, logger.Nop())
}

func TestGet_DefaultsWhenAbsent(t *testing.T) {
	svc := newService(memory.NewStore())
	businessID := uuid.New()

	got, err := svc.Get(context.Background(), businessID)
	require.NoError(t, err)

	assert.True(t, got.IsDefault)
	assert.Nil(t, got.UpdatedAt)
	assert.Equal(t, domain.DefaultBusinessName, got.BusinessName)
	assert.Equal(t, 30, got.SlotDurationMinutes)
	assert.Equal(t, 0, got.BufferMinutes)
	assert.Equal(t, 30, got.AdvanceBookingDays)
	require.Len(t, got.Days, 7)
	assert.True(t, got.Days["monday"].Enabled)
	assert.Equal(t, "09:00", got.Days["monday"].Start)
	assert.Equal(t, "17:00", got.Days["monday"].End)
	assert.False(t, got.Days["saturday"].Enabled)
	assert.False(t, got.Days["sunday"].Enabled)
}

func TestUpsert_AppliesPartialUpdate(t *testing.T) {
	store := memory.NewStore()
	svc := newService(store)
	businessID := uuid.New()

	got, err := svc.Upsert(context.Background(), businessID, &models.UpdateScheduleRequest{
		SlotDurationMinutes: ptr.Ptr(45),
		BufferMinutes:       ptr.Ptr(15),
		Days: map[string]models.DayRequest{
			"Saturday": {Enabled: true, Start: "10:00", End: "14:00"},
			"monday":   {Enabled: true, Start: "8:00", End: "16:00", BreakStart: ptr.Ptr("12:00"), BreakEnd: ptr.Ptr("12:30")},
		},
	})
	require.NoError(t, err)

	assert.False(t, got.IsDefault)
	assert.NotNil(t, got.UpdatedAt)
	assert.Equal(t, 45, got.SlotDurationMinutes)
	assert.Equal(t, 15, got.BufferMinutes)
	assert.Equal(t, 30, got.AdvanceBookingDays)
	assert.True(t, got.Days["saturday"].Enabled)
	assert.Equal(t, "08:00", got.Days["monday"].Start)
	assert.Equal(t, "12:30", *got.Days["monday"].BreakEnd)
	assert.Equal(t, "09:00", got.Days["tuesday"].Start)

	stored, err := store.Schedules().Get(context.Background(), businessID)
	require.NoError(t, err)
	assert.Equal(t, 45, stored.SlotDurationMinutes)
	assert.True(t, stored.Days[domain.Saturday].Enabled)

	// второе обновление видит первое
	got, err = svc.Upsert(context.Background(), businessID, &models.UpdateScheduleRequest{AdvanceBookingDays: ptr.Ptr(0)})
	require.NoError(t, err)
	assert.Equal(t, 45, got.SlotDurationMinutes)
	assert.Equal(t, 0, got.AdvanceBookingDays)
}

func TestUpsert_Rejects(t *testing.T) {
	tests := []struct {
		name    string
		req     *models.UpdateScheduleRequest
		wantErr error
	}{
		{
			name:    "slot too short",
			req:     &models.UpdateScheduleRequest{SlotDurationMinutes: ptr.Ptr(2)},
			wantErr: ErrInvalidSchedule,
		},
		{
			name:    "negative buffer",
			req:     &models.UpdateScheduleRequest{BufferMinutes: ptr.Ptr(-5)},
			wantErr: ErrInvalidSchedule,
		},
		{
			name:    "horizon too far",
			req:     &models.UpdateScheduleRequest{AdvanceBookingDays: ptr.Ptr(400)},
			wantErr: ErrInvalidSchedule,
		},
		{
			name: "start after end",
			req: &models.UpdateScheduleRequest{Days: map[string]models.DayRequest{
				"friday": {Enabled: true, Start: "18:00", End: "09:00"},
			}},
			wantErr: ErrInvalidSchedule,
		},
		{
			name: "break outside window",
			req: &models.UpdateScheduleRequest{Days: map[string]models.DayRequest{
				"friday": {Enabled: true, Start: "09:00", End: "17:00", BreakStart: ptr.Ptr("16:30"), BreakEnd: ptr.Ptr("17:30")},
			}},
			wantErr: ErrInvalidSchedule,
		},
		{
			name: "half a break",
			req: &models.UpdateScheduleRequest{Days: map[string]models.DayRequest{
				"friday": {Enabled: true, Start: "09:00", End: "17:00", BreakStart: ptr.Ptr("12:00")},
			}},
			wantErr: ErrInvalidSchedule,
		},
		{
			name: "unknown weekday",
			req: &models.UpdateScheduleRequest{Days: map[string]models.DayRequest{
				"funday": {Enabled: true, Start: "09:00", End: "17:00"},
			}},
			wantErr: ErrInvalidInput,
		},
		{
			name: "malformed time",
			req: &models.UpdateScheduleRequest{Days: map[string]models.DayRequest{
				"monday": {Enabled: true, Start: "nine", End: "17:00"},
			}},
			wantErr: ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := memory.NewStore()
			svc := newService(store)
			businessID := uuid.New()

			_, err := svc.Upsert(context.Background(), businessID, tt.req)
			assert.ErrorIs(t, err, tt.wantErr)

			_, err = store.Schedules().Get(context.Background(), businessID)
			assert.Error(t, err, "nothing must be stored")
		})
	}
}

func TestOnboard(t *testing.T) {
	store := memory.NewStore()
	svc := newService(store)
	businessID := uuid.New()
	ctx := context.Background()

	got, err := svc.Onboard(ctx, businessID, &models.OnboardRequest{BusinessName: "  Glow Salon "})
	require.NoError(t, err)

	assert.Equal(t, "Glow Salon", got.Profile.BusinessName)
	require.NotNil(t, got.Schedule)
	assert.False(t, got.Schedule.IsDefault)
	require.NotNil(t, got.Subscription)
	assert.Equal(t, "trial", got.Subscription.Status)

	stored, err := store.Schedules().Get(ctx, businessID)
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultSlotDurationMinutes, stored.SlotDurationMinutes)

	// расписание, сохраненное владельцем, не перезаписывается повторным онбордингом
	_, err = svc.Upsert(ctx, businessID, &models.UpdateScheduleRequest{SlotDurationMinutes: ptr.Ptr(60)})
	require.NoError(t, err)

	again, err := svc.Onboard(ctx, businessID, &models.OnboardRequest{BusinessName: "Glow Studio"})
	require.NoError(t, err)
	assert.Equal(t, "Glow Studio", again.Profile.BusinessName)
	assert.Equal(t, 60, again.Schedule.SlotDurationMinutes)
	assert.Equal(t, got.Subscription.CurrentPeriodEnd, again.Subscription.CurrentPeriodEnd)

	sched, err := svc.Get(ctx, businessID)
	require.NoError(t, err)
	assert.Equal(t, "Glow Studio", sched.BusinessName)
}

func TestOnboard_RequiresName(t *testing.T) {
	svc := newService(memory.NewStore())

	_, err := svc.Onboard(context.Background(), uuid.New(), &models.OnboardRequest{BusinessName: "   "})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestRepositoryFailure(t *testing.T) {
	store := memory.NewStore()
	trials := subscription.NewService(store.Subscriptions(), logger.Nop())
	svc := NewService(brokenSchedules{}, store.Profiles(), trials, logger.Nop())

	_, err := svc.Get(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrInternal)

	_, err = svc.Upsert(context.Background(), uuid.New(), &models.UpdateScheduleRequest{})
	assert.ErrorIs(t, err, ErrInternal)
}
