package memory

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMB-BookingService/internal/domain"
	bookingRepo "github.com/m04kA/SMB-BookingService/internal/infra/storage/booking"
	businessRepo "github.com/m04kA/SMB-BookingService/internal/infra/storage/business"
	offeringRepo "github.com/m04kA/SMB-BookingService/internal/infra/storage/offering"
	scheduleRepo "github.com/m04kA/SMB-BookingService/internal/infra/storage/schedule"
	subscriptionRepo "github.com/m04kA/SMB-BookingService/internal/infra/storage/subscription"
	"github.com/m04kA/SMB-BookingService/pkg/types"
)

// BookingRepository бронирования в памяти
type BookingRepository struct {
	store *Store
}

// Create сохраняет бронирование
// Второе активное бронирование на тот же слот отклоняется с ErrSlotConflict
func (r *BookingRepository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	key := keyFor(booking)
	if booking.IsActive() {
		if _, taken := s.activeSlots[key]; taken {
			return nil, bookingRepo.ErrSlotConflict
		}
	}

	now := s.now()
	stored := copyBooking(booking)
	stored.ID = uuid.New()
	stored.Date = domain.DateOnly(booking.Date)
	stored.CreatedAt = now
	stored.UpdatedAt = now

	s.bookings[stored.ID] = stored
	if stored.IsActive() {
		s.activeSlots[key] = stored.ID
	}

	return copyBooking(stored), nil
}

func (r *BookingRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	b, ok := s.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	return copyBooking(b), nil
}

func (r *BookingRepository) ListByBusiness(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	var date string
	if filter.Date != nil {
		date = filter.Date.Format(domain.DateFormat)
	}

	out := make([]*domain.Booking, 0)
	for _, b := range s.bookings {
		if b.BusinessID != filter.BusinessID {
			continue
		}
		if date != "" && b.DateString() != date {
			continue
		}
		if !filter.IncludeInactive && !b.IsActive() {
			continue
		}
		out = append(out, copyBooking(b))
	}

	if filter.Date != nil {
		sort.Slice(out, func(i, j int) bool { return out[i].Time < out[j].Time })
	} else {
		sort.Slice(out, func(i, j int) bool {
			if !out[i].Date.Equal(out[j].Date) {
				return out[i].Date.After(out[j].Date)
			}
			return out[i].Time > out[j].Time
		})
	}

	return out, nil
}

func (r *BookingRepository) ListActiveTimes(ctx context.Context, businessID uuid.UUID, date time.Time) ([]types.TimeString, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	day := date.Format(domain.DateFormat)
	times := make([]types.TimeString, 0)
	for key := range s.activeSlots {
		if key.businessID == businessID && key.date == day {
			times = append(times, types.TimeString(key.time))
		}
	}
	sort.Slice(times, func(i, j int) bool { return times[i] < times[j] })

	return times, nil
}

// UpdateStatus переводит бронирование из from в to и освобождает или занимает слот
// Если текущий статус уже не from, возвращается ErrStatusChanged
func (r *BookingRepository) UpdateStatus(ctx context.Context, id uuid.UUID, from, to domain.BookingStatus) (*domain.Booking, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	if b.Status != from {
		return nil, bookingRepo.ErrStatusChanged
	}

	key := keyFor(b)
	if to.IsActive() && !b.IsActive() {
		if _, taken := s.activeSlots[key]; taken {
			return nil, bookingRepo.ErrSlotConflict
		}
	}

	b.Status = to
	b.UpdatedAt = s.now()

	if b.IsActive() {
		s.activeSlots[key] = b.ID
	} else if s.activeSlots[key] == b.ID {
		delete(s.activeSlots, key)
	}

	return copyBooking(b), nil
}

// ScheduleRepository расписания в памяти
type ScheduleRepository struct {
	store *Store
}

func (r *ScheduleRepository) Get(ctx context.Context, businessID uuid.UUID) (*domain.WeeklySchedule, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	sched, ok := s.schedules[businessID]
	if !ok {
		return nil, scheduleRepo.ErrScheduleNotFound
	}
	out := *sched
	return &out, nil
}

func (r *ScheduleRepository) Upsert(ctx context.Context, sched *domain.WeeklySchedule) (*domain.WeeklySchedule, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	stored := *sched
	stored.UpdatedAt = now
	if existing, ok := s.schedules[sched.BusinessID]; ok {
		stored.CreatedAt = existing.CreatedAt
	} else {
		stored.CreatedAt = now
	}
	s.schedules[sched.BusinessID] = &stored

	out := stored
	return &out, nil
}

// ClientRepository клиенты в памяти
type ClientRepository struct {
	store *Store
}

func (r *ClientRepository) Upsert(ctx context.Context, visit domain.ClientVisit) (*domain.Client, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	lastVisit := domain.DateOnly(visit.VisitDate)
	key := clientKey{businessID: visit.BusinessID, phone: visit.Phone}

	c, ok := s.clients[key]
	if !ok {
		c = &domain.Client{
			ID:         uuid.New(),
			BusinessID: visit.BusinessID,
			Phone:      visit.Phone,
			CreatedAt:  now,
		}
		s.clients[key] = c
	}

	c.Name = visit.Name
	if visit.Email != nil {
		c.Email = visit.Email
	}
	c.Visits++
	c.LastVisit = &lastVisit
	c.UpdatedAt = now

	out := *c
	return &out, nil
}

// ServiceRepository услуги в памяти
type ServiceRepository struct {
	store *Store
}

func (r *ServiceRepository) Get(ctx context.Context, businessID, serviceID uuid.UUID) (*domain.Service, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	svc, ok := s.services[serviceID]
	if !ok || svc.BusinessID != businessID {
		return nil, offeringRepo.ErrServiceNotFound
	}
	out := *svc
	return &out, nil
}

// ProfileRepository профили бизнеса в памяти
type ProfileRepository struct {
	store *Store
}

func (r *ProfileRepository) Get(ctx context.Context, businessID uuid.UUID) (*domain.BusinessProfile, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.profiles[businessID]
	if !ok {
		return nil, businessRepo.ErrProfileNotFound
	}
	out := *p
	return &out, nil
}

func (r *ProfileRepository) Upsert(ctx context.Context, p *domain.BusinessProfile) (*domain.BusinessProfile, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	stored := *p
	stored.UpdatedAt = now
	if existing, ok := s.profiles[p.BusinessID]; ok {
		stored.CreatedAt = existing.CreatedAt
	} else {
		stored.CreatedAt = now
	}
	s.profiles[p.BusinessID] = &stored

	out := stored
	return &out, nil
}

// SubscriptionRepository подписки в памяти
type SubscriptionRepository struct {
	store *Store
}

func (r *SubscriptionRepository) GetByBusiness(ctx context.Context, businessID uuid.UUID) (*domain.Subscription, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	sub, ok := s.subscriptions[businessID]
	if !ok {
		return nil, subscriptionRepo.ErrSubscriptionNotFound
	}
	out := *sub
	return &out, nil
}

func (r *SubscriptionRepository) Create(ctx context.Context, sub *domain.Subscription) (*domain.Subscription, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.subscriptions[sub.BusinessID]; exists {
		return nil, subscriptionRepo.ErrSubscriptionExists
	}

	stored := *sub
	stored.ID = uuid.New()
	s.subscriptions[sub.BusinessID] = &stored

	out := stored
	return &out, nil
}

// NotificationLogRepository журнал уведомлений в памяти
type NotificationLogRepository struct {
	store *Store
}

func (r *NotificationLogRepository) Create(ctx context.Context, entry *domain.NotificationLog) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	entry.ID = uuid.New()
	entry.CreatedAt = s.now()

	stored := *entry
	s.notifications = append(s.notifications, &stored)

	return nil
}
