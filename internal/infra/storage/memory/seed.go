package memory

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMB-BookingService/internal/domain"
	"github.com/m04kA/SMB-BookingService/pkg/types"
)

// DemoBusinessID идентификатор демо-бизнеса для публичной ссылки бронирования
var DemoBusinessID = uuid.MustParse("6f1c2a7e-4b9d-4c1e-9a53-0d2f8b7c6e10")

// SetSubscription сохраняет подписку бизнеса, заменяя существующую
func (s *Store) SetSubscription(sub domain.Subscription) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if sub.ID == uuid.Nil {
		sub.ID = uuid.New()
	}
	s.subscriptions[sub.BusinessID] = &sub
}

// Seed заполняет хранилище демо-данными: профиль, расписание по умолчанию
// с обеденным перерывом, две услуги, пробная подписка и бронирование на завтра
func (s *Store) Seed(now time.Time) []domain.Service {
	schedule := domain.DefaultWeeklySchedule(DemoBusinessID)
	breakStart, breakEnd := types.TimeString("12:00"), types.TimeString("13:00")
	for day := domain.Monday; day <= domain.Friday; day++ {
		schedule.Days[day].BreakStart = &breakStart
		schedule.Days[day].BreakEnd = &breakEnd
	}
	schedule.CreatedAt, schedule.UpdatedAt = now, now

	services := []domain.Service{
		{ID: uuid.MustParse("0b7e9f3a-1c2d-4e5f-8a9b-0c1d2e3f4a51"), BusinessID: DemoBusinessID, Name: "Haircut", Price: 150, DurationMinutes: 30, Active: true},
		{ID: uuid.MustParse("0b7e9f3a-1c2d-4e5f-8a9b-0c1d2e3f4a52"), BusinessID: DemoBusinessID, Name: "Beard Trim", Price: 80, DurationMinutes: 30, Active: true},
	}

	s.mu.Lock()
	s.profiles[DemoBusinessID] = &domain.BusinessProfile{
		BusinessID: DemoBusinessID,
		Name:       "Demo Barbershop",
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	s.schedules[DemoBusinessID] = schedule
	for i := range services {
		svc := services[i]
		s.services[svc.ID] = &svc
	}
	s.mu.Unlock()

	s.SetSubscription(*domain.NewTrialSubscription(DemoBusinessID, now))

	tomorrow := domain.DateOnly(now).AddDate(0, 0, 1)
	demo := &domain.Booking{
		ID:          uuid.New(),
		BusinessID:  DemoBusinessID,
		ServiceID:   services[0].ID,
		ServiceName: services[0].Name,
		ClientName:  "Demo Client",
		ClientPhone: "+27000000000",
		Date:        tomorrow,
		Time:        "10:00",
		Status:      domain.StatusScheduled,
		Price:       services[0].Price,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	s.mu.Lock()
	s.bookings[demo.ID] = demo
	s.activeSlots[keyFor(demo)] = demo.ID
	s.mu.Unlock()

	return services
}
