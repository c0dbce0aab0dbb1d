// Package memory хранилище в памяти для демо-режима и тестов.
// Повторяет контракты PostgreSQL репозиториев, включая уникальность активного слота.
package memory

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMB-BookingService/internal/domain"
)

type slotKey struct {
	businessID uuid.UUID
	date       string
	time       string
}

// Store общее состояние всех репозиториев в памяти
type Store struct {
	mu sync.RWMutex

	bookings      map[uuid.UUID]*domain.Booking
	activeSlots   map[slotKey]uuid.UUID
	schedules     map[uuid.UUID]*domain.WeeklySchedule
	clients       map[clientKey]*domain.Client
	services      map[uuid.UUID]*domain.Service
	profiles      map[uuid.UUID]*domain.BusinessProfile
	subscriptions map[uuid.UUID]*domain.Subscription
	notifications []*domain.NotificationLog

	now func() time.Time
}

type clientKey struct {
	businessID uuid.UUID
	phone      string
}

// NewStore создает пустое хранилище
func NewStore() *Store {
	return &Store{
		bookings:      make(map[uuid.UUID]*domain.Booking),
		activeSlots:   make(map[slotKey]uuid.UUID),
		schedules:     make(map[uuid.UUID]*domain.WeeklySchedule),
		clients:       make(map[clientKey]*domain.Client),
		services:      make(map[uuid.UUID]*domain.Service),
		profiles:      make(map[uuid.UUID]*domain.BusinessProfile),
		subscriptions: make(map[uuid.UUID]*domain.Subscription),
		now:           time.Now,
	}
}

func (s *Store) Bookings() *BookingRepository {
	return &BookingRepository{store: s}
}

func (s *Store) Schedules() *ScheduleRepository {
	return &ScheduleRepository{store: s}
}

func (s *Store) Clients() *ClientRepository {
	return &ClientRepository{store: s}
}

func (s *Store) Services() *ServiceRepository {
	return &ServiceRepository{store: s}
}

func (s *Store) Profiles() *ProfileRepository {
	return &ProfileRepository{store: s}
}

func (s *Store) Subscriptions() *SubscriptionRepository {
	return &SubscriptionRepository{store: s}
}

func (s *Store) NotificationLogs() *NotificationLogRepository {
	return &NotificationLogRepository{store: s}
}

// AddService регистрирует услугу (в PostgreSQL услуги управляются вне этого сервиса)
func (s *Store) AddService(svc domain.Service) *domain.Service {
	s.mu.Lock()
	defer s.mu.Unlock()

	if svc.ID == uuid.Nil {
		svc.ID = uuid.New()
	}
	stored := svc
	s.services[svc.ID] = &stored

	out := stored
	return &out
}

// NotificationLogEntries копия журнала уведомлений
func (s *Store) NotificationLogEntries() []domain.NotificationLog {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.NotificationLog, 0, len(s.notifications))
	for _, n := range s.notifications {
		out = append(out, *n)
	}
	return out
}

// ClientByPhone возвращает клиента бизнеса по телефону
func (s *Store) ClientByPhone(businessID uuid.UUID, phone string) (*domain.Client, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.clients[clientKey{businessID: businessID, phone: phone}]
	if !ok {
		return nil, false
	}
	out := *c
	return &out, true
}

func keyFor(b *domain.Booking) slotKey {
	return slotKey{
		businessID: b.BusinessID,
		date:       b.Date.Format(domain.DateFormat),
		time:       b.Time.String(),
	}
}

func copyBooking(b *domain.Booking) *domain.Booking {
	out := *b
	return &out
}
