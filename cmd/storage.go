package main

import (
	bookingRepo "github.com/m04kA/SMB-BookingService/internal/infra/storage/booking"
	businessRepo "github.com/m04kA/SMB-BookingService/internal/infra/storage/business"
	clientRepo "github.com/m04kA/SMB-BookingService/internal/infra/storage/client"
	"github.com/m04kA/SMB-BookingService/internal/infra/storage/memory"
	notificationLogRepo "github.com/m04kA/SMB-BookingService/internal/infra/storage/notificationlog"
	offeringRepo "github.com/m04kA/SMB-BookingService/internal/infra/storage/offering"
	scheduleRepo "github.com/m04kA/SMB-BookingService/internal/infra/storage/schedule"
	subscriptionRepo "github.com/m04kA/SMB-BookingService/internal/infra/storage/subscription"
	bookingsService "github.com/m04kA/SMB-BookingService/internal/service/bookings"
	notificationsService "github.com/m04kA/SMB-BookingService/internal/service/notifications"
	scheduleService "github.com/m04kA/SMB-BookingService/internal/service/schedule"
	subscriptionService "github.com/m04kA/SMB-BookingService/internal/service/subscription"
	createBookingUC "github.com/m04kA/SMB-BookingService/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/m04kA/SMB-BookingService/internal/usecase/get_available_slots"
)

type bookingStore interface {
	bookingsService.BookingRepository
	createBookingUC.BookingRepository
	getAvailableSlotsUC.BookingRepository
}

type scheduleStore interface {
	scheduleService.ScheduleRepository
	getAvailableSlotsUC.ScheduleRepository
}

type profileStore interface {
	scheduleService.ProfileRepository
	bookingsService.ProfileRepository
	createBookingUC.ProfileRepository
}

// repositories хранилища приложения: PostgreSQL или память (демо-режим)
type repositories struct {
	bookings         bookingStore
	schedules        scheduleStore
	profiles         profileStore
	services         createBookingUC.ServiceRepository
	clients          createBookingUC.ClientRepository
	subscriptions    subscriptionService.SubscriptionRepository
	notificationLogs notificationsService.LogRepository
}

func newPostgresRepositories(db bookingRepo.DBExecutor) *repositories {
	return &repositories{
		bookings:         bookingRepo.NewRepository(db),
		schedules:        scheduleRepo.NewRepository(db),
		profiles:         businessRepo.NewRepository(db),
		services:         offeringRepo.NewRepository(db),
		clients:          clientRepo.NewRepository(db),
		subscriptions:    subscriptionRepo.NewRepository(db),
		notificationLogs: notificationLogRepo.NewRepository(db),
	}
}

func newMemoryRepositories(store *memory.Store) *repositories {
	return &repositories{
		bookings:         store.Bookings(),
		schedules:        store.Schedules(),
		profiles:         store.Profiles(),
		services:         store.Services(),
		clients:          store.Clients(),
		subscriptions:    store.Subscriptions(),
		notificationLogs: store.NotificationLogs(),
	}
}
