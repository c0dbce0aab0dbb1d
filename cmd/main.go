package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMB-BookingService/internal/api"
	cancelBookingHandler "github.com/m04kA/SMB-BookingService/internal/api/handlers/cancel_booking"
	createBookingHandler "github.com/m04kA/SMB-BookingService/internal/api/handlers/create_booking"
	getAvailableSlotsHandler "github.com/m04kA/SMB-BookingService/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/m04kA/SMB-BookingService/internal/api/handlers/get_booking"
	getBusinessBookingsHandler "github.com/m04kA/SMB-BookingService/internal/api/handlers/get_business_bookings"
	getScheduleHandler "github.com/m04kA/SMB-BookingService/internal/api/handlers/get_schedule"
	onboardBusinessHandler "github.com/m04kA/SMB-BookingService/internal/api/handlers/onboard_business"
	sendReminderHandler "github.com/m04kA/SMB-BookingService/internal/api/handlers/send_reminder"
	updateBookingStatusHandler "github.com/m04kA/SMB-BookingService/internal/api/handlers/update_booking_status"
	updateScheduleHandler "github.com/m04kA/SMB-BookingService/internal/api/handlers/update_schedule"
	"github.com/m04kA/SMB-BookingService/internal/api/middleware"
	"github.com/m04kA/SMB-BookingService/internal/config"
	"github.com/m04kA/SMB-BookingService/internal/infra/storage/memory"
	"github.com/m04kA/SMB-BookingService/internal/integrations/notifier"
	bookingsService "github.com/m04kA/SMB-BookingService/internal/service/bookings"
	notificationsService "github.com/m04kA/SMB-BookingService/internal/service/notifications"
	scheduleService "github.com/m04kA/SMB-BookingService/internal/service/schedule"
	subscriptionService "github.com/m04kA/SMB-BookingService/internal/service/subscription"
	createBookingUC "github.com/m04kA/SMB-BookingService/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/m04kA/SMB-BookingService/internal/usecase/get_available_slots"
	"github.com/m04kA/SMB-BookingService/pkg/dbmetrics"
	"github.com/m04kA/SMB-BookingService/pkg/logger"
	"github.com/m04kA/SMB-BookingService/pkg/metrics"
)

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting SMB-BookingService...")
	log.Info("Configuration loaded from config.toml")

	// Метрики собираются всегда, при выключенных - в отдельный реестр без эндпоинта
	var metricsCollector *metrics.Metrics
	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	} else {
		metricsCollector = metrics.NewWithRegistry(prometheus.NewRegistry(), cfg.Metrics.ServiceName)
	}
	stopMetricsCh := make(chan struct{})

	location, err := cfg.Booking.Location()
	if err != nil {
		log.Fatal("Invalid booking timezone: %v", err)
	}

	// Хранилище: PostgreSQL или память в демо-режиме
	var (
		repos  *repositories
		health http.HandlerFunc
	)
	if cfg.Demo.Enabled {
		store := memory.NewStore()
		if cfg.Demo.Seed {
			services := store.Seed(time.Now().In(location))
			log.Info("Demo data seeded: %d services", len(services))
		}
		repos = newMemoryRepositories(store)
		log.Warn("Demo mode: data is kept in memory and lost on restart")
	} else {
		db, err := sql.Open("postgres", cfg.Database.DSN())
		if err != nil {
			log.Fatal("Failed to connect to database: %v", err)
		}
		defer db.Close()

		// Настраиваем connection pool
		db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
		db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
		db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

		// Проверяем соединение
		if err := db.Ping(); err != nil {
			log.Fatal("Failed to ping database: %v", err)
		}
		log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
			cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

		wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
		repos = newPostgresRepositories(wrappedDB)
		health = dbHealth(wrappedDB, log)
	}

	// Redis нужен только лимитеру публичных запросов
	var rateLimiter *middleware.RateLimiter
	if cfg.Redis.Enabled {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer rdb.Close()

		pingCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		if err := rdb.Ping(pingCtx).Err(); err != nil {
			log.Warn("Redis ping failed (addr=%s): %v, rate limiter will fail open", cfg.Redis.Addr, err)
		}
		cancel()

		if cfg.RateLimit.Enabled {
			rateLimiter = middleware.NewRateLimiter(rdb, cfg.RateLimit.Requests, cfg.RateLimit.Window(), "booking", cfg.RateLimit.TrustForwardedFor, log)
			log.Info("Rate limit enabled: %d requests per %s", cfg.RateLimit.Requests, cfg.RateLimit.Window())
		}
	}

	// Провайдер уведомлений
	sender, closeSender := newSender(cfg.Notifications, log)
	defer closeSender()

	// Инициализируем сервисы
	subscriptionSvc := subscriptionService.NewService(repos.subscriptions, log)
	notificationSvc := notificationsService.NewService(sender, repos.notificationLogs, metricsCollector, log)
	scheduleSvc := scheduleService.NewService(repos.schedules, repos.profiles, subscriptionSvc, log)
	bookingSvc := bookingsService.NewService(repos.bookings, repos.profiles, notificationSvc, metricsCollector, log)

	// Инициализируем use cases
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		repos.bookings,
		repos.schedules,
		subscriptionSvc,
		metricsCollector,
		location,
		log,
	)
	createBookingUseCase := createBookingUC.NewUseCase(
		getAvailableSlotsUseCase,
		repos.bookings,
		repos.services,
		repos.clients,
		repos.profiles,
		notificationSvc,
		metricsCollector,
		log,
	)

	// Инициализируем handlers и роутер
	opts := api.Options{
		Metrics:     metricsCollector,
		RateLimiter: rateLimiter,
		Health:      health,
		Logger:      log,
	}
	if cfg.Metrics.Enabled {
		opts.MetricsPath = cfg.Metrics.Path
		opts.MetricsHandler = promhttp.Handler()
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	r := api.NewRouter(api.Handlers{
		GetAvailableSlots:   getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log),
		CreateBooking:       createBookingHandler.NewHandler(createBookingUseCase, log),
		GetSchedule:         getScheduleHandler.NewHandler(scheduleSvc, log),
		UpdateSchedule:      updateScheduleHandler.NewHandler(scheduleSvc, log),
		OnboardBusiness:     onboardBusinessHandler.NewHandler(scheduleSvc, log),
		GetBusinessBookings: getBusinessBookingsHandler.NewHandler(bookingSvc, log),
		GetBooking:          getBookingHandler.NewHandler(bookingSvc, log),
		UpdateBookingStatus: updateBookingStatusHandler.NewHandler(bookingSvc, log),
		CancelBooking:       cancelBookingHandler.NewHandler(bookingSvc, log),
		SendReminder:        sendReminderHandler.NewHandler(bookingSvc, log),
	}, opts)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s (timezone=%s)", addr, location)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// Останавливаем сбор метрик connection pool
	close(stopMetricsCh)

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}

// newSender выбирает провайдера уведомлений, вторым значением возвращает функцию освобождения ресурсов
func newSender(cfg config.NotificationsConfig, log *logger.Logger) (notificationsService.Sender, func()) {
	var (
		sender  notifier.Sender
		closeFn = func() {}
	)

	switch strings.ToLower(cfg.Provider) {
	case config.ProviderWebhook:
		sender = notifier.NewWebhookSender(
			cfg.Webhook.URL,
			cfg.Webhook.Token,
			time.Duration(cfg.Webhook.Timeout)*time.Second,
			log,
		)
		log.Info("Notifications: webhook provider (url=%s, timeout=%ds)", cfg.Webhook.URL, cfg.Webhook.Timeout)
	case config.ProviderKafka:
		kafkaSender := notifier.NewKafkaSender(cfg.Kafka.Brokers, cfg.Kafka.Topic, log)
		sender = kafkaSender
		closeFn = func() {
			if err := kafkaSender.Close(); err != nil {
				log.Error("Failed to close kafka writer: %v", err)
			}
		}
		log.Info("Notifications: kafka provider (brokers=%s, topic=%s)", strings.Join(cfg.Kafka.Brokers, ","), cfg.Kafka.Topic)
	default:
		sender = notifier.NewLogSender(log)
		log.Info("Notifications: log provider")
	}

	if cfg.Rate.PerSecond > 0 {
		sender = notifier.NewRateLimited(sender, cfg.Rate.PerSecond, cfg.Rate.Burst)
	}

	return sender, closeFn
}

// dbHealth проверка доступности базы для /health
func dbHealth(db *dbmetrics.DB, log *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		w.Header().Set("Content-Type", "application/json")
		if err := db.PingContext(ctx); err != nil {
			log.Warn("Health check: database ping failed: %v", err)
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte(`{"status":"unavailable"}`))
			return
		}
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	}
}
