package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics набор prometheus-метрик сервиса
type Metrics struct {
	serviceName string

	// HTTP
	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// База данных
	dbQueryDuration *prometheus.HistogramVec
	dbQueryErrors   *prometheus.CounterVec
	dbConnections   *prometheus.GaugeVec

	// Бизнес-метрики
	slotQueries       *prometheus.CounterVec
	bookingsCommitted prometheus.Counter
	bookingsRejected  *prometheus.CounterVec
	bookingsCancelled prometheus.Counter
	notifications     *prometheus.CounterVec
}

// New создает метрики и регистрирует их в глобальном реестре prometheus
func New(serviceName string) *Metrics {
	return NewWithRegistry(prometheus.DefaultRegisterer, serviceName)
}

// NewWithRegistry создает метрики в указанном реестре
// Используется в тестах и при выключенных метриках (приватный реестр)
func NewWithRegistry(reg prometheus.Registerer, serviceName string) *Metrics {
	m := &Metrics{
		serviceName: serviceName,
		httpRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests.",
			},
			[]string{"service", "method", "path", "status"},
		),
		httpRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request duration in seconds.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"service", "method", "path"},
		),
		dbQueryDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "db_query_duration_seconds",
				Help:    "Database query duration in seconds.",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
			},
			[]string{"service", "operation"},
		),
		dbQueryErrors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "db_query_errors_total",
				Help: "Total number of failed database queries.",
			},
			[]string{"service", "operation"},
		),
		dbConnections: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "db_connections",
				Help: "Database connection pool state.",
			},
			[]string{"service", "state"},
		),
		slotQueries: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "availability_queries_total",
				Help: "Availability queries by resulting classification.",
			},
			[]string{"service", "status"},
		),
		bookingsCommitted: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name:        "bookings_committed_total",
				Help:        "Bookings successfully committed.",
				ConstLabels: prometheus.Labels{"service": serviceName},
			},
		),
		bookingsRejected: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bookings_rejected_total",
				Help: "Booking attempts rejected at commit, by reason.",
			},
			[]string{"service", "reason"},
		),
		bookingsCancelled: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name:        "bookings_cancelled_total",
				Help:        "Bookings cancelled.",
				ConstLabels: prometheus.Labels{"service": serviceName},
			},
		),
		notifications: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "notifications_total",
				Help: "Notification dispatch attempts by type and result.",
			},
			[]string{"service", "type", "result"},
		),
	}

	reg.MustRegister(
		m.httpRequestsTotal,
		m.httpRequestDuration,
		m.dbQueryDuration,
		m.dbQueryErrors,
		m.dbConnections,
		m.slotQueries,
		m.bookingsCommitted,
		m.bookingsRejected,
		m.bookingsCancelled,
		m.notifications,
	)

	return m
}

// ObserveHTTPRequest записывает метрики HTTP запроса
func (m *Metrics) ObserveHTTPRequest(method, path, status string, seconds float64) {
	m.httpRequestsTotal.WithLabelValues(m.serviceName, method, path, status).Inc()
	m.httpRequestDuration.WithLabelValues(m.serviceName, method, path).Observe(seconds)
}

// ObserveDBQuery записывает длительность запроса к БД
func (m *Metrics) ObserveDBQuery(operation string, seconds float64, err error) {
	m.dbQueryDuration.WithLabelValues(m.serviceName, operation).Observe(seconds)
	if err != nil {
		m.dbQueryErrors.WithLabelValues(m.serviceName, operation).Inc()
	}
}

// SetDBConnections обновляет состояние пула соединений
func (m *Metrics) SetDBConnections(open, inUse, idle int) {
	m.dbConnections.WithLabelValues(m.serviceName, "open").Set(float64(open))
	m.dbConnections.WithLabelValues(m.serviceName, "in_use").Set(float64(inUse))
	m.dbConnections.WithLabelValues(m.serviceName, "idle").Set(float64(idle))
}

// ObserveAvailabilityQuery учитывает запрос доступных слотов
func (m *Metrics) ObserveAvailabilityQuery(status string) {
	m.slotQueries.WithLabelValues(m.serviceName, status).Inc()
}

// IncBookingCommitted учитывает созданное бронирование
func (m *Metrics) IncBookingCommitted() {
	m.bookingsCommitted.Inc()
}

// IncBookingRejected учитывает отклоненную попытку бронирования
func (m *Metrics) IncBookingRejected(reason string) {
	m.bookingsRejected.WithLabelValues(m.serviceName, reason).Inc()
}

// IncBookingCancelled учитывает отмену бронирования
func (m *Metrics) IncBookingCancelled() {
	m.bookingsCancelled.Inc()
}

// IncNotification учитывает попытку отправки уведомления
func (m *Metrics) IncNotification(notificationType string, sent bool) {
	result := "sent"
	if !sent {
		result = "failed"
	}
	m.notifications.WithLabelValues(m.serviceName, notificationType, result).Inc()
}
