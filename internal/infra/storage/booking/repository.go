package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/m04kA/SMB-BookingService/internal/domain"
	"github.com/m04kA/SMB-BookingService/pkg/psqlbuilder"
	"github.com/m04kA/SMB-BookingService/pkg/types"
)

// uniqueViolation код ошибки PostgreSQL для нарушения уникальности
const uniqueViolation = "23505"

var bookingColumns = []string{
	"id",
	"business_id",
	"service_id",
	"service_name",
	"client_name",
	"client_phone",
	"client_email",
	"booking_date",
	"booking_time",
	"status",
	"price",
	"notes",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование
// Активное бронирование на занятый слот отклоняется частичным уникальным индексом,
// в этом случае возвращается ErrSlotConflict
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"business_id",
			"service_id",
			"service_name",
			"client_name",
			"client_phone",
			"client_email",
			"booking_date",
			"booking_time",
			"status",
			"price",
			"notes",
		).
		Values(
			booking.BusinessID,
			booking.ServiceID,
			booking.ServiceName,
			booking.ClientName,
			booking.ClientPhone,
			booking.ClientEmail,
			booking.Date.Format(domain.DateFormat),
			booking.Time,
			booking.Status,
			booking.Price,
			booking.Notes,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = r.db.QueryRowContext(ctx, query, args...).Scan(
		&booking.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrSlotConflict
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return booking, nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error) {
	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := scanBooking(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %v", ErrScanRow, err)
	}

	return booking, nil
}

// ListByBusiness получает бронирования бизнеса
// Без IncludeInactive возвращаются только активные (scheduled, confirmed)
// Для конкретной даты сортировка по времени, иначе сначала новые
func (r *Repository) ListByBusiness(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"business_id": filter.BusinessID})

	if filter.Date != nil {
		selectBuilder = selectBuilder.
			Where(squirrel.Eq{"booking_date": filter.Date.Format(domain.DateFormat)}).
			OrderBy("booking_time ASC")
	} else {
		selectBuilder = selectBuilder.OrderBy("booking_date DESC, booking_time DESC")
	}

	if !filter.IncludeInactive {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": activeStatusStrings()})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByBusiness - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByBusiness - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// ListActiveTimes возвращает время начала всех активных бронирований бизнеса на дату
func (r *Repository) ListActiveTimes(ctx context.Context, businessID uuid.UUID, date time.Time) ([]types.TimeString, error) {
	query, args, err := psqlbuilder.Select("booking_time").
		From("bookings").
		Where(squirrel.Eq{
			"business_id":  businessID,
			"booking_date": date.Format(domain.DateFormat),
			"status":       activeStatusStrings(),
		}).
		OrderBy("booking_time ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListActiveTimes - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListActiveTimes - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	times := make([]types.TimeString, 0)
	for rows.Next() {
		var t types.TimeString
		if err := rows.Scan(&t); err != nil {
			return nil, fmt.Errorf("%w: ListActiveTimes - scan time: %v", ErrScanRow, err)
		}
		times = append(times, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListActiveTimes - rows iteration: %v", ErrScanRow, err)
	}

	return times, nil
}

// UpdateStatus переводит бронирование из статуса from в статус to
// Запись меняется, только если текущий статус все еще равен from,
// иначе возвращается ErrStatusChanged
func (r *Repository) UpdateStatus(ctx context.Context, id uuid.UUID, from, to domain.BookingStatus) (*domain.Booking, error) {
	query, args, err := updateStatusQuery(id, from, to)
	if err != nil {
		return nil, fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	booking, err := scanBooking(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		// Ни одной строки: бронирования нет или его статус уже другой
		if _, getErr := r.GetByID(ctx, id); getErr != nil {
			return nil, getErr
		}
		return nil, ErrStatusChanged
	}
	if err != nil {
		// Возврат отмененного бронирования в активный статус может упереться в индекс
		if isUniqueViolation(err) {
			return nil, ErrSlotConflict
		}
		return nil, fmt.Errorf("%w: UpdateStatus - execute update: %v", ErrExecQuery, err)
	}

	return booking, nil
}

func updateStatusQuery(id uuid.UUID, from, to domain.BookingStatus) (string, []interface{}, error) {
	return psqlbuilder.Update("bookings").
		Set("status", to).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "status": from}).
		Suffix("RETURNING " + joinColumns()).
		ToSql()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var booking domain.Booking
	var clientEmail, notes sql.NullString
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&booking.ID,
		&booking.BusinessID,
		&booking.ServiceID,
		&booking.ServiceName,
		&booking.ClientName,
		&booking.ClientPhone,
		&clientEmail,
		&booking.Date,
		&booking.Time,
		&booking.Status,
		&booking.Price,
		&notes,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if clientEmail.Valid {
		booking.ClientEmail = &clientEmail.String
	}
	if notes.Valid {
		booking.Notes = &notes.String
	}
	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return &booking, nil
}

// scanBookings вспомогательная функция для сканирования списка бронирований
func scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %v", ErrScanRow, err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows iteration: %v", ErrScanRow, err)
	}

	return bookings, nil
}

func activeStatusStrings() []string {
	statuses := make([]string, len(domain.ActiveStatuses))
	for i, s := range domain.ActiveStatuses {
		statuses[i] = string(s)
	}
	return statuses
}

func joinColumns() string {
	return strings.Join(bookingColumns, ", ")
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}
