package schedule

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/m04kA/SMB-BookingService/internal/domain"
	"github.com/m04kA/SMB-BookingService/pkg/psqlbuilder"
)

// Repository репозиторий недельного расписания (таблица availability_settings)
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория расписаний
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Get возвращает расписание бизнеса
func (r *Repository) Get(ctx context.Context, businessID uuid.UUID) (*domain.WeeklySchedule, error) {
	query, args, err := psqlbuilder.Select(
		"business_id",
		"days",
		"slot_duration",
		"buffer_time",
		"advance_booking_days",
		"created_at",
		"updated_at",
	).
		From("availability_settings").
		Where(squirrel.Eq{"business_id": businessID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Get - build select query: %v", ErrBuildQuery, err)
	}

	var (
		s         domain.WeeklySchedule
		rawDays   []byte
		createdAt sql.NullTime
		updatedAt sql.NullTime
	)

	err = r.db.QueryRowContext(ctx, query, args...).Scan(
		&s.BusinessID,
		&rawDays,
		&s.SlotDurationMinutes,
		&s.BufferMinutes,
		&s.AdvanceBookingDays,
		&createdAt,
		&updatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrScheduleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Get - scan schedule: %v", ErrScanRow, err)
	}

	s.Days, err = DecodeDays(rawDays)
	if err != nil {
		return nil, fmt.Errorf("Get - business=%s: %w", businessID, err)
	}
	s.CreatedAt = createdAt.Time
	s.UpdatedAt = updatedAt.Time

	return &s, nil
}

// Upsert создает или обновляет расписание бизнеса (ключ - business_id)
func (r *Repository) Upsert(ctx context.Context, s *domain.WeeklySchedule) (*domain.WeeklySchedule, error) {
	rawDays, err := EncodeDays(s.Days)
	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - encode days: %v", ErrBuildQuery, err)
	}

	query, args, err := psqlbuilder.Insert("availability_settings").
		Columns(
			"business_id",
			"days",
			"slot_duration",
			"buffer_time",
			"advance_booking_days",
		).
		Values(
			s.BusinessID,
			rawDays,
			s.SlotDurationMinutes,
			s.BufferMinutes,
			s.AdvanceBookingDays,
		).
		Suffix(`ON CONFLICT (business_id) DO UPDATE SET
			days = EXCLUDED.days,
			slot_duration = EXCLUDED.slot_duration,
			buffer_time = EXCLUDED.buffer_time,
			advance_booking_days = EXCLUDED.advance_booking_days,
			updated_at = NOW()
		RETURNING created_at, updated_at`).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&createdAt, &updatedAt); err != nil {
		return nil, fmt.Errorf("%w: Upsert - execute insert: %v", ErrExecQuery, err)
	}

	saved := *s
	saved.CreatedAt = createdAt.Time
	saved.UpdatedAt = updatedAt.Time

	return &saved, nil
}
