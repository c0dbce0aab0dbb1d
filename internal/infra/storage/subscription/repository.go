package subscription

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/m04kA/SMB-BookingService/internal/domain"
	"github.com/m04kA/SMB-BookingService/pkg/psqlbuilder"
)

// Repository репозиторий подписок
type Repository struct {
	db DBExecutor
}

func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByBusiness возвращает подписку бизнеса
func (r *Repository) GetByBusiness(ctx context.Context, businessID uuid.UUID) (*domain.Subscription, error) {
	query, args, err := psqlbuilder.Select(
		"id",
		"business_id",
		"status",
		"plan",
		"current_period_start",
		"current_period_end",
		"cancel_at_period_end",
	).
		From("subscriptions").
		Where(squirrel.Eq{"business_id": businessID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByBusiness - build select query: %v", ErrBuildQuery, err)
	}

	var s domain.Subscription
	err = r.db.QueryRowContext(ctx, query, args...).Scan(
		&s.ID,
		&s.BusinessID,
		&s.Status,
		&s.Plan,
		&s.CurrentPeriodStart,
		&s.CurrentPeriodEnd,
		&s.CancelAtPeriodEnd,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSubscriptionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByBusiness - scan subscription: %v", ErrScanRow, err)
	}

	return &s, nil
}

// Create создает подписку, у бизнеса может быть только одна подписка
func (r *Repository) Create(ctx context.Context, s *domain.Subscription) (*domain.Subscription, error) {
	query, args, err := psqlbuilder.Insert("subscriptions").
		Columns(
			"business_id",
			"status",
			"plan",
			"current_period_start",
			"current_period_end",
			"cancel_at_period_end",
		).
		Values(
			s.BusinessID,
			s.Status,
			s.Plan,
			s.CurrentPeriodStart,
			s.CurrentPeriodEnd,
			s.CancelAtPeriodEnd,
		).
		Suffix("RETURNING id").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	created := *s
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&created.ID); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return nil, ErrSubscriptionExists
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return &created, nil
}
