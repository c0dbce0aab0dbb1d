package business

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

// Repository репозиторий профилей бизнеса
type Repository struct {
	db DBExecutor
}

func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Get возвращает профиль бизнеса
func (r *Repository) Get(ctx context.Context, businessID uuid.UUID) (*domain.BusinessProfile, error) {
	query, args, err := psqlbuilder.Select("business_id", "business_name", "created_at", "updated_at").
		From("business_profiles").
		Where(squirrel.Eq{"business_id": businessID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Get - build select query: %v", ErrBuildQuery, err)
	}

	var p domain.BusinessProfile
	var createdAt, updatedAt sql.NullTime
	err = r.db.QueryRowContext(ctx, query, args...).Scan(&p.BusinessID, &p.Name, &createdAt, &updatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProfileNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Get - scan profile: %v", ErrScanRow, err)
	}

	p.CreatedAt = createdAt.Time
	p.UpdatedAt = updatedAt.Time

	return &p, nil
}

// Upsert создает или обновляет профиль бизнеса
func (r *Repository) Upsert(ctx context.Context, p *domain.BusinessProfile) (*domain.BusinessProfile, error) {
	query, args, err := psqlbuilder.Insert("business_profiles").
		Columns("business_id", "business_name").
		Values(p.BusinessID, p.Name).
		Suffix(`ON CONFLICT (business_id) DO UPDATE SET
			business_name = EXCLUDED.business_name,
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

	saved := *p
	saved.CreatedAt = createdAt.Time
	saved.UpdatedAt = updatedAt.Time

	return &saved, nil
}
