package offering

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

// Repository репозиторий услуг бизнеса (таблица services)
type Repository struct {
	db DBExecutor
}

func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Get возвращает услугу бизнеса по ID
// Услуга другого бизнеса считается ненайденной
func (r *Repository) Get(ctx context.Context, businessID, serviceID uuid.UUID) (*domain.Service, error) {
	query, args, err := psqlbuilder.Select("id", "business_id", "name", "price", "duration", "active").
		From("services").
		Where(squirrel.Eq{"id": serviceID, "business_id": businessID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Get - build select query: %v", ErrBuildQuery, err)
	}

	var s domain.Service
	err = r.db.QueryRowContext(ctx, query, args...).Scan(
		&s.ID,
		&s.BusinessID,
		&s.Name,
		&s.Price,
		&s.DurationMinutes,
		&s.Active,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrServiceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Get - scan service: %v", ErrScanRow, err)
	}

	return &s, nil
}
