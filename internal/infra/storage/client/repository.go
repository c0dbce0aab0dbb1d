package client

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/m04kA/SMB-BookingService/internal/domain"
	"github.com/m04kA/SMB-BookingService/pkg/psqlbuilder"
)

// Repository репозиторий клиентов бизнеса
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория клиентов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Upsert регистрирует визит клиента
// Новый клиент создается с visits=1, существующий (по телефону в рамках бизнеса)
// получает visits+1, обновленные имя/email и дату последнего визита
func (r *Repository) Upsert(ctx context.Context, visit domain.ClientVisit) (*domain.Client, error) {
	query, args, err := psqlbuilder.Insert("clients").
		Columns("business_id", "name", "phone", "email", "visits", "last_visit").
		Values(visit.BusinessID, visit.Name, visit.Phone, visit.Email, 1, visit.VisitDate.Format(domain.DateFormat)).
		Suffix(`ON CONFLICT (business_id, phone) DO UPDATE SET
			name = EXCLUDED.name,
			email = COALESCE(EXCLUDED.email, clients.email),
			visits = clients.visits + 1,
			last_visit = EXCLUDED.last_visit,
			updated_at = NOW()
		RETURNING id, visits, created_at, updated_at`).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - build insert query: %v", ErrBuildQuery, err)
	}

	c := &domain.Client{
		BusinessID: visit.BusinessID,
		Name:       visit.Name,
		Phone:      visit.Phone,
		Email:      visit.Email,
	}
	lastVisit := domain.DateOnly(visit.VisitDate)
	c.LastVisit = &lastVisit

	var createdAt, updatedAt sql.NullTime
	err = r.db.QueryRowContext(ctx, query, args...).Scan(&c.ID, &c.Visits, &createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - execute insert: %v", ErrExecQuery, err)
	}

	c.CreatedAt = createdAt.Time
	c.UpdatedAt = updatedAt.Time

	return c, nil
}
