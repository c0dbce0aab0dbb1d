package notificationlog

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/m04kA/SMB-BookingService/internal/domain"
	"github.com/m04kA/SMB-BookingService/pkg/psqlbuilder"
)

// Repository журнал отправленных уведомлений
type Repository struct {
	db DBExecutor
}

func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create добавляет запись в журнал уведомлений
func (r *Repository) Create(ctx context.Context, entry *domain.NotificationLog) error {
	query, args, err := psqlbuilder.Insert("notification_logs").
		Columns("business_id", "booking_id", "channel", "type", "recipient", "content", "status").
		Values(entry.BusinessID, entry.BookingID, entry.Channel, entry.Type, entry.Recipient, entry.Content, entry.Status).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&entry.ID, &createdAt); err != nil {
		return fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}
	entry.CreatedAt = createdAt.Time

	return nil
}
