package domain

import (
	"time"

	"github.com/google/uuid"
)

// Client клиент бизнеса, естественный ключ - телефон в рамках бизнеса
type Client struct {
	ID         uuid.UUID
	BusinessID uuid.UUID
	Name       string
	Phone      string
	Email      *string
	Visits     int
	LastVisit  *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// ClientVisit данные для upsert клиента при новом бронировании
type ClientVisit struct {
	BusinessID uuid.UUID
	Name       string
	Phone      string
	Email      *string
	VisitDate  time.Time
}
