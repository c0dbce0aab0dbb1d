package domain

import "github.com/google/uuid"

// Service услуга, которую предлагает бизнес
type Service struct {
	ID              uuid.UUID
	BusinessID      uuid.UUID
	Name            string
	Price           float64
	DurationMinutes int
	Active          bool
}
