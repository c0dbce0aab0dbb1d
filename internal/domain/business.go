package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// BusinessProfile профиль бизнеса
type BusinessProfile struct {
	BusinessID uuid.UUID
	Name       string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// DisplayName имя для уведомлений, с запасным значением
func (p *BusinessProfile) DisplayName() string {
	if p == nil || strings.TrimSpace(p.Name) == "" {
		return DefaultBusinessName
	}
	return p.Name
}
