package models

import (
	"time"

	"github.com/m04kA/SMB-BookingService/internal/domain"
)

// SubscriptionResponse состояние подписки бизнеса
type SubscriptionResponse struct {
	BusinessID         string `json:"businessId"`
	Status             string `json:"status"`
	Plan               string `json:"plan"`
	CurrentPeriodStart string `json:"currentPeriodStart"`
	CurrentPeriodEnd   string `json:"currentPeriodEnd"`
	DaysRemaining      int    `json:"daysRemaining"`
	Locked             bool   `json:"locked"`
}

// FromDomainSubscription конвертирует domain.Subscription на момент now
func FromDomainSubscription(s *domain.Subscription, now time.Time) *SubscriptionResponse {
	if s == nil {
		return nil
	}
	return &SubscriptionResponse{
		BusinessID:         s.BusinessID.String(),
		Status:             string(s.Status),
		Plan:               string(s.Plan),
		CurrentPeriodStart: s.CurrentPeriodStart.Format(time.RFC3339),
		CurrentPeriodEnd:   s.CurrentPeriodEnd.Format(time.RFC3339),
		DaysRemaining:      s.DaysRemaining(now),
		Locked:             s.IsLocked(now),
	}
}
