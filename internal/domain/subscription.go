package domain

import (
	"time"

	"github.com/google/uuid"
)

// SubscriptionStatus статус подписки
type SubscriptionStatus string

const (
	SubscriptionTrial    SubscriptionStatus = "trial"
	SubscriptionActive   SubscriptionStatus = "active"
	SubscriptionPastDue  SubscriptionStatus = "past_due"
	SubscriptionCanceled SubscriptionStatus = "canceled"
	SubscriptionExpired  SubscriptionStatus = "expired"
)

// SubscriptionPlan тарифный план
type SubscriptionPlan string

const (
	PlanFreeTrial   SubscriptionPlan = "free_trial"
	PlanSAMonthly   SubscriptionPlan = "sa_monthly"
	PlanIntlMonthly SubscriptionPlan = "intl_monthly"
)

// Subscription подписка бизнеса
type Subscription struct {
	ID                 uuid.UUID
	BusinessID         uuid.UUID
	Status             SubscriptionStatus
	Plan               SubscriptionPlan
	CurrentPeriodStart time.Time
	CurrentPeriodEnd   time.Time
	CancelAtPeriodEnd  bool
}

// NewTrialSubscription пробная подписка на TrialDays дней
func NewTrialSubscription(businessID uuid.UUID, now time.Time) *Subscription {
	return &Subscription{
		BusinessID:         businessID,
		Status:             SubscriptionTrial,
		Plan:               PlanFreeTrial,
		CurrentPeriodStart: now,
		CurrentPeriodEnd:   now.AddDate(0, 0, TrialDays),
	}
}

// IsLocked возвращает true, если бизнес не может принимать бронирования
// expired блокирует всегда; остальные статусы блокируют после окончания периода
func (s *Subscription) IsLocked(now time.Time) bool {
	if s.Status == SubscriptionExpired {
		return true
	}
	return now.After(s.CurrentPeriodEnd)
}

// DaysRemaining количество полных и неполных дней до конца периода
func (s *Subscription) DaysRemaining(now time.Time) int {
	left := s.CurrentPeriodEnd.Sub(now)
	if left <= 0 {
		return 0
	}
	days := int(left / (24 * time.Hour))
	if left%(24*time.Hour) != 0 {
		days++
	}
	return days
}
