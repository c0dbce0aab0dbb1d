package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestSubscription_IsLocked(t *testing.T) {
	now := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)
	future := now.Add(48 * time.Hour)
	past := now.Add(-time.Hour)

	tests := []struct {
		name   string
		status SubscriptionStatus
		end    time.Time
		want   bool
	}{
		{"trial in period", SubscriptionTrial, future, false},
		{"trial expired", SubscriptionTrial, past, true},
		{"active in period", SubscriptionActive, future, false},
		{"active after period", SubscriptionActive, past, true},
		{"past due in grace", SubscriptionPastDue, future, false},
		{"canceled after period", SubscriptionCanceled, past, true},
		{"expired always", SubscriptionExpired, future, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &Subscription{Status: tt.status, CurrentPeriodEnd: tt.end}
			assert.Equal(t, tt.want, s.IsLocked(now))
		})
	}
}

func TestNewTrialSubscription(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	s := NewTrialSubscription(uuid.New(), now)

	assert.Equal(t, SubscriptionTrial, s.Status)
	assert.Equal(t, PlanFreeTrial, s.Plan)
	assert.Equal(t, 30, s.DaysRemaining(now))
	assert.Equal(t, 0, s.DaysRemaining(now.AddDate(0, 2, 0)))
}
