package subscription

import "errors"

var (
	// ErrSubscriptionNotFound возвращается, когда у бизнеса нет подписки
	ErrSubscriptionNotFound = errors.New("subscription.repository: subscription not found")

	// ErrSubscriptionExists возвращается при повторном создании подписки бизнеса
	ErrSubscriptionExists = errors.New("subscription.repository: subscription already exists")

	ErrBuildQuery = errors.New("subscription.repository: failed to build query")
	ErrExecQuery  = errors.New("subscription.repository: failed to execute query")
	ErrScanRow    = errors.New("subscription.repository: failed to scan row")
)
