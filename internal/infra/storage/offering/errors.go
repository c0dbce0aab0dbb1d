package offering

import "errors"

var (
	// ErrServiceNotFound возвращается, когда услуга не найдена у бизнеса
	ErrServiceNotFound = errors.New("offering.repository: service not found")

	ErrBuildQuery = errors.New("offering.repository: failed to build query")
	ErrScanRow    = errors.New("offering.repository: failed to scan row")
)
