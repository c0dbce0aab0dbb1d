package business

import "errors"

var (
	// ErrProfileNotFound возвращается, когда профиль бизнеса не найден
	ErrProfileNotFound = errors.New("business.repository: profile not found")

	ErrBuildQuery = errors.New("business.repository: failed to build query")
	ErrExecQuery  = errors.New("business.repository: failed to execute query")
	ErrScanRow    = errors.New("business.repository: failed to scan row")
)
