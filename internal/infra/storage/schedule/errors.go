package schedule

import "errors"

var (
	// ErrScheduleNotFound возвращается, когда у бизнеса нет сохраненного расписания
	ErrScheduleNotFound = errors.New("schedule.repository: schedule not found")

	// ErrInvalidData возвращается, когда сохраненные дни недели не удается разобрать
	ErrInvalidData = errors.New("schedule.repository: invalid stored schedule")

	ErrBuildQuery = errors.New("schedule.repository: failed to build query")
	ErrExecQuery  = errors.New("schedule.repository: failed to execute query")
	ErrScanRow    = errors.New("schedule.repository: failed to scan row")
)
