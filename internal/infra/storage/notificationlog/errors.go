package notificationlog

import "errors"

var (
	ErrBuildQuery = errors.New("notificationlog.repository: failed to build query")
	ErrExecQuery  = errors.New("notificationlog.repository: failed to execute query")
)
