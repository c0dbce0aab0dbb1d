package schedule

import "github.com/m04kA/SMB-BookingService/pkg/dbmetrics"

type DBExecutor = dbmetrics.DBExecutor
