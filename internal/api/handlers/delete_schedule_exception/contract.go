package delete_schedule_exception

import (
	"context"
	"time"
)

type ScheduleService interface {
	DeleteException(ctx context.Context, date time.Time) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
