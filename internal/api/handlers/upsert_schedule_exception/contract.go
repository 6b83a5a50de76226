package upsert_schedule_exception

import (
	"context"

	"github.com/m04kA/SBS-SchedulingService/internal/service/schedule/models"
)

type ScheduleService interface {
	UpsertException(ctx context.Context, req *models.UpsertExceptionRequest) (*models.ExceptionResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
