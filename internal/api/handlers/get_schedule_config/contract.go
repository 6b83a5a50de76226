package get_schedule_config

import (
	"context"

	"github.com/m04kA/SBS-SchedulingService/internal/service/schedule/models"
)

type ScheduleService interface {
	GetConfig(ctx context.Context) (*models.ConfigResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
