package call_next

import (
	"context"

	"github.com/m04kA/SBS-SchedulingService/internal/service/queue/models"
)

type QueueService interface {
	CallNext(ctx context.Context) (*models.AppointmentResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
