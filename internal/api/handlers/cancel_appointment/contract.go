package cancel_appointment

import (
	"context"

	"github.com/m04kA/SBS-SchedulingService/internal/service/queue/models"
)

type QueueService interface {
	Cancel(ctx context.Context, id int64, req *models.CancelAppointmentRequest) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
