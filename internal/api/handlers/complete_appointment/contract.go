package complete_appointment

import (
	"context"

	"github.com/m04kA/SBS-SchedulingService/internal/service/queue/models"
)

type QueueService interface {
	Complete(ctx context.Context, id int64, req *models.CompleteAppointmentRequest) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
