package get_queue

import (
	"context"

	"github.com/m04kA/SBS-SchedulingService/internal/service/queue/models"
)

type QueueService interface {
	GetQueue(ctx context.Context) (*models.QueueResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
