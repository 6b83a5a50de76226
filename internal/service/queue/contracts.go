package queue

import (
	"context"
	"time"

	"github.com/m04kA/SBS-SchedulingService/internal/domain"
	"github.com/m04kA/SBS-SchedulingService/internal/integrations/notifyservice"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Appointment, error)
	GetByDate(ctx context.Context, date time.Time, includeCancelled bool) ([]*domain.Appointment, error)
	GetInProgress(ctx context.Context) (*domain.Appointment, error)
	UpdateStatus(ctx context.Context, id int64, status domain.AppointmentStatus) error
	Complete(ctx context.Context, id int64, finalPrice float64) error
	Cancel(ctx context.Context, id int64, reason string) error
	UpdateQueueSequence(ctx context.Context, id int64, sequence int) error
	MaxQueueSequence(ctx context.Context, date time.Time) (int, error)
}

// NotifyServiceClient интерфейс клиента NotifyService
type NotifyServiceClient interface {
	NotifyChairFreeWithGracefulDegradation(ctx context.Context, notification *notifyservice.ChairFreeNotification) error
	ReportNoShowWithGracefulDegradation(ctx context.Context, report *notifyservice.NoShowReport) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
