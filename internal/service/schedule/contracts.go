package schedule

import (
	"context"
	"time"

	"github.com/m04kA/SBS-SchedulingService/internal/domain"
)

// ScheduleRepository интерфейс репозитория расписания
type ScheduleRepository interface {
	GetConfig(ctx context.Context) (*domain.ScheduleConfig, error)
	UpdateConfig(ctx context.Context, cfg *domain.ScheduleConfig) (*domain.ScheduleConfig, error)
	GetException(ctx context.Context, date time.Time) (*domain.ScheduleException, error)
	ListExceptions(ctx context.Context, from time.Time) ([]*domain.ScheduleException, error)
	UpsertException(ctx context.Context, exc *domain.ScheduleException) (*domain.ScheduleException, error)
	DeleteException(ctx context.Context, date time.Time) error
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
