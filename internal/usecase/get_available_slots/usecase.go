package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SBS-SchedulingService/internal/domain"
	catalogRepo "github.com/m04kA/SBS-SchedulingService/internal/infra/storage/catalog"
	scheduleRepo "github.com/m04kA/SBS-SchedulingService/internal/infra/storage/schedule"
)

// UseCase use case для получения предлагаемых слотов на дату
// Генерация и разрешение конфликтов - чистые функции без side effects,
// безопасны для повторных вызовов и конкурентных читателей
type UseCase struct {
	appointmentRepo AppointmentRepository
	scheduleRepo    ScheduleRepository
	catalogRepo     CatalogRepository
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	scheduleRepo ScheduleRepository,
	catalogRepo CatalogRepository,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		scheduleRepo:    scheduleRepo,
		catalogRepo:     catalogRepo,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case получения предлагаемых слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: service=%d, date=%s",
		req.ServiceID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Получаем услугу (её длительность определяет интервал кандидата)
	service, err := uc.getService(ctx, req.ServiceID)
	if err != nil {
		return nil, err
	}

	// 4. Получаем конфигурацию расписания
	cfg, err := uc.loadConfig(ctx)
	if err != nil {
		return nil, err
	}

	// 5. Получаем исключение на дату (если есть)
	exception, err := uc.scheduleRepo.GetException(ctx, req.Date)
	if err != nil && !errors.Is(err, scheduleRepo.ErrExceptionNotFound) {
		uc.logger.Error("GetAvailableSlots: failed to get exception: %v", err)
		return nil, fmt.Errorf("%w: failed to get exception: %v", ErrInternal, err)
	}

	// 6. Вычисляем эффективное расписание дня
	day := cfg.ResolveDay(req.Date, exception)
	if day.Closed {
		uc.logger.Info("GetAvailableSlots: shop is closed on %s", req.Date.Format(domain.DateFormat))
		return &Response{
			Date:      req.Date,
			ServiceID: req.ServiceID,
			Open:      false,
			Slots:     []Slot{},
		}, nil
	}

	// 7. Генерируем кандидатов (пустой список при инвертированных часах - не ошибка)
	candidates := generateCandidateSlots(day, cfg.SlotIntervalMinutes)

	// 8. Получаем активные записи на дату
	appointments, err := uc.appointmentRepo.GetByDate(ctx, req.Date, false)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get appointments: %v", err)
		return nil, fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
	}

	// 9. Разрешаем статусы: конфликты -> обед -> прошедшее время
	resolved := resolveSlotStatuses(
		candidates,
		service.DurationMinutes,
		appointments,
		req.Viewer,
		day,
		req.Date,
		now,
	)

	// 10. Фильтруем past/lunch из предлагаемого списка
	offerable := filterOfferable(resolved)

	slots := make([]Slot, len(offerable))
	for i, s := range offerable {
		slots[i] = Slot{
			StartTime:       s.StartTime,
			DurationMinutes: s.DurationMinutes,
			Status:          s.Status,
		}
	}

	uc.logger.Info("GetAvailableSlots: %d offerable slots for service=%d, date=%s",
		len(slots), req.ServiceID, req.Date.Format(domain.DateFormat))

	return &Response{
		Date:      req.Date,
		ServiceID: req.ServiceID,
		Open:      true,
		Slots:     slots,
	}, nil
}

// getService получает услугу из каталога и проверяет, что она активна
func (uc *UseCase) getService(ctx context.Context, id int64) (*domain.Service, error) {
	service, err := uc.catalogRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			uc.logger.Warn("GetAvailableSlots: service id=%d not found", id)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get service id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	if !service.Active {
		uc.logger.Warn("GetAvailableSlots: service id=%d is not active", id)
		return nil, ErrServiceInactive
	}

	return service, nil
}

func (uc *UseCase) loadConfig(ctx context.Context) (*domain.ScheduleConfig, error) {
	cfg, err := uc.scheduleRepo.GetConfig(ctx)
	if err != nil && !errors.Is(err, scheduleRepo.ErrConfigNotFound) {
		uc.logger.Error("GetAvailableSlots: failed to get schedule config: %v", err)
		return nil, fmt.Errorf("%w: failed to get schedule config: %v", ErrInternal, err)
	}

	// Если конфигурация не создана, используем дефолтные значения
	if cfg == nil {
		cfg = &domain.ScheduleConfig{
			StartHour:           domain.DefaultStartHour,
			EndHour:             domain.DefaultEndHour,
			SlotIntervalMinutes: domain.DefaultSlotIntervalMinutes,
		}
		uc.logger.Info("GetAvailableSlots: using default schedule config")
	}

	return cfg, nil
}
