package create_appointment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SBS-SchedulingService/internal/domain"
	catalogRepo "github.com/m04kA/SBS-SchedulingService/internal/infra/storage/catalog"
	scheduleRepo "github.com/m04kA/SBS-SchedulingService/internal/infra/storage/schedule"
)

// UseCase use case для создания записи клиента
//
// Проверка доступности слота и вставка выполняются в одной сериализуемой
// транзакции: два конкурентных запроса на один слот не могут пройти оба -
// один получит ErrSlotNotAvailable (или serialization failure от Postgres)
type UseCase struct {
	appointmentRepo AppointmentRepository
	scheduleRepo    ScheduleRepository
	catalogRepo     CatalogRepository
	txManager       TransactionManager
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	scheduleRepo ScheduleRepository,
	catalogRepo CatalogRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		scheduleRepo:    scheduleRepo,
		catalogRepo:     catalogRepo,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case создания записи
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateAppointment: service=%d, date=%s, time=%s",
		req.ServiceID, req.Date.Format(domain.DateFormat), req.StartTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateAppointment: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	var created *domain.Appointment

	// 3. Критическая секция: проверка + вставка атомарно
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 3.1. Получаем услугу
		service, err := uc.getService(txCtx, req.ServiceID)
		if err != nil {
			return err
		}

		// 3.2. Вычисляем эффективное расписание дня
		day, cfg, err := uc.resolveDay(txCtx, req.Date)
		if err != nil {
			return err
		}
		if day.Closed {
			uc.logger.Warn("CreateAppointment: shop is closed on %s", req.Date.Format(domain.DateFormat))
			return ErrShopClosed
		}

		// 3.3. Структурная проверка слота: сетка, часы, обед
		startMinutes, err := req.StartTime.Minutes()
		if err != nil {
			return fmt.Errorf("%w: startTime: %v", ErrInvalidInput, err)
		}
		if err := validateSlotPlacement(startMinutes, service.DurationMinutes, cfg.SlotIntervalMinutes, day); err != nil {
			uc.logger.Warn("CreateAppointment: slot placement rejected: %v", err)
			return err
		}

		// 3.4. Запрет записи на прошедшее время
		if isSlotInPast(req.Date, startMinutes, now) {
			uc.logger.Warn("CreateAppointment: slot %s %s is in the past",
				req.Date.Format(domain.DateFormat), req.StartTime)
			return ErrSlotInPast
		}

		// 3.5. Проверка конфликтов с активными записями
		// Интервал каждой существующей записи строится по длительности
		// её собственной услуги
		appointments, err := uc.appointmentRepo.GetByDate(txCtx, req.Date, false)
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to get appointments: %v", err)
			return fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
		}
		if conflict := findConflict(startMinutes, service.DurationMinutes, appointments); conflict != nil {
			uc.logger.Warn("CreateAppointment: slot %s conflicts with appointment id=%d",
				req.StartTime, conflict.ID)
			return ErrSlotNotAvailable
		}

		// 3.6. Создаем запись со снимком названия и цены услуги
		status := domain.StatusPending
		if req.StaffBooking {
			status = domain.StatusConfirmed
		}

		appointment := &domain.Appointment{
			ClientID:        req.ClientID,
			ClientName:      req.ClientName,
			ClientPhone:     req.ClientPhone,
			ServiceID:       service.ID,
			AppointmentDate: req.Date,
			StartTime:       req.StartTime,
			DurationMinutes: service.DurationMinutes,
			Status:          status,
			QueueSequence:   0,
			ServiceName:     service.Name,
			ServicePrice:    service.Price,
			Notes:           req.Notes,
		}

		created, err = uc.appointmentRepo.Create(txCtx, appointment)
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to create appointment: %v", err)
			return fmt.Errorf("%w: failed to create appointment: %v", ErrInternal, err)
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateAppointment: created appointment id=%d, status=%s",
		created.ID, created.Status)

	return &Response{Appointment: created}, nil
}

// findConflict возвращает первую активную запись, пересекающуюся с запрошенным
// интервалом (полуинтервалы, граничные касания пересечением не считаются)
func findConflict(startMinutes, durationMinutes int, appointments []*domain.Appointment) *domain.Appointment {
	slotEnd := startMinutes + durationMinutes

	for _, appointment := range appointments {
		if !appointment.IsActive() {
			continue
		}

		appStart, err := appointment.StartTime.Minutes()
		if err != nil {
			continue
		}
		appEnd := appStart + appointment.DurationMinutes

		if startMinutes < appEnd && slotEnd > appStart {
			return appointment
		}
	}

	return nil
}

// isSlotInPast проверяет, что дата+время слота раньше текущего момента
func isSlotInPast(date time.Time, startMinutes int, now time.Time) bool {
	slotMoment := time.Date(
		date.Year(), date.Month(), date.Day(),
		startMinutes/60, startMinutes%60, 0, 0, now.Location(),
	)
	return slotMoment.Before(now)
}

// getService получает услугу из каталога и проверяет, что она активна
func (uc *UseCase) getService(ctx context.Context, id int64) (*domain.Service, error) {
	service, err := uc.catalogRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			uc.logger.Warn("CreateAppointment: service id=%d not found", id)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("CreateAppointment: failed to get service id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	if !service.Active {
		uc.logger.Warn("CreateAppointment: service id=%d is not active", id)
		return nil, ErrServiceInactive
	}

	return service, nil
}

// resolveDay загружает конфигурацию и исключение, возвращает эффективное
// расписание дня
func (uc *UseCase) resolveDay(ctx context.Context, date time.Time) (domain.DaySchedule, *domain.ScheduleConfig, error) {
	cfg, err := uc.scheduleRepo.GetConfig(ctx)
	if err != nil && !errors.Is(err, scheduleRepo.ErrConfigNotFound) {
		uc.logger.Error("CreateAppointment: failed to get schedule config: %v", err)
		return domain.DaySchedule{}, nil, fmt.Errorf("%w: failed to get schedule config: %v", ErrInternal, err)
	}
	if cfg == nil {
		cfg = &domain.ScheduleConfig{
			StartHour:           domain.DefaultStartHour,
			EndHour:             domain.DefaultEndHour,
			SlotIntervalMinutes: domain.DefaultSlotIntervalMinutes,
		}
	}

	exception, err := uc.scheduleRepo.GetException(ctx, date)
	if err != nil && !errors.Is(err, scheduleRepo.ErrExceptionNotFound) {
		uc.logger.Error("CreateAppointment: failed to get exception: %v", err)
		return domain.DaySchedule{}, nil, fmt.Errorf("%w: failed to get exception: %v", ErrInternal, err)
	}

	return cfg.ResolveDay(date, exception), cfg, nil
}
