package schedule

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SBS-SchedulingService/internal/domain"
	scheduleRepo "github.com/m04kA/SBS-SchedulingService/internal/infra/storage/schedule"
	"github.com/m04kA/SBS-SchedulingService/internal/service/schedule/models"
)

// Service сервис конфигурации расписания и статуса "открыто сейчас"
type Service struct {
	scheduleRepo ScheduleRepository
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса расписания
func NewService(scheduleRepo ScheduleRepository, logger Logger) *Service {
	return &Service{
		scheduleRepo: scheduleRepo,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// GetConfig получает конфигурацию расписания с предстоящими исключениями
// Публичный метод - клиенты видят рабочие часы и выходные
func (s *Service) GetConfig(ctx context.Context) (*models.ConfigResponse, error) {
	s.logger.Info("GetConfig: fetching schedule config")

	cfg, err := s.loadConfig(ctx)
	if err != nil {
		return nil, err
	}

	exceptions, err := s.scheduleRepo.ListExceptions(ctx, s.timeProvider.Now())
	if err != nil {
		s.logger.Error("GetConfig: failed to list exceptions: %v", err)
		return nil, fmt.Errorf("%w: GetConfig - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainConfig(cfg, exceptions), nil
}

// UpdateConfig обновляет конфигурацию расписания
// Поддерживает частичное обновление - обновляются только указанные поля
func (s *Service) UpdateConfig(ctx context.Context, req *models.UpdateConfigRequest) (*models.ConfigResponse, error) {
	s.logger.Info("UpdateConfig: updating schedule config")

	// 1. Получаем существующую конфигурацию (или дефолты)
	cfg, err := s.loadConfig(ctx)
	if err != nil {
		return nil, err
	}

	// 2. Применяем обновления и валидируем результат
	req.ApplyToConfig(cfg)
	if err := s.validateConfig(cfg); err != nil {
		s.logger.Warn("UpdateConfig: validation failed: %v", err)
		return nil, err
	}

	// 3. Сохраняем (upsert единственной строки)
	updated, err := s.scheduleRepo.UpdateConfig(ctx, cfg)
	if err != nil {
		s.logger.Error("UpdateConfig: repository error: %v", err)
		return nil, fmt.Errorf("%w: UpdateConfig - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateConfig: config updated, hours=[%d,%d), interval=%d",
		updated.StartHour, updated.EndHour, updated.SlotIntervalMinutes)

	return models.FromDomainConfig(updated, nil), nil
}

// UpsertException создает или обновляет исключение на дату
func (s *Service) UpsertException(ctx context.Context, req *models.UpsertExceptionRequest) (*models.ExceptionResponse, error) {
	s.logger.Info("UpsertException: date=%s, closed=%v", req.Date.Format(domain.DateFormat), req.Closed)

	if err := s.validateException(req); err != nil {
		s.logger.Warn("UpsertException: validation failed: %v", err)
		return nil, err
	}

	exc, err := s.scheduleRepo.UpsertException(ctx, req.ToDomainException())
	if err != nil {
		s.logger.Error("UpsertException: repository error: %v", err)
		return nil, fmt.Errorf("%w: UpsertException - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpsertException: exception saved for %s", exc.Date.Format(domain.DateFormat))
	return models.FromDomainException(exc), nil
}

// DeleteException удаляет исключение, возвращая дату к расписанию по умолчанию
func (s *Service) DeleteException(ctx context.Context, date time.Time) error {
	s.logger.Info("DeleteException: date=%s", date.Format(domain.DateFormat))

	if err := s.scheduleRepo.DeleteException(ctx, date); err != nil {
		if errors.Is(err, scheduleRepo.ErrExceptionNotFound) {
			s.logger.Warn("DeleteException: no exception for %s", date.Format(domain.DateFormat))
			return ErrExceptionNotFound
		}
		s.logger.Error("DeleteException: repository error: %v", err)
		return fmt.Errorf("%w: DeleteException - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("DeleteException: exception removed for %s", date.Format(domain.DateFormat))
	return nil
}

// GetShopStatus возвращает статус "открыто сейчас"
// Сравнение почасовое: минуты границу не двигают (в 18:59 еще открыто
// при end_hour=19, в 19:00 уже закрыто)
func (s *Service) GetShopStatus(ctx context.Context) (*models.ShopStatusResponse, error) {
	now := s.timeProvider.Now()
	s.logger.Info("GetShopStatus: resolving status for %s", now.Format(time.RFC3339))

	cfg, err := s.loadConfig(ctx)
	if err != nil {
		return nil, err
	}

	exc, err := s.scheduleRepo.GetException(ctx, now)
	if err != nil && !errors.Is(err, scheduleRepo.ErrExceptionNotFound) {
		s.logger.Error("GetShopStatus: failed to get exception: %v", err)
		return nil, fmt.Errorf("%w: GetShopStatus - repository error: %v", ErrInternal, err)
	}

	day := cfg.ResolveDay(now, exc)

	return &models.ShopStatusResponse{
		Open:      cfg.IsOpenAt(now, exc),
		Date:      now.Format(domain.DateFormat),
		StartHour: day.StartHour,
		EndHour:   day.EndHour,
		Closed:    day.Closed,
	}, nil
}

// Вспомогательные методы

// loadConfig получает конфигурацию, подставляя дефолты если строка не создана
func (s *Service) loadConfig(ctx context.Context) (*domain.ScheduleConfig, error) {
	cfg, err := s.scheduleRepo.GetConfig(ctx)
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrConfigNotFound) {
			s.logger.Info("loadConfig: no config row, using defaults")
			return &domain.ScheduleConfig{
				StartHour:           domain.DefaultStartHour,
				EndHour:             domain.DefaultEndHour,
				SlotIntervalMinutes: domain.DefaultSlotIntervalMinutes,
			}, nil
		}
		s.logger.Error("loadConfig: repository error: %v", err)
		return nil, fmt.Errorf("%w: loadConfig - repository error: %v", ErrInternal, err)
	}
	return cfg, nil
}

// validateConfig валидирует параметры конфигурации расписания
func (s *Service) validateConfig(cfg *domain.ScheduleConfig) error {
	if cfg.StartHour < domain.MinWorkingHour || cfg.StartHour >= domain.MaxWorkingHour {
		return fmt.Errorf("%w: startHour must be between %d and %d",
			ErrInvalidInput, domain.MinWorkingHour, domain.MaxWorkingHour-1)
	}
	if cfg.EndHour <= cfg.StartHour || cfg.EndHour > domain.MaxWorkingHour {
		return fmt.Errorf("%w: endHour must be greater than startHour and at most %d",
			ErrInvalidInput, domain.MaxWorkingHour)
	}
	if cfg.SlotIntervalMinutes < domain.MinSlotIntervalMinutes || cfg.SlotIntervalMinutes > domain.MaxSlotIntervalMinutes {
		return fmt.Errorf("%w: slotIntervalMinutes must be between %d and %d",
			ErrInvalidInput, domain.MinSlotIntervalMinutes, domain.MaxSlotIntervalMinutes)
	}
	if cfg.ClosedWeekday != nil && (*cfg.ClosedWeekday < 0 || *cfg.ClosedWeekday > 6) {
		return fmt.Errorf("%w: closedWeekday must be between 0 and 6", ErrInvalidInput)
	}
	return nil
}

// validateException валидирует параметры исключения на дату
func (s *Service) validateException(req *models.UpsertExceptionRequest) error {
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.StartHour != nil && (*req.StartHour < domain.MinWorkingHour || *req.StartHour >= domain.MaxWorkingHour) {
		return fmt.Errorf("%w: startHour must be between %d and %d",
			ErrInvalidInput, domain.MinWorkingHour, domain.MaxWorkingHour-1)
	}
	if req.EndHour != nil && (*req.EndHour <= domain.MinWorkingHour || *req.EndHour > domain.MaxWorkingHour) {
		return fmt.Errorf("%w: endHour must be between %d and %d",
			ErrInvalidInput, domain.MinWorkingHour+1, domain.MaxWorkingHour)
	}
	if req.StartHour != nil && req.EndHour != nil && *req.StartHour >= *req.EndHour {
		return fmt.Errorf("%w: startHour must be before endHour", ErrInvalidInput)
	}

	// Обеденное окно задается только парой
	if (req.LunchStartHour == nil) != (req.LunchEndHour == nil) {
		return fmt.Errorf("%w: lunchStartHour and lunchEndHour must be set together", ErrInvalidInput)
	}
	if req.LunchStartHour != nil && *req.LunchStartHour >= *req.LunchEndHour {
		return fmt.Errorf("%w: lunchStartHour must be before lunchEndHour", ErrInvalidInput)
	}

	return nil
}
