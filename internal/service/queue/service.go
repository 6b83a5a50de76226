package queue

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SBS-SchedulingService/internal/domain"
	appointmentRepo "github.com/m04kA/SBS-SchedulingService/internal/infra/storage/appointment"
	"github.com/m04kA/SBS-SchedulingService/internal/integrations/notifyservice"
	"github.com/m04kA/SBS-SchedulingService/internal/service/queue/models"
)

// Service сервис живой очереди на день
//
// Одно кресло: одновременно обслуживается максимум одна запись.
// Порядок вызова: queue_sequence, затем плановое start_time
type Service struct {
	appointmentRepo AppointmentRepository
	notifyClient    NotifyServiceClient
	txManager       TransactionManager
	timeProvider    TimeProvider
	logger          Logger
}

// NewService создает новый экземпляр сервиса очереди
func NewService(
	appointmentRepo AppointmentRepository,
	notifyClient NotifyServiceClient,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		appointmentRepo: appointmentRepo,
		notifyClient:    notifyClient,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// GetQueue возвращает живую очередь на сегодня
// В очереди только pending/confirmed; обслуживаемая запись идет отдельным полем
func (s *Service) GetQueue(ctx context.Context) (*models.QueueResponse, error) {
	today := s.timeProvider.Now()
	s.logger.Info("GetQueue: fetching queue for %s", today.Format(domain.DateFormat))

	appointments, err := s.appointmentRepo.GetByDate(ctx, today, false)
	if err != nil {
		s.logger.Error("GetQueue: repository error: %v", err)
		return nil, fmt.Errorf("%w: GetQueue - repository error: %v", ErrInternal, err)
	}

	queued := make([]*domain.Appointment, 0, len(appointments))
	var serving *domain.Appointment
	for _, a := range appointments {
		switch {
		case a.Status == domain.StatusInProgress:
			serving = a
		case a.IsQueued():
			queued = append(queued, a)
		}
	}

	s.logger.Info("GetQueue: %d queued, serving=%v", len(queued), serving != nil)

	return &models.QueueResponse{
		Date:             today.Format(domain.DateFormat),
		CurrentlyServing: models.FromDomainAppointment(serving),
		Queue:            models.ToQueueEntries(queued),
	}, nil
}

// CallNext вызывает следующего клиента из очереди
//
// Пустая очередь - не ошибка: возвращается nil без изменений состояния.
// Если кресло занято (есть in_progress запись), возвращается ErrChairBusy.
// Выбор и смена статуса выполняются в сериализуемой транзакции: два
// конкурентных вызова не могут позвать одного клиента дважды
func (s *Service) CallNext(ctx context.Context) (*models.AppointmentResponse, error) {
	today := s.timeProvider.Now()
	s.logger.Info("CallNext: calling next client for %s", today.Format(domain.DateFormat))

	var next *domain.Appointment

	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 1. Кресло должно быть свободно
		serving, err := s.appointmentRepo.GetInProgress(txCtx)
		if err != nil && !errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Error("CallNext: failed to check in-progress appointment: %v", err)
			return fmt.Errorf("%w: CallNext - repository error: %v", ErrInternal, err)
		}
		if serving != nil {
			s.logger.Warn("CallNext: chair is busy with appointment id=%d", serving.ID)
			return ErrChairBusy
		}

		// 2. Берем первую запись очереди (порядок уже в запросе)
		appointments, err := s.appointmentRepo.GetByDate(txCtx, today, false)
		if err != nil {
			s.logger.Error("CallNext: repository error: %v", err)
			return fmt.Errorf("%w: CallNext - repository error: %v", ErrInternal, err)
		}
		for _, a := range appointments {
			if a.IsQueued() {
				next = a
				break
			}
		}
		if next == nil {
			s.logger.Info("CallNext: queue is empty, nothing to do")
			return nil
		}

		// 3. Переводим в in_progress
		if err := s.appointmentRepo.UpdateStatus(txCtx, next.ID, domain.StatusInProgress); err != nil {
			s.logger.Error("CallNext: failed to update status for id=%d: %v", next.ID, err)
			return fmt.Errorf("%w: CallNext - update status: %v", ErrInternal, err)
		}
		next.Status = domain.StatusInProgress

		return nil
	})

	if err != nil {
		return nil, err
	}
	if next == nil {
		return nil, nil
	}

	// Уведомление - side-channel: статус уже сменился, ошибку не поднимаем
	notifyErr := s.notifyClient.NotifyChairFreeWithGracefulDegradation(ctx, &notifyservice.ChairFreeNotification{
		AppointmentID: next.ID,
		ClientID:      next.ClientID,
		ClientPhone:   next.ClientPhone,
		ClientName:    next.ClientName,
		StartTime:     next.StartTime.String(),
	})
	if notifyErr != nil && !errors.Is(notifyErr, notifyservice.ErrServiceDegraded) {
		s.logger.Error("CallNext: unexpected notify error for id=%d: %v", next.ID, notifyErr)
	}

	s.logger.Info("CallNext: appointment id=%d is now in progress", next.ID)
	return models.FromDomainAppointment(next), nil
}

// Skip отодвигает запись в конец очереди
// Плановое start_time не меняется: skip влияет только на порядок вызова
func (s *Service) Skip(ctx context.Context, id int64) error {
	s.logger.Info("Skip: moving appointment id=%d to the back of the queue", id)

	return s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		appointment, err := s.getAppointment(txCtx, id)
		if err != nil {
			return err
		}

		if !appointment.IsQueued() {
			s.logger.Warn("Skip: appointment id=%d is not in queue, status=%s", id, appointment.Status)
			return ErrNotInQueue
		}

		max, err := s.appointmentRepo.MaxQueueSequence(txCtx, appointment.AppointmentDate)
		if err != nil {
			s.logger.Error("Skip: failed to get max queue sequence: %v", err)
			return fmt.Errorf("%w: Skip - repository error: %v", ErrInternal, err)
		}

		if err := s.appointmentRepo.UpdateQueueSequence(txCtx, id, max+1); err != nil {
			s.logger.Error("Skip: failed to update queue sequence for id=%d: %v", id, err)
			return fmt.Errorf("%w: Skip - update queue sequence: %v", ErrInternal, err)
		}

		s.logger.Info("Skip: appointment id=%d moved to sequence %d", id, max+1)
		return nil
	})
}

// Complete завершает обслуживание
// Итоговая цена может отличаться от цены на момент записи; по умолчанию
// фиксируется снимок цены услуги
func (s *Service) Complete(ctx context.Context, id int64, req *models.CompleteAppointmentRequest) error {
	s.logger.Info("Complete: completing appointment id=%d", id)

	if req.FinalPrice != nil && *req.FinalPrice < 0 {
		return fmt.Errorf("%w: finalPrice must not be negative", ErrInvalidInput)
	}

	appointment, err := s.getAppointment(ctx, id)
	if err != nil {
		return err
	}

	if !domain.CanTransition(appointment.Status, domain.StatusCompleted) {
		s.logger.Warn("Complete: appointment id=%d cannot be completed, status=%s", id, appointment.Status)
		return ErrInvalidStatus
	}

	finalPrice := appointment.ServicePrice
	if req.FinalPrice != nil {
		finalPrice = *req.FinalPrice
	}

	if err := s.appointmentRepo.Complete(ctx, id, finalPrice); err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			return ErrAppointmentNotFound
		}
		s.logger.Error("Complete: repository error for id=%d: %v", id, err)
		return fmt.Errorf("%w: Complete - repository error: %v", ErrInternal, err)
	}

	// Кресло освободилось: предупреждаем следующего в очереди
	s.notifyNextInQueue(ctx, appointment.AppointmentDate)

	s.logger.Info("Complete: appointment id=%d completed, finalPrice=%.2f", id, finalPrice)
	return nil
}

// notifyNextInQueue шлет уведомление о свободном кресле первому в очереди
// Side-channel: потеря уведомления допустима, ошибка не поднимается
func (s *Service) notifyNextInQueue(ctx context.Context, date time.Time) {
	appointments, err := s.appointmentRepo.GetByDate(ctx, date, false)
	if err != nil {
		s.logger.Error("notifyNextInQueue: repository error: %v", err)
		return
	}

	for _, a := range appointments {
		if !a.IsQueued() {
			continue
		}
		notifyErr := s.notifyClient.NotifyChairFreeWithGracefulDegradation(ctx, &notifyservice.ChairFreeNotification{
			AppointmentID: a.ID,
			ClientID:      a.ClientID,
			ClientPhone:   a.ClientPhone,
			ClientName:    a.ClientName,
			StartTime:     a.StartTime.String(),
		})
		if notifyErr != nil && !errors.Is(notifyErr, notifyservice.ErrServiceDegraded) {
			s.logger.Error("notifyNextInQueue: unexpected notify error for id=%d: %v", a.ID, notifyErr)
		}
		return
	}
}

// Cancel отменяет запись с указанием причины
func (s *Service) Cancel(ctx context.Context, id int64, req *models.CancelAppointmentRequest) error {
	s.logger.Info("Cancel: cancelling appointment id=%d", id)

	reason := strings.TrimSpace(req.CancellationReason)
	if len(reason) > domain.MaxCancelReasonLength {
		return fmt.Errorf("%w: cancellationReason exceeds %d characters", ErrInvalidInput, domain.MaxCancelReasonLength)
	}

	appointment, err := s.getAppointment(ctx, id)
	if err != nil {
		return err
	}

	if !appointment.CanBeCancelled() {
		s.logger.Warn("Cancel: appointment id=%d cannot be cancelled, status=%s", id, appointment.Status)
		return ErrCannotCancel
	}

	if err := s.appointmentRepo.Cancel(ctx, id, reason); err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			return ErrAppointmentNotFound
		}
		s.logger.Error("Cancel: repository error for id=%d: %v", id, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Cancel: appointment id=%d cancelled", id)
	return nil
}

// NoShow помечает неявку клиента
// Запись отменяется с причиной no_show, отчет уходит в NotifyService
// для понижения уровня лояльности (side-channel, потеря отчета допустима)
func (s *Service) NoShow(ctx context.Context, id int64) error {
	s.logger.Info("NoShow: marking appointment id=%d as no-show", id)

	appointment, err := s.getAppointment(ctx, id)
	if err != nil {
		return err
	}

	if !appointment.IsQueued() {
		s.logger.Warn("NoShow: appointment id=%d is not in queue, status=%s", id, appointment.Status)
		return ErrNotInQueue
	}

	if err := s.appointmentRepo.Cancel(ctx, id, domain.CancelReasonNoShow); err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			return ErrAppointmentNotFound
		}
		s.logger.Error("NoShow: repository error for id=%d: %v", id, err)
		return fmt.Errorf("%w: NoShow - repository error: %v", ErrInternal, err)
	}

	reportErr := s.notifyClient.ReportNoShowWithGracefulDegradation(ctx, &notifyservice.NoShowReport{
		AppointmentID: appointment.ID,
		ClientID:      appointment.ClientID,
		ClientPhone:   appointment.ClientPhone,
		Date:          appointment.AppointmentDate.Format(domain.DateFormat),
	})
	if reportErr != nil && !errors.Is(reportErr, notifyservice.ErrServiceDegraded) {
		s.logger.Error("NoShow: unexpected notify error for id=%d: %v", id, reportErr)
	}

	s.logger.Info("NoShow: appointment id=%d marked as no-show", id)
	return nil
}

// GetAppointment получает запись по ID
func (s *Service) GetAppointment(ctx context.Context, id int64) (*models.AppointmentResponse, error) {
	appointment, err := s.getAppointment(ctx, id)
	if err != nil {
		return nil, err
	}
	return models.FromDomainAppointment(appointment), nil
}

// getAppointment получает domain запись с маппингом ошибок репозитория
func (s *Service) getAppointment(ctx context.Context, id int64) (*domain.Appointment, error) {
	appointment, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("getAppointment: appointment id=%d not found", id)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("getAppointment: repository error for id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: getAppointment - repository error: %v", ErrInternal, err)
	}
	return appointment, nil
}
