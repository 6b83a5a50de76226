package create_appointment

import (
	"fmt"
	"strings"

	"github.com/m04kA/SBS-SchedulingService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if strings.TrimSpace(req.ClientName) == "" {
		return fmt.Errorf("%w: clientName is required", ErrInvalidInput)
	}

	if len(req.ClientName) > domain.MaxClientNameLength {
		return fmt.Errorf("%w: clientName exceeds %d characters", ErrInvalidInput, domain.MaxClientNameLength)
	}

	if req.ClientID != nil && *req.ClientID <= 0 {
		return fmt.Errorf("%w: clientID must be positive", ErrInvalidInput)
	}

	if req.ServiceID <= 0 {
		return fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: startTime: %v", ErrInvalidInput, err)
	}

	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes exceed %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	return nil
}

// validateSlotPlacement проверяет структурную валидность слота относительно
// эффективного расписания дня: попадание в сетку, рабочие часы и обеденное окно
//
// Конфликты с другими записями здесь не проверяются - это отдельный шаг
// внутри транзакции
func validateSlotPlacement(startMinutes, durationMinutes, intervalMinutes int, day domain.DaySchedule) error {
	dayStart := day.StartHour * 60
	dayEnd := day.EndHour * 60

	if startMinutes < dayStart || startMinutes >= dayEnd {
		return fmt.Errorf("%w: time is outside working hours", ErrInvalidTimeSlot)
	}

	if intervalMinutes <= 0 || (startMinutes-dayStart)%intervalMinutes != 0 {
		return fmt.Errorf("%w: time is not aligned to the slot grid", ErrInvalidTimeSlot)
	}

	if day.IsLunchHour(startMinutes / 60) {
		return fmt.Errorf("%w: time falls into the lunch break", ErrInvalidTimeSlot)
	}

	// Услуга должна закончиться до закрытия
	if startMinutes+durationMinutes > dayEnd {
		return fmt.Errorf("%w: service does not fit before closing time", ErrInvalidTimeSlot)
	}

	return nil
}
