package get_available_slots

import (
	"time"

	"github.com/m04kA/SBS-SchedulingService/internal/domain"
	"github.com/m04kA/SBS-SchedulingService/pkg/types"
)

// generateCandidateSlots генерирует упорядоченный список кандидатов на день
// Кандидаты идут с шагом intervalMinutes от startHour*60 (включительно)
// до endHour*60 (не включительно)
//
// Пустой список (не ошибка) возвращается, если:
// - день закрыт (closed-исключение или еженедельный выходной)
// - итоговые часы инвертированы (startHour >= endHour)
// - шаг не положительный
func generateCandidateSlots(day domain.DaySchedule, intervalMinutes int) []domain.Slot {
	if day.Closed {
		return []domain.Slot{}
	}
	if day.StartHour >= day.EndHour || intervalMinutes <= 0 {
		return []domain.Slot{}
	}

	startMinutes := day.StartHour * 60
	endMinutes := day.EndHour * 60

	slots := make([]domain.Slot, 0, (endMinutes-startMinutes)/intervalMinutes)
	for m := startMinutes; m < endMinutes; m += intervalMinutes {
		label, err := types.NewTimeStringFromMinutes(m)
		if err != nil {
			// Часы валидированы выше, сюда попасть нельзя
			break
		}
		slots = append(slots, domain.Slot{
			StartTime:    label,
			StartMinutes: m,
			Status:       domain.SlotAvailable,
		})
	}

	return slots
}

// resolveSlotStatuses вычисляет статус каждого кандидата
//
// Кандидаты, которые при запрошенной длительности заканчиваются позже
// закрытия, отбрасываются и в выдачу не попадают вовсе.
//
// Порядок вычисления фиксирован:
// 1. Конфликты с существующими записями (own/occupied) - интервал каждой
//    записи строится по длительности ЕЁ СОБСТВЕННОЙ услуги
// 2. Обеденное окно для оставшихся available
// 3. Прошедшее время для оставшихся available (только если дата = сегодня)
//
// Тест пересечения полуинтервалов: slotStart < appEnd AND slotEnd > appStart
// Граничные касания пересечением не считаются
func resolveSlotStatuses(
	candidates []domain.Slot,
	requestedDurationMinutes int,
	appointments []*domain.Appointment,
	viewer domain.ViewerIdentity,
	day domain.DaySchedule,
	date time.Time,
	now time.Time,
) []domain.Slot {
	nowMinutes := now.Hour()*60 + now.Minute()
	today := isSameDay(date, now)
	dateInPast := isDateInPast(date, now)

	dayEndMinutes := day.EndHour * 60
	resolved := make([]domain.Slot, 0, len(candidates))

	for _, candidate := range candidates {
		slot := candidate
		slot.DurationMinutes = requestedDurationMinutes
		slotStart := slot.StartMinutes
		slotEnd := slotStart + requestedDurationMinutes

		// Услуга не влезает до закрытия: кандидаты упорядочены,
		// дальше влезать нечему
		if slotEnd > dayEndMinutes {
			break
		}

		// Шаг 1: конфликты с активными записями
		for _, appointment := range appointments {
			if !appointment.IsActive() {
				continue
			}

			appStart, err := appointment.StartTime.Minutes()
			if err != nil {
				// Запись с нечитаемым временем пропускаем
				continue
			}
			appEnd := appStart + appointment.DurationMinutes

			if slotStart < appEnd && slotEnd > appStart {
				if viewer.Matches(appointment) {
					slot.Status = domain.SlotOwn
				} else {
					slot.Status = domain.SlotOccupied
				}
				// own имеет приоритет над occupied: продолжаем искать
				// собственную запись среди оставшихся конфликтов
				if slot.Status == domain.SlotOwn {
					break
				}
			}
		}

		// Шаг 2: обеденное окно (по часовой компоненте слота)
		if slot.Status == domain.SlotAvailable && day.IsLunchHour(slotStart/60) {
			slot.Status = domain.SlotLunch
		}

		// Шаг 3: прошедшее время понижает только available
		if slot.Status == domain.SlotAvailable {
			if dateInPast || (today && slotStart < nowMinutes) {
				slot.Status = domain.SlotPast
			}
		}

		resolved = append(resolved, slot)
	}

	return resolved
}

// filterOfferable убирает из выдачи past и lunch слоты
// occupied/own остаются в списке (показываются недоступными)
func filterOfferable(slots []domain.Slot) []domain.Slot {
	offerable := make([]domain.Slot, 0, len(slots))
	for _, slot := range slots {
		if slot.IsOfferable() {
			offerable = append(offerable, slot)
		}
	}
	return offerable
}

// isSameDay проверяет, что две даты относятся к одному и тому же дню
func isSameDay(date1, date2 time.Time) bool {
	y1, m1, d1 := date1.Date()
	y2, m2, d2 := date2.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// isDateInPast проверяет, что дата в прошлом (раньше сегодняшнего дня)
func isDateInPast(date, now time.Time) bool {
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return dateOnly.Before(nowOnly)
}
