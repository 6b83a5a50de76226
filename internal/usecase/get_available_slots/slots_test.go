package get_available_slots

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SBS-SchedulingService/internal/domain"
	"github.com/m04kA/SBS-SchedulingService/pkg/ptr"
	"github.com/m04kA/SBS-SchedulingService/pkg/types"
)

func workingDay(startHour, endHour int) domain.DaySchedule {
	return domain.DaySchedule{StartHour: startHour, EndHour: endHour}
}

func appointmentAt(start string, durationMinutes int, clientID int64) *domain.Appointment {
	return &domain.Appointment{
		ClientID:        ptr.Ptr(clientID),
		StartTime:       types.TimeString(start),
		DurationMinutes: durationMinutes,
		Status:          domain.StatusConfirmed,
	}
}

func TestGenerateCandidateSlotsCount(t *testing.T) {
	// [9,19) с шагом 30 минут = ровно 20 слотов, 09:00 ... 18:30
	slots := generateCandidateSlots(workingDay(9, 19), 30)

	require.Len(t, slots, 20)
	assert.Equal(t, types.TimeString("09:00"), slots[0].StartTime)
	assert.Equal(t, types.TimeString("18:30"), slots[19].StartTime)

	// Хронологический порядок
	for i := 1; i < len(slots); i++ {
		assert.True(t, slots[i-1].StartMinutes < slots[i].StartMinutes)
	}
}

func TestGenerateCandidateSlotsDeterministic(t *testing.T) {
	first := generateCandidateSlots(workingDay(9, 19), 30)
	second := generateCandidateSlots(workingDay(9, 19), 30)
	assert.Equal(t, first, second)
}

func TestGenerateCandidateSlotsExceptionWindow(t *testing.T) {
	// Исключение {13,17}: слоты строго внутри [13:00, 17:00)
	slots := generateCandidateSlots(workingDay(13, 17), 30)

	require.NotEmpty(t, slots)
	assert.Equal(t, types.TimeString("13:00"), slots[0].StartTime)
	assert.Equal(t, types.TimeString("16:30"), slots[len(slots)-1].StartTime)
}

func TestGenerateCandidateSlotsClosedDay(t *testing.T) {
	slots := generateCandidateSlots(domain.DaySchedule{Closed: true, StartHour: 9, EndHour: 19}, 30)
	assert.Empty(t, slots)
}

func TestGenerateCandidateSlotsInvertedHours(t *testing.T) {
	// Инвертированные часы деградируют в пустой список, не в ошибку
	assert.Empty(t, generateCandidateSlots(workingDay(19, 9), 30))
	assert.Empty(t, generateCandidateSlots(workingDay(12, 12), 30))
}

func TestGenerateCandidateSlotsNonPositiveInterval(t *testing.T) {
	assert.Empty(t, generateCandidateSlots(workingDay(9, 19), 0))
	assert.Empty(t, generateCandidateSlots(workingDay(9, 19), -15))
}

func TestResolveOverlapUsesOwnServiceDuration(t *testing.T) {
	// Запись 10:00 на 45 минут блокирует [10:00, 10:45)
	existing := []*domain.Appointment{appointmentAt("10:00", 45, 1)}
	day := workingDay(9, 19)
	tomorrow := time.Date(2025, 11, 13, 0, 0, 0, 0, time.Local)
	now := time.Date(2025, 11, 12, 8, 0, 0, 0, time.Local)

	candidates := generateCandidateSlots(day, 15)
	resolved := resolveSlotStatuses(candidates, 30, existing, domain.ViewerIdentity{}, day, tomorrow, now)

	byTime := make(map[types.TimeString]domain.SlotStatus)
	for _, s := range resolved {
		byTime[s.StartTime] = s.Status
	}

	// 10:30 + 30 мин пересекает [10:00, 10:45): 10:30 < 10:45 и 11:00 > 10:00
	assert.Equal(t, domain.SlotOccupied, byTime["10:30"])
	// 10:45 касается границы: пересечения нет
	assert.Equal(t, domain.SlotAvailable, byTime["10:45"])
	// Слот до начала записи, заканчивающийся ровно в 10:00, свободен
	assert.Equal(t, domain.SlotAvailable, byTime["09:30"])
	// Слот, начинающийся до записи, но залезающий в неё
	assert.Equal(t, domain.SlotOccupied, byTime["09:45"])
}

func TestResolveOwnershipDistinction(t *testing.T) {
	viewer := domain.ViewerIdentity{ClientID: ptr.Ptr(int64(1))}
	day := workingDay(9, 19)
	tomorrow := time.Date(2025, 11, 13, 0, 0, 0, 0, time.Local)
	now := time.Date(2025, 11, 12, 8, 0, 0, 0, time.Local)

	existing := []*domain.Appointment{
		appointmentAt("10:00", 30, 1), // запись смотрящего
		appointmentAt("11:00", 30, 2), // чужая запись
	}

	candidates := generateCandidateSlots(day, 30)
	resolved := resolveSlotStatuses(candidates, 30, existing, viewer, day, tomorrow, now)

	byTime := make(map[types.TimeString]domain.SlotStatus)
	for _, s := range resolved {
		byTime[s.StartTime] = s.Status
	}

	assert.Equal(t, domain.SlotOwn, byTime["10:00"])
	assert.Equal(t, domain.SlotOccupied, byTime["11:00"])
}

func TestResolveOwnershipByPhone(t *testing.T) {
	day := workingDay(9, 19)
	tomorrow := time.Date(2025, 11, 13, 0, 0, 0, 0, time.Local)
	now := time.Date(2025, 11, 12, 8, 0, 0, 0, time.Local)

	walkIn := &domain.Appointment{
		ClientPhone:     ptr.Ptr("+79001112233"),
		StartTime:       types.TimeString("12:00"),
		DurationMinutes: 30,
		Status:          domain.StatusPending,
	}

	viewer := domain.ViewerIdentity{Phone: ptr.Ptr("+79001112233")}
	resolved := resolveSlotStatuses(
		generateCandidateSlots(day, 30), 30,
		[]*domain.Appointment{walkIn}, viewer, day, tomorrow, now,
	)

	for _, s := range resolved {
		if s.StartTime == "12:00" {
			assert.Equal(t, domain.SlotOwn, s.Status)
		}
	}
}

func TestResolveCancelledAppointmentsDoNotBlock(t *testing.T) {
	day := workingDay(9, 19)
	tomorrow := time.Date(2025, 11, 13, 0, 0, 0, 0, time.Local)
	now := time.Date(2025, 11, 12, 8, 0, 0, 0, time.Local)

	cancelled := appointmentAt("10:00", 60, 1)
	cancelled.Status = domain.StatusCancelled

	resolved := resolveSlotStatuses(
		generateCandidateSlots(day, 30), 30,
		[]*domain.Appointment{cancelled}, domain.ViewerIdentity{}, day, tomorrow, now,
	)

	for _, s := range resolved {
		assert.Equal(t, domain.SlotAvailable, s.Status, "slot %s", s.StartTime)
	}
}

func TestResolvePastDowngradeAndFiltering(t *testing.T) {
	// now = 14:05 того же дня: 14:00 уходит в past, 14:30 остается
	day := workingDay(9, 19)
	date := time.Date(2025, 11, 12, 0, 0, 0, 0, time.Local)
	now := time.Date(2025, 11, 12, 14, 5, 0, 0, time.Local)

	resolved := resolveSlotStatuses(
		generateCandidateSlots(day, 30), 30,
		nil, domain.ViewerIdentity{}, day, date, now,
	)

	byTime := make(map[types.TimeString]domain.SlotStatus)
	for _, s := range resolved {
		byTime[s.StartTime] = s.Status
	}
	assert.Equal(t, domain.SlotPast, byTime["14:00"])
	assert.Equal(t, domain.SlotAvailable, byTime["14:30"])

	offerable := filterOfferable(resolved)
	for _, s := range offerable {
		assert.NotEqual(t, domain.SlotPast, s.Status)
		assert.True(t, s.StartTime.IsAfter("14:00"))
	}
}

func TestResolveConflictBeforePastDowngrade(t *testing.T) {
	// Конфликт вычисляется до понижения в past: занятый утренний слот
	// остается occupied, а не past
	day := workingDay(9, 19)
	date := time.Date(2025, 11, 12, 0, 0, 0, 0, time.Local)
	now := time.Date(2025, 11, 12, 14, 5, 0, 0, time.Local)

	existing := []*domain.Appointment{appointmentAt("10:00", 30, 1)}
	resolved := resolveSlotStatuses(
		generateCandidateSlots(day, 30), 30,
		existing, domain.ViewerIdentity{}, day, date, now,
	)

	for _, s := range resolved {
		if s.StartTime == "10:00" {
			assert.Equal(t, domain.SlotOccupied, s.Status)
		}
	}
}

func TestResolveLunchWindowFiltered(t *testing.T) {
	day := domain.DaySchedule{
		StartHour:      9,
		EndHour:        19,
		LunchStartHour: ptr.Ptr(13),
		LunchEndHour:   ptr.Ptr(14),
	}
	tomorrow := time.Date(2025, 11, 13, 0, 0, 0, 0, time.Local)
	now := time.Date(2025, 11, 12, 8, 0, 0, 0, time.Local)

	resolved := resolveSlotStatuses(
		generateCandidateSlots(day, 30), 30,
		nil, domain.ViewerIdentity{}, day, tomorrow, now,
	)

	byTime := make(map[types.TimeString]domain.SlotStatus)
	for _, s := range resolved {
		byTime[s.StartTime] = s.Status
	}
	assert.Equal(t, domain.SlotLunch, byTime["13:00"])
	assert.Equal(t, domain.SlotLunch, byTime["13:30"])
	assert.Equal(t, domain.SlotAvailable, byTime["12:30"])
	assert.Equal(t, domain.SlotAvailable, byTime["14:00"])

	for _, s := range filterOfferable(resolved) {
		assert.NotEqual(t, domain.SlotLunch, s.Status)
	}
}

func TestResolveServiceDoesNotFitBeforeClosing(t *testing.T) {
	// Услуга 45 минут при сетке 30: 18:30 закончилась бы в 19:15, после
	// закрытия. Такой слот не предлагается вовсе, последний выданный - 18:00
	day := workingDay(9, 19)
	tomorrow := time.Date(2025, 11, 13, 0, 0, 0, 0, time.Local)
	now := time.Date(2025, 11, 12, 8, 0, 0, 0, time.Local)

	resolved := resolveSlotStatuses(
		generateCandidateSlots(day, 30), 45,
		nil, domain.ViewerIdentity{}, day, tomorrow, now,
	)

	require.NotEmpty(t, resolved)
	assert.Equal(t, types.TimeString("18:00"), resolved[len(resolved)-1].StartTime)

	// Каждый выданный слот целиком помещается в рабочие часы
	for _, s := range resolved {
		assert.LessOrEqual(t, s.StartMinutes+45, day.EndHour*60, "slot %s", s.StartTime)
	}
}

func TestResolvePastDateAllPast(t *testing.T) {
	day := workingDay(9, 19)
	yesterday := time.Date(2025, 11, 11, 0, 0, 0, 0, time.Local)
	now := time.Date(2025, 11, 12, 8, 0, 0, 0, time.Local)

	resolved := resolveSlotStatuses(
		generateCandidateSlots(day, 30), 30,
		nil, domain.ViewerIdentity{}, day, yesterday, now,
	)

	assert.Empty(t, filterOfferable(resolved))
}

func TestResolveSameTimeAnomalyBothBlock(t *testing.T) {
	// Две не отмененные записи на одно время - аномалия данных,
	// но обе должны блокировать третий запрос
	day := workingDay(9, 19)
	tomorrow := time.Date(2025, 11, 13, 0, 0, 0, 0, time.Local)
	now := time.Date(2025, 11, 12, 8, 0, 0, 0, time.Local)

	existing := []*domain.Appointment{
		appointmentAt("10:00", 30, 1),
		appointmentAt("10:00", 60, 2),
	}

	resolved := resolveSlotStatuses(
		generateCandidateSlots(day, 30), 30,
		existing, domain.ViewerIdentity{ClientID: ptr.Ptr(int64(3))}, day, tomorrow, now,
	)

	byTime := make(map[types.TimeString]domain.SlotStatus)
	for _, s := range resolved {
		byTime[s.StartTime] = s.Status
	}
	assert.Equal(t, domain.SlotOccupied, byTime["10:00"])
	// Вторая запись длиннее, блокирует и 10:30
	assert.Equal(t, domain.SlotOccupied, byTime["10:30"])
	assert.Equal(t, domain.SlotAvailable, byTime["11:00"])
}
