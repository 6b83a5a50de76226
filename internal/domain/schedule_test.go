package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SBS-SchedulingService/pkg/ptr"
)

func defaultConfig() *ScheduleConfig {
	return &ScheduleConfig{
		ID:                  1,
		StartHour:           9,
		EndHour:             19,
		SlotIntervalMinutes: 30,
	}
}

func TestResolveDayDefaults(t *testing.T) {
	cfg := defaultConfig()
	date := time.Date(2025, 11, 12, 0, 0, 0, 0, time.Local) // Wednesday

	day := cfg.ResolveDay(date, nil)

	assert.False(t, day.Closed)
	assert.Equal(t, 9, day.StartHour)
	assert.Equal(t, 19, day.EndHour)
	assert.False(t, day.HasLunch())
}

func TestResolveDayExceptionOverridesHours(t *testing.T) {
	cfg := defaultConfig()
	date := time.Date(2025, 11, 12, 0, 0, 0, 0, time.Local)

	exc := &ScheduleException{
		Date:      date,
		StartHour: ptr.Ptr(13),
		EndHour:   ptr.Ptr(17),
	}

	day := cfg.ResolveDay(date, exc)

	assert.False(t, day.Closed)
	assert.Equal(t, 13, day.StartHour)
	assert.Equal(t, 17, day.EndHour)
}

func TestResolveDayPartialException(t *testing.T) {
	cfg := defaultConfig()
	date := time.Date(2025, 11, 12, 0, 0, 0, 0, time.Local)

	// Только конец дня переопределен, начало берется из дефолта
	exc := &ScheduleException{Date: date, EndHour: ptr.Ptr(15)}
	day := cfg.ResolveDay(date, exc)

	assert.Equal(t, 9, day.StartHour)
	assert.Equal(t, 15, day.EndHour)
}

func TestResolveDayClosedExceptionWins(t *testing.T) {
	cfg := defaultConfig()
	date := time.Date(2025, 11, 12, 0, 0, 0, 0, time.Local)

	// closed подавляет день даже при заданных часах
	exc := &ScheduleException{
		Date:      date,
		StartHour: ptr.Ptr(10),
		EndHour:   ptr.Ptr(18),
		Closed:    true,
	}

	day := cfg.ResolveDay(date, exc)
	assert.True(t, day.Closed)
}

func TestResolveDayWeeklyClosedDay(t *testing.T) {
	cfg := defaultConfig()
	cfg.ClosedWeekday = ptr.Ptr(int(time.Monday))

	monday := time.Date(2025, 11, 10, 0, 0, 0, 0, time.Local)
	tuesday := time.Date(2025, 11, 11, 0, 0, 0, 0, time.Local)

	assert.True(t, cfg.ResolveDay(monday, nil).Closed)
	assert.False(t, cfg.ResolveDay(tuesday, nil).Closed)

	// Исключение с часами открывает еженедельный выходной
	exc := &ScheduleException{Date: monday, StartHour: ptr.Ptr(11), EndHour: ptr.Ptr(15)}
	day := cfg.ResolveDay(monday, exc)
	assert.False(t, day.Closed)
	assert.Equal(t, 11, day.StartHour)
}

func TestResolveDayLunchWindow(t *testing.T) {
	cfg := defaultConfig()
	date := time.Date(2025, 11, 12, 0, 0, 0, 0, time.Local)

	exc := &ScheduleException{
		Date:           date,
		LunchStartHour: ptr.Ptr(13),
		LunchEndHour:   ptr.Ptr(14),
	}

	day := cfg.ResolveDay(date, exc)
	assert.True(t, day.HasLunch())
	assert.False(t, day.IsLunchHour(12))
	assert.True(t, day.IsLunchHour(13))
	assert.False(t, day.IsLunchHour(14))
}

func TestIsOpenAtBoundary(t *testing.T) {
	cfg := defaultConfig()

	tests := []struct {
		name string
		now  time.Time
		open bool
	}{
		{"one minute before opening", time.Date(2025, 11, 12, 8, 59, 0, 0, time.Local), false},
		{"exactly at opening", time.Date(2025, 11, 12, 9, 0, 0, 0, time.Local), true},
		{"mid day", time.Date(2025, 11, 12, 12, 0, 0, 0, time.Local), true},
		// Проверка по часам, минуты не учитываются: 18:59 все еще открыто
		{"last working minute", time.Date(2025, 11, 12, 18, 59, 0, 0, time.Local), true},
		{"exactly at closing", time.Date(2025, 11, 12, 19, 0, 0, 0, time.Local), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.open, cfg.IsOpenAt(tt.now, nil))
		})
	}
}

func TestIsOpenAtClosedException(t *testing.T) {
	cfg := defaultConfig()
	noon := time.Date(2025, 11, 12, 12, 0, 0, 0, time.Local)

	exc := &ScheduleException{Date: noon, Closed: true}
	assert.False(t, cfg.IsOpenAt(noon, exc))
}

func TestIsOpenAtInvertedHours(t *testing.T) {
	cfg := defaultConfig()
	noon := time.Date(2025, 11, 12, 12, 0, 0, 0, time.Local)

	// Инвертированные часы из исключения деградируют в "закрыто"
	exc := &ScheduleException{Date: noon, StartHour: ptr.Ptr(18), EndHour: ptr.Ptr(9)}
	assert.False(t, cfg.IsOpenAt(noon, exc))
}
