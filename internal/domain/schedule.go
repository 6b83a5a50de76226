package domain

import "time"

// ScheduleConfig holds the shop's default working window and slot granularity.
// A single row; per-date deviations live in ScheduleException.
type ScheduleConfig struct {
	ID                  int64
	StartHour           int // hour-of-day, 24h clock
	EndHour             int // exclusive
	SlotIntervalMinutes int
	ClosedWeekday       *int // 0 = Sunday .. 6 = Saturday; nil = open every weekday
	UpdatedAt           time.Time
}

// IsValid returns true if the default window can produce slots
func (c *ScheduleConfig) IsValid() bool {
	return c.StartHour < c.EndHour && c.SlotIntervalMinutes > 0
}

// ScheduleException is a per-date override of the default hours.
// Absent hour fields fall back to the config defaults; Closed suppresses
// the whole day regardless of hours.
type ScheduleException struct {
	Date           time.Time // calendar date, local
	StartHour      *int
	EndHour        *int
	Closed         bool
	LunchStartHour *int
	LunchEndHour   *int
	UpdatedAt      time.Time
}

// HasLunch returns true if the exception defines a lunch window
func (e *ScheduleException) HasLunch() bool {
	return e.LunchStartHour != nil && e.LunchEndHour != nil
}

// DaySchedule is the effective schedule for one date after applying
// the exception (if any) on top of the defaults
type DaySchedule struct {
	Closed         bool
	StartHour      int
	EndHour        int
	LunchStartHour *int
	LunchEndHour   *int
}

// HasLunch returns true if the day has a lunch window
func (d DaySchedule) HasLunch() bool {
	return d.LunchStartHour != nil && d.LunchEndHour != nil
}

// IsLunchHour reports whether the given hour falls inside the lunch window
func (d DaySchedule) IsLunchHour(hour int) bool {
	if !d.HasLunch() {
		return false
	}
	return hour >= *d.LunchStartHour && hour < *d.LunchEndHour
}

// ResolveDay computes the effective schedule for a date.
// Priority: exception closed flag > weekly closed day > exception hours > defaults.
func (c *ScheduleConfig) ResolveDay(date time.Time, exc *ScheduleException) DaySchedule {
	day := DaySchedule{
		StartHour: c.StartHour,
		EndHour:   c.EndHour,
	}

	if exc == nil {
		if c.ClosedWeekday != nil && int(date.Weekday()) == *c.ClosedWeekday {
			day.Closed = true
		}
		return day
	}

	if exc.Closed {
		day.Closed = true
		return day
	}

	// An explicit exception overrides the weekly closed day
	if exc.StartHour != nil {
		day.StartHour = *exc.StartHour
	}
	if exc.EndHour != nil {
		day.EndHour = *exc.EndHour
	}
	if exc.StartHour == nil && exc.EndHour == nil && !exc.HasLunch() {
		if c.ClosedWeekday != nil && int(date.Weekday()) == *c.ClosedWeekday {
			day.Closed = true
			return day
		}
	}

	day.LunchStartHour = exc.LunchStartHour
	day.LunchEndHour = exc.LunchEndHour

	return day
}

// IsOpenAt resolves the open/closed status for the given wall-clock moment.
// The comparison is hour-granular: minutes do not move the boundary.
func (c *ScheduleConfig) IsOpenAt(now time.Time, exc *ScheduleException) bool {
	day := c.ResolveDay(now, exc)
	if day.Closed {
		return false
	}
	if day.StartHour >= day.EndHour {
		return false
	}
	hour := now.Hour()
	return hour >= day.StartHour && hour < day.EndHour
}
