package domain

// Default schedule configuration values
const (
	DefaultStartHour           = 9
	DefaultEndHour             = 19
	DefaultSlotIntervalMinutes = 30
)

// Business validation constants
const (
	MinWorkingHour         = 0
	MaxWorkingHour         = 24
	MinSlotIntervalMinutes = 5
	MaxSlotIntervalMinutes = 240
	MaxNotesLength         = 500
	MaxClientNameLength    = 200
	MaxCancelReasonLength  = 500
	MinServiceDurationMins = 1
	MinutesPerDay          = 24 * 60
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// CancelReasonNoShow записывается в cancellation_reason при неявке клиента
const CancelReasonNoShow = "no_show"

// QueueStatuses статусы, попадающие в живую очередь на день
var QueueStatuses = []AppointmentStatus{
	StatusPending,
	StatusConfirmed,
}
