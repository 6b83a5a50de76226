package domain

import (
	"time"

	"github.com/m04kA/SBS-SchedulingService/pkg/types"
)

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	StatusPending    AppointmentStatus = "pending"
	StatusConfirmed  AppointmentStatus = "confirmed"
	StatusInProgress AppointmentStatus = "in_progress"
	StatusCompleted  AppointmentStatus = "completed"
	StatusCancelled  AppointmentStatus = "cancelled"
)

// statusTransitions is the legal edge set of the appointment state machine.
// completed and cancelled are terminal and have no outgoing edges.
var statusTransitions = map[AppointmentStatus][]AppointmentStatus{
	StatusPending:    {StatusConfirmed, StatusInProgress, StatusCancelled},
	StatusConfirmed:  {StatusInProgress, StatusCancelled},
	StatusInProgress: {StatusCompleted, StatusCancelled},
	StatusCompleted:  {},
	StatusCancelled:  {},
}

// CanTransition reports whether the state machine allows moving from one status to another
func CanTransition(from, to AppointmentStatus) bool {
	allowed, ok := statusTransitions[from]
	if !ok {
		return false
	}
	for _, s := range allowed {
		if s == to {
			return true
		}
	}
	return false
}

// ParseAppointmentStatus validates and converts a raw status string
func ParseAppointmentStatus(s string) (AppointmentStatus, bool) {
	status := AppointmentStatus(s)
	switch status {
	case StatusPending, StatusConfirmed, StatusInProgress, StatusCompleted, StatusCancelled:
		return status, true
	}
	return "", false
}

// Appointment represents a client appointment for the single working chair
type Appointment struct {
	ID              int64
	ClientID        *int64 // nil for walk-in clients identified by phone only
	ClientName      string
	ClientPhone     *string
	ServiceID       int64
	AppointmentDate time.Time        // calendar date, local
	StartTime       types.TimeString // scheduled wall-clock time, immutable after creation
	DurationMinutes int              // snapshot of the service duration at booking time
	Status          AppointmentStatus

	// QueueSequence orders today's queue independently of the scheduled time.
	// 0 for regular bookings; skip bumps it past the current maximum.
	QueueSequence int

	// Denormalized service data for history
	ServiceName  string
	ServicePrice float64
	FinalPrice   *float64 // recorded at completion
	Notes        *string

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the appointment still blocks its time slot
func (a *Appointment) IsActive() bool {
	return a.Status != StatusCancelled
}

// IsTerminal returns true if no further transitions are possible
func (a *Appointment) IsTerminal() bool {
	return a.Status == StatusCompleted || a.Status == StatusCancelled
}

// CanBeCancelled returns true if the appointment can still be cancelled
func (a *Appointment) CanBeCancelled() bool {
	return CanTransition(a.Status, StatusCancelled)
}

// IsQueued returns true if the appointment belongs to the live queue
func (a *Appointment) IsQueued() bool {
	return a.Status == StatusPending || a.Status == StatusConfirmed
}

// ViewerIdentity identifies the client looking at the slot grid,
// used to distinguish "your own booking" from another client's
type ViewerIdentity struct {
	ClientID *int64
	Phone    *string
}

// IsZero returns true if no identity was provided
func (v ViewerIdentity) IsZero() bool {
	return v.ClientID == nil && v.Phone == nil
}

// Matches reports whether the appointment belongs to the viewer.
// Client id wins when both sides have one; phone is the fallback.
func (v ViewerIdentity) Matches(a *Appointment) bool {
	if v.ClientID != nil && a.ClientID != nil {
		return *v.ClientID == *a.ClientID
	}
	if v.Phone != nil && a.ClientPhone != nil {
		return *v.Phone == *a.ClientPhone
	}
	return false
}
